package render

import (
	"reflect"
	"testing"
)

func TestNoiseLine(t *testing.T) {
	tests := []struct {
		line  string
		noise bool
	}{
		{"https://example.com/story", true},
		{"  http://example.com", true},
		{"  • https://example.com/list-link", true},
		{"[...]", true},
		{"[Image]", true},
		{"Share this", true},
		{"TWEET", true},
		{"Email us", true},
		{"Posted in News", false},
		{"Shares of Apple rose 3%", false},
		{"path%2Fencoded", true},
		{"•", true},
		{"- — –", true},
		{"»", true},
		{"OK", false},
		{"Privacy Policy", true},
		{"Terms of the agreement were not disclosed by either company on Monday.", false},
		{"A normal sentence.", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := noiseLine(tt.line); got != tt.noise {
				t.Errorf("noiseLine(%q) = %v, want %v", tt.line, got, tt.noise)
			}
		})
	}
}

func TestFilterLines(t *testing.T) {
	in := []string{
		"",
		"Title",
		"",
		"",
		"https://example.com",
		"",
		"Body text",
		"[link]",
		"",
		"",
		"",
		"End",
		"",
	}
	want := []string{"Title", "", "Body text", "", "End"}

	if got := filterLines(in); !reflect.DeepEqual(got, want) {
		t.Errorf("filterLines = %q, want %q", got, want)
	}
}
