package render

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestSummaryStructure(t *testing.T) {
	in := "<h1>Hello world</h1><p>First para.</p>" +
		"<ul><li>One</li><li>Two</li></ul>" +
		"<ol><li>Alpha</li></ol>" +
		"<pre>code  line\n  indented</pre>" +
		`<p>After <a href="https://example.com/x">link text</a> <img src="a.png" alt="alt text"> end.</p>`

	want := strings.Join([]string{
		"HELLO WORLD",
		"",
		"First para.",
		"",
		"  • One",
		"  • Two",
		"",
		"  Alpha",
		"",
		"code  line",
		"  indented",
		"",
		"After link text end.",
	}, "\n")

	if got := Summary(in); got != want {
		t.Errorf("Summary mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestSummaryElements(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", MsgNoContent},
		{"blank", "  \n\t ", MsgNoContent},
		{"empty paragraph", "<p></p>", MsgNoContent},
		{"only image", `<img src="x.png" alt="x">`, MsgNoContent},
		{"secondary heading keeps case", "<h2>Sub Title</h2>", "Sub Title"},
		{"line break", "<p>line one<br>line two</p>", "line one\nline two"},
		{"nested list", "<ul><li>Outer<ul><li>Inner</li></ul></li></ul>", "  • Outer\n    • Inner"},
		{"scripts dropped", "<div><script>alert(1)</script><style>p{}</style><p>Safe</p></div>", "Safe"},
		{"href hidden", `<a href="https://example.com">https://example.com</a> and <a href="/x">label</a>`, "https://example.com and label"},
		{"double escaped entity", "<p>It&amp;#8217;s</p>", "It’s"},
		{"escaped markup stays escaped", "<p>Write &amp;lt;div&amp;gt; in HTML</p>", "Write &lt;div&gt; in HTML"},
		{"plain text decoded", "Tom &amp; Jerry", "Tom & Jerry"},
		{"plain text paragraphs", "one\n\n\ntwo", "one\n\ntwo"},
		{"whitespace collapsed", "<p>a   b\n\tc</p>", "a b c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summary(tt.in); got != tt.want {
				t.Errorf("Summary(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSummaryWrapsAndTrims(t *testing.T) {
	long := strings.Repeat("lorem ipsum dolor sit amet ", 30)
	out := Summary("<p>" + long + "</p><ul><li>" + long + "</li></ul>")

	lines := strings.Split(out, "\n")
	if len(lines) < 10 {
		t.Fatalf("expected wrapped output, got %d lines", len(lines))
	}
	for i, l := range lines {
		if w := runewidth.StringWidth(l); w > Width {
			t.Errorf("line %d is %d columns: %q", i, w, l)
		}
		if strings.TrimRight(l, " \t") != l {
			t.Errorf("line %d has trailing whitespace: %q", i, l)
		}
	}

	// Continuation lines of a list item are indented under its text.
	var inList bool
	for _, l := range lines {
		if strings.HasPrefix(l, "  • ") {
			inList = true
			continue
		}
		if inList && l != "" && !strings.HasPrefix(l, "    ") {
			t.Errorf("list continuation not indented: %q", l)
		}
	}
}

func TestSummaryNeverLeaksTags(t *testing.T) {
	inputs := []string{
		"<div><p>Hello <b>bold</b> <i>world</i></p></div>",
		"<table><tr><td>a</td><td>b</td></tr></table>",
		"<blockquote><p>quoted</p></blockquote><hr><p>after</p>",
		"<p>unclosed <em>tags",
		"<p>Write &amp;lt;div&amp;gt; in HTML</p>",
	}
	for _, in := range inputs {
		out := Summary(in)
		if strings.ContainsAny(out, "<>") {
			t.Errorf("Summary(%q) leaked markup: %q", in, out)
		}
	}
}

func TestSummaryDeterministic(t *testing.T) {
	in := "<h1>T</h1><p>" + strings.Repeat("word ", 200) + "</p>"
	if Summary(in) != Summary(in) {
		t.Error("Summary is not deterministic")
	}
}

func TestLines(t *testing.T) {
	if got := Lines("a\n\nb"); len(got) != 3 || got[1] != "" {
		t.Errorf("Lines = %q", got)
	}
}
