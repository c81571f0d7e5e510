package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/abelbrown/tuirss/internal/feed"
	"github.com/abelbrown/tuirss/internal/nav"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Frame widths; the viewer is wider to fit 80-column rendered text.
const (
	frameWidth       = 78
	viewerFrameWidth = 90
	titleMax         = 68
)

// View renders the current navigator snapshot.
func (a App) View() string {
	if a.done {
		return ""
	}
	s := a.nav.State()

	width := frameWidth
	if s.Mode == nav.ModeArticleViewer {
		width = viewerFrameWidth
	}
	if a.ready && a.width > 0 && a.width < width {
		width = a.width
	}

	var b strings.Builder
	b.WriteString(frame(windowTitle(s), a.body(s), width))
	b.WriteString("\n")
	if msg := firstNonEmpty(a.notice, s.Status); msg != "" {
		b.WriteString(ErrorStyle.Render(" " + msg))
		b.WriteString("\n")
	}
	b.WriteString(a.statusBar(s.Mode, width))

	if !a.ready {
		return b.String()
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, b.String())
}

func (a App) body(s nav.State) string {
	if s.Loading && s.Mode != nav.ModeAddFeed {
		return a.spinner.View() + " Loading..."
	}

	switch s.Mode {
	case nav.ModeFeedList:
		return feedListView(s)
	case nav.ModeArticleList:
		return articleListView(s, a.cfg.Now())
	case nav.ModeArticleViewer:
		return viewerView(s, a.cfg.Now())
	case nav.ModeAddFeed:
		return a.addFeedView(s)
	case nav.ModeEditFeed:
		return a.editFeedView(s)
	case nav.ModeFavorites:
		return favoritesView(s)
	}
	return ""
}

// frame draws ╔══ title ══╗ above the body and a closing rule below it.
func frame(title, body string, width int) string {
	label := " " + title + " "
	if runewidth.StringWidth(label) > width-4 {
		label = runewidth.Truncate(label, width-4, "… ")
	}
	rest := max(0, width-2-runewidth.StringWidth(label))
	left := rest / 2
	top := "╔" + strings.Repeat("═", left) + label + strings.Repeat("═", rest-left) + "╗"
	bottom := "╚" + strings.Repeat("═", max(0, width-2)) + "╝"

	return lipgloss.JoinVertical(lipgloss.Left,
		FrameBorder.Render(top),
		FrameBody.Render(body),
		FrameBorder.Render(bottom),
	)
}

func windowTitle(s nav.State) string {
	switch s.Mode {
	case nav.ModeFeedList:
		return "📰 RSS FEEDS"
	case nav.ModeArticleList:
		if s.CurrentFeed != nil && s.CurrentFeed.Title != "" {
			return "📖 " + s.CurrentFeed.Title
		}
		return "📖 Articles"
	case nav.ModeArticleViewer:
		if s.CurrentArticle == nil {
			return "Article"
		}
		t := truncate(s.CurrentArticle.Title, 50)
		if s.CurrentArticle.IsFavorite {
			t = "★ " + t
		}
		return t
	case nav.ModeAddFeed:
		return "➕ Add Feed"
	case nav.ModeEditFeed:
		return "✏️ Edit Feed"
	case nav.ModeFavorites:
		return "⭐ Favorites"
	}
	return "TUI RSS Reader"
}

func (a App) statusBar(m nav.Mode, width int) string {
	rule := Hint.Render(strings.Repeat("─", max(0, width)))
	brand := StatusBarBrand.Render(" 📡 Tui-RSS ")
	return rule + "\n" + brand + " " + a.help.ShortHelpView(a.keys.forMode(m))
}

func feedListView(s nav.State) string {
	if len(s.Sources) == 0 {
		return strings.Join([]string{
			Heading.Render("📭 No Feeds"),
			"",
			Dim.Render("You haven't added any RSS feeds yet."),
			"",
			"Press A to add your first feed",
			"",
			"",
			Dim.Render("Popular feeds to get started:"),
			Dim.Render("• https://hnrss.org/frontpage"),
			Dim.Render("• https://techcrunch.com/feed/"),
		}, "\n")
	}

	start, end := nav.Window(s.SelectedFeed, len(s.Sources), nav.FeedWindow)
	var rows []string
	for i := start; i < end; i++ {
		if i > start {
			rows = append(rows, "")
		}
		rows = append(rows, row(s.Sources[i].Name, i == s.SelectedFeed))
	}
	rows = appendPosition(rows, s.SelectedFeed, len(s.Sources), nav.FeedWindow)
	return strings.Join(rows, "\n")
}

func articleListView(s nav.State, now time.Time) string {
	items := s.Items()
	if len(items) == 0 {
		return Dim.Render("No articles found")
	}

	start, end := nav.Window(s.SelectedArticle, len(items), nav.ArticleWindow)
	var rows []string
	for i := start; i < end; i++ {
		it := items[i]
		if i > start {
			rows = append(rows, "")
		}
		title := truncate(it.Title, titleMax)
		if it.IsFavorite {
			title = "★ " + title
		}
		rows = append(rows, row(title, i == s.SelectedArticle))
		if i == s.SelectedArticle {
			rows = append(rows, Dim.Render("    "+metaLine(it, now, 20)))
		}
	}
	rows = appendPosition(rows, s.SelectedArticle, len(items), nav.ArticleWindow)
	return strings.Join(rows, "\n")
}

func viewerView(s nav.State, now time.Time) string {
	art := s.CurrentArticle
	if art == nil {
		return ""
	}

	var b strings.Builder
	if meta := metaLine(*art, now, 0); meta != "" {
		b.WriteString(Dim.Render(meta))
		b.WriteString("\n\n")
	} else if s.FromFavorites() && s.ArticleFeed != "" {
		b.WriteString(Dim.Render("from " + s.ArticleFeed))
		b.WriteString("\n\n")
	}

	for _, line := range s.VisibleLines() {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	canScroll := len(s.Lines()) > nav.VisibleLines
	var hint string
	switch {
	case canScroll && s.ViewingWebpage:
		hint = fmt.Sprintf("↑↓ scroll • %d%% • Webpage", s.ScrollPercent())
	case canScroll:
		hint = fmt.Sprintf("↑↓ scroll • %d%% • [W] full page", s.ScrollPercent())
	case s.ViewingWebpage:
		hint = "Webpage • [O] open in browser"
	default:
		hint = "[W] load full page • [O] open in browser"
	}
	b.WriteString(Hint.Render(hint))
	return b.String()
}

func (a App) addFeedView(s nav.State) string {
	rows := []string{
		Heading.Render("Add New Feed"),
		"",
		Dim.Render("Enter RSS feed URL and press Enter to validate:"),
		"",
		a.inputView(s.InputText),
	}
	if s.Loading {
		rows = append(rows, "", StatusBarBrand.Render(a.spinner.View()+" Validating feed..."))
	}
	if s.InputError != "" {
		rows = append(rows, "", ErrorStyle.Render("✗ "+s.InputError))
	}
	rows = append(rows, "", "", Dim.Render("Example: https://example.com/rss.xml"))
	return strings.Join(rows, "\n")
}

func (a App) editFeedView(s nav.State) string {
	src, _ := s.SelectedSource()
	rows := []string{
		Heading.Render("Rename Feed"),
		"",
		Dim.Render(truncate(src.URL, titleMax)),
		"",
		a.inputView(s.InputText),
	}
	if s.InputError != "" {
		rows = append(rows, "", ErrorStyle.Render("✗ "+s.InputError))
	}
	return strings.Join(rows, "\n")
}

// inputView shows text in the text input; the navigator owns the buffer.
func (a App) inputView(text string) string {
	in := a.input
	in.SetValue(text)
	in.CursorEnd()
	return in.View()
}

func favoritesView(s nav.State) string {
	if len(s.Favorites) == 0 {
		return strings.Join([]string{
			Heading.Render("★ No Favorites Yet"),
			"",
			Dim.Render("Press F on any article to save it here."),
		}, "\n")
	}

	plural := "s"
	if len(s.Favorites) == 1 {
		plural = ""
	}
	rows := []string{Dim.Render(fmt.Sprintf("★ %d saved article%s", len(s.Favorites), plural))}

	start, end := nav.Window(s.SelectedArticle, len(s.Favorites), nav.FavoritesWindow)
	for i := start; i < end; i++ {
		fav := s.Favorites[i]
		rows = append(rows, "", row(truncate(fav.Title, titleMax), i == s.SelectedArticle))
		if i == s.SelectedArticle && fav.FeedName != "" {
			rows = append(rows, Dim.Render("    from "+fav.FeedName))
		}
	}
	rows = appendPosition(rows, s.SelectedArticle, len(s.Favorites), nav.FavoritesWindow)
	return strings.Join(rows, "\n")
}

func row(text string, selected bool) string {
	if selected {
		return SelectedItem.Render("▶ " + text)
	}
	return NormalItem.Render("  " + text)
}

// appendPosition adds the "N of M" line when the list overflows its window.
func appendPosition(rows []string, sel, n, window int) []string {
	if n <= window {
		return rows
	}
	return append(rows, "", Dim.Render(fmt.Sprintf("%d of %d", sel+1, n)))
}

// metaLine is "<relative date> • <author>". authorMax of 0 means no limit.
func metaLine(it feed.Item, now time.Time, authorMax int) string {
	parts := make([]string, 0, 2)
	if d := relativeDate(it.Published, now); d != "" {
		parts = append(parts, d)
	}
	if it.Author != "" {
		author := it.Author
		if authorMax > 0 {
			author = truncate(author, authorMax)
		}
		parts = append(parts, author)
	}
	return strings.Join(parts, " • ")
}

// relativeDate renders t as Today, Yesterday, "N days ago" within a week,
// else as a calendar date.
func relativeDate(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	days := int(now.Sub(t).Hours() / 24)
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	}
	return t.Format("Jan 2, 2006")
}

// truncate shortens s to at most n display cells.
func truncate(s string, n int) string {
	if runewidth.StringWidth(s) <= n {
		return s
	}
	return runewidth.Truncate(s, n, "...")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
