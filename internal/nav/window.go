package nav

// Maximum visible rows per list and the viewer page height.
const (
	FeedWindow      = 8
	ArticleWindow   = 12
	FavoritesWindow = 10
	VisibleLines    = 18
)

// WindowStart returns the first visible index of a list of n entries shown
// w at a time, keeping up to two entries above the selection in view.
func WindowStart(selected, n, w int) int {
	start := selected - 2
	if hi := max(0, n-w); start > hi {
		start = hi
	}
	if start < 0 {
		start = 0
	}
	return start
}

// Window returns the half-open visible range [start, end).
func Window(selected, n, w int) (start, end int) {
	start = WindowStart(selected, n, w)
	return start, min(n, start+w)
}

// clampIndex bounds i to [0, n-1], or 0 for an empty list.
func clampIndex(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}
