package extractor

// Window is a read-only view of the lines preceding an anchor index.
// Lookups outside the sequence report false instead of panicking.
type Window struct {
	lines  []string
	anchor int
}

// NewWindow returns a window anchored at index anchor of lines.
func NewWindow(lines []string, anchor int) Window {
	return Window{lines: lines, anchor: anchor}
}

// Back returns the line n positions before the anchor.
func (w Window) Back(n int) (int, string, bool) {
	idx := w.anchor - n
	if n <= 0 || idx < 0 || idx >= len(w.lines) {
		return -1, "", false
	}
	return idx, w.lines[idx], true
}

// FirstBack returns the nearest of the depth lines before the anchor that
// satisfies match.
func (w Window) FirstBack(depth int, match func(string) bool) (int, string, bool) {
	for n := 1; n <= depth; n++ {
		idx, line, ok := w.Back(n)
		if !ok {
			break
		}
		if match(line) {
			return idx, line, true
		}
	}
	return -1, "", false
}
