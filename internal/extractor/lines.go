package extractor

import "strings"

// Normalize splits raw extracted text into trimmed, non-empty lines in
// their original order. Nothing else about a line is changed.
func Normalize(text string) []string {
	return NormalizeLines(strings.Split(text, "\n"))
}

// NormalizeLines trims every line and drops the blank ones.
func NormalizeLines(raw []string) []string {
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}
