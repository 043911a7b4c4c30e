package extractor

import "github.com/cloudflare/ahocorasick"

// tokenSet finds which of a fixed list of substrings a line contains.
// The underlying matcher keeps per-search scratch state, so a tokenSet
// must not be shared between goroutines.
type tokenSet struct {
	m *ahocorasick.Matcher
}

func newTokenSet(tokens []string) tokenSet {
	return tokenSet{m: ahocorasick.NewStringMatcher(tokens)}
}

// first returns the lowest-indexed token contained in line.
func (t tokenSet) first(line string) (int, bool) {
	hits := t.m.Match([]byte(line))
	if len(hits) == 0 {
		return -1, false
	}
	best := hits[0]
	for _, h := range hits[1:] {
		if h < best {
			best = h
		}
	}
	return best, true
}

func (t tokenSet) contains(line string) bool {
	_, ok := t.first(line)
	return ok
}
