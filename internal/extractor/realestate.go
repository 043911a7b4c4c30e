package extractor

import "strings"

const (
	anchorRealEstateTitle = "Ακίνητα και εμπράγματα"
	realEstateMarker      = "ΑΚΙΝΗΤΟ"
)

// isRealEstateItem reports whether line counts as one property.
func isRealEstateItem(line string) bool {
	return strings.Contains(line, realEstateMarker) && !strings.Contains(line, anchorRealEstateTitle)
}
