package extractor

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// leadingNumber matches the numeric prefix of a token once separators are
// rewritten, so "183.20 ΕΥΡΩ" still yields 183.20.
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d+)?|\.\d+)`)

// ParseGreekNumber parses a Greek-formatted amount ("1.234,56"). Dots are
// thousands separators and the comma is the decimal separator. It reports
// false when the token does not start with a number.
func ParseGreekNumber(token string) (decimal.Decimal, bool) {
	clean := strings.ReplaceAll(token, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")
	clean = strings.TrimLeftFunc(clean, unicode.IsSpace)

	m := leadingNumber.FindString(clean)
	if m == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(m, "+"))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func isNumeric(token string) bool {
	_, ok := ParseGreekNumber(token)
	return ok
}
