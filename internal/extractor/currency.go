package extractor

import money "github.com/Rhymond/go-money"

type currencyLabel struct {
	token string
	code  string
}

var currencyLabels = []currencyLabel{
	{"ΕΥΡΩ", money.EUR},
	{"ΔΟΛΑΡΙΟ", money.USD},
	{"ΛΙΡΑ", money.GBP},
	{"ΕΛΒΕΤΙΚΟ", money.CHF},
}

// currencyMatcher recognizes currency trigger lines.
type currencyMatcher struct {
	tokens tokenSet
}

func newCurrencyMatcher() currencyMatcher {
	tokens := make([]string, len(currencyLabels))
	for i, l := range currencyLabels {
		tokens[i] = l.token
	}
	return currencyMatcher{tokens: newTokenSet(tokens)}
}

func (c currencyMatcher) isTrigger(line string) bool {
	return c.tokens.contains(line)
}

// code returns the ISO 4217 code for a trigger line, or "" when the label
// does not map to a currency go-money knows.
func (c currencyMatcher) code(line string) string {
	idx, ok := c.tokens.first(line)
	if !ok {
		return ""
	}
	code := currencyLabels[idx].code
	if money.GetCurrency(code) == nil {
		return ""
	}
	return code
}
