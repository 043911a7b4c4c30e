package extractor

import (
	"strings"

	"github.com/shopspring/decimal"

	"pothen/internal/domain"
)

// extractDeposit reads a bank deposit from the line before the currency
// trigger at index i. The amount is the last token of that line, so a row
// number sharing the line ("3   183,20") is ignored.
func (s *scanner) extractDeposit(i int) (domain.FinancialEntry, bool) {
	trigger := s.lines[i]
	prevIdx, prev, ok := NewWindow(s.lines, i).Back(1)
	if !ok {
		s.miss(domain.SectionBankAccount, i, "no preceding line")
		return domain.FinancialEntry{}, false
	}
	fields := strings.Fields(prev)
	if len(fields) == 0 {
		s.miss(domain.SectionBankAccount, i, "empty preceding line")
		return domain.FinancialEntry{}, false
	}
	amount, ok := ParseGreekNumber(fields[len(fields)-1])
	if !ok {
		s.miss(domain.SectionBankAccount, i, "last token is not numeric")
		return domain.FinancialEntry{}, false
	}

	aux := map[string]string{domain.AuxRaw: prev}
	s.addCurrencyCode(aux, trigger)

	return domain.FinancialEntry{
		SectionType:   domain.SectionBankAccount,
		HolderRole:    domain.RoleDeclarant,
		Amount:        decimal.NewNullDecimal(amount),
		CurrencyLabel: trigger,
		AuxiliaryData: aux,
		Notes:         domain.NoteDeposit,
		Provenance:    domain.Provenance{Start: prevIdx, End: i},
	}, true
}
