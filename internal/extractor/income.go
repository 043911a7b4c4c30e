package extractor

import (
	"strings"

	"github.com/shopspring/decimal"

	"pothen/internal/domain"
)

const (
	incomeAmountDepth = 2
	incomeRoleDepth   = 5

	roleDeclarant = "ΥΠΟΧΡΕΟΣ"
	roleSpouse    = "ΣΥΖΥΓΟΣ"

	defaultIncomeDescription = "Income"
)

func hasRoleAnchor(line string) bool {
	return strings.Contains(line, roleDeclarant) || strings.Contains(line, roleSpouse)
}

// extractIncome reads an income entry around the currency trigger at index
// i. The amount sits on one of the two preceding lines; a role line up to
// five lines above the amount supplies the description.
func (s *scanner) extractIncome(i int) (domain.FinancialEntry, bool) {
	trigger := s.lines[i]
	amountIdx, rawAmount, ok := NewWindow(s.lines, i).FirstBack(incomeAmountDepth, isNumeric)
	if !ok {
		s.miss(domain.SectionIncome, i, "no amount in window")
		return domain.FinancialEntry{}, false
	}
	amount, _ := ParseGreekNumber(rawAmount)

	description := defaultIncomeDescription
	role := domain.RoleDeclarant
	start := amountIdx
	if roleIdx, roleLine, ok := NewWindow(s.lines, amountIdx).FirstBack(incomeRoleDepth, hasRoleAnchor); ok {
		next := s.lines[roleIdx+1]
		if next == rawAmount {
			next = ""
		}
		description = roleLine + " " + next
		if strings.Contains(roleLine, roleSpouse) && !strings.Contains(roleLine, roleDeclarant) {
			role = domain.RoleSpouse
		}
		start = roleIdx
	}

	aux := map[string]string{domain.AuxDescription: description}
	s.addCurrencyCode(aux, trigger)

	return domain.FinancialEntry{
		SectionType:   domain.SectionIncome,
		HolderRole:    role,
		Amount:        decimal.NewNullDecimal(amount),
		CurrencyLabel: trigger,
		AuxiliaryData: aux,
		Notes:         domain.NoteIncome,
		Provenance:    domain.Provenance{Start: start, End: i},
	}, true
}
