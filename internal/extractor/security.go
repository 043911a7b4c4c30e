package extractor

import (
	"regexp"

	"github.com/shopspring/decimal"

	"pothen/internal/domain"
)

// securityRow matches three Greek-formatted numbers in a row, read as
// acquisition value, current valuation and sold value.
var securityRow = regexp.MustCompile(`([\d.,]+)[\s\p{Zs}]+([\d.,]+)[\s\p{Zs}]+([\d.,]+)`)

// extractSecurity reads a security holding from line i. The middle number
// is the valuation regardless of what the columns really hold.
func (s *scanner) extractSecurity(i int) (domain.FinancialEntry, bool) {
	line := s.lines[i]
	m := securityRow.FindStringSubmatch(line)
	if m == nil {
		return domain.FinancialEntry{}, false
	}
	valuation, ok := ParseGreekNumber(m[2])
	if !ok {
		s.miss(domain.SectionSecurity, i, "valuation is not numeric")
		return domain.FinancialEntry{}, false
	}

	return domain.FinancialEntry{
		SectionType: domain.SectionSecurity,
		HolderRole:  domain.RoleDeclarant,
		Amount:      decimal.NewNullDecimal(valuation),
		AuxiliaryData: map[string]string{
			domain.AuxRaw:         line,
			domain.AuxAcquisition: m[1],
			domain.AuxValuation:   m[2],
			domain.AuxSold:        m[3],
		},
		Notes:      domain.NoteInvestment,
		Provenance: domain.Provenance{Start: i, End: i},
	}, true
}
