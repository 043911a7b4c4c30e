package extractor

import (
	"github.com/shopspring/decimal"

	"pothen/internal/domain"
)

// emptySummary is the identity of the summary fold.
func emptySummary() domain.DeclarationSummary {
	return domain.DeclarationSummary{
		TotalIncome:      decimal.Zero,
		TotalDeposits:    decimal.Zero,
		TotalInvestments: decimal.Zero,
	}
}

// Accumulate returns sum with e's amount added to its section subtotal.
// Entries without an amount, or in sections without a subtotal, leave sum unchanged.
func Accumulate(sum domain.DeclarationSummary, e domain.FinancialEntry) domain.DeclarationSummary {
	if !e.Amount.Valid {
		return sum
	}
	switch e.SectionType {
	case domain.SectionIncome:
		sum.TotalIncome = sum.TotalIncome.Add(e.Amount.Decimal)
	case domain.SectionBankAccount:
		sum.TotalDeposits = sum.TotalDeposits.Add(e.Amount.Decimal)
	case domain.SectionSecurity:
		sum.TotalInvestments = sum.TotalInvestments.Add(e.Amount.Decimal)
	}
	return sum
}

// Summarize folds entries into a fresh summary; realEstateCount is copied through.
func Summarize(entries []domain.FinancialEntry, realEstateCount int) domain.DeclarationSummary {
	sum := emptySummary()
	for _, e := range entries {
		sum = Accumulate(sum, e)
	}
	sum.RealEstateCount = realEstateCount
	return sum
}
