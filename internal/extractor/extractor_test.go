package extractor_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pothen/internal/domain"
	"pothen/internal/extractor"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newExtractor() *extractor.Extractor {
	return extractor.New(extractor.WithClock(func() time.Time { return fixedNow }))
}

func assertAmount(t *testing.T, want string, got decimal.NullDecimal) {
	t.Helper()
	require.True(t, got.Valid)
	assert.True(t, decimal.RequireFromString(want).Equal(got.Decimal), "want %s, got %s", want, got.Decimal)
}

func TestScan_IncomeAndDeposit(t *testing.T) {
	lines := []string{
		"Έσοδα από κάθε πηγή",
		"1.500,00",
		"ΕΥΡΩ",
		"Καταθέσεις σε τράπεζες",
		"3   200,00",
		"ΕΥΡΩ",
	}

	res := newExtractor().Scan(lines)

	require.Len(t, res.Entries, 2)

	income := res.Entries[0]
	assert.Equal(t, domain.SectionIncome, income.SectionType)
	assertAmount(t, "1500", income.Amount)
	assert.Equal(t, "ΕΥΡΩ", income.CurrencyLabel)
	assert.Equal(t, "Income", income.AuxiliaryData[domain.AuxDescription])
	assert.Equal(t, "EUR", income.AuxiliaryData[domain.AuxCurrencyCode])
	assert.Equal(t, domain.NoteIncome, income.Notes)
	assert.Equal(t, domain.RoleDeclarant, income.HolderRole)
	assert.Equal(t, domain.Provenance{Start: 1, End: 2}, income.Provenance)

	deposit := res.Entries[1]
	assert.Equal(t, domain.SectionBankAccount, deposit.SectionType)
	assertAmount(t, "200", deposit.Amount)
	assert.Equal(t, "3   200,00", deposit.AuxiliaryData[domain.AuxRaw])
	assert.Equal(t, domain.NoteDeposit, deposit.Notes)
	assert.Equal(t, domain.Provenance{Start: 4, End: 5}, deposit.Provenance)

	assert.True(t, decimal.NewFromInt(1500).Equal(res.Summary.TotalIncome))
	assert.True(t, decimal.NewFromInt(200).Equal(res.Summary.TotalDeposits))
	assert.True(t, res.Summary.TotalInvestments.IsZero())

	assert.Equal(t, []domain.SectionType{
		domain.SectionIncome, domain.SectionIncome, domain.SectionIncome,
		domain.SectionBankAccount, domain.SectionBankAccount, domain.SectionBankAccount,
	}, res.Sections)
}

func TestScan_Security(t *testing.T) {
	lines := []string{"Μετοχές ημεδαπών εταιρειών", "0,00 7.838,02 0,00", "ΣΥΝΟΛΟ"}

	res := newExtractor().Scan(lines)

	require.Len(t, res.Entries, 1)
	sec := res.Entries[0]
	assert.Equal(t, domain.SectionSecurity, sec.SectionType)
	assertAmount(t, "7838.02", sec.Amount)
	assert.Equal(t, "0,00", sec.AuxiliaryData[domain.AuxAcquisition])
	assert.Equal(t, "7.838,02", sec.AuxiliaryData[domain.AuxValuation])
	assert.Equal(t, "0,00", sec.AuxiliaryData[domain.AuxSold])
	assert.Equal(t, "0,00 7.838,02 0,00", sec.AuxiliaryData[domain.AuxRaw])
	assert.Equal(t, domain.NoteInvestment, sec.Notes)
	assert.Empty(t, sec.CurrencyLabel)
	assert.True(t, decimal.RequireFromString("7838.02").Equal(res.Summary.TotalInvestments))
}

func TestScan_SecurityRowWithLeadingText(t *testing.T) {
	lines := []string{"ΕΠΕΝΔΥΤΗΣ", "ΑΕ ΤΡΑΠΕΖΑ 1.000,00 2.500,50 0,00", "ΜΟΝΟ 1,00 2,00"}

	res := newExtractor().Scan(lines)

	require.Len(t, res.Entries, 1)
	assertAmount(t, "2500.5", res.Entries[0].Amount)
}

func TestScan_NoAnchors(t *testing.T) {
	lines := []string{"1.500,00", "ΕΥΡΩ", "0,00 7.838,02 0,00", "ΑΚΙΝΗΤΟ"}

	res := newExtractor().Scan(lines)

	assert.Empty(t, res.Entries)
	assert.Empty(t, res.RealEstateLines)
	assert.True(t, res.Summary.TotalIncome.IsZero())
	assert.True(t, res.Summary.TotalDeposits.IsZero())
	assert.True(t, res.Summary.TotalInvestments.IsZero())
	assert.Zero(t, res.Summary.RealEstateCount)
	for _, s := range res.Sections {
		assert.Equal(t, domain.SectionNone, s)
	}
}

func TestScan_IncomeAmountTwoLinesBack(t *testing.T) {
	lines := []string{"Έσοδα από κάθε πηγή", "2.000,00", "ΣΗΜΕΙΩΣΗ", "ΕΥΡΩ"}

	res := newExtractor().Scan(lines)

	require.Len(t, res.Entries, 1)
	assertAmount(t, "2000", res.Entries[0].Amount)
	assert.Equal(t, 1, res.Entries[0].Provenance.Start)
}

func TestScan_IncomeWithoutAmountIsDropped(t *testing.T) {
	lines := []string{"Έσοδα από κάθε πηγή", "2.000,00", "ΣΗΜΕΙΩΣΗ", "ΑΛΛΗ", "ΕΥΡΩ"}

	res := newExtractor().Scan(lines)

	assert.Empty(t, res.Entries)
	assert.True(t, res.Summary.TotalIncome.IsZero())
}

func TestScan_IncomeSpouseDescription(t *testing.T) {
	lines := []string{
		"Έσοδα από κάθε πηγή",
		"ΣΥΖΥΓΟΣ",
		"Μισθωτές υπηρεσίες",
		"25.000,00",
		"ΕΥΡΩ",
	}

	res := newExtractor().Scan(lines)

	require.Len(t, res.Entries, 1)
	e := res.Entries[0]
	assert.Equal(t, "ΣΥΖΥΓΟΣ Μισθωτές υπηρεσίες", e.AuxiliaryData[domain.AuxDescription])
	assert.Equal(t, domain.RoleSpouse, e.HolderRole)
	assert.Equal(t, domain.Provenance{Start: 1, End: 4}, e.Provenance)
}

func TestScan_IncomeRoleLineDirectlyAboveAmount(t *testing.T) {
	lines := []string{"Έσοδα από κάθε πηγή", "ΥΠΟΧΡΕΟΣ", "1.000,00", "ΔΟΛΑΡΙΟ ΗΠΑ"}

	res := newExtractor().Scan(lines)

	require.Len(t, res.Entries, 1)
	e := res.Entries[0]
	assert.Equal(t, "ΥΠΟΧΡΕΟΣ ", e.AuxiliaryData[domain.AuxDescription])
	assert.Equal(t, domain.RoleDeclarant, e.HolderRole)
	assert.Equal(t, "USD", e.AuxiliaryData[domain.AuxCurrencyCode])
	assert.Equal(t, "ΔΟΛΑΡΙΟ ΗΠΑ", e.CurrencyLabel)
}

func TestScan_DepositWithNonNumericTokenIsDropped(t *testing.T) {
	lines := []string{"Καταθέσεις σε τράπεζες", "ΤΡΑΠΕΖΑ ΠΕΙΡΑΙΩΣ", "ΕΥΡΩ"}

	res := newExtractor().Scan(lines)

	assert.Empty(t, res.Entries)
}

func TestScan_RealEstateCount(t *testing.T) {
	lines := []string{
		"Ακίνητα και εμπράγματα δικαιώματα",
		"ΑΚΙΝΗΤΟ 1",
		"ΟΙΚΟΠΕΔΟ",
		"ΑΚΙΝΗΤΟ 2",
		"Οχήματα",
		"ΑΚΙΝΗΤΟ 3",
		"1.000,00",
		"ΕΥΡΩ",
	}

	res := newExtractor().Scan(lines)

	assert.Empty(t, res.Entries)
	assert.Equal(t, []int{1, 3}, res.RealEstateLines)
	assert.Equal(t, 2, res.Summary.RealEstateCount)
	assert.Equal(t, domain.SectionOther, res.Sections[5])
}

func TestScan_SectionReentered(t *testing.T) {
	lines := []string{
		"Έσοδα από κάθε πηγή", "100,00", "ΕΥΡΩ",
		"Καταθέσεις σε τράπεζες", "50,00", "ΕΥΡΩ",
		"Έσοδα από κάθε πηγή", "200,00", "ΕΥΡΩ",
	}

	res := newExtractor().Scan(lines)

	require.Len(t, res.Entries, 3)
	assert.True(t, decimal.NewFromInt(300).Equal(res.Summary.TotalIncome))
	assert.True(t, decimal.NewFromInt(50).Equal(res.Summary.TotalDeposits))
}

func TestClassifier_Priority(t *testing.T) {
	c := extractor.NewClassifier()

	s, ok := c.Classify("Έσοδα από κάθε πηγή / Καταθέσεις σε τράπεζες")
	assert.True(t, ok)
	assert.Equal(t, domain.SectionIncome, s)

	s, ok = c.Classify("  Καταθέσεις σε τράπεζες (συνέχεια)")
	assert.True(t, ok)
	assert.Equal(t, domain.SectionBankAccount, s)

	_, ok = c.Classify("ΕΥΡΩ")
	assert.False(t, ok)
}

func TestExtract_FullDocument(t *testing.T) {
	lines := extractor.Normalize(`
Επώνυμο :
ΠΑΠΑΔΟΠΟΥΛΟΣ
Όνομα :
ΓΙΩΡΓΟΣ
Όνομα πατρός :
ΝΙΚΟΛΑΟΣ
ΑΡΙΘΜΟΣ ΔΗΛΩΣΗΣ :
987654
Έσοδα από κάθε πηγή
ΥΠΟΧΡΕΟΣ
Βουλευτική αποζημίωση
1.500,00
ΕΥΡΩ
Καταθέσεις σε τράπεζες
1   1.000,00
ΕΥΡΩ
Μετοχές ημεδαπών
10,00 20,00 0,00
Ακίνητα και εμπράγματα
ΑΚΙΝΗΤΟ ΔΙΑΜΕΡΙΣΜΑ
`)

	res, err := newExtractor().Extract(extractor.Document{Lines: lines, Filename: "pothen_2022.pdf"})

	require.NoError(t, err)
	assert.Equal(t, domain.ExtractedPerson{FirstName: "ΓΙΩΡΓΟΣ", LastName: "ΠΑΠΑΔΟΠΟΥΛΟΣ", FatherName: "ΝΙΚΟΛΑΟΣ"}, res.Person)
	assert.Equal(t, "987654", res.Declaration.DeclarationNumber)
	assert.Equal(t, 2022, res.Declaration.Year)
	require.Len(t, res.Entries, 3)
	assert.Equal(t, "ΥΠΟΧΡΕΟΣ Βουλευτική αποζημίωση", res.Entries[0].AuxiliaryData[domain.AuxDescription])
	assert.True(t, decimal.NewFromInt(1500).Equal(res.Summary.TotalIncome))
	assert.True(t, decimal.NewFromInt(1000).Equal(res.Summary.TotalDeposits))
	assert.True(t, decimal.NewFromInt(20).Equal(res.Summary.TotalInvestments))
	assert.Equal(t, 1, res.Summary.RealEstateCount)
}

func TestExtract_MissingIdentityAborts(t *testing.T) {
	lines := []string{"Έσοδα από κάθε πηγή", "1.500,00", "ΕΥΡΩ"}

	res, err := newExtractor().Extract(extractor.Document{Lines: lines})

	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrMissingIdentity)
}

func TestExtract_Deterministic(t *testing.T) {
	lines := []string{
		"Επώνυμο :", "Α", "Όνομα :", "Β",
		"Έσοδα από κάθε πηγή", "ΣΥΖΥΓΟΣ", "1.500,00", "ΕΥΡΩ",
		"Καταθέσεις σε τράπεζες", "3   200,00", "ΛΙΡΑ ΑΓΓΛΙΑΣ",
		"ΕΠΕΝΔΥΤΗΣ", "1,00 2,00 3,00",
	}
	x := newExtractor()

	first, err := x.Extract(extractor.Document{Lines: lines})
	require.NoError(t, err)
	second, err := x.Extract(extractor.Document{Lines: lines})
	require.NoError(t, err)

	assert.Equal(t, first.Entries, second.Entries)
	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, "GBP", first.Entries[1].AuxiliaryData[domain.AuxCurrencyCode])
}

func TestSummarize_MatchesEntryFold(t *testing.T) {
	entries := []domain.FinancialEntry{
		{SectionType: domain.SectionIncome, Amount: decimal.NewNullDecimal(decimal.RequireFromString("10.10"))},
		{SectionType: domain.SectionIncome, Amount: decimal.NewNullDecimal(decimal.RequireFromString("0.20"))},
		{SectionType: domain.SectionBankAccount, Amount: decimal.NewNullDecimal(decimal.NewFromInt(5))},
		{SectionType: domain.SectionSecurity, Amount: decimal.NewNullDecimal(decimal.NewFromInt(7))},
		{SectionType: domain.SectionRealEstate},
	}

	sum := extractor.Summarize(entries, 4)

	assert.True(t, decimal.RequireFromString("10.30").Equal(sum.TotalIncome))
	assert.True(t, decimal.NewFromInt(5).Equal(sum.TotalDeposits))
	assert.True(t, decimal.NewFromInt(7).Equal(sum.TotalInvestments))
	assert.Equal(t, 4, sum.RealEstateCount)
}
