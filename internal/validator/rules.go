package validator

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"pothen/internal/domain"
	"pothen/internal/extractor"
)

// MinDeclarationYear is the first year asset declarations were filed electronically.
const MinDeclarationYear = 2000

// RegisterBuiltins adds the built-in declaration checks. now bounds the
// plausible declaration year.
func RegisterBuiltins(r *Registry, now func() time.Time) {
	r.Register(&headerNumberValidator{})
	r.Register(&yearRangeValidator{now: now})
	r.Register(&nonNegativeAmountValidator{})
	r.Register(&summaryValidator{})
	r.Register(&contentValidator{})
}

type headerNumberValidator struct{}

func (v *headerNumberValidator) RuleKey() string                     { return "header.number_present" }
func (v *headerNumberValidator) RuleName() string                    { return "Declaration Number Present" }
func (v *headerNumberValidator) Severity() domain.ValidationSeverity { return domain.SeverityWarning }

func (v *headerNumberValidator) Validate(_ context.Context, res *extractor.Result) []Result {
	passed := !res.Declaration.Placeholder
	msg := "declaration number read from document"
	if !passed {
		msg = "declaration number not found, placeholder assigned"
	}
	return []Result{{
		Passed:      passed,
		FieldPath:   "declaration.declaration_number",
		ActualValue: res.Declaration.DeclarationNumber,
		Message:     msg,
	}}
}

type yearRangeValidator struct {
	now func() time.Time
}

func (v *yearRangeValidator) RuleKey() string                     { return "header.year_range" }
func (v *yearRangeValidator) RuleName() string                    { return "Declaration Year Plausible" }
func (v *yearRangeValidator) Severity() domain.ValidationSeverity { return domain.SeverityWarning }

func (v *yearRangeValidator) Validate(_ context.Context, res *extractor.Result) []Result {
	maxYear := v.now().Year() + 1
	year := res.Declaration.Year
	passed := year >= MinDeclarationYear && year <= maxYear
	msg := "declaration year is plausible"
	if !passed {
		msg = fmt.Sprintf("declaration year %d outside %d-%d", year, MinDeclarationYear, maxYear)
	}
	return []Result{{
		Passed:        passed,
		FieldPath:     "declaration.year",
		ExpectedValue: fmt.Sprintf("%d-%d", MinDeclarationYear, maxYear),
		ActualValue:   strconv.Itoa(year),
		Message:       msg,
	}}
}

// nonNegativeAmountValidator flags entries whose amount parsed negative,
// which usually means a stray sign was picked up from a neighbouring column.
type nonNegativeAmountValidator struct{}

func (v *nonNegativeAmountValidator) RuleKey() string                     { return "entries.amount_non_negative" }
func (v *nonNegativeAmountValidator) RuleName() string                    { return "Entry Amount Non-negative" }
func (v *nonNegativeAmountValidator) Severity() domain.ValidationSeverity { return domain.SeverityWarning }

func (v *nonNegativeAmountValidator) Validate(_ context.Context, res *extractor.Result) []Result {
	var results []Result
	for i := range res.Entries {
		e := &res.Entries[i]
		if !e.Amount.Valid {
			continue
		}
		passed := !e.Amount.Decimal.IsNegative()
		fieldPath := fmt.Sprintf("entries[%d].amount", i)
		msg := fieldPath + ": amount is non-negative"
		if !passed {
			msg = fmt.Sprintf("%s: negative amount at lines %d-%d", fieldPath, e.Provenance.Start, e.Provenance.End)
		}
		results = append(results, Result{
			Passed:        passed,
			FieldPath:     fieldPath,
			ExpectedValue: ">= 0",
			ActualValue:   e.Amount.Decimal.String(),
			Message:       msg,
		})
	}
	return results
}

// summaryValidator checks the stored summary against a refold of the entries.
type summaryValidator struct{}

func (v *summaryValidator) RuleKey() string                     { return "summary.matches_entries" }
func (v *summaryValidator) RuleName() string                    { return "Summary Matches Entries" }
func (v *summaryValidator) Severity() domain.ValidationSeverity { return domain.SeverityError }

func (v *summaryValidator) Validate(_ context.Context, res *extractor.Result) []Result {
	want := extractor.Summarize(res.Entries, len(res.RealEstateLines))
	got := res.Summary

	checks := []struct {
		field     string
		want, got string
	}{
		{"summary.total_income", want.TotalIncome.StringFixed(2), got.TotalIncome.StringFixed(2)},
		{"summary.total_deposits", want.TotalDeposits.StringFixed(2), got.TotalDeposits.StringFixed(2)},
		{"summary.total_investments", want.TotalInvestments.StringFixed(2), got.TotalInvestments.StringFixed(2)},
		{"summary.real_estate_count", strconv.Itoa(want.RealEstateCount), strconv.Itoa(got.RealEstateCount)},
	}

	results := make([]Result, 0, len(checks))
	for _, c := range checks {
		passed := c.want == c.got
		msg := c.field + ": matches entries"
		if !passed {
			msg = fmt.Sprintf("%s: expected %s from entries, got %s", c.field, c.want, c.got)
		}
		results = append(results, Result{
			Passed:        passed,
			FieldPath:     c.field,
			ExpectedValue: c.want,
			ActualValue:   c.got,
			Message:       msg,
		})
	}
	return results
}

// contentValidator warns when nothing at all was extracted, which points at
// a layout the anchors do not recognise.
type contentValidator struct{}

func (v *contentValidator) RuleKey() string                     { return "declaration.has_content" }
func (v *contentValidator) RuleName() string                    { return "Declaration Has Content" }
func (v *contentValidator) Severity() domain.ValidationSeverity { return domain.SeverityWarning }

func (v *contentValidator) Validate(_ context.Context, res *extractor.Result) []Result {
	n := len(res.Entries) + len(res.RealEstateLines)
	passed := n > 0
	msg := "declaration has extracted items"
	if !passed {
		msg = "no entries or real estate items extracted"
	}
	return []Result{{
		Passed:      passed,
		FieldPath:   "entries",
		ActualValue: strconv.Itoa(n),
		Message:     msg,
	}}
}
