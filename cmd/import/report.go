package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"pothen/internal/service"
)

func printReport(out io.Writer, r *service.IngestReport) {
	name := strings.TrimSpace(r.Person.LastName + " " + r.Person.FirstName)
	if r.Person.FatherName != "" {
		name += " (" + r.Person.FatherName + ")"
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "File:\t%s\n", r.Path)
	fmt.Fprintf(tw, "Declarant:\t%s\n", name)
	fmt.Fprintf(tw, "Declaration:\t%s\n", r.Declaration.DeclarationNumber)
	fmt.Fprintf(tw, "Year:\t%d\n", r.Declaration.Year)
	fmt.Fprintf(tw, "Income:\t%s\n", r.Summary.TotalIncome.StringFixed(2))
	fmt.Fprintf(tw, "Deposits:\t%s\n", r.Summary.TotalDeposits.StringFixed(2))
	fmt.Fprintf(tw, "Investments:\t%s\n", r.Summary.TotalInvestments.StringFixed(2))
	fmt.Fprintf(tw, "Real estate:\t%d\n", r.Summary.RealEstateCount)
	fmt.Fprintf(tw, "Entries:\t%d\n", r.EntryCount)
	if r.Validation != nil {
		fmt.Fprintf(tw, "Checks:\t%s\n", r.Validation.Status)
		for _, f := range r.Validation.Findings {
			fmt.Fprintf(tw, "\t%s: %s\n", f.Severity, f.Message)
		}
	}
	switch {
	case r.DryRun:
		fmt.Fprintf(tw, "Stored:\tno (dry run)\n")
	case r.Reprocessed:
		fmt.Fprintf(tw, "Stored:\t%s (replaced)\n", r.DeclarationID)
	default:
		fmt.Fprintf(tw, "Stored:\t%s\n", r.DeclarationID)
	}
	_ = tw.Flush()
}
