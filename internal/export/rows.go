// Package export writes stored declarations as CSV or XLSX tables.
package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"pothen/internal/domain"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("export: unsupported file extension %q (want .csv or .xlsx)", filepath.Ext(path))
	}
}

// Row is one exported declaration.
type Row struct {
	LastName          string `csv:"Last Name"`
	FirstName         string `csv:"First Name"`
	FatherName        string `csv:"Father Name"`
	DeclarationNumber string `csv:"Declaration Number"`
	Year              int    `csv:"Year"`
	TotalIncome       string `csv:"Total Income"`
	TotalDeposits     string `csv:"Total Deposits"`
	TotalInvestments  string `csv:"Total Investments"`
	RealEstateCount   int    `csv:"Real Estate Count"`
	SourceFile        string `csv:"Source File"`
}

// columns mirrors the csv tags of Row for the XLSX header.
var columns = []string{
	"Last Name",
	"First Name",
	"Father Name",
	"Declaration Number",
	"Year",
	"Total Income",
	"Total Deposits",
	"Total Investments",
	"Real Estate Count",
	"Source File",
}

// RowsFrom converts stored declarations to export rows. Amounts keep two
// decimal places.
func RowsFrom(decls []domain.DeclarationWithPerson) []Row {
	rows := make([]Row, 0, len(decls))
	for i := range decls {
		d := &decls[i]
		rows = append(rows, Row{
			LastName:          d.Person.LastName,
			FirstName:         d.Person.FirstName,
			FatherName:        d.Person.FatherName,
			DeclarationNumber: d.DeclarationNumber,
			Year:              d.Year,
			TotalIncome:       d.TotalIncome.StringFixed(2),
			TotalDeposits:     d.TotalDeposits.StringFixed(2),
			TotalInvestments:  d.TotalInvestments.StringFixed(2),
			RealEstateCount:   d.RealEstateCount,
			SourceFile:        d.SourceFile,
		})
	}
	return rows
}

// Write encodes rows to w in the given format.
func Write(w io.Writer, format Format, rows []Row) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, rows)
	case FormatXLSX:
		return WriteXLSX(w, rows)
	default:
		return fmt.Errorf("export: unknown format %q", format)
	}
}
