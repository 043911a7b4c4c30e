package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Declarations"

// WriteXLSX writes rows as a single-sheet workbook. Amount cells are numeric.
func WriteXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("export xlsx: %w", err)
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("export xlsx header: %w", err)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export xlsx: %w", err)
		}
		values := rowValues(&rows[i])
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("export xlsx row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export xlsx: %w", err)
	}
	return nil
}

func rowValues(r *Row) []any {
	return []any{
		r.LastName,
		r.FirstName,
		r.FatherName,
		r.DeclarationNumber,
		r.Year,
		amountCell(r.TotalIncome),
		amountCell(r.TotalDeposits),
		amountCell(r.TotalInvestments),
		r.RealEstateCount,
		r.SourceFile,
	}
}

func amountCell(s string) any {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return d.InexactFloat64()
}
