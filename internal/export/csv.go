package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// BOM lets spreadsheet tools detect UTF-8 and render Greek names correctly.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes a BOM, a header row and one line per row.
func WriteCSV(w io.Writer, rows []Row) error {
	if _, err := w.Write(BOM); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	return nil
}
