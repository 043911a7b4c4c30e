// Package pdftext decodes declaration PDFs into plain text, one visual row
// per line.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"pothen/internal/domain"
	"pothen/internal/port"
)

// wordGap is the horizontal distance, in text space units, above which two
// runs on one row are separated by a space.
const wordGap = 1.0

type extractor struct {
	password string
}

// New returns a PDF TextExtractor. When password is set, documents are
// decrypted with it before decoding.
func New(password string) port.TextExtractor {
	return &extractor{password: password}
}

func (e *extractor) Extract(ctx context.Context, data []byte) (out *port.ExtractedText, err error) {
	// Both PDF libraries can panic on malformed files.
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("%w: pdf decode: %v", domain.ErrSourceUnreadable, r)
		}
	}()

	if e.password != "" {
		// Unencrypted files fail decryption and are decoded as they are.
		if plain, derr := decrypt(data, e.password); derr == nil {
			data = plain
		}
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: pdf open: %v", domain.ErrSourceUnreadable, err)
	}

	var sb strings.Builder
	pages := r.NumPage()
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("pdftext: page %d: %w", i, err)
		}
		for _, row := range rows {
			sb.WriteString(joinRow(row.Content))
			sb.WriteByte('\n')
		}
	}

	return &port.ExtractedText{
		Text:         sb.String(),
		Pages:        pages,
		MetadataYear: CreationYear(r.Trailer().Key("Info").Key("CreationDate").Text()),
	}, nil
}

// joinRow concatenates the text runs of one row, inserting a space where
// the runs are visibly apart.
func joinRow(runs pdf.TextHorizontal) string {
	var sb strings.Builder
	var end float64
	for i, t := range runs {
		if i > 0 && t.X-end > wordGap {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.S)
		end = t.X + t.W
	}
	return sb.String()
}

// CreationYear reads the year of a PDF date string ("D:20230415120000+03'00'").
// It returns 0 when the string carries no year.
func CreationYear(date string) int {
	date = strings.TrimPrefix(strings.TrimSpace(date), "D:")
	if len(date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil || y < 1900 {
		return 0
	}
	return y
}

func decrypt(data []byte, password string) ([]byte, error) {
	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password

	var out bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(data), &out, conf); err != nil {
		return nil, fmt.Errorf("%w: pdf decrypt: %v", domain.ErrSourceUnreadable, err)
	}
	return out.Bytes(), nil
}
