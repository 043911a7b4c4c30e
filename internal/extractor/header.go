package extractor

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"pothen/internal/domain"
)

const anchorDeclarationNumber = "ΑΡΙΘΜΟΣ ΔΗΛΩΣΗΣ :"

var yearRun = regexp.MustCompile(`\d{4}`)

// PlaceholderNumber synthesizes a declaration number from a timestamp.
func PlaceholderNumber(now time.Time) string {
	return fmt.Sprintf("AUTO-%d", now.UnixMilli())
}

// ExtractHeader reads the declaration number and infers the declaration
// year. The year comes from the first four-digit run of the file name,
// then the document metadata year, then the calendar year of now.
func ExtractHeader(lines []string, filename string, metadataYear int, now time.Time) domain.ExtractedDeclaration {
	h := domain.ExtractedDeclaration{
		DeclarationNumber: PlaceholderNumber(now),
		Placeholder:       true,
		Year:              inferYear(filename, metadataYear, now),
	}

	for i, line := range lines {
		if !strings.Contains(line, anchorDeclarationNumber) {
			continue
		}
		if i+1 < len(lines) {
			h.DeclarationNumber = lines[i+1]
			h.Placeholder = false
		}
		break
	}
	return h
}

func inferYear(filename string, metadataYear int, now time.Time) int {
	if run := yearRun.FindString(filepath.Base(filename)); run != "" {
		if y, err := strconv.Atoi(run); err == nil {
			return y
		}
	}
	if metadataYear > 0 {
		return metadataYear
	}
	return now.Year()
}
