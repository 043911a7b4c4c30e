package extractor

import (
	"fmt"
	"strings"

	"pothen/internal/domain"
)

const (
	anchorLastName   = "Επώνυμο :"
	anchorFirstName  = "Όνομα :"
	anchorFatherName = "Όνομα πατρός :"
)

// MissingIdentityError reports which mandatory identity fields were not found.
type MissingIdentityError struct {
	Missing []string
}

func (e *MissingIdentityError) Error() string {
	return fmt.Sprintf("%s: missing %s", domain.ErrMissingIdentity, strings.Join(e.Missing, ", "))
}

// Is makes errors.Is(err, domain.ErrMissingIdentity) hold.
func (e *MissingIdentityError) Is(target error) bool {
	return target == domain.ErrMissingIdentity
}

// ExtractIdentity reads the declarant's names from the lines that follow
// their label lines. The first occurrence of each label wins and scanning
// stops once all three are found. The father's name is optional.
func ExtractIdentity(lines []string) (domain.ExtractedPerson, error) {
	var p domain.ExtractedPerson
	var haveLast, haveFirst, haveFather bool

	for i, line := range lines {
		if haveLast && haveFirst && haveFather {
			break
		}
		switch line {
		case anchorLastName:
			if !haveLast {
				p.LastName, haveLast = valueAfter(lines, i), true
			}
		case anchorFirstName:
			if !haveFirst {
				p.FirstName, haveFirst = valueAfter(lines, i), true
			}
		case anchorFatherName:
			if !haveFather {
				p.FatherName, haveFather = valueAfter(lines, i), true
			}
		}
	}

	var missing []string
	if p.FirstName == "" {
		missing = append(missing, "first_name")
	}
	if p.LastName == "" {
		missing = append(missing, "last_name")
	}
	if len(missing) > 0 {
		return domain.ExtractedPerson{}, &MissingIdentityError{Missing: missing}
	}
	return p, nil
}

func valueAfter(lines []string, i int) string {
	if i+1 >= len(lines) {
		return ""
	}
	return lines[i+1]
}
