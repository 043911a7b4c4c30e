package extractor_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pothen/internal/domain"
	"pothen/internal/extractor"
)

func TestExtractIdentity_WithoutFather(t *testing.T) {
	lines := []string{"Επώνυμο :", "ΠΑΠΑΔΟΠΟΥΛΟΣ", "Όνομα :", "ΓΙΩΡΓΟΣ"}

	p, err := extractor.ExtractIdentity(lines)

	require.NoError(t, err)
	assert.Equal(t, "ΠΑΠΑΔΟΠΟΥΛΟΣ", p.LastName)
	assert.Equal(t, "ΓΙΩΡΓΟΣ", p.FirstName)
	assert.Empty(t, p.FatherName)
}

func TestExtractIdentity_FirstMatchWins(t *testing.T) {
	lines := []string{
		"Επώνυμο :", "ΠΑΠΑΔΟΠΟΥΛΟΣ",
		"Όνομα :", "ΓΙΩΡΓΟΣ",
		"Όνομα πατρός :", "ΝΙΚΟΛΑΟΣ",
		"Επώνυμο :", "ΑΛΛΟΣ",
	}

	p, err := extractor.ExtractIdentity(lines)

	require.NoError(t, err)
	assert.Equal(t, "ΠΑΠΑΔΟΠΟΥΛΟΣ", p.LastName)
	assert.Equal(t, "ΝΙΚΟΛΑΟΣ", p.FatherName)
}

func TestExtractIdentity_MissingFirstName(t *testing.T) {
	lines := []string{"Επώνυμο :", "ΠΑΠΑΔΟΠΟΥΛΟΣ", "Όνομα :"}

	_, err := extractor.ExtractIdentity(lines)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingIdentity))
	var missing *extractor.MissingIdentityError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"first_name"}, missing.Missing)
}

func TestExtractIdentity_AnchorIsExactLine(t *testing.T) {
	lines := []string{"Επώνυμο : ΠΑΠΑΔΟΠΟΥΛΟΣ", "Όνομα : ΓΙΩΡΓΟΣ"}

	_, err := extractor.ExtractIdentity(lines)

	var missing *extractor.MissingIdentityError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"first_name", "last_name"}, missing.Missing)
}

func TestExtractHeader_NumberAndYearFromFilename(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	lines := []string{"ΔΗΛΩΣΗ", "ΑΡΙΘΜΟΣ ΔΗΛΩΣΗΣ : ", "123456"}

	h := extractor.ExtractHeader(lines, "/data/2019/pothen_2021_x.pdf", 2018, now)

	assert.Equal(t, "123456", h.DeclarationNumber)
	assert.False(t, h.Placeholder)
	assert.Equal(t, 2021, h.Year)
}

func TestExtractHeader_Fallbacks(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	h := extractor.ExtractHeader([]string{"ΑΡΙΘΜΟΣ ΔΗΛΩΣΗΣ :"}, "declaration.pdf", 0, now)

	assert.True(t, h.Placeholder)
	assert.Equal(t, extractor.PlaceholderNumber(now), h.DeclarationNumber)
	assert.Equal(t, "AUTO-1772323200000", h.DeclarationNumber)
	assert.Equal(t, 2026, h.Year)
}

func TestExtractHeader_YearIgnoresDirectories(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	h := extractor.ExtractHeader(nil, "/data/2019/declaration.pdf", 0, now)
	assert.Equal(t, 2026, h.Year)

	h = extractor.ExtractHeader(nil, "/data/2019/declaration.pdf", 2017, now)
	assert.Equal(t, 2017, h.Year)
}

func TestExtractHeader_MetadataYear(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	h := extractor.ExtractHeader(nil, "declaration.pdf", 2017, now)

	assert.Equal(t, 2017, h.Year)
}
