package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pothen/internal/domain"
	"pothen/internal/extractor"
	"pothen/internal/port"
	"pothen/internal/service"
	"pothen/internal/validator"
	"pothen/mocks"
)

const declarationText = `Επώνυμο :
ΠΑΠΑΔΟΠΟΥΛΟΣ
Όνομα :
ΓΙΩΡΓΟΣ
ΑΡΙΘΜΟΣ ΔΗΛΩΣΗΣ :
555
Έσοδα από κάθε πηγή
1.500,00
ΕΥΡΩ
Καταθέσεις σε τράπεζες
3   200,00
ΕΥΡΩ
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testExtractor() *extractor.Extractor {
	now := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	return extractor.New(
		extractor.WithClock(func() time.Time { return now }),
		extractor.WithLogger(discardLogger()),
	)
}

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestIngestService_Ingest_TextFilePersists(t *testing.T) {
	store := new(mocks.MockDeclarationStore)
	src := writeSource(t, "pothen_2021.txt", declarationText)
	declID := uuid.New()

	store.On("SaveExtraction", mock.Anything, mock.MatchedBy(func(rec *port.ExtractionRecord) bool {
		return rec.SourceFile == src &&
			rec.Declaration.DeclarationNumber == "555" &&
			rec.Declaration.Year == 2021 &&
			len(rec.Entries) == 2 &&
			rec.Summary.TotalIncome.Equal(decimal.NewFromInt(1500))
	})).Return(&port.SaveResult{
		Declaration: &domain.Declaration{ID: declID},
		Reprocessed: true,
	}, nil)

	svc := service.NewIngestService(store, nil, new(mocks.MockTextExtractor), testExtractor(), nil,
		service.IngestConfig{}, discardLogger())

	report, err := svc.Ingest(context.Background(), src)

	require.NoError(t, err)
	assert.Equal(t, declID, report.DeclarationID)
	assert.True(t, report.Reprocessed)
	assert.Equal(t, 2, report.EntryCount)
	assert.Equal(t, "ΓΙΩΡΓΟΣ", report.Person.FirstName)
	assert.True(t, decimal.NewFromInt(200).Equal(report.Summary.TotalDeposits))
	store.AssertExpectations(t)
}

func TestIngestService_Ingest_PDFUsesTextExtractor(t *testing.T) {
	store := new(mocks.MockDeclarationStore)
	text := new(mocks.MockTextExtractor)
	src := writeSource(t, "declaration.pdf", "%PDF-1.7 stub")

	text.On("Extract", mock.Anything, []byte("%PDF-1.7 stub")).
		Return(&port.ExtractedText{Text: declarationText, Pages: 1, MetadataYear: 2019}, nil)
	store.On("SaveExtraction", mock.Anything, mock.MatchedBy(func(rec *port.ExtractionRecord) bool {
		return rec.Declaration.Year == 2019
	})).Return(&port.SaveResult{Declaration: &domain.Declaration{ID: uuid.New()}}, nil)

	svc := service.NewIngestService(store, nil, text, testExtractor(), nil, service.IngestConfig{}, discardLogger())

	report, err := svc.Ingest(context.Background(), src)

	require.NoError(t, err)
	assert.False(t, report.Reprocessed)
	assert.Equal(t, 2019, report.Declaration.Year)
	text.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestIngestService_Ingest_MissingIdentityWritesNothing(t *testing.T) {
	store := new(mocks.MockDeclarationStore)
	src := writeSource(t, "anonymous.txt", "Έσοδα από κάθε πηγή\n1.500,00\nΕΥΡΩ\n")

	svc := service.NewIngestService(store, nil, new(mocks.MockTextExtractor), testExtractor(), nil,
		service.IngestConfig{}, discardLogger())

	report, err := svc.Ingest(context.Background(), src)

	assert.Nil(t, report)
	assert.ErrorIs(t, err, domain.ErrMissingIdentity)
	store.AssertNotCalled(t, "SaveExtraction", mock.Anything, mock.Anything)
}

func TestIngestService_Ingest_MissingFile(t *testing.T) {
	svc := service.NewIngestService(new(mocks.MockDeclarationStore), nil, new(mocks.MockTextExtractor),
		testExtractor(), nil, service.IngestConfig{}, discardLogger())

	_, err := svc.Ingest(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"))

	assert.ErrorIs(t, err, domain.ErrSourceUnreadable)
}

func TestIngestService_Ingest_DirectoryIsInvalid(t *testing.T) {
	svc := service.NewIngestService(nil, nil, nil, testExtractor(), nil, service.IngestConfig{}, discardLogger())

	_, err := svc.Ingest(context.Background(), t.TempDir())

	assert.ErrorIs(t, err, domain.ErrInvalidSource)
}

func TestIngestService_Ingest_DryRunSkipsStore(t *testing.T) {
	src := writeSource(t, "pothen.txt", declarationText)
	svc := service.NewIngestService(nil, nil, nil, testExtractor(), nil,
		service.IngestConfig{DryRun: true}, discardLogger())

	report, err := svc.Ingest(context.Background(), src)

	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Equal(t, uuid.Nil, report.DeclarationID)
	assert.Equal(t, 2, report.EntryCount)
}

func TestIngestService_Ingest_S3SourceAndAudit(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	store := new(mocks.MockDeclarationStore)

	storage.On("Download", mock.Anything, "declarations", "2022/pothen_2022.txt").
		Return([]byte(declarationText), nil)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		body, _ := io.ReadAll(in.Body)
		return in.Bucket == "audit" &&
			in.Key == "lines/555/pothen_2022.txt" &&
			strings.HasPrefix(string(body), "00000\tΕπώνυμο :\n")
	})).Return(&port.UploadOutput{Location: "s3://audit/lines/555/pothen_2022.txt"}, nil)
	store.On("SaveExtraction", mock.Anything, mock.Anything).
		Return(&port.SaveResult{Declaration: &domain.Declaration{ID: uuid.New()}}, nil)

	svc := service.NewIngestService(store, storage, nil, testExtractor(), nil,
		service.IngestConfig{AuditBucket: "audit"}, discardLogger())

	report, err := svc.Ingest(context.Background(), "s3://declarations/2022/pothen_2022.txt")

	require.NoError(t, err)
	assert.Equal(t, "lines/555/pothen_2022.txt", report.AuditKey)
	assert.Equal(t, 2022, report.Declaration.Year)
	storage.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestIngestService_Ingest_AuditFailureIsNotFatal(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	src := writeSource(t, "pothen.txt", declarationText)

	storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("bucket unavailable"))

	svc := service.NewIngestService(nil, storage, nil, testExtractor(), nil,
		service.IngestConfig{AuditBucket: "audit", DryRun: true}, discardLogger())

	report, err := svc.Ingest(context.Background(), src)

	require.NoError(t, err)
	assert.Empty(t, report.AuditKey)
}

func TestIngestService_Ingest_S3WithoutStorage(t *testing.T) {
	svc := service.NewIngestService(nil, nil, nil, testExtractor(), nil, service.IngestConfig{}, discardLogger())

	_, err := svc.Ingest(context.Background(), "s3://bucket/key.pdf")

	assert.ErrorIs(t, err, domain.ErrInvalidSource)
}

func TestIngestService_Ingest_StoreErrorPropagates(t *testing.T) {
	store := new(mocks.MockDeclarationStore)
	src := writeSource(t, "pothen.txt", declarationText)
	store.On("SaveExtraction", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

	svc := service.NewIngestService(store, nil, nil, testExtractor(), nil, service.IngestConfig{}, discardLogger())

	_, err := svc.Ingest(context.Background(), src)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestIngestService_Ingest_RunsQualityChecks(t *testing.T) {
	text := strings.Replace(declarationText, "ΑΡΙΘΜΟΣ ΔΗΛΩΣΗΣ :\n555\n", "", 1)
	src := writeSource(t, "pothen_2021.txt", text)
	checks := validator.NewDefaultEngine(func() time.Time { return time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC) })

	svc := service.NewIngestService(nil, nil, nil, testExtractor(), checks,
		service.IngestConfig{DryRun: true}, discardLogger())

	report, err := svc.Ingest(context.Background(), src)
	require.NoError(t, err)
	require.NotNil(t, report.Validation)
	assert.Equal(t, domain.ValidationWarning, report.Validation.Status)
	require.Len(t, report.Validation.Findings, 1)
	assert.Equal(t, "header.number_present", report.Validation.Findings[0].RuleKey)
}

func TestIngestService_Ingest_PlaceholderNumbersStayDistinct(t *testing.T) {
	noNumber := strings.Replace(declarationText, "ΑΡΙΘΜΟΣ ΔΗΛΩΣΗΣ :\n555\n", "", 1)
	other := strings.Replace(noNumber, "ΠΑΠΑΔΟΠΟΥΛΟΣ", "ΝΙΚΟΛΑΟΥ", 1)
	first := writeSource(t, "pothen_2021_a.txt", noNumber)
	second := writeSource(t, "pothen_2021_b.txt", other)

	// Both documents get the same synthesized number from the fixed clock.
	placeholder := extractor.PlaceholderNumber(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))

	store := new(mocks.MockDeclarationStore)
	store.On("SaveExtraction", mock.Anything, mock.MatchedBy(func(rec *port.ExtractionRecord) bool {
		return rec.SourceFile == first
	})).Return(&port.SaveResult{
		Declaration: &domain.Declaration{ID: uuid.New(), DeclarationNumber: placeholder},
	}, nil)
	store.On("SaveExtraction", mock.Anything, mock.MatchedBy(func(rec *port.ExtractionRecord) bool {
		return rec.SourceFile == second
	})).Return(&port.SaveResult{
		Declaration: &domain.Declaration{ID: uuid.New(), DeclarationNumber: placeholder + "-2"},
	}, nil)

	svc := service.NewIngestService(store, nil, nil, testExtractor(), nil, service.IngestConfig{}, discardLogger())

	a, err := svc.Ingest(context.Background(), first)
	require.NoError(t, err)
	b, err := svc.Ingest(context.Background(), second)
	require.NoError(t, err)

	for _, call := range store.Calls {
		rec := call.Arguments.Get(1).(*port.ExtractionRecord)
		assert.True(t, rec.Declaration.Placeholder)
		assert.Equal(t, placeholder, rec.Declaration.DeclarationNumber)
	}
	assert.Equal(t, placeholder, a.Declaration.DeclarationNumber)
	assert.Equal(t, placeholder+"-2", b.Declaration.DeclarationNumber)
	assert.NotEqual(t, a.DeclarationID, b.DeclarationID)
	assert.False(t, a.Reprocessed)
	assert.False(t, b.Reprocessed)
	store.AssertNumberOfCalls(t, "SaveExtraction", 2)
}
