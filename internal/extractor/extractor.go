// Package extractor turns the normalized lines of an asset declaration into
// a declarant identity, a declaration header and typed financial entries.
package extractor

import (
	"log/slog"
	"time"

	"pothen/internal/domain"
)

// Document is the input of one extraction run.
type Document struct {
	Lines        []string
	Filename     string
	MetadataYear int
}

// Result is the output of one extraction run.
type Result struct {
	Person          domain.ExtractedPerson      `json:"person"`
	Declaration     domain.ExtractedDeclaration `json:"declaration"`
	Entries         []domain.FinancialEntry     `json:"entries"`
	Summary         domain.DeclarationSummary   `json:"summary"`
	RealEstateLines []int                       `json:"real_estate_lines"`
}

// ScanResult is the outcome of the section scan alone.
// Sections holds the section in effect at every line; anchor lines carry
// the section they open.
type ScanResult struct {
	Sections        []domain.SectionType
	Entries         []domain.FinancialEntry
	RealEstateLines []int
	Summary         domain.DeclarationSummary
}

type Option func(*Extractor)

// WithClock sets the clock used for placeholder numbers and the fallback year.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) { e.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Extractor) { e.logger = l }
}

// Extractor runs the extraction pipeline. It holds no per-document state
// and may be used from several goroutines.
type Extractor struct {
	now    func() time.Time
	logger *slog.Logger
}

func New(opts ...Option) *Extractor {
	e := &Extractor{now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract runs the whole pipeline over doc. It fails only when the
// declarant's first or last name cannot be found.
func (e *Extractor) Extract(doc Document) (*Result, error) {
	person, err := ExtractIdentity(doc.Lines)
	if err != nil {
		return nil, err
	}
	header := ExtractHeader(doc.Lines, doc.Filename, doc.MetadataYear, e.now())
	scan := e.Scan(doc.Lines)

	return &Result{
		Person:          person,
		Declaration:     header,
		Entries:         scan.Entries,
		Summary:         scan.Summary,
		RealEstateLines: scan.RealEstateLines,
	}, nil
}

// Scan classifies lines and runs the per-section extractors in one
// forward pass.
func (e *Extractor) Scan(lines []string) ScanResult {
	s := &scanner{
		lines:      lines,
		classifier: NewClassifier(),
		currency:   newCurrencyMatcher(),
		logger:     e.logger.With("component", "extractor"),
	}

	st := scanState{section: domain.SectionNone, summary: emptySummary()}
	sections := make([]domain.SectionType, len(lines))
	for i := range lines {
		st = s.step(st, i)
		sections[i] = st.section
	}

	st.summary.RealEstateCount = len(st.realEstate)
	return ScanResult{
		Sections:        sections,
		Entries:         st.entries,
		RealEstateLines: st.realEstate,
		Summary:         st.summary,
	}
}

// scanState is the fold state carried from one line to the next.
type scanState struct {
	section    domain.SectionType
	entries    []domain.FinancialEntry
	summary    domain.DeclarationSummary
	realEstate []int
}

func (st scanState) emit(entry domain.FinancialEntry) scanState {
	st.entries = append(st.entries, entry)
	st.summary = Accumulate(st.summary, entry)
	return st
}

// scanner holds the read-only inputs of one scan.
type scanner struct {
	lines      []string
	classifier *Classifier
	currency   currencyMatcher
	logger     *slog.Logger
}

func (s *scanner) step(st scanState, i int) scanState {
	line := s.lines[i]
	if section, ok := s.classifier.Classify(line); ok {
		st.section = section
		return st
	}

	var (
		entry domain.FinancialEntry
		ok    bool
	)
	switch st.section {
	case domain.SectionIncome:
		if s.currency.isTrigger(line) {
			entry, ok = s.extractIncome(i)
		}
	case domain.SectionBankAccount:
		if s.currency.isTrigger(line) {
			entry, ok = s.extractDeposit(i)
		}
	case domain.SectionSecurity:
		entry, ok = s.extractSecurity(i)
	case domain.SectionRealEstate:
		if isRealEstateItem(line) {
			st.realEstate = append(st.realEstate, i)
		}
	}
	if ok {
		st = st.emit(entry)
	}
	return st
}

func (s *scanner) miss(section domain.SectionType, line int, reason string) {
	s.logger.Debug("trigger discarded", "section", section, "line", line, "reason", reason)
}

func (s *scanner) addCurrencyCode(aux map[string]string, trigger string) {
	if code := s.currency.code(trigger); code != "" {
		aux[domain.AuxCurrencyCode] = code
	}
}
