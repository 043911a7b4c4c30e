package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExtractedPerson is the declarant identity read from a document.
type ExtractedPerson struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	FatherName string `json:"father_name,omitempty"`
}

// ExtractedDeclaration is the declaration header read from a document.
// Placeholder is set when DeclarationNumber was synthesized.
type ExtractedDeclaration struct {
	DeclarationNumber string `json:"declaration_number"`
	Year              int    `json:"year"`
	Placeholder       bool   `json:"placeholder"`
}

// Provenance is the inclusive range of normalized line indexes an entry was read from.
type Provenance struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// FinancialEntry is one typed item extracted from a declaration section.
type FinancialEntry struct {
	SectionType   SectionType         `json:"section_type"`
	HolderRole    HolderRole          `json:"holder_role"`
	Amount        decimal.NullDecimal `json:"amount"`
	CurrencyLabel string              `json:"currency_label,omitempty"`
	AuxiliaryData map[string]string   `json:"auxiliary_data"`
	Notes         string              `json:"notes"`
	Provenance    Provenance          `json:"provenance"`
}

// DeclarationSummary is the fold of a declaration's entries.
type DeclarationSummary struct {
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalDeposits    decimal.Decimal `json:"total_deposits"`
	TotalInvestments decimal.Decimal `json:"total_investments"`
	RealEstateCount  int             `json:"real_estate_count"`
}

// Person is a stored declarant.
type Person struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	FirstName  string     `db:"first_name" json:"first_name"`
	LastName   string     `db:"last_name" json:"last_name"`
	FatherName string     `db:"father_name" json:"father_name"`
	Role       HolderRole `db:"role" json:"role"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// Declaration is a stored declaration header with its summary columns.
type Declaration struct {
	ID                uuid.UUID       `db:"id" json:"id"`
	PersonID          uuid.UUID       `db:"person_id" json:"person_id"`
	DeclarationNumber string          `db:"declaration_number" json:"declaration_number"`
	Year              int             `db:"year" json:"year"`
	SourceFile        string          `db:"source_file" json:"source_file"`
	TotalIncome       decimal.Decimal `db:"total_income" json:"total_income"`
	TotalDeposits     decimal.Decimal `db:"total_deposits" json:"total_deposits"`
	TotalInvestments  decimal.Decimal `db:"total_investments" json:"total_investments"`
	RealEstateCount   int             `db:"real_estate_count" json:"real_estate_count"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}

// Summary returns the stored summary columns.
func (d *Declaration) Summary() DeclarationSummary {
	return DeclarationSummary{
		TotalIncome:      d.TotalIncome,
		TotalDeposits:    d.TotalDeposits,
		TotalInvestments: d.TotalInvestments,
		RealEstateCount:  d.RealEstateCount,
	}
}

// DeclarationWithPerson is a declaration row joined with its declarant.
type DeclarationWithPerson struct {
	Declaration
	Person Person `db:"person" json:"person"`
}

// DeclarationDetail is a declaration with its declarant and entries.
type DeclarationDetail struct {
	DeclarationWithPerson
	Sections []SectionEntry `json:"sections"`
}

// SectionEntry is a stored FinancialEntry.
type SectionEntry struct {
	ID            uuid.UUID           `db:"id" json:"id"`
	DeclarationID uuid.UUID           `db:"declaration_id" json:"declaration_id"`
	Seq           int                 `db:"seq" json:"seq"`
	SectionType   SectionType         `db:"section_type" json:"section_type"`
	HolderRole    HolderRole          `db:"holder_role" json:"holder_role"`
	Amount        decimal.NullDecimal `db:"amount" json:"amount"`
	Currency      string              `db:"currency" json:"currency"`
	Data          json.RawMessage     `db:"data" json:"data"`
	Notes         string              `db:"notes" json:"notes"`
	LineStart     int                 `db:"line_start" json:"line_start"`
	LineEnd       int                 `db:"line_end" json:"line_end"`
	CreatedAt     time.Time           `db:"created_at" json:"created_at"`
}

// Stats holds aggregate figures across all stored declarations.
type Stats struct {
	TotalDeclarations int             `db:"total_declarations" json:"total_declarations"`
	TotalPersons      int             `db:"total_persons" json:"total_persons"`
	TotalIncome       decimal.Decimal `db:"total_income" json:"total_income"`
	TotalDeposits     decimal.Decimal `db:"total_deposits" json:"total_deposits"`
	TotalInvestments  decimal.Decimal `db:"total_investments" json:"total_investments"`
	TotalRealEstate   int             `db:"total_real_estate" json:"total_real_estate"`
	ByYear            []YearStats     `db:"-" json:"by_year"`
}

// YearStats holds aggregate figures for one declaration year.
type YearStats struct {
	Year             int             `db:"year" json:"year"`
	Declarations     int             `db:"declarations" json:"declarations"`
	TotalIncome      decimal.Decimal `db:"total_income" json:"total_income"`
	TotalDeposits    decimal.Decimal `db:"total_deposits" json:"total_deposits"`
	TotalInvestments decimal.Decimal `db:"total_investments" json:"total_investments"`
}
