package domain

// SectionType identifies the declaration section a line or entry belongs to.
type SectionType string

const (
	SectionNone        SectionType = "NONE"
	SectionIncome      SectionType = "INCOME"
	SectionBankAccount SectionType = "BANK_ACCOUNT"
	SectionSecurity    SectionType = "SECURITY"
	SectionRealEstate  SectionType = "REAL_ESTATE"
	SectionOther       SectionType = "OTHER"
)

// AllSectionTypes lists every section in declaration order.
var AllSectionTypes = []SectionType{
	SectionNone,
	SectionIncome,
	SectionBankAccount,
	SectionSecurity,
	SectionRealEstate,
	SectionOther,
}

// Valid reports whether s is one of the enumerated section types.
func (s SectionType) Valid() bool {
	for _, t := range AllSectionTypes {
		if s == t {
			return true
		}
	}
	return false
}

// HolderRole identifies whose asset or income an entry records.
type HolderRole string

const (
	RoleDeclarant HolderRole = "SUBJECT"
	RoleSpouse    HolderRole = "SPOUSE"
)

// Fixed entry notes, one per emitting section.
const (
	NoteIncome     = "Auto-extracted"
	NoteDeposit    = "Deposit"
	NoteInvestment = "Investment Valuation"
)

// Auxiliary data keys.
const (
	AuxDescription  = "description"
	AuxRaw          = "raw"
	AuxAcquisition  = "acquisition"
	AuxValuation    = "valuation"
	AuxSold         = "sold"
	AuxCurrencyCode = "currency_code"
)

// ValidationSeverity is how much a failed check matters.
type ValidationSeverity string

const (
	SeverityError   ValidationSeverity = "error"
	SeverityWarning ValidationSeverity = "warning"
)

// ValidationStatus is the combined outcome of all checks on a declaration.
type ValidationStatus string

const (
	ValidationValid   ValidationStatus = "valid"
	ValidationWarning ValidationStatus = "warning"
	ValidationInvalid ValidationStatus = "invalid"
)
