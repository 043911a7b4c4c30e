package validator

import (
	"context"

	"pothen/internal/domain"
	"pothen/internal/extractor"
)

// Validator is a single quality check run against an extraction result.
type Validator interface {
	Validate(ctx context.Context, res *extractor.Result) []Result
	RuleKey() string
	RuleName() string
	Severity() domain.ValidationSeverity
}

// Result is the outcome of one check on one field.
type Result struct {
	Passed        bool   `json:"passed"`
	FieldPath     string `json:"field_path"`
	ExpectedValue string `json:"expected_value,omitempty"`
	ActualValue   string `json:"actual_value,omitempty"`
	Message       string `json:"message"`
}
