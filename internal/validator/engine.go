package validator

import (
	"context"
	"time"

	"pothen/internal/domain"
	"pothen/internal/extractor"
)

// Finding is a failed check.
type Finding struct {
	RuleKey   string                    `json:"rule_key"`
	RuleName  string                    `json:"rule_name"`
	Severity  domain.ValidationSeverity `json:"severity"`
	FieldPath string                    `json:"field_path"`
	Message   string                    `json:"message"`
}

// Report is the outcome of running every registered check.
type Report struct {
	Status   domain.ValidationStatus `json:"status"`
	Findings []Finding               `json:"findings"`
}

// Engine runs registered checks against extraction results.
type Engine struct {
	registry *Registry
}

// NewEngine creates a new validation engine.
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// NewDefaultEngine creates an engine with the built-in checks registered.
func NewDefaultEngine(now func() time.Time) *Engine {
	r := NewRegistry()
	RegisterBuiltins(r, now)
	return NewEngine(r)
}

// Validate runs all checks. Any failed error-severity check makes the
// report invalid; failed warnings only downgrade it to warning.
func (e *Engine) Validate(ctx context.Context, res *extractor.Result) *Report {
	report := &Report{Status: domain.ValidationValid, Findings: []Finding{}}

	for _, v := range e.registry.All() {
		for _, r := range v.Validate(ctx, res) {
			if r.Passed {
				continue
			}
			report.Findings = append(report.Findings, Finding{
				RuleKey:   v.RuleKey(),
				RuleName:  v.RuleName(),
				Severity:  v.Severity(),
				FieldPath: r.FieldPath,
				Message:   r.Message,
			})
			if v.Severity() == domain.SeverityError {
				report.Status = domain.ValidationInvalid
			} else if report.Status != domain.ValidationInvalid {
				report.Status = domain.ValidationWarning
			}
		}
	}
	return report
}
