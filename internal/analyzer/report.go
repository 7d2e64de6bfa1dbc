package analyzer

import (
	"fmt"

	"github.com/ludo-technologies/htmlscan/domain"
)

// reportBuilder accumulates findings for one validate call. Every call
// allocates a fresh builder; analyzers hold no state between calls, so
// concurrent validations cannot race.
type reportBuilder struct {
	issues      []domain.ValidationIssue
	passed      []domain.PassedCheck
	suggestions []domain.Suggestion
}

func newReportBuilder() *reportBuilder {
	return &reportBuilder{}
}

func (b *reportBuilder) issue(kind string, severity domain.Severity, message, fixHint string) {
	b.issues = append(b.issues, domain.ValidationIssue{
		Kind:     kind,
		Severity: severity,
		Message:  message,
		FixHint:  fixHint,
	})
}

func (b *reportBuilder) pass(description string) {
	b.passed = append(b.passed, domain.PassedCheck{Description: description})
}

func (b *reportBuilder) suggest(kind, message, text string) {
	b.suggestions = append(b.suggestions, domain.Suggestion{
		Kind:    kind,
		Message: message,
		Text:    text,
	})
}

// build finalizes the report. The score is the rounded share of passed
// checks; suggestions never affect it.
func (b *reportBuilder) build(dimension domain.Dimension) *domain.DimensionReport {
	score := domain.ComputeScore(len(b.passed), len(b.issues))
	return &domain.DimensionReport{
		Score:       score,
		Issues:      b.issues,
		Passed:      b.passed,
		Suggestions: b.suggestions,
		Summary: fmt.Sprintf("%s: %d/%d checks passed (score %d)",
			dimension, len(b.passed), len(b.passed)+len(b.issues), score),
	}
}
