package domain

import "context"

// AutoFix score thresholds. A fixer stage only runs when its dimension
// scored below the threshold.
const (
	FixThresholdAccessibility = 80
	FixThresholdTechnical     = 80
	FixThresholdContent       = 80
	FixThresholdDesign        = 70
)

// FixRequest carries everything the fix engine needs for one repair pass
type FixRequest struct {
	HTML   string
	Report *CompositeReport
	Data   *PortfolioData
}

// AutoFixRecord is the outcome of a mechanical repair pass
type AutoFixRecord struct {
	// FixesApplied is the ordered human-readable log of mutations.
	FixesApplied []string `json:"fixes_applied" yaml:"fixes_applied"`

	// HTMLModified is true only when at least one mutation occurred.
	HTMLModified bool `json:"html_modified" yaml:"html_modified"`

	// ImprovedHTML holds the mutated artifact when HTMLModified is true,
	// otherwise the original.
	ImprovedHTML string `json:"improved_html" yaml:"improved_html"`

	// OriginalHTML is the artifact as received.
	OriginalHTML string `json:"original_html" yaml:"original_html"`

	Success bool `json:"success" yaml:"success"`
}

// FixService applies mechanical repairs driven by a composite report
type FixService interface {
	Fix(ctx context.Context, req FixRequest) *AutoFixRecord
}
