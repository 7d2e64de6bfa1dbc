package domain

// StructuralFlags record which document landmarks were found in an artifact
type StructuralFlags struct {
	HasDoctype   bool `json:"has_doctype" yaml:"has_doctype"`
	HasHTMLOpen  bool `json:"has_html_open" yaml:"has_html_open"`
	HasHead      bool `json:"has_head" yaml:"has_head"`
	HasBodyOpen  bool `json:"has_body_open" yaml:"has_body_open"`
	HasStyling   bool `json:"has_styling" yaml:"has_styling"`
	HasBodyClose bool `json:"has_body_close" yaml:"has_body_close"`
	HasHTMLClose bool `json:"has_html_close" yaml:"has_html_close"`
}

// TagBalance holds the open/close tag counts used by the truncation
// imbalance heuristic. Void elements are excluded from the open count.
type TagBalance struct {
	OpenTags  int `json:"open_tags" yaml:"open_tags"`
	CloseTags int `json:"close_tags" yaml:"close_tags"`
}

// CompletenessReport estimates whether an artifact was truncated by the
// generator's output-size limit, and whether it can be continued.
type CompletenessReport struct {
	IsComplete                 bool            `json:"is_complete" yaml:"is_complete"`
	EstimatedCompletionPercent int             `json:"estimated_completion_percent" yaml:"estimated_completion_percent"`
	Issues                     []string        `json:"issues" yaml:"issues"`
	CanContinue                bool            `json:"can_continue" yaml:"can_continue"`
	Structure                  StructuralFlags `json:"structure" yaml:"structure"`
	TagBalance                 TagBalance      `json:"tag_balance" yaml:"tag_balance"`
}

// ContinuationRequest packages a truncated artifact with the minimal
// context the generation collaborator needs to resume it.
type ContinuationRequest struct {
	PartialHTML string
	Report      *CompletenessReport
	Data        *PortfolioData
}
