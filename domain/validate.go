package domain

import (
	"context"
	"math"
)

// Dimension identifies one of the independent quality axes.
type Dimension string

const (
	DimensionContent       Dimension = "content"
	DimensionDesign        Dimension = "design"
	DimensionTechnical     Dimension = "technical"
	DimensionAccessibility Dimension = "accessibility"
)

// Dimensions lists all quality axes in canonical order.
// The order is also the stable tiebreak when sorting suggestions.
var Dimensions = []Dimension{
	DimensionContent,
	DimensionDesign,
	DimensionTechnical,
	DimensionAccessibility,
}

// DimensionWeights define how each axis contributes to the overall score.
var DimensionWeights = map[Dimension]float64{
	DimensionContent:       0.30,
	DimensionDesign:        0.25,
	DimensionTechnical:     0.25,
	DimensionAccessibility: 0.20,
}

// Severity represents the severity of a validation issue
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Status classifies an overall score into a verdict bucket
type Status string

const (
	StatusExcellent Status = "excellent"
	StatusGood      Status = "good"
	StatusFair      Status = "fair"
	StatusPoor      Status = "poor"
	StatusCritical  Status = "critical"

	// StatusError marks a report produced after an orchestrator-level
	// failure. It is never produced by the score thresholds.
	StatusError Status = "error"
)

// Priority ranks a suggestion for display ordering
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// PriorityRank returns a sortable rank for a priority (higher sorts first).
func PriorityRank(p Priority) int {
	switch p {
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

// ValidationIssue represents a single quality defect found in an artifact
type ValidationIssue struct {
	Kind     string   `json:"kind" yaml:"kind"`
	Severity Severity `json:"severity" yaml:"severity"`
	Message  string   `json:"message" yaml:"message"`
	FixHint  string   `json:"fix_hint,omitempty" yaml:"fix_hint,omitempty"`
}

// PassedCheck records a satisfied quality criterion
type PassedCheck struct {
	Description string `json:"description" yaml:"description"`
}

// Suggestion is non-blocking advice attached to a dimension report
type Suggestion struct {
	Kind    string `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
	Text    string `json:"text,omitempty" yaml:"text,omitempty"`
}

// RankedSuggestion is a suggestion tagged with its source dimension and
// a priority derived from that dimension's score.
type RankedSuggestion struct {
	Suggestion `yaml:",inline"`
	Category   Dimension `json:"category" yaml:"category"`
	Priority   Priority  `json:"priority" yaml:"priority"`
}

// DimensionReport is the result of validating one quality axis
type DimensionReport struct {
	Score       int               `json:"score" yaml:"score"`
	Issues      []ValidationIssue `json:"issues" yaml:"issues"`
	Passed      []PassedCheck     `json:"passed" yaml:"passed"`
	Suggestions []Suggestion      `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
	Summary     string            `json:"summary" yaml:"summary"`

	// Compliance carries the descriptive design compliance summary.
	// It never feeds the score. Only the design dimension fills it.
	Compliance *DesignCompliance `json:"compliance,omitempty" yaml:"compliance,omitempty"`
}

// DesignCompliance is a descriptive-only summary attached to the design
// dimension report.
type DesignCompliance struct {
	CreativityScore     int    `json:"creativity_score" yaml:"creativity_score"`
	LayoutInnovation    int    `json:"layout_innovation" yaml:"layout_innovation"`
	ColorHarmony        string `json:"color_harmony" yaml:"color_harmony"`
	NavigationStyle     string `json:"navigation_style" yaml:"navigation_style"`
	ContentDensity      string `json:"content_density" yaml:"content_density"`
	SpatialUsage        string `json:"spatial_usage" yaml:"spatial_usage"`
	MoodboardEvaluation bool   `json:"moodboard_evaluation" yaml:"moodboard_evaluation"`
}

// OverallResult is the weighted verdict of a composite report
type OverallResult struct {
	Score     int    `json:"score" yaml:"score"`
	Status    Status `json:"status" yaml:"status"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
}

// ReportMetadata records context about a validation run
type ReportMetadata struct {
	ArtifactLength int    `json:"artifact_length" yaml:"artifact_length"`
	DurationMs     int64  `json:"duration_ms" yaml:"duration_ms"`
	PortfolioType  string `json:"portfolio_type" yaml:"portfolio_type"`
	HasImages      bool   `json:"has_images" yaml:"has_images"`
	Version        string `json:"version,omitempty" yaml:"version,omitempty"`
}

// CompositeReport is the aggregated result across all dimensions
type CompositeReport struct {
	Overall     OverallResult                  `json:"overall" yaml:"overall"`
	Dimensions  map[Dimension]*DimensionReport `json:"dimensions" yaml:"dimensions"`
	Suggestions []RankedSuggestion             `json:"suggestions" yaml:"suggestions"`
	Metadata    ReportMetadata                 `json:"metadata" yaml:"metadata"`
}

// ValidationRequest carries a single artifact and its source data through
// an analyzer call. Analyzers never mutate the request.
type ValidationRequest struct {
	HTML string
	Data *PortfolioData
}

// Analyzer is the contract shared by all dimension analyzers. Validate
// must be a pure function: fresh accumulators per call, no state retained
// between invocations, so concurrent calls cannot race.
type Analyzer interface {
	Dimension() Dimension
	Validate(ctx context.Context, req ValidationRequest) (*DimensionReport, error)
}

// ComputeScore derives a dimension score from its pass/issue counts.
// The score is the rounded percentage of satisfied checks, or 0 when no
// checks ran at all.
func ComputeScore(passed, issues int) int {
	total := passed + issues
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(passed) / float64(total)))
}

// WeightedOverall combines per-dimension scores into the overall score.
// Missing dimensions count as zero.
func WeightedOverall(scores map[Dimension]int) int {
	var sum float64
	for dim, weight := range DimensionWeights {
		sum += weight * float64(scores[dim])
	}
	return int(math.Round(sum))
}

// StatusForScore classifies a score into a status bucket. The cutoffs
// partition [0,100] exhaustively: 90/80/70/60.
func StatusForScore(score int) Status {
	switch {
	case score >= 90:
		return StatusExcellent
	case score >= 80:
		return StatusGood
	case score >= 70:
		return StatusFair
	case score >= 60:
		return StatusPoor
	default:
		return StatusCritical
	}
}

// PriorityForScore derives a suggestion priority from the score of the
// dimension that produced it. The suggestion itself carries no weight.
func PriorityForScore(score int) Priority {
	switch {
	case score < 60:
		return PriorityHigh
	case score < 80:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
