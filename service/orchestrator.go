// Package service wires the analyzers, fix engine and continuation
// protocol into the use-case facing services.
package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ludo-technologies/htmlscan/domain"
	"github.com/ludo-technologies/htmlscan/internal/analyzer"
	"github.com/ludo-technologies/htmlscan/internal/config"
	"github.com/ludo-technologies/htmlscan/internal/version"
)

// TaskError represents a single analyzer task failure
type TaskError struct {
	Dimension domain.Dimension
	Err       error
}

// Error implements the error interface
func (e TaskError) Error() string {
	return fmt.Sprintf("[%s] %v", e.Dimension, e.Err)
}

// Unwrap returns the underlying error
func (e TaskError) Unwrap() error {
	return e.Err
}

// Orchestrator fans the artifact out to all dimension analyzers, joins
// their results and computes the weighted composite verdict. Task
// failures never escape: a failed dimension keeps a zero score with a
// synthetic issue, and sibling tasks still complete.
type Orchestrator struct {
	analyzers      []domain.Analyzer
	timeout        time.Duration
	maxConcurrency int
	progress       domain.ProgressManager
}

// NewOrchestrator creates an orchestrator with the built-in analyzers
func NewOrchestrator(cfg config.ValidationConfig) *Orchestrator {
	return NewOrchestratorWithAnalyzers(cfg,
		analyzer.NewContentAnalyzer(),
		analyzer.NewDesignAnalyzer(),
		analyzer.NewTechnicalAnalyzer(),
		analyzer.NewAccessibilityAnalyzer(),
	)
}

// NewOrchestratorWithAnalyzers creates an orchestrator over an explicit
// analyzer set. Dimensions with no analyzer keep their default zero score.
func NewOrchestratorWithAnalyzers(cfg config.ValidationConfig, analyzers ...domain.Analyzer) *Orchestrator {
	maxConcurrency := cfg.MaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = config.DefaultMaxConcurrency
	}
	return &Orchestrator{
		analyzers:      analyzers,
		timeout:        cfg.AnalyzerTimeout(),
		maxConcurrency: maxConcurrency,
	}
}

// SetProgressManager attaches progress reporting for batch runs.
func (o *Orchestrator) SetProgressManager(pm domain.ProgressManager) {
	o.progress = pm
}

// Validate runs all analyzers concurrently and aggregates their reports.
// It never fails: any orchestrator-level fault yields a partial report
// with status error.
func (o *Orchestrator) Validate(ctx context.Context, req domain.ValidationRequest) (report *domain.CompositeReport) {
	started := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err := domain.NewPipelineError("orchestrator panic", fmt.Errorf("%v", r))
			report = o.errorReport(req, started, err)
		}
	}()

	var task domain.TaskProgress = &NoOpTaskProgress{}
	if o.progress != nil {
		task = o.progress.StartTask("Validating artifact", len(o.analyzers))
	}
	defer task.Complete()

	var mu sync.Mutex
	reports := make(map[domain.Dimension]*domain.DimensionReport, len(o.analyzers))
	var failures []TaskError

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(o.maxConcurrency)

	for _, a := range o.analyzers {
		g.Go(func() error {
			result, err := o.runAnalyzer(gCtx, a, req)
			task.Increment(1)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, TaskError{Dimension: a.Dimension(), Err: err})
				reports[a.Dimension()] = failedDimensionReport(a.Dimension(), err)
				return nil
			}
			reports[a.Dimension()] = result
			return nil
		})
	}
	// Goroutines always return nil: failures are isolated per dimension
	// so no task's error cancels its siblings.
	_ = g.Wait()

	return o.compose(req, reports, started)
}

// runAnalyzer bounds one analyzer with the task timeout and converts
// panics into ordinary task failures.
func (o *Orchestrator) runAnalyzer(ctx context.Context, a domain.Analyzer, req domain.ValidationRequest) (*domain.DimensionReport, error) {
	taskCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	type outcome struct {
		report *domain.DimensionReport
		err    error
	}
	ch := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- outcome{err: fmt.Errorf("analyzer panic: %v", r)}
			}
		}()
		report, err := a.Validate(taskCtx, req)
		ch <- outcome{report: report, err: err}
	}()

	select {
	case out := <-ch:
		return out.report, out.err
	case <-taskCtx.Done():
		return nil, taskCtx.Err()
	}
}

// failedDimensionReport is the default report for a failed task: zero
// score and a single synthetic low-severity issue.
func failedDimensionReport(dim domain.Dimension, err error) *domain.DimensionReport {
	return &domain.DimensionReport{
		Score: 0,
		Issues: []domain.ValidationIssue{{
			Kind:     "validation_error",
			Severity: domain.SeverityLow,
			Message:  fmt.Sprintf("%s analysis failed: %v", dim, err),
		}},
		Summary: fmt.Sprintf("%s: analysis failed", dim),
	}
}

func (o *Orchestrator) compose(req domain.ValidationRequest, reports map[domain.Dimension]*domain.DimensionReport, started time.Time) *domain.CompositeReport {
	scores := make(map[domain.Dimension]int, len(reports))
	for dim, r := range reports {
		scores[dim] = r.Score
	}
	overall := domain.WeightedOverall(scores)

	return &domain.CompositeReport{
		Overall: domain.OverallResult{
			Score:     overall,
			Status:    domain.StatusForScore(overall),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
		Dimensions:  reports,
		Suggestions: compileSuggestions(reports),
		Metadata:    buildMetadata(req, started),
	}
}

// errorReport is the best-effort partial report for an orchestrator
// fault. Status is forced to error; the score stays at its zero default.
func (o *Orchestrator) errorReport(req domain.ValidationRequest, started time.Time, err error) *domain.CompositeReport {
	reports := make(map[domain.Dimension]*domain.DimensionReport, len(domain.Dimensions))
	for _, dim := range domain.Dimensions {
		reports[dim] = failedDimensionReport(dim, err)
	}
	return &domain.CompositeReport{
		Overall: domain.OverallResult{
			Score:     0,
			Status:    domain.StatusError,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
		Dimensions:  reports,
		Suggestions: []domain.RankedSuggestion{},
		Metadata:    buildMetadata(req, started),
	}
}

// compileSuggestions collects every dimension's suggestions, tags them
// with their source and a priority derived from the dimension score, and
// sorts by priority. The sort is stable over the canonical dimension
// order, so equal priorities keep a deterministic sequence.
func compileSuggestions(reports map[domain.Dimension]*domain.DimensionReport) []domain.RankedSuggestion {
	ranked := make([]domain.RankedSuggestion, 0)
	for _, dim := range domain.Dimensions {
		report, ok := reports[dim]
		if !ok {
			continue
		}
		priority := domain.PriorityForScore(report.Score)
		for _, s := range report.Suggestions {
			ranked = append(ranked, domain.RankedSuggestion{
				Suggestion: s,
				Category:   dim,
				Priority:   priority,
			})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return domain.PriorityRank(ranked[i].Priority) > domain.PriorityRank(ranked[j].Priority)
	})
	return ranked
}

func buildMetadata(req domain.ValidationRequest, started time.Time) domain.ReportMetadata {
	meta := domain.ReportMetadata{
		ArtifactLength: len(req.HTML),
		DurationMs:     time.Since(started).Milliseconds(),
		PortfolioType:  "general",
		Version:        version.Version,
	}
	if req.Data != nil {
		meta.PortfolioType = inferPortfolioType(req.Data.Style.Mood)
		meta.HasImages = req.Data.Images.HasAny()
	}
	return meta
}

// inferPortfolioType buckets the stated mood into a coarse portfolio
// flavor for report metadata.
func inferPortfolioType(mood string) string {
	switch mood {
	case "minimal", "elegant":
		return "professional"
	case "bold", "playful":
		return "creative"
	case "modern", "dark":
		return "contemporary"
	case "warm":
		return "personal"
	default:
		return "general"
	}
}
