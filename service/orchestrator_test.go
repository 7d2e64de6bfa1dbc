package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ludo-technologies/htmlscan/domain"
	"github.com/ludo-technologies/htmlscan/internal/config"
	"github.com/ludo-technologies/htmlscan/internal/testutil"
)

// stubAnalyzer is a scripted analyzer for orchestrator tests.
type stubAnalyzer struct {
	dim    domain.Dimension
	report *domain.DimensionReport
	err    error
	panics bool
	block  bool
}

func (s *stubAnalyzer) Dimension() domain.Dimension { return s.dim }

func (s *stubAnalyzer) Validate(ctx context.Context, _ domain.ValidationRequest) (*domain.DimensionReport, error) {
	if s.panics {
		panic("scripted failure")
	}
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.report, s.err
}

func scoredStub(dim domain.Dimension, score int, suggestions ...domain.Suggestion) *stubAnalyzer {
	return &stubAnalyzer{
		dim:    dim,
		report: &domain.DimensionReport{Score: score, Suggestions: suggestions},
	}
}

func testValidationConfig() config.ValidationConfig {
	return config.ValidationConfig{AnalyzerTimeoutSeconds: 1, MaxConcurrency: 4}
}

func TestOrchestrator_WeightedOverall(t *testing.T) {
	o := NewOrchestratorWithAnalyzers(testValidationConfig(),
		scoredStub(domain.DimensionContent, 80),
		scoredStub(domain.DimensionDesign, 60),
		scoredStub(domain.DimensionTechnical, 90),
		scoredStub(domain.DimensionAccessibility, 70),
	)

	report := o.Validate(context.Background(), domain.ValidationRequest{HTML: "<html></html>"})

	testutil.AssertEqual(t, 76, report.Overall.Score)
	testutil.AssertEqual(t, domain.StatusFair, report.Overall.Status)
}

func TestOrchestrator_FailureIsolation(t *testing.T) {
	o := NewOrchestratorWithAnalyzers(testValidationConfig(),
		scoredStub(domain.DimensionContent, 100),
		&stubAnalyzer{dim: domain.DimensionDesign, err: errors.New("boom")},
		scoredStub(domain.DimensionTechnical, 100),
		scoredStub(domain.DimensionAccessibility, 100),
	)

	report := o.Validate(context.Background(), domain.ValidationRequest{HTML: "<html></html>"})

	design := report.Dimensions[domain.DimensionDesign]
	if design == nil {
		t.Fatal("A failed dimension must still produce a report")
	}
	testutil.AssertEqual(t, 0, design.Score)
	testutil.AssertTrue(t, testutil.HasIssueKind(design, "validation_error"),
		"A failed task becomes a synthetic validation_error issue")
	testutil.AssertEqual(t, domain.SeverityLow, design.Issues[0].Severity)

	// Siblings still completed.
	testutil.AssertEqual(t, 100, report.Dimensions[domain.DimensionContent].Score)
	testutil.AssertEqual(t, 100, report.Dimensions[domain.DimensionTechnical].Score)

	// 0.30*100 + 0.25*0 + 0.25*100 + 0.20*100 = 75
	testutil.AssertEqual(t, 75, report.Overall.Score)
}

func TestOrchestrator_PanicIsolation(t *testing.T) {
	o := NewOrchestratorWithAnalyzers(testValidationConfig(),
		scoredStub(domain.DimensionContent, 100),
		&stubAnalyzer{dim: domain.DimensionTechnical, panics: true},
	)

	report := o.Validate(context.Background(), domain.ValidationRequest{HTML: "<html></html>"})

	technical := report.Dimensions[domain.DimensionTechnical]
	if technical == nil {
		t.Fatal("A panicking dimension must still produce a report")
	}
	testutil.AssertEqual(t, 0, technical.Score)
	testutil.AssertTrue(t, testutil.HasIssueKind(technical, "validation_error"),
		"A panic is converted into an ordinary task failure")
	testutil.AssertEqual(t, 100, report.Dimensions[domain.DimensionContent].Score)
}

func TestOrchestrator_TaskTimeout(t *testing.T) {
	o := NewOrchestratorWithAnalyzers(testValidationConfig(),
		&stubAnalyzer{dim: domain.DimensionDesign, block: true},
		scoredStub(domain.DimensionContent, 100),
	)

	report := o.Validate(context.Background(), domain.ValidationRequest{HTML: "<html></html>"})

	design := report.Dimensions[domain.DimensionDesign]
	testutil.AssertEqual(t, 0, design.Score)
	testutil.AssertTrue(t, testutil.HasIssueKind(design, "validation_error"),
		"A timed-out task is an ordinary failure")
	testutil.AssertEqual(t, 100, report.Dimensions[domain.DimensionContent].Score)
}

func TestOrchestrator_SuggestionOrdering(t *testing.T) {
	o := NewOrchestratorWithAnalyzers(testValidationConfig(),
		// High score: its suggestion ranks low.
		scoredStub(domain.DimensionContent, 95, domain.Suggestion{Kind: "thin_content"}),
		// Low score: its suggestion ranks high and must sort first.
		scoredStub(domain.DimensionAccessibility, 40, domain.Suggestion{Kind: "vague_links"}),
		// Mid score: medium priority.
		scoredStub(domain.DimensionDesign, 70, domain.Suggestion{Kind: "safe_layout"}),
	)

	report := o.Validate(context.Background(), domain.ValidationRequest{HTML: "<html></html>"})

	if len(report.Suggestions) != 3 {
		t.Fatalf("Suggestions = %d, want 3", len(report.Suggestions))
	}
	testutil.AssertEqual(t, domain.PriorityHigh, report.Suggestions[0].Priority)
	testutil.AssertEqual(t, domain.DimensionAccessibility, report.Suggestions[0].Category)
	testutil.AssertEqual(t, domain.PriorityMedium, report.Suggestions[1].Priority)
	testutil.AssertEqual(t, domain.PriorityLow, report.Suggestions[2].Priority)
}

func TestOrchestrator_SuggestionStableTiebreak(t *testing.T) {
	// Equal priorities keep the canonical dimension order.
	o := NewOrchestratorWithAnalyzers(testValidationConfig(),
		scoredStub(domain.DimensionAccessibility, 90, domain.Suggestion{Kind: "a11y_hint"}),
		scoredStub(domain.DimensionContent, 90, domain.Suggestion{Kind: "content_hint"}),
	)

	report := o.Validate(context.Background(), domain.ValidationRequest{HTML: "<html></html>"})

	if len(report.Suggestions) != 2 {
		t.Fatalf("Suggestions = %d, want 2", len(report.Suggestions))
	}
	testutil.AssertEqual(t, domain.DimensionContent, report.Suggestions[0].Category)
	testutil.AssertEqual(t, domain.DimensionAccessibility, report.Suggestions[1].Category)
}

func TestOrchestrator_Metadata(t *testing.T) {
	o := NewOrchestratorWithAnalyzers(testValidationConfig(),
		scoredStub(domain.DimensionContent, 100),
	)

	html := "<html><body>page</body></html>"
	data := testutil.MinimalPortfolioData()
	data.Style.Mood = "bold"
	data.Images.Moodboard = []domain.ImageRef{{URL: "https://img.example/m.jpg"}}

	report := o.Validate(context.Background(), domain.ValidationRequest{HTML: html, Data: data})

	testutil.AssertEqual(t, len(html), report.Metadata.ArtifactLength)
	testutil.AssertEqual(t, "creative", report.Metadata.PortfolioType)
	testutil.AssertTrue(t, report.Metadata.HasImages, "Moodboard images set HasImages")
	testutil.AssertTrue(t, report.Overall.Timestamp != "", "Timestamp should be recorded")
}

func TestOrchestrator_EndToEnd(t *testing.T) {
	o := NewOrchestrator(testValidationConfig())

	html := `<!DOCTYPE html>
<html lang="en"><head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Jane Doe</title>
<style>body { color: #111; display: grid; } @media (max-width: 600px) { body {} }</style>
</head><body>
<h1>Jane Doe</h1><h2>Product Designer</h2>
<section class="about"><h2>About</h2><p>I design calm digital products.</p></section>
<section class="projects"><h2>Projects</h2><h3>Harbor Rebrand</h3>
<p>Identity refresh for a shipping company.</p></section>
</body></html>`

	report := o.Validate(context.Background(), domain.ValidationRequest{
		HTML: html,
		Data: testutil.MinimalPortfolioData(),
	})

	if len(report.Dimensions) != 4 {
		t.Fatalf("Dimensions = %d, want 4", len(report.Dimensions))
	}
	for dim, dr := range report.Dimensions {
		if dr.Score < 0 || dr.Score > 100 {
			t.Errorf("%s score %d out of range", dim, dr.Score)
		}
		if testutil.HasIssueKind(dr, "validation_error") {
			t.Errorf("%s should not fail on a well-formed artifact", dim)
		}
	}
	if report.Overall.Status == domain.StatusError {
		t.Error("A successful run must not carry the error status")
	}
}

func TestInferPortfolioType(t *testing.T) {
	cases := map[string]string{
		"minimal": "professional",
		"elegant": "professional",
		"bold":    "creative",
		"playful": "creative",
		"modern":  "contemporary",
		"dark":    "contemporary",
		"warm":    "personal",
		"":        "general",
		"unknown": "general",
	}
	for mood, want := range cases {
		if got := inferPortfolioType(mood); got != want {
			t.Errorf("inferPortfolioType(%q) = %q, want %q", mood, got, want)
		}
	}
}

func TestTaskError_Format(t *testing.T) {
	err := TaskError{Dimension: domain.DimensionDesign, Err: errors.New("boom")}
	if !strings.Contains(err.Error(), "[design]") || !strings.Contains(err.Error(), "boom") {
		t.Errorf("unexpected format: %s", err.Error())
	}
	if !errors.Is(err, err.Err) {
		t.Error("Unwrap should expose the underlying error")
	}
}
