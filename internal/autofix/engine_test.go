package autofix

import (
	"context"
	"strings"
	"testing"

	"github.com/ludo-technologies/htmlscan/domain"
	"github.com/ludo-technologies/htmlscan/internal/analyzer"
)

// reportWith builds a composite report carrying one low-scoring dimension
// with the given issue kinds.
func reportWith(dim domain.Dimension, score int, kinds ...string) *domain.CompositeReport {
	issues := make([]domain.ValidationIssue, 0, len(kinds))
	for _, kind := range kinds {
		issues = append(issues, domain.ValidationIssue{Kind: kind, Severity: domain.SeverityHigh})
	}
	return &domain.CompositeReport{
		Dimensions: map[domain.Dimension]*domain.DimensionReport{
			dim: {Score: score, Issues: issues},
		},
	}
}

func TestEngine_FixesAltText(t *testing.T) {
	src := `<html><head></head><body><img src="harbor-rebrand.jpg"><img src="atlas.png"></body></html>`
	record := NewEngine().Fix(context.Background(), domain.FixRequest{
		HTML:   src,
		Report: reportWith(domain.DimensionAccessibility, 40, "missing_alt_text"),
	})

	if !record.Success {
		t.Fatal("Fix should succeed")
	}
	if !record.HTMLModified {
		t.Fatal("HTML should be modified")
	}
	if !strings.Contains(record.ImprovedHTML, `alt="harbor rebrand"`) {
		t.Errorf("Alt text should derive from the file name, got %s", record.ImprovedHTML)
	}

	// The repaired artifact must no longer trip the analyzer.
	after, err := analyzer.NewAccessibilityAnalyzer().Validate(context.Background(),
		domain.ValidationRequest{HTML: record.ImprovedHTML})
	if err != nil {
		t.Fatalf("re-validation failed: %v", err)
	}
	for _, issue := range after.Issues {
		if issue.Kind == "missing_alt_text" {
			t.Error("missing_alt_text should be resolved after the fix")
		}
	}
}

func TestEngine_ThresholdGate(t *testing.T) {
	src := `<html><head></head><body><img src="a.jpg"></body></html>`
	record := NewEngine().Fix(context.Background(), domain.FixRequest{
		HTML:   src,
		Report: reportWith(domain.DimensionAccessibility, 85, "missing_alt_text"),
	})

	if record.HTMLModified {
		t.Error("A dimension at or above its threshold must not be touched")
	}
	if record.ImprovedHTML != src {
		t.Error("ImprovedHTML should be the original when nothing was fixed")
	}
}

func TestEngine_UnhandledKindsSkipped(t *testing.T) {
	record := NewEngine().Fix(context.Background(), domain.FixRequest{
		HTML:   `<html><head></head><body></body></html>`,
		Report: reportWith(domain.DimensionContent, 40, "no_projects", "insufficient_content"),
	})

	if !record.Success {
		t.Error("Unhandled issue kinds should be skipped, not fail the pass")
	}
	if record.HTMLModified {
		t.Error("Nothing fixable means no modification")
	}
	if len(record.FixesApplied) != 0 {
		t.Errorf("FixesApplied = %v, want empty", record.FixesApplied)
	}
}

func TestEngine_NilReport(t *testing.T) {
	record := NewEngine().Fix(context.Background(), domain.FixRequest{HTML: "<html></html>"})

	if !record.Success {
		t.Error("A nil report is a no-op, not a failure")
	}
	if record.ImprovedHTML != "<html></html>" {
		t.Error("The original artifact should pass through untouched")
	}
}

func TestEngine_TechnicalRepairs(t *testing.T) {
	src := `<html><head></head><body><h2>Work</h2></body></html>`
	record := NewEngine().Fix(context.Background(), domain.FixRequest{
		HTML: src,
		Data: &domain.PortfolioData{Personal: domain.PersonalInfo{Name: "Jane Doe"}},
		Report: reportWith(domain.DimensionTechnical, 30,
			"missing_doctype", "missing_lang_attribute", "missing_viewport_meta",
			"missing_charset_meta", "missing_title_element", "no_responsive_css"),
	})

	if !record.HTMLModified {
		t.Fatal("HTML should be modified")
	}
	out := record.ImprovedHTML
	for _, want := range []string{
		"<!DOCTYPE html>",
		`lang="en"`,
		`name="viewport"`,
		`charset="UTF-8"`,
		"<title>Jane Doe | Portfolio</title>",
		"@media",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output should contain %q, got %s", want, out)
		}
	}
	if len(record.FixesApplied) != 6 {
		t.Errorf("FixesApplied = %d entries, want 6: %v", len(record.FixesApplied), record.FixesApplied)
	}
}

func TestEngine_EmptyImageSources(t *testing.T) {
	src := `<html><head></head><body><img src=""><img src="#"><img src="real.jpg"></body></html>`
	record := NewEngine().Fix(context.Background(), domain.FixRequest{
		HTML:   src,
		Report: reportWith(domain.DimensionTechnical, 50, "empty_image_src"),
	})

	out := record.ImprovedHTML
	if !strings.Contains(out, "Project+1") || !strings.Contains(out, "Project+2") {
		t.Errorf("Placeholder sources should be numbered sequentially, got %s", out)
	}
	if !strings.Contains(out, `src="real.jpg"`) {
		t.Error("Real sources must not be touched")
	}
}

func TestEngine_InsertsMissingName(t *testing.T) {
	src := `<html><head></head><body><p>Welcome.</p></body></html>`
	record := NewEngine().Fix(context.Background(), domain.FixRequest{
		HTML:   src,
		Data:   &domain.PortfolioData{Personal: domain.PersonalInfo{Name: "Jane Doe", Title: "Product Designer"}},
		Report: reportWith(domain.DimensionContent, 40, "missing_name", "missing_professional_title"),
	})

	out := record.ImprovedHTML
	if !strings.Contains(out, "<h1>Jane Doe</h1>") {
		t.Errorf("The name should be inserted as an h1, got %s", out)
	}
	if !strings.Contains(out, "<h2>Product Designer</h2>") {
		t.Errorf("The title should be inserted as an h2, got %s", out)
	}
	if strings.Index(out, "<h1>") > strings.Index(out, "<h2>") {
		t.Error("The title should follow the name heading")
	}
}

func TestEngine_ReplacesPlaceholderText(t *testing.T) {
	src := `<html><head></head><body><p>Lorem ipsum dolor sit amet.</p></body></html>`
	bio := "I design calm, functional digital products."
	record := NewEngine().Fix(context.Background(), domain.FixRequest{
		HTML:   src,
		Data:   &domain.PortfolioData{Personal: domain.PersonalInfo{Bio: bio}},
		Report: reportWith(domain.DimensionContent, 40, "placeholder_text"),
	})

	if strings.Contains(strings.ToLower(record.ImprovedHTML), "lorem ipsum") {
		t.Error("Placeholder text should be gone")
	}
	if !strings.Contains(record.ImprovedHTML, bio) {
		t.Error("The supplied bio should replace the placeholder")
	}
}

func TestEngine_SubstitutesClientImages(t *testing.T) {
	src := `<html><head></head><body>
		<img src="https://placehold.co/600" alt="a">
		<img src="https://picsum.photos/600" alt="b">
		</body></html>`
	data := &domain.PortfolioData{
		Images: domain.ImageSet{
			Final: []domain.ImageRef{
				{URL: "https://img.example/work-1.jpg"},
				{URL: "https://img.example/work-2.jpg"},
			},
		},
	}
	record := NewEngine().Fix(context.Background(), domain.FixRequest{
		HTML:   src,
		Data:   data,
		Report: reportWith(domain.DimensionDesign, 40, "unused_client_images"),
	})

	out := record.ImprovedHTML
	if !strings.Contains(out, "work-1.jpg") || !strings.Contains(out, "work-2.jpg") {
		t.Errorf("Supplied work images should replace placeholders, got %s", out)
	}
	if strings.Contains(out, "placehold.co") {
		t.Error("Placeholder hosts should be substituted away")
	}
}

func TestEngine_MainLandmarkWrap(t *testing.T) {
	src := `<html><head></head><body><h1>Jane</h1><p>Work.</p></body></html>`
	record := NewEngine().Fix(context.Background(), domain.FixRequest{
		HTML:   src,
		Report: reportWith(domain.DimensionAccessibility, 40, "missing_main_landmark"),
	})

	out := record.ImprovedHTML
	if !strings.Contains(out, "<main><h1>Jane</h1><p>Work.</p></main>") {
		t.Errorf("Body content should be wrapped in main, got %s", out)
	}
}

func TestEngine_MainLandmarkLeavesStyleAndScript(t *testing.T) {
	src := `<html><head></head><body><style>p{color:red}</style><p>hello</p><script>var a=1;</script></body></html>`
	record := NewEngine().Fix(context.Background(), domain.FixRequest{
		HTML:   src,
		Report: reportWith(domain.DimensionAccessibility, 40, "missing_main_landmark"),
	})

	out := record.ImprovedHTML
	if !strings.Contains(out, "<main><p>hello</p></main>") {
		t.Errorf("Only content should move into main, got %s", out)
	}
	if strings.Contains(out, "<main><style>") || strings.Contains(out, "<script>var a=1;</script></main>") {
		t.Errorf("Style and script must stay direct body children, got %s", out)
	}
}

func TestEngine_MainLandmarkSkipsStyleOnlyBody(t *testing.T) {
	src := `<html><head></head><body><style>p{color:red}</style></body></html>`
	record := NewEngine().Fix(context.Background(), domain.FixRequest{
		HTML:   src,
		Report: reportWith(domain.DimensionAccessibility, 40, "missing_main_landmark"),
	})

	if strings.Contains(record.ImprovedHTML, "<main>") {
		t.Errorf("A body without content has nothing to wrap, got %s", record.ImprovedHTML)
	}
}

func TestEngine_PromotesHeading(t *testing.T) {
	src := `<html><head></head><body><h2>Jane Doe</h2><h3>Work</h3></body></html>`
	record := NewEngine().Fix(context.Background(), domain.FixRequest{
		HTML:   src,
		Report: reportWith(domain.DimensionAccessibility, 40, "missing_h1"),
	})

	if !strings.Contains(record.ImprovedHTML, "<h1>Jane Doe</h1>") {
		t.Errorf("The first subordinate heading should become h1, got %s", record.ImprovedHTML)
	}
	if !strings.Contains(record.ImprovedHTML, "<h3>Work</h3>") {
		t.Error("Later headings must keep their level")
	}
}

func TestEngine_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := `<html><head></head><body><img src="a.jpg"></body></html>`
	record := NewEngine().Fix(ctx, domain.FixRequest{
		HTML:   src,
		Report: reportWith(domain.DimensionAccessibility, 40, "missing_alt_text"),
	})

	if record.HTMLModified {
		t.Error("A cancelled context should stop the pass before any stage runs")
	}
}
