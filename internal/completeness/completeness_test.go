package completeness

import (
	"strings"
	"testing"

	"github.com/ludo-technologies/htmlscan/domain"
)

func TestEstimator_CompleteDocument(t *testing.T) {
	artifact := `<!DOCTYPE html><html><head><style>body { color: #111; }</style></head><body>` +
		strings.Repeat("<p>Section copy with enough words to matter.</p>", 30) +
		`</body></html>`

	report := NewEstimator().Estimate(artifact)

	if !report.IsComplete {
		t.Errorf("A well-formed document should be complete, issues: %v", report.Issues)
	}
	if report.EstimatedCompletionPercent != 100 {
		t.Errorf("Estimate = %d, want 100", report.EstimatedCompletionPercent)
	}
	if !report.CanContinue {
		t.Error("A long document with html and body open tags can always be continued")
	}
}

func TestEstimator_MissingHTMLClose(t *testing.T) {
	artifact := `<!DOCTYPE html><html><head></head><body><h1>Jane Doe</h1></body>`

	report := NewEstimator().Estimate(artifact)

	if report.IsComplete {
		t.Error("A document without </html> is not complete")
	}
	if report.Structure.HasHTMLClose {
		t.Error("HasHTMLClose should be false")
	}
	if !report.Structure.HasBodyClose {
		t.Error("HasBodyClose should be true")
	}
	if report.EstimatedCompletionPercent > missingCloserCap {
		t.Errorf("Estimate = %d, must be capped at %d when a closer is missing",
			report.EstimatedCompletionPercent, missingCloserCap)
	}
}

func TestEstimator_EstimateCapWithSubstantialContent(t *testing.T) {
	// Every weight except the closers: without the cap this would reach 80.
	artifact := `<!DOCTYPE html><html><head><style>body{}</style></head><body>` +
		strings.Repeat("<p>word word word word word word word word.</p>", 40)

	report := NewEstimator().Estimate(artifact)

	if report.EstimatedCompletionPercent > missingCloserCap {
		t.Errorf("Estimate = %d, want <= %d", report.EstimatedCompletionPercent, missingCloserCap)
	}
}

func TestEstimator_DanglingTag(t *testing.T) {
	report := NewEstimator().Estimate(`<html><body><div class="hero`)

	if !containsIssue(report, "unclosed tag") {
		t.Errorf("A truncated tag should be detected, issues: %v", report.Issues)
	}
	if report.IsComplete {
		t.Error("A dangling tag means the document is incomplete")
	}
}

func TestEstimator_UnterminatedComment(t *testing.T) {
	report := NewEstimator().Estimate(`<html><body><p>text</p><!-- projects section`)

	if !containsIssue(report, "unterminated comment") {
		t.Errorf("An open comment should be detected, issues: %v", report.Issues)
	}
}

func TestEstimator_TagImbalance(t *testing.T) {
	report := NewEstimator().Estimate(`<html><body><div><div><div><div><div><p>x</p>`)

	if !containsIssue(report, "tag imbalance") {
		t.Errorf("Unbalanced tags should be detected, issues: %v", report.Issues)
	}
}

func TestEstimator_VoidElementsExcluded(t *testing.T) {
	report := NewEstimator().Estimate(`<html><head><meta charset="UTF-8"><link rel="x"></head>` +
		`<body><img src="a.jpg"><br><p>text</p></body></html>`)

	if containsIssue(report, "tag imbalance") {
		t.Errorf("Void elements must not count as unclosed, issues: %v", report.Issues)
	}
	// html, head, body, p open; meta/link/img/br excluded.
	if report.TagBalance.OpenTags != 4 {
		t.Errorf("OpenTags = %d, want 4", report.TagBalance.OpenTags)
	}
}

func TestEstimator_CanContinueFloor(t *testing.T) {
	short := NewEstimator().Estimate(`<html><body><p>tiny</p>`)
	if short.CanContinue {
		t.Error("An artifact under the length floor is unrecoverable")
	}

	long := NewEstimator().Estimate(`<html><body>` + strings.Repeat("<p>filler copy</p>", 40))
	if !long.CanContinue {
		t.Error("A long artifact with html and body open tags can be continued")
	}

	noBody := NewEstimator().Estimate(`<html><head>` + strings.Repeat("<!-- x -->", 100))
	if noBody.CanContinue {
		t.Error("An artifact without a body open tag cannot be continued")
	}
}

func TestEstimator_ManyIssuesPenalty(t *testing.T) {
	// Six detectors fire at once: dangling tag, open comment, bad ending,
	// imbalance and both missing closers. The penalty would push the
	// estimate below the floor without the clamp.
	broken := NewEstimator().Estimate(`<html><body><!-- section <div><div><div><span class="x`)

	if len(broken.Issues) <= manyIssuesThreshold {
		t.Fatalf("test setup: want more than %d issues, got %v", manyIssuesThreshold, broken.Issues)
	}
	if broken.EstimatedCompletionPercent != estimateFloor {
		t.Errorf("Estimate = %d, want the floor %d",
			broken.EstimatedCompletionPercent, estimateFloor)
	}
}

func TestEstimator_EstimateMonotonicInIssues(t *testing.T) {
	// Same structural flags, strictly more issues: the estimate must not rise.
	cleaner := NewEstimator().Estimate(`<html><head></head><body>` +
		strings.Repeat("<p>copy</p>", 120) + `</body>`)
	dirtier := NewEstimator().Estimate(`<html><head></head><body>` +
		strings.Repeat("<div>", 50) + strings.Repeat("<p>copy</p>", 120) + `</body>`)

	if cleaner.Structure != dirtier.Structure {
		t.Fatalf("test setup: structural flags must match (%+v vs %+v)",
			cleaner.Structure, dirtier.Structure)
	}

	if len(dirtier.Issues) <= len(cleaner.Issues) {
		t.Fatalf("test setup: dirtier artifact should have more issues (%d vs %d)",
			len(dirtier.Issues), len(cleaner.Issues))
	}
	if dirtier.EstimatedCompletionPercent > cleaner.EstimatedCompletionPercent {
		t.Errorf("Estimate rose with issue count: %d > %d",
			dirtier.EstimatedCompletionPercent, cleaner.EstimatedCompletionPercent)
	}
}

func TestEstimator_EmptyInput(t *testing.T) {
	report := NewEstimator().Estimate("")

	if report.IsComplete {
		t.Error("An empty artifact is not complete")
	}
	if report.CanContinue {
		t.Error("An empty artifact cannot be continued")
	}
}

func containsIssue(report *domain.CompletenessReport, substr string) bool {
	for _, issue := range report.Issues {
		if strings.Contains(issue, substr) {
			return true
		}
	}
	return false
}

func TestProtocol_BuildPrompt(t *testing.T) {
	partial := `<html><body><h1>Jane Doe</h1>`
	report := NewEstimator().Estimate(partial)
	prompt := NewProtocol().BuildPrompt(domain.ContinuationRequest{
		PartialHTML: partial,
		Report:      report,
		Data: &domain.PortfolioData{
			Personal: domain.PersonalInfo{Name: "Jane Doe", Title: "Product Designer"},
			Projects: []domain.Project{{Title: "Harbor Rebrand"}, {Title: "Atlas App"}},
			Style:    domain.StylePreferences{Mood: "minimal"},
		},
	})

	for _, want := range []string{
		partial,
		"Jane Doe",
		"Product Designer",
		"Projects: 2",
		"minimal",
		"</body> </html>",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt should contain %q", want)
		}
	}
}

func TestProtocol_MergeStripsDuplicatePreamble(t *testing.T) {
	partial := `<!DOCTYPE html><html><head><title>Jane</title></head><body><h1>Jane Doe</h1>`
	fragment := `<!DOCTYPE html><html><head><title>Jane</title></head><body><p>Continued.</p></body></html>`

	merged := NewProtocol().Merge(partial, fragment)

	if strings.Count(strings.ToLower(merged), "<!doctype") != 1 {
		t.Error("Duplicate doctype should be stripped")
	}
	if strings.Count(strings.ToLower(merged), "<html") != 1 {
		t.Error("Duplicate html open tag should be stripped")
	}
	if strings.Count(strings.ToLower(merged), "<title") != 1 {
		t.Error("The duplicated head block should be stripped")
	}
	if strings.Count(strings.ToLower(merged), "<body") != 1 {
		t.Error("Duplicate body open tag should be stripped")
	}
	if !strings.Contains(merged, "<h1>Jane Doe</h1><p>Continued.</p>") {
		t.Errorf("Fragment content should continue the partial, got %s", merged)
	}
}

func TestProtocol_MergeExactlyOneCloserPair(t *testing.T) {
	cases := []struct {
		name     string
		partial  string
		fragment string
	}{
		{"no closers", `<html><body><p>a</p>`, `<p>b</p>`},
		{"fragment closers", `<html><body><p>a</p>`, `<p>b</p></body></html>`},
		{"duplicate closers", `<html><body><p>a</p></body></html>`, `<p>b</p></body></html>`},
		{"uppercase closers", `<html><body><p>a</p></BODY></HTML>`, `<p>b</p></Body></Html>`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			merged := NewProtocol().Merge(tc.partial, tc.fragment)
			lower := strings.ToLower(merged)
			if got := strings.Count(lower, "</body>"); got != 1 {
				t.Errorf("</body> count = %d, want 1 in %s", got, merged)
			}
			if got := strings.Count(lower, "</html>"); got != 1 {
				t.Errorf("</html> count = %d, want 1 in %s", got, merged)
			}
			if !strings.HasSuffix(merged, "</html>") {
				t.Error("The document must end with </html>")
			}
		})
	}
}

func TestProtocol_MergeKeepsNewPreamble(t *testing.T) {
	// A fragment preamble is only stripped when the partial already has it.
	partial := `<p>orphan content`
	fragment := `<p>more</p>`

	merged := NewProtocol().Merge(partial, fragment)

	if !strings.Contains(merged, "orphan content") || !strings.Contains(merged, "more") {
		t.Errorf("Both sides should survive the merge, got %s", merged)
	}
}
