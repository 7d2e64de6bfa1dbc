package service

import (
	"strings"
	"testing"

	"github.com/ludo-technologies/htmlscan/domain"
	"github.com/ludo-technologies/htmlscan/internal/testutil"
)

func TestContinuationService_Estimate(t *testing.T) {
	svc := NewContinuationService()

	report := svc.Estimate(`<!DOCTYPE html><html><head></head><body><h1>Jane Doe</h1></body>`)

	testutil.AssertFalse(t, report.IsComplete, "Missing </html> means incomplete")
	testutil.AssertFalse(t, report.Structure.HasHTMLClose, "HasHTMLClose should be false")
}

func TestContinuationService_BuildPrompt(t *testing.T) {
	svc := NewContinuationService()
	partial := `<html><body>` + strings.Repeat("<p>section copy</p>", 40)

	prompt, err := svc.BuildPrompt(domain.ContinuationRequest{
		PartialHTML: partial,
		Data:        testutil.MinimalPortfolioData(),
	})
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, strings.Contains(prompt, partial), "The partial must appear verbatim")
	testutil.AssertTrue(t, strings.Contains(prompt, "Jane Doe"), "Context should name the subject")
}

func TestContinuationService_BuildPromptUnrecoverable(t *testing.T) {
	svc := NewContinuationService()

	_, err := svc.BuildPrompt(domain.ContinuationRequest{PartialHTML: "<p>tiny"})
	testutil.AssertError(t, err)
}

func TestContinuationService_Merge(t *testing.T) {
	svc := NewContinuationService()

	merged := svc.Merge(`<html><body><p>a</p>`, `<p>b</p></body></html>`)
	testutil.AssertEqual(t, 1, strings.Count(merged, "</body>"))
	testutil.AssertEqual(t, 1, strings.Count(merged, "</html>"))
}
