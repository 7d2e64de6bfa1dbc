// Package completeness detects artifacts truncated by the generator's
// output-size limit and prepares their continuation.
//
// Everything here is textual: the artifact may be arbitrarily malformed,
// so the estimator probes the raw string instead of parsing it.
package completeness

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ludo-technologies/htmlscan/domain"
)

// Completion weights. They sum to 100 for a fully present document.
const (
	weightDoctype     = 5
	weightHTMLOpen    = 10
	weightHead        = 10
	weightBodyOpen    = 15
	weightStyling     = 20
	weightSubstantial = 20
	weightBodyClose   = 10
	weightHTMLClose   = 10

	// substantialLength is the artifact length that earns the
	// substantial-content weight.
	substantialLength = 1000

	// continuationMinLength is the floor below which an artifact is
	// unrecoverable and must be regenerated rather than continued.
	continuationMinLength = 500

	// closeBalanceRatio is the minimum closing/opening tag ratio before
	// the imbalance detector fires.
	closeBalanceRatio = 0.8

	// manyIssuesThreshold and manyIssuesPenalty adjust the estimate
	// downward for badly broken artifacts; estimateFloor bounds it.
	manyIssuesThreshold = 5
	manyIssuesPenalty   = 20
	estimateFloor       = 10

	// missingCloserCap caps the estimate whenever a closing tag is absent.
	missingCloserCap = 75

	// completeMaxIssues is the issue tolerance when both closers exist.
	completeMaxIssues = 2
)

var (
	openTagRe  = regexp.MustCompile(`<([a-zA-Z][a-zA-Z0-9-]*)`)
	closeTagRe = regexp.MustCompile(`</([a-zA-Z][a-zA-Z0-9-]*)`)

	// danglingTagRe matches a tag opened but never closed by '>' at the
	// very end of the artifact, the classic mid-token truncation.
	danglingTagRe = regexp.MustCompile(`<[a-zA-Z][^>]*$`)

	// endsWithCloserRe accepts a closing tag or a self-closing tag as a
	// plausible final token.
	endsWithCloserRe = regexp.MustCompile(`(</[a-zA-Z][a-zA-Z0-9-]*>|/>)$`)
)

// voidElements never receive closing tags and are excluded from the
// open-tag count.
var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {},
	"img": {}, "input": {}, "link": {}, "meta": {}, "param": {},
	"source": {}, "track": {}, "wbr": {},
}

// Estimator computes truncation estimates for generated artifacts.
type Estimator struct{}

// NewEstimator creates a completeness estimator
func NewEstimator() *Estimator {
	return &Estimator{}
}

// Estimate analyzes an artifact for truncation. It never fails: any
// string, including empty or garbage input, yields a report.
func (e *Estimator) Estimate(artifact string) *domain.CompletenessReport {
	lower := strings.ToLower(artifact)

	structure := domain.StructuralFlags{
		HasDoctype:   strings.Contains(lower, "<!doctype"),
		HasHTMLOpen:  strings.Contains(lower, "<html"),
		HasHead:      strings.Contains(lower, "<head"),
		HasBodyOpen:  strings.Contains(lower, "<body"),
		HasStyling:   strings.Contains(lower, "<style") || strings.Contains(lower, "<link"),
		HasBodyClose: strings.Contains(lower, "</body>"),
		HasHTMLClose: strings.Contains(lower, "</html>"),
	}
	balance := countTags(lower)

	issues := detectIssues(lower, structure, balance)

	estimate := 0
	for _, part := range []struct {
		present bool
		weight  int
	}{
		{structure.HasDoctype, weightDoctype},
		{structure.HasHTMLOpen, weightHTMLOpen},
		{structure.HasHead, weightHead},
		{structure.HasBodyOpen, weightBodyOpen},
		{structure.HasStyling, weightStyling},
		{len(artifact) > substantialLength, weightSubstantial},
		{structure.HasBodyClose, weightBodyClose},
		{structure.HasHTMLClose, weightHTMLClose},
	} {
		if part.present {
			estimate += part.weight
		}
	}

	if len(issues) > manyIssuesThreshold {
		estimate -= manyIssuesPenalty
		if estimate < estimateFloor {
			estimate = estimateFloor
		}
	}
	if !structure.HasBodyClose || !structure.HasHTMLClose {
		if estimate > missingCloserCap {
			estimate = missingCloserCap
		}
	}

	isComplete := len(issues) == 0 ||
		(structure.HasBodyClose && structure.HasHTMLClose && len(issues) <= completeMaxIssues)

	canContinue := structure.HasHTMLOpen && structure.HasBodyOpen &&
		len(artifact) > continuationMinLength

	return &domain.CompletenessReport{
		IsComplete:                 isComplete,
		EstimatedCompletionPercent: estimate,
		Issues:                     issues,
		CanContinue:                canContinue,
		Structure:                  structure,
		TagBalance:                 balance,
	}
}

func countTags(lower string) domain.TagBalance {
	open := 0
	for _, m := range openTagRe.FindAllStringSubmatch(lower, -1) {
		if _, void := voidElements[m[1]]; !void {
			open++
		}
	}
	// The slash in a closing tag keeps it out of the open pattern, so the
	// open count needs no correction for closers.
	return domain.TagBalance{
		OpenTags:  open,
		CloseTags: len(closeTagRe.FindAllString(lower, -1)),
	}
}

func detectIssues(lower string, structure domain.StructuralFlags, balance domain.TagBalance) []string {
	var issues []string

	trimmed := strings.TrimSpace(lower)
	if trimmed == "" {
		return []string{"document is empty"}
	}

	if danglingTagRe.MatchString(trimmed) {
		issues = append(issues, "unclosed tag at end of document")
	}

	if last := strings.LastIndex(trimmed, "<!--"); last >= 0 {
		if !strings.Contains(trimmed[last:], "-->") {
			issues = append(issues, "unterminated comment")
		}
	}

	if !endsWithCloserRe.MatchString(trimmed) && !strings.HasSuffix(trimmed, "-->") {
		issues = append(issues, "document does not end with a closing tag or comment")
	}

	if balance.OpenTags > 0 && float64(balance.CloseTags) < closeBalanceRatio*float64(balance.OpenTags) {
		issues = append(issues,
			fmt.Sprintf("tag imbalance: %d closing tags for %d opened", balance.CloseTags, balance.OpenTags))
	}

	if !structure.HasBodyClose {
		issues = append(issues, "missing </body> closing tag")
	}
	if !structure.HasHTMLClose {
		issues = append(issues, "missing </html> closing tag")
	}

	return issues
}
