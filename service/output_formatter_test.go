package service

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/htmlscan/domain"
	"github.com/ludo-technologies/htmlscan/internal/testutil"
)

func sampleComposite() *domain.CompositeReport {
	return &domain.CompositeReport{
		Overall: domain.OverallResult{Score: 76, Status: domain.StatusFair, Timestamp: "2026-01-01T00:00:00Z"},
		Dimensions: map[domain.Dimension]*domain.DimensionReport{
			domain.DimensionContent: {
				Score: 80,
				Issues: []domain.ValidationIssue{{
					Kind: "missing_bio", Severity: domain.SeverityMedium,
					Message: "The bio text does not appear on the page",
					FixHint: "Include the bio in the about section",
				}},
				Passed: []domain.PassedCheck{{Description: "Subject name is displayed"}},
			},
		},
		Suggestions: []domain.RankedSuggestion{{
			Suggestion: domain.Suggestion{Kind: "thin_content", Message: "Copy is thin"},
			Category:   domain.DimensionContent,
			Priority:   domain.PriorityMedium,
		}},
		Metadata: domain.ReportMetadata{ArtifactLength: 1234, DurationMs: 5},
	}
}

func TestOutputFormatter_CompositeText(t *testing.T) {
	var buf bytes.Buffer
	err := NewOutputFormatter().WriteComposite(sampleComposite(), domain.OutputFormatText, &buf)
	testutil.AssertNoError(t, err)

	out := buf.String()
	for _, want := range []string{
		"Overall: 76/100 (fair)",
		"content:",
		"[medium] content: The bio text does not appear on the page",
		"hint: Include the bio in the about section",
		"[medium] content: Copy is thin",
		"1234 bytes",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Text output should contain %q, got:\n%s", want, out)
		}
	}
}

func TestOutputFormatter_CompositeJSON(t *testing.T) {
	var buf bytes.Buffer
	err := NewOutputFormatter().WriteComposite(sampleComposite(), domain.OutputFormatJSON, &buf)
	testutil.AssertNoError(t, err)

	var decoded domain.CompositeReport
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	testutil.AssertEqual(t, 76, decoded.Overall.Score)
	testutil.AssertEqual(t, domain.StatusFair, decoded.Overall.Status)
	if decoded.Dimensions[domain.DimensionContent].Score != 80 {
		t.Error("Dimension reports should round-trip")
	}
}

func TestOutputFormatter_CompositeYAML(t *testing.T) {
	var buf bytes.Buffer
	err := NewOutputFormatter().WriteComposite(sampleComposite(), domain.OutputFormatYAML, &buf)
	testutil.AssertNoError(t, err)

	var decoded domain.CompositeReport
	testutil.AssertNoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	testutil.AssertEqual(t, 76, decoded.Overall.Score)
}

func TestOutputFormatter_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := NewOutputFormatter().WriteComposite(sampleComposite(), domain.OutputFormat("csv"), &buf)
	testutil.AssertError(t, err)
}

func TestOutputFormatter_FixRecordText(t *testing.T) {
	var buf bytes.Buffer
	record := &domain.AutoFixRecord{
		FixesApplied: []string{"Added alt text to 2 image(s)"},
		HTMLModified: true,
		Success:      true,
	}
	testutil.AssertNoError(t, NewOutputFormatter().WriteFixRecord(record, domain.OutputFormatText, &buf))
	if !strings.Contains(buf.String(), "Added alt text to 2 image(s)") {
		t.Errorf("Fix log should be listed, got %s", buf.String())
	}

	buf.Reset()
	noop := &domain.AutoFixRecord{Success: true}
	testutil.AssertNoError(t, NewOutputFormatter().WriteFixRecord(noop, domain.OutputFormatText, &buf))
	if !strings.Contains(buf.String(), "No mechanical fixes") {
		t.Errorf("No-op runs should say so, got %s", buf.String())
	}

	buf.Reset()
	failed := &domain.AutoFixRecord{Success: false}
	testutil.AssertNoError(t, NewOutputFormatter().WriteFixRecord(failed, domain.OutputFormatText, &buf))
	if !strings.Contains(buf.String(), "failed") {
		t.Errorf("Failed runs should say so, got %s", buf.String())
	}
}

func TestOutputFormatter_CompletenessText(t *testing.T) {
	var buf bytes.Buffer
	report := &domain.CompletenessReport{
		IsComplete:                 false,
		EstimatedCompletionPercent: 50,
		Issues:                     []string{"missing </html> closing tag"},
		CanContinue:                true,
		TagBalance:                 domain.TagBalance{OpenTags: 4, CloseTags: 3},
	}
	testutil.AssertNoError(t, NewOutputFormatter().WriteCompleteness(report, domain.OutputFormatText, &buf))

	out := buf.String()
	for _, want := range []string{
		"incomplete (estimated 50% generated)",
		"missing </html> closing tag",
		"can be continued",
		"4 opened, 3 closed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output should contain %q, got:\n%s", want, out)
		}
	}
}
