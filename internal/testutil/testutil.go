// Package testutil provides helper functions for testing htmlscan components
package testutil

import (
	"testing"

	"github.com/ludo-technologies/htmlscan/domain"
	"github.com/ludo-technologies/htmlscan/internal/analyzer"
)

// ParseTestDocument parses a test artifact, failing the test on error
func ParseTestDocument(t *testing.T, source string) *analyzer.Document {
	t.Helper()
	doc, err := analyzer.ParseDocument(source)
	if err != nil {
		t.Fatalf("Failed to parse test artifact: %v", err)
	}
	return doc
}

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}

// AssertEqual fails the test if expected != actual
func AssertEqual(t *testing.T, expected, actual any) {
	t.Helper()
	if expected != actual {
		t.Errorf("Expected %v, got %v", expected, actual)
	}
}

// AssertTrue fails the test if condition is false
func AssertTrue(t *testing.T, condition bool, msg string) {
	t.Helper()
	if !condition {
		t.Error(msg)
	}
}

// AssertFalse fails the test if condition is true
func AssertFalse(t *testing.T, condition bool, msg string) {
	t.Helper()
	if condition {
		t.Error(msg)
	}
}

// AssertNotNil fails the test if value is nil
func AssertNotNil(t *testing.T, value any) {
	t.Helper()
	if value == nil {
		t.Error("Expected non-nil value")
	}
}

// HasIssueKind reports whether a dimension report carries an issue of
// the given kind
func HasIssueKind(report *domain.DimensionReport, kind string) bool {
	for _, issue := range report.Issues {
		if issue.Kind == kind {
			return true
		}
	}
	return false
}

// MinimalPortfolioData builds the smallest data record most tests need
func MinimalPortfolioData() *domain.PortfolioData {
	return &domain.PortfolioData{
		Personal: domain.PersonalInfo{
			Name:  "Jane Doe",
			Title: "Product Designer",
		},
		Projects: []domain.Project{
			{Title: "Harbor Rebrand", Description: "Identity refresh for a shipping company."},
		},
	}
}
