package domain

import (
	"errors"
	"testing"
)

// Error tests

func TestDomainError_Error(t *testing.T) {
	// Without cause
	err := DomainError{
		Code:    "TEST_ERROR",
		Message: "Test message",
	}
	expected := "[TEST_ERROR] Test message"
	if err.Error() != expected {
		t.Errorf("Expected '%s', got '%s'", expected, err.Error())
	}

	// With cause
	cause := errors.New("underlying error")
	errWithCause := DomainError{
		Code:    "TEST_ERROR",
		Message: "Test message",
		Cause:   cause,
	}
	expectedWithCause := "[TEST_ERROR] Test message: underlying error"
	if errWithCause.Error() != expectedWithCause {
		t.Errorf("Expected '%s', got '%s'", expectedWithCause, errWithCause.Error())
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := DomainError{
		Code:    "TEST_ERROR",
		Message: "Test message",
		Cause:   cause,
	}

	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	errNoCause := DomainError{
		Code:    "TEST_ERROR",
		Message: "Test message",
	}
	if errNoCause.Unwrap() != nil {
		t.Error("Unwrap should return nil when no cause")
	}
}

func TestNewValidationError(t *testing.T) {
	cause := errors.New("cause")
	err := NewValidationError("analyzer crashed", cause)

	domainErr, ok := err.(DomainError)
	if !ok {
		t.Fatal("Should return DomainError type")
	}
	if domainErr.Code != ErrCodeValidation {
		t.Errorf("Expected code %s, got %s", ErrCodeValidation, domainErr.Code)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
}

func TestNewPipelineError(t *testing.T) {
	cause := errors.New("cause")
	err := NewPipelineError("orchestrator panic", cause)

	domainErr, ok := err.(DomainError)
	if !ok {
		t.Fatal("Should return DomainError type")
	}
	if domainErr.Code != ErrCodePipeline {
		t.Errorf("Expected code %s, got %s", ErrCodePipeline, domainErr.Code)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
}

// Scoring tests

func TestComputeScore(t *testing.T) {
	tests := []struct {
		name   string
		passed int
		issues int
		want   int
	}{
		{"all passed", 10, 0, 100},
		{"all issues", 0, 10, 0},
		{"no checks", 0, 0, 0},
		{"half", 5, 5, 50},
		{"two thirds rounds up", 2, 1, 67},
		{"one third rounds down", 1, 2, 33},
		{"single pass", 1, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeScore(tt.passed, tt.issues)
			if got != tt.want {
				t.Errorf("ComputeScore(%d, %d) = %d, want %d", tt.passed, tt.issues, got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("score %d out of [0,100]", got)
			}
		})
	}
}

func TestWeightedOverall(t *testing.T) {
	scores := map[Dimension]int{
		DimensionContent:       80,
		DimensionDesign:        60,
		DimensionTechnical:     90,
		DimensionAccessibility: 70,
	}

	// 0.30*80 + 0.25*60 + 0.25*90 + 0.20*70 = 75.5, rounds to 76
	got := WeightedOverall(scores)
	if got != 76 {
		t.Errorf("WeightedOverall = %d, want 76", got)
	}
	if StatusForScore(got) != StatusFair {
		t.Errorf("Status for 76 should be fair, got %s", StatusForScore(got))
	}
}

func TestWeightedOverall_MissingDimensions(t *testing.T) {
	// A missing dimension counts as zero.
	scores := map[Dimension]int{
		DimensionContent: 100,
	}
	got := WeightedOverall(scores)
	if got != 30 {
		t.Errorf("WeightedOverall with only content=100 should be 30, got %d", got)
	}
}

func TestStatusForScore(t *testing.T) {
	tests := []struct {
		score int
		want  Status
	}{
		{100, StatusExcellent},
		{90, StatusExcellent},
		{89, StatusGood},
		{80, StatusGood},
		{79, StatusFair},
		{70, StatusFair},
		{69, StatusPoor},
		{60, StatusPoor},
		{59, StatusCritical},
		{0, StatusCritical},
	}

	for _, tt := range tests {
		if got := StatusForScore(tt.score); got != tt.want {
			t.Errorf("StatusForScore(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}

	// The cutoffs must partition [0,100] exhaustively and monotonically.
	order := map[Status]int{
		StatusCritical:  0,
		StatusPoor:      1,
		StatusFair:      2,
		StatusGood:      3,
		StatusExcellent: 4,
	}
	prev := -1
	for score := 0; score <= 100; score++ {
		rank, ok := order[StatusForScore(score)]
		if !ok {
			t.Fatalf("StatusForScore(%d) returned non-score status", score)
		}
		if rank < prev {
			t.Fatalf("status rank decreased at score %d", score)
		}
		prev = rank
	}
}

func TestPriorityForScore(t *testing.T) {
	tests := []struct {
		score int
		want  Priority
	}{
		{0, PriorityHigh},
		{59, PriorityHigh},
		{60, PriorityMedium},
		{79, PriorityMedium},
		{80, PriorityLow},
		{100, PriorityLow},
	}

	for _, tt := range tests {
		if got := PriorityForScore(tt.score); got != tt.want {
			t.Errorf("PriorityForScore(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestPriorityRank(t *testing.T) {
	if PriorityRank(PriorityHigh) <= PriorityRank(PriorityMedium) {
		t.Error("high should outrank medium")
	}
	if PriorityRank(PriorityMedium) <= PriorityRank(PriorityLow) {
		t.Error("medium should outrank low")
	}
}

// Portfolio data tests

func TestPersonalInfo_ContactFields(t *testing.T) {
	info := PersonalInfo{
		Name:  "Jane Doe",
		Email: "jane@example.com",
		Phone: "",
	}

	fields := info.ContactFields()
	if len(fields) != 1 {
		t.Errorf("Expected 1 contact field, got %d", len(fields))
	}
	if fields["email"] != "jane@example.com" {
		t.Error("email field should be present")
	}
	if _, ok := fields["phone"]; ok {
		t.Error("empty phone should be omitted")
	}
}

func TestImageSet(t *testing.T) {
	var empty ImageSet
	if empty.HasAny() {
		t.Error("empty set should report no images")
	}

	set := ImageSet{
		Moodboard: []ImageRef{{URL: "https://cdn.example.com/m1.jpg", Width: 800, Height: 600}},
		Final:     []ImageRef{{URL: "https://cdn.example.com/f1.jpg"}},
	}
	if !set.HasAny() {
		t.Error("set with images should report images")
	}

	client := set.ClientImages()
	if len(client) != 1 {
		t.Errorf("client images should exclude moodboard, got %d", len(client))
	}
	if client[0].URL != "https://cdn.example.com/f1.jpg" {
		t.Error("client images should contain final image")
	}
}
