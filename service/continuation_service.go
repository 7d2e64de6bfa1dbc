package service

import (
	"github.com/ludo-technologies/htmlscan/domain"
	"github.com/ludo-technologies/htmlscan/internal/completeness"
)

// ContinuationServiceImpl bundles the completeness estimator with the
// continuation protocol for truncated artifacts.
type ContinuationServiceImpl struct {
	estimator *completeness.Estimator
	protocol  *completeness.Protocol
}

// NewContinuationService creates a continuation service
func NewContinuationService() *ContinuationServiceImpl {
	return &ContinuationServiceImpl{
		estimator: completeness.NewEstimator(),
		protocol:  completeness.NewProtocol(),
	}
}

// Estimate analyzes an artifact for truncation
func (s *ContinuationServiceImpl) Estimate(artifact string) *domain.CompletenessReport {
	return s.estimator.Estimate(artifact)
}

// BuildPrompt builds the resume instruction for the generation
// collaborator. It returns an error when the artifact is below the
// recoverability floor and must be regenerated instead.
func (s *ContinuationServiceImpl) BuildPrompt(req domain.ContinuationRequest) (string, error) {
	if req.Report == nil {
		req.Report = s.estimator.Estimate(req.PartialHTML)
	}
	if !req.Report.CanContinue {
		return "", domain.NewInputError("artifact is too sparse to continue; regenerate from scratch", nil)
	}
	return s.protocol.BuildPrompt(req), nil
}

// Merge splices a continuation fragment onto a truncated artifact
func (s *ContinuationServiceImpl) Merge(partial, fragment string) string {
	return s.protocol.Merge(partial, fragment)
}
