package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ludo-technologies/htmlscan/domain"
	"github.com/ludo-technologies/htmlscan/service"
)

// CompletenessConfig holds configuration for the completeness use case
type CompletenessConfig struct {
	// OutputFormat specifies how the completeness report is rendered
	OutputFormat domain.OutputFormat

	// OutputWriter receives the rendered report
	OutputWriter io.Writer

	// BuildPrompt additionally emits the continuation prompt when the
	// artifact is incomplete but recoverable
	BuildPrompt bool

	// DataPath is an explicit portfolio data file used for prompt
	// context. When empty, the artifact's sidecar data file is used.
	DataPath string
}

// DefaultCompletenessConfig returns a completeness config with defaults
func DefaultCompletenessConfig() CompletenessConfig {
	return CompletenessConfig{
		OutputFormat: domain.OutputFormatText,
		OutputWriter: os.Stdout,
	}
}

// CompletenessUseCase estimates whether an artifact was truncated and
// drives the continuation protocol for recoverable ones.
type CompletenessUseCase struct {
	continuation *service.ContinuationServiceImpl
	formatter    domain.OutputFormatter
	fileHelper   *FileHelper
}

// NewCompletenessUseCase creates a completeness use case
func NewCompletenessUseCase() *CompletenessUseCase {
	return &CompletenessUseCase{
		continuation: service.NewContinuationService(),
		formatter:    service.NewOutputFormatter(),
		fileHelper:   NewFileHelper(),
	}
}

// Execute estimates completeness for a single artifact file and writes
// the report. With BuildPrompt set, the continuation prompt follows the
// report for incomplete but recoverable artifacts.
func (uc *CompletenessUseCase) Execute(ctx context.Context, cfg CompletenessConfig, path string) (*domain.CompletenessReport, error) {
	content, err := uc.fileHelper.ReadFile(path)
	if err != nil {
		return nil, domain.NewInputError(fmt.Sprintf("failed to read %s", path), err)
	}
	html := string(content)

	report := uc.continuation.Estimate(html)
	if err := uc.formatter.WriteCompleteness(report, cfg.OutputFormat, cfg.OutputWriter); err != nil {
		return report, err
	}

	if cfg.BuildPrompt && !report.IsComplete {
		data, err := resolveData(cfg.DataPath, path)
		if err != nil {
			return report, err
		}
		prompt, err := uc.continuation.BuildPrompt(domain.ContinuationRequest{
			PartialHTML: html,
			Report:      report,
			Data:        data,
		})
		if err != nil {
			return report, err
		}
		if _, err := fmt.Fprintf(cfg.OutputWriter, "\n--- Continuation prompt ---\n%s\n", prompt); err != nil {
			return report, err
		}
	}
	return report, nil
}

// Merge splices a continuation fragment file onto a truncated artifact
// file and writes the merged document to out.
func (uc *CompletenessUseCase) Merge(partialPath, fragmentPath string, out io.Writer) error {
	partial, err := uc.fileHelper.ReadFile(partialPath)
	if err != nil {
		return domain.NewInputError(fmt.Sprintf("failed to read %s", partialPath), err)
	}
	fragment, err := uc.fileHelper.ReadFile(fragmentPath)
	if err != nil {
		return domain.NewInputError(fmt.Sprintf("failed to read %s", fragmentPath), err)
	}

	merged := uc.continuation.Merge(string(partial), string(fragment))
	_, err = io.WriteString(out, merged)
	return err
}
