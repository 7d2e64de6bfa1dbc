package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ludo-technologies/htmlscan/domain"
	"github.com/ludo-technologies/htmlscan/internal/config"
	"github.com/ludo-technologies/htmlscan/service"
)

// ValidateConfig holds configuration for the validate use case
type ValidateConfig struct {
	// OutputFormat specifies how reports are rendered
	OutputFormat domain.OutputFormat

	// OutputWriter receives the rendered reports
	OutputWriter io.Writer

	// DataPath is an explicit portfolio data file applied to every
	// artifact. When empty, each artifact's sidecar data file is used.
	DataPath string

	// Recursive controls directory traversal
	Recursive bool

	// ExcludePatterns filters collected files
	ExcludePatterns []string

	// RespectGitignore skips files ignored by .gitignore
	RespectGitignore bool

	// ApplyFixes runs the auto-fix pass after validation and rewrites
	// each repaired artifact in place
	ApplyFixes bool
}

// DefaultValidateConfig returns a validate config with sensible defaults
func DefaultValidateConfig() ValidateConfig {
	cfg := config.DefaultConfig()
	return ValidateConfig{
		OutputFormat:     domain.OutputFormatText,
		OutputWriter:     os.Stdout,
		Recursive:        cfg.Analysis.Recursive,
		ExcludePatterns:  cfg.Analysis.ExcludePatterns,
		RespectGitignore: cfg.Analysis.RespectGitignore,
	}
}

// ArtifactResult pairs an artifact path with its composite report
type ArtifactResult struct {
	Path   string
	Report *domain.CompositeReport
}

// ValidateUseCase orchestrates the complete validation workflow from
// artifact collection through report output.
type ValidateUseCase struct {
	orchestrator *service.Orchestrator
	fixService   domain.FixService
	formatter    domain.OutputFormatter
	fileHelper   *FileHelper
}

// NewValidateUseCase creates a validate use case from configuration
func NewValidateUseCase(cfg *config.Config) *ValidateUseCase {
	return &ValidateUseCase{
		orchestrator: service.NewOrchestrator(cfg.Validation),
		fixService:   service.NewFixService(cfg.AutoFix),
		formatter:    service.NewOutputFormatter(),
		fileHelper:   NewFileHelper(),
	}
}

// SetProgressManager attaches progress reporting to the underlying
// orchestrator.
func (uc *ValidateUseCase) SetProgressManager(pm domain.ProgressManager) {
	uc.orchestrator.SetProgressManager(pm)
}

// Execute validates the artifacts found at the given paths and writes a
// report per artifact. The results are returned for callers that gate on
// them, such as the check command.
func (uc *ValidateUseCase) Execute(ctx context.Context, cfg ValidateConfig, paths []string) ([]ArtifactResult, error) {
	files, err := ResolveArtifactPaths(uc.fileHelper, paths, cfg.Recursive, cfg.ExcludePatterns, cfg.RespectGitignore)
	if err != nil {
		return nil, domain.NewInputError("failed to collect artifacts", err)
	}
	if len(files) == 0 {
		return nil, domain.NewInputError("no HTML artifacts found in the specified paths", nil)
	}

	results := make([]ArtifactResult, 0, len(files))
	for _, file := range files {
		content, err := uc.fileHelper.ReadFile(file)
		if err != nil {
			return results, domain.NewInputError(fmt.Sprintf("failed to read %s", file), err)
		}
		data, err := resolveData(cfg.DataPath, file)
		if err != nil {
			return results, err
		}

		report := uc.orchestrator.Validate(ctx, domain.ValidationRequest{
			HTML: string(content),
			Data: data,
		})
		result := ArtifactResult{Path: file, Report: report}
		results = append(results, result)

		if err := uc.writeResult(cfg, result, len(files) > 1); err != nil {
			return results, err
		}

		if cfg.ApplyFixes {
			if err := uc.applyFixes(ctx, cfg, file, string(content), report, data); err != nil {
				return results, err
			}
		}
	}
	return results, nil
}

// applyFixes runs the repair pass for one validated artifact, rewrites
// the file when anything changed, and appends the fix record to the
// output.
func (uc *ValidateUseCase) applyFixes(ctx context.Context, cfg ValidateConfig, path, html string, report *domain.CompositeReport, data *domain.PortfolioData) error {
	record := uc.fixService.Fix(ctx, domain.FixRequest{
		HTML:   html,
		Report: report,
		Data:   data,
	})
	if record.HTMLModified {
		if err := os.WriteFile(path, []byte(record.ImprovedHTML), 0644); err != nil {
			return domain.NewFixError(fmt.Sprintf("failed to rewrite %s", path), err)
		}
	}
	return uc.formatter.WriteFixRecord(record, cfg.OutputFormat, cfg.OutputWriter)
}

// ValidateArtifact validates a single in-memory artifact without any
// file collection or output. Used by callers that already hold the HTML.
func (uc *ValidateUseCase) ValidateArtifact(ctx context.Context, html string, data *domain.PortfolioData) *domain.CompositeReport {
	return uc.orchestrator.Validate(ctx, domain.ValidationRequest{HTML: html, Data: data})
}

func (uc *ValidateUseCase) writeResult(cfg ValidateConfig, result ArtifactResult, batch bool) error {
	if batch && cfg.OutputFormat == domain.OutputFormatText {
		if _, err := fmt.Fprintf(cfg.OutputWriter, "\n=== %s ===\n", result.Path); err != nil {
			return err
		}
	}
	return uc.formatter.WriteComposite(result.Report, cfg.OutputFormat, cfg.OutputWriter)
}
