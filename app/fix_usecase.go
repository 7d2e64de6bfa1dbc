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

// FixConfig holds configuration for the fix use case
type FixConfig struct {
	// OutputFormat specifies how the fix record is rendered
	OutputFormat domain.OutputFormat

	// OutputWriter receives the rendered fix record
	OutputWriter io.Writer

	// DataPath is an explicit portfolio data file. When empty, the
	// artifact's sidecar data file is used.
	DataPath string

	// InPlace overwrites the artifact file with the repaired HTML
	InPlace bool

	// OutputPath writes the repaired HTML to a separate file
	OutputPath string
}

// DefaultFixConfig returns a fix config with sensible defaults
func DefaultFixConfig() FixConfig {
	return FixConfig{
		OutputFormat: domain.OutputFormatText,
		OutputWriter: os.Stdout,
	}
}

// FixUseCase validates an artifact and applies mechanical repairs to the
// dimensions that scored below their fix thresholds.
type FixUseCase struct {
	orchestrator *service.Orchestrator
	fixService   domain.FixService
	formatter    domain.OutputFormatter
	fileHelper   *FileHelper
}

// NewFixUseCase creates a fix use case from configuration
func NewFixUseCase(cfg *config.Config) *FixUseCase {
	return &FixUseCase{
		orchestrator: service.NewOrchestrator(cfg.Validation),
		fixService:   service.NewFixService(cfg.AutoFix),
		formatter:    service.NewOutputFormatter(),
		fileHelper:   NewFileHelper(),
	}
}

// Execute repairs a single artifact file. It validates first, hands the
// report to the fix engine, writes the repaired HTML to the configured
// destination and renders the fix record.
func (uc *FixUseCase) Execute(ctx context.Context, cfg FixConfig, path string) (*domain.AutoFixRecord, error) {
	content, err := uc.fileHelper.ReadFile(path)
	if err != nil {
		return nil, domain.NewInputError(fmt.Sprintf("failed to read %s", path), err)
	}

	data, err := resolveData(cfg.DataPath, path)
	if err != nil {
		return nil, err
	}

	record, err := uc.FixArtifact(ctx, string(content), data)
	if err != nil {
		return nil, err
	}

	if record.HTMLModified {
		if err := uc.writeRepaired(cfg, path, record.ImprovedHTML); err != nil {
			return record, err
		}
	}
	if err := uc.formatter.WriteFixRecord(record, cfg.OutputFormat, cfg.OutputWriter); err != nil {
		return record, err
	}
	return record, nil
}

// FixArtifact repairs a single in-memory artifact
func (uc *FixUseCase) FixArtifact(ctx context.Context, html string, data *domain.PortfolioData) (*domain.AutoFixRecord, error) {
	report := uc.orchestrator.Validate(ctx, domain.ValidationRequest{HTML: html, Data: data})
	record := uc.fixService.Fix(ctx, domain.FixRequest{
		HTML:   html,
		Report: report,
		Data:   data,
	})
	return record, nil
}

// writeRepaired persists the repaired HTML. An explicit output path wins
// over in-place rewriting; with neither set, nothing is written and the
// repaired HTML only appears in the record.
func (uc *FixUseCase) writeRepaired(cfg FixConfig, sourcePath, html string) error {
	switch {
	case cfg.OutputPath != "":
		if err := os.WriteFile(cfg.OutputPath, []byte(html), 0644); err != nil {
			return domain.NewFixError(fmt.Sprintf("failed to write %s", cfg.OutputPath), err)
		}
	case cfg.InPlace:
		if err := os.WriteFile(sourcePath, []byte(html), 0644); err != nil {
			return domain.NewFixError(fmt.Sprintf("failed to rewrite %s", sourcePath), err)
		}
	}
	return nil
}
