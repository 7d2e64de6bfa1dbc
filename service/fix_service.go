package service

import (
	"context"

	"github.com/ludo-technologies/htmlscan/domain"
	"github.com/ludo-technologies/htmlscan/internal/autofix"
	"github.com/ludo-technologies/htmlscan/internal/config"
)

// FixServiceImpl implements domain.FixService on top of the fix engine,
// applying the per-stage configuration toggles.
type FixServiceImpl struct {
	engine *autofix.Engine
	cfg    config.AutoFixConfig
}

// NewFixService creates a fix service
func NewFixService(cfg config.AutoFixConfig) *FixServiceImpl {
	return &FixServiceImpl{
		engine: autofix.NewEngine(),
		cfg:    cfg,
	}
}

// Fix implements domain.FixService. Disabled stages are removed from the
// report copy handed to the engine, so their dimensions are never touched.
func (s *FixServiceImpl) Fix(ctx context.Context, req domain.FixRequest) *domain.AutoFixRecord {
	if !s.cfg.Enabled {
		return &domain.AutoFixRecord{
			OriginalHTML: req.HTML,
			ImprovedHTML: req.HTML,
			FixesApplied: []string{},
			Success:      true,
		}
	}
	req.Report = s.filterStages(req.Report)
	return s.engine.Fix(ctx, req)
}

func (s *FixServiceImpl) filterStages(report *domain.CompositeReport) *domain.CompositeReport {
	if report == nil || report.Dimensions == nil {
		return report
	}

	enabled := map[domain.Dimension]bool{
		domain.DimensionAccessibility: s.cfg.FixAccessibility,
		domain.DimensionTechnical:     s.cfg.FixTechnical,
		domain.DimensionContent:       s.cfg.FixContent,
		domain.DimensionDesign:        s.cfg.FixDesign,
	}

	filtered := *report
	filtered.Dimensions = make(map[domain.Dimension]*domain.DimensionReport, len(report.Dimensions))
	for dim, dr := range report.Dimensions {
		if enabled[dim] {
			filtered.Dimensions[dim] = dr
		}
	}
	return &filtered
}
