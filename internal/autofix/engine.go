// Package autofix applies mechanical repairs to a validated artifact.
//
// The engine is driven entirely by the composite report: each dimension
// whose score fell below its threshold gets one repair stage, and each
// stage dispatches on the issue kinds the analyzers recorded. Fixes are
// conservative DOM mutations; anything the engine cannot repair
// mechanically is skipped, never guessed at.
package autofix

import (
	"context"
	"strings"

	"golang.org/x/net/html"

	"github.com/ludo-technologies/htmlscan/domain"
)

// stage binds a dimension to its score threshold. Order matters: later
// stages see the mutations of earlier ones.
type stage struct {
	dimension domain.Dimension
	threshold int
}

// stages run accessibility first (small, safe insertions), then document
// structure, then content, then design last since it rewrites sources.
var stages = []stage{
	{domain.DimensionAccessibility, domain.FixThresholdAccessibility},
	{domain.DimensionTechnical, domain.FixThresholdTechnical},
	{domain.DimensionContent, domain.FixThresholdContent},
	{domain.DimensionDesign, domain.FixThresholdDesign},
}

// fixFunc mutates the document in place and returns a human-readable
// description of what it did, or "" when nothing needed fixing.
type fixFunc func(fc *fixContext) string

// fixContext is the shared mutable state one repair pass operates on.
type fixContext struct {
	root *html.Node
	data *domain.PortfolioData
}

// Engine implements domain.FixService.
type Engine struct {
	fixers map[domain.Dimension]map[string]fixFunc
}

// NewEngine creates a fix engine with the full repair catalogue.
func NewEngine() *Engine {
	return &Engine{
		fixers: map[domain.Dimension]map[string]fixFunc{
			domain.DimensionAccessibility: {
				"missing_alt_text":        fixMissingAltText,
				"missing_main_landmark":   fixMissingMainLandmark,
				"missing_h1":              fixMissingH1,
				"missing_keyboard_access": fixMissingKeyboardAccess,
				"low_contrast_risk":       fixLowContrastRisk,
			},
			domain.DimensionTechnical: {
				"missing_doctype":        fixMissingDoctype,
				"missing_lang_attribute": fixMissingLang,
				"missing_viewport_meta":  fixMissingViewport,
				"missing_charset_meta":   fixMissingCharset,
				"missing_title_element":  fixMissingTitle,
				"no_responsive_css":      fixNoResponsiveCSS,
				"empty_image_src":        fixEmptyImageSrc,
			},
			domain.DimensionContent: {
				"missing_name":               fixMissingName,
				"missing_professional_title": fixMissingProfessionalTitle,
				"placeholder_text":           fixPlaceholderText,
			},
			domain.DimensionDesign: {
				"unused_client_images": fixUnusedClientImages,
				"no_responsive_css":    fixNoResponsiveCSS,
			},
		},
	}
}

// Fix implements domain.FixService. It never returns an error: a failed
// pass reports success=false with the original artifact untouched.
func (e *Engine) Fix(ctx context.Context, req domain.FixRequest) (record *domain.AutoFixRecord) {
	record = &domain.AutoFixRecord{
		OriginalHTML: req.HTML,
		ImprovedHTML: req.HTML,
		FixesApplied: []string{},
		Success:      true,
	}

	defer func() {
		if r := recover(); r != nil {
			record.FixesApplied = nil
			record.HTMLModified = false
			record.ImprovedHTML = req.HTML
			record.Success = false
		}
	}()

	if req.Report == nil || req.Report.Dimensions == nil {
		return record
	}

	root, err := html.Parse(strings.NewReader(req.HTML))
	if err != nil {
		record.Success = false
		return record
	}
	fc := &fixContext{root: root, data: req.Data}

	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			break
		}
		report := req.Report.Dimensions[st.dimension]
		if report == nil || report.Score >= st.threshold {
			continue
		}
		for _, issue := range report.Issues {
			fixer, ok := e.fixers[st.dimension][issue.Kind]
			if !ok {
				continue
			}
			if desc := applyFix(fixer, fc); desc != "" {
				record.FixesApplied = append(record.FixesApplied, desc)
			}
		}
	}

	if len(record.FixesApplied) > 0 {
		var sb strings.Builder
		if err := html.Render(&sb, root); err != nil {
			record.Success = false
			return record
		}
		record.HTMLModified = true
		record.ImprovedHTML = sb.String()
	}
	return record
}

// applyFix isolates one fixer: a panicking fixer is skipped and the pass
// continues with the remaining fixes.
func applyFix(fixer fixFunc, fc *fixContext) (desc string) {
	defer func() {
		if r := recover(); r != nil {
			desc = ""
		}
	}()
	return fixer(fc)
}
