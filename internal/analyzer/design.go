package analyzer

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/ludo-technologies/htmlscan/domain"
)

// Design heuristic thresholds. Part of the scoring contract.
const (
	// minPaletteSize is the color count below which the palette is
	// considered undeveloped in moodboard mode.
	minPaletteSize = 2

	// templateCriticalCount is the template-indicator count above which
	// the page is flagged as framework boilerplate.
	templateCriticalCount = 3

	// creativeTechniquePass is the minimum number of creative CSS
	// techniques for a pass.
	creativeTechniquePass = 3

	// typographyAdvanced and typographySome bucket typography indicators.
	typographyAdvanced = 4
	typographySome     = 2

	// headingVarietyCap caps how many distinct heading sizes are expected.
	headingVarietyCap = 4

	// layoutVarietyRatio is the share of sections expected to carry
	// distinctive layout styling.
	layoutVarietyRatio = 0.5

	// densityMinimal and densityModerate bucket content density by total
	// text length.
	densityMinimal  = 500
	densityModerate = 1500

	// spatialGenerous and spatialModerate bucket spacing keyword counts.
	spatialGenerous = 4
	spatialModerate = 2

	// clientImageRatio is the minimum share of supplied client images
	// that must appear in the page.
	clientImageRatio = 0.7
)

// Color extraction patterns.
var (
	hexColorRe = regexp.MustCompile(`#(?:[0-9a-f]{6}|[0-9a-f]{3})\b`)
	rgbColorRe = regexp.MustCompile(`rgba?\([^)]+\)`)

	negativeMarginRe = regexp.MustCompile(`margin[a-z-]*:\s*-`)
)

// namedColors is the fixed 13-word color vocabulary.
var namedColors = []string{
	"black", "white", "red", "blue", "green", "yellow", "purple",
	"orange", "pink", "gray", "teal", "coral", "navy",
}

// experimentalCSS marks modern layout features.
var experimentalCSS = []string{
	"clip-path",
	"grid-template-areas",
	"backdrop-filter",
	"mix-blend-mode",
	"shape-outside",
	"mask-image",
	"perspective",
	"writing-mode",
	"aspect-ratio",
}

// creativeTechniques are the CSS indicators counted by the
// creative-technique gate.
var creativeTechniques = []string{
	"animation",
	"transition",
	"transform",
	"clip-path",
	"gradient",
	"backdrop-filter",
	"mix-blend-mode",
	"@keyframes",
	"filter:",
}

// templateIndicators are class names typical of CSS framework templates.
var templateIndicators = []string{
	"container-fluid",
	"jumbotron",
	"navbar-default",
	"btn-primary",
	"col-md-",
	"col-sm-",
	"panel-default",
}

// typographyIndicators are counted by the typography-creativity score.
var typographyIndicators = []string{
	"font-family",
	"letter-spacing",
	"text-transform",
	"font-weight",
	"text-shadow",
	"line-height",
	"font-variation",
	"writing-mode",
	"-webkit-text-stroke",
	"font-feature-settings",
}

// spacingKeywords are counted by the spatial-usage classifier.
var spacingKeywords = []string{
	"padding:",
	"margin:",
	"gap:",
	"row-gap",
	"column-gap",
	"line-height",
	"letter-spacing",
}

// moodSynonyms maps each supported mood to its keyword vocabulary. The
// literal mood word itself always counts as well.
var moodSynonyms = map[string][]string{
	"minimal": {"clean", "simple", "whitespace", "sparse", "uncluttered"},
	"bold":    {"vibrant", "strong", "striking", "dramatic", "intense"},
	"playful": {"fun", "colorful", "quirky", "lively", "rounded"},
	"elegant": {"refined", "sophisticated", "graceful", "serif", "classic"},
	"modern":  {"contemporary", "sleek", "geometric", "futuristic", "fresh"},
	"warm":    {"cozy", "inviting", "friendly", "soft", "welcoming"},
	"dark":    {"moody", "noir", "mysterious", "shadow", "midnight"},
}

// layoutSignals are the structural observations shared between both
// design modes.
type layoutSignals struct {
	usesGrid     bool
	usesFlex     bool
	asymmetry    bool
	overlap      bool
	experimental bool
	navStyle     string
	density      string
	spatial      string
}

// DesignAnalyzer evaluates visual ambition. With moodboard images it
// demands creative layout work; without them it falls back to checking
// the stated style preferences.
type DesignAnalyzer struct{}

// NewDesignAnalyzer creates a design analyzer
func NewDesignAnalyzer() *DesignAnalyzer {
	return &DesignAnalyzer{}
}

// Dimension implements domain.Analyzer
func (a *DesignAnalyzer) Dimension() domain.Dimension {
	return domain.DimensionDesign
}

// Validate implements domain.Analyzer
func (a *DesignAnalyzer) Validate(ctx context.Context, req domain.ValidationRequest) (*domain.DimensionReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Data == nil {
		return nil, domain.NewInputError("design analysis requires portfolio data", nil)
	}

	doc, err := ParseDocument(req.HTML)
	if err != nil {
		return nil, domain.NewValidationError("failed to parse artifact", err)
	}

	b := newReportBuilder()
	colors := extractColors(doc.StyleText)
	signals := extractLayoutSignals(doc)

	moodboard := len(req.Data.Images.Moodboard) > 0
	if moodboard {
		a.evaluateMoodboard(b, doc, signals, colors)
	} else {
		a.evaluateFallback(b, doc, signals, colors, req.Data.Style)
	}
	a.evaluateUniversal(b, doc, signals, req.Data)

	report := b.build(domain.DimensionDesign)
	report.Compliance = buildCompliance(doc, signals, colors, moodboard)
	return report, nil
}

// extractColors collects the deduplicated lowercase color set from all
// style text: hex values, rgb()/rgba() calls and the named vocabulary.
func extractColors(styleText string) map[string]struct{} {
	colors := make(map[string]struct{})
	for _, m := range hexColorRe.FindAllString(styleText, -1) {
		colors[strings.ToLower(m)] = struct{}{}
	}
	for _, m := range rgbColorRe.FindAllString(styleText, -1) {
		colors[strings.ToLower(m)] = struct{}{}
	}
	for _, name := range namedColors {
		if strings.Contains(styleText, ": "+name) || strings.Contains(styleText, ":"+name) {
			colors[name] = struct{}{}
		}
	}
	return colors
}

func extractLayoutSignals(doc *Document) layoutSignals {
	style := doc.StyleText

	has := func(sub string) bool { return strings.Contains(style, sub) }

	signals := layoutSignals{
		usesGrid: has("display: grid") || has("display:grid"),
		usesFlex: has("display: flex") || has("display:flex"),
	}

	signals.asymmetry = (has("margin-left") && has("margin-right")) ||
		(has("text-align: left") && has("text-align: right")) ||
		has("float:") || has("float :") ||
		has("position: absolute") || has("position:absolute")

	signals.overlap = has("z-index") ||
		has("position: absolute") || has("position:absolute") ||
		has("position: fixed") || has("position:fixed") ||
		negativeMarginRe.MatchString(style)

	for _, kw := range experimentalCSS {
		if has(kw) {
			signals.experimental = true
			break
		}
	}

	signals.navStyle = classifyNavigation(doc)
	signals.density = classifyDensity(len(doc.Text))
	signals.spatial = classifySpatial(style)

	return signals
}

// classifyNavigation buckets the first matching navigation element.
func classifyNavigation(doc *Document) string {
	if len(doc.NavNodes) == 0 {
		return "none"
	}

	buckets := []struct {
		style    string
		keywords []string
	}{
		{"mobile-first", []string{"hamburger", "burger", "menu-toggle", "drawer"}},
		{"sticky", []string{"sticky", "fixed"}},
		{"sidebar", []string{"sidebar", "side-nav", "vertical-nav"}},
		{"experimental", []string{"radial", "circular", "floating", "morph"}},
	}

	for _, nav := range doc.NavNodes {
		marker := strings.ToLower(AttrVal(nav, "class") + " " + AttrVal(nav, "id") + " " + AttrVal(nav, "style"))
		for _, bucket := range buckets {
			for _, kw := range bucket.keywords {
				if strings.Contains(marker, kw) {
					return bucket.style
				}
			}
		}
	}
	return "standard"
}

func classifyDensity(textLen int) string {
	switch {
	case textLen < densityMinimal:
		return "minimal"
	case textLen < densityModerate:
		return "moderate"
	default:
		return "dense"
	}
}

func classifySpatial(styleText string) string {
	count := 0
	for _, kw := range spacingKeywords {
		if strings.Contains(styleText, kw) {
			count++
		}
	}
	switch {
	case count >= spatialGenerous:
		return "generous"
	case count >= spatialModerate:
		return "moderate"
	default:
		return "tight"
	}
}

// evaluateMoodboard runs the strict branch: moodboard images were
// supplied, so a safe generic layout is a defect, not a default.
func (a *DesignAnalyzer) evaluateMoodboard(b *reportBuilder, doc *Document, signals layoutSignals, colors map[string]struct{}) {
	// Creative layout gate. Grid or flex alone does not satisfy it, but
	// it is still layout effort: only a page with none of these signals
	// is flagged as generic.
	switch {
	case signals.asymmetry || signals.overlap || signals.experimental:
		b.pass("Layout goes beyond a generic structure")
	case signals.usesGrid || signals.usesFlex:
		b.suggest("safe_layout",
			"Layout uses grid or flex but stays conventional",
			"Introduce asymmetry, overlap or experimental CSS layout")
	default:
		b.issue("generic_layout", domain.SeverityHigh,
			"The layout stays generic despite supplied moodboard inspiration",
			"Introduce asymmetry, overlap or experimental CSS layout")
	}

	if len(colors) >= minPaletteSize {
		b.pass("Color palette developed")
	} else {
		b.issue("limited_palette", domain.SeverityMedium,
			fmt.Sprintf("Only %d color(s) are defined", len(colors)),
			"Derive a fuller palette from the moodboard")
	}

	a.checkTemplatePatterns(b, doc)
	a.checkCreativeTechniques(b, doc)
	a.checkLayoutVariety(b, doc)
	a.checkNavigationCreativity(b, signals)
	a.checkTypography(b, doc)
	a.checkHeadingVariety(b, doc)
}

func (a *DesignAnalyzer) checkTemplatePatterns(b *reportBuilder, doc *Document) {
	count := 0
	for _, indicator := range templateIndicators {
		if strings.Contains(doc.ClassIDText, indicator) {
			count++
		}
	}
	switch {
	case count > templateCriticalCount:
		b.issue("template_markup", domain.SeverityCritical,
			fmt.Sprintf("%d framework template class patterns detected", count),
			"Replace framework boilerplate with bespoke markup")
	case count == 0:
		b.pass("No template patterns")
	default:
		b.suggest("template_markup",
			fmt.Sprintf("%d framework template class patterns detected", count),
			"Reduce reliance on framework class names")
	}
}

func (a *DesignAnalyzer) checkCreativeTechniques(b *reportBuilder, doc *Document) {
	count := 0
	for _, technique := range creativeTechniques {
		if strings.Contains(doc.StyleText, technique) {
			count++
		}
	}
	if count >= creativeTechniquePass {
		b.pass(fmt.Sprintf("Uses %d creative CSS techniques", count))
	} else {
		b.suggest("few_creative_techniques",
			fmt.Sprintf("Only %d creative CSS techniques in use", count),
			"Add animation, transforms or blend modes")
	}
}

// checkLayoutVariety expects at least half the sections to carry
// distinctive layout styling.
func (a *DesignAnalyzer) checkLayoutVariety(b *reportBuilder, doc *Document) {
	if len(doc.Sections) == 0 {
		return
	}
	styled := 0
	for _, section := range doc.Sections {
		if sectionHasLayoutStyling(doc, section) {
			styled++
		}
	}
	need := int(layoutVarietyRatio * float64(len(doc.Sections)))
	if need == 0 {
		need = 1
	}
	if styled >= need {
		b.pass("Sections vary their layout treatment")
	} else {
		b.suggest("uniform_sections",
			fmt.Sprintf("Only %d of %d sections have distinctive layout styling", styled, len(doc.Sections)),
			"Give each section its own layout rhythm")
	}
}

// sectionHasLayoutStyling checks the section's inline style and class
// markers, and whether any of its classes or its id is targeted by a
// style rule in the document.
func sectionHasLayoutStyling(doc *Document, section *html.Node) bool {
	if containsAny(strings.ToLower(AttrVal(section, "style")), "grid", "flex", "absolute", "transform") {
		return true
	}
	var selectors []string
	for _, class := range strings.Fields(strings.ToLower(AttrVal(section, "class"))) {
		selectors = append(selectors, "."+class)
	}
	if id := strings.ToLower(AttrVal(section, "id")); id != "" {
		selectors = append(selectors, "#"+id)
	}
	for _, sel := range selectors {
		idx := strings.Index(doc.StyleText, sel)
		if idx < 0 {
			continue
		}
		// Look at the rule body following the selector.
		window := doc.StyleText[idx:]
		if end := strings.Index(window, "}"); end >= 0 {
			window = window[:end]
		}
		if containsAny(window, "grid", "flex", "absolute", "transform") {
			return true
		}
	}
	return false
}

func (a *DesignAnalyzer) checkNavigationCreativity(b *reportBuilder, signals layoutSignals) {
	switch signals.navStyle {
	case "mobile-first", "sidebar", "experimental":
		b.pass(fmt.Sprintf("Navigation style is %s", signals.navStyle))
	case "sticky", "standard":
		b.suggest("conventional_navigation",
			"Navigation follows a conventional pattern",
			"Consider a sidebar or experimental navigation treatment")
	default:
		b.suggest("no_navigation",
			"No navigation element was found",
			"Add navigation between sections")
	}
}

func (a *DesignAnalyzer) checkTypography(b *reportBuilder, doc *Document) {
	count := 0
	for _, indicator := range typographyIndicators {
		if strings.Contains(doc.StyleText, indicator) {
			count++
		}
	}
	switch {
	case count >= typographyAdvanced:
		b.pass("Advanced typographic styling")
	case count >= typographySome:
		b.pass("Some typographic styling")
	default:
		b.suggest("plain_typography",
			"Typography relies on browser defaults",
			"Style font families, weights and spacing")
	}
}

// checkHeadingVariety expects distinct inline heading sizes, up to a cap.
func (a *DesignAnalyzer) checkHeadingVariety(b *reportBuilder, doc *Document) {
	if len(doc.Headings) == 0 {
		return
	}
	sizes := make(map[string]struct{})
	for _, h := range doc.Headings {
		if h.FontSize != "" {
			sizes[h.FontSize] = struct{}{}
		}
	}
	need := len(doc.Headings)
	if need > headingVarietyCap {
		need = headingVarietyCap
	}
	if len(sizes) >= need {
		b.pass("Heading sizes form a scale")
	} else {
		b.suggest("flat_heading_scale",
			"Headings share too few distinct sizes",
			"Differentiate heading levels by size")
	}
}

// evaluateFallback checks the artifact against the stated style
// preferences when no moodboard was supplied.
func (a *DesignAnalyzer) evaluateFallback(b *reportBuilder, doc *Document, signals layoutSignals, colors map[string]struct{}, style domain.StylePreferences) {
	a.checkMood(b, doc, style.Mood)
	a.checkColorScheme(b, colors, style.ColorScheme)
	a.checkTypographyPreference(b, doc, style.Typography)
	a.checkLayoutPreference(b, signals, style.LayoutStyle)
}

func (a *DesignAnalyzer) checkMood(b *reportBuilder, doc *Document, mood string) {
	mood = strings.ToLower(strings.TrimSpace(mood))
	if mood == "" {
		return
	}
	probes := append([]string{mood}, moodSynonyms[mood]...)
	haystack := doc.LowerText + " " + doc.ClassIDText + " " + doc.StyleText
	for _, probe := range probes {
		if strings.Contains(haystack, probe) {
			b.pass(fmt.Sprintf("The %q mood comes through", mood))
			return
		}
	}
	b.suggest("mood_not_reflected",
		fmt.Sprintf("Nothing on the page reflects the requested %q mood", mood),
		"Echo the mood in styling or copy")
}

func (a *DesignAnalyzer) checkColorScheme(b *reportBuilder, colors map[string]struct{}, scheme string) {
	scheme = strings.ToLower(strings.TrimSpace(scheme))
	if scheme == "" {
		return
	}

	ok := false
	switch scheme {
	case "monochrome":
		ok = len(colors) > 0 && len(colors) <= 3
	case "pastel", "muted":
		ok = len(colors) >= 2
	case "vibrant", "neon":
		ok = len(colors) >= 4
	case "earthy":
		ok = len(colors) >= 2
	default:
		// Unknown scheme names are not penalized.
		return
	}

	if ok {
		b.pass(fmt.Sprintf("Palette size fits the %q scheme", scheme))
	} else {
		b.suggest("scheme_mismatch",
			fmt.Sprintf("The palette does not match the requested %q scheme", scheme),
			"Adjust the number of colors to fit the scheme")
	}
}

func (a *DesignAnalyzer) checkTypographyPreference(b *reportBuilder, doc *Document, pref string) {
	pref = strings.ToLower(strings.TrimSpace(pref))
	if pref == "" {
		return
	}
	if !strings.Contains(doc.StyleText, "font-family") {
		b.suggest("default_fonts",
			"No font families are declared despite a typography preference",
			"Declare font families matching the preference")
		return
	}
	if strings.Contains(doc.StyleText, pref) {
		b.pass(fmt.Sprintf("Typography follows the %q preference", pref))
	} else {
		b.pass("Custom typography is declared")
	}
}

func (a *DesignAnalyzer) checkLayoutPreference(b *reportBuilder, signals layoutSignals, pref string) {
	pref = strings.ToLower(strings.TrimSpace(pref))
	if pref == "" {
		return
	}

	ok := false
	switch pref {
	case "grid":
		ok = signals.usesGrid
	case "asymmetric", "experimental":
		ok = signals.asymmetry || signals.experimental
	case "single-column", "classic":
		ok = true
	default:
		return
	}

	if ok {
		b.pass(fmt.Sprintf("Layout follows the %q preference", pref))
	} else {
		b.suggest("layout_mismatch",
			fmt.Sprintf("Layout does not follow the requested %q style", pref),
			"Restructure the page toward the requested layout")
	}
}

// evaluateUniversal runs checks that apply in both modes.
func (a *DesignAnalyzer) evaluateUniversal(b *reportBuilder, doc *Document, signals layoutSignals, data *domain.PortfolioData) {
	a.checkClientImages(b, doc, data)
	a.checkImageStyling(b, doc)

	if strings.Contains(doc.StyleText, "@media") {
		b.pass("Responsive media queries present")
	} else {
		b.issue("no_responsive_css", domain.SeverityMedium,
			"No media queries were found",
			"Add responsive breakpoints")
	}

	a.checkTechnicalPolish(b, doc)
}

func (a *DesignAnalyzer) checkClientImages(b *reportBuilder, doc *Document, data *domain.PortfolioData) {
	client := data.Images.ClientImages()
	if len(client) == 0 {
		b.pass("No client images were supplied")
		return
	}

	used := 0
	for _, img := range client {
		if img.URL != "" && strings.Contains(doc.LowerHTML, strings.ToLower(img.URL)) {
			used++
		}
	}

	ratio := float64(used) / float64(len(client))
	switch {
	case used == 0:
		b.issue("unused_client_images", domain.SeverityHigh,
			fmt.Sprintf("None of the %d supplied work images appear in the page", len(client)),
			"Replace placeholder images with the supplied work")
	case ratio < clientImageRatio:
		b.issue("unused_client_images", domain.SeverityMedium,
			fmt.Sprintf("Only %d of %d supplied work images are used", used, len(client)),
			"Use the remaining supplied images")
	default:
		b.pass("Supplied work images are used")
	}
}

func (a *DesignAnalyzer) checkImageStyling(b *reportBuilder, doc *Document) {
	if len(doc.Images) == 0 {
		return
	}
	if containsAny(doc.StyleText, "img", "object-fit", "border-radius") {
		b.pass("Images have custom styling")
	} else {
		b.suggest("unstyled_images",
			"Images are rendered without custom styling",
			"Style images with object-fit, radius or framing")
	}
}

func (a *DesignAnalyzer) checkTechnicalPolish(b *reportBuilder, doc *Document) {
	polish := 0
	if strings.Contains(doc.StyleText, "var(--") || strings.Contains(doc.StyleText, "--") {
		polish++
	}
	if strings.Contains(doc.StyleText, "transition") || strings.Contains(doc.StyleText, "@keyframes") {
		polish++
	}
	if containsAny(doc.StyleText, "rem", "em;", "vw", "vh", "%") {
		polish++
	}
	if polish >= 2 {
		b.pass("CSS shows technical polish")
	} else {
		b.suggest("low_css_polish",
			"CSS lacks variables, motion or relative units",
			"Adopt custom properties and relative sizing")
	}
}

// buildCompliance produces the descriptive-only summary. It never feeds
// the dimension score.
func buildCompliance(doc *Document, signals layoutSignals, colors map[string]struct{}, moodboard bool) *domain.DesignCompliance {
	creative := 0
	if signals.asymmetry {
		creative++
	}
	if signals.overlap {
		creative++
	}
	if signals.experimental {
		creative++
	}
	techniques := 0
	for _, technique := range creativeTechniques {
		if strings.Contains(doc.StyleText, technique) {
			techniques++
		}
	}

	layout := 0
	if signals.usesGrid {
		layout += 25
	}
	if signals.usesFlex {
		layout += 25
	}
	layout += creative * 15

	harmony := "undeveloped"
	switch {
	case len(colors) >= 5:
		harmony = "rich"
	case len(colors) >= minPaletteSize:
		harmony = "balanced"
	}

	return &domain.DesignCompliance{
		CreativityScore:     clampScore(creative*20 + techniques*5),
		LayoutInnovation:    clampScore(layout),
		ColorHarmony:        harmony,
		NavigationStyle:     signals.navStyle,
		ContentDensity:      signals.density,
		SpatialUsage:        signals.spatial,
		MoodboardEvaluation: moodboard,
	}
}

func clampScore(v int) int {
	if v > 100 {
		return 100
	}
	if v < 0 {
		return 0
	}
	return v
}

func containsAny(haystack string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
