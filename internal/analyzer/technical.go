package analyzer

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ludo-technologies/htmlscan/domain"
)

// TechnicalAnalyzer checks document structure and metadata hygiene.
type TechnicalAnalyzer struct{}

// NewTechnicalAnalyzer creates a technical analyzer
func NewTechnicalAnalyzer() *TechnicalAnalyzer {
	return &TechnicalAnalyzer{}
}

// Dimension implements domain.Analyzer
func (a *TechnicalAnalyzer) Dimension() domain.Dimension {
	return domain.DimensionTechnical
}

// Validate implements domain.Analyzer
func (a *TechnicalAnalyzer) Validate(ctx context.Context, req domain.ValidationRequest) (*domain.DimensionReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := ParseDocument(req.HTML)
	if err != nil {
		return nil, domain.NewValidationError("failed to parse artifact", err)
	}

	b := newReportBuilder()

	a.checkDoctype(b, doc)
	a.checkLang(b, doc)
	a.checkMeta(b, doc)
	a.checkTitle(b, doc)
	a.checkStyling(b, doc)
	a.checkResponsive(b, doc)
	a.checkImageSources(b, doc)
	a.checkDuplicateIDs(b, doc)
	a.checkInlineHandlers(b, doc)
	a.checkScriptPlacement(b, doc)

	return b.build(domain.DimensionTechnical), nil
}

func (a *TechnicalAnalyzer) checkDoctype(b *reportBuilder, doc *Document) {
	if strings.HasPrefix(strings.TrimSpace(doc.LowerHTML), "<!doctype") {
		b.pass("Doctype declaration present")
	} else {
		b.issue("missing_doctype", domain.SeverityMedium,
			"The document has no doctype declaration",
			"Start the document with <!DOCTYPE html>")
	}
}

func (a *TechnicalAnalyzer) checkLang(b *reportBuilder, doc *Document) {
	htmlNode := FindFirst(doc.Root, atom.Html)
	if htmlNode != nil && AttrVal(htmlNode, "lang") != "" {
		b.pass("Document language declared")
	} else {
		b.issue("missing_lang_attribute", domain.SeverityLow,
			"The html element has no lang attribute",
			"Add lang=\"en\" to the html element")
	}
}

func (a *TechnicalAnalyzer) checkMeta(b *reportBuilder, doc *Document) {
	hasViewport, hasCharset := false, false
	Walk(doc.Root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Meta {
			if strings.EqualFold(AttrVal(n, "name"), "viewport") {
				hasViewport = true
			}
			if HasAttr(n, "charset") {
				hasCharset = true
			}
		}
		return true
	})

	if hasViewport {
		b.pass("Viewport meta tag present")
	} else {
		b.issue("missing_viewport_meta", domain.SeverityHigh,
			"No viewport meta tag; the page will not scale on mobile",
			"Add <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">")
	}

	if hasCharset {
		b.pass("Charset declared")
	} else {
		b.issue("missing_charset_meta", domain.SeverityMedium,
			"No charset meta tag",
			"Add <meta charset=\"UTF-8\">")
	}
}

func (a *TechnicalAnalyzer) checkTitle(b *reportBuilder, doc *Document) {
	titleNode := FindFirst(doc.Root, atom.Title)
	if titleNode != nil && strings.TrimSpace(CollectText(titleNode)) != "" {
		b.pass("Page title present")
	} else {
		b.issue("missing_title_element", domain.SeverityMedium,
			"The document has no title element",
			"Add a descriptive <title>")
	}
}

func (a *TechnicalAnalyzer) checkStyling(b *reportBuilder, doc *Document) {
	if strings.TrimSpace(doc.StyleText) != "" {
		b.pass("Document carries styling")
	} else {
		b.issue("no_styling", domain.SeverityCritical,
			"The document has no styling at all",
			"Add a style block")
	}
}

func (a *TechnicalAnalyzer) checkResponsive(b *reportBuilder, doc *Document) {
	if strings.Contains(doc.StyleText, "@media") {
		b.pass("Media queries present")
	} else {
		b.issue("no_responsive_css", domain.SeverityMedium,
			"No media queries were found",
			"Add responsive breakpoints")
	}
}

func (a *TechnicalAnalyzer) checkImageSources(b *reportBuilder, doc *Document) {
	if len(doc.Images) == 0 {
		return
	}
	empty := 0
	for _, img := range doc.Images {
		src := strings.TrimSpace(AttrVal(img, "src"))
		if src == "" || src == "#" {
			empty++
		}
	}
	if empty == 0 {
		b.pass("All images have sources")
	} else {
		b.issue("empty_image_src", domain.SeverityHigh,
			fmt.Sprintf("%d image(s) have an empty src", empty),
			"Point every image at a real or placeholder source")
	}
}

func (a *TechnicalAnalyzer) checkDuplicateIDs(b *reportBuilder, doc *Document) {
	seen := make(map[string]int)
	Walk(doc.Root, func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			if id := AttrVal(n, "id"); id != "" {
				seen[id]++
			}
		}
		return true
	})

	duplicates := 0
	for _, count := range seen {
		if count > 1 {
			duplicates++
		}
	}
	if duplicates == 0 {
		if len(seen) > 0 {
			b.pass("Element IDs are unique")
		}
	} else {
		b.issue("duplicate_ids", domain.SeverityMedium,
			fmt.Sprintf("%d id value(s) are used more than once", duplicates),
			"Make element IDs unique")
	}
}

func (a *TechnicalAnalyzer) checkInlineHandlers(b *reportBuilder, doc *Document) {
	count := 0
	Walk(doc.Root, func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			for _, attr := range n.Attr {
				if strings.HasPrefix(attr.Key, "on") {
					count++
					break
				}
			}
		}
		return true
	})
	if count > 0 {
		b.suggest("inline_event_handlers",
			fmt.Sprintf("%d element(s) use inline event handlers", count),
			"Move event wiring into a script block")
	}
}

// checkScriptPlacement flags body scripts that run before any content
// has been emitted; they block the first render.
func (a *TechnicalAnalyzer) checkScriptPlacement(b *reportBuilder, doc *Document) {
	body := FindFirst(doc.Root, atom.Body)
	if body == nil {
		return
	}

	seenContent := false
	early := 0
	Walk(body, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		switch n.DataAtom {
		case atom.Script:
			if !seenContent {
				early++
			}
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
			atom.P, atom.Section, atom.Article, atom.Main, atom.Img:
			seenContent = true
		}
		return true
	})

	if early > 0 {
		b.suggest("script_before_content",
			fmt.Sprintf("%d script(s) load before the page content", early),
			"Move scripts to the end of the body or add defer")
	}
}
