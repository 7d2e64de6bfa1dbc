package analyzer

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ludo-technologies/htmlscan/domain"
)

// genericLinkTexts are link labels that carry no meaning for screen
// reader users.
var genericLinkTexts = []string{"click here", "here", "read more", "link"}

// AccessibilityAnalyzer checks assistive-technology basics.
type AccessibilityAnalyzer struct{}

// NewAccessibilityAnalyzer creates an accessibility analyzer
func NewAccessibilityAnalyzer() *AccessibilityAnalyzer {
	return &AccessibilityAnalyzer{}
}

// Dimension implements domain.Analyzer
func (a *AccessibilityAnalyzer) Dimension() domain.Dimension {
	return domain.DimensionAccessibility
}

// Validate implements domain.Analyzer
func (a *AccessibilityAnalyzer) Validate(ctx context.Context, req domain.ValidationRequest) (*domain.DimensionReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := ParseDocument(req.HTML)
	if err != nil {
		return nil, domain.NewValidationError("failed to parse artifact", err)
	}

	b := newReportBuilder()

	a.checkAltText(b, doc)
	a.checkLandmark(b, doc)
	a.checkHeadings(b, doc)
	a.checkKeyboardAccess(b, doc)
	a.checkLinkText(b, doc)
	a.checkFormLabels(b, doc)
	a.checkContrastBaseline(b, doc)

	return b.build(domain.DimensionAccessibility), nil
}

func (a *AccessibilityAnalyzer) checkAltText(b *reportBuilder, doc *Document) {
	if len(doc.Images) == 0 {
		return
	}
	missing := 0
	for _, img := range doc.Images {
		if !HasAttr(img, "alt") {
			missing++
		}
	}
	if missing == 0 {
		b.pass("All images have alt text")
	} else {
		b.issue("missing_alt_text", domain.SeverityHigh,
			fmt.Sprintf("%d image(s) have no alt text", missing),
			"Add descriptive alt attributes")
	}
}

func (a *AccessibilityAnalyzer) checkLandmark(b *reportBuilder, doc *Document) {
	found := false
	Walk(doc.Root, func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			if n.DataAtom == atom.Main || AttrVal(n, "role") == "main" {
				found = true
				return false
			}
		}
		return true
	})
	if found {
		b.pass("Main landmark present")
	} else {
		b.issue("missing_main_landmark", domain.SeverityMedium,
			"No main landmark element",
			"Wrap the page content in a <main> element")
	}
}

func (a *AccessibilityAnalyzer) checkHeadings(b *reportBuilder, doc *Document) {
	h1Count := 0
	for _, h := range doc.Headings {
		if h.Level == 1 {
			h1Count++
		}
	}

	switch {
	case h1Count == 1:
		b.pass("Exactly one top-level heading")
	case h1Count == 0:
		b.issue("missing_h1", domain.SeverityHigh,
			"The page has no top-level heading",
			"Promote the most important heading to h1")
	default:
		b.issue("multiple_h1", domain.SeverityLow,
			fmt.Sprintf("The page has %d top-level headings", h1Count),
			"Keep a single h1 per page")
	}

	// Level jumps (h1 -> h3) confuse screen reader outlines.
	prev := 0
	jumps := 0
	for _, h := range doc.Headings {
		if prev > 0 && h.Level > prev+1 {
			jumps++
		}
		prev = h.Level
	}
	if len(doc.Headings) > 1 {
		if jumps == 0 {
			b.pass("Heading levels descend without jumps")
		} else {
			b.issue("heading_level_jump", domain.SeverityLow,
				fmt.Sprintf("%d heading level jump(s) detected", jumps),
				"Step heading levels one at a time")
		}
	}
}

// checkKeyboardAccess flags elements that expose a click affordance but
// no place in the tab order.
func (a *AccessibilityAnalyzer) checkKeyboardAccess(b *reportBuilder, doc *Document) {
	clickable, inaccessible := 0, 0
	Walk(doc.Root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		hasClick := HasAttr(n, "onclick") || AttrVal(n, "role") == "button"
		if !hasClick {
			return true
		}
		clickable++
		switch n.DataAtom {
		case atom.A, atom.Button, atom.Input, atom.Select, atom.Textarea:
			// Natively focusable.
		default:
			if !HasAttr(n, "tabindex") {
				inaccessible++
			}
		}
		return true
	})

	if clickable == 0 {
		return
	}
	if inaccessible == 0 {
		b.pass("Clickable elements are keyboard reachable")
	} else {
		b.issue("missing_keyboard_access", domain.SeverityMedium,
			fmt.Sprintf("%d clickable element(s) are unreachable by keyboard", inaccessible),
			"Add tabindex=\"0\" to custom clickable elements")
	}
}

func (a *AccessibilityAnalyzer) checkLinkText(b *reportBuilder, doc *Document) {
	vague := 0
	total := 0
	Walk(doc.Root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.A {
			total++
			text := strings.ToLower(strings.TrimSpace(CollectText(n)))
			if text == "" {
				vague++
				return true
			}
			for _, generic := range genericLinkTexts {
				if text == generic {
					vague++
					break
				}
			}
		}
		return true
	})

	if total == 0 {
		return
	}
	if vague == 0 {
		b.pass("Link texts are descriptive")
	} else {
		b.issue("vague_link_text", domain.SeverityLow,
			fmt.Sprintf("%d link(s) have empty or generic text", vague),
			"Describe the link target in the link text")
	}
}

func (a *AccessibilityAnalyzer) checkFormLabels(b *reportBuilder, doc *Document) {
	labelled := make(map[string]struct{})
	Walk(doc.Root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Label {
			if forID := AttrVal(n, "for"); forID != "" {
				labelled[forID] = struct{}{}
			}
		}
		return true
	})

	unlabelled, total := 0, 0
	Walk(doc.Root, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.DataAtom != atom.Input {
			return true
		}
		if t := AttrVal(n, "type"); t == "hidden" || t == "submit" || t == "button" {
			return true
		}
		total++
		if HasAttr(n, "aria-label") {
			return true
		}
		if id := AttrVal(n, "id"); id != "" {
			if _, ok := labelled[id]; ok {
				return true
			}
		}
		unlabelled++
		return true
	})

	if total == 0 {
		return
	}
	if unlabelled == 0 {
		b.pass("Form inputs are labelled")
	} else {
		b.issue("unlabelled_inputs", domain.SeverityLow,
			fmt.Sprintf("%d form input(s) have no label", unlabelled),
			"Associate a label or aria-label with each input")
	}
}

// checkContrastBaseline is a heuristic: without rendering we only look
// for an explicit color/background pairing somewhere in the styles.
func (a *AccessibilityAnalyzer) checkContrastBaseline(b *reportBuilder, doc *Document) {
	if strings.Contains(doc.StyleText, "color") && strings.Contains(doc.StyleText, "background") {
		b.pass("Text and background colors are declared")
	} else {
		b.issue("low_contrast_risk", domain.SeverityLow,
			"No explicit text/background color pairing was found",
			"Declare a baseline color scheme to guarantee contrast")
	}
}
