package autofix

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ludo-technologies/htmlscan/internal/analyzer"
)

// replaceablePlaceholders are the phrases the placeholder fixer knows how
// to rewrite. Kept in sync with the content analyzer's detection list.
var replaceablePlaceholders = []string{
	"lorem ipsum",
	"placeholder text",
	"your text here",
	"sample text",
	"coming soon",
}

// placeholderHosts identify image sources that are safe to substitute
// with supplied client work.
var placeholderHosts = []string{
	"placehold",
	"placeholder",
	"picsum",
	"unsplash",
	"dummyimage",
}

const maxImageSubstitutions = 3

// baselineContrastCSS and baselineResponsiveCSS are the injected
// fallback style blocks.
const (
	baselineContrastCSS = `body { color: #1a1a1a; background: #ffffff; }`

	baselineResponsiveCSS = `@media (max-width: 768px) {
  body { padding: 1rem; }
  img { max-width: 100%; height: auto; }
}`
)

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func newElement(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
}

func newText(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// styleText concatenates style blocks and inline styles, lowercased, for
// idempotence probes before injecting CSS.
func styleText(root *html.Node) string {
	var sb strings.Builder
	analyzer.Walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			if n.DataAtom == atom.Style {
				sb.WriteString(strings.ToLower(analyzer.CollectText(n)))
				sb.WriteString("; ")
			}
			if style := analyzer.AttrVal(n, "style"); style != "" {
				sb.WriteString(strings.ToLower(style))
				sb.WriteString("; ")
			}
		}
		return true
	})
	return sb.String()
}

func appendStyleBlock(fc *fixContext, css string) bool {
	head := analyzer.FindFirst(fc.root, atom.Head)
	if head == nil {
		return false
	}
	style := newElement(atom.Style)
	style.AppendChild(newText("\n" + css + "\n"))
	head.AppendChild(style)
	return true
}

// altFromSrc derives readable alt text from an image file name.
func altFromSrc(src string) string {
	name := src
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	name = strings.TrimSpace(name)
	if name == "" {
		return "Portfolio image"
	}
	return name
}

func fixMissingAltText(fc *fixContext) string {
	fixed := 0
	analyzer.Walk(fc.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Img && !analyzer.HasAttr(n, "alt") {
			setAttr(n, "alt", altFromSrc(analyzer.AttrVal(n, "src")))
			fixed++
		}
		return true
	})
	if fixed == 0 {
		return ""
	}
	return fmt.Sprintf("Added alt text to %d image(s)", fixed)
}

// fixMissingMainLandmark wraps the body content in a main element.
func fixMissingMainLandmark(fc *fixContext) string {
	exists := false
	analyzer.Walk(fc.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && (n.DataAtom == atom.Main || analyzer.AttrVal(n, "role") == "main") {
			exists = true
			return false
		}
		return true
	})
	if exists {
		return ""
	}

	body := analyzer.FindFirst(fc.root, atom.Body)
	if body == nil || body.FirstChild == nil {
		return ""
	}

	// Style and script children stay directly under body; only content
	// moves into the landmark.
	var content []*html.Node
	for child := body.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode &&
			(child.DataAtom == atom.Style || child.DataAtom == atom.Script) {
			continue
		}
		content = append(content, child)
	}
	if len(content) == 0 {
		return ""
	}

	main := newElement(atom.Main)
	for _, child := range content {
		body.RemoveChild(child)
		main.AppendChild(child)
	}
	body.AppendChild(main)
	return "Wrapped page content in a main landmark"
}

// fixMissingH1 promotes the first subordinate heading to h1.
func fixMissingH1(fc *fixContext) string {
	if analyzer.FindFirst(fc.root, atom.H1) != nil {
		return ""
	}
	var first *html.Node
	analyzer.Walk(fc.root, func(n *html.Node) bool {
		if first != nil {
			return false
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
				first = n
				return false
			}
		}
		return true
	})
	if first == nil {
		return ""
	}
	first.Data = "h1"
	first.DataAtom = atom.H1
	return "Promoted the first heading to h1"
}

func fixMissingKeyboardAccess(fc *fixContext) string {
	fixed := 0
	analyzer.Walk(fc.root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		if !analyzer.HasAttr(n, "onclick") && analyzer.AttrVal(n, "role") != "button" {
			return true
		}
		switch n.DataAtom {
		case atom.A, atom.Button, atom.Input, atom.Select, atom.Textarea:
			return true
		}
		if !analyzer.HasAttr(n, "tabindex") {
			setAttr(n, "tabindex", "0")
			fixed++
		}
		return true
	})
	if fixed == 0 {
		return ""
	}
	return fmt.Sprintf("Added tabindex to %d clickable element(s)", fixed)
}

func fixLowContrastRisk(fc *fixContext) string {
	styles := styleText(fc.root)
	if strings.Contains(styles, "color") && strings.Contains(styles, "background") {
		return ""
	}
	if !appendStyleBlock(fc, baselineContrastCSS) {
		return ""
	}
	return "Injected a baseline text/background color scheme"
}

func fixMissingDoctype(fc *fixContext) string {
	for c := fc.root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.DoctypeNode {
			return ""
		}
	}
	doctype := &html.Node{Type: html.DoctypeNode, Data: "html"}
	fc.root.InsertBefore(doctype, fc.root.FirstChild)
	return "Added the doctype declaration"
}

func fixMissingLang(fc *fixContext) string {
	htmlNode := analyzer.FindFirst(fc.root, atom.Html)
	if htmlNode == nil || analyzer.AttrVal(htmlNode, "lang") != "" {
		return ""
	}
	setAttr(htmlNode, "lang", "en")
	return "Declared the document language"
}

func fixMissingViewport(fc *fixContext) string {
	if hasMeta(fc.root, func(n *html.Node) bool {
		return strings.EqualFold(analyzer.AttrVal(n, "name"), "viewport")
	}) {
		return ""
	}
	head := analyzer.FindFirst(fc.root, atom.Head)
	if head == nil {
		return ""
	}
	meta := newElement(atom.Meta)
	setAttr(meta, "name", "viewport")
	setAttr(meta, "content", "width=device-width, initial-scale=1.0")
	head.InsertBefore(meta, head.FirstChild)
	return "Added the viewport meta tag"
}

func fixMissingCharset(fc *fixContext) string {
	if hasMeta(fc.root, func(n *html.Node) bool {
		return analyzer.HasAttr(n, "charset")
	}) {
		return ""
	}
	head := analyzer.FindFirst(fc.root, atom.Head)
	if head == nil {
		return ""
	}
	meta := newElement(atom.Meta)
	setAttr(meta, "charset", "UTF-8")
	head.InsertBefore(meta, head.FirstChild)
	return "Added the charset meta tag"
}

func hasMeta(root *html.Node, match func(*html.Node) bool) bool {
	found := false
	analyzer.Walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Meta && match(n) {
			found = true
			return false
		}
		return true
	})
	return found
}

func fixMissingTitle(fc *fixContext) string {
	title := analyzer.FindFirst(fc.root, atom.Title)
	if title != nil && strings.TrimSpace(analyzer.CollectText(title)) != "" {
		return ""
	}

	text := "Portfolio"
	if fc.data != nil && strings.TrimSpace(fc.data.Personal.Name) != "" {
		text = strings.TrimSpace(fc.data.Personal.Name) + " | Portfolio"
	}

	if title == nil {
		head := analyzer.FindFirst(fc.root, atom.Head)
		if head == nil {
			return ""
		}
		title = newElement(atom.Title)
		head.AppendChild(title)
	}
	title.AppendChild(newText(text))
	return "Added a page title"
}

func fixNoResponsiveCSS(fc *fixContext) string {
	if strings.Contains(styleText(fc.root), "@media") {
		return ""
	}
	if !appendStyleBlock(fc, baselineResponsiveCSS) {
		return ""
	}
	return "Injected a baseline responsive breakpoint"
}

func fixEmptyImageSrc(fc *fixContext) string {
	fixed := 0
	analyzer.Walk(fc.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Img {
			src := strings.TrimSpace(analyzer.AttrVal(n, "src"))
			if src == "" || src == "#" {
				fixed++
				setAttr(n, "src", fmt.Sprintf("https://placehold.co/800x600?text=Project+%d", fixed))
			}
		}
		return true
	})
	if fixed == 0 {
		return ""
	}
	return fmt.Sprintf("Pointed %d empty image source(s) at placeholders", fixed)
}

func fixMissingName(fc *fixContext) string {
	if fc.data == nil {
		return ""
	}
	name := strings.TrimSpace(fc.data.Personal.Name)
	if name == "" {
		return ""
	}
	if strings.Contains(strings.ToLower(analyzer.CollectText(fc.root)), strings.ToLower(name)) {
		return ""
	}

	target := analyzer.FindFirst(fc.root, atom.Main)
	if target == nil {
		target = analyzer.FindFirst(fc.root, atom.Body)
	}
	if target == nil {
		return ""
	}
	h1 := newElement(atom.H1)
	h1.AppendChild(newText(name))
	target.InsertBefore(h1, target.FirstChild)
	return "Inserted the subject name as the top heading"
}

func fixMissingProfessionalTitle(fc *fixContext) string {
	if fc.data == nil {
		return ""
	}
	title := strings.TrimSpace(fc.data.Personal.Title)
	if title == "" {
		return ""
	}
	if strings.Contains(strings.ToLower(analyzer.CollectText(fc.root)), strings.ToLower(title)) {
		return ""
	}

	h2 := newElement(atom.H2)
	h2.AppendChild(newText(title))

	// Place it right after the name heading when one exists.
	if h1 := analyzer.FindFirst(fc.root, atom.H1); h1 != nil && h1.Parent != nil {
		h1.Parent.InsertBefore(h2, h1.NextSibling)
		return "Inserted the professional title after the name"
	}

	target := analyzer.FindFirst(fc.root, atom.Main)
	if target == nil {
		target = analyzer.FindFirst(fc.root, atom.Body)
	}
	if target == nil {
		return ""
	}
	target.InsertBefore(h2, target.FirstChild)
	return "Inserted the professional title"
}

// fixPlaceholderText rewrites text nodes that still carry generator
// placeholder phrases, preferring the supplied bio as replacement copy.
func fixPlaceholderText(fc *fixContext) string {
	replacement := "More about this work is coming together; get in touch to hear the full story."
	if fc.data != nil && strings.TrimSpace(fc.data.Personal.Bio) != "" {
		replacement = strings.TrimSpace(fc.data.Personal.Bio)
	}

	fixed := 0
	analyzer.Walk(fc.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style:
				return false
			}
		}
		if n.Type == html.TextNode {
			lower := strings.ToLower(n.Data)
			for _, phrase := range replaceablePlaceholders {
				if strings.Contains(lower, phrase) {
					n.Data = replacement
					fixed++
					break
				}
			}
		}
		return true
	})
	if fixed == 0 {
		return ""
	}
	return fmt.Sprintf("Replaced %d placeholder passage(s)", fixed)
}

// fixUnusedClientImages substitutes placeholder image sources with the
// supplied work images, in document order, up to a small cap.
func fixUnusedClientImages(fc *fixContext) string {
	if fc.data == nil {
		return ""
	}
	client := fc.data.Images.ClientImages()
	if len(client) == 0 {
		return ""
	}

	rendered := renderLower(fc.root)
	var unused []string
	for _, img := range client {
		if img.URL == "" {
			continue
		}
		if !strings.Contains(rendered, strings.ToLower(img.URL)) {
			unused = append(unused, img.URL)
		}
	}
	if len(unused) == 0 {
		return ""
	}

	substituted := 0
	analyzer.Walk(fc.root, func(n *html.Node) bool {
		if substituted >= len(unused) || substituted >= maxImageSubstitutions {
			return false
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Img && isPlaceholderSrc(analyzer.AttrVal(n, "src")) {
			setAttr(n, "src", unused[substituted])
			substituted++
		}
		return true
	})
	if substituted == 0 {
		return ""
	}
	return fmt.Sprintf("Substituted %d placeholder image(s) with supplied work", substituted)
}

func isPlaceholderSrc(src string) bool {
	src = strings.ToLower(strings.TrimSpace(src))
	if src == "" || src == "#" {
		return true
	}
	for _, host := range placeholderHosts {
		if strings.Contains(src, host) {
			return true
		}
	}
	return false
}

func renderLower(root *html.Node) string {
	var sb strings.Builder
	if err := html.Render(&sb, root); err != nil {
		return ""
	}
	return strings.ToLower(sb.String())
}
