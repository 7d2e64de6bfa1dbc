// Package analyzer implements the four dimension analyzers.
//
// All analyzers share one extraction pass over the parsed artifact and
// score it with keyword/substring heuristics over the serialized markup.
// That is a deliberate precision/speed tradeoff: no rendering engine, no
// style resolution. The keyword lists and numeric thresholds below are
// part of the scoring contract.
package analyzer

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Heading is a heading element with its inline font size, if any
type Heading struct {
	Level    int
	Text     string
	FontSize string
}

// Document is the shared extraction result all analyzers read from.
// It is built fresh per validate call and never mutated afterwards.
type Document struct {
	Root *html.Node

	// RawHTML is the artifact as received; LowerHTML its lowercase form,
	// used for substring probes that must also hit attributes.
	RawHTML   string
	LowerHTML string

	// Text is the concatenated visible text (script/style excluded).
	Text      string
	LowerText string

	// StyleText concatenates all style blocks and inline style
	// attributes, lowercased.
	StyleText string

	// ClassIDText concatenates all class and id attribute values,
	// lowercased.
	ClassIDText string

	Headings   []Heading
	Sections   []*html.Node
	NavNodes   []*html.Node
	Images     []*html.Node
	Paragraphs []string

	WordCount int
}

// ParseDocument parses an artifact and runs the shared extraction pass.
func ParseDocument(raw string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Root:      root,
		RawHTML:   raw,
		LowerHTML: strings.ToLower(raw),
	}

	var styleSB, classSB strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if style := AttrVal(n, "style"); style != "" {
				styleSB.WriteString(strings.ToLower(style))
				styleSB.WriteString("; ")
			}
			if class := AttrVal(n, "class"); class != "" {
				classSB.WriteString(strings.ToLower(class))
				classSB.WriteByte(' ')
			}
			if id := AttrVal(n, "id"); id != "" {
				classSB.WriteString(strings.ToLower(id))
				classSB.WriteByte(' ')
			}

			switch n.DataAtom {
			case atom.Style:
				styleSB.WriteString(strings.ToLower(CollectText(n)))
				styleSB.WriteString("; ")
			case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
				doc.Headings = append(doc.Headings, Heading{
					Level:    int(n.Data[1] - '0'),
					Text:     CollectText(n),
					FontSize: inlineFontSize(AttrVal(n, "style")),
				})
			case atom.Section, atom.Article:
				doc.Sections = append(doc.Sections, n)
			case atom.Nav:
				doc.NavNodes = append(doc.NavNodes, n)
			case atom.Img:
				doc.Images = append(doc.Images, n)
			case atom.P:
				if text := CollectText(n); text != "" {
					doc.Paragraphs = append(doc.Paragraphs, text)
				}
			default:
				// Elements styled as navigation without the nav tag.
				if isNavLike(n) {
					doc.NavNodes = append(doc.NavNodes, n)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	doc.Text = CollectText(root)
	doc.LowerText = strings.ToLower(doc.Text)
	doc.StyleText = styleSB.String()
	doc.ClassIDText = classSB.String()
	doc.WordCount = len(strings.Fields(doc.Text))

	return doc, nil
}

// AttrVal returns the value of the named attribute, or "".
func AttrVal(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// HasAttr reports whether the node carries the named attribute.
func HasAttr(n *html.Node, key string) bool {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return true
		}
	}
	return false
}

// CollectText extracts all visible text from a node subtree, skipping
// script, style and noscript content.
func CollectText(n *html.Node) string {
	var sb strings.Builder
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(n)
	return sb.String()
}

// Walk visits every node in the subtree in document order. Returning
// false from the visitor stops the descent into that node's children.
func Walk(n *html.Node, visit func(*html.Node) bool) {
	if !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, visit)
	}
}

// FindFirst returns the first element with the given atom, or nil.
func FindFirst(root *html.Node, a atom.Atom) *html.Node {
	var found *html.Node
	Walk(root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n.Type == html.ElementNode && n.DataAtom == a {
			found = n
			return false
		}
		return true
	})
	return found
}

// isNavLike detects navigation containers that avoid the nav tag but
// advertise themselves via class or id.
func isNavLike(n *html.Node) bool {
	if n.DataAtom != atom.Div && n.DataAtom != atom.Ul && n.DataAtom != atom.Header {
		return false
	}
	marker := strings.ToLower(AttrVal(n, "class") + " " + AttrVal(n, "id"))
	return strings.Contains(marker, "nav") || strings.Contains(marker, "menu")
}

// inlineFontSize pulls a font-size declaration out of an inline style.
func inlineFontSize(style string) string {
	lower := strings.ToLower(style)
	idx := strings.Index(lower, "font-size")
	if idx < 0 {
		return ""
	}
	rest := lower[idx+len("font-size"):]
	rest = strings.TrimLeft(rest, ": ")
	if end := strings.IndexAny(rest, ";\"}"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}
