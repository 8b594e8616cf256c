package docgen

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	HeaderClass = "header"
	GroupClass  = "group"
)

// Document is a parsed HTML page built from rendered markdown.
type Document struct {
	root *html.Node
}

func ParseDocument(fragment string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{root: root}, nil
}

// PostProcess marks the header paragraph, groups adjacent code blocks and
// returns the body markup together with the heading outline.
func PostProcess(fragment string) (string, Menu, error) {
	doc, err := ParseDocument(fragment)
	if err != nil {
		return "", nil, err
	}

	doc.MarkHeader()
	doc.GroupCodeBlocks()
	menu := doc.Outline()

	body, err := doc.Body()
	if err != nil {
		return "", nil, err
	}
	return body, menu, nil
}

func (d *Document) MarkHeader() {
	if p := findFirst(d.root, atom.P); p != nil {
		setAttr(p, "class", HeaderClass)
	}
}

// GroupCodeBlocks tags every <pre> whose sibling two places away, on either
// side, is another <pre>. The skipped sibling is normally a whitespace node.
func (d *Document) GroupCodeBlocks() {
	for _, pre := range findAll(d.root, atom.Pre) {
		if isElement(skipOne(pre, prevSibling), atom.Pre) || isElement(skipOne(pre, nextSibling), atom.Pre) {
			addClass(pre, GroupClass)
		}
	}
}

func (d *Document) Outline() Menu {
	return outlineOf(d.root)
}

// Body renders the inner markup of <body>.
func (d *Document) Body() (string, error) {
	body := findFirst(d.root, atom.Body)
	if body == nil {
		return "", nil
	}

	var sb strings.Builder
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return "", fmt.Errorf("render html: %w", err)
		}
	}
	return sb.String(), nil
}

func prevSibling(n *html.Node) *html.Node { return n.PrevSibling }
func nextSibling(n *html.Node) *html.Node { return n.NextSibling }

func skipOne(n *html.Node, step func(*html.Node) *html.Node) *html.Node {
	if s := step(n); s != nil {
		return step(s)
	}
	return nil
}

func isElement(n *html.Node, a atom.Atom) bool {
	return n != nil && n.Type == html.ElementNode && n.DataAtom == a
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if isElement(n, a) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}

func findAll(n *html.Node, atoms ...atom.Atom) []*html.Node {
	var ret []*html.Node

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, a := range atoms {
				if n.DataAtom == a {
					ret = append(ret, n)
					break
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return ret
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func addClass(n *html.Node, class string) {
	current, _ := getAttr(n, "class")
	for _, c := range strings.Fields(current) {
		if c == class {
			return
		}
	}
	setAttr(n, "class", strings.TrimSpace(current+" "+class))
}

func textContent(n *html.Node) string {
	var sb strings.Builder

	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)

	return sb.String()
}
