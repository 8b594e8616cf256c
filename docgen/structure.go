package docgen

import (
	"strings"
	"unicode"

	"microdoc/markdown/extension"

	"github.com/rivo/uniseg"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type MenuItem struct {
	Label  string
	Anchor string
}

// Menu is the index page outline, in document order.
type Menu []MenuItem

func outlineOf(root *html.Node) Menu {
	var menu Menu

	for _, heading := range findAll(root, atom.H1, atom.H2, atom.H3) {
		menu = append(menu, MenuItem{
			Label:  trimPermalink(textContent(heading)),
			Anchor: anchorOf(heading),
		})
	}

	return menu
}

// anchorOf prefers the permalink's fragment and falls back to the heading id.
func anchorOf(heading *html.Node) string {
	for c := heading.FirstChild; c != nil; c = c.NextSibling {
		if !isElement(c, atom.A) {
			continue
		}
		if class, _ := getAttr(c, "class"); class != "anchor" {
			continue
		}
		if href, ok := getAttr(c, "href"); ok {
			if _, fragment, found := strings.Cut(href, "#"); found {
				return fragment
			}
		}
	}

	id, _ := getAttr(heading, "id")
	return id
}

func trimPermalink(label string) string {
	label = strings.TrimRightFunc(label, unicode.IsSpace)

	var last string
	var lastStart int

	gr := uniseg.NewGraphemes(label)
	for gr.Next() {
		last = gr.Str()
		lastStart, _ = gr.Positions()
	}

	if last == extension.PermalinkGlyph {
		label = label[:lastStart]
	}

	return strings.TrimSpace(label)
}
