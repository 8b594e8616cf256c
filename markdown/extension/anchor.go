package extension

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// PermalinkGlyph is the visible text of the anchor link appended to every heading.
const PermalinkGlyph = "#"

var nonWord = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// Slug lowercases text and collapses every run of non-word characters into a
// single hyphen. Leading and trailing hyphens are dropped.
func Slug(text string) string {
	return strings.Trim(nonWord.ReplaceAllString(strings.ToLower(text), "-"), "-")
}

// HeadingHTML renders a heading whose inner markup is text.
func HeadingHTML(text string, level int) string {
	id := Slug(text)
	return fmt.Sprintf(`<h%d id="%s">%s <a class="anchor" href="#%s" title="Link to this section “%s”">%s</a></h%d>`,
		level, id, text, id, text, PermalinkGlyph, level)
}

type DocumentExtender struct {
	// HighlightStyle names a chroma style; unknown names use chroma's fallback.
	HighlightStyle string
}

// Extend implements goldmark.Extender
func (self *DocumentExtender) Extend(m goldmark.Markdown) {
	m.Renderer().AddOptions(renderer.WithNodeRenderers(util.Prioritized(&DocumentRenderer{
		Inline: m.Renderer(),
		Style:  styles.Get(self.HighlightStyle),
	}, 100)))
}

var _ goldmark.Extender = &DocumentExtender{}

// DocumentRenderer overrides goldmark's heading and code block output.
type DocumentRenderer struct {
	// Inline renders heading children; normally the owning goldmark renderer.
	Inline renderer.Renderer
	Style  *chroma.Style
}

// RegisterFuncs implements renderer.NodeRenderer
func (r *DocumentRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.renderHeading)
	reg.Register(ast.KindFencedCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
}

var _ renderer.NodeRenderer = &DocumentRenderer{}

func (r *DocumentRenderer) renderHeading(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n, ok := node.(*ast.Heading)
	if !ok {
		return ast.WalkStop, fmt.Errorf("unexpected node %T, expected *ast.Heading", node)
	}

	var text bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if err := r.Inline.Render(&text, source, c); err != nil {
			return ast.WalkStop, fmt.Errorf("render heading: %w", err)
		}
	}

	_, _ = w.WriteString(HeadingHTML(text.String(), n.Level))
	_ = w.WriteByte('\n')

	return ast.WalkSkipChildren, nil
}

func (r *DocumentRenderer) renderCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	var code bytes.Buffer
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		code.Write(line.Value(source))
	}

	var language string
	if fenced, ok := node.(*ast.FencedCodeBlock); ok {
		language = string(fenced.Language(source))
	}

	if out, err := r.highlight(language, code.String()); err == nil {
		_, _ = w.WriteString(out)
	} else {
		_, _ = w.WriteString("<pre><code>")
		_, _ = w.Write(util.EscapeHTML(code.Bytes()))
		_, _ = w.WriteString("</code></pre>")
	}
	// Adjacent blocks stay separated by a whitespace node.
	_ = w.WriteByte('\n')

	return ast.WalkSkipChildren, nil
}

func (r *DocumentRenderer) highlight(language, code string) (string, error) {
	var lexer chroma.Lexer
	if language != "" {
		lexer = lexers.Get(language)
	}
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}

	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return "", err
	}

	style := r.Style
	if style == nil {
		style = styles.Fallback
	}

	var out strings.Builder
	err = chromahtml.New().Format(&out, style, iterator)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out.String(), "\n"), nil
}
