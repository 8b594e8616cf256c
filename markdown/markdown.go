package markdown

import (
	"bytes"
	"fmt"

	"microdoc/markdown/extension"

	"github.com/yuin/goldmark"
	gmext "github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

type Renderer struct {
	gm goldmark.Markdown
}

type options struct {
	highlightStyle string
}

type Option func(*options)

func WithHighlightStyle(style string) Option {
	return func(o *options) {
		o.highlightStyle = style
	}
}

func New(opts ...Option) *Renderer {
	o := options{highlightStyle: "github"}
	for _, opt := range opts {
		opt(&o)
	}

	return &Renderer{
		gm: goldmark.New(
			goldmark.WithExtensions(
				gmext.GFM,
				&extension.DocumentExtender{HighlightStyle: o.highlightStyle},
			),
			goldmark.WithParser(
				goldmark.DefaultParser(),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
}

func (r *Renderer) Render(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.gm.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return buf.String(), nil
}

func (r *Renderer) RenderString(src string) (string, error) {
	return r.Render([]byte(src))
}

// Slug derives the anchor id used for a heading with the given text.
func Slug(text string) string {
	return extension.Slug(text)
}

// ReplaceFirstLine swaps everything before the first newline for line.
func ReplaceFirstLine(src []byte, line string) []byte {
	out := []byte(line)
	if i := bytes.IndexByte(src, '\n'); i >= 0 {
		out = append(out, src[i:]...)
	}
	return out
}
