package docgen

import (
	"fmt"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

const htmlMediaType = "text/html"

// Minifier collapses redundant whitespace in rendered pages. Comments, document
// tags, end tags and attribute quotes are left alone.
var Minifier = newMinifier()

func newMinifier() *minify.M {
	m := minify.New()
	m.Add(htmlMediaType, &html.Minifier{
		KeepComments:        true,
		KeepDefaultAttrVals: true,
		KeepDocumentTags:    true,
		KeepEndTags:         true,
		KeepQuotes:          true,
	})
	return m
}

func Minify(page string) (string, error) {
	out, err := Minifier.String(htmlMediaType, page)
	if err != nil {
		return "", fmt.Errorf("minify html: %w", err)
	}
	return out, nil
}
