package extension

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
)

func TestHeadingHTML(t *testing.T) {
	require.Equal(t,
		`<h2 id="hello-world">Hello, World! <a class="anchor" href="#hello-world" title="Link to this section “Hello, World!”">#</a></h2>`,
		HeadingHTML("Hello, World!", 2))
	require.Equal(t,
		`<h1 id="x">x <a class="anchor" href="#x" title="Link to this section “x”">#</a></h1>`,
		HeadingHTML("x", 1))
}

func TestSlug_Deterministic(t *testing.T) {
	require.Equal(t, Slug("Query Parameters"), Slug("Query Parameters"))
	require.Equal(t, "query-parameters", Slug("Query   Parameters!!"))
	require.Equal(t, "", Slug("!!!"))
}

func convert(t *testing.T, src string) string {
	t.Helper()
	gm := goldmark.New(goldmark.WithExtensions(&DocumentExtender{HighlightStyle: "github"}))

	var buf bytes.Buffer
	require.NoError(t, gm.Convert([]byte(src), &buf))
	return buf.String()
}

func TestDocumentExtender_HeadingWithInlineMarkup(t *testing.T) {
	out := convert(t, "## The *media* type\n")
	require.Equal(t,
		`<h2 id="the-em-media-em-type">The <em>media</em> type <a class="anchor" href="#the-em-media-em-type" title="Link to this section “The <em>media</em> type”">#</a></h2>`+"\n",
		out)
}

func TestDocumentExtender_CodeBlockEndsWithNewline(t *testing.T) {
	out := convert(t, "```go\npackage main\n```\n")
	require.True(t, strings.HasPrefix(out, "<pre"))
	require.True(t, strings.HasSuffix(out, "</pre>\n"))
	require.Contains(t, out, "package")
}
