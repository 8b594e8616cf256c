package docgen

import (
	"testing"

	"microdoc/markdown"

	"github.com/stretchr/testify/require"
)

func TestPostProcess_MarksFirstParagraph(t *testing.T) {
	body, _, err := PostProcess(`<p class="x">banner</p>
<p>second</p>`)
	require.NoError(t, err)
	require.Equal(t, "<p class=\"header\">banner</p>\n<p>second</p>", body)
}

func TestPostProcess_NoParagraph(t *testing.T) {
	body, menu, err := PostProcess(`<pre><code>x</code></pre>`)
	require.NoError(t, err)
	require.Equal(t, "<pre><code>x</code></pre>", body)
	require.Empty(t, menu)
}

func TestPostProcess_GroupsAdjacentCodeBlocks(t *testing.T) {
	body, _, err := PostProcess("<p>intro</p>\n" +
		"<pre><code>a</code></pre>\n" +
		"<pre><code>b</code></pre>\n" +
		"<p>prose</p>\n" +
		"<pre><code>lone</code></pre>\n" +
		"<p>more prose</p>")
	require.NoError(t, err)
	require.Equal(t, "<p class=\"header\">intro</p>\n"+
		"<pre class=\"group\"><code>a</code></pre>\n"+
		"<pre class=\"group\"><code>b</code></pre>\n"+
		"<p>prose</p>\n"+
		"<pre><code>lone</code></pre>\n"+
		"<p>more prose</p>", body)
}

func TestPostProcess_GroupAppendsToExistingClass(t *testing.T) {
	body, _, err := PostProcess("<pre class=\"chroma\">a</pre>\n<pre class=\"chroma\">b</pre>")
	require.NoError(t, err)
	require.Equal(t, "<pre class=\"chroma group\">a</pre>\n<pre class=\"chroma group\">b</pre>", body)
}

func TestPostProcess_DirectlyAdjacentBlocksAreNotGrouped(t *testing.T) {
	body, _, err := PostProcess("<pre>a</pre><pre>b</pre>")
	require.NoError(t, err)
	require.Equal(t, "<pre>a</pre><pre>b</pre>", body)
}

func TestPostProcess_MissingSiblingsDoNotPanic(t *testing.T) {
	for _, fragment := range []string{
		"<pre>only</pre>",
		"<pre>first</pre>\n",
		"\n<pre>last</pre>",
		"<div><pre>nested</pre></div>",
	} {
		require.NotPanics(t, func() {
			body, _, err := PostProcess(fragment)
			require.NoError(t, err)
			require.NotContains(t, body, GroupClass)
		}, fragment)
	}
}

func TestPostProcess_Outline(t *testing.T) {
	md := markdown.New()
	fragment, err := md.RenderString("# Micro API\n\nIntro.\n\n## Hello, World!\n\n### Query `include`\n\n#### Too deep\n")
	require.NoError(t, err)

	_, menu, err := PostProcess(fragment)
	require.NoError(t, err)
	require.Equal(t, Menu{
		{Label: "Micro API", Anchor: "micro-api"},
		{Label: "Hello, World!", Anchor: "hello-world"},
		{Label: "Query include", Anchor: "query-code-include-code"},
	}, menu)
}

func TestOutline_FallsBackToHeadingID(t *testing.T) {
	doc, err := ParseDocument(`<h2 id="plain">Plain</h2><h3>No anchor</h3>`)
	require.NoError(t, err)
	require.Equal(t, Menu{
		{Label: "Plain", Anchor: "plain"},
		{Label: "No anchor", Anchor: ""},
	}, doc.Outline())
}

func TestTrimPermalink(t *testing.T) {
	require.Equal(t, "Hello", trimPermalink("Hello #"))
	require.Equal(t, "Hello", trimPermalink("Hello #\n"))
	require.Equal(t, "C#", trimPermalink("C# #"))
	require.Equal(t, "Hello", trimPermalink("Hello"))
	require.Equal(t, "", trimPermalink("#"))
	require.Equal(t, "Größe", trimPermalink("Größe #"))
}
