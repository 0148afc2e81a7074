package search

import (
	"html"
	"strings"
	"testing"

	"github.com/poiesic/callsearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHighlighter_PassThroughOnNoTerms(t *testing.T) {
	h, err := NewHighlighter(nil, false)
	require.NoError(t, err)
	assert.False(t, h.Active())
	assert.Equal(t, "untouched text", h.Highlight("untouched text"))

	empty := []core.SearchTerm{{Kind: core.TermKeyword, Value: ""}}
	h, err = NewHighlighter(empty, false)
	require.NoError(t, err)
	assert.False(t, h.Active())
}

func TestHighlight_WrapsOccurrences(t *testing.T) {
	h, err := NewHighlighter(keywords("foo"), false)
	require.NoError(t, err)
	assert.True(t, h.Active())

	got := h.Highlight("a foo and another foo")
	want := `a <mark class="highlight">foo</mark> and another <mark class="highlight">foo</mark>`
	assert.Equal(t, want, got)
}

func TestHighlight_CaseInsensitivePreservesOriginalCasing(t *testing.T) {
	h, err := NewHighlighter(keywords("foo"), false)
	require.NoError(t, err)

	got := h.Highlight("FOO fighters")
	assert.Equal(t, `<mark class="highlight">FOO</mark> fighters`, got)
}

func TestHighlight_CaseSensitive(t *testing.T) {
	h, err := NewHighlighter(keywords("Foo"), true)
	require.NoError(t, err)

	assert.Equal(t, "foo bar", h.Highlight("foo bar"))
	assert.Equal(t, `<mark class="highlight">Foo</mark> bar`, h.Highlight("Foo bar"))
}

func TestHighlight_MetacharactersAreLiteral(t *testing.T) {
	h, err := NewHighlighter(keywords("a.c", "(x)"), false)
	require.NoError(t, err)

	// "abc" must not match the escaped "a.c".
	assert.Equal(t, "abc", h.Highlight("abc"))
	assert.Equal(t, `<mark class="highlight">a.c</mark>`, h.Highlight("a.c"))
	assert.Equal(t, `y <mark class="highlight">(x)</mark> z`, h.Highlight("y (x) z"))
}

func TestHighlight_Alternation(t *testing.T) {
	h, err := NewHighlighter(keywords("foo", "bar"), false)
	require.NoError(t, err)

	got := h.Highlight("foo then bar")
	want := `<mark class="highlight">foo</mark> then <mark class="highlight">bar</mark>`
	assert.Equal(t, want, got)
}

func TestHighlightWith_TransformsEverySpan(t *testing.T) {
	h, err := NewHighlighter(keywords("foo"), false)
	require.NoError(t, err)

	upper := func(s string) string { return strings.ToUpper(s) }
	got := h.HighlightWith("a foo b", upper)
	assert.Equal(t, `A <mark class="highlight">FOO</mark> B`, got)
}

func TestHighlightWith_MatchesBeforeTransform(t *testing.T) {
	h, err := NewHighlighter(keywords("amp"), false)
	require.NoError(t, err)

	// "&" only contains "amp" after escaping; matching on the raw text
	// must leave the produced entity intact.
	got := h.HighlightWith("Tom & Jerry", html.EscapeString)
	assert.Equal(t, "Tom &amp; Jerry", got)

	got = h.HighlightWith("amp & volts", html.EscapeString)
	assert.Equal(t, `<mark class="highlight">amp</mark> &amp; volts`, got)
}

func TestHighlightWith_NoTermsStillTransforms(t *testing.T) {
	h, err := NewHighlighter(nil, false)
	require.NoError(t, err)
	assert.Equal(t, "A", h.HighlightWith("a", strings.ToUpper))

	var nilH *Highlighter
	assert.Equal(t, "A", nilH.HighlightWith("a", strings.ToUpper))
}

func TestHighlight_NilReceiverIsPassThrough(t *testing.T) {
	var h *Highlighter
	assert.False(t, h.Active())
	assert.Equal(t, "text", h.Highlight("text"))
}
