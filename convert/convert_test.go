package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustConvert(t *testing.T, html string, mutate func(*Options)) string {
	t.Helper()
	opts := DefaultOptions()
	if mutate != nil {
		mutate(opts)
	}
	out, err := Document(html, opts, nil, nil, nil)
	require.NoError(t, err)
	return out
}

func TestConcreteScenarios(t *testing.T) {
	t.Run("heading and paragraph", func(t *testing.T) {
		got := mustConvert(t, "<h1>Title</h1><p>Content</p>", nil)
		assert.Equal(t, "# Title\n\nContent\n", got)
	})

	t.Run("nested list indentation", func(t *testing.T) {
		got := mustConvert(t, "<ul><li>Item 1<ul><li>Nested</li></ul></li></ul>", func(o *Options) {
			o.ListIndentWidth = 4
		})
		assert.Contains(t, got, "    - Nested")
	})

	t.Run("strong and em with underscore symbol", func(t *testing.T) {
		got := mustConvert(t, "<p><strong>Bold</strong> <em>italic</em></p>", func(o *Options) {
			o.StrongEmSymbol = '_'
		})
		assert.Equal(t, "__Bold__ _italic_\n", got)
	})

	t.Run("fenced code block", func(t *testing.T) {
		got := mustConvert(t, "<pre><code>code</code></pre>", func(o *Options) {
			o.CodeBlockStyle = CodeBlockBackticks
		})
		assert.Equal(t, "```\ncode\n```\n", got)
	})

	t.Run("autolink", func(t *testing.T) {
		got := mustConvert(t, `<p><a href="https://example.com">https://example.com</a></p>`, func(o *Options) {
			o.Autolinks = true
		})
		assert.Equal(t, "<https://example.com>\n", got)
	})

	t.Run("br in tables emits hard break", func(t *testing.T) {
		got := mustConvert(t, "<table><tr><td>Line 1<br>Line 2</td></tr></table>", func(o *Options) {
			o.BrInTables = true
		})
		assert.Contains(t, got, "Line 1  \n")
	})

	t.Run("whitespace normalization collapses runs", func(t *testing.T) {
		got := mustConvert(t, "<p>Multiple    spaces</p>", nil)
		assert.Equal(t, "Multiple spaces\n", got)
	})

	t.Run("mark with bold highlight style", func(t *testing.T) {
		got := mustConvert(t, "<p><mark>x</mark></p>", func(o *Options) {
			o.HighlightStyle = HighlightBold
		})
		assert.Equal(t, "**x**\n", got)
	})
}

func TestUniversalProperties(t *testing.T) {
	t.Run("ends with exactly one newline or empty", func(t *testing.T) {
		for _, html := range []string{"<p>hi</p>", "<div></div>", "<p>a</p><p>b</p>"} {
			got := mustConvert(t, html, nil)
			if got != "" {
				assert.True(t, len(got) > 0 && got[len(got)-1] == '\n')
				assert.False(t, len(got) >= 2 && got[len(got)-2] == '\n')
			}
		}
	})

	t.Run("no renderable content yields empty string", func(t *testing.T) {
		got := mustConvert(t, "<div><!-- comment --></div>", nil)
		assert.Equal(t, "", got)
	})

	t.Run("heading text has no raw newline", func(t *testing.T) {
		got := mustConvert(t, "<h2>Line one<br>Line two</h2>", nil)
		for _, line := range []string{got} {
			assert.NotContains(t, line[:len(line)-1], "\n")
		}
	})

	t.Run("strip tags removes only the tag markers", func(t *testing.T) {
		got := mustConvert(t, "<p><span>kept text</span></p>", func(o *Options) {
			o.StripTags = map[string]bool{"span": true}
		})
		assert.Equal(t, "kept text\n", got)
	})

	t.Run("preserve tags keep verbatim HTML", func(t *testing.T) {
		got := mustConvert(t, `<p>before</p><custom-widget data-x="1"></custom-widget>`, func(o *Options) {
			o.PreserveTags = map[string]bool{"custom-widget": true}
		})
		assert.Contains(t, got, `<custom-widget data-x="1"></custom-widget>`)
	})
}

func TestEscapingIsIdempotent(t *testing.T) {
	got := mustConvert(t, "<p>1. Not a list * not emphasis</p>", nil)
	reconverted := mustConvert(t, "<p>"+got+"</p>", nil)
	assert.Equal(t, got, reconverted)
}
