package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockquote(t *testing.T) {
	t.Run("simple quote", func(t *testing.T) {
		got := mustConvert(t, "<blockquote><p>Quoted text</p></blockquote>", nil)
		assert.Equal(t, "> Quoted text\n", got)
	})

	t.Run("cite attribute appended as a link", func(t *testing.T) {
		got := mustConvert(t, `<blockquote cite="https://example.com/src"><p>Quoted</p></blockquote>`, nil)
		assert.Contains(t, got, "> Quoted")
		assert.Contains(t, got, "> <https://example.com/src>\n")
	})

	t.Run("empty blockquote with no cite is dropped", func(t *testing.T) {
		got := mustConvert(t, "<blockquote></blockquote>", nil)
		assert.Equal(t, "", got)
	})
}

func TestRuby(t *testing.T) {
	t.Run("interleaved base and annotation", func(t *testing.T) {
		got := mustConvert(t, "<p><ruby>漢<rt>かん</rt></ruby></p>", nil)
		assert.Equal(t, "漢かん\n", got)
	})

	t.Run("rtc grouped annotation parenthesized", func(t *testing.T) {
		got := mustConvert(t, "<p><ruby><rb>漢</rb><rb>字</rb><rtc><rt>かん</rt><rt>じ</rt></rtc></ruby></p>", nil)
		assert.Equal(t, "漢字(かん じ)\n", got)
	})
}

func TestDefinitionList(t *testing.T) {
	got := mustConvert(t, "<dl><dt>Term</dt><dd>Definition one</dd><dd>Definition two</dd></dl>", nil)
	assert.Contains(t, got, "Term\n")
	assert.Contains(t, got, ":   Definition one\n")
	assert.Contains(t, got, ":   Definition two\n")
}

func TestMediaElements(t *testing.T) {
	t.Run("video falls back to a bare link", func(t *testing.T) {
		got := mustConvert(t, `<video src="https://example.com/v.mp4"></video>`, nil)
		assert.Equal(t, "<https://example.com/v.mp4>\n", got)
	})

	t.Run("audio reads src from a child source", func(t *testing.T) {
		got := mustConvert(t, `<audio><source src="https://example.com/a.mp3"></audio>`, nil)
		assert.Equal(t, "<https://example.com/a.mp3>\n", got)
	})

	t.Run("iframe renders as a bare link", func(t *testing.T) {
		got := mustConvert(t, `<iframe src="https://example.com/embed"></iframe>`, nil)
		assert.Equal(t, "<https://example.com/embed>\n", got)
	})

	t.Run("picture uses the fallback img", func(t *testing.T) {
		got := mustConvert(t, `<picture><source srcset="a.webp"><img src="a.png" alt="a"></picture>`, nil)
		assert.Equal(t, "![a](a.png)\n", got)
	})

	t.Run("svg becomes a base64 data URL image", func(t *testing.T) {
		got := mustConvert(t, `<svg width="10" height="10"><circle r="5"/></svg>`, nil)
		assert.Contains(t, got, "![](data:image/svg+xml;base64,")
	})

	t.Run("math emits an HTML comment plus escaped text", func(t *testing.T) {
		got := mustConvert(t, `<math><mi>x</mi></math>`, nil)
		assert.Contains(t, got, "<!--")
		assert.Contains(t, got, "x\n")
	})

	t.Run("graphic falls back to href and alt", func(t *testing.T) {
		got := mustConvert(t, `<graphic href="https://example.com/g.png" alt="a graphic"/>`, nil)
		assert.Equal(t, `![a graphic](https://example.com/g.png)`+"\n", got)
	})

	t.Run("graphic prefers xlink:href over filename fallback", func(t *testing.T) {
		got := mustConvert(t, `<graphic xlink:href="https://example.com/g2.png" filename="g2.png"/>`, nil)
		assert.Equal(t, `![g2.png](https://example.com/g2.png)`+"\n", got)
	})
}

func TestRepairPath(t *testing.T) {
	t.Run("custom element survives via repair", func(t *testing.T) {
		got := mustConvert(t, `<p>before</p><my-widget data-x="1"></my-widget>`, func(o *Options) {
			o.PreserveTags = map[string]bool{"my-widget": true}
		})
		assert.Contains(t, got, `<my-widget data-x="1"></my-widget>`)
	})

	t.Run("block element misnested inside inline ancestor is repaired", func(t *testing.T) {
		got := mustConvert(t, "<span>before<div>block content</div>after</span>", nil)
		assert.Contains(t, got, "block content")
		assert.Contains(t, got, "before")
		assert.Contains(t, got, "after")
	})
}

func TestListLoosenessDetection(t *testing.T) {
	t.Run("tight list has no blank line between items", func(t *testing.T) {
		got := mustConvert(t, "<ul><li>one</li><li>two</li></ul>", nil)
		assert.Equal(t, "- one\n- two\n", got)
	})

	t.Run("loose list (block child) separates items with a blank line", func(t *testing.T) {
		got := mustConvert(t, "<ul><li><p>one</p></li><li><p>two</p></li></ul>", nil)
		assert.Contains(t, got, "- one\n\n- two\n")
	})
}

func TestTaskListMarkerIsAlwaysDash(t *testing.T) {
	t.Run("unordered list with custom bullets still uses a dash", func(t *testing.T) {
		got := mustConvert(t, `<ul><li><input type="checkbox" checked>Done</li></ul>`, func(o *Options) {
			o.Bullets = "*"
		})
		assert.Contains(t, got, "- [x] Done")
	})

	t.Run("ordered list checkbox item uses a dash, not a number", func(t *testing.T) {
		got := mustConvert(t, `<ol><li><input type="checkbox">Todo</li></ol>`, nil)
		assert.Contains(t, got, "- [ ] Todo")
		assert.NotContains(t, got, "1. [ ]")
	})
}

func TestHeadingStyles(t *testing.T) {
	t.Run("atx-closed", func(t *testing.T) {
		got := mustConvert(t, "<h2>Title</h2>", func(o *Options) {
			o.HeadingStyle = HeadingATXClosed
		})
		assert.Equal(t, "## Title ##\n", got)
	})

	t.Run("underlined level 1 uses equals", func(t *testing.T) {
		got := mustConvert(t, "<h1>Title</h1>", func(o *Options) {
			o.HeadingStyle = HeadingUnderlined
		})
		assert.Equal(t, "Title\n=====\n", got)
	})

	t.Run("underlined level 2 uses dashes", func(t *testing.T) {
		got := mustConvert(t, "<h2>Title</h2>", func(o *Options) {
			o.HeadingStyle = HeadingUnderlined
		})
		assert.Equal(t, "Title\n-----\n", got)
	})

	t.Run("underlined falls back to ATX past level 2", func(t *testing.T) {
		got := mustConvert(t, "<h3>Title</h3>", func(o *Options) {
			o.HeadingStyle = HeadingUnderlined
		})
		assert.Equal(t, "### Title\n", got)
	})
}

func TestWrap(t *testing.T) {
	got := mustConvert(t, "<p>one two three four five six seven eight nine ten</p>", func(o *Options) {
		o.Wrap = true
		o.WrapWidth = 20
	})
	for _, line := range splitLines(got) {
		assert.LessOrEqual(t, len([]rune(line)), 20)
	}
	assert.Contains(t, got, "one two three four\n")
}

func splitLines(s string) []string {
	var lines []string
	var cur []rune
	for _, r := range s {
		if r == '\n' {
			lines = append(lines, string(cur))
			cur = nil
			continue
		}
		cur = append(cur, r)
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}

func TestDefaultTitle(t *testing.T) {
	t.Run("anchor falls back to label text", func(t *testing.T) {
		got := mustConvert(t, `<p><a href="https://example.com">Example</a></p>`, func(o *Options) {
			o.DefaultTitle = true
		})
		assert.Equal(t, `[Example](https://example.com "Example")`+"\n", got)
	})

	t.Run("image falls back to alt text", func(t *testing.T) {
		got := mustConvert(t, `<img src="a.png" alt="an image">`, func(o *Options) {
			o.DefaultTitle = true
		})
		assert.Equal(t, `![an image](a.png "an image")`+"\n", got)
	})
}

func TestEscapeFlagCombinations(t *testing.T) {
	t.Run("asterisks escaped, underscores not", func(t *testing.T) {
		got := mustConvert(t, "<p>a * b _ c</p>", func(o *Options) {
			o.EscapeAsterisks = true
			o.EscapeUnderscores = false
			o.EscapeMisc = false
		})
		assert.Equal(t, `a \* b _ c`+"\n", got)
	})

	t.Run("underscores escaped, asterisks not", func(t *testing.T) {
		got := mustConvert(t, "<p>a * b _ c</p>", func(o *Options) {
			o.EscapeAsterisks = false
			o.EscapeUnderscores = true
			o.EscapeMisc = false
		})
		assert.Equal(t, `a * b \_ c`+"\n", got)
	})

	t.Run("all escaping disabled leaves text verbatim", func(t *testing.T) {
		got := mustConvert(t, "<p>a * b _ c . d # e</p>", func(o *Options) {
			o.EscapeAsterisks = false
			o.EscapeUnderscores = false
			o.EscapeMisc = false
		})
		assert.Equal(t, "a * b _ c . d # e\n", got)
	})

	t.Run("escape_ascii encodes non-ASCII as numeric references", func(t *testing.T) {
		got := mustConvert(t, "<p>café</p>", func(o *Options) {
			o.EscapeASCII = true
		})
		assert.Contains(t, got, "caf&#xe9;")
	})
}

func TestConvertValidationErrors(t *testing.T) {
	opts := DefaultOptions()
	opts.ListIndentWidth = 0
	_, err := Document("<p>x</p>", opts, nil, nil, nil)
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "ListIndentWidth", verr.Field)
}
