package gomark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertDefaults(t *testing.T) {
	out, err := Convert("<h1>Title</h1><p>Body</p>", nil)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nBody\n", out)
}

func TestConvertValidationError(t *testing.T) {
	opts := DefaultOptions()
	opts.WrapWidth = 1
	opts.Wrap = true
	_, err := Convert("<p>x</p>", opts)
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "WrapWidth", verr.Field)
}

type recordingImageCollector struct {
	payloads []string
}

func (r *recordingImageCollector) RegisterImage(payload string, attrs map[string]string) {
	r.payloads = append(r.payloads, payload)
}

func TestConvertWithImageCollector(t *testing.T) {
	collector := &recordingImageCollector{}
	out, err := Convert(`<img src="data:image/png;base64,AAAA" alt="x">`, nil, WithImageCollector(collector))
	require.NoError(t, err)
	assert.Contains(t, out, "![x](data:image/png;base64,AAAA)")
	assert.Equal(t, []string{"data:image/png;base64,AAAA"}, collector.payloads)
}

func TestConvertWithMetadataCollector(t *testing.T) {
	metadata := &MetadataCollector{WantsHead: true, WantsHeadings: true}
	html := `<html><head><title>Hi</title><link rel="canonical" href="https://example.com"></head>` +
		`<body><h2>Section</h2></body></html>`
	_, err := Convert(html, nil, WithMetadataCollector(metadata))
	require.NoError(t, err)
	assert.Equal(t, "Hi", metadata.Head.Title)
	assert.Equal(t, "https://example.com", metadata.Head.Canonical)
	require.Len(t, metadata.Headings, 1)
	assert.Equal(t, "Section", metadata.Headings[0].Text)
}

type recordingVisitor struct {
	tags []string
}

func (v *recordingVisitor) Visit(event VisitorEvent) VisitorAction {
	v.tags = append(v.tags, event.Tag)
	return Continue()
}

func TestConvertWithVisitor(t *testing.T) {
	visitor := &recordingVisitor{}
	_, err := Convert("<p><strong>hi</strong></p>", nil, WithVisitor(visitor))
	require.NoError(t, err)
	assert.Contains(t, visitor.tags, "strong")
}

func TestConvertPreservesJSONLD(t *testing.T) {
	metadata := &MetadataCollector{WantsJSONLD: true}
	html := `<script type="application/ld+json">{"@type":"Article"}</script><p>x</p>`
	_, err := Convert(html, nil, WithMetadataCollector(metadata))
	require.NoError(t, err)
	require.Len(t, metadata.JSONLD, 1)
	assert.Contains(t, metadata.JSONLD[0], `"@type":"Article"`)
}
