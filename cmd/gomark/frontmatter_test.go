package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpotapov/gomark"
)

func TestBuildFrontmatterOrdersKeys(t *testing.T) {
	head := gomark.HeadInfo{
		Title:     "Hi",
		Canonical: "https://example.com",
		Meta:      map[string]string{"description": "d", "author": "a"},
	}
	out, err := buildFrontmatter(head)
	require.NoError(t, err)
	assert.Contains(t, out, "title: Hi\n")
	assert.Contains(t, out, "canonical: https://example.com\n")
	assert.Contains(t, out, "meta-author: a\n")
	assert.Contains(t, out, "meta-description: d\n")
	assert.True(t, out[:4] == "---\n")
}

func TestBuildFrontmatterEmptyHead(t *testing.T) {
	out, err := buildFrontmatter(gomark.HeadInfo{})
	require.NoError(t, err)
	assert.Equal(t, "", out)
}
