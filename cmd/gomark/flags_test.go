package main

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagNameForDerivesKebabCase(t *testing.T) {
	assert.Equal(t, "heading-style", flagNameFor("HeadingStyle"))
	assert.Equal(t, "strong-em-symbol", flagNameFor("StrongEmSymbol"))
	assert.Equal(t, "br-in-tables", flagNameFor("BrInTables"))
	assert.Equal(t, "with-metadata", flagNameFor("ExtractMetadata"))
}

func TestRegisterFlagsDefaultsRoundtrip(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	c := registerFlags(fs)
	require.NoError(t, fs.Parse(nil))

	opts, err := c.toOptions()
	require.NoError(t, err)
	assert.Equal(t, "-", opts.Bullets)
	assert.Equal(t, byte('*'), byte(opts.StrongEmSymbol))
	assert.False(t, opts.Preprocessing.Enabled)
}

func TestToOptionsRejectsPresetWithoutPreprocess(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	c := registerFlags(fs)
	require.NoError(t, fs.Parse([]string{"--preset=minimal"}))

	_, err := c.toOptions()
	require.Error(t, err)
}

func TestToOptionsAcceptsPresetWithPreprocess(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	c := registerFlags(fs)
	require.NoError(t, fs.Parse([]string{"--preprocess", "--preset=minimal"}))

	opts, err := c.toOptions()
	require.NoError(t, err)
	assert.True(t, opts.Preprocessing.Enabled)
	assert.True(t, opts.Preprocessing.RemoveNavigation)
}

func TestStringSetFlag(t *testing.T) {
	set := stringSetFlag("Span, TABLE ,div")
	assert.True(t, set["span"])
	assert.True(t, set["table"])
	assert.True(t, set["div"])
	assert.Len(t, set, 3)

	assert.Nil(t, stringSetFlag(""))
}
