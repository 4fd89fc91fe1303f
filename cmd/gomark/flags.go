package main

import (
	"fmt"
	"strings"

	"github.com/fatih/camelcase"
	"github.com/spf13/pflag"

	"github.com/dpotapov/gomark"
)

// flagOverrides renames a handful of Options fields whose spec-mandated
// CLI name (spec.md §6) doesn't match the kebab-case camelcase.Split
// would derive on its own.
var flagOverrides = map[string]string{
	"ExtractMetadata": "with-metadata",
}

// flagNameFor derives a flag name from an Options struct field name by
// splitting it into words (camelcase.Split) and joining them with "-",
// so a flag can never drift out of sync with the field it sets
// (SPEC_FULL §4.10).
func flagNameFor(field string) string {
	if name, ok := flagOverrides[field]; ok {
		return name
	}
	words := camelcase.Split(field)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "-")
}

// cliOptions holds the pflag-bindable shadow values for gomark.Options:
// pflag has no notion of a rune, a custom enum, or a map[string]bool, so
// each of those is bound to a primitive and translated in toOptions.
type cliOptions struct {
	headingStyle    string
	bullets         string
	listIndentType  string
	listIndentWidth int
	strongEmSymbol  string
	escapeMisc      bool
	escapeAsterisks bool
	escapeUnderscores bool
	escapeASCII     bool
	subSymbol       string
	supSymbol       string
	newlineStyle    string
	codeBlockStyle  string
	codeLanguage    string
	autolinks       bool
	defaultTitle    bool
	keepInlineImagesIn string
	highlightStyle  string
	stripTags       string
	preserveTags    string
	whitespaceMode  string
	stripNewlines   bool
	convertAsInline bool
	wrap            bool
	wrapWidth       int
	skipImages      bool
	brInTables      bool
	preprocess      bool
	preset          string
	keepNavigation  bool
	withMetadata    bool
}

// registerFlags adds every formatting flag to flags, seeded from
// gomark.DefaultOptions() so --help shows the library's real defaults.
func registerFlags(flags *pflag.FlagSet) *cliOptions {
	d := gomark.DefaultOptions()
	c := &cliOptions{
		headingStyle:       headingStyleName(d.HeadingStyle),
		bullets:            d.Bullets,
		listIndentType:     listIndentTypeName(d.ListIndentType),
		listIndentWidth:    d.ListIndentWidth,
		strongEmSymbol:     string(d.StrongEmSymbol),
		escapeMisc:         d.EscapeMisc,
		escapeAsterisks:    d.EscapeAsterisks,
		escapeUnderscores:  d.EscapeUnderscores,
		escapeASCII:        d.EscapeASCII,
		subSymbol:          d.SubSymbol,
		supSymbol:          d.SupSymbol,
		newlineStyle:       newlineStyleName(d.NewlineStyle),
		codeBlockStyle:     codeBlockStyleName(d.CodeBlockStyle),
		codeLanguage:       d.CodeLanguage,
		autolinks:          d.Autolinks,
		defaultTitle:       d.DefaultTitle,
		highlightStyle:     highlightStyleName(d.HighlightStyle),
		whitespaceMode:     whitespaceModeName(d.WhitespaceMode),
		stripNewlines:      d.StripNewlines,
		convertAsInline:    d.ConvertAsInline,
		wrap:               d.Wrap,
		wrapWidth:          d.WrapWidth,
		skipImages:         d.SkipImages,
		brInTables:         d.BrInTables,
	}

	flags.StringVar(&c.headingStyle, flagNameFor("HeadingStyle"), c.headingStyle, "heading style: atx, atx-closed, underlined")
	flags.StringVar(&c.bullets, flagNameFor("Bullets"), c.bullets, "bullet characters cycled by nesting depth")
	flags.StringVar(&c.listIndentType, flagNameFor("ListIndentType"), c.listIndentType, "list indent character: spaces, tabs")
	flags.IntVar(&c.listIndentWidth, flagNameFor("ListIndentWidth"), c.listIndentWidth, "list indent width in [1,8]")
	flags.StringVar(&c.strongEmSymbol, flagNameFor("StrongEmSymbol"), c.strongEmSymbol, "strong/em symbol: * or _")
	flags.BoolVar(&c.escapeMisc, flagNameFor("EscapeMisc"), c.escapeMisc, "escape miscellaneous Markdown-significant characters")
	flags.BoolVar(&c.escapeAsterisks, flagNameFor("EscapeAsterisks"), c.escapeAsterisks, "escape literal asterisks")
	flags.BoolVar(&c.escapeUnderscores, flagNameFor("EscapeUnderscores"), c.escapeUnderscores, "escape literal underscores")
	flags.BoolVar(&c.escapeASCII, flagNameFor("EscapeASCII"), c.escapeASCII, "escape non-ASCII characters as numeric character references")
	flags.StringVar(&c.subSymbol, flagNameFor("SubSymbol"), c.subSymbol, "wrapper symbol for <sub>, empty leaves the content unwrapped")
	flags.StringVar(&c.supSymbol, flagNameFor("SupSymbol"), c.supSymbol, "wrapper symbol for <sup>, empty leaves the content unwrapped")
	flags.StringVar(&c.newlineStyle, flagNameFor("NewlineStyle"), c.newlineStyle, "hard break style: spaces, backslash")
	flags.StringVar(&c.codeBlockStyle, flagNameFor("CodeBlockStyle"), c.codeBlockStyle, "code block style: indented, backticks, tildes")
	flags.StringVar(&c.codeLanguage, flagNameFor("CodeLanguage"), c.codeLanguage, "fallback fenced code language when none is detected")
	flags.BoolVar(&c.autolinks, flagNameFor("Autolinks"), c.autolinks, "render <a> whose label equals its href as an autolink")
	flags.BoolVar(&c.defaultTitle, flagNameFor("DefaultTitle"), c.defaultTitle, "fall back to link text / alt text as title when absent")
	flags.StringVar(&c.keepInlineImagesIn, flagNameFor("KeepInlineImagesIn"), "", "comma-separated ancestor tags that keep images inline (headings, table cells)")
	flags.StringVar(&c.highlightStyle, flagNameFor("HighlightStyle"), c.highlightStyle, "<mark> style: double-equal, html, bold, none")
	flags.StringVar(&c.stripTags, flagNameFor("StripTags"), "", "comma-separated tags whose children pass through unwrapped")
	flags.StringVar(&c.preserveTags, flagNameFor("PreserveTags"), "", "comma-separated tags emitted verbatim as HTML")
	flags.StringVar(&c.whitespaceMode, flagNameFor("WhitespaceMode"), c.whitespaceMode, "text whitespace handling: normalized, strict")
	flags.BoolVar(&c.stripNewlines, flagNameFor("StripNewlines"), c.stripNewlines, "collapse literal newlines in text nodes to spaces before processing")
	flags.BoolVar(&c.convertAsInline, flagNameFor("ConvertAsInline"), c.convertAsInline, "render <p> content without paragraph separators and omit frontmatter; other block elements keep their separators")
	flags.BoolVar(&c.wrap, flagNameFor("Wrap"), c.wrap, "hard-wrap prose paragraphs at wrap-width columns")
	flags.IntVar(&c.wrapWidth, flagNameFor("WrapWidth"), c.wrapWidth, "wrap column, >= 20")
	flags.BoolVar(&c.skipImages, flagNameFor("SkipImages"), c.skipImages, "omit images from the output entirely")
	flags.BoolVar(&c.brInTables, flagNameFor("BrInTables"), c.brInTables, "render <br> inside table cells as a literal hard break instead of a space")
	flags.BoolVar(&c.preprocess, "preprocess", false, "enable chrome-removal preprocessing; required to use --preset or --keep-*")
	flags.StringVar(&c.preset, "preset", "", "preprocessing preset: minimal, aggressive (requires --preprocess)")
	flags.BoolVar(&c.keepNavigation, "keep-navigation", false, "keep <nav> elements during preprocessing (requires --preprocess)")
	flags.BoolVar(&c.withMetadata, flagNameFor("ExtractMetadata"), false, "collect head/heading/link/image/JSON-LD metadata; required for --extract-* output")

	return c
}

// toOptions validates the preprocess/with-metadata gating rules from
// spec.md §6 and builds a gomark.Options from the parsed flag values.
func (c *cliOptions) toOptions() (*gomark.Options, error) {
	if c.preset != "" && !c.preprocess {
		return nil, fmt.Errorf("--preset requires --preprocess")
	}
	if c.keepNavigation && !c.preprocess {
		return nil, fmt.Errorf("--keep-navigation requires --preprocess")
	}
	if c.preset != "" && c.preset != "minimal" && c.preset != "aggressive" {
		return nil, fmt.Errorf("--preset must be one of: minimal, aggressive")
	}

	headingStyle, err := parseHeadingStyle(c.headingStyle)
	if err != nil {
		return nil, err
	}
	listIndentType, err := parseListIndentType(c.listIndentType)
	if err != nil {
		return nil, err
	}
	newlineStyle, err := parseNewlineStyle(c.newlineStyle)
	if err != nil {
		return nil, err
	}
	codeBlockStyle, err := parseCodeBlockStyle(c.codeBlockStyle)
	if err != nil {
		return nil, err
	}
	highlightStyle, err := parseHighlightStyle(c.highlightStyle)
	if err != nil {
		return nil, err
	}
	whitespaceMode, err := parseWhitespaceMode(c.whitespaceMode)
	if err != nil {
		return nil, err
	}
	if len(c.strongEmSymbol) != 1 {
		return nil, fmt.Errorf("--%s must be a single character", flagNameFor("StrongEmSymbol"))
	}

	opts := &gomark.Options{
		HeadingStyle:       headingStyle,
		Bullets:            c.bullets,
		ListIndentType:     listIndentType,
		ListIndentWidth:    c.listIndentWidth,
		StrongEmSymbol:     rune(c.strongEmSymbol[0]),
		EscapeMisc:         c.escapeMisc,
		EscapeAsterisks:    c.escapeAsterisks,
		EscapeUnderscores:  c.escapeUnderscores,
		EscapeASCII:        c.escapeASCII,
		SubSymbol:          c.subSymbol,
		SupSymbol:          c.supSymbol,
		NewlineStyle:       newlineStyle,
		CodeBlockStyle:     codeBlockStyle,
		CodeLanguage:       c.codeLanguage,
		Autolinks:          c.autolinks,
		DefaultTitle:       c.defaultTitle,
		KeepInlineImagesIn: stringSetFlag(c.keepInlineImagesIn),
		HighlightStyle:     highlightStyle,
		StripTags:          stringSetFlag(c.stripTags),
		PreserveTags:       stringSetFlag(c.preserveTags),
		WhitespaceMode:     whitespaceMode,
		StripNewlines:      c.stripNewlines,
		ConvertAsInline:    c.convertAsInline,
		Wrap:               c.wrap,
		WrapWidth:          c.wrapWidth,
		SkipImages:         c.skipImages,
		BrInTables:         c.brInTables,
		ExtractMetadata:    c.withMetadata,
		Preprocessing: gomark.PreprocessingOptions{
			Enabled:          c.preprocess,
			RemoveNavigation: !c.keepNavigation && c.preprocess,
		},
	}
	return opts, nil
}

func stringSetFlag(v string) map[string]bool {
	if v == "" {
		return nil
	}
	out := map[string]bool{}
	for _, part := range strings.Split(v, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out[part] = true
		}
	}
	return out
}

func headingStyleName(s gomark.HeadingStyle) string {
	switch s {
	case gomark.HeadingATXClosed:
		return "atx-closed"
	case gomark.HeadingUnderlined:
		return "underlined"
	default:
		return "atx"
	}
}

func parseHeadingStyle(s string) (gomark.HeadingStyle, error) {
	switch s {
	case "atx":
		return gomark.HeadingATX, nil
	case "atx-closed":
		return gomark.HeadingATXClosed, nil
	case "underlined":
		return gomark.HeadingUnderlined, nil
	default:
		return 0, fmt.Errorf("--%s must be one of: atx, atx-closed, underlined", flagNameFor("HeadingStyle"))
	}
}

func listIndentTypeName(t gomark.ListIndentType) string {
	if t == gomark.ListIndentTabs {
		return "tabs"
	}
	return "spaces"
}

func parseListIndentType(s string) (gomark.ListIndentType, error) {
	switch s {
	case "spaces":
		return gomark.ListIndentSpaces, nil
	case "tabs":
		return gomark.ListIndentTabs, nil
	default:
		return 0, fmt.Errorf("--%s must be one of: spaces, tabs", flagNameFor("ListIndentType"))
	}
}

func newlineStyleName(s gomark.NewlineStyle) string {
	if s == gomark.NewlineBackslash {
		return "backslash"
	}
	return "spaces"
}

func parseNewlineStyle(s string) (gomark.NewlineStyle, error) {
	switch s {
	case "spaces":
		return gomark.NewlineSpaces, nil
	case "backslash":
		return gomark.NewlineBackslash, nil
	default:
		return 0, fmt.Errorf("--%s must be one of: spaces, backslash", flagNameFor("NewlineStyle"))
	}
}

func codeBlockStyleName(s gomark.CodeBlockStyle) string {
	switch s {
	case gomark.CodeBlockIndented:
		return "indented"
	case gomark.CodeBlockTildes:
		return "tildes"
	default:
		return "backticks"
	}
}

func parseCodeBlockStyle(s string) (gomark.CodeBlockStyle, error) {
	switch s {
	case "indented":
		return gomark.CodeBlockIndented, nil
	case "backticks":
		return gomark.CodeBlockBackticks, nil
	case "tildes":
		return gomark.CodeBlockTildes, nil
	default:
		return 0, fmt.Errorf("--%s must be one of: indented, backticks, tildes", flagNameFor("CodeBlockStyle"))
	}
}

func highlightStyleName(s gomark.HighlightStyle) string {
	switch s {
	case gomark.HighlightHTML:
		return "html"
	case gomark.HighlightBold:
		return "bold"
	case gomark.HighlightNone:
		return "none"
	default:
		return "double-equal"
	}
}

func parseHighlightStyle(s string) (gomark.HighlightStyle, error) {
	switch s {
	case "double-equal":
		return gomark.HighlightDoubleEqual, nil
	case "html":
		return gomark.HighlightHTML, nil
	case "bold":
		return gomark.HighlightBold, nil
	case "none":
		return gomark.HighlightNone, nil
	default:
		return 0, fmt.Errorf("--%s must be one of: double-equal, html, bold, none", flagNameFor("HighlightStyle"))
	}
}

func whitespaceModeName(m gomark.WhitespaceMode) string {
	if m == gomark.WhitespaceStrict {
		return "strict"
	}
	return "normalized"
}

func parseWhitespaceMode(s string) (gomark.WhitespaceMode, error) {
	switch s {
	case "normalized":
		return gomark.WhitespaceNormalized, nil
	case "strict":
		return gomark.WhitespaceStrict, nil
	default:
		return 0, fmt.Errorf("--%s must be one of: normalized, strict", flagNameFor("WhitespaceMode"))
	}
}
