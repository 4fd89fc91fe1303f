package convert

import "fmt"

// HeadingStyle selects how h1..h6 are rendered (§3, §4.6).
type HeadingStyle int

const (
	HeadingATX HeadingStyle = iota
	HeadingATXClosed
	HeadingUnderlined
)

// ListIndentType selects the character used to indent nested list
// content (§3, §4.6).
type ListIndentType int

const (
	ListIndentSpaces ListIndentType = iota
	ListIndentTabs
)

// NewlineStyle selects how <br> and paragraph hard breaks render (§3, §4.7).
type NewlineStyle int

const (
	NewlineSpaces NewlineStyle = iota // two trailing spaces
	NewlineBackslash
)

// CodeBlockStyle selects how <pre> blocks render (§3, §4.6).
type CodeBlockStyle int

const (
	CodeBlockIndented CodeBlockStyle = iota
	CodeBlockBackticks
	CodeBlockTildes
)

// HighlightStyle selects how <mark> renders (§3, §4.7).
type HighlightStyle int

const (
	HighlightDoubleEqual HighlightStyle = iota
	HighlightHTML
	HighlightBold
	HighlightNone
)

// WhitespaceMode selects text-node whitespace handling (§3, §4.5).
type WhitespaceMode int

const (
	WhitespaceNormalized WhitespaceMode = iota
	WhitespaceStrict
)

// PreprocessingOptions gates the optional chrome-removal preprocessing
// pass (§3, §4.2).
type PreprocessingOptions struct {
	Enabled         bool
	RemoveNavigation bool
}

// Options is the full, flat configuration surface for a conversion
// (§3). The zero value is not generally useful; use DefaultOptions.
type Options struct {
	HeadingStyle     HeadingStyle
	Bullets          string
	ListIndentType   ListIndentType
	ListIndentWidth  int // 1-8
	StrongEmSymbol   rune // '*' or '_'
	EscapeMisc       bool
	EscapeAsterisks  bool
	EscapeUnderscores bool
	EscapeASCII      bool
	SubSymbol        string
	SupSymbol        string
	NewlineStyle     NewlineStyle
	CodeBlockStyle   CodeBlockStyle
	CodeLanguage     string
	Autolinks        bool
	DefaultTitle     bool
	KeepInlineImagesIn map[string]bool
	HighlightStyle   HighlightStyle
	StripTags        map[string]bool
	PreserveTags     map[string]bool
	WhitespaceMode   WhitespaceMode
	StripNewlines    bool
	ConvertAsInline  bool
	Wrap             bool
	WrapWidth        int // >= 20
	SkipImages       bool
	BrInTables       bool
	Preprocessing    PreprocessingOptions
	ExtractMetadata  bool
}

// DefaultOptions returns the conversion defaults: ATX headings, "-"
// bullets, 4-space list indent, "*" emphasis symbol, misc/asterisk/
// underscore escaping on and non-ASCII escaping off, backtick code
// fences, autolinks off, hard wrap off with an 80-column wrap width.
func DefaultOptions() *Options {
	return &Options{
		HeadingStyle:      HeadingATX,
		Bullets:           "-",
		ListIndentType:    ListIndentSpaces,
		ListIndentWidth:   4,
		StrongEmSymbol:    '*',
		EscapeMisc:        true,
		EscapeAsterisks:   true,
		EscapeUnderscores: true,
		EscapeASCII:       false,
		SubSymbol:         "",
		SupSymbol:         "",
		NewlineStyle:      NewlineSpaces,
		CodeBlockStyle:    CodeBlockBackticks,
		Autolinks:         false,
		DefaultTitle:      false,
		HighlightStyle:    HighlightDoubleEqual,
		WhitespaceMode:    WhitespaceNormalized,
		WrapWidth:         80,
		BrInTables:        false,
	}
}

// Validate enforces the CLI-documented constraints (spec.md §6) so a
// library caller gets the same guarantees the CLI enforces before parsing
// flags.
func (o *Options) Validate() error {
	if o.ListIndentWidth < 1 || o.ListIndentWidth > 8 {
		return &ValidationError{Field: "ListIndentWidth", Msg: "must be in [1,8]"}
	}
	if o.Bullets == "" || len(o.Bullets) > 10 {
		return &ValidationError{Field: "Bullets", Msg: "must be non-empty and <= 10 chars"}
	}
	if o.StrongEmSymbol != '*' && o.StrongEmSymbol != '_' {
		return &ValidationError{Field: "StrongEmSymbol", Msg: "must be '*' or '_'"}
	}
	if o.Wrap && o.WrapWidth < 20 {
		return &ValidationError{Field: "WrapWidth", Msg: "must be >= 20"}
	}
	return nil
}

func (o *Options) bulletFor(depth int) byte {
	if len(o.Bullets) == 0 {
		return '-'
	}
	return o.Bullets[depth%len(o.Bullets)]
}

func (o *Options) listIndent() string {
	if o.ListIndentType == ListIndentTabs {
		return "\t"
	}
	width := o.ListIndentWidth
	if width <= 0 {
		width = 4
	}
	return fmt.Sprintf("%*s", width, "")
}
