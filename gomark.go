// Package gomark converts HTML documents and fragments into Markdown.
package gomark

import (
	"log/slog"

	"github.com/dpotapov/gomark/convert"
)

// Options is the full configuration surface for a conversion (spec §3).
type Options = convert.Options

// DefaultOptions returns the library's default conversion settings.
func DefaultOptions() *Options { return convert.DefaultOptions() }

// Heading, list, code block, newline, highlight, and whitespace style
// enumerations, re-exported from convert for callers building an Options
// value without importing the internal package directly.
type (
	HeadingStyle         = convert.HeadingStyle
	ListIndentType       = convert.ListIndentType
	NewlineStyle         = convert.NewlineStyle
	CodeBlockStyle       = convert.CodeBlockStyle
	HighlightStyle       = convert.HighlightStyle
	WhitespaceMode       = convert.WhitespaceMode
	PreprocessingOptions = convert.PreprocessingOptions
)

const (
	HeadingATX        = convert.HeadingATX
	HeadingATXClosed  = convert.HeadingATXClosed
	HeadingUnderlined = convert.HeadingUnderlined

	ListIndentSpaces = convert.ListIndentSpaces
	ListIndentTabs   = convert.ListIndentTabs

	NewlineSpaces    = convert.NewlineSpaces
	NewlineBackslash = convert.NewlineBackslash

	CodeBlockIndented  = convert.CodeBlockIndented
	CodeBlockBackticks = convert.CodeBlockBackticks
	CodeBlockTildes    = convert.CodeBlockTildes

	HighlightDoubleEqual = convert.HighlightDoubleEqual
	HighlightHTML        = convert.HighlightHTML
	HighlightBold        = convert.HighlightBold
	HighlightNone        = convert.HighlightNone

	WhitespaceNormalized = convert.WhitespaceNormalized
	WhitespaceStrict     = convert.WhitespaceStrict
)

// Error types returned by Convert (spec §7).
type (
	ParseError      = convert.ParseError
	ValidationError = convert.ValidationError
	VisitorError    = convert.VisitorError
)

// Collector and visitor side-channel types (spec §4.8).
type (
	ImageCollector    = convert.ImageCollector
	MetadataCollector = convert.MetadataCollector
	HeadInfo          = convert.HeadInfo
	HeadingInfo       = convert.HeadingInfo
	LinkInfo          = convert.LinkInfo
	ImageInfo         = convert.ImageInfo

	Visitor           = convert.Visitor
	VisitorEvent      = convert.VisitorEvent
	VisitorEventKind  = convert.VisitorEventKind
	VisitorAction     = convert.VisitorAction
	VisitorActionKind = convert.VisitorActionKind
)

const (
	EventElementStart  = convert.EventElementStart
	EventElementEnd    = convert.EventElementEnd
	EventText          = convert.EventText
	EventHeading       = convert.EventHeading
	EventLink          = convert.EventLink
	EventImage         = convert.EventImage
	EventStrong        = convert.EventStrong
	EventEm            = convert.EventEm
	EventCodeInline    = convert.EventCodeInline
	EventCodeBlock     = convert.EventCodeBlock
	EventListStart     = convert.EventListStart
	EventListEnd       = convert.EventListEnd
	EventListItem      = convert.EventListItem
	EventBlockquote    = convert.EventBlockquote
	EventStrikethrough = convert.EventStrikethrough
	EventUnderline     = convert.EventUnderline
)

// Continue, Skip, PreserveHTML, Custom, and VisitorErr construct the
// VisitorAction values a Visitor returns from Visit.
var (
	Continue     = convert.Continue
	Skip         = convert.Skip
	PreserveHTML = convert.PreserveHTML
	Custom       = convert.Custom
	VisitorErr   = convert.VisitorErr
)

// config accumulates the optional side channels attached via Option
// functions, keeping Convert's signature flat per spec §6.
type config struct {
	images   ImageCollector
	metadata *MetadataCollector
	visitor  Visitor
	log      *slog.Logger
}

// Option attaches an optional side channel to a Convert call.
type Option func(*config)

// WithImageCollector registers c to receive inline-image registrations
// (spec §4.8).
func WithImageCollector(c ImageCollector) Option {
	return func(cfg *config) { cfg.images = c }
}

// WithMetadataCollector registers m to accumulate structured metadata
// gated by its own Wants* flags (spec §4.8).
func WithMetadataCollector(m *MetadataCollector) Option {
	return func(cfg *config) { cfg.metadata = m }
}

// WithVisitor registers v to observe and override rendering at each node
// (spec §4.8).
func WithVisitor(v Visitor) Option {
	return func(cfg *config) { cfg.visitor = v }
}

// WithLogger attaches a *slog.Logger for per-node debug traces (§4.9).
// Conversion is silent by default; pass this only when diagnosing a
// specific document.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) { cfg.log = l }
}

// Convert renders html as Markdown per opts (nil selects DefaultOptions),
// with any collectors/visitor attached through fns. It returns a
// ValidationError if opts violates a documented constraint, a ParseError
// if the HTML could not be parsed even after repair, or a VisitorError
// from the first error an attached Visitor reported.
func Convert(html string, opts *Options, fns ...Option) (string, error) {
	cfg := &config{}
	for _, fn := range fns {
		fn(cfg)
	}
	return convert.DocumentWithLogger(html, opts, cfg.images, cfg.metadata, cfg.visitor, cfg.log)
}
