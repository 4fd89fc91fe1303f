package convert

import "log/slog"

// Context is the per-descent state threaded through the walker (§3,
// §4.5). It is passed by value at call sites that need to fork state for
// a subtree (e.g. entering a blockquote) and by pointer where handlers
// mutate shared policy handles.
type Context struct {
	// Container nesting.
	InCode          bool
	InParagraph     bool
	InHeading       bool
	InTableCell     bool
	InListItem      bool
	InList          bool
	InOrderedList   bool
	InLink          bool
	InRuby          bool
	InStrong        bool
	BlockquoteDepth int
	ListDepth       int
	ULDepth         int
	ListCounter     int
	InlineDepth     int

	// List shape.
	LooseList              bool
	PrevItemHadBlocks      bool
	LastWasDT              bool
	HeadingAllowInlineImages bool
	CellAllowInlineImages    bool

	// Policy handles (shared across the whole walk, not forked).
	opts        *Options
	dom         *DomContext
	dropped     map[*Node]bool
	images      ImageCollector
	metadata    *MetadataCollector
	visitor     Visitor
	visitorErr  error

	// log, when non-nil, receives per-node debug traces. The library
	// never sets this itself; a caller opts in via DocumentWithLogger
	// (§4.9 — zero ambient output by default).
	log *slog.Logger
}

// logDebug emits a debug trace for tag at the node's entry point, a
// no-op when no logger was supplied.
func (ctx *Context) logDebug(msg, tag string) {
	if ctx.log == nil {
		return
	}
	ctx.log.Debug(msg, "tag", tag)
}

// fork returns a shallow copy of ctx, suitable for descending into a
// child subtree that changes nesting flags without affecting siblings
// already processed (spec.md §3's per-descent contract).
func (ctx Context) fork() Context {
	return ctx
}
