package convert

// walk visits node n, appending Markdown to out per the contract in
// §4.5. It never returns a value; all effects land on out or the
// optional collectors reachable through ctx.
func walk(n *Node, out *buffer, ctx *Context, depth int) {
	if n.Type == ElementNode && ctx.dom.isDropped(n) {
		return
	}

	if n.Type == ElementNode && ctx.opts.StripTags[n.Tag] {
		walkChildren(n, out, ctx, depth)
		return
	}

	if n.Type == ElementNode && ctx.opts.PreserveTags[n.Tag] {
		out.writeString(renderNodeAsHTML(n))
		return
	}

	switch n.Type {
	case TextNode:
		walkText(n, out, ctx)
	case CommentNode:
		// Comments carry no Markdown-visible content (§4.6 math's MathML
		// comment is emitted explicitly by the math handler, not here).
	case DocumentNode:
		walkChildren(n, out, ctx, depth)
	case ElementNode:
		walkElement(n, out, ctx, depth)
	}
}

func walkText(n *Node, out *buffer, ctx *Context) {
	if action := dispatchVisitor(ctx, VisitorEvent{Kind: EventText, Node: n}); action.Kind != ActionContinue {
		applyNonContinue(action, out)
		return
	}
	out.writeString(renderTextNode(n, ctx))
}

// walkChildren visits every child of n in order with the same ctx value
// (handlers fork ctx themselves before recursing when nesting state must
// change).
func walkChildren(n *Node, out *buffer, ctx *Context, depth int) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, out, ctx, depth+1)
	}
}

// renderChildren renders n's children into a fresh buffer and returns
// the string, for handlers that need the fully-rendered subtree content
// before deciding how to wrap it (headings, emphasis, table cells, ...).
func renderChildren(n *Node, ctx *Context, depth int) string {
	b := newBuffer(64)
	walkChildren(n, b, ctx, depth)
	return b.String()
}

// applyNonContinue writes a visitor's Custom override to out; Skip and
// Error write nothing (Error is recorded on ctx already). PreserveHTML
// on a text node has no element to serialize, so it degrades to Skip.
func applyNonContinue(action VisitorAction, out *buffer) {
	if action.Kind == ActionCustom {
		out.writeString(action.Custom)
	}
}

func walkElement(n *Node, out *buffer, ctx *Context, depth int) {
	ctx.logDebug("walk element", n.Tag)
	switch n.Tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		handleHeading(n, out, ctx, depth)
	case "p":
		handleParagraph(n, out, ctx, depth)
	case "blockquote":
		handleBlockquote(n, out, ctx, depth)
	case "pre":
		handlePre(n, out, ctx)
	case "ul":
		handleList(n, out, ctx, depth, false)
	case "ol":
		handleList(n, out, ctx, depth, true)
	case "li":
		handleListItemStandalone(n, out, ctx, depth)
	case "dl":
		handleDefinitionList(n, out, ctx, depth)
	case "table":
		handleTable(n, out, ctx, depth)
	case "hr":
		handleHorizontalRule(n, out, ctx)
	case "img":
		handleImage(n, out, ctx)
	case "graphic":
		handleGraphic(n, out, ctx)
	case "svg":
		handleSVG(n, out, ctx)
	case "video", "audio", "iframe":
		handleMediaLink(n, out, ctx)
	case "picture":
		handlePicture(n, out, ctx, depth)
	case "math":
		handleMath(n, out, ctx)
	case "strong", "b":
		handleStrongEm(n, out, ctx, depth, true)
	case "em", "i":
		handleStrongEm(n, out, ctx, depth, false)
	case "a":
		handleAnchor(n, out, ctx, depth)
	case "code":
		handleInlineCode(n, out, ctx, depth)
	case "del", "s":
		handleStrikethrough(n, out, ctx, depth)
	case "ins":
		handleInsert(n, out, ctx, depth)
	case "mark":
		handleMark(n, out, ctx, depth)
	case "sub":
		handleSubSup(n, out, ctx, depth, ctx.opts.SubSymbol)
	case "sup":
		handleSubSup(n, out, ctx, depth, ctx.opts.SupSymbol)
	case "ruby":
		handleRuby(n, out, ctx, depth)
	case "br":
		handleBreak(n, out, ctx)
	case "head", "script", "style", "noscript", "template":
		// Never contribute to Markdown output directly; their useful
		// content (head metadata, JSON-LD) is harvested by collectors
		// elsewhere in the pipeline, not by the walker.
	default:
		walkChildren(n, out, ctx, depth)
	}
}
