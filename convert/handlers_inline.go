package convert

import "strings"

// maxLinkLabelRunes caps an anchor's rendered label before an ellipsis is
// substituted, protecting against pathological single-line anchors that
// wrap enormous amounts of inline content.
const maxLinkLabelRunes = 2048

// handleStrongEm implements §4.7 "Strong strong/b, emphasis em/i".
func handleStrongEm(n *Node, out *buffer, ctx *Context, depth int, strong bool) {
	kind := EventEm
	if strong {
		kind = EventStrong
	}
	if !inlineVisitorGate(n, out, ctx, kind) {
		return
	}

	child := ctx.fork()
	flattened := strong && ctx.InStrong
	if strong {
		child.InStrong = true
	}

	content := strings.TrimSpace(renderChildren(n, &child, depth+1))
	if content == "" {
		return
	}

	if flattened {
		out.writeString(content)
		return
	}

	symbol := string(ctx.opts.StrongEmSymbol)
	if strong {
		symbol = symbol + symbol
	}
	out.writeString(symbol)
	out.writeString(content)
	out.writeString(symbol)
}

// soleHeadingChild returns n's single heading element child when n has
// no other element children and no non-whitespace text, or nil.
func soleHeadingChild(n *Node) *Node {
	var only *Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case ElementNode:
			if only != nil || !isHeadingTag(c.Tag) {
				return nil
			}
			only = c
		case TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return nil
			}
		}
	}
	return only
}

func isHeadingTag(tag string) bool {
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

// handleAnchor implements §4.7 "Anchor a".
func handleAnchor(n *Node, out *buffer, ctx *Context, depth int) {
	if !inlineVisitorGate(n, out, ctx, EventLink) {
		return
	}

	href := n.attrOr("href", "")
	title := n.attrOr("title", "")

	if h := soleHeadingChild(n); h != nil {
		renderHeadingBlock(h, out, ctx, depth, headingLevel(h.Tag), href, title)
		return
	}

	child := ctx.fork()
	child.InLink = true
	label := normalizeInlineResult(renderChildren(n, &child, depth+1))
	if label == "" {
		return
	}
	if title == "" && ctx.opts.DefaultTitle {
		title = label
	}

	ctx.metadata.addLink(LinkInfo{Href: href, Label: label, Title: title, Rel: n.attrOr("rel", "")})

	if href == "" {
		out.writeString(label)
		return
	}
	// Compare the unescaped visible text: label has already been through
	// escapeText and would never equal a raw href containing '.' etc.
	if ctx.opts.Autolinks && isAutolinkable(normalizeInlineResult(ctx.dom.textContent(n)), href) {
		out.writeString("<" + href + ">")
		return
	}
	out.writeString(linkMarkdown(label, href, title, ctx.opts))
}

// linkMarkdown renders label/href/title as an autolink or a full
// "[label](href "title")" form per §4.7.
func linkMarkdown(label, href, title string, opts *Options) string {
	if opts.Autolinks && isAutolinkable(label, href) {
		return "<" + href + ">"
	}
	label = truncateLabel(label)
	if title == "" {
		return "[" + label + "](" + href + ")"
	}
	return "[" + label + "](" + href + " \"" + title + "\")"
}

func isAutolinkable(label, href string) bool {
	if label == href {
		return true
	}
	if addr, ok := strings.CutPrefix(href, "mailto:"); ok {
		return label == addr
	}
	return false
}

func truncateLabel(s string) string {
	r := []rune(s)
	if len(r) <= maxLinkLabelRunes {
		return s
	}
	return string(r[:maxLinkLabelRunes-1]) + "…"
}

// handleInlineCode implements §4.7 "Code inline code".
func handleInlineCode(n *Node, out *buffer, ctx *Context, depth int) {
	if !inlineVisitorGate(n, out, ctx, EventCodeInline) {
		return
	}

	text := ctx.dom.textContent(n)
	if text == "" {
		return
	}

	longest := longestBacktickRun(text)
	ticks := "`"
	if longest > 0 {
		ticks = strings.Repeat("`", longest+1)
	}

	pad := ""
	if strings.HasPrefix(text, "`") || strings.HasSuffix(text, "`") || strings.TrimSpace(text) == "" {
		pad = " "
	}

	out.writeString(ticks)
	out.writeString(pad)
	out.writeString(text)
	out.writeString(pad)
	out.writeString(ticks)
}

// handleStrikethrough implements §4.7 "Strikethrough del/s".
func handleStrikethrough(n *Node, out *buffer, ctx *Context, depth int) {
	if !inlineVisitorGate(n, out, ctx, EventStrikethrough) {
		return
	}
	content := strings.TrimSpace(renderChildren(n, ctx, depth+1))
	if content == "" {
		return
	}
	out.writeString("~~")
	out.writeString(content)
	out.writeString("~~")
}

// handleInsert implements §4.7 "Insert ins: rendered as highlight
// ==text==" — always the double-equal form, independent of highlight_style
// (that option governs mark only).
func handleInsert(n *Node, out *buffer, ctx *Context, depth int) {
	if !inlineVisitorGate(n, out, ctx, EventUnderline) {
		return
	}
	content := strings.TrimSpace(renderChildren(n, ctx, depth+1))
	if content == "" {
		return
	}
	out.writeString("==")
	out.writeString(content)
	out.writeString("==")
}

// handleMark implements §4.7 "Mark mark" per highlight_style.
func handleMark(n *Node, out *buffer, ctx *Context, depth int) {
	if !inlineVisitorGate(n, out, ctx, EventElementStart) {
		return
	}
	content := strings.TrimSpace(renderChildren(n, ctx, depth+1))
	if content == "" {
		return
	}
	switch ctx.opts.HighlightStyle {
	case HighlightHTML:
		out.writeString("<mark>")
		out.writeString(content)
		out.writeString("</mark>")
	case HighlightBold:
		symbol := string(ctx.opts.StrongEmSymbol) + string(ctx.opts.StrongEmSymbol)
		out.writeString(symbol)
		out.writeString(content)
		out.writeString(symbol)
	case HighlightNone:
		out.writeString(content)
	default:
		out.writeString("==")
		out.writeString(content)
		out.writeString("==")
	}
}

// handleSubSup implements §4.7 "Subscript/superscript sub/sup".
func handleSubSup(n *Node, out *buffer, ctx *Context, depth int, symbol string) {
	if !inlineVisitorGate(n, out, ctx, EventElementStart) {
		return
	}
	content := normalizeInlineResult(renderChildren(n, ctx, depth+1))
	if content == "" {
		return
	}
	if ctx.InCode || symbol == "" {
		out.writeString(content)
		return
	}
	if strings.HasPrefix(symbol, "<") {
		out.writeString(symbol)
		out.writeString(content)
		out.writeString(closingTagFor(symbol))
		return
	}
	out.writeString(symbol)
	out.writeString(content)
	out.writeString(symbol)
}

func closingTagFor(openTag string) string {
	if len(openTag) > 1 && openTag[0] == '<' {
		return "</" + openTag[1:]
	}
	return openTag
}

// handleRuby implements §4.7 "Ruby ruby, rb, rt, rp, rtc".
func handleRuby(n *Node, out *buffer, ctx *Context, depth int) {
	if !inlineVisitorGate(n, out, ctx, EventElementStart) {
		return
	}

	var rtc *Node
	var bases, annotations []*Node
	for _, c := range n.elementChildren() {
		switch c.Tag {
		case "rb":
			bases = append(bases, c)
		case "rt":
			annotations = append(annotations, c)
		case "rtc":
			rtc = c
		case "rp":
			// Fallback parenthesization passes through verbatim below via
			// the default interleaved layout.
		}
	}

	if rtc == nil {
		writeRubyInterleaved(n, out, ctx, depth)
		return
	}

	for _, b := range bases {
		out.writeString(strings.TrimSpace(renderChildren(b, ctx, depth+1)))
	}
	rtcAnnotations := rtc.elementChildren()
	if len(rtcAnnotations) > 1 {
		out.writeString("(")
	}
	for i, rt := range rtcAnnotations {
		if rt.Tag != "rt" {
			continue
		}
		out.writeString(strings.TrimSpace(renderChildren(rt, ctx, depth+1)))
		if i < len(rtcAnnotations)-1 {
			out.writeString(" ")
		}
	}
	if len(rtcAnnotations) > 1 {
		out.writeString(")")
	}
}

// writeRubyInterleaved emits each base immediately followed by its
// annotation, walking ruby's children in source order (including bare
// text treated as an implicit rb, per the HTML ruby model).
func writeRubyInterleaved(n *Node, out *buffer, ctx *Context, depth int) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == ElementNode && c.Tag == "rp":
			out.writeString(strings.TrimSpace(renderChildren(c, ctx, depth+1)))
		case c.Type == ElementNode && (c.Tag == "rb" || c.Tag == "rt"):
			out.writeString(strings.TrimSpace(renderChildren(c, ctx, depth+1)))
		case c.Type == TextNode:
			out.writeString(renderTextNode(c, ctx))
		}
	}
}

// handleBreak implements §4.7 "Line break br".
func handleBreak(n *Node, out *buffer, ctx *Context) {
	if !inlineVisitorGate(n, out, ctx, EventElementStart) {
		return
	}
	switch {
	case ctx.InHeading:
		out.writeString("  ")
	case ctx.InTableCell:
		if ctx.opts.BrInTables {
			out.writeString("  \n")
		} else {
			out.writeString(" ")
		}
	case out.Len() == 0 || out.endsWith("\n"):
		out.writeString("\n")
	case ctx.opts.NewlineStyle == NewlineBackslash:
		out.writeString("\\\n")
	default:
		out.writeString("  \n")
	}
}
