package convert

import "strings"

// handleHeading implements §4.6 "Headings h1..h6".
func handleHeading(n *Node, out *buffer, ctx *Context, depth int) {
	renderHeadingBlock(n, out, ctx, depth, headingLevel(n.Tag), "", "")
}

// renderHeadingBlock renders heading element n at the given level,
// optionally wrapping its rendered label in link markdown to href/title
// when an enclosing <a> directly wraps the heading (§4.7 "If the anchor
// directly wraps a single heading child...").
func renderHeadingBlock(n *Node, out *buffer, ctx *Context, depth, level int, href, title string) {
	action := dispatchVisitor(ctx, VisitorEvent{Kind: EventHeading, Tag: n.Tag, Node: n, HeadingLevel: level})
	switch action.Kind {
	case ActionSkip:
		return
	case ActionCustom:
		out.ensureBlockSeparator()
		out.writeString(action.Custom)
		out.writeString("\n\n")
		return
	case ActionPreserveHTML:
		out.ensureBlockSeparator()
		out.writeString(renderNodeAsHTML(n))
		out.writeString("\n\n")
		return
	}

	child := ctx.fork()
	child.InHeading = true
	child.InlineDepth++
	child.HeadingAllowInlineImages = tagChainAllows(n.Parent, ctx.opts.KeepInlineImagesIn)

	content := normalizeInlineResult(renderChildren(n, &child, depth+1))
	if content == "" {
		return
	}
	if href != "" {
		content = linkMarkdown(content, href, title, ctx.opts)
	}

	ctx.metadata.addHeading(HeadingInfo{Level: level, Text: content})

	out.ensureBlockSeparator()
	switch {
	case ctx.opts.HeadingStyle == HeadingUnderlined && level <= 2:
		out.writeString(content)
		out.writeString("\n")
		ch := "="
		if level == 2 {
			ch = "-"
		}
		out.writeString(strings.Repeat(ch, runeLen(content)))
	case ctx.opts.HeadingStyle == HeadingATXClosed:
		prefix := strings.Repeat("#", level)
		out.writeString(prefix)
		out.writeString(" ")
		out.writeString(content)
		out.writeString(" ")
		out.writeString(prefix)
	default:
		out.writeString(strings.Repeat("#", level))
		out.writeString(" ")
		out.writeString(content)
	}
	out.writeString("\n\n")
}

func runeLen(s string) int { return len([]rune(s)) }

func headingLevel(tag string) int {
	if len(tag) != 2 || tag[0] != 'h' {
		return 6
	}
	level := int(tag[1] - '0')
	if level < 1 || level > 6 {
		return 6
	}
	return level
}

// tagChainAllows reports whether any ancestor of n (starting at n,
// walking up through Parent) has a tag name present in allow.
func tagChainAllows(n *Node, allow map[string]bool) bool {
	if len(allow) == 0 {
		return false
	}
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Type == ElementNode && allow[cur.Tag] {
			return true
		}
	}
	return false
}

// handleParagraph implements §4.6 "Paragraphs p".
func handleParagraph(n *Node, out *buffer, ctx *Context, depth int) {
	if !blockVisitorGate(n, out, ctx, EventElementStart) {
		return
	}

	child := ctx.fork()
	child.InParagraph = true
	content := strings.TrimSpace(renderChildren(n, &child, depth+1))
	if content == "" {
		return
	}

	if ctx.opts.Wrap && !ctx.InTableCell && !ctx.opts.ConvertAsInline {
		content = wrapText(content, ctx.opts.WrapWidth)
	}

	switch {
	case ctx.InTableCell:
		if out.Len() > 0 {
			out.writeString(cellHardBreak(ctx.opts))
		}
		out.writeString(content)
	case ctx.opts.ConvertAsInline:
		out.writeString(content)
	default:
		out.ensureBlockSeparator()
		out.writeString(content)
		out.writeString("\n\n")
	}
}

func cellHardBreak(opts *Options) string {
	if opts.NewlineStyle == NewlineBackslash {
		return "\\\n"
	}
	return "  \n"
}

// handleBlockquote implements §4.6 "Blockquote".
func handleBlockquote(n *Node, out *buffer, ctx *Context, depth int) {
	if !blockVisitorGate(n, out, ctx, EventBlockquote) {
		return
	}

	child := ctx.fork()
	child.BlockquoteDepth++
	inner := renderChildren(n, &child, depth+1)
	inner = strings.Trim(inner, "\n")
	if inner == "" && !hasAttrVal(n, "cite") {
		return
	}

	out.ensureBlockSeparator()
	lines := strings.Split(inner, "\n")
	for _, line := range lines {
		out.writeString("> ")
		out.writeString(line)
		out.writeString("\n")
	}
	if cite, ok := n.attr("cite"); ok && cite != "" {
		out.writeString("> ")
		out.writeString("<")
		out.writeString(cite)
		out.writeString(">\n")
	}
	out.writeString("\n")
}

func hasAttrVal(n *Node, key string) bool {
	v, ok := n.attr(key)
	return ok && v != ""
}

// handlePre implements §4.6 "Code block pre".
func handlePre(n *Node, out *buffer, ctx *Context) {
	if !blockVisitorGate(n, out, ctx, EventCodeBlock) {
		return
	}

	lang := detectCodeLanguage(n)
	if lang == "" {
		lang = ctx.opts.CodeLanguage
	}

	child := ctx.fork()
	child.InCode = true
	content := ctx.dom.textContent(n)
	content = strings.Trim(content, "\n")
	content = dedent(content)

	out.ensureBlockSeparator()
	switch ctx.opts.CodeBlockStyle {
	case CodeBlockIndented:
		for _, line := range strings.Split(content, "\n") {
			out.writeString("    ")
			out.writeString(line)
			out.writeString("\n")
		}
	case CodeBlockTildes:
		out.writeString("~~~")
		out.writeString(lang)
		out.writeString("\n")
		out.writeString(content)
		out.writeString("\n~~~")
	default:
		fence := longestBacktickRun(content)
		ticks := strings.Repeat("`", maxInt(3, fence+1))
		out.writeString(ticks)
		out.writeString(lang)
		out.writeString("\n")
		out.writeString(content)
		out.writeString("\n")
		out.writeString(ticks)
	}
	out.writeString("\n\n")
	_ = child
}

func detectCodeLanguage(pre *Node) string {
	if lang := languageFromClass(pre); lang != "" {
		return lang
	}
	for c := pre.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == ElementNode && c.Tag == "code" {
			if lang := languageFromClass(c); lang != "" {
				return lang
			}
		}
	}
	return ""
}

func languageFromClass(n *Node) string {
	class, _ := n.attr("class")
	for _, cls := range strings.Fields(class) {
		if strings.HasPrefix(cls, "language-") {
			return strings.TrimPrefix(cls, "language-")
		}
		if strings.HasPrefix(cls, "lang-") {
			return strings.TrimPrefix(cls, "lang-")
		}
	}
	return ""
}

// dedent removes the longest common leading-whitespace run shared by
// every non-empty line (§4.6).
func dedent(content string) string {
	lines := strings.Split(content, "\n")
	common := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if common == -1 || n < common {
			common = n
		}
	}
	if common <= 0 {
		return content
	}
	for i, line := range lines {
		if len(line) >= common {
			lines[i] = line[common:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(lines, "\n")
}

func longestBacktickRun(s string) int {
	best, cur := 0, 0
	for _, r := range s {
		if r == '`' {
			cur++
			if cur > best {
				best = cur
			}
		} else {
			cur = 0
		}
	}
	return best
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// handleHorizontalRule implements §4.6 "Horizontal rule hr".
func handleHorizontalRule(n *Node, out *buffer, ctx *Context) {
	if !blockVisitorGate(n, out, ctx, EventElementStart) {
		return
	}
	out.ensureBlockSeparator()
	out.writeString("---\n\n")
}
