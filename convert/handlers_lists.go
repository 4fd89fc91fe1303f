package convert

import (
	"strconv"
	"strings"
)

// listIsLoose implements the looseness test in §4.6: a list is loose if
// any item carries a block-level child, or if any two item siblings in
// the source were separated by a blank line.
func listIsLoose(list *Node) bool {
	var prevWasItem bool
	for c := list.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case ElementNode:
			if c.Tag != "li" {
				continue
			}
			if itemHasBlockChild(c) {
				return true
			}
			prevWasItem = true
		case TextNode:
			if prevWasItem && strings.Count(c.Data, "\n") >= 2 {
				return true
			}
		}
	}
	return false
}

func itemHasBlockChild(li *Node) bool {
	for _, c := range li.elementChildren() {
		if isBlock(c.Tag) && c.Tag != "li" {
			return true
		}
	}
	return false
}

// handleList implements §4.6 "Lists ul/ol".
func handleList(n *Node, out *buffer, ctx *Context, depth int, ordered bool) {
	if !blockVisitorGate(n, out, ctx, EventListStart) {
		return
	}

	start := 1
	if ordered {
		if s, ok := n.attr("start"); ok {
			if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
				start = v
			}
		}
	}

	child := ctx.fork()
	child.InList = true
	child.InOrderedList = ordered
	child.ListDepth++
	if !ordered {
		child.ULDepth++
	}
	child.LooseList = listIsLoose(n)
	child.ListCounter = start

	var items []*Node
	for _, c := range n.elementChildren() {
		if c.Tag == "li" {
			items = append(items, c)
		}
	}
	if len(items) == 0 {
		return
	}

	out.ensureBlockSeparator()
	for i, li := range items {
		if i > 0 && child.LooseList {
			out.writeString("\n")
		}
		writeListItem(li, out, &child, depth+1, ordered)
		if ordered {
			child.ListCounter++
		}
	}
	out.writeString("\n")
}

// handleListItemStandalone handles an <li> the walker reaches without an
// enclosing ul/ol (malformed input the repair pass left as-is); it is
// rendered as a single unordered item so content is never silently lost.
func handleListItemStandalone(n *Node, out *buffer, ctx *Context, depth int) {
	child := ctx.fork()
	child.InList = true
	child.ListDepth++
	child.ULDepth++
	child.ListCounter = 1
	out.ensureBlockSeparator()
	writeListItem(n, out, &child, depth+1, false)
	out.writeString("\n")
}

func writeListItem(li *Node, out *buffer, ctx *Context, depth int, ordered bool) {
	if !blockVisitorGate(li, out, ctx, EventListItem) {
		return
	}

	indent := strings.Repeat(ctx.opts.listIndent(), maxInt(0, ctx.ListDepth-1))

	checkbox, checked, hasCheckbox := findTaskCheckbox(li)

	var marker string
	switch {
	case hasCheckbox:
		// A task-list item always renders with a literal "-", regardless
		// of Bullets/ordered: spec.md's task-list syntax is "- [ ] "/
		// "- [x] ", not bullet- or ordered-marker-dependent.
		marker = "- "
	case ordered:
		marker = strconv.Itoa(ctx.ListCounter) + ". "
	default:
		marker = string(ctx.opts.bulletFor(ctx.ULDepth-1)) + " "
	}

	if hasCheckbox {
		if checked {
			marker += "[x] "
		} else {
			marker += "[ ] "
		}
	}

	child := ctx.fork()
	child.InListItem = true
	body := renderListItemBody(li, &child, depth, checkbox)
	body = strings.Trim(body, "\n")

	prefix := indent + marker
	contIndent := indent + strings.Repeat(" ", len(marker))

	if body == "" {
		out.writeString(prefix)
		out.writeString("\n")
		return
	}

	lines := strings.Split(body, "\n")
	out.writeString(prefix)
	out.writeString(lines[0])
	out.writeString("\n")
	for _, line := range lines[1:] {
		if line == "" {
			out.writeString("\n")
			continue
		}
		out.writeString(contIndent)
		out.writeString(line)
		out.writeString("\n")
	}
}

// renderListItemBody renders li's children, skipping the checkbox input
// (if any) since its presence was already folded into the marker.
func renderListItemBody(li *Node, ctx *Context, depth int, skip *Node) string {
	b := newBuffer(32)
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if c == skip {
			continue
		}
		walk(c, b, ctx, depth+1)
	}
	return b.String()
}

// findTaskCheckbox locates a descendant <input type="checkbox"> that
// marks li as a task-list item (§4.6), without descending into a nested
// list (a checkbox belonging to a nested item is that item's own).
func findTaskCheckbox(li *Node) (node *Node, checked bool, found bool) {
	var walkFn func(n *Node) (*Node, bool, bool)
	walkFn = func(n *Node) (*Node, bool, bool) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != ElementNode {
				continue
			}
			if c.Tag == "ul" || c.Tag == "ol" {
				continue
			}
			if c.Tag == "input" {
				if t, _ := c.attr("type"); strings.EqualFold(t, "checkbox") {
					_, isChecked := c.attr("checked")
					return c, isChecked, true
				}
			}
			if node, checked, found := walkFn(c); found {
				return node, checked, found
			}
		}
		return nil, false, false
	}
	return walkFn(li)
}

// handleDefinitionList implements §4.6 "Definition lists".
func handleDefinitionList(n *Node, out *buffer, ctx *Context, depth int) {
	if !blockVisitorGate(n, out, ctx, EventListStart) {
		return
	}

	out.ensureBlockSeparator()
	children := n.elementChildren()
	child := ctx.fork()
	child.LastWasDT = false

	for i := 0; i < len(children); {
		switch children[i].Tag {
		case "dt":
			for i < len(children) && children[i].Tag == "dt" {
				content := strings.TrimSpace(renderChildren(children[i], &child, depth+1))
				out.writeString(content)
				out.writeString("\n")
				i++
			}
		case "dd":
			var dds []*Node
			for i < len(children) && children[i].Tag == "dd" {
				dds = append(dds, children[i])
				i++
			}
			for j, dd := range dds {
				content := strings.TrimSpace(renderChildren(dd, &child, depth+1))
				out.writeString(":   ")
				out.writeString(content)
				out.writeString("\n")
				if j < len(dds)-1 {
					out.writeString("\n")
				}
			}
		default:
			i++
		}
	}
	out.writeString("\n")
}
