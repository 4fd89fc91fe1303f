package convert

// inlineVisitorGate dispatches a visitor event for an inline-context
// element and reports whether default rendering should still happen.
// When it returns false, any override has already been written to out.
func inlineVisitorGate(n *Node, out *buffer, ctx *Context, kind VisitorEventKind) bool {
	action := dispatchVisitor(ctx, VisitorEvent{Kind: kind, Tag: n.Tag, Node: n})
	switch action.Kind {
	case ActionSkip:
		return false
	case ActionCustom:
		out.writeString(action.Custom)
		return false
	case ActionPreserveHTML:
		out.writeString(renderNodeAsHTML(n))
		return false
	}
	return true
}

// blockVisitorGate is inlineVisitorGate's block-context counterpart: a
// Custom or PreserveHTML override is wrapped with the same blank-line
// separation a default block rendering would use.
func blockVisitorGate(n *Node, out *buffer, ctx *Context, kind VisitorEventKind) bool {
	action := dispatchVisitor(ctx, VisitorEvent{Kind: kind, Tag: n.Tag, Node: n})
	switch action.Kind {
	case ActionSkip:
		return false
	case ActionCustom:
		out.ensureBlockSeparator()
		out.writeString(action.Custom)
		out.writeString("\n\n")
		return false
	case ActionPreserveHTML:
		out.ensureBlockSeparator()
		out.writeString(renderNodeAsHTML(n))
		out.writeString("\n\n")
		return false
	}
	return true
}
