package convert

import (
	"strings"

	"golang.org/x/net/html"
)

// renderNodeAsHTML serializes n and its subtree back to HTML text, used
// for preserve_tags (§3) and the Visitor's PreserveHTML action (§4.8).
// It is a direct serializer over our own Node type rather than a detour
// through golang.org/x/net/html.Node, since our tree has no namespace or
// insertion-mode bookkeeping to carry across.
func renderNodeAsHTML(n *Node) string {
	var sb strings.Builder
	writeNodeHTML(&sb, n)
	return sb.String()
}

func writeNodeHTML(sb *strings.Builder, n *Node) {
	switch n.Type {
	case TextNode:
		sb.WriteString(html.EscapeString(n.Data))
	case CommentNode:
		sb.WriteString("<!--")
		sb.WriteString(n.Data)
		sb.WriteString("-->")
	case ElementNode:
		sb.WriteByte('<')
		sb.WriteString(n.Tag)
		for _, a := range n.Attr {
			sb.WriteByte(' ')
			sb.WriteString(a.Key)
			sb.WriteString(`="`)
			sb.WriteString(html.EscapeString(a.Val))
			sb.WriteByte('"')
		}
		sb.WriteByte('>')
		if isVoid(n.Tag) {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeNodeHTML(sb, c)
		}
		sb.WriteString("</")
		sb.WriteString(n.Tag)
		sb.WriteByte('>')
	case DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeNodeHTML(sb, c)
		}
	}
}
