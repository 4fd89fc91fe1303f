package convert

import (
	"strings"
	"sync/atomic"
)

// NodeType distinguishes the tagged variants of Node.
type NodeType int

const (
	// DocumentNode is the invisible root produced by the parser.
	DocumentNode NodeType = iota
	// ElementNode carries a tag name, attributes, and children.
	ElementNode
	// TextNode carries decoded character data.
	TextNode
	// CommentNode carries the raw comment body (without "<!--"/"-->").
	CommentNode
)

// Attribute is an ordered HTML attribute. Val is empty for boolean
// attributes written without a value (e.g. "disabled").
type Attribute struct {
	Key, Val string
}

// Node is a single element, text run, or comment in the parsed tree.
//
// Tag names are always normalized to lowercase; id is a dense, stable
// identity used as the key into DomContext's side tables. The zero Node
// is not valid; use newNode.
type Node struct {
	Type NodeType
	Tag  string
	Attr []Attribute
	Data string

	id int

	Parent, FirstChild, LastChild, PrevSibling, NextSibling *Node
}

// nextNodeID is process-wide so ids stay dense across calls, but must be
// updated atomically: spec.md §5 guarantees concurrent Document/Convert
// calls never observe shared state, and two goroutines racing on a plain
// int here would be exactly that (grounded on AleutianLocal's
// atomic.Int64 counters in services/trace/graph/lru.go).
var nextNodeID atomic.Int64

func newNode(t NodeType) *Node {
	return &Node{Type: t, id: int(nextNodeID.Add(1))}
}

// AppendChild attaches c as the last child of n, detaching it from any
// previous parent first.
func (n *Node) AppendChild(c *Node) {
	if c.Parent != nil || c.PrevSibling != nil || c.NextSibling != nil {
		c.detach()
	}
	c.Parent = n
	if n.LastChild != nil {
		n.LastChild.NextSibling = c
		c.PrevSibling = n.LastChild
	} else {
		n.FirstChild = c
	}
	n.LastChild = c
}

func (n *Node) detach() {
	if n.Parent != nil {
		if n.Parent.FirstChild == n {
			n.Parent.FirstChild = n.NextSibling
		}
		if n.Parent.LastChild == n {
			n.Parent.LastChild = n.PrevSibling
		}
	}
	if n.PrevSibling != nil {
		n.PrevSibling.NextSibling = n.NextSibling
	}
	if n.NextSibling != nil {
		n.NextSibling.PrevSibling = n.PrevSibling
	}
	n.Parent, n.PrevSibling, n.NextSibling = nil, nil, nil
}

// attr returns the value of the named attribute (case-insensitive key
// match) and whether it was present.
func (n *Node) attr(key string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

func (n *Node) attrOr(key, def string) string {
	if v, ok := n.attr(key); ok {
		return v
	}
	return def
}

// isCustomElement reports whether the tag name contains a hyphen, the
// HTML5 signal for a custom/web-component element name.
func (n *Node) isCustomElement() bool {
	return n.Type == ElementNode && strings.Contains(n.Tag, "-")
}

// children returns the element/text/comment children of n in order.
func (n *Node) children() []*Node {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// firstElementChild returns the first ElementNode child, or nil.
func (n *Node) firstElementChild() *Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == ElementNode {
			return c
		}
	}
	return nil
}

// elementChildren returns only the ElementNode children of n, in order.
func (n *Node) elementChildren() []*Node {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == ElementNode {
			out = append(out, c)
		}
	}
	return out
}
