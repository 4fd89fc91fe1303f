package convert

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// needsRepair implements the three trigger conditions of §4.3: outright
// parse failure is handled by the caller before this is even reached;
// this checks the other two, which require a built DOM.
func needsRepair(doc *Node) bool {
	return hasCustomElement(doc) || hasBlockInInlineAncestor(doc)
}

func hasCustomElement(n *Node) bool {
	if n.isCustomElement() {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if hasCustomElement(c) {
			return true
		}
	}
	return false
}

// hasBlockInInlineAncestor reports a block-level element nested inside an
// inline ancestor other than <a>/<ins>/<del>, excluding anything inside
// <pre>/<code> where misnesting must not trigger repair (§4.3).
func hasBlockInInlineAncestor(n *Node) bool {
	return walkForMisnest(n, nil)
}

func walkForMisnest(n *Node, inlineAncestor *Node) bool {
	if n.Type == ElementNode {
		if n.Tag == "pre" || n.Tag == "code" {
			return false // contents are exempt, do not recurse further
		}
		if inlineAncestor != nil && isBlock(n.Tag) {
			return true
		}
		nextInline := inlineAncestor
		if isInlineLike(n.Tag) && !inlineAncestorsThatHostBlocks[n.Tag] {
			nextInline = n
		} else if isBlock(n.Tag) {
			nextInline = nil
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walkForMisnest(c, nextInline) {
				return true
			}
		}
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if walkForMisnest(c, inlineAncestor) {
			return true
		}
	}
	return false
}

// repairParse feeds htmlSrc through golang.org/x/net/html's conformant
// HTML5 tree construction algorithm and converts the result directly
// into our own Node representation (§4.3, §4.4). Unlike the fast parser,
// it never bails on a custom element or misnested block content — those
// are exactly the cases repair exists to handle — so the caller must not
// route its output back through the fast parser.
func repairParse(htmlSrc string) (*Node, error) {
	root, err := html.Parse(strings.NewReader(htmlSrc))
	if err != nil {
		return nil, fmt.Errorf("repair parse: %w", err)
	}
	doc := newNode(DocumentNode)
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if converted := convertHTMLNode(c); converted != nil {
			doc.AppendChild(converted)
		}
	}
	return doc, nil
}

// convertHTMLNode converts a single golang.org/x/net/html.Node (and its
// subtree) into our Node representation, dropping doctype nodes (carry
// no Markdown-relevant information) and the document node itself (the
// caller supplies its own root).
func convertHTMLNode(n *html.Node) *Node {
	switch n.Type {
	case html.DoctypeNode, html.DocumentNode:
		return nil
	case html.TextNode:
		t := newNode(TextNode)
		t.Data = n.Data
		return t
	case html.CommentNode:
		c := newNode(CommentNode)
		c.Data = n.Data
		return c
	case html.ElementNode:
		el := newNode(ElementNode)
		el.Tag = strings.ToLower(n.Data)
		for _, a := range n.Attr {
			el.Attr = append(el.Attr, Attribute{Key: a.Key, Val: a.Val})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if converted := convertHTMLNode(c); converted != nil {
				el.AppendChild(converted)
			}
		}
		return el
	default:
		return nil
	}
}
