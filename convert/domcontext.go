package convert

import "strings"

// nodeInfo is the precomputed, lazily-extended per-node record (§3,
// §4.4): tag normalization and the inline/block flags are computed once
// at construction; the four sibling predicates are computed on first
// read and cached, since most nodes never need them.
type nodeInfo struct {
	tag        string
	isInline   bool
	isBlock    bool
	siblingIdx int

	prevInlineComputed bool
	prevInlineLike     *Node

	nextInlineComputed bool
	nextInlineLike     *Node

	nextNonWSComputed bool
	nextNonWSTag      *Node

	nextTextWSComputed bool
	nextTextWSOnly     bool
}

// DomContext is the read-only sidecar built once over a parsed tree
// (§3, §4.4). Every node appears exactly once; predicate fields are
// computed on first access and never invalidated, since the DOM is
// immutable once parsed (§3 invariant).
type DomContext struct {
	info    map[*Node]*nodeInfo
	texts   *textCache
	dropped map[*Node]bool
}

// buildDomContext performs the single pass over doc described in §4.4,
// populating parent/child/sibling bookkeeping implicitly through the
// Node tree's own pointers and precomputing the normalized-tag/
// inline-block flags eagerly while leaving the sibling predicates lazy.
func buildDomContext(doc *Node, dropped map[*Node]bool) *DomContext {
	dc := &DomContext{
		info:    make(map[*Node]*nodeInfo),
		texts:   newTextCache(textCacheCapacity),
		dropped: dropped,
	}
	var walk func(n *Node)
	walk = func(n *Node) {
		idx := 0
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			tag := c.Tag
			if c.Type != ElementNode {
				tag = ""
			} else {
				tag = strings.ToLower(tag)
				c.Tag = tag
			}
			dc.info[c] = &nodeInfo{
				tag:        tag,
				isInline:   c.Type == ElementNode && isInlineLike(tag),
				isBlock:    c.Type == ElementNode && isBlock(tag),
				siblingIdx: idx,
			}
			idx++
			walk(c)
		}
	}
	walk(doc)
	return dc
}

func (dc *DomContext) infoFor(n *Node) *nodeInfo {
	if ni, ok := dc.info[n]; ok {
		return ni
	}
	// Root/document node or a node created after construction (visitor
	// Custom output does not reenter the DOM): synthesize a transient
	// record so callers never need a nil check.
	return &nodeInfo{isBlock: true}
}

// isDropped reports whether n was marked for removal by the navigation
// preprocessing pass (§4.2).
func (dc *DomContext) isDropped(n *Node) bool {
	return dc.dropped != nil && dc.dropped[n]
}

// isWhitespaceOnly reports whether a text node's data is entirely ASCII
// whitespace.
func isWhitespaceOnly(s string) bool {
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
		default:
			return false
		}
	}
	return true
}

// prevSiblingSkippingDropped returns n's previous sibling, skipping over
// any siblings marked dropped by preprocessing.
func (dc *DomContext) prevSiblingSkippingDropped(n *Node) *Node {
	for p := n.PrevSibling; p != nil; p = p.PrevSibling {
		if !dc.isDropped(p) {
			return p
		}
	}
	return nil
}

// nextSiblingSkippingDropped returns n's next sibling, skipping over any
// siblings marked dropped by preprocessing.
func (dc *DomContext) nextSiblingSkippingDropped(n *Node) *Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if !dc.isDropped(s) {
			return s
		}
	}
	return nil
}

// prevInlineLike returns n's immediately preceding sibling (skipping
// dropped ones) when it is inline-like (an inline element or a text
// node), or nil otherwise; earlier siblings are not searched. Lazily
// computed and cached per §4.4.
func (dc *DomContext) prevInlineLike(n *Node) *Node {
	ni := dc.infoFor(n)
	if ni.prevInlineComputed {
		return ni.prevInlineLike
	}
	ni.prevInlineComputed = true
	for p := dc.prevSiblingSkippingDropped(n); p != nil; p = dc.prevSiblingSkippingDropped(p) {
		if p.Type == TextNode || (p.Type == ElementNode && isInlineLike(p.Tag)) {
			ni.prevInlineLike = p
			return p
		}
		break
	}
	return nil
}

// nextInlineLike mirrors prevInlineLike for the following sibling.
func (dc *DomContext) nextInlineLike(n *Node) *Node {
	ni := dc.infoFor(n)
	if ni.nextInlineComputed {
		return ni.nextInlineLike
	}
	ni.nextInlineComputed = true
	if s := dc.nextSiblingSkippingDropped(n); s != nil {
		if s.Type == TextNode || (s.Type == ElementNode && isInlineLike(s.Tag)) {
			ni.nextInlineLike = s
		}
	}
	return ni.nextInlineLike
}

// nextNonWhitespaceTag returns the next sibling that is either a
// non-whitespace-only text node or an element, skipping whitespace-only
// text nodes in between.
func (dc *DomContext) nextNonWhitespaceTag(n *Node) *Node {
	ni := dc.infoFor(n)
	if ni.nextNonWSComputed {
		return ni.nextNonWSTag
	}
	ni.nextNonWSComputed = true
	for s := dc.nextSiblingSkippingDropped(n); s != nil; s = dc.nextSiblingSkippingDropped(s) {
		if s.Type == TextNode && isWhitespaceOnly(s.Data) {
			continue
		}
		ni.nextNonWSTag = s
		break
	}
	return ni.nextNonWSTag
}

// nextTextIsWhitespaceOnly reports whether n's immediately following
// sibling is a text node consisting entirely of whitespace.
func (dc *DomContext) nextTextIsWhitespaceOnly(n *Node) bool {
	ni := dc.infoFor(n)
	if ni.nextTextWSComputed {
		return ni.nextTextWSOnly
	}
	ni.nextTextWSComputed = true
	if s := dc.nextSiblingSkippingDropped(n); s != nil && s.Type == TextNode {
		ni.nextTextWSOnly = isWhitespaceOnly(s.Data)
	}
	return ni.nextTextWSOnly
}

// textContent recursively concatenates decoded text under n, memoized in
// the fixed-capacity LRU (§4.4).
func (dc *DomContext) textContent(n *Node) string {
	if cached, ok := dc.texts.get(n.id); ok {
		return cached
	}
	var sb strings.Builder
	collectText(n, &sb)
	s := sb.String()
	dc.texts.set(n.id, s)
	return s
}

func collectText(n *Node, sb *strings.Builder) {
	switch n.Type {
	case TextNode:
		sb.WriteString(n.Data)
	case ElementNode, DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collectText(c, sb)
		}
	}
}
