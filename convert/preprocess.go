package convert

import (
	"regexp"
	"strings"
)

var crlfRegexp = regexp.MustCompile(`\r\n?`)

// navHintAttrRegexp matches class="..." or role="..." attribute values
// that carry a navigation-ish token, used by the "remove navigation"
// preprocessing toggle (§4.2).
var navHintAttrRegexp func(s string) bool

func init() {
	tokens := make([]string, len(navHintTokens))
	copy(tokens, navHintTokens)
	re := regexp.MustCompile(`(?i)\b(` + strings.Join(tokens, "|") + `)\b`)
	navHintAttrRegexp = re.MatchString
}

// preprocess normalizes line endings and, optionally, folds literal
// newlines inside the raw source into spaces before any parser sees it
// (the `strip_newlines` option, SPEC_FULL §4.11). It does no entity
// decoding of its own: the tokenizer decodes character references in
// text and attribute values.
func preprocess(htmlSrc string, opts *Options) string {
	htmlSrc = crlfRegexp.ReplaceAllString(htmlSrc, "\n")
	if opts != nil && opts.StripNewlines {
		htmlSrc = strings.ReplaceAll(htmlSrc, "\n", " ")
	}
	return htmlSrc
}

// markNavigationForRemoval walks the parsed tree and tags nodes that the
// "remove navigation" toggle should drop: <nav> unconditionally; <header>
// unless nested inside an <article>/<main>/<section>; <footer>/<aside>
// that carry a nav-hint class or role (§4.2). Marked nodes are recorded in
// a set consulted by the walker's drop predicate rather than removed from
// the tree, so the head/JSON-LD metadata pass (extractMetadata) still sees
// them. The walker skips them before any visitor dispatch, so neither the
// visitor nor the heading/link/image collectors see them.
func markNavigationForRemoval(doc *Node) map[*Node]bool {
	dropped := make(map[*Node]bool)
	var walk func(n *Node, insideSemanticContent bool)
	walk = func(n *Node, insideSemanticContent bool) {
		next := insideSemanticContent
		if n.Type == ElementNode {
			switch n.Tag {
			case "nav":
				dropped[n] = true
			case "header":
				if !insideSemanticContent {
					dropped[n] = true
				}
			case "footer", "aside":
				if hasNavHint(n) {
					dropped[n] = true
				}
			}
			if semanticContentAncestors[n.Tag] {
				next = true
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, next)
		}
	}
	walk(doc, false)
	return dropped
}

func hasNavHint(n *Node) bool {
	for _, attrName := range []string{"class", "role"} {
		if v, ok := n.attr(attrName); ok && navHintAttrRegexp(v) {
			return true
		}
	}
	return false
}
