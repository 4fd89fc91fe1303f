package convert

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// autoCloseOnOpen lists, per open tag, the set of ancestor tags (nearest
// open element first) that an occurrence of that tag implicitly closes.
// This is a pared-down version of the "implied end tags" table the HTML5
// tree construction algorithm encodes in full (§4.3); the fast parser
// only knows the common malformed-document cases, and defers anything
// hairier to the conformant repair parser.
var autoCloseOnOpen = map[string][]string{
	"p":  {"p"},
	"li": {"li"},
	"dt": {"dt", "dd"},
	"dd": {"dt", "dd"},
	"tr": {"tr"},
	"td": {"td", "th"},
	"th": {"td", "th"},
	"option": {"option"},
}

// fastParser is a tokenizer-driven, permissive tree builder. It trades
// HTML5 conformance for speed and simplicity: a handful of auto-close
// rules handle the common malformed-document shapes, but it does not
// implement the full insertion-mode state machine. It fails (returns an
// error) rather than guess when it cannot make local sense of the
// token stream; the caller falls back to the conformant repair parser
// in that case (§4.3).
type fastParser struct {
	z    *html.Tokenizer
	doc  *Node
	open []*Node // stack of open elements, doc excluded
}

func newFastParser(r io.Reader) *fastParser {
	return &fastParser{
		z:   html.NewTokenizer(r),
		doc: newNode(DocumentNode),
	}
}

func (p *fastParser) top() *Node {
	if len(p.open) == 0 {
		return p.doc
	}
	return p.open[len(p.open)-1]
}

func (p *fastParser) push(n *Node) {
	p.top().AppendChild(n)
	if !isVoid(n.Tag) {
		p.open = append(p.open, n)
	}
}

func (p *fastParser) popTo(tag string) bool {
	for i := len(p.open) - 1; i >= 0; i-- {
		if p.open[i].Tag == tag {
			p.open = p.open[:i]
			return true
		}
	}
	return false
}

func (p *fastParser) autoCloseFor(tag string) {
	closeSet := autoCloseOnOpen[tag]
	if len(closeSet) == 0 {
		return
	}
	for len(p.open) > 0 {
		top := p.open[len(p.open)-1].Tag
		closes := false
		for _, t := range closeSet {
			if t == top {
				closes = true
				break
			}
		}
		if !closes {
			return
		}
		p.open = p.open[:len(p.open)-1]
	}
}

// parse runs the permissive tokenizer loop. It returns an error if
// the token stream is too malformed to build a sane tree from (runaway
// unclosed element depth, tokenizer-reported errors other than EOF).
func (p *fastParser) parse() (*Node, error) {
	for {
		tt := p.z.Next()
		switch tt {
		case html.ErrorToken:
			if err := p.z.Err(); err != io.EOF {
				return nil, fmt.Errorf("tokenize: %w", err)
			}
			if len(p.open) > maxUnclosedDepth {
				return nil, fmt.Errorf("unclosed element depth %d exceeds limit", len(p.open))
			}
			return p.doc, nil
		case html.TextToken:
			text := string(p.z.Text())
			if text == "" {
				continue
			}
			n := newNode(TextNode)
			n.Data = text
			p.top().AppendChild(n)
		case html.CommentToken:
			n := newNode(CommentNode)
			n.Data = string(p.z.Text())
			p.top().AppendChild(n)
		case html.DoctypeToken:
			// Doctypes carry no Markdown-relevant information; drop them.
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := p.z.TagName()
			tag := strings.ToLower(string(name))
			if tag == "" {
				return nil, fmt.Errorf("empty start tag")
			}
			if strings.Contains(tag, "-") {
				// Custom element: fast parser defers to repair (§4.3).
				return nil, fmt.Errorf("custom element <%s>: deferring to repair", tag)
			}

			el := newNode(ElementNode)
			el.Tag = tag
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = p.z.TagAttr()
				el.Attr = append(el.Attr, Attribute{Key: string(key), Val: string(val)})
			}

			if tag == "script" || tag == "style" {
				// The tokenizer treats these as rawtext elements: the
				// next token is always the full body as one TextToken,
				// followed by the matching end tag. Bodies are already
				// stripped by the Sanitizer, so this is usually empty.
				p.push(el)
				if p.z.Next() == html.TextToken {
					t := newNode(TextNode)
					t.Data = string(p.z.Text())
					el.AppendChild(t)
				}
				p.popTo(tag)
				continue
			}

			p.autoCloseFor(tag)
			p.push(el)

			if tt == html.SelfClosingTagToken || isVoid(tag) {
				p.popTo(tag)
			}
		case html.EndTagToken:
			name, _ := p.z.TagName()
			tag := strings.ToLower(string(name))
			if !p.popTo(tag) {
				// Stray end tag with no matching open element: ignore,
				// a permissive parser's job, rather than fail.
				continue
			}
		}
	}
}

// maxUnclosedDepth bounds pathological nesting so the fast parser fails
// fast instead of building an unbounded tree for adversarial input.
const maxUnclosedDepth = 5000

// parseFastHTML parses html with the permissive tokenizer-driven
// builder. A custom element makes the parse itself fail (see parse);
// block-in-inline nesting (§4.3) is checked by the caller, parseDocument,
// on the returned tree before DOM-context construction.
func parseFastHTML(htmlSrc string) (*Node, error) {
	fp := newFastParser(strings.NewReader(htmlSrc))
	return fp.parse()
}
