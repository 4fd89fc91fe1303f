package convert

import (
	"encoding/base64"

	"github.com/beevik/etree"
)

// handleImage implements §4.6 media: "img produces ![alt](src "title")".
func handleImage(n *Node, out *buffer, ctx *Context) {
	if !inlineVisitorGate(n, out, ctx, EventImage) {
		return
	}
	if ctx.opts.SkipImages {
		return
	}

	src := n.attrOr("src", "")
	alt := n.attrOr("alt", "")
	title := n.attrOr("title", "")
	if title == "" && ctx.opts.DefaultTitle {
		title = alt
	}

	ctx.metadata.addImage(ImageInfo{
		Src: src, Alt: alt, Title: title,
		Width: n.attrOr("width", ""), Height: n.attrOr("height", ""),
	})

	if ctx.InHeading && !ctx.HeadingAllowInlineImages {
		out.writeString(alt)
		return
	}
	if ctx.InTableCell && !ctx.CellAllowInlineImages {
		out.writeString(escapeCellPipes(alt))
		return
	}

	if ctx.images != nil && len(src) > 5 && src[:5] == "data:" {
		ctx.images.RegisterImage(src, whitelistedAttrs(n))
	}

	writeImageMarkdown(out, alt, src, title, ctx.InTableCell)
}

// handleGraphic implements §4.6 media for a bare `<graphic>` element (no
// HTML analogue; carried over from the original's docbook/XML-ish image
// tag): its address comes from whichever of url/href/xlink:href/src is
// present, and its label is alt, falling back to filename; the element's
// text content is not used.
func handleGraphic(n *Node, out *buffer, ctx *Context) {
	if !inlineVisitorGate(n, out, ctx, EventImage) {
		return
	}
	if ctx.opts.SkipImages {
		return
	}

	src := firstAttr(n, "url", "href", "xlink:href", "src")
	alt := firstAttr(n, "alt", "filename")
	title := n.attrOr("title", "")
	if title == "" && ctx.opts.DefaultTitle {
		title = alt
	}

	ctx.metadata.addImage(ImageInfo{
		Src: src, Alt: alt, Title: title,
		Width: n.attrOr("width", ""), Height: n.attrOr("height", ""),
	})

	if ctx.InHeading && !ctx.HeadingAllowInlineImages {
		out.writeString(alt)
		return
	}
	if ctx.InTableCell && !ctx.CellAllowInlineImages {
		out.writeString(escapeCellPipes(alt))
		return
	}

	if ctx.images != nil && len(src) > 5 && src[:5] == "data:" {
		ctx.images.RegisterImage(src, whitelistedAttrs(n))
	}

	writeImageMarkdown(out, alt, src, title, ctx.InTableCell)
}

// firstAttr returns the value of the first of keys present on n, or "".
func firstAttr(n *Node, keys ...string) string {
	for _, k := range keys {
		if v, ok := n.attr(k); ok && v != "" {
			return v
		}
	}
	return ""
}

func writeImageMarkdown(out *buffer, alt, src, title string, inCell bool) {
	out.writeString("![")
	if inCell {
		out.writeString(escapeCellPipes(alt))
	} else {
		out.writeString(alt)
	}
	out.writeString("](")
	out.writeString(src)
	if title != "" {
		out.writeString(` "`)
		out.writeString(title)
		out.writeString(`"`)
	}
	out.writeString(")")
}

// whitelistedAttrs collects the attributes §4.8 allows through to an
// ImageCollector registration: width, height, aria-label, data-*, filename.
func whitelistedAttrs(n *Node) map[string]string {
	out := map[string]string{}
	for _, a := range n.Attr {
		switch {
		case a.Key == "width", a.Key == "height", a.Key == "aria-label", a.Key == "filename":
			out[a.Key] = a.Val
		case len(a.Key) > 5 && a.Key[:5] == "data-":
			out[a.Key] = a.Val
		}
	}
	return out
}

// handleSVG implements §4.6 "svg with no collector produces a data-URL
// image whose payload is the original SVG element serialized and
// base64-encoded". An ImageCollector, if present, is additionally
// notified without changing the emitted Markdown (§4.8).
//
// The subtree is rebuilt as an etree.Document rather than run through
// the HTML preserve-tags serializer: etree gives deterministic
// attribute ordering and well-formed XML escaping, which foreign
// content like SVG needs and html.Render does not guarantee.
func handleSVG(n *Node, out *buffer, ctx *Context) {
	if !inlineVisitorGate(n, out, ctx, EventImage) {
		return
	}
	if ctx.opts.SkipImages {
		return
	}

	doc := etree.NewDocument()
	if root := nodeToEtreeElement(n); root != nil {
		doc.AddChild(root)
	}
	serialized, err := doc.WriteToString()
	if err != nil {
		serialized = renderNodeAsHTML(n)
	}
	payload := base64.StdEncoding.EncodeToString([]byte(serialized))
	dataURL := "data:image/svg+xml;base64," + payload

	if ctx.images != nil {
		ctx.images.RegisterImage(dataURL, whitelistedAttrs(n))
	}

	if ctx.InHeading && !ctx.HeadingAllowInlineImages {
		return
	}
	if ctx.InTableCell && !ctx.CellAllowInlineImages {
		return
	}
	writeImageMarkdown(out, "", dataURL, "", ctx.InTableCell)
}

// nodeToEtreeElement converts an ElementNode (and its element/text
// descendants) into an etree.Element, dropping comments: a data-URL
// payload has no use for them.
func nodeToEtreeElement(n *Node) *etree.Element {
	if n.Type != ElementNode {
		return nil
	}
	el := etree.NewElement(n.Tag)
	for _, a := range n.Attr {
		el.CreateAttr(a.Key, a.Val)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case ElementNode:
			if child := nodeToEtreeElement(c); child != nil {
				el.AddChild(child)
			}
		case TextNode:
			el.CreateText(c.Data)
		}
	}
	return el
}

// handleMediaLink implements §4.6's video/audio/iframe rule: "produce a
// plain link to their src (or first <source src> descendant)".
func handleMediaLink(n *Node, out *buffer, ctx *Context) {
	if !blockVisitorGate(n, out, ctx, EventElementStart) {
		return
	}

	src, ok := n.attr("src")
	if !ok || src == "" {
		var find func(p *Node)
		find = func(p *Node) {
			for c := p.FirstChild; c != nil && src == ""; c = c.NextSibling {
				if c.Type == ElementNode && c.Tag == "source" {
					src = c.attrOr("src", "")
				}
				find(c)
			}
		}
		find(n)
	}
	if src == "" {
		return
	}

	out.ensureBlockSeparator()
	out.writeString("<")
	out.writeString(src)
	out.writeString(">")
	out.writeString("\n\n")
}

// handlePicture renders only the <img> fallback of a <picture>, ignoring
// its <source> candidates: a Markdown image has no notion of responsive
// sources (§4.6).
func handlePicture(n *Node, out *buffer, ctx *Context, depth int) {
	if !blockVisitorGate(n, out, ctx, EventElementStart) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == ElementNode && c.Tag == "img" {
			out.ensureBlockSeparator()
			handleImage(c, out, ctx)
			out.writeString("\n\n")
			return
		}
	}
}

// handleMath implements §4.6: "math emits the text content escaped,
// prefixed with an HTML comment carrying the serialized MathML".
func handleMath(n *Node, out *buffer, ctx *Context) {
	if !blockVisitorGate(n, out, ctx, EventElementStart) {
		return
	}
	mathml := renderNodeAsHTML(n)
	text := ctx.dom.textContent(n)

	out.ensureBlockSeparator()
	out.writeString("<!--")
	out.writeString(mathml)
	out.writeString("-->")
	out.writeString(escapeText(text, ctx.opts, false))
	out.writeString("\n\n")
}
