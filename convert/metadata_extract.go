package convert

import "strings"

// extractMetadata harvests head-level data and JSON-LD script bodies
// directly from the parsed tree (§4.6 "head, script, style... harvested
// by collectors elsewhere in the pipeline, not by the walker"; §4.8;
// SPEC_FULL §4.11 JSON-LD passthrough). It is a no-op when metadata is
// nil or nobody asked for what it would gather.
func extractMetadata(doc *Node, metadata *MetadataCollector) {
	if metadata == nil || (!metadata.WantsHead && !metadata.WantsJSONLD) {
		return
	}

	var htmlEl, headEl, bodyEl *Node
	for _, c := range doc.elementChildren() {
		if c.Tag == "html" {
			htmlEl = c
		}
	}
	container := doc
	if htmlEl != nil {
		container = htmlEl
	}
	for _, c := range container.elementChildren() {
		switch c.Tag {
		case "head":
			headEl = c
		case "body":
			bodyEl = c
		}
	}

	if metadata.WantsHead {
		if htmlEl != nil {
			metadata.Head.HTMLLang = htmlEl.attrOr("lang", "")
			metadata.Head.HTMLDir = htmlEl.attrOr("dir", "")
		}
		if bodyEl != nil {
			metadata.Head.BodyLang = bodyEl.attrOr("lang", "")
			metadata.Head.BodyDir = bodyEl.attrOr("dir", "")
		}
		if headEl != nil {
			extractHeadElements(headEl, metadata)
		}
	}

	if metadata.WantsJSONLD {
		// Scan the whole document rather than only head/body: a bare
		// HTML fragment (the common case for a library caller) has
		// neither, and a JSON-LD script can legally sit anywhere.
		collectJSONLD(doc, metadata)
	}
}

func extractHeadElements(headEl *Node, metadata *MetadataCollector) {
	metadata.Head.Meta = make(map[string]string)
	for _, c := range headEl.elementChildren() {
		switch c.Tag {
		case "title":
			metadata.Head.Title = strings.TrimSpace(nodeText(c))
		case "link":
			if rel, ok := c.attr("rel"); ok && strings.EqualFold(rel, "canonical") {
				metadata.Head.Canonical = c.attrOr("href", "")
			}
		case "base":
			metadata.Head.Base = c.attrOr("href", "")
		case "meta":
			key, ok := c.attr("name")
			if !ok {
				key, ok = c.attr("property")
			}
			if !ok {
				continue
			}
			if content, ok := c.attr("content"); ok {
				metadata.Head.Meta[key] = content
			}
		}
	}
}

func collectJSONLD(root *Node, metadata *MetadataCollector) {
	for _, c := range root.elementChildren() {
		if c.Tag == "script" {
			if t, ok := c.attr("type"); ok && strings.EqualFold(t, "application/ld+json") {
				metadata.addJSONLD(nodeText(c))
			}
		}
		collectJSONLD(c, metadata)
	}
}

func nodeText(n *Node) string {
	var sb strings.Builder
	collectText(n, &sb)
	return sb.String()
}
