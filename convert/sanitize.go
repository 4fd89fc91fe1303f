package convert

import (
	"regexp"
	"strings"
)

// scriptStyleRegexp matches <script ...>...</script> and <style ...>...</style>
// elements, including their bodies, case-insensitively. It deliberately does
// not try to be a full HTML parser: sanitizing runs before any parser sees
// the input, precisely to keep `<`/`>` inside literal script/style bodies
// from confusing the tokenizer (§4.1).
var scriptStyleRegexp = regexp.MustCompile(`(?is)<(script|style)\b[^>]*>.*?</\s*` + `(?:script|style)\s*>`)

// jsonLDOpenTag recognizes a <script type="application/ld+json" ...> open
// tag so its body can be preserved verbatim while every other script/style
// body is stripped.
var jsonLDOpenTag = regexp.MustCompile(`(?is)^<script\b[^>]*\btype\s*=\s*(?:"application/ld\+json"|'application/ld\+json')[^>]*>`)

// sanitize strips <script>/<style> element bodies before parsing, except
// that application/ld+json script bodies survive intact so the metadata
// collector can read them later out of the DOM (§4.1, §4.8).
func sanitize(htmlSrc string) string {
	return scriptStyleRegexp.ReplaceAllStringFunc(htmlSrc, func(match string) string {
		if jsonLDOpenTag.MatchString(match) {
			return match
		}
		return stripBody(match)
	})
}

// stripBody replaces a "<tag ...>body</tag>" match with an empty-bodied
// element, keeping the open tag (so attributes like class/lang survive for
// any later consumer) and the matching end tag.
func stripBody(match string) string {
	openEnd := strings.IndexByte(match, '>')
	if openEnd < 0 {
		return match
	}
	closeStart := strings.LastIndexByte(match, '<')
	if closeStart < 0 || closeStart <= openEnd {
		return match
	}
	return match[:openEnd+1] + match[closeStart:]
}
