package convert

// voidElements never have children or a closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// blockTags demand surrounding blank lines; everything else is treated
// as inline-like for spacing purposes (§4.5 "Global rules").
var blockTags = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "main": true,
	"aside": true, "header": true, "footer": true, "nav": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "li": true, "dl": true, "dt": true, "dd": true,
	"blockquote": true, "pre": true, "table": true, "thead": true,
	"tbody": true, "tfoot": true, "tr": true, "hr": true, "form": true,
	"fieldset": true, "figure": true, "figcaption": true, "details": true,
	"summary": true, "address": true, "video": true, "audio": true,
	"iframe": true, "picture": true, "math": true,
}

// inlineAncestorsThatHostBlocks are the inline elements HTML5 permits to
// contain block content without triggering repair (§4.3).
var inlineAncestorsThatHostBlocks = map[string]bool{
	"a": true, "ins": true, "del": true,
}

func isVoid(tag string) bool { return voidElements[tag] }

func isBlock(tag string) bool { return blockTags[tag] }

func isInlineLike(tag string) bool { return !isBlock(tag) }

// navHintTokens are class/role words treated as navigational chrome by
// the preprocessor's "remove navigation" toggle (§4.2). They match as
// whole words ("site-nav" matches "nav", "navbar" does not).
var navHintTokens = []string{"nav", "menu", "breadcrumb", "sidebar", "pagination"}

// semanticContentAncestors shield a <header> from removal when nested
// inside real content (§4.2).
var semanticContentAncestors = map[string]bool{
	"article": true, "main": true, "section": true,
}
