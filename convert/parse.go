package convert

// parseDocument runs the full ingestion pipeline: Sanitizer, Preprocessor,
// Parser+Repair, DOM Context construction (§4.1-§4.4). The fast parser is
// tried first; if it fails outright or the resulting tree trips one of
// the repair trigger conditions (§4.3), the conformant parser rebuilds
// the tree instead. A conformant-parse failure is the only case that
// surfaces as a ParseError, since it only ever sees well-formed retries
// of what HTML5 tree construction already accepts.
func parseDocument(htmlSrc string, opts *Options) (*Node, *DomContext, error) {
	clean := sanitize(htmlSrc)
	pre := preprocess(clean, opts)

	doc, err := parseFastHTML(pre)
	if err != nil || (doc != nil && needsRepair(doc)) {
		doc, err = repairParse(pre)
		if err != nil {
			return nil, nil, &ParseError{Stage: "repair", Err: err}
		}
	}

	var dropped map[*Node]bool
	if opts != nil && opts.Preprocessing.Enabled && opts.Preprocessing.RemoveNavigation {
		dropped = markNavigationForRemoval(doc)
	}

	dc := buildDomContext(doc, dropped)
	return doc, dc, nil
}
