package convert

import "log/slog"

// Document runs the full conversion pipeline described in spec.md §2 over
// htmlSrc: parse (with repair as needed), walk the tree into Markdown,
// then finalize. images, metadata, and visitor are optional side
// channels; any may be nil. It returns a VisitorError if visitor reported
// one, wrapped so callers can still use the Markdown already produced.
func Document(htmlSrc string, opts *Options, images ImageCollector, metadata *MetadataCollector, visitor Visitor) (string, error) {
	return DocumentWithLogger(htmlSrc, opts, images, metadata, visitor, nil)
}

// DocumentWithLogger is Document plus an optional *slog.Logger for
// per-node debug traces (§4.9). Passing nil is identical to Document;
// the core never creates a logger of its own, so output stays silent
// unless a caller opts in.
func DocumentWithLogger(htmlSrc string, opts *Options, images ImageCollector, metadata *MetadataCollector, visitor Visitor, log *slog.Logger) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return "", err
	}

	doc, dc, err := parseDocument(htmlSrc, opts)
	if err != nil {
		return "", err
	}
	extractMetadata(doc, metadata)

	ctx := Context{
		opts:     opts,
		dom:      dc,
		images:   images,
		metadata: metadata,
		visitor:  visitor,
		log:      log,
	}

	out := newBuffer(len(htmlSrc) + len(htmlSrc)/4)
	walkChildren(doc, out, &ctx, 0)

	result := finalize(out.String())
	if ctx.visitorErr != nil {
		return result, ctx.visitorErr
	}
	return result, nil
}
