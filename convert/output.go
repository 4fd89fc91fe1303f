package convert

import "strings"

// buffer is the single growable output buffer every handler appends to
// (§3 "Output buffer"). It is pre-sized by the caller to roughly
// input_len + input_len/4 (§5) and exposes the handful of tail
// inspection/trim operations the global spacing rules need; the
// interior is never rewritten, only appended to or trimmed from the end.
type buffer struct {
	sb strings.Builder
}

func newBuffer(sizeHint int) *buffer {
	b := &buffer{}
	if sizeHint > 0 {
		b.sb.Grow(sizeHint)
	}
	return b
}

func (b *buffer) String() string { return b.sb.String() }

func (b *buffer) Len() int { return b.sb.Len() }

func (b *buffer) writeString(s string) { b.sb.WriteString(s) }

// endsWith reports whether the buffer's tail matches suffix.
func (b *buffer) endsWith(suffix string) bool {
	s := b.sb.String()
	return strings.HasSuffix(s, suffix)
}

// trimTrailingSpacesTabs removes trailing ' '/'\t' runs from the current
// content (but never a trailing newline), rewriting the builder.
func (b *buffer) trimTrailingSpacesTabs() {
	s := b.sb.String()
	trimmed := strings.TrimRight(s, " \t")
	if len(trimmed) == len(s) {
		return
	}
	b.sb.Reset()
	b.sb.WriteString(trimmed)
}

// ensureBlockSeparator implements the "Block spacing" global rule
// (§4.5): before emitting block content when output is non-empty and
// does not already end in a blank line, trim trailing spaces/tabs and
// append the minimum newlines required to reach a blank-line separator.
func (b *buffer) ensureBlockSeparator() {
	if b.Len() == 0 {
		return
	}
	if b.endsWith("\n\n") {
		return
	}
	b.trimTrailingSpacesTabs()
	switch {
	case b.endsWith("\n"):
		b.writeString("\n")
	default:
		b.writeString("\n\n")
	}
}
