package convert

import "strings"

// finalize implements the Finalizer stage (spec.md §2, §8 properties
// "no trailing whitespace on any line unless it is a hard break" and
// "exactly one terminating newline on non-empty output"): trim trailing
// spaces/tabs from every line that isn't itself a hard break, then
// collapse the document's trailing newlines to exactly one.
func finalize(s string) string {
	if s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = trimLineTrailingWhitespace(line)
	}
	out := strings.TrimRight(strings.Join(lines, "\n"), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

// trimLineTrailingWhitespace trims trailing spaces/tabs from line unless
// it ends in a hard-break marker: a single trailing backslash
// (NewlineBackslash, handleBreak) or exactly two trailing spaces
// (NewlineSpaces, handleBreak/cellHardBreak) — either of which must
// survive untouched or the hard break is lost.
func trimLineTrailingWhitespace(line string) string {
	if strings.HasSuffix(line, "\\") && !strings.HasSuffix(line, "\\\\") {
		return line
	}
	if strings.HasSuffix(line, "  ") && !strings.HasSuffix(line, "   ") {
		return line
	}
	return strings.TrimRight(line, " \t")
}
