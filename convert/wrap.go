package convert

import "strings"

// wrapText implements the supplemented --wrap hard line wrapping feature:
// greedy word wrap at width columns, breaking only at whitespace and
// never inside an inline code span or a Markdown link's label+destination.
func wrapText(s string, width int) string {
	if width <= 0 {
		width = 80
	}
	tokens := wrapTokens(s)
	if len(tokens) == 0 {
		return s
	}

	var lines []string
	var cur strings.Builder
	curLen := 0
	for _, tok := range tokens {
		tokLen := len([]rune(tok))
		switch {
		case curLen == 0:
			cur.WriteString(tok)
			curLen = tokLen
		case curLen+1+tokLen > width:
			lines = append(lines, cur.String())
			cur.Reset()
			cur.WriteString(tok)
			curLen = tokLen
		default:
			cur.WriteString(" ")
			cur.WriteString(tok)
			curLen += 1 + tokLen
		}
	}
	if curLen > 0 {
		lines = append(lines, cur.String())
	}
	return strings.Join(lines, "\n")
}

// wrapTokens splits s on whitespace, but keeps a backtick-delimited code
// span or a "[label](destination)" link construct as a single atomic
// token so wrapping never breaks inside either.
func wrapTokens(s string) []string {
	runes := []rune(s)
	n := len(runes)
	var tokens []string
	i := 0
	for i < n {
		for i < n && runes[i] == ' ' {
			i++
		}
		if i >= n {
			break
		}
		start := i

		switch {
		case runes[i] == '`':
			i = scanCodeSpan(runes, i)
		case runes[i] == '[':
			i = scanLinkConstruct(runes, i)
		default:
			for i < n && runes[i] != ' ' && runes[i] != '`' && runes[i] != '[' {
				i++
			}
		}
		if i == start {
			i++
		}
		tokens = append(tokens, string(runes[start:i]))
	}
	return tokens
}

func scanCodeSpan(runes []rune, i int) int {
	n := len(runes)
	j := i
	for j < n && runes[j] == '`' {
		j++
	}
	tickLen := j - i
	end := j
	for end < n {
		if runes[end] != '`' {
			end++
			continue
		}
		k := end
		for k < n && runes[k] == '`' {
			k++
		}
		if k-end == tickLen {
			return k
		}
		end = k
	}
	return n
}

func scanLinkConstruct(runes []rune, i int) int {
	n := len(runes)
	depth := 1
	j := i + 1
	for j < n && depth > 0 {
		switch runes[j] {
		case '[':
			depth++
		case ']':
			depth--
		}
		j++
	}
	if j >= n || runes[j] != '(' {
		return j
	}
	depth2 := 1
	k := j + 1
	for k < n && depth2 > 0 {
		switch runes[k] {
		case '(':
			depth2++
		case ')':
			depth2--
		}
		k++
	}
	return k
}
