package convert

import "strings"

type tableCell struct {
	text     string
	isHeader bool
	align    string // "", ":---", ":---:", "---:"
}

// handleTable implements §4.6 "Tables".
func handleTable(n *Node, out *buffer, ctx *Context, depth int) {
	if !blockVisitorGate(n, out, ctx, EventElementStart) {
		return
	}

	rows, headerRows, ok := buildTableMatrix(n, ctx, depth)
	if !ok || len(rows) == 0 {
		out.ensureBlockSeparator()
		out.writeString(renderNodeAsHTML(n))
		out.writeString("\n\n")
		return
	}

	md := renderTableMarkdown(rows, headerRows)
	if ctx.InListItem {
		indent := strings.Repeat(ctx.opts.listIndent(), maxInt(0, ctx.ListDepth))
		var sb strings.Builder
		for _, line := range strings.Split(strings.TrimRight(md, "\n"), "\n") {
			sb.WriteString(indent)
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		md = sb.String()
	}

	out.ensureBlockSeparator()
	out.writeString(md)
	out.writeString("\n")
}

// buildTableMatrix walks table's rows (thead/tbody/tfoot or bare tr
// children) into a rectangular matrix of rendered cells. It reports
// ok=false when the table uses rowspan/colspan or a cell contains
// block-level content, triggering the HTML fallback (§4.6).
func buildTableMatrix(table *Node, ctx *Context, depth int) ([][]tableCell, int, bool) {
	var trs []*Node
	var headerTRCount int

	var sawThead bool
	for _, sec := range table.elementChildren() {
		switch sec.Tag {
		case "thead":
			sawThead = true
			for _, tr := range sec.elementChildren() {
				if tr.Tag == "tr" {
					trs = append(trs, tr)
					headerTRCount++
				}
			}
		case "tbody", "tfoot":
			for _, tr := range sec.elementChildren() {
				if tr.Tag == "tr" {
					trs = append(trs, tr)
				}
			}
		case "tr":
			trs = append(trs, sec)
		}
	}
	if len(trs) == 0 {
		return nil, 0, false
	}
	if !sawThead {
		first := trs[0]
		hasTH := false
		for _, c := range first.elementChildren() {
			if c.Tag == "th" {
				hasTH = true
				break
			}
		}
		headerTRCount = 1
		_ = hasTH
	}

	child := ctx.fork()
	child.InTableCell = true

	rows := make([][]tableCell, 0, len(trs))
	maxCols := 0
	for _, tr := range trs {
		var row []tableCell
		for _, cell := range tr.elementChildren() {
			if cell.Tag != "td" && cell.Tag != "th" {
				continue
			}
			if !spanIsTrivial(cell) {
				return nil, 0, false
			}
			if cellHasBlockContent(cell) {
				return nil, 0, false
			}
			cellCtx := child
			cellCtx.CellAllowInlineImages = tagChainAllows(cell, ctx.opts.KeepInlineImagesIn)
			// Ordinary source whitespace is already collapsed to spaces by
			// renderTextNode; any "\n" surviving here is a deliberate
			// br_in_tables hard break and must be preserved verbatim.
			text := strings.TrimSpace(renderChildren(cell, &cellCtx, depth+1))
			align := alignFromAttr(cell)
			row = append(row, tableCell{text: text, isHeader: cell.Tag == "th", align: align})
		}
		if len(row) > maxCols {
			maxCols = len(row)
		}
		rows = append(rows, row)
	}
	for i := range rows {
		for len(rows[i]) < maxCols {
			rows[i] = append(rows[i], tableCell{})
		}
	}
	return rows, headerTRCount, true
}

func spanIsTrivial(cell *Node) bool {
	for _, key := range []string{"rowspan", "colspan"} {
		if v, ok := cell.attr(key); ok {
			v = strings.TrimSpace(v)
			if v != "" && v != "1" {
				return false
			}
		}
	}
	return true
}

// cellHasBlockContent reports whether cell contains a child element the
// Markdown table syntax cannot represent (§4.6).
func cellHasBlockContent(cell *Node) bool {
	for _, c := range cell.elementChildren() {
		if isBlock(c.Tag) {
			return true
		}
	}
	return false
}

func alignFromAttr(cell *Node) string {
	v, ok := cell.attr("align")
	if !ok {
		return ""
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "center":
		return ":---:"
	case "right":
		return "---:"
	case "left":
		return ":---"
	default:
		return ""
	}
}

func renderTableMarkdown(rows [][]tableCell, headerRows int) string {
	if headerRows == 0 {
		headerRows = 1
	}
	if headerRows > len(rows) {
		headerRows = len(rows)
	}
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}

	aligns := make([]string, cols)
	for i := 0; i < headerRows; i++ {
		for c, cell := range rows[i] {
			if cell.align != "" {
				aligns[c] = cell.align
			}
		}
	}

	var sb strings.Builder
	writeRow := func(row []tableCell) {
		sb.WriteString("|")
		for _, cell := range row {
			sb.WriteString(" ")
			sb.WriteString(cell.text)
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}

	for i := 0; i < headerRows; i++ {
		writeRow(rows[i])
	}
	sb.WriteString("|")
	for c := 0; c < cols; c++ {
		a := aligns[c]
		if a == "" {
			a = "---"
		}
		sb.WriteString(" ")
		sb.WriteString(a)
		sb.WriteString(" |")
	}
	sb.WriteString("\n")
	for i := headerRows; i < len(rows); i++ {
		writeRow(rows[i])
	}
	return sb.String()
}
