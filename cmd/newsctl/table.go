package main

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// maxCellWidth bounds every column but the last; longer cells are
// truncated with "…".
const maxCellWidth = 60

// renderTable writes header and rows as an aligned text table. Widths are
// measured in terminal cells so CJK titles line up.
func renderTable(w io.Writer, header []string, rows [][]string) error {
	widths := make([]int, len(header))
	cells := make([][]string, 0, len(rows)+1)
	cells = append(cells, header)
	for _, r := range rows {
		row := make([]string, len(header))
		for i := range header {
			if i >= len(r) {
				continue
			}
			row[i] = clean(r[i])
			if i < len(header)-1 {
				row[i] = runewidth.Truncate(row[i], maxCellWidth, "…")
			}
		}
		cells = append(cells, row)
	}
	for _, row := range cells {
		for i, c := range row {
			if cw := runewidth.StringWidth(c); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	var sb strings.Builder
	for n, row := range cells {
		writeRow(&sb, row, widths)
		if n == 0 {
			sep := make([]string, len(widths))
			for i, cw := range widths {
				sep[i] = strings.Repeat("-", cw)
			}
			writeRow(&sb, sep, widths)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeRow(sb *strings.Builder, row []string, widths []int) {
	for i, c := range row {
		if i > 0 {
			sb.WriteString("  ")
		}
		if i == len(row)-1 {
			sb.WriteString(c)
			continue
		}
		sb.WriteString(runewidth.FillRight(c, widths[i]))
	}
	sb.WriteString("\n")
}

// clean collapses whitespace so a cell stays on one line.
func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
