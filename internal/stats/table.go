package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// formatTable lays out headers and rows in space-separated columns sized to
// the widest cell. Columns in rightAlign are padded on the left.
func formatTable(headers []string, rows [][]string, rightAlign map[int]bool) []string {
	all := make([][]string, 0, len(rows)+1)
	if len(headers) > 0 {
		all = append(all, headers)
	}
	all = append(all, rows...)

	var widths []int
	for _, row := range all {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], displayWidth(cell))
		}
	}
	if len(widths) == 0 {
		return nil
	}

	lines := make([]string, len(all))
	cells := make([]string, len(widths))
	for r, row := range all {
		for i, w := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if rightAlign[i] {
				cells[i] = runewidth.FillLeft(cell, w)
			} else {
				cells[i] = runewidth.FillRight(cell, w)
			}
		}
		lines[r] = strings.Join(cells, " ")
	}
	return lines
}

func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}
