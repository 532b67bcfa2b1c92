package util

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Column is one fixed-width column of a plain text listing.
type Column struct {
	Title string
	Width int
}

// Cell fits s into width terminal cells, padding or cutting it with "...".
func Cell(s string, width int) string {
	if w := runewidth.StringWidth(s); w <= width {
		return s + strings.Repeat(" ", width-w)
	}
	return runewidth.Truncate(s, width, "...")
}

// Header renders the column titles.
func Header(columns []Column) string {
	titles := make([]string, len(columns))
	for i, c := range columns {
		titles[i] = c.Title
	}
	return Line(columns, titles...)
}

// Line renders one row. Missing cells are blank, extra cells are ignored.
func Line(columns []Column, cells ...string) string {
	parts := make([]string, len(columns))
	for i, c := range columns {
		var text string
		if i < len(cells) {
			text = cells[i]
		}
		parts[i] = Cell(text, c.Width)
	}
	return strings.Join(parts, " ")
}

var sizeUnits = []string{"B", "KiB", "MiB", "GiB", "TiB"}

// HumanSize renders a byte count with at most one decimal, e.g. "1.5 MiB".
func HumanSize(size int64) string {
	if size < 1024 {
		return fmt.Sprintf("%d B", size)
	}
	value := float64(size)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}
	text := strings.TrimSuffix(fmt.Sprintf("%.1f", value), ".0")
	return text + " " + sizeUnits[unit]
}
