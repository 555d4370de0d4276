// Package formatter renders instruments and dropdown options as plain text
// for non-interactive output.
package formatter

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/bondpick/pkg/catalog"
)

const (
	sepWidth    = 2
	minColWidth = 3
	ellipsis    = "…"
)

// Columns are the result table headers in display order.
var Columns = []string{"SierraId", "Description", "ISIN", "Issuer", "Maturity", "Ccy"}

// TableOptions configures plain table rendering.
type TableOptions struct {
	// TotalWidth caps the rendered width; <= 0 means natural width.
	TotalWidth int
	NoColor    bool
	// EmptyText is printed instead of the table when there are no rows.
	EmptyText   string
	HeaderColor color.Color
}

// Row converts an instrument into table cells ordered like Columns.
func Row(in catalog.Instrument) []string {
	return in.Fields()
}

// Table renders instruments under the Columns header.
func Table(instruments []catalog.Instrument, opts TableOptions) string {
	if len(instruments) == 0 {
		if opts.EmptyText == "" {
			return ""
		}
		return opts.EmptyText + "\n"
	}
	rows := make([][]string, len(instruments))
	for i, in := range instruments {
		rows[i] = Row(in)
	}
	return RenderColumnar(Columns, rows, opts)
}

// RenderColumnar renders rows as aligned columns with a header and a rule.
func RenderColumnar(columns []string, rows [][]string, opts TableOptions) string {
	if len(columns) == 0 {
		return ""
	}
	widths := ColumnWidths(columns, rows, opts.TotalWidth)

	headerStyle := lipgloss.NewStyle().Bold(true)
	if opts.HeaderColor != nil {
		headerStyle = headerStyle.Foreground(opts.HeaderColor)
	}

	var b strings.Builder
	header := renderCells(columns, widths)
	if !opts.NoColor {
		header = headerStyle.Render(header)
	}
	b.WriteString(header + "\n")
	b.WriteString(strings.Repeat("─", totalWidth(widths)) + "\n")
	for _, row := range rows {
		b.WriteString(renderCells(row, widths) + "\n")
	}
	return b.String()
}

func renderCells(values []string, widths []int) string {
	sep := strings.Repeat(" ", sepWidth)
	parts := make([]string, 0, len(widths))
	for i, w := range widths {
		val := ""
		if i < len(values) {
			val = values[i]
		}
		parts = append(parts, padRight(truncate(val, w), w))
	}
	return strings.TrimRight(strings.Join(parts, sep), " ")
}

func totalWidth(widths []int) int {
	total := 0
	for i, w := range widths {
		total += w
		if i < len(widths)-1 {
			total += sepWidth
		}
	}
	return total
}

// ColumnWidths sizes each column to its widest cell. When maxWidth > 0 and the
// natural width does not fit, columns shrink proportionally down to a minimum.
func ColumnWidths(columns []string, rows [][]string, maxWidth int) []int {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = runewidth.StringWidth(col)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	if maxWidth <= 0 {
		return widths
	}

	usable := maxWidth - (len(columns)-1)*sepWidth
	natural := 0
	for _, w := range widths {
		natural += w
	}
	if natural <= usable || usable <= 0 {
		return widths
	}

	for i, w := range widths {
		nw := int(float64(w) / float64(natural) * float64(usable))
		if nw < minColWidth {
			nw = minColWidth
		}
		widths[i] = nw
	}
	// Rounding up to the minimum can overshoot; trim the widest column.
	for {
		sum := 0
		widest := 0
		for i, w := range widths {
			sum += w
			if w > widths[widest] {
				widest = i
			}
		}
		if sum <= usable || widths[widest] <= minColWidth {
			break
		}
		widths[widest]--
	}
	return widths
}

// truncate shortens s to width display cells, ending with an ellipsis when cut.
func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, ellipsis)
}

func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}
