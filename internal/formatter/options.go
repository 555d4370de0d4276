package formatter

import (
	"fmt"
	"strings"

	"github.com/oakwood-commons/bondpick/pkg/picker"
)

// Options renders dropdown candidates one per line:
//
//	S1002  Bund 0% Jun 30  (Germany Fed Rep · 2030-06-30 · DE0001102507)  EUR
//
// An empty list renders opts.EmptyText.
func Options(options []picker.Option, opts TableOptions) string {
	if len(options) == 0 {
		if opts.EmptyText == "" {
			return ""
		}
		return opts.EmptyText + "\n"
	}
	rows := make([][]string, len(options))
	for i, o := range options {
		in := o.Instrument
		rows[i] = []string{
			in.ID,
			o.Label,
			fmt.Sprintf("(%s · %s · %s)", in.Issuer, in.Maturity, in.ISIN),
			in.Currency,
		}
	}
	widths := ColumnWidths([]string{"", "", "", ""}, rows, opts.TotalWidth)
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(renderCells(row, widths) + "\n")
	}
	return b.String()
}
