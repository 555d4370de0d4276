package picker

import (
	"strings"

	"github.com/oakwood-commons/bondpick/pkg/catalog"
)

// Option is a dropdown entry: the label the user sees and submits, paired
// with the record it stands for.
type Option struct {
	Label      string
	Instrument catalog.Instrument
}

// normalizeQuery lower-cases and trims a raw query.
func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Match reports whether any searchable field of in contains the normalized
// query as a substring. A blank query matches every instrument.
func Match(in catalog.Instrument, query string) bool {
	return matchNormalized(in, normalizeQuery(query))
}

func matchNormalized(in catalog.Instrument, q string) bool {
	if q == "" {
		return true
	}
	for _, field := range in.Fields() {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Candidates returns the instruments matching query, in catalog order.
// The result may be empty; that is a normal state.
func Candidates(cat *catalog.Catalog, query string) []catalog.Instrument {
	q := normalizeQuery(query)
	if q == "" {
		return cat.All()
	}
	out := make([]catalog.Instrument, 0, cat.Len())
	for i := 0; i < cat.Len(); i++ {
		if in := cat.At(i); matchNormalized(in, q) {
			out = append(out, in)
		}
	}
	return out
}

// Options wraps Candidates as labelled dropdown entries.
func Options(cat *catalog.Catalog, query string) []Option {
	cands := Candidates(cat, query)
	out := make([]Option, len(cands))
	for i, in := range cands {
		out[i] = Option{Label: in.Description, Instrument: in}
	}
	return out
}

// Results returns the table rows: the selected instrument alone when
// selectedID is set, otherwise the whole catalog.
func Results(cat *catalog.Catalog, selectedID string) []catalog.Instrument {
	if selectedID == "" {
		return cat.All()
	}
	in, ok := cat.ByID(selectedID)
	if !ok {
		// Unreachable through Picker; a stale id from a caller yields no rows.
		return []catalog.Instrument{}
	}
	return []catalog.Instrument{in}
}
