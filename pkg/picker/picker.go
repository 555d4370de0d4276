// Package picker implements the search-and-select logic over a catalog:
// the dropdown filter, the table result set, and the interaction state
// machine that links free-text input to a single selected instrument.
//
// Derived data is never cached. Candidates and Results are recomputed from
// (catalog, query, selected id) on every call, so a Picker is fully described
// by its State.
package picker

import (
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/bondpick/pkg/catalog"
)

// State is the interaction state. An empty SelectedID means nothing is
// selected; catalog validation rejects empty identifiers so "" is never a
// real id.
type State struct {
	Query      string
	SelectedID string
}

// HasSelection reports whether an instrument is selected.
func (s State) HasSelection() bool {
	return s.SelectedID != ""
}

// Picker owns the interaction state for one session over a catalog.
// It is not safe for concurrent use; events are applied one at a time.
type Picker struct {
	cat   *catalog.Catalog
	state State
	log   logr.Logger
}

// PickerOption configures a Picker.
type PickerOption func(*Picker)

// WithLogger logs each transition at V(1).
func WithLogger(lgr logr.Logger) PickerOption {
	return func(p *Picker) {
		p.log = lgr
	}
}

// New returns a picker in the initial state ("", none).
func New(cat *catalog.Catalog, opts ...PickerOption) *Picker {
	p := &Picker{cat: cat, log: logr.Discard()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// InputChanged records new input text. Exactly empty text also clears the
// selection; any other text leaves the selection as it was.
func (p *Picker) InputChanged(text string) {
	p.state.Query = text
	if text == "" {
		p.state.SelectedID = ""
	}
	p.log.V(1).Info("transition", "event", "input_changed", "query", p.state.Query, "selected_id", p.state.SelectedID)
}

// OptionSubmitted selects the first instrument whose description equals
// description exactly and replaces the query with that description.
// It returns false and leaves the state untouched when nothing matches.
func (p *Picker) OptionSubmitted(description string) bool {
	in, ok := p.cat.FirstByDescription(description)
	if !ok {
		p.log.V(1).Info("option not in catalog", "event", "option_submitted", "description", description)
		return false
	}
	p.state.SelectedID = in.ID
	p.state.Query = in.Description
	p.log.V(1).Info("transition", "event", "option_submitted", "query", p.state.Query, "selected_id", p.state.SelectedID)
	return true
}

// Clear returns the picker to its initial state.
func (p *Picker) Clear() {
	p.state = State{}
	p.log.V(1).Info("transition", "event", "clear")
}

// State returns the current interaction state.
func (p *Picker) State() State {
	return p.state
}

// Catalog returns the catalog the picker searches.
func (p *Picker) Catalog() *catalog.Catalog {
	return p.cat
}

// Candidates returns the dropdown candidates for the current query.
func (p *Picker) Candidates() []catalog.Instrument {
	return Candidates(p.cat, p.state.Query)
}

// Options returns the dropdown candidates as labelled entries.
func (p *Picker) Options() []Option {
	return Options(p.cat, p.state.Query)
}

// Results returns the table rows for the current selection.
func (p *Picker) Results() []catalog.Instrument {
	return Results(p.cat, p.state.SelectedID)
}

// Selected returns the selected instrument, if any.
func (p *Picker) Selected() (catalog.Instrument, bool) {
	if !p.state.HasSelection() {
		return catalog.Instrument{}, false
	}
	return p.cat.ByID(p.state.SelectedID)
}
