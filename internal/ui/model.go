// Package ui is the interactive bond picker: a search input with a dropdown of
// matching instruments above the inventory table.
package ui

import (
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/bondpick/internal/config"
	"github.com/oakwood-commons/bondpick/internal/ui/table"
	"github.com/oakwood-commons/bondpick/pkg/catalog"
	"github.com/oakwood-commons/bondpick/pkg/picker"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
)

type focusArea int

const (
	focusInput focusArea = iota
	focusResults
)

// searchDebounceMsg is delivered after the debounce delay. Only the message
// whose ID matches the latest keystroke refreshes the dropdown.
type searchDebounceMsg struct {
	ID    int
	Query string
}

func debouncedSearch(id int, query string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return searchDebounceMsg{ID: id, Query: query}
	})
}

// Model is the Bubble Tea model of the picker. All interaction state lives in
// the wrapped picker.Picker; the model only tracks focus and widget state.
type Model struct {
	picker *picker.Picker
	cfg    config.Config
	theme  Theme
	styles styles
	log    logr.Logger

	NoColor bool

	input    textinput.Model
	dropdown *table.Model[picker.Option]
	results  *table.Model[catalog.Instrument]

	focus        focusArea
	dropdownOpen bool

	debounce     time.Duration
	debounceID   int
	settledQuery string

	width     int
	height    int
	fixedSize bool
	quitting  bool
}

// ModelOption customizes a Model at construction.
type ModelOption func(*Model)

// WithLogger routes picker transition logs to lgr.
func WithLogger(lgr logr.Logger) ModelOption {
	return func(m *Model) {
		m.log = lgr
	}
}

// WithNoColor disables all styling.
func WithNoColor(noColor bool) ModelOption {
	return func(m *Model) {
		m.NoColor = noColor
	}
}

// WithSize sets the initial frame size.
func WithSize(width, height int) ModelOption {
	return func(m *Model) {
		if width > 0 {
			m.width = width
		}
		if height > 0 {
			m.height = height
		}
	}
}

// WithDebounce overrides ui.debounce_ms.
func WithDebounce(d time.Duration) ModelOption {
	return func(m *Model) {
		m.debounce = d
	}
}

// NewModel builds a picker model over cat in its initial state: empty query,
// no selection, input focused, dropdown closed.
func NewModel(cat *catalog.Catalog, cfg config.Config, opts ...ModelOption) *Model {
	m := &Model{
		cfg:      cfg,
		log:      logr.Discard(),
		NoColor:  cfg.UI.NoColor,
		debounce: time.Duration(cfg.UI.DebounceMs) * time.Millisecond,
		width:    defaultWidth,
		height:   defaultHeight,
		focus:    focusInput,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.picker = picker.New(cat, picker.WithLogger(m.log))

	m.input = textinput.New()
	m.input.Prompt = "⌕ "
	m.input.Placeholder = cfg.UI.Placeholder
	m.input.Focus()

	m.dropdown = table.NewModel(
		[]table.Column{
			{Title: "Id"}, {Title: "Description"}, {Title: "Issuer"},
			{Title: "Maturity"}, {Title: "ISIN"}, {Title: "Ccy"},
		},
		func(o picker.Option) table.Row {
			in := o.Instrument
			return table.Row{in.ID, o.Label, in.Issuer, in.Maturity, in.ISIN, in.Currency}
		},
		func(o picker.Option, q string) bool { return picker.Match(o.Instrument, q) },
	)
	m.dropdown.SetEmptyText(cfg.UI.EmptyDropdown)
	m.dropdown.SetRows(picker.Options(cat, ""))

	m.results = table.NewModel(
		[]table.Column{
			{Title: "SierraId"}, {Title: "Description"}, {Title: "ISIN"},
			{Title: "Issuer"}, {Title: "Maturity"}, {Title: "Ccy"},
		},
		func(in catalog.Instrument) table.Row { return table.Row(in.Fields()) },
		nil,
	)
	m.results.SetEmptyText(cfg.UI.EmptyTable)
	m.results.Blur()

	m.ApplyColorScheme()
	m.syncResults()
	m.applyLayout()
	return m
}

// ApplyColorScheme rebuilds styles from the configured theme and NoColor.
func (m *Model) ApplyColorScheme() {
	m.theme = ThemeFromConfig(m.cfg.UI.Theme)
	m.styles = newStyles(m.theme, m.NoColor)
	m.dropdown.SetNoColor(m.NoColor)
	m.dropdown.SetMutedColor(m.theme.Muted)
	m.results.SetNoColor(m.NoColor)
	m.results.SetMutedColor(m.theme.Muted)
	m.dropdown.SetColors(m.theme.HeaderFG, m.theme.HeaderBG, m.theme.SelectedFG, m.theme.SelectedBG)
	m.results.SetColors(m.theme.HeaderFG, m.theme.HeaderBG, m.theme.SelectedFG, m.theme.SelectedBG)
}

// State returns the current interaction state.
func (m *Model) State() picker.State {
	return m.picker.State()
}

// Picker exposes the underlying state machine.
func (m *Model) Picker() *picker.Picker {
	return m.picker
}

// DropdownOpen reports whether the candidate list is visible.
func (m *Model) DropdownOpen() bool {
	return m.dropdownOpen && m.focus == focusInput
}

// DropdownRows returns the candidates currently listed in the dropdown.
func (m *Model) DropdownRows() []picker.Option {
	return m.dropdown.Rows()
}

// ResultRows returns the rows of the inventory table.
func (m *Model) ResultRows() []catalog.Instrument {
	return m.results.Rows()
}

// InputFocused reports whether keystrokes edit the query.
func (m *Model) InputFocused() bool {
	return m.focus == focusInput
}

// Quitting reports whether the program has been asked to exit.
func (m *Model) Quitting() bool {
	return m.quitting
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case searchDebounceMsg:
		if msg.ID == m.debounceID && msg.Query == m.picker.State().Query {
			m.refreshDropdown(msg.Query)
		}
		return m, nil

	case tea.WindowSizeMsg:
		if m.fixedSize {
			return m, nil
		}
		m.width = msg.Width
		m.height = msg.Height
		m.applyLayout()
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.QuitAlways):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Clear):
		m.clear()
		return m, nil
	case key.Matches(msg, keys.Focus):
		return m, m.toggleFocus()
	}

	if m.focus == focusResults {
		return m.handleResultsKey(msg)
	}
	return m.handleInputKey(msg)
}

func (m *Model) handleInputKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Down):
		if !m.dropdownOpen {
			m.openDropdown()
			return m, nil
		}
		m.dropdown.MoveDown(1)
		return m, nil
	case key.Matches(msg, keys.Up):
		if m.dropdownOpen {
			m.dropdown.MoveUp(1)
		}
		return m, nil
	case key.Matches(msg, keys.Submit):
		m.submit()
		return m, nil
	case key.Matches(msg, keys.Back):
		if m.dropdownOpen {
			m.dropdownOpen = false
			return m, nil
		}
		return m, m.setFocus(focusResults)
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		return m, tea.Batch(cmd, m.inputChanged(after))
	}
	return m, cmd
}

func (m *Model) handleResultsKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Search):
		return m, m.setFocus(focusInput)
	case key.Matches(msg, keys.Up):
		m.results.MoveUp(1)
	case key.Matches(msg, keys.Down):
		m.results.MoveDown(1)
	}
	return m, nil
}

// inputChanged forwards the edited text to the picker. Results follow at once;
// the dropdown rows follow after the debounce delay.
func (m *Model) inputChanged(text string) tea.Cmd {
	m.picker.InputChanged(text)
	m.syncResults()
	m.dropdownOpen = true
	m.debounceID++
	if m.debounce <= 0 {
		m.refreshDropdown(text)
		return nil
	}
	return debouncedSearch(m.debounceID, text, m.debounce)
}

func (m *Model) submit() {
	if !m.dropdownOpen {
		return
	}
	// Rows may lag the query while a debounce is pending.
	if m.settledQuery != m.picker.State().Query {
		m.refreshDropdown(m.picker.State().Query)
	}
	row := m.dropdown.SelectedRow()
	if row == nil {
		return
	}
	if !m.picker.OptionSubmitted(row.Label) {
		return
	}
	query := m.picker.State().Query
	m.input.SetValue(query)
	m.input.CursorEnd()
	m.debounceID++
	m.refreshDropdown(query)
	m.dropdownOpen = false
	m.syncResults()
}

func (m *Model) clear() {
	m.picker.Clear()
	m.input.SetValue("")
	m.debounceID++
	m.refreshDropdown("")
	m.dropdownOpen = false
	m.syncResults()
}

func (m *Model) openDropdown() {
	m.refreshDropdown(m.picker.State().Query)
	m.dropdownOpen = true
}

func (m *Model) refreshDropdown(query string) {
	m.settledQuery = query
	m.dropdown.SetFilter(query)
	m.dropdown.SetCursor(0)
}

func (m *Model) syncResults() {
	m.results.SetRows(m.picker.Results())
	if len(m.results.Rows()) > 0 && m.results.Cursor() < 0 {
		m.results.SetCursor(0)
	}
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == focusInput {
		return m.setFocus(focusResults)
	}
	return m.setFocus(focusInput)
}

func (m *Model) setFocus(f focusArea) tea.Cmd {
	m.focus = f
	if f == focusInput {
		m.results.Blur()
		return m.input.Focus()
	}
	m.dropdownOpen = false
	m.input.Blur()
	m.results.Focus()
	return nil
}
