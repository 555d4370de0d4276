package table

import (
	"fmt"
	"image/color"
	"strings"

	bubtable "charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/bondpick/internal/formatter"
)

// Re-export common table types so callers can construct columns/rows without
// importing bubbles directly.
type Column = bubtable.Column
type Row = bubtable.Row

// Model is a generic table component over row values of type V. It wraps the
// bubbles table and adds filtering, an empty-state line and theme colors.
type Model[V any] struct {
	table    bubtable.Model
	styles   bubtable.Styles
	rows     []V
	filter   string
	filtered []V
	columns  []Column

	toRow func(V) Row
	match func(V, string) bool

	emptyText string

	width   int
	height  int
	focused bool
	noColor bool

	headerFG   color.Color
	headerBG   color.Color
	selectedFG color.Color
	selectedBG color.Color
	mutedFG    color.Color
}

// NewModel creates a new generic table model.
//
//	columns: column titles; widths are recomputed from content on every update
//	toRow:   converts a value to its cells
//	match:   reports whether a value passes the filter text; nil disables filtering
func NewModel[V any](
	columns []Column,
	toRow func(V) Row,
	match func(V, string) bool,
) *Model[V] {
	t := bubtable.New(
		bubtable.WithColumns(columns),
		bubtable.WithFocused(true),
		bubtable.WithHeight(5),
		bubtable.WithWidth(80),
	)

	s := bubtable.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Bold(true).
		Align(lipgloss.Left).
		PaddingLeft(0).
		PaddingRight(1)
	s.Selected = s.Selected.
		PaddingLeft(0).
		PaddingRight(0)
	s.Cell = lipgloss.NewStyle().
		Align(lipgloss.Left).
		PaddingLeft(0).
		PaddingRight(1)
	t.SetStyles(s)

	return &Model[V]{
		table:    t,
		styles:   s,
		rows:     []V{},
		filtered: []V{},
		columns:  columns,
		toRow:    toRow,
		match:    match,
		width:    80,
		height:   10,
		focused:  true,
	}
}

// SetRows replaces the row data and reapplies the filter.
func (m *Model[V]) SetRows(rows []V) {
	m.rows = rows
	m.applyFilter()
}

// SetColumns updates the column titles.
func (m *Model[V]) SetColumns(columns []Column) {
	m.columns = columns
	m.resizeColumns()
	m.applyColorScheme()
}

// Rows returns the rows that pass the current filter.
func (m *Model[V]) Rows() []V {
	return m.filtered
}

// AllRows returns all unfiltered rows.
func (m *Model[V]) AllRows() []V {
	return m.rows
}

// SetFilter sets the filter text and reapplies filtering.
func (m *Model[V]) SetFilter(filter string) {
	m.filter = filter
	m.applyFilter()
}

// Filter returns the current filter text.
func (m *Model[V]) Filter() string {
	return m.filter
}

// ClearFilter removes the filter and shows all rows.
func (m *Model[V]) ClearFilter() {
	m.filter = ""
	m.applyFilter()
}

// SetEmptyText sets the line rendered below the header when no rows pass.
func (m *Model[V]) SetEmptyText(text string) {
	m.emptyText = text
}

// EmptyText returns the empty-state line.
func (m *Model[V]) EmptyText() string {
	return m.emptyText
}

func (m *Model[V]) applyFilter() {
	if m.match == nil {
		m.filtered = m.rows
	} else {
		m.filtered = make([]V, 0, len(m.rows))
		for _, row := range m.rows {
			if m.match(row, m.filter) {
				m.filtered = append(m.filtered, row)
			}
		}
	}

	tableRows := make([]Row, len(m.filtered))
	for i, row := range m.filtered {
		tableRows[i] = m.toRow(row)
	}
	m.table.SetRows(tableRows)
	m.resizeColumns()

	if len(m.filtered) > 0 && m.Cursor() >= len(m.filtered) {
		m.SetCursor(0)
	}
}

// resizeColumns sizes columns to their content within the current width.
func (m *Model[V]) resizeColumns() {
	if len(m.columns) == 0 {
		return
	}
	titles := make([]string, len(m.columns))
	for i, c := range m.columns {
		titles[i] = c.Title
	}
	cells := make([][]string, len(m.filtered))
	for i, v := range m.filtered {
		cells[i] = m.toRow(v)
	}
	// Each cell carries one column of right padding.
	widths := formatter.ColumnWidths(titles, cells, m.width-len(m.columns))
	cols := make([]Column, len(m.columns))
	for i, c := range m.columns {
		cols[i] = Column{Title: c.Title, Width: widths[i] + 1}
	}
	m.table.SetColumns(cols)
}

// Cursor returns the current cursor position.
func (m *Model[V]) Cursor() int {
	return m.table.Cursor()
}

// SetCursor sets the cursor position.
func (m *Model[V]) SetCursor(pos int) {
	m.table.SetCursor(pos)
}

// MoveUp moves the cursor up n rows.
func (m *Model[V]) MoveUp(n int) {
	m.table.MoveUp(n)
}

// MoveDown moves the cursor down n rows.
func (m *Model[V]) MoveDown(n int) {
	m.table.MoveDown(n)
}

// SelectedRow returns the row under the cursor, or nil if there are no rows.
func (m *Model[V]) SelectedRow() *V {
	if len(m.filtered) == 0 {
		return nil
	}
	cursor := m.Cursor()
	if cursor < 0 || cursor >= len(m.filtered) {
		return nil
	}
	return &m.filtered[cursor]
}

// SetSize sets the table dimensions. Height includes the header row.
func (m *Model[V]) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(height)
	m.table.SetWidth(width)
	m.resizeColumns()
}

// SetHeight updates only the table height, preserving current width.
func (m *Model[V]) SetHeight(height int) {
	m.SetSize(m.width, height)
}

// Focus sets the table focus state.
func (m *Model[V]) Focus() {
	m.focused = true
	m.table.Focus()
}

// Blur removes focus from the table.
func (m *Model[V]) Blur() {
	m.focused = false
	m.table.Blur()
}

// Focused returns true if the table has focus.
func (m *Model[V]) Focused() bool {
	return m.focused
}

// SetNoColor enables/disables color output.
func (m *Model[V]) SetNoColor(noColor bool) {
	m.noColor = noColor
	m.applyColorScheme()
}

// SetColors sets custom theme colors.
func (m *Model[V]) SetColors(headerFG, headerBG, selectedFG, selectedBG color.Color) {
	m.headerFG = headerFG
	m.headerBG = headerBG
	m.selectedFG = selectedFG
	m.selectedBG = selectedBG
	m.applyColorScheme()
}

// SetMutedColor sets the color of the empty-state line.
func (m *Model[V]) SetMutedColor(c color.Color) {
	m.mutedFG = c
}

func (m *Model[V]) applyColorScheme() {
	s := m.styles

	if m.noColor {
		s.Header = s.Header.UnsetForeground().UnsetBackground()
		s.Selected = s.Selected.UnsetForeground().UnsetBackground().Reverse(true)
		s.Cell = s.Cell.UnsetForeground().UnsetBackground()
	} else {
		if m.headerFG != nil {
			s.Header = s.Header.Foreground(m.headerFG)
		}
		if m.headerBG != nil {
			s.Header = s.Header.Background(m.headerBG)
		}
		if m.selectedFG != nil {
			s.Selected = s.Selected.Foreground(m.selectedFG)
		}
		if m.selectedBG != nil {
			s.Selected = s.Selected.Background(m.selectedBG)
		}
	}

	m.table.SetStyles(s)
	m.styles = s
}

// Update handles messages and updates the table state.
func (m *Model[V]) Update(msg tea.Msg) (*Model[V], tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table. With no rows it renders the header followed by the
// empty-state line.
func (m *Model[V]) View() string {
	if len(m.filtered) > 0 || m.emptyText == "" {
		return m.table.View()
	}
	header := m.styles.Header.Render(m.headerLine())
	empty := m.emptyText
	if !m.noColor && m.mutedFG != nil {
		empty = lipgloss.NewStyle().Foreground(m.mutedFG).Italic(true).Render(empty)
	}
	return header + "\n" + empty
}

func (m *Model[V]) headerLine() string {
	parts := make([]string, 0, len(m.columns))
	for _, c := range m.table.Columns() {
		parts = append(parts, lipgloss.NewStyle().Width(c.Width).MaxWidth(c.Width).Render(c.Title))
	}
	return strings.Join(parts, "")
}

// Height returns the rendered height of the table (including header).
func (m *Model[V]) Height() int {
	return lipgloss.Height(m.View())
}

// Width returns the rendered width of the table.
func (m *Model[V]) Width() int {
	return lipgloss.Width(m.View())
}

// String returns a string representation for debugging.
func (m *Model[V]) String() string {
	return fmt.Sprintf("Table[rows=%d, filtered=%d, cursor=%d, filter=%q]",
		len(m.rows), len(m.filtered), m.Cursor(), m.filter)
}
