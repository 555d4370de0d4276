package ui

import (
	"fmt"
	"regexp"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

const (
	// title, subtitle, blank, input panel (3), selection line, blank, section
	// heading, blank and footer.
	chromeLines = 11
	// header row plus its bottom border.
	tableHeaderLines = 2
	minResultsHeight = tableHeaderLines + 1
)

func (m *Model) applyLayout() {
	w := m.width
	if w <= 0 {
		w = defaultWidth
	}
	// Panel border and padding take four cells, the prompt two more.
	m.input.SetWidth(max(w-4-lipgloss.Width(m.input.Prompt)-1, 10))

	dropdownRows := max(m.cfg.UI.DropdownHeight, 1)
	m.dropdown.SetSize(w, dropdownRows+tableHeaderLines)

	resultsHeight := m.height - chromeLines
	if m.DropdownOpen() {
		resultsHeight -= dropdownRows + tableHeaderLines
	}
	m.results.SetSize(w, max(resultsHeight, minResultsHeight))
}

func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws one frame.
func (m *Model) render() string {
	m.applyLayout()
	w := m.width
	if w <= 0 {
		w = defaultWidth
	}

	var b strings.Builder
	b.WriteString(m.styles.title.Render(m.cfg.App.Title) + "\n")
	b.WriteString(m.styles.subtitle.Render(m.cfg.App.Subtitle) + "\n\n")
	b.WriteString(m.styles.panel.Width(w-2).Render(m.input.View()) + "\n")

	if m.DropdownOpen() {
		b.WriteString(m.dropdown.View() + "\n")
	}

	b.WriteString(m.selectionLine() + "\n\n")

	count := len(m.results.Rows())
	badge := m.styles.badge.Render(fmt.Sprintf("%d RECORDS", count))
	b.WriteString(m.styles.section.Render("Available Inventory") + "  " + badge + "\n")
	b.WriteString(m.results.View() + "\n\n")

	b.WriteString(m.footer())

	view := b.String()
	if m.NoColor {
		view = stripANSIExceptInverse(view)
	}
	return view
}

func (m *Model) selectionLine() string {
	in, ok := m.picker.Selected()
	if !ok {
		return m.styles.muted.Render("No instrument selected")
	}
	return "Selected: " + m.styles.idBadge.Render(in.ID) + "  " + in.Description +
		m.styles.muted.Render(fmt.Sprintf("  (%s · %s · %s)", in.Issuer, in.Maturity, in.ISIN)) +
		"  " + in.Currency
}

func (m *Model) footer() string {
	parts := make([]string, 0, 6)
	for _, b := range keys.shortHelp(m.InputFocused()) {
		h := b.Help()
		parts = append(parts, m.styles.idBadge.Render(h.Key)+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}

func stripANSI(s string) string {
	return ansiRegexp.ReplaceAllString(s, "")
}

// stripANSIExceptInverse removes color/formatting codes but preserves inverse
// video sequences so selection highlighting stays visible in no-color mode.
func stripANSIExceptInverse(s string) string {
	return ansiRegexp.ReplaceAllStringFunc(s, func(seq string) string {
		switch seq {
		case "\x1b[7m", "\x1b[27m", "\x1b[0m", "\x1b[m":
			return seq
		default:
			return ""
		}
	})
}
