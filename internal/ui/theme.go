package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/bondpick/internal/config"
)

// Theme holds the resolved picker colors. A nil color leaves the terminal default.
type Theme struct {
	Title      color.Color
	Accent     color.Color
	Muted      color.Color
	BadgeFG    color.Color
	BadgeBG    color.Color
	HeaderFG   color.Color
	HeaderBG   color.Color
	SelectedFG color.Color
	SelectedBG color.Color
	Border     color.Color
}

// ThemeFromConfig resolves configured color tokens (ANSI numbers or hex).
func ThemeFromConfig(cfg config.ThemeConfig) Theme {
	var th Theme
	set := func(val config.ColorValue, dst *color.Color) {
		if val != "" {
			*dst = lipgloss.Color(string(val))
		}
	}
	set(cfg.Title, &th.Title)
	set(cfg.Accent, &th.Accent)
	set(cfg.Muted, &th.Muted)
	set(cfg.BadgeFG, &th.BadgeFG)
	set(cfg.BadgeBG, &th.BadgeBG)
	set(cfg.HeaderFG, &th.HeaderFG)
	set(cfg.HeaderBG, &th.HeaderBG)
	set(cfg.SelectedFG, &th.SelectedFG)
	set(cfg.SelectedBG, &th.SelectedBG)
	set(cfg.Border, &th.Border)
	return th
}

// styles are derived from a Theme once per color scheme change.
type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	section  lipgloss.Style
	badge    lipgloss.Style
	idBadge  lipgloss.Style
	muted    lipgloss.Style
	panel    lipgloss.Style
}

func newStyles(th Theme, noColor bool) styles {
	s := styles{
		title:    lipgloss.NewStyle().Bold(true),
		subtitle: lipgloss.NewStyle(),
		section:  lipgloss.NewStyle().Bold(true),
		badge:    lipgloss.NewStyle().Bold(true).Padding(0, 1),
		idBadge:  lipgloss.NewStyle().Bold(true),
		muted:    lipgloss.NewStyle(),
		panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
	if noColor {
		return s
	}
	fg := func(st lipgloss.Style, c color.Color) lipgloss.Style {
		if c != nil {
			return st.Foreground(c)
		}
		return st
	}
	s.title = fg(s.title, th.Title)
	s.subtitle = fg(s.subtitle, th.Muted)
	s.section = fg(s.section, th.Title)
	s.badge = fg(s.badge, th.BadgeFG)
	if th.BadgeBG != nil {
		s.badge = s.badge.Background(th.BadgeBG)
	}
	s.idBadge = fg(s.idBadge, th.Accent)
	s.muted = fg(s.muted, th.Muted).Italic(true)
	if th.Border != nil {
		s.panel = s.panel.BorderForeground(th.Border)
	}
	return s
}
