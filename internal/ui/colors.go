package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/agenda/internal/book"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// interface Painter defines coloring text with [lipgloss] styles
type Painter interface {
	On(string, lipgloss.Color) string // Sets background color
	As(string, lipgloss.Color) string // Sets foreground color
}

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title   lipgloss.Style
	ok      lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
	help    lipgloss.Style
	focused lipgloss.Style
	blurred lipgloss.Style
	label   lipgloss.Style
	modal   lipgloss.Style
	accent  lipgloss.Color
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title:   NewBold(t).MarginBottom(1),
		ok:      NewBold(s),
		err:     NewBold(e),
		warn:    NewStyle(w),
		help:    NewEm(h),
		focused: NewStyle(t),
		blurred: NewStyle(h),
		label:   NewBold(h).Width(14),
		modal:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(t)).Padding(1, 2),
		accent:  lipgloss.Color(t),
	}
}

// On renders s on a background color.
func (p *Palette) On(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Background(c).Render(s)
}

// As renders s in a foreground color.
func (p *Palette) As(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(c).Render(s)
}

// button renders a form button, highlighted when focused.
func (p *Palette) button(label string, focused bool) string {
	if focused {
		return p.focused.Render(fmt.Sprintf("[ %s ]", label))
	}
	return fmt.Sprintf("[ %s ]", p.blurred.Render(label))
}

// notification renders a notification line styled by its status.
func (p *Palette) notification(n book.Notification) string {
	switch n.Status {
	case book.StatusSuccess:
		return p.ok.Render("✓ " + n.String())
	case book.StatusError:
		return p.err.Render("✗ " + n.String())
	default:
		return p.warn.Render("• " + n.String())
	}
}

// tableStyles returns the address table styles.
func (p *Palette) tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("#FFFFFF")).Background(p.accent).Bold(false)
	return s
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

var _ Painter = (*Palette)(nil)
