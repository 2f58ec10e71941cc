package formatter

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title  lipgloss.Style
	artist lipgloss.Style
	warn   lipgloss.Style
	help   lipgloss.Style
}

func NewPalette(t, a, w, h string) *Palette {
	return &Palette{
		title:  NewBold(t).MarginBottom(1),
		artist: NewBold(a),
		warn:   NewStyle(w),
		help:   NewEm(h),
	}
}

func (p *Palette) Title(s string) string  { return p.title.Render(s) }
func (p *Palette) Artist(s string) string { return p.artist.Render(s) }
func (p *Palette) Warn(s string) string   { return p.warn.Render(s) }
func (p *Palette) Help(s string) string   { return p.help.Render(s) }

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
