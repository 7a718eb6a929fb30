package client

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/tomz197/planetwars/internal/draw"
	"github.com/tomz197/planetwars/internal/object"
)

// styles are the text styles of one session, bound to its output.
type styles struct {
	title    lipgloss.Style
	heading  lipgloss.Style
	text     lipgloss.Style
	dim      lipgloss.Style
	key      lipgloss.Style
	selected lipgloss.Style
	good     lipgloss.Style
	bad      lipgloss.Style
	warn     lipgloss.Style
	panel    lipgloss.Style
	owners   map[object.Owner]lipgloss.Style
}

// newStyles builds the styles for a session writing to w. The 16-colour
// profile is forced so every terminal, local or remote, sees the same palette.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI)

	fg := func(c draw.Color) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c.Palette()))
	}

	return styles{
		title:    fg(draw.Cyan).Bold(true),
		heading:  fg(draw.White).Bold(true),
		text:     fg(draw.White),
		dim:      fg(draw.Gray),
		key:      fg(draw.Yellow).Bold(true),
		selected: fg(draw.Yellow).Bold(true),
		good:     fg(draw.Green).Bold(true),
		bad:      fg(draw.Red).Bold(true),
		warn:     fg(draw.Magenta),
		panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(draw.Gray.Palette())).
			Padding(0, 1),
		owners: map[object.Owner]lipgloss.Style{
			object.Neutral: fg(ownerColor(object.Neutral)).Bold(true),
			object.Player:  fg(ownerColor(object.Player)).Bold(true),
			object.Enemy:   fg(ownerColor(object.Enemy)).Bold(true),
		},
	}
}

// owner returns the label style of a side.
func (s styles) owner(o object.Owner) lipgloss.Style {
	if st, ok := s.owners[o]; ok {
		return st
	}
	return s.text
}

// ownerColor is the canvas color of planets and fleets of a side.
func ownerColor(o object.Owner) draw.Color {
	switch o {
	case object.Player:
		return draw.Blue
	case object.Enemy:
		return draw.Red
	default:
		return draw.Gray
	}
}

// truncate cuts s to at most n runes, marking the cut with "~".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 1 {
		return s
	}
	return string(r[:n-1]) + "~"
}

// lines splits a rendered block into its lines.
func lines(block string) []string {
	return strings.Split(block, "\n")
}
