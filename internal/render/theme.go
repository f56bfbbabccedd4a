// Package render draws tiles, racks and tables for terminal output.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"rummikub/internal/domain"
)

type Theme struct {
	Red    lipgloss.Style
	Blue   lipgloss.Style
	Orange lipgloss.Style
	Black  lipgloss.Style
	Joker  lipgloss.Style
	Label  lipgloss.Style
	Faint  lipgloss.Style
	Card   lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Red:    lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true),
		Blue:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
		Orange: lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		Black:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
		Joker:  lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true).Underline(true),
		Label:  lipgloss.NewStyle().Bold(true),
		Faint:  lipgloss.NewStyle().Faint(true),
		Card: lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
	}
}

// PlainTheme renders without any styling.
func PlainTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Red: plain, Blue: plain, Orange: plain, Black: plain, Joker: plain,
		Label: plain, Faint: plain,
		Card: lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).Padding(0, 1),
	}
}

func (th Theme) colorStyle(t domain.Tile) lipgloss.Style {
	if t.IsJoker() {
		return th.Joker
	}
	c, _ := t.Color()
	switch c {
	case domain.Red:
		return th.Red
	case domain.Blue:
		return th.Blue
	case domain.Orange:
		return th.Orange
	}
	return th.Black
}

// Tile renders one tile by its code.
func (th Theme) Tile(t domain.Tile) string {
	return th.colorStyle(t).Render(t.Code())
}

func (th Theme) Tiles(tiles []domain.Tile) string {
	if len(tiles) == 0 {
		return th.Faint.Render("(none)")
	}
	parts := make([]string, len(tiles))
	for i, t := range tiles {
		parts[i] = th.Tile(t)
	}
	return strings.Join(parts, " ")
}

// Set renders a set with its kind and on-table score.
func (th Theme) Set(s domain.Set) string {
	return th.Label.Render(s.Kind().String()) + " " + th.Tiles(s.Tiles()) + " " +
		th.Faint.Render(fmt.Sprintf("(%d)", s.Score(domain.OnTable)))
}

func (th Theme) Table(t domain.Table) string {
	sets := t.Sets()
	if len(sets) == 0 {
		return th.Faint.Render("empty table")
	}
	lines := make([]string, len(sets))
	for i, s := range sets {
		lines[i] = th.Set(s)
	}
	return strings.Join(lines, "\n")
}

func (th Theme) Rack(r domain.Rack) string {
	tiles := r.Tiles()
	domain.SortTiles(tiles)
	status := "not melded"
	if r.PlayedInitialMeld() {
		status = "melded"
	}
	return th.Label.Render("rack") + " " + th.Tiles(tiles) + " " + th.Faint.Render("("+status+")")
}

// Panel wraps a titled block in the theme's card border.
func (th Theme) Panel(title, body string) string {
	return th.Card.Render(th.Label.Render(title) + "\n" + body)
}
