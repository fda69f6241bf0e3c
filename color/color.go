// Package color provides the palette used by the CLI and the terminal player.
package color

import "github.com/charmbracelet/lipgloss"

// New initializes a lipgloss.Color from a string value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// ANSI colors, so the terminal theme decides the exact shade.
var (
	Red      = New("1")
	Green    = New("2")
	Yellow   = New("3")
	Blue     = New("4")
	Purple   = New("5")
	Cyan     = New("6")
	Black    = New("8")
	HiPurple = New("13")
)

// Fixed accents.
var (
	Gray = New("#808080")
	Ink  = New("230")
	Plum = New("62")
)

var states = map[string]lipgloss.Color{
	"playing":   Green,
	"paused":    Yellow,
	"frozen":    Cyan,
	"stopped":   Gray,
	"completed": Blue,
	"error":     Red,
	"loading":   Purple,
	"destroyed": Black,
}

// ForState returns the badge color of a player state name, gray for unknown ones.
func ForState(name string) lipgloss.Color {
	if c, ok := states[name]; ok {
		return c
	}
	return Gray
}
