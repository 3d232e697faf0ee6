// Package tui implements a terminal dashboard for the player: current
// track, transport state, and the Now Playing queue, rendered as an
// interactive Bubble Tea app that drives MediaMonkey through the live
// automation session.
package tui

import "github.com/charmbracelet/lipgloss"

// Transport glyphs — convey state without relying on color alone.
const (
	GlyphPlaying = "▶"
	GlyphPaused  = "⏸"
	GlyphStopped = "■"
	GlyphCurrent = "▸"
	GlyphShuffle = "⤨"
	GlyphRepeat  = "⟳"
)

// Palette adapts to terminal capabilities via lipgloss.
var (
	colorGreen  = lipgloss.Color("42")
	colorRed    = lipgloss.Color("196")
	colorYellow = lipgloss.Color("214")
	colorCyan   = lipgloss.Color("51")
	colorDim    = lipgloss.Color("240")
	colorWhite  = lipgloss.Color("255")
)

// --- Header styles ---

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorCyan).
	Padding(0, 1)

var stateBadgeStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("0")).
	Background(colorYellow).
	Padding(0, 1)

// --- Track panel styles ---

var (
	panelBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim)

	trackTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	trackMetaStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	progressStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	progressRestStyle = lipgloss.NewStyle().
				Foreground(colorDim)
)

// --- Queue styles ---

var (
	queueNormal = lipgloss.NewStyle().
			Foreground(colorWhite)

	queueCurrent = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorYellow)

	queueDim = lipgloss.NewStyle().
			Faint(true)
)

// --- Key bar styles ---

var (
	keyStyle = lipgloss.NewStyle().
			Foreground(colorCyan).
			Bold(true)

	keyDescStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	keyBarStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

// --- Error style ---

var errorStyle = lipgloss.NewStyle().
	Foreground(colorRed).
	Bold(true)
