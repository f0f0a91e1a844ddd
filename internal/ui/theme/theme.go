package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: chalkboard greens with a chalk-yellow accent.
var (
	Primary   = lipgloss.Color("#4ADE80") // Chalk green
	Secondary = lipgloss.Color("#38BDF8") // Sky
	Accent    = lipgloss.Color("#FACC15") // Chalk yellow
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F87171") // Red
	Text      = lipgloss.Color("#F1F5F9") // Chalk
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0B1F17") // Board
	BgCard    = lipgloss.Color("#12301F") // Board edge
	Border    = lipgloss.Color("#2F5A43") // Frame
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	// You marks lines the user typed or pressed.
	You = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	Saved = lipgloss.NewStyle().
		Foreground(Success)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)
