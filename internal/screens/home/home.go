package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/tooley/tooley/internal/router"
	"github.com/tooley/tooley/internal/screen"
	"github.com/tooley/tooley/internal/ui/components"
	"github.com/tooley/tooley/internal/wizard"
)

// Opener builds the conversation screen that starts with first.
type Opener func(first wizard.Event) screen.Screen

// HomeScreen is the main menu of the terminal app.
type HomeScreen struct {
	menu   components.Menu
	labels []string
	notice string
}

var _ screen.Screen = (*HomeScreen)(nil)

type entry struct {
	label   string
	command string
}

var entries = []entry{
	{"NEW LESSON", "new"},
	{"QUICK LESSON", "quick"},
	{"ASK IN YOUR WORDS", "start"},
	{"BROWSE LIBRARY", "browse"},
	{"LANGUAGE", "language"},
}

// New creates the home screen. notice, when set, is shown above the menu.
func New(open Opener, notice string) *HomeScreen {
	var items []components.MenuItem
	var labels []string
	for _, e := range entries {
		first := wizard.Command{Name: e.command}
		items = append(items, components.MenuItem{Label: e.label, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: open(first)}
			}
		}})
		labels = append(labels, e.label)
	}
	items = append(items, components.MenuItem{Label: "QUIT", Action: func() tea.Cmd {
		return tea.Quit
	}})
	labels = append(labels, "QUIT")

	return &HomeScreen{
		menu:   components.NewMenu(items),
		labels: labels,
		notice: notice,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 28 || width < 70
	cw := contentWidth(width)

	sections := []string{renderTitle(cw, compact)}
	if h.notice != "" {
		sections = append(sections, renderNotice(h.notice, cw))
	}
	sections = append(sections, renderButtons(h.labels, h.menu.Selected, cw, compact))

	return renderBoard(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
