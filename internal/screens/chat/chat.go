// Package chat is the terminal front-end of the lesson wizard: a running
// transcript, the current keyboard as a menu and a line for typed answers.
package chat

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tooley/tooley/internal/screen"
	"github.com/tooley/tooley/internal/session"
	"github.com/tooley/tooley/internal/ui/components"
	"github.com/tooley/tooley/internal/ui/layout"
	"github.com/tooley/tooley/internal/ui/theme"
	"github.com/tooley/tooley/internal/wizard"
)

// Engine is the part of the wizard the screen drives.
type Engine interface {
	Handle(ctx context.Context, userID string, ev wizard.Event) ([]wizard.Reply, error)
	Session(ctx context.Context, userID string) (*session.Session, error)
}

// Options configures a chat screen.
type Options struct {
	Engine Engine
	UserID string
	// OutDir receives every document the wizard sends.
	OutDir string
	// Timeout bounds one event, generation included.
	Timeout time.Duration
}

const maxLines = 200

type lineKind int

const (
	lineBot lineKind = iota
	lineYou
	lineSaved
	lineWarn
)

type line struct {
	kind lineKind
	text string
}

type repliesMsg struct {
	replies []wizard.Reply
	state   session.State
	err     error
}

// Screen implements screen.Screen for one wizard conversation.
type Screen struct {
	opts       Options
	first      wizard.Event
	lines      []line
	menu       components.Menu
	input      components.TextInput
	spin       spinner.Model
	busy       bool
	state      session.State
	focusInput bool
	saved      int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.StatusProvider = (*Screen)(nil)

// New creates a chat screen that opens by sending first to the engine.
func New(opts Options, first wizard.Event) *Screen {
	if opts.Timeout <= 0 {
		opts.Timeout = 3 * time.Minute
	}
	if opts.OutDir == "" {
		opts.OutDir = "."
	}
	return &Screen{
		opts:       opts,
		first:      first,
		input:      components.NewTextInput("Type an answer or a request...", 500),
		spin:       spinner.New(spinner.WithSpinner(spinner.Points), spinner.WithStyle(theme.Hint)),
		focusInput: true,
	}
}

func (s *Screen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.spin.Tick}
	if s.first != nil {
		cmds = append(cmds, s.send(s.first, ""))
	}
	return tea.Batch(cmds...)
}

func (s *Screen) Title() string {
	return "Lesson planner"
}

func (s *Screen) Status() string {
	if s.saved == 0 {
		return ""
	}
	return fmt.Sprintf("%d saved", s.saved)
}

func (s *Screen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Send"}}
	if s.menu.Len() > 0 {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Buttons/typing"})
	}
	return append(hints,
		layout.KeyHint{Key: "Esc", Description: "Back"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
}

// send hands ev to the engine in the background. A non-empty echo is
// shown as the user's line.
func (s *Screen) send(ev wizard.Event, echo string) tea.Cmd {
	if echo != "" {
		s.add(lineYou, echo)
	}
	s.busy = true
	opts := s.opts
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
		defer cancel()
		replies, err := opts.Engine.Handle(ctx, opts.UserID, ev)
		msg := repliesMsg{replies: replies, err: err}
		if sess, serr := opts.Engine.Session(ctx, opts.UserID); serr == nil {
			msg.state = sess.State
		}
		return msg
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case repliesMsg:
		return s, s.receive(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}

	if s.focusInput {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.busy {
		return nil
	}
	if msg.String() == "tab" && s.menu.Len() > 0 {
		return s.setFocus(!s.focusInput)
	}
	if !s.focusInput {
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return cmd
	}
	if msg.String() == "enter" {
		text := s.input.Value()
		if text == "" {
			return nil
		}
		s.input.Reset()
		return s.send(wizard.Text{Body: text}, text)
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *Screen) receive(msg repliesMsg) tea.Cmd {
	s.busy = false
	if msg.state != "" {
		s.state = msg.state
	}
	if msg.err != nil {
		s.add(lineWarn, "Something went wrong: "+msg.err.Error())
	}

	var keyboard [][]wizard.Button
	for _, r := range msg.replies {
		if r.Document != nil {
			s.saveDocument(r.Document)
		}
		if r.Text != "" {
			text := r.Text
			if r.Markdown {
				text = plain(text)
			}
			s.add(lineBot, text)
		}
		if len(r.Keyboard) > 0 {
			keyboard = r.Keyboard
		}
	}
	s.menu = s.buildMenu(keyboard)
	return s.setFocus(s.menu.Len() == 0 || s.state.FreeText())
}

func (s *Screen) saveDocument(doc *wizard.Document) {
	path := filepath.Join(s.opts.OutDir, filepath.Base(doc.Filename))
	if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
		s.add(lineWarn, fmt.Sprintf("Could not save %s: %v", doc.Filename, err))
		return
	}
	s.saved++
	text := "Saved " + path
	if doc.Caption != "" {
		text += "\n" + plain(doc.Caption)
	}
	s.add(lineSaved, text)
}

func (s *Screen) buildMenu(keyboard [][]wizard.Button) components.Menu {
	var items []components.MenuItem
	for _, row := range keyboard {
		for _, b := range row {
			items = append(items, components.MenuItem{
				Label: b.Label,
				Action: func() tea.Cmd {
					return s.send(wizard.Press{Token: b.Token}, b.Label)
				},
			})
		}
	}
	return components.NewMenu(items)
}

func (s *Screen) setFocus(input bool) tea.Cmd {
	s.focusInput = input
	s.menu.Blurred = input
	if input {
		return s.input.Focus()
	}
	s.input.Blur()
	return nil
}

func (s *Screen) add(kind lineKind, text string) {
	s.lines = append(s.lines, line{kind: kind, text: strings.TrimRight(text, "\n")})
	if over := len(s.lines) - maxLines; over > 0 {
		s.lines = s.lines[over:]
	}
}

var markup = strings.NewReplacer("*", "", "_", "", "`", "")

// plain drops chat markup.
func plain(text string) string {
	return markup.Replace(text)
}

func (s *Screen) View(width, height int) string {
	inner := max(width-4, 10)

	var bottom []string
	if bar := components.NewStepBar(s.state.Step(), session.Steps, inner).View(); bar != "" {
		bottom = append(bottom, bar)
	}
	if s.busy {
		bottom = append(bottom, s.spin.View()+theme.Hint.Render(" working"))
	} else if s.menu.Len() > 0 {
		bottom = append(bottom, strings.TrimRight(s.menu.View(), "\n"))
	}
	s.input.SetWidth(inner - 4)
	bottom = append(bottom, theme.Card.Width(inner).Render(s.input.View()))
	tail := strings.Join(bottom, "\n")

	room := max(height-lipgloss.Height(tail)-1, 1)
	transcript := s.transcript(inner, room)

	return lipgloss.NewStyle().Padding(0, 2).Render(transcript + "\n" + tail)
}

// transcript renders the newest lines that fit in height rows.
func (s *Screen) transcript(width, height int) string {
	wrap := lipgloss.NewStyle().Width(width)
	var rows []string
	for _, l := range s.lines {
		var text string
		switch l.kind {
		case lineYou:
			text = theme.You.Render(wrap.Render("» " + l.text))
		case lineSaved:
			text = theme.Saved.Render(wrap.Render(l.text))
		case lineWarn:
			text = theme.Warning.Render(wrap.Render(l.text))
		default:
			text = theme.Body.Render(wrap.Render(l.text))
		}
		rows = append(rows, strings.Split(text, "\n")...)
		rows = append(rows, "")
	}
	if len(rows) > height {
		rows = rows[len(rows)-height:]
	}
	return strings.Join(rows, "\n")
}
