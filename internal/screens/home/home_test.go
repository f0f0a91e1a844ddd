package home

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/tooley/tooley/internal/router"
	"github.com/tooley/tooley/internal/screen"
	"github.com/tooley/tooley/internal/wizard"
)

type stubScreen struct{ first wizard.Event }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "chat" }
func (s *stubScreen) Title() string                           { return "Chat" }

func opener() Opener {
	return func(first wizard.Event) screen.Screen { return &stubScreen{first: first} }
}

func TestEntriesOpenTheirCommand(t *testing.T) {
	for i, e := range entries {
		h := New(opener(), "")
		for range i {
			h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
		}
		_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
		if cmd == nil {
			t.Fatalf("%s: expected a command", e.label)
		}
		push, ok := cmd().(router.PushScreenMsg)
		if !ok {
			t.Fatalf("%s: expected PushScreenMsg", e.label)
		}
		got := push.Screen.(*stubScreen).first.(wizard.Command)
		if got.Name != e.command {
			t.Errorf("%s: expected command %q, got %q", e.label, e.command, got.Name)
		}
	}
}

func TestQuitIsLast(t *testing.T) {
	h := New(opener(), "")
	for range len(entries) {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestViewShowsNotice(t *testing.T) {
	h := New(opener(), "Using sample lessons")
	view := h.View(100, 40)
	if !strings.Contains(view, "Using sample lessons") {
		t.Error("expected notice in view")
	}
	if !strings.Contains(view, "NEW LESSON") {
		t.Error("expected menu in view")
	}

	compact := New(opener(), "").View(60, 20)
	if !strings.Contains(compact, "T · O · O · L · E · Y") {
		t.Error("expected compact title on a small terminal")
	}
}
