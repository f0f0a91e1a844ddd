// Package session keeps each user's wizard progress.
package session

import (
	"errors"
	"slices"
	"time"

	"github.com/tooley/tooley/internal/catalog"
	"github.com/tooley/tooley/internal/i18n"
	"github.com/tooley/tooley/internal/lesson"
)

var (
	// ErrNotFound is returned by Load when no live session exists.
	ErrNotFound = errors.New("session not found")
	// ErrCorrupt is returned when a stored session cannot be decoded.
	ErrCorrupt = errors.New("session corrupt")
)

// State is the wizard position. Each state expects one kind of input.
type State string

const (
	StateIdle                  State = "idle"
	StateAwaitingLanguage      State = "awaiting_language"
	StateAwaitingSubject       State = "awaiting_subject"
	StateAwaitingSubjectText   State = "awaiting_subject_text"
	StateAwaitingTopic         State = "awaiting_topic"
	StateAwaitingTopicText     State = "awaiting_topic_text"
	StateAwaitingAges          State = "awaiting_ages"
	StateAwaitingAgesText      State = "awaiting_ages_text"
	StateAwaitingDuration      State = "awaiting_duration"
	StateAwaitingDurationText  State = "awaiting_duration_text"
	StateAwaitingCountry       State = "awaiting_country"
	StateAwaitingCountryText   State = "awaiting_country_text"
	StateAwaitingMaterials     State = "awaiting_materials"
	StateAwaitingMaterialsText State = "awaiting_materials_text"
	StateAwaitingStyle         State = "awaiting_style"
	StateAwaitingStyleText     State = "awaiting_style_text"
	StateAwaitingFormat        State = "awaiting_format"
	StateGenerating            State = "generating"
	StateLessonReady           State = "lesson_ready"
	StateAwaitingShareDecision State = "awaiting_share_decision"
	StateAwaitingTeacherName   State = "awaiting_teacher_name"
	StateAwaitingTweak         State = "awaiting_tweak"
	StateAwaitingQuickInput    State = "awaiting_quick_input"
	StateConfirmingRequest     State = "confirming_request"
)

// States lists every state in wizard order.
func States() []State {
	return []State{
		StateIdle,
		StateAwaitingLanguage,
		StateAwaitingSubject,
		StateAwaitingSubjectText,
		StateAwaitingTopic,
		StateAwaitingTopicText,
		StateAwaitingAges,
		StateAwaitingAgesText,
		StateAwaitingDuration,
		StateAwaitingDurationText,
		StateAwaitingCountry,
		StateAwaitingCountryText,
		StateAwaitingMaterials,
		StateAwaitingMaterialsText,
		StateAwaitingStyle,
		StateAwaitingStyleText,
		StateAwaitingFormat,
		StateGenerating,
		StateLessonReady,
		StateAwaitingShareDecision,
		StateAwaitingTeacherName,
		StateAwaitingTweak,
		StateAwaitingQuickInput,
		StateConfirmingRequest,
	}
}

// FreeText reports whether the state expects typed text rather than a button.
func (s State) FreeText() bool {
	switch s {
	case StateAwaitingSubjectText, StateAwaitingTopicText, StateAwaitingAgesText,
		StateAwaitingDurationText, StateAwaitingCountryText, StateAwaitingMaterialsText,
		StateAwaitingStyleText, StateAwaitingTeacherName, StateAwaitingTweak,
		StateAwaitingQuickInput:
		return true
	}
	return false
}

// Step is the 1-based position of the state among the guided questions, or 0.
func (s State) Step() int {
	switch s {
	case StateAwaitingSubject, StateAwaitingSubjectText:
		return 1
	case StateAwaitingTopic, StateAwaitingTopicText:
		return 2
	case StateAwaitingAges, StateAwaitingAgesText:
		return 3
	case StateAwaitingDuration, StateAwaitingDurationText:
		return 4
	case StateAwaitingCountry, StateAwaitingCountryText:
		return 5
	case StateAwaitingMaterials, StateAwaitingMaterialsText:
		return 6
	case StateAwaitingStyle, StateAwaitingStyleText:
		return 7
	case StateAwaitingFormat:
		return 8
	}
	return 0
}

// Steps is the number of guided questions.
const Steps = 8

// Session is one user's wizard record.
type Session struct {
	ID           string            `json:"id"`
	State        State             `json:"state"`
	Params       lesson.Parameters `json:"params"`
	LastLesson   string            `json:"last_lesson,omitempty"`
	SharePending bool              `json:"share_pending,omitempty"`
	Locale       i18n.Locale       `json:"locale"`
	Suggestions  []catalog.Topic   `json:"suggestions,omitempty"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// New returns a fresh idle session.
func New(id string) *Session {
	return &Session{ID: id, State: StateIdle, Locale: i18n.Default}
}

// Reset clears the wizard but keeps the identity and the chosen language.
func (s *Session) Reset() {
	*s = Session{ID: s.ID, State: StateIdle, Locale: s.Locale, UpdatedAt: s.UpdatedAt}
}

// Clone returns a copy that shares no memory with s.
func (s *Session) Clone() *Session {
	c := *s
	c.Suggestions = slices.Clone(s.Suggestions)
	return &c
}
