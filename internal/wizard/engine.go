package wizard

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/tooley/tooley/internal/i18n"
	"github.com/tooley/tooley/internal/lesson"
	"github.com/tooley/tooley/internal/library"
	"github.com/tooley/tooley/internal/logger"
	"github.com/tooley/tooley/internal/render"
	"github.com/tooley/tooley/internal/session"
)

// Transcriber turns a voice note into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string, loc i18n.Locale) (string, error)
}

// Config tunes the wizard.
type Config struct {
	// TopicSuggestions is how many topic buttons the topic step offers.
	TopicSuggestions int `yaml:"topic_suggestions"`
	// MaxConcurrentGenerations bounds backend calls across all users.
	MaxConcurrentGenerations int64 `yaml:"max_concurrent_generations"`
	// TextLimit is the longest lesson also sent as a chat message next to
	// its documents.
	TextLimit int `yaml:"text_limit"`
	// BrowseLimit is how many lessons browse and search list.
	BrowseLimit int `yaml:"browse_limit"`
}

// DefaultConfig returns the bot's settings.
func DefaultConfig() Config {
	return Config{
		TopicSuggestions:         6,
		MaxConcurrentGenerations: 4,
		TextLimit:                4000,
		BrowseLimit:              5,
	}
}

// Deps are the collaborators of an Engine. Library and Transcriber may be
// nil; the matching features then report themselves unavailable.
type Deps struct {
	Sessions    session.Store
	Lessons     *lesson.Service
	Renderer    *render.Renderer
	Library     *library.Library
	Transcriber Transcriber
	Log         *logger.Logger
	// Seed fixes topic sampling in tests. Zero seeds from the clock.
	Seed uint64
}

// Engine runs the wizard. Events for one user are handled one at a time;
// different users proceed concurrently.
type Engine struct {
	cfg         Config
	sessions    session.Store
	lessons     *lesson.Service
	renderer    *render.Renderer
	library     *library.Library
	transcriber Transcriber
	log         *logger.Logger

	locks userLocks
	gen   *semaphore.Weighted

	rngMu sync.Mutex
	rng   *rand.Rand
}

// New builds an Engine.
func New(cfg Config, deps Deps) *Engine {
	def := DefaultConfig()
	if cfg.TopicSuggestions <= 0 {
		cfg.TopicSuggestions = def.TopicSuggestions
	}
	if cfg.MaxConcurrentGenerations <= 0 {
		cfg.MaxConcurrentGenerations = def.MaxConcurrentGenerations
	}
	if cfg.TextLimit <= 0 {
		cfg.TextLimit = def.TextLimit
	}
	if cfg.BrowseLimit <= 0 {
		cfg.BrowseLimit = def.BrowseLimit
	}
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	seed := deps.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	renderer := deps.Renderer
	if renderer == nil {
		renderer = render.New(nil, log)
	}
	return &Engine{
		cfg:         cfg,
		sessions:    deps.Sessions,
		lessons:     deps.Lessons,
		renderer:    renderer,
		library:     deps.Library,
		transcriber: deps.Transcriber,
		log:         log,
		gen:         semaphore.NewWeighted(cfg.MaxConcurrentGenerations),
		rng:         rand.New(rand.NewPCG(seed, seed>>1|1)),
	}
}

// Handle applies ev to the user's session and returns the replies to send,
// in order. Failures of collaborators become replies; the error is only
// set when the session itself could not be loaded or saved.
func (e *Engine) Handle(ctx context.Context, userID string, ev Event) ([]Reply, error) {
	unlock := e.locks.lock(userID)
	defer unlock()

	sess, err := e.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	log := e.log.With("user_id", userID)

	var replies []Reply
	switch ev := ev.(type) {
	case Command:
		replies = e.onCommand(ctx, sess, ev.Name)
	case Press:
		replies = e.onPress(ctx, sess, ev.Token)
	case Text:
		replies = e.onText(ctx, sess, ev.Body)
	case Voice:
		replies = e.onVoice(ctx, sess, ev)
	default:
		replies = []Reply{e.say(sess, "fallback")}
	}
	log.Debug("event handled", "event", fmt.Sprintf("%T", ev), "state", string(sess.State), "replies", len(replies))

	if err := e.sessions.Save(ctx, sess); err != nil {
		return replies, fmt.Errorf("save session: %w", err)
	}
	return replies, nil
}

// Session returns a copy of the user's current session, for front-ends
// that show progress.
func (e *Engine) Session(ctx context.Context, userID string) (*session.Session, error) {
	unlock := e.locks.lock(userID)
	defer unlock()
	return e.load(ctx, userID)
}

// load gets the user's session. A session that can no longer be decoded is
// replaced by a fresh one, which the next save overwrites.
func (e *Engine) load(ctx context.Context, userID string) (*session.Session, error) {
	sess, err := e.sessions.Get(ctx, userID)
	if errors.Is(err, session.ErrCorrupt) {
		e.log.Warn("discarding unreadable session", "user_id", userID, "error", err)
		return session.New(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return sess, nil
}

func (e *Engine) t(s *session.Session, key string, args ...any) string {
	return i18n.T(s.Locale, key, args...)
}

func (e *Engine) say(s *session.Session, key string, args ...any) Reply {
	return Reply{Text: e.t(s, key, args...), Markdown: true}
}

func (e *Engine) onCommand(ctx context.Context, s *session.Session, name string) []Reply {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "/")) {
	case "start":
		s.Reset()
		return []Reply{e.welcome(ctx, s)}
	case "new":
		return e.startGuided(s)
	case "quick":
		s.Reset()
		s.State = session.StateAwaitingQuickInput
		return []Reply{e.prompt(s)}
	case "browse":
		return e.browse(ctx, s)
	case "language":
		s.State = session.StateAwaitingLanguage
		return []Reply{e.prompt(s)}
	case "help":
		return []Reply{e.say(s, "help")}
	case "about":
		return []Reply{e.say(s, "about")}
	case "cancel":
		s.Reset()
		return []Reply{e.say(s, "cancelled")}
	}
	return []Reply{e.say(s, "fallback")}
}

func (e *Engine) welcome(ctx context.Context, s *session.Session) Reply {
	stats := ""
	if e.library.Enabled() {
		if st, err := e.library.Stats(ctx); err == nil && st.Total > 0 {
			stats = e.t(s, "welcome.stats", st.Total)
		}
	}
	r := e.say(s, "welcome", stats)
	r.Keyboard = e.menuKeyboard(s)
	return r
}

func (e *Engine) startGuided(s *session.Session) []Reply {
	s.Reset()
	s.Params.Language = s.Locale
	s.State = session.StateAwaitingSubject
	return []Reply{e.prompt(s)}
}

func (e *Engine) onVoice(ctx context.Context, s *session.Session, v Voice) []Reply {
	if e.transcriber == nil {
		return []Reply{e.say(s, "voice.disabled")}
	}
	text, err := e.transcriber.Transcribe(ctx, v.Audio, v.Filename, s.Locale)
	text = strings.TrimSpace(text)
	if err != nil || text == "" {
		e.log.Warn("transcription failed", "user_id", s.ID, "error", err)
		return []Reply{e.say(s, "voice.failed")}
	}
	heard := Reply{Text: e.t(s, "voice.heard", text)}
	return append([]Reply{heard}, e.onText(ctx, s, text)...)
}

// onText routes typed input by state. A topic may be typed over the
// suggestions. Button-only states answer with the fallback and keep the
// session as it is.
func (e *Engine) onText(ctx context.Context, s *session.Session, body string) []Reply {
	text := strings.TrimSpace(body)
	if text == "" {
		return []Reply{e.prompt(s)}
	}

	switch s.State {
	case session.StateIdle:
		return e.naturalRequest(ctx, s, text)
	case session.StateAwaitingQuickInput:
		return e.quickRequest(ctx, s, text)
	case session.StateAwaitingTweak:
		return e.revise(ctx, s, text)
	case session.StateAwaitingTeacherName:
		return e.shareNamed(ctx, s, text)
	case session.StateAwaitingSubjectText:
		s.Params.Subject = text
		s.State = session.StateAwaitingTopicText
	case session.StateAwaitingTopic, session.StateAwaitingTopicText:
		s.Params.Topic = text
		s.Suggestions = nil
		s.State = session.StateAwaitingAges
	case session.StateAwaitingAgesText:
		s.Params.Ages = text
		s.State = session.StateAwaitingDuration
	case session.StateAwaitingDurationText:
		s.Params.Duration = text
		s.State = session.StateAwaitingCountry
	case session.StateAwaitingCountryText:
		s.Params.Country = text
		s.State = session.StateAwaitingMaterials
	case session.StateAwaitingMaterialsText:
		s.Params.SetMaterials(text)
		s.State = session.StateAwaitingStyle
	case session.StateAwaitingStyleText:
		s.Params.SetStyle(text)
		s.State = session.StateAwaitingFormat
	default:
		return []Reply{e.say(s, "fallback")}
	}
	return []Reply{e.prompt(s)}
}

// naturalRequest handles a free-form request typed at the main menu.
func (e *Engine) naturalRequest(ctx context.Context, s *session.Session, text string) []Reply {
	p := e.parse(ctx, s, text)
	p.Format = lesson.FormatStandard
	s.Reset()
	s.Params = p
	s.State = session.StateConfirmingRequest
	return []Reply{e.prompt(s)}
}

func (e *Engine) quickRequest(ctx context.Context, s *session.Session, text string) []Reply {
	p := e.parse(ctx, s, text)
	p.Format = lesson.FormatQuick
	s.Params = p
	return e.generate(ctx, s)
}

// parse extracts parameters from text, or uses the whole text as the
// topic when extraction fails.
func (e *Engine) parse(ctx context.Context, s *session.Session, text string) lesson.Parameters {
	p, err := e.lessons.ParseRequest(ctx, text, s.Locale)
	if err != nil {
		e.log.Debug("request not parsed, using text as topic", "user_id", s.ID, "error", err)
		p = lesson.Parameters{Topic: text}
	}
	p.Language = s.Locale
	return p
}
