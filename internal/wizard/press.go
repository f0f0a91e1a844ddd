package wizard

import (
	"context"
	"strconv"
	"strings"

	"github.com/tooley/tooley/internal/catalog"
	"github.com/tooley/tooley/internal/i18n"
	"github.com/tooley/tooley/internal/lesson"
	"github.com/tooley/tooley/internal/session"
)

// onPress handles a button. Action, language and library buttons work in
// any state; step buttons only in the state that offered them.
func (e *Engine) onPress(ctx context.Context, s *session.Session, tok string) []Reply {
	kind, value := parseToken(tok)
	switch kind {
	case kindAction:
		return e.onAction(ctx, s, value)
	case kindLang:
		return e.onLanguage(s, value)
	case kindBrowse:
		if value == kindSubject {
			return []Reply{e.searchMenu(s)}
		}
	case kindSearch:
		return e.search(ctx, s, value)
	case kindGet:
		return e.getShared(ctx, s, value)
	}

	if r, ok := e.onStep(ctx, s, kind, value); ok {
		return r
	}
	return []Reply{e.say(s, "fallback")}
}

func (e *Engine) onAction(ctx context.Context, s *session.Session, act string) []Reply {
	switch act {
	case actNew:
		return e.startGuided(s)
	case actBrowse:
		return e.browse(ctx, s)
	case actLanguage:
		s.State = session.StateAwaitingLanguage
		return []Reply{e.prompt(s)}
	case actCancel:
		s.Reset()
		return []Reply{e.say(s, "cancelled")}
	case actTweak:
		if s.LastLesson == "" {
			return []Reply{e.say(s, "tweak.empty")}
		}
		s.State = session.StateAwaitingTweak
		return []Reply{e.prompt(s)}
	case actNewTopic:
		if s.Params.Subject == "" {
			return e.startGuided(s)
		}
		s.Params.Topic = ""
		s.LastLesson = ""
		s.State = session.StateAwaitingTopicText
		return []Reply{e.say(s, "topic.instead")}
	case actCustomize:
		// Keep what was understood and ask for the rest.
		p := s.Params
		p.Language = s.Locale
		s.Reset()
		s.Params = p
		switch {
		case p.Subject == "":
			s.State = session.StateAwaitingSubject
		case p.Topic == "":
			s.State = session.StateAwaitingTopic
		default:
			s.State = session.StateAwaitingAges
		}
		return []Reply{e.prompt(s)}
	case actPDF:
		if s.LastLesson == "" {
			return []Reply{e.say(s, "tweak.empty")}
		}
		s.Params.Format = lesson.FormatStandard
		return e.deliverDocuments(s, s.LastLesson, false)
	case actShare:
		if s.LastLesson == "" {
			return []Reply{e.say(s, "tweak.empty")}
		}
		s.SharePending = true
		s.State = session.StateAwaitingTeacherName
		return []Reply{e.prompt(s)}
	}
	return []Reply{e.say(s, "fallback")}
}

func (e *Engine) onLanguage(s *session.Session, code string) []Reply {
	loc, ok := i18n.ParseLocale(code)
	if !ok {
		return []Reply{e.say(s, "fallback")}
	}
	s.Locale = loc
	s.Params.Language = loc
	if s.State == session.StateAwaitingLanguage {
		s.State = session.StateIdle
	}
	return []Reply{e.say(s, "language.set"), e.prompt(s)}
}

// onStep handles the buttons of the guided questions. ok is false when the
// button does not belong to the current state.
func (e *Engine) onStep(ctx context.Context, s *session.Session, kind, value string) ([]Reply, bool) {
	switch {
	case kind == kindSubject && s.State == session.StateAwaitingSubject:
		if value == valOther {
			s.State = session.StateAwaitingSubjectText
			break
		}
		subj, found := catalog.Lookup(value)
		if !found {
			return nil, false
		}
		s.Params.Subject = subj.Name
		s.Suggestions = nil
		s.State = session.StateAwaitingTopic

	case kind == kindTopic && s.State == session.StateAwaitingTopic:
		switch value {
		case valMore:
			s.Suggestions = e.sample(s.Params.Subject)
		case valCustom:
			s.State = session.StateAwaitingTopicText
		default:
			i, err := strconv.Atoi(value)
			if err != nil || i < 0 || i >= len(s.Suggestions) {
				return nil, false
			}
			s.Params.Topic = s.Suggestions[i].Name
			s.Suggestions = nil
			s.State = session.StateAwaitingAges
		}

	case kind == kindAges && s.State == session.StateAwaitingAges:
		if value == valOther {
			s.State = session.StateAwaitingAgesText
			break
		}
		s.Params.Ages = value
		s.State = session.StateAwaitingDuration

	case kind == kindDuration && s.State == session.StateAwaitingDuration:
		if value == valOther {
			s.State = session.StateAwaitingDurationText
			break
		}
		if _, err := strconv.Atoi(value); err != nil {
			return nil, false
		}
		s.Params.Duration = value
		s.State = session.StateAwaitingCountry

	case kind == kindCountry && s.State == session.StateAwaitingCountry:
		switch value {
		case valOther:
			s.State = session.StateAwaitingCountryText
		case valSkip:
			s.Params.Country = ""
			s.State = session.StateAwaitingMaterials
		default:
			s.Params.Country = value
			s.State = session.StateAwaitingMaterials
		}

	case kind == kindMaterials && s.State == session.StateAwaitingMaterials:
		if value == valOther {
			s.State = session.StateAwaitingMaterialsText
			break
		}
		m := lesson.MaterialsKinds.Parse(value)
		if m == nil || *m == lesson.MaterialsCustom {
			return nil, false
		}
		s.Params.Materials, s.Params.MaterialsNote = *m, ""
		s.State = session.StateAwaitingStyle

	case kind == kindStyle && s.State == session.StateAwaitingStyle:
		if value == valOther {
			s.State = session.StateAwaitingStyleText
			break
		}
		st := lesson.Styles.Parse(value)
		if st == nil || *st == lesson.StyleCustom {
			return nil, false
		}
		s.Params.Style, s.Params.StyleNote = *st, ""
		s.State = session.StateAwaitingFormat

	case kind == kindFormat && (s.State == session.StateAwaitingFormat || s.State == session.StateConfirmingRequest):
		f, found := lesson.ParseFormat(value)
		if !found {
			return nil, false
		}
		s.Params.Format = f
		return e.generate(ctx, s), true

	case kind == kindShare && s.State == session.StateAwaitingShareDecision:
		switch value {
		case "yes":
			s.SharePending = true
			s.State = session.StateAwaitingTeacherName
		case "no":
			return e.keepPrivate(ctx, s), true
		default:
			return nil, false
		}

	default:
		return nil, false
	}
	return []Reply{e.prompt(s)}, true
}

func (e *Engine) sample(subject string) []catalog.Topic {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return catalog.Sample(strings.TrimSpace(subject), e.cfg.TopicSuggestions, e.rng)
}
