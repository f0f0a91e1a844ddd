package wizard

import (
	"strconv"

	"github.com/tooley/tooley/internal/catalog"
	"github.com/tooley/tooley/internal/i18n"
	"github.com/tooley/tooley/internal/lesson"
	"github.com/tooley/tooley/internal/session"
)

// prompt is the question for the session's state together with the
// buttons that state accepts. The topic step fills in suggestions when
// none are cached.
func (e *Engine) prompt(s *session.Session) Reply {
	p := s.Params
	var r Reply
	switch s.State {
	case session.StateIdle:
		r = e.say(s, "next.ask")
		r.Keyboard = e.menuKeyboard(s)

	case session.StateAwaitingLanguage:
		r = e.say(s, "language.ask")
		r.Keyboard = [][]Button{{
			{Label: i18n.English.Name(), Token: token(kindLang, i18n.English.Code())},
			{Label: i18n.Spanish.Name(), Token: token(kindLang, i18n.Spanish.Code())},
		}}

	case session.StateAwaitingSubject:
		r = e.say(s, "subject.ask")
		var bs []Button
		for _, name := range catalog.SubjectNames() {
			bs = append(bs, Button{Label: e.subjectLabel(s, name), Token: token(kindSubject, name)})
		}
		r.Keyboard = append(rows(2, bs...), []Button{{Label: e.t(s, "btn.type_own"), Token: token(kindSubject, valOther)}})

	case session.StateAwaitingTopic:
		if len(s.Suggestions) == 0 {
			s.Suggestions = e.sample(p.Subject)
		}
		r = e.say(s, "topic.ask", e.subjectLabel(s, p.Subject))
		for i, t := range s.Suggestions {
			r.Keyboard = append(r.Keyboard, []Button{{Label: t.Label, Token: token(kindTopic, strconv.Itoa(i))}})
		}
		r.Keyboard = append(r.Keyboard, []Button{
			{Label: e.t(s, "topic.more"), Token: token(kindTopic, valMore)},
			{Label: e.t(s, "btn.type_own"), Token: token(kindTopic, valCustom)},
		})

	case session.StateAwaitingAges:
		r = e.say(s, "ages.ask", p.Topic)
		var bs []Button
		for _, a := range catalog.AgeBuckets() {
			bs = append(bs, Button{Label: e.t(s, "ages.label", a), Token: token(kindAges, a)})
		}
		r.Keyboard = append(rows(2, bs...), []Button{{Label: e.t(s, "btn.type_own"), Token: token(kindAges, valOther)}})

	case session.StateAwaitingDuration:
		r = e.say(s, "duration.ask", p.Ages)
		var bs []Button
		for _, d := range catalog.Durations() {
			bs = append(bs, Button{Label: e.t(s, "duration.label", d), Token: token(kindDuration, strconv.Itoa(d))})
		}
		r.Keyboard = append(rows(2, bs...), []Button{{Label: e.t(s, "btn.type_own"), Token: token(kindDuration, valOther)}})

	case session.StateAwaitingCountry:
		r = e.say(s, "country.ask", p.Duration)
		var bs []Button
		for _, c := range catalog.Countries() {
			bs = append(bs, Button{Label: catalog.Flag(c) + " " + c, Token: token(kindCountry, c)})
		}
		bs = append(bs, Button{Label: "🌍 " + e.t(s, "btn.type_own"), Token: token(kindCountry, valOther)})
		r.Keyboard = append(rows(2, bs...), []Button{{Label: e.t(s, "country.skip"), Token: token(kindCountry, valSkip)}})

	case session.StateAwaitingMaterials:
		location := e.t(s, "materials.universal")
		if p.HasCountry() {
			location = p.Country
		}
		r = e.say(s, "materials.ask", location)
		for _, m := range []lesson.Materials{lesson.MaterialsNone, lesson.MaterialsBasic, lesson.MaterialsStandard} {
			r.Keyboard = append(r.Keyboard, []Button{{Label: e.t(s, "materials."+m.Value), Token: token(kindMaterials, m.Value)}})
		}
		r.Keyboard = append(r.Keyboard, []Button{{Label: e.t(s, "btn.type_own"), Token: token(kindMaterials, valOther)}})

	case session.StateAwaitingStyle:
		r = e.say(s, "style.ask")
		for _, st := range []lesson.Style{lesson.StyleInteractive, lesson.StyleStructured, lesson.StyleStorytelling, lesson.StyleMixed} {
			r.Keyboard = append(r.Keyboard, []Button{{Label: e.t(s, "style."+st.Value), Token: token(kindStyle, st.Value)}})
		}
		r.Keyboard = append(r.Keyboard, []Button{{Label: e.t(s, "btn.type_own"), Token: token(kindStyle, valOther)}})

	case session.StateAwaitingFormat:
		r = e.say(s, "format.ask")
		r.Keyboard = e.formatKeyboard(s)

	case session.StateConfirmingRequest:
		r = e.say(s, "confirm.ask", p.Topic)
		fk := e.formatKeyboard(s)
		r.Keyboard = [][]Button{
			{fk[0][0], fk[1][0]},
			{fk[2][0]},
			{{Label: e.t(s, "btn.customize"), Token: token(kindAction, actCustomize)}},
		}

	case session.StateGenerating:
		r = e.say(s, "generating")
		r.Keyboard = [][]Button{{e.actionButton(s, "btn.cancel", actCancel)}}

	case session.StateLessonReady:
		r = e.say(s, "next.ask")
		r.Keyboard = [][]Button{
			{e.actionButton(s, "btn.pdf", actPDF), e.actionButton(s, "btn.tweak", actTweak)},
			{e.actionButton(s, "btn.share", actShare), e.actionButton(s, "btn.new", actNew)},
		}

	case session.StateAwaitingShareDecision:
		r = e.say(s, "share.ask")
		r.Keyboard = [][]Button{{
			{Label: e.t(s, "btn.share"), Token: token(kindShare, "yes")},
			{Label: e.t(s, "btn.keep"), Token: token(kindShare, "no")},
		}}

	case session.StateAwaitingTeacherName:
		r = e.say(s, "share.name")

	case session.StateAwaitingTweak:
		r = e.say(s, "tweak.ask")

	case session.StateAwaitingQuickInput:
		r = e.say(s, "quick.ask")

	case session.StateAwaitingSubjectText:
		r = e.say(s, "subject.type")
	case session.StateAwaitingTopicText:
		r = e.say(s, "topic.type", e.subjectLabel(s, p.Subject))
	case session.StateAwaitingAgesText:
		r = e.say(s, "ages.type")
	case session.StateAwaitingDurationText:
		r = e.say(s, "duration.type")
	case session.StateAwaitingCountryText:
		r = e.say(s, "country.type")
	case session.StateAwaitingMaterialsText:
		r = e.say(s, "materials.type")
	case session.StateAwaitingStyleText:
		r = e.say(s, "style.type")

	default:
		s.State = session.StateIdle
		return e.prompt(s)
	}

	if s.State.FreeText() {
		r.Keyboard = [][]Button{{e.actionButton(s, "btn.cancel", actCancel)}}
	}
	return r
}

func (e *Engine) actionButton(s *session.Session, labelKey, act string) Button {
	return Button{Label: e.t(s, labelKey), Token: token(kindAction, act)}
}

func (e *Engine) menuKeyboard(s *session.Session) [][]Button {
	return [][]Button{
		{e.actionButton(s, "btn.create", actNew), e.actionButton(s, "btn.browse", actBrowse)},
		{e.actionButton(s, "btn.language", actLanguage)},
	}
}

// nextKeyboard follows a delivered or shared lesson.
func (e *Engine) nextKeyboard(s *session.Session) [][]Button {
	return [][]Button{
		{e.actionButton(s, "btn.tweak", actTweak), e.actionButton(s, "btn.new_topic", actNewTopic)},
		{e.actionButton(s, "btn.browse", actBrowse), e.actionButton(s, "btn.new", actNew)},
	}
}

func (e *Engine) formatKeyboard(s *session.Session) [][]Button {
	var out [][]Button
	for _, f := range []lesson.Format{lesson.FormatQuick, lesson.FormatStandard, lesson.FormatFull} {
		out = append(out, []Button{{Label: e.t(s, "format."+f.Value), Token: token(kindFormat, f.Value)}})
	}
	return out
}

func (e *Engine) subjectLabel(s *session.Session, name string) string {
	if key := "subject." + name; i18n.Has(key) {
		return e.t(s, key)
	}
	return name
}
