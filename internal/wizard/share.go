package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tooley/tooley/internal/catalog"
	"github.com/tooley/tooley/internal/library"
	"github.com/tooley/tooley/internal/render"
	"github.com/tooley/tooley/internal/session"
)

// keepPrivate stores the lesson unlisted without telling the user about
// the outcome.
func (e *Engine) keepPrivate(ctx context.Context, s *session.Session) []Reply {
	if s.LastLesson != "" && e.library.Enabled() {
		rec := library.NewRecord(s.Params, s.LastLesson, "", false)
		outcome := e.library.Share(ctx, rec)
		e.log.Info("private lesson stored", "user_id", s.ID, "lesson_id", rec.ID, "outcome", outcome.String())
	}
	s.SharePending = false
	s.State = session.StateIdle
	r := e.say(s, "next.ask")
	r.Keyboard = e.nextKeyboard(s)
	return []Reply{r}
}

// shareNamed publishes the lesson under name. The user is only told it
// was shared when it was; the flow always ends at the follow-up menu.
func (e *Engine) shareNamed(ctx context.Context, s *session.Session, name string) []Reply {
	var replies []Reply
	if s.LastLesson == "" {
		replies = append(replies, e.say(s, "tweak.empty"))
	} else {
		rec := library.NewRecord(s.Params, s.LastLesson, name, true)
		switch e.library.Share(ctx, rec) {
		case library.Shared:
			where := e.t(s, "share.world")
			if s.Params.HasCountry() {
				where = strings.TrimSpace(s.Params.Country)
			}
			replies = append(replies, e.say(s, "share.done", where))
		case library.KeptLocally:
			replies = append(replies, e.say(s, "share.local"))
		default:
			replies = append(replies, e.say(s, "share.unavailable"))
		}
	}
	s.SharePending = false
	s.State = session.StateIdle
	next := e.say(s, "next.ask")
	next.Keyboard = e.nextKeyboard(s)
	return append(replies, next)
}

func (e *Engine) libraryDown(s *session.Session) []Reply {
	r := e.say(s, "browse.unavailable")
	r.Keyboard = [][]Button{{e.actionButton(s, "btn.new", actNew)}}
	return []Reply{r}
}

func shortTopic(topic string) string {
	if utf8.RuneCountInString(topic) <= 30 {
		return topic
	}
	return string([]rune(topic)[:30]) + "…"
}

func (e *Engine) getButton(s *session.Session, rec library.Record) []Button {
	return []Button{{Label: e.t(s, "btn.get", shortTopic(rec.Topic)), Token: token(kindGet, rec.ID)}}
}

// browse lists the most recent shared lessons.
func (e *Engine) browse(ctx context.Context, s *session.Session) []Reply {
	if !e.library.Enabled() {
		return e.libraryDown(s)
	}
	recent, err := e.library.ListRecent(ctx, e.cfg.BrowseLimit)
	if err != nil {
		e.log.Warn("browse failed", "user_id", s.ID, "error", err)
		return e.libraryDown(s)
	}
	if len(recent) == 0 {
		r := e.say(s, "browse.empty")
		r.Keyboard = [][]Button{{e.actionButton(s, "btn.create", actNew)}}
		return []Reply{r}
	}

	total := len(recent)
	if st, err := e.library.Stats(ctx); err == nil {
		total = st.Total
	}
	var b strings.Builder
	b.WriteString(e.t(s, "browse.header", total))
	var kb [][]Button
	for i, rec := range recent {
		b.WriteString(e.t(s, "browse.item", i+1, catalog.Flag(rec.Country), rec.Topic,
			e.subjectLabel(s, rec.Subject), rec.Ages, minutes(rec.Duration), rec.AuthorName))
		kb = append(kb, e.getButton(s, rec))
	}
	kb = append(kb,
		[]Button{{Label: e.t(s, "btn.search"), Token: token(kindBrowse, kindSubject)}},
		[]Button{e.actionButton(s, "btn.create", actNew)},
	)
	return []Reply{{Text: b.String(), Markdown: true, Keyboard: kb}}
}

func minutes(n int) string {
	if n <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d min", n)
}

func (e *Engine) searchMenu(s *session.Session) Reply {
	r := e.say(s, "search.ask")
	var bs []Button
	for _, name := range catalog.SubjectNames() {
		bs = append(bs, Button{Label: e.subjectLabel(s, name), Token: token(kindSearch, name)})
	}
	r.Keyboard = append(rows(2, bs...), []Button{e.actionButton(s, "btn.back", actBrowse)})
	return r
}

// search lists shared lessons for one subject.
func (e *Engine) search(ctx context.Context, s *session.Session, subject string) []Reply {
	if !e.library.Enabled() {
		return e.libraryDown(s)
	}
	found, err := e.library.Search(ctx, library.Query{Subject: subject}, 2*e.cfg.BrowseLimit)
	if err != nil {
		e.log.Warn("search failed", "user_id", s.ID, "error", err)
		return e.libraryDown(s)
	}
	back := []Button{e.actionButton(s, "btn.back", actBrowse)}
	label := e.subjectLabel(s, subject)
	if len(found) == 0 {
		r := e.say(s, "search.empty", label)
		r.Keyboard = [][]Button{back}
		return []Reply{r}
	}

	var b strings.Builder
	b.WriteString(e.t(s, "search.header", label))
	var kb [][]Button
	for i, rec := range found {
		b.WriteString(e.t(s, "search.item", i+1, catalog.Flag(rec.Country), rec.Topic, rec.Ages, rec.AuthorName))
		kb = append(kb, e.getButton(s, rec))
	}
	return []Reply{{Text: b.String(), Markdown: true, Keyboard: append(kb, back)}}
}

// getShared sends a shared lesson as a PDF.
func (e *Engine) getShared(ctx context.Context, s *session.Session, id string) []Reply {
	if !e.library.Enabled() {
		return e.libraryDown(s)
	}
	rec, err := e.library.Get(ctx, id)
	if errors.Is(err, library.ErrNotFound) {
		return []Reply{e.say(s, "get.missing")}
	}
	if err != nil {
		e.log.Warn("get failed", "user_id", s.ID, "lesson_id", id, "error", err)
		return e.libraryDown(s)
	}

	meta := render.Meta{
		Subject: rec.Subject,
		Topic:   rec.Topic,
		Ages:    rec.Ages,
		Country: rec.Country,
		Locale:  s.Locale,
	}
	if rec.Duration > 0 {
		meta.Duration = fmt.Sprint(rec.Duration)
	}

	var replies []Reply
	res, err := e.renderer.PDF(rec.Content, meta)
	if err != nil {
		replies = append(replies, Reply{Text: e.t(s, "doc.no_pdf")}, Reply{Text: rec.Content})
	} else {
		replies = append(replies, Reply{Document: &Document{
			Filename: render.FileStem(rec.Topic) + ".pdf",
			MIMEType: "application/pdf",
			Data:     res.PDF,
			Caption:  e.t(s, "doc.shared", rec.Topic, rec.AuthorName, rec.Country),
		}})
		if utf8.RuneCountInString(rec.Content) < e.cfg.TextLimit {
			replies = append(replies, Reply{Text: rec.Content})
		}
	}

	next := e.say(s, "next.ask")
	next.Keyboard = [][]Button{{
		e.actionButton(s, "btn.browse_more", actBrowse),
		e.actionButton(s, "btn.new", actNew),
	}}
	return append(replies, next)
}
