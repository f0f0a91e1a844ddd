package wizard

import (
	"context"
	"unicode/utf8"

	"github.com/tooley/tooley/internal/lesson"
	"github.com/tooley/tooley/internal/render"
	"github.com/tooley/tooley/internal/session"
)

// generate runs the backend for the collected parameters and delivers the
// result. A failure returns the session to idle.
func (e *Engine) generate(ctx context.Context, s *session.Session) []Reply {
	s.State = session.StateGenerating
	s.Params.Language = s.Locale
	replies := []Reply{e.say(s, "generating")}

	text, err := e.withSlot(ctx, func() (string, error) {
		return e.lessons.Generate(ctx, s.Params)
	})
	if err != nil {
		e.log.Error("generation failed", "user_id", s.ID, "topic", s.Params.Topic, "error", err)
		s.State = session.StateIdle
		return append(replies, e.say(s, "generate.failed"))
	}
	s.LastLesson = text
	s.SharePending = false

	if s.Params.Format == lesson.FormatQuick {
		return append(replies, e.deliverQuick(s, text)...)
	}
	return append(replies, e.deliverDocuments(s, text, false)...)
}

// revise applies feedback to the last lesson.
func (e *Engine) revise(ctx context.Context, s *session.Session, feedback string) []Reply {
	if s.LastLesson == "" {
		s.State = session.StateIdle
		return []Reply{e.say(s, "tweak.empty")}
	}
	s.State = session.StateGenerating
	s.Params.Language = s.Locale
	replies := []Reply{e.say(s, "revising")}

	text, err := e.withSlot(ctx, func() (string, error) {
		return e.lessons.Revise(ctx, s.Params, s.LastLesson, feedback)
	})
	if err != nil {
		e.log.Error("revision failed", "user_id", s.ID, "error", err)
		s.State = session.StateIdle
		return append(replies, e.say(s, "generate.failed"))
	}
	s.Params.SpecialRequests = feedback
	s.LastLesson = text

	if s.Params.Format == lesson.FormatQuick {
		return append(replies, e.deliverQuick(s, text)...)
	}
	replies = append(replies, e.documents(s, text, true)...)
	s.State = session.StateLessonReady
	return append(replies, e.prompt(s))
}

func (e *Engine) withSlot(ctx context.Context, fn func() (string, error)) (string, error) {
	if err := e.gen.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer e.gen.Release(1)
	return fn()
}

func (e *Engine) deliverQuick(s *session.Session, text string) []Reply {
	s.State = session.StateLessonReady
	return []Reply{{Text: text}, e.prompt(s)}
}

// deliverDocuments sends the PDF and web page and asks about sharing.
func (e *Engine) deliverDocuments(s *session.Session, text string, revised bool) []Reply {
	replies := e.documents(s, text, revised)
	s.State = session.StateAwaitingShareDecision
	return append(replies, e.prompt(s))
}

// documents renders text. When no PDF can be built the text itself is
// sent instead, so the lesson is never lost.
func (e *Engine) documents(s *session.Session, text string, revised bool) []Reply {
	meta := render.MetaFrom(s.Params)
	stem := render.FileStem(s.Params.Topic)
	caption := e.t(s, "doc.pdf")
	if revised {
		stem += "-revised"
		caption = e.t(s, "doc.revised")
	}

	var replies []Reply
	res, pdfErr := e.renderer.PDF(text, meta)
	if pdfErr != nil {
		e.log.Error("pdf rendering failed", "user_id", s.ID, "error", pdfErr)
		replies = append(replies, Reply{Text: e.t(s, "doc.no_pdf")}, Reply{Text: text})
	} else {
		if len(res.Failures) > 0 {
			e.log.Warn("pdf fell back", "user_id", s.ID, "tier", res.Tier)
		}
		replies = append(replies, Reply{Document: &Document{
			Filename: stem + ".pdf",
			MIMEType: "application/pdf",
			Data:     res.PDF,
			Caption:  caption,
		}})
	}

	if page, err := e.renderer.HTML(text, meta); err != nil {
		e.log.Error("html rendering failed", "user_id", s.ID, "error", err)
	} else {
		replies = append(replies, Reply{Document: &Document{
			Filename: stem + ".html",
			MIMEType: "text/html",
			Data:     page,
			Caption:  e.t(s, "doc.html"),
		}})
	}

	if pdfErr == nil && utf8.RuneCountInString(text) < e.cfg.TextLimit {
		replies = append(replies, Reply{Text: text})
	}
	return replies
}
