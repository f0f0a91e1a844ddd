package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/tooley/tooley/internal/i18n"
	"github.com/tooley/tooley/internal/lesson"
	"github.com/tooley/tooley/internal/library"
	"github.com/tooley/tooley/internal/render"
)

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*f = flexString(n.String())
	return nil
}

// lessonRequest is the body of POST /api/lesson.
type lessonRequest struct {
	Subject         string     `json:"subject"`
	Topic           string     `json:"topic"`
	Ages            string     `json:"ages"`
	Duration        flexString `json:"duration"`
	Country         string     `json:"country"`
	Materials       string     `json:"materials"`
	Style           string     `json:"style"`
	Format          string     `json:"format"`
	SpecialRequests string     `json:"special_requests"`
	Language        string     `json:"language"`
}

// params applies the website defaults and validates the request.
func (req lessonRequest) params() (lesson.Parameters, error) {
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Topic) == "" {
		return lesson.Parameters{}, errors.New("subject and topic are required")
	}
	p := lesson.Parameters{
		Subject:         strings.TrimSpace(req.Subject),
		Topic:           strings.TrimSpace(req.Topic),
		Ages:            orDefault(req.Ages, "8-12"),
		Duration:        orDefault(string(req.Duration), "45"),
		Country:         orDefault(req.Country, lesson.NoCountry),
		SpecialRequests: strings.TrimSpace(req.SpecialRequests),
		Format:          lesson.FormatStandard,
		Language:        i18n.English,
	}
	p.SetMaterials(orDefault(req.Materials, "basic"))
	p.SetStyle(orDefault(req.Style, "mixed"))
	if req.Format != "" {
		f, ok := lesson.ParseFormat(req.Format)
		if !ok {
			return lesson.Parameters{}, fmt.Errorf("unknown format %q", req.Format)
		}
		p.Format = f
	}
	if req.Language != "" {
		loc, ok := i18n.ParseLocale(req.Language)
		if !ok {
			return lesson.Parameters{}, fmt.Errorf("unsupported language %q", req.Language)
		}
		p.Language = loc
	}
	return p, nil
}

// documentRequest is the body of POST /api/pdf and /api/html.
type documentRequest struct {
	Content  string     `json:"content"`
	Subject  string     `json:"subject"`
	Topic    string     `json:"topic"`
	Ages     string     `json:"ages"`
	Duration flexString `json:"duration"`
	Country  string     `json:"country"`
	Language string     `json:"language"`
}

func (req documentRequest) meta() render.Meta {
	m := render.Meta{
		Subject:  req.Subject,
		Topic:    req.Topic,
		Ages:     req.Ages,
		Duration: string(req.Duration),
		Country:  req.Country,
		Locale:   i18n.English,
	}
	if loc, ok := i18n.ParseLocale(req.Language); ok {
		m.Locale = loc
	}
	return m
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"version":   s.deps.Version,
		"timestamp": s.now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	var req lessonRequest
	if !s.decode(w, r, &req) {
		return
	}
	p, err := req.params()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if s.deps.Lessons == nil {
		writeError(w, http.StatusServiceUnavailable, "lesson generation is not configured")
		return
	}
	text, err := s.deps.Lessons.Generate(r.Context(), p)
	if err != nil {
		s.log.Error("api generation failed", "topic", p.Topic, "error", err)
		writeError(w, http.StatusBadGateway, "lesson generation failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"lesson": text, "params": p.WithDefaults()})
}

func (s *Server) pdf(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusUnprocessableEntity, "content is required")
		return
	}
	stamp := s.now().Format("20060102-150405")
	res, err := s.deps.Renderer.PDF(req.Content, req.meta())
	if err != nil {
		s.log.Warn("api pdf fell back to text", "error", err)
		attach(w, "text/plain; charset=utf-8", "tooley-lesson-"+stamp+".txt", []byte(req.Content))
		return
	}
	w.Header().Set("X-Tooley-PDF-Tier", res.Tier)
	attach(w, "application/pdf", "tooley-lesson-"+stamp+".pdf", res.PDF)
}

func (s *Server) html(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusUnprocessableEntity, "content is required")
		return
	}
	page, err := s.deps.Renderer.HTML(req.Content, req.meta())
	if err != nil {
		s.log.Error("api html failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not render HTML")
		return
	}
	name := render.FileStem(req.Topic) + ".html"
	attach(w, "text/html; charset=utf-8", name, page)
}

func attach(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) libraryReady(w http.ResponseWriter) bool {
	if !s.deps.Library.Enabled() {
		writeError(w, http.StatusServiceUnavailable, "lesson library is not configured")
		return false
	}
	return true
}

func (s *Server) libraryError(w http.ResponseWriter, err error) {
	if errors.Is(err, library.ErrNotFound) {
		writeError(w, http.StatusNotFound, "lesson not found")
		return
	}
	s.log.Warn("api library failed", "error", err)
	writeError(w, http.StatusServiceUnavailable, "lesson library is unavailable")
}

func (s *Server) listLessons(w http.ResponseWriter, r *http.Request) {
	if !s.libraryReady(w) {
		return
	}
	q := r.URL.Query()
	limit := 20
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, 100)
	}

	query := library.Query{Subject: q.Get("subject"), Ages: q.Get("ages"), Country: q.Get("country")}
	var (
		recs []library.Record
		err  error
	)
	if query == (library.Query{}) {
		recs, err = s.deps.Library.ListRecent(r.Context(), limit)
	} else {
		recs, err = s.deps.Library.Search(r.Context(), query, limit)
	}
	if err != nil {
		s.libraryError(w, err)
		return
	}
	if recs == nil {
		recs = []library.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"lessons": recs, "count": len(recs)})
}

func (s *Server) getLesson(w http.ResponseWriter, r *http.Request) {
	if !s.libraryReady(w) {
		return
	}
	rec, err := s.deps.Library.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.libraryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	if !s.libraryReady(w) {
		return
	}
	st, err := s.deps.Library.Stats(r.Context())
	if err != nil {
		s.libraryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
