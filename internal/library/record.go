package library

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tooley/tooley/internal/lesson"
)

// Anonymous is stored when a teacher declines to give a name.
const Anonymous = "Anonymous"

// Record is one shared lesson. Records are never changed after creation.
type Record struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created"`
	AuthorName string    `json:"teacher_name"`
	Country    string    `json:"country"`
	Subject    string    `json:"subject"`
	Topic      string    `json:"topic"`
	Ages       string    `json:"ages"`
	Duration   int       `json:"duration"`
	Materials  string    `json:"materials"`
	Style      string    `json:"style"`
	Format     string    `json:"depth"`
	Content    string    `json:"content"`
	Public     bool      `json:"public"`
	Views      int       `json:"views"`
	Downloads  int       `json:"downloads"`
}

// NewRecord snapshots a generated lesson. An empty author or "skip" in any
// case is stored as Anonymous.
func NewRecord(p lesson.Parameters, content, author string, public bool) Record {
	p = p.WithDefaults()
	country := lesson.NoCountry
	if p.HasCountry() {
		country = strings.TrimSpace(p.Country)
	}
	return Record{
		ID:         NewID(),
		CreatedAt:  time.Now().UTC(),
		AuthorName: AuthorName(author),
		Country:    country,
		Subject:    p.Subject,
		Topic:      p.Topic,
		Ages:       p.Ages,
		Duration:   lesson.Minutes(p.Duration),
		Materials:  p.MaterialsText(),
		Style:      p.StyleText(),
		Format:     p.Format.Value,
		Content:    content,
		Public:     public,
	}
}

// AuthorName normalizes the name a teacher typed when sharing.
func AuthorName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "skip") {
		return Anonymous
	}
	return name
}

// NewID returns "les_" followed by a time-ordered UUID.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return "les_" + id.String()
}

// UnmarshalJSON accepts records written by older clients: public defaults
// to true and duration may be a number or a string.
func (r *Record) UnmarshalJSON(b []byte) error {
	type plain Record
	aux := struct {
		*plain
		Duration json.RawMessage `json:"duration"`
	}{plain: (*plain)(r)}
	r.Public = true
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	r.Duration = 0
	if len(aux.Duration) == 0 || string(aux.Duration) == "null" {
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(aux.Duration, &n); err == nil {
		if v, err := strconv.ParseFloat(n.String(), 64); err == nil {
			r.Duration = int(v)
			return nil
		}
	}
	var s string
	if err := json.Unmarshal(aux.Duration, &s); err == nil {
		r.Duration = lesson.Minutes(s)
	}
	return nil
}
