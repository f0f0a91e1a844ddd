package render

import (
	"strconv"
	"strings"

	"github.com/tooley/tooley/internal/i18n"
	"github.com/tooley/tooley/internal/lesson"
)

// Meta describes the lesson for the specifications box and page titles.
type Meta struct {
	Subject  string
	Topic    string
	Ages     string
	Duration string
	Country  string
	Locale   i18n.Locale
}

// MetaFrom copies the displayable parameters.
func MetaFrom(p lesson.Parameters) Meta {
	m := Meta{
		Subject:  p.Subject,
		Topic:    p.Topic,
		Ages:     p.Ages,
		Duration: p.Duration,
		Locale:   p.Language,
	}
	if p.HasCountry() {
		m.Country = strings.TrimSpace(p.Country)
	}
	return m
}

// Title is "Subject: Topic", or whichever part is present.
func (m Meta) Title() string {
	switch {
	case m.Subject != "" && m.Topic != "":
		return m.Subject + ": " + m.Topic
	case m.Topic != "":
		return m.Topic
	case m.Subject != "":
		return m.Subject
	}
	return "Lesson Plan"
}

type specLine struct {
	Label string
	Value string
}

var specLabels = map[i18n.Locale][5]string{
	i18n.English: {"Subject", "Topic", "Ages", "Duration", "Location"},
	i18n.Spanish: {"Materia", "Tema", "Edades", "Duración", "Ubicación"},
}

// specs lists the non-empty fields with localized labels.
func (m Meta) specs() []specLine {
	labels, ok := specLabels[m.Locale]
	if !ok {
		labels = specLabels[i18n.English]
	}
	duration := strings.TrimSpace(m.Duration)
	if n, err := strconv.Atoi(duration); err == nil && n > 0 {
		duration += " min"
	}
	var out []specLine
	for i, v := range []string{m.Subject, m.Topic, m.Ages, duration, m.Country} {
		if strings.TrimSpace(v) != "" {
			out = append(out, specLine{Label: labels[i], Value: v})
		}
	}
	return out
}

// FileStem derives a file name stem from a topic: lower case, spaces as
// dashes, at most 30 characters.
func FileStem(topic string) string {
	var b strings.Builder
	n := 0
	for _, r := range strings.ToLower(strings.TrimSpace(topic)) {
		if n == 30 {
			break
		}
		switch {
		case r == ' ':
			b.WriteByte('-')
		case r == '/' || r == '\\' || r == ':' || r < 0x20:
			continue
		default:
			b.WriteRune(r)
		}
		n++
	}
	if b.Len() == 0 {
		return "lesson"
	}
	return b.String()
}
