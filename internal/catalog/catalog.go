// Package catalog holds the fixed choices the wizard offers: subjects with
// their topic suggestions, age buckets, class lengths and countries.
package catalog

import (
	"math/rand/v2"
	"strings"
)

// Topic is one suggestion. Name is what goes into the prompt, Label is the
// shorter button text.
type Topic struct {
	Name  string
	Label string
}

// Category groups related topics within a subject.
type Category struct {
	Name   string
	Topics []Topic
}

// Subject is a top-level area with its topic categories.
type Subject struct {
	Name       string
	Categories []Category
}

// Topics flattens every category of the subject in display order.
func (s Subject) Topics() []Topic {
	var out []Topic
	for _, c := range s.Categories {
		out = append(out, c.Topics...)
	}
	return out
}

type catalog struct {
	subjects  []Subject
	byName    map[string]*Subject
	allTopics []Topic
}

// c is the package-level catalog, set by init() in seed.go.
var c *catalog

func buildCatalog(subjects []Subject) *catalog {
	ct := &catalog{
		subjects: subjects,
		byName:   make(map[string]*Subject, len(subjects)),
	}
	for i := range ct.subjects {
		ct.byName[strings.ToLower(ct.subjects[i].Name)] = &ct.subjects[i]
		ct.allTopics = append(ct.allTopics, ct.subjects[i].Topics()...)
	}
	return ct
}

// Subjects returns every subject in display order.
func Subjects() []Subject {
	return c.subjects
}

// SubjectNames returns the subject names in display order.
func SubjectNames() []string {
	out := make([]string, len(c.subjects))
	for i, s := range c.subjects {
		out[i] = s.Name
	}
	return out
}

// Lookup finds a subject by name, ignoring case.
func Lookup(name string) (Subject, bool) {
	s, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Subject{}, false
	}
	return *s, true
}

// Sample returns up to n distinct topics for subject, drawn with rng. An
// unknown subject samples from every subject.
func Sample(subject string, n int, rng *rand.Rand) []Topic {
	pool := c.allTopics
	if s, ok := Lookup(subject); ok {
		pool = s.Topics()
	}
	if n <= 0 || len(pool) == 0 {
		return nil
	}

	idx := rng.Perm(len(pool))
	if n > len(idx) {
		n = len(idx)
	}
	out := make([]Topic, n)
	for i := 0; i < n; i++ {
		out[i] = pool[idx[i]]
	}
	return out
}

// AgeBuckets are the offered student age ranges.
func AgeBuckets() []string {
	return []string{"5-7", "7-9", "9-11", "11-13", "13-15", "15-18"}
}

// Durations are the offered class lengths in minutes.
func Durations() []int {
	return []int{30, 45, 60, 90}
}

// Countries are the countries suggested on the location step.
func Countries() []string {
	return []string{"India", "Kenya", "Nigeria", "Ghana", "Philippines"}
}

var flags = map[string]string{
	"india":        "🇮🇳",
	"kenya":        "🇰🇪",
	"nigeria":      "🇳🇬",
	"ghana":        "🇬🇭",
	"philippines":  "🇵🇭",
	"south africa": "🇿🇦",
	"tanzania":     "🇹🇿",
	"uganda":       "🇺🇬",
	"pakistan":     "🇵🇰",
	"bangladesh":   "🇧🇩",
}

// Flag returns the flag emoji for country, or a globe when unknown.
func Flag(country string) string {
	if f, ok := flags[strings.ToLower(strings.TrimSpace(country))]; ok {
		return f
	}
	return "🌍"
}
