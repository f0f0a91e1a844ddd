// Package lesson turns wizard answers into a generation prompt and talks to
// the generation backend.
package lesson

import (
	"fmt"
	"strings"

	"github.com/orsinium-labs/enum"

	"github.com/tooley/tooley/internal/i18n"
)

// Materials is what the teacher has in the classroom.
type Materials enum.Member[string]

var (
	MaterialsNone     = Materials{"none"}
	MaterialsBasic    = Materials{"basic"}
	MaterialsStandard = Materials{"standard"}
	// MaterialsCustom carries a free-text description in Parameters.MaterialsNote.
	MaterialsCustom = Materials{"custom"}

	MaterialsKinds = enum.New(MaterialsNone, MaterialsBasic, MaterialsStandard, MaterialsCustom)
)

// Style is the preferred teaching style.
type Style enum.Member[string]

var (
	StyleInteractive  = Style{"interactive"}
	StyleStructured   = Style{"structured"}
	StyleStorytelling = Style{"storytelling"}
	StyleMixed        = Style{"mixed"}
	// StyleCustom carries a free-text description in Parameters.StyleNote.
	StyleCustom = Style{"custom"}

	Styles = enum.New(StyleInteractive, StyleStructured, StyleStorytelling, StyleMixed, StyleCustom)
)

// Format is how much detail the teacher wants back.
type Format enum.Member[string]

var (
	// FormatQuick is a short plan delivered in chat.
	FormatQuick = Format{"quick"}
	// FormatStandard is a complete plan delivered as PDF and HTML.
	FormatStandard = Format{"standard"}
	// FormatFull adds quiz questions and an extension activity.
	FormatFull = Format{"full"}

	Formats = enum.New(FormatQuick, FormatStandard, FormatFull)
)

// Parameters is the accumulated wizard answers.
type Parameters struct {
	Subject         string      `json:"subject"`
	Topic           string      `json:"topic"`
	Ages            string      `json:"ages"`
	Duration        string      `json:"duration"`
	Country         string      `json:"country,omitempty"`
	Materials       Materials   `json:"materials"`
	MaterialsNote   string      `json:"materials_note,omitempty"`
	Style           Style       `json:"style"`
	StyleNote       string      `json:"style_note,omitempty"`
	Format          Format      `json:"format"`
	SpecialRequests string      `json:"special_requests,omitempty"`
	Language        i18n.Locale `json:"language"`
}

// Defaults applied to unset fields.
const (
	DefaultSubject  = "General"
	DefaultTopic    = "general topic"
	DefaultAges     = "8-12"
	DefaultDuration = "45"
)

// WithDefaults returns a copy with every unset field filled in.
func (p Parameters) WithDefaults() Parameters {
	if strings.TrimSpace(p.Subject) == "" {
		p.Subject = DefaultSubject
	}
	if strings.TrimSpace(p.Topic) == "" {
		p.Topic = DefaultTopic
	}
	if strings.TrimSpace(p.Ages) == "" {
		p.Ages = DefaultAges
	}
	if strings.TrimSpace(p.Duration) == "" {
		p.Duration = DefaultDuration
	}
	if p.Materials == (Materials{}) || (p.Materials == MaterialsCustom && strings.TrimSpace(p.MaterialsNote) == "") {
		p.Materials = MaterialsBasic
	}
	if p.Style == (Style{}) || (p.Style == StyleCustom && strings.TrimSpace(p.StyleNote) == "") {
		p.Style = StyleMixed
	}
	if p.Format == (Format{}) {
		p.Format = FormatStandard
	}
	if p.Language == (i18n.Locale{}) {
		p.Language = i18n.Default
	}
	return p
}

// SetMaterials records s, routing unknown text to the custom variant.
func (p *Parameters) SetMaterials(s string) {
	p.Materials, p.MaterialsNote = ParseMaterials(s)
}

// SetStyle records s, routing unknown text to the custom variant.
func (p *Parameters) SetStyle(s string) {
	p.Style, p.StyleNote = ParseStyle(s)
}

// MaterialsText is the stored form: the token, or the note for custom.
func (p Parameters) MaterialsText() string {
	if p.Materials == MaterialsCustom {
		return p.MaterialsNote
	}
	return p.Materials.Value
}

// StyleText is the stored form: the token, or the note for custom.
func (p Parameters) StyleText() string {
	if p.Style == StyleCustom {
		return p.StyleNote
	}
	return p.Style.Value
}

// NoCountry is the stored country of lessons without a location.
const NoCountry = "Global"

// HasCountry reports whether a real location was given.
func (p Parameters) HasCountry() bool {
	c := strings.TrimSpace(p.Country)
	return c != "" && !strings.EqualFold(c, "skip") && !strings.EqualFold(c, NoCountry)
}

// ParseMaterials maps a token to its variant. Anything else becomes
// MaterialsCustom with s as the note.
func ParseMaterials(s string) (Materials, string) {
	v := strings.TrimSpace(s)
	if m := MaterialsKinds.Parse(strings.ToLower(v)); m != nil && *m != MaterialsCustom {
		return *m, ""
	}
	if v == "" {
		return Materials{}, ""
	}
	return MaterialsCustom, v
}

// ParseStyle maps a token to its variant. Anything else becomes StyleCustom
// with s as the note.
func ParseStyle(s string) (Style, string) {
	v := strings.TrimSpace(s)
	if st := Styles.Parse(strings.ToLower(v)); st != nil && *st != StyleCustom {
		return *st, ""
	}
	if v == "" {
		return Style{}, ""
	}
	return StyleCustom, v
}

// ParseFormat accepts only the three known tokens.
func ParseFormat(s string) (Format, bool) {
	if f := Formats.Parse(strings.ToLower(strings.TrimSpace(s))); f != nil {
		return *f, true
	}
	return Format{}, false
}

func (m Materials) MarshalText() ([]byte, error) { return []byte(m.Value), nil }

func (m *Materials) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*m = Materials{}
		return nil
	}
	parsed := MaterialsKinds.Parse(string(b))
	if parsed == nil {
		return fmt.Errorf("unknown materials %q", b)
	}
	*m = *parsed
	return nil
}

func (s Style) MarshalText() ([]byte, error) { return []byte(s.Value), nil }

func (s *Style) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*s = Style{}
		return nil
	}
	parsed := Styles.Parse(string(b))
	if parsed == nil {
		return fmt.Errorf("unknown style %q", b)
	}
	*s = *parsed
	return nil
}

func (f Format) MarshalText() ([]byte, error) { return []byte(f.Value), nil }

func (f *Format) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*f = Format{}
		return nil
	}
	parsed, ok := ParseFormat(string(b))
	if !ok {
		return fmt.Errorf("unknown format %q", b)
	}
	*f = parsed
	return nil
}
