// Package i18n holds the user-facing strings of the wizard in every
// supported language.
package i18n

import (
	"fmt"
	"strings"

	"github.com/orsinium-labs/enum"
)

// Locale is a supported interface language.
type Locale enum.Member[string]

var (
	English = Locale{"en"}
	Spanish = Locale{"es"}
	Locales = enum.New(English, Spanish)
)

// Default is the locale of a fresh session.
var Default = English

// ParseLocale accepts a language code or name in either language.
func ParseLocale(s string) (Locale, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "en", "english", "inglés", "ingles":
		return English, true
	case "es", "spanish", "español", "espanol":
		return Spanish, true
	}
	return Locale{}, false
}

// Code returns the ISO 639-1 code.
func (l Locale) Code() string {
	if l.Value == "" {
		return Default.Value
	}
	return l.Value
}

// Name is the language's own name for itself.
func (l Locale) Name() string {
	if l == Spanish {
		return "Español"
	}
	return "English"
}

func (l Locale) String() string { return l.Code() }

func (l Locale) MarshalText() ([]byte, error) {
	return []byte(l.Code()), nil
}

func (l *Locale) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*l = Default
		return nil
	}
	parsed, ok := ParseLocale(string(b))
	if !ok {
		return fmt.Errorf("unsupported locale %q", b)
	}
	*l = parsed
	return nil
}
