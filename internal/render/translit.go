package render

import (
	"fmt"
	"maps"
	"os"
	"strings"
	"unicode/utf8"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// defaultTable maps non-ASCII runes to ASCII stand-ins for the PDF core
// fonts. Anything not listed becomes a space.
var defaultTable = map[rune]string{
	'á': "a", 'à': "a", 'â': "a", 'ä': "a", 'ã': "a", 'å': "a",
	'é': "e", 'è': "e", 'ê': "e", 'ë': "e",
	'í': "i", 'ì': "i", 'î': "i", 'ï': "i",
	'ó': "o", 'ò': "o", 'ô': "o", 'ö': "o", 'õ': "o",
	'ú': "u", 'ù': "u", 'û': "u", 'ü': "u",
	'Á': "A", 'À': "A", 'Â': "A", 'Ä': "A", 'Ã': "A", 'Å': "A",
	'É': "E", 'È': "E", 'Ê': "E", 'Ë': "E",
	'Í': "I", 'Ì': "I", 'Î': "I", 'Ï': "I",
	'Ó': "O", 'Ò': "O", 'Ô': "O", 'Ö': "O", 'Õ': "O",
	'Ú': "U", 'Ù': "U", 'Û': "U", 'Ü': "U",
	'ñ': "n", 'Ñ': "N", 'ç': "c", 'Ç': "C", 'ß': "ss",
	'¿': "?", '¡': "!",

	'–': "-", '—': "-", '‐': "-", '−': "-",
	'“': "\"", '”': "\"", '„': "\"", '«': "\"", '»': "\"",
	'‘': "'", '’': "'", '‚': "'",
	'…': "...", '•': "-", '·': "-", '◦': "-",
	'→': "->", '←': "<-", '⇒': "=>",
	'✓': "[x]", '✔': "[x]", '✅': "[x]", '✗': "[ ]", '✘': "[ ]", '❌': "[ ]",
	'★': "*", '⭐': "*",
	'×': "x", '÷': "/", '≤': "<=", '≥': ">=", '≠': "!=", '°': " deg",
	'½': "1/2", '¼': "1/4", '¾': "3/4",
	'\u00a0': " ",

	'📚': "[Book]", '📝': "[Note]", '🎯': "[Target]", '💡': "[Tip]",
	'⏱': "[Time]", '👥': "[Group]", '🌍': "[World]", '📖': "[Read]",
	'🔬': "[Science]", '🎨': "[Art]", '📐': "[Math]", '🎵': "[Music]",
}

// Transliterator forces text into printable ASCII.
type Transliterator struct {
	table map[rune]string
}

// NewTransliterator returns the built-in table with extra merged over it.
// An empty replacement drops the character.
func NewTransliterator(extra map[rune]string) *Transliterator {
	t := maps.Clone(defaultTable)
	if len(extra) > 0 {
		// Merging two maps of the same type cannot fail.
		_ = mergo.Merge(&t, extra, mergo.WithOverride)
	}
	return &Transliterator{table: t}
}

// DefaultTransliterator uses only the built-in table.
func DefaultTransliterator() *Transliterator {
	return NewTransliterator(nil)
}

// LoadTable reads a YAML mapping of single characters to replacements and
// merges it over the built-in table. An empty path yields the default.
//
//	"é": "e"
//	"🌱": "[Plant]"
func LoadTable(path string) (*Transliterator, error) {
	if path == "" {
		return DefaultTransliterator(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transliteration table: %w", err)
	}
	return ParseTable(raw)
}

// ParseTable is LoadTable over YAML bytes.
func ParseTable(raw []byte) (*Transliterator, error) {
	var entries map[string]string
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse transliteration table: %w", err)
	}
	extra := make(map[rune]string, len(entries))
	for k, v := range entries {
		if utf8.RuneCountInString(k) != 1 {
			return nil, fmt.Errorf("transliteration key %q must be a single character", k)
		}
		r, _ := utf8.DecodeRuneInString(k)
		extra[r] = v
	}
	return NewTransliterator(extra), nil
}

// ASCII maps every rune outside printable ASCII through the table, or to a
// space when unmapped.
func (t *Transliterator) ASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 0x20 && r < 0x7f:
			b.WriteRune(r)
		case r == '\n':
			b.WriteRune(r)
		default:
			if rep, ok := t.table[r]; ok {
				b.WriteString(t.ascii(rep))
			} else {
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}

// ascii guards against replacements that are themselves non-ASCII.
func (t *Transliterator) ascii(rep string) string {
	for i := 0; i < len(rep); i++ {
		if rep[i] < 0x20 || rep[i] >= 0x7f {
			return " "
		}
	}
	return rep
}
