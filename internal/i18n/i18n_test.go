package i18n

import (
	"regexp"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var verbRe = regexp.MustCompile(`%[-+# 0]*[0-9]*[a-z]`)

func TestEveryKeyTranslated(t *testing.T) {
	keys := Keys()
	sort.Strings(keys)
	for _, k := range keys {
		e := table[k]
		if e.en == "" {
			t.Errorf("%s: empty English entry", k)
		}
		if e.es == "" {
			t.Errorf("%s: empty Spanish entry", k)
		}
	}
}

func TestFormatVerbsMatchAcrossLocales(t *testing.T) {
	for k, e := range table {
		en := verbRe.FindAllString(e.en, -1)
		es := verbRe.FindAllString(e.es, -1)
		assert.Equal(t, en, es, "verbs differ for %s", k)
	}
}

func TestTFallbacks(t *testing.T) {
	assert.Equal(t, "no.such.key", T(Spanish, "no.such.key"))
	assert.Equal(t, table["fallback"].en, T(Locale{}, "fallback"))
	assert.Equal(t, table["fallback"].es, T(Spanish, "fallback"))
}

func TestTFormats(t *testing.T) {
	got := T(English, "topic.ask", "Science")
	assert.Contains(t, got, "*Science*")
	assert.Equal(t, "10 años", T(Spanish, "ages.label", "10"))
}

func TestParseLocale(t *testing.T) {
	tests := []struct {
		in   string
		want Locale
		ok   bool
	}{
		{"en", English, true},
		{" English ", English, true},
		{"ES", Spanish, true},
		{"español", Spanish, true},
		{"fr", Locale{}, false},
		{"", Locale{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseLocale(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestLocaleText(t *testing.T) {
	var l Locale
	require.NoError(t, l.UnmarshalText([]byte("es")))
	assert.Equal(t, Spanish, l)

	require.NoError(t, l.UnmarshalText(nil))
	assert.Equal(t, English, l)

	assert.Error(t, l.UnmarshalText([]byte("xx")))

	b, err := Spanish.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "es", string(b))
	assert.Equal(t, "en", Locale{}.Code())
	assert.Equal(t, "Español", Spanish.Name())
	assert.Len(t, Locales.Members(), 2)
}
