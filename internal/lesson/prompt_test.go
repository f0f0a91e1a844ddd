package lesson

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tooley/tooley/internal/i18n"
)

var rawTokens = []string{
	"none", "basic", "standard", "custom",
	"interactive", "structured", "storytelling", "mixed",
	"quick", "full",
}

func containsToken(s, token string) bool {
	return regexp.MustCompile(`\b` + token + `\b`).MatchString(s)
}

func TestBuildPromptScenario(t *testing.T) {
	p := Parameters{
		Subject:   "Mathematics",
		Topic:     "Fractions",
		Ages:      "9-11",
		Duration:  "30",
		Country:   "Kenya",
		Materials: MaterialsBasic,
		Style:     StyleInteractive,
		Language:  i18n.English,
	}
	user := BuildPrompt(p).User

	for _, want := range []string{"30-minute", "Fractions", "Kenya", "Basic materials"} {
		if !strings.Contains(user, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	pos := 0
	for _, h := range SectionHeaders(i18n.English, 30) {
		i := strings.Index(user[pos:], h)
		if i < 0 {
			t.Fatalf("header %q missing or out of order", h)
		}
		pos += i + len(h)
	}
	if !strings.Contains(user, "## Opening (4 min)") || !strings.Contains(user, "## Main Activity (18 min)") || !strings.Contains(user, "## Closing (7 min)") {
		t.Errorf("timings wrong:\n%s", user)
	}
}

func TestBuildPromptPhrasesExactlyOnce(t *testing.T) {
	materials := []Materials{MaterialsNone, MaterialsBasic, MaterialsStandard}
	styles := []Style{StyleInteractive, StyleStructured, StyleStorytelling, StyleMixed}
	formats := []Format{FormatQuick, FormatStandard, FormatFull}

	for _, loc := range i18n.Locales.Members() {
		for _, m := range materials {
			for _, s := range styles {
				for _, f := range formats {
					name := fmt.Sprintf("%s/%s/%s/%s", loc.Code(), m.Value, s.Value, f.Value)
					user := BuildPrompt(Parameters{
						Subject: "Science", Topic: "Water Cycle", Country: "Ghana",
						Materials: m, Style: s, Format: f, Language: loc,
					}).User

					assert.Equal(t, 1, strings.Count(user, MaterialsPhrase(loc, m, "")), name)
					assert.Equal(t, 1, strings.Count(user, StylePhrase(loc, s, "")), name)
					for _, tok := range rawTokens {
						assert.False(t, containsToken(user, tok), "%s: raw token %q leaked", name, tok)
					}
				}
			}
		}
	}
}

func TestBuildPromptCustomPassesThrough(t *testing.T) {
	var p Parameters
	p.SetMaterials("bottle caps, seeds and a chalkboard")
	p.SetStyle("call and response songs")
	user := BuildPrompt(p).User
	assert.Contains(t, user, "**Available Materials:** bottle caps, seeds and a chalkboard")
	assert.Contains(t, user, "**Teaching Style:** call and response songs")
}

func TestBuildPromptNonNumericDuration(t *testing.T) {
	f := gofakeit.New(7)
	for i := 0; i < 100; i++ {
		duration := f.Word()
		if strings.ContainsAny(duration, "0123456789") {
			continue
		}
		var user string
		require.NotPanics(t, func() {
			user = BuildPrompt(Parameters{Topic: f.Noun(), Duration: duration}).User
		})
		assert.Contains(t, user, "45-minute")
		assert.Contains(t, user, "## Opening (6 min)")
		assert.Contains(t, user, "## Main Activity (27 min)")
		assert.Contains(t, user, "## Closing (11 min)")
	}
}

func TestBuildPromptArbitraryParameters(t *testing.T) {
	f := gofakeit.New(11)
	for i := 0; i < 200; i++ {
		p := Parameters{
			Subject:  f.JobTitle(),
			Topic:    f.Noun(),
			Ages:     fmt.Sprintf("%d-%d", f.Number(4, 9), f.Number(10, 18)),
			Duration: fmt.Sprint(f.Number(1, 180)),
			Country:  f.Country(),
			Language: i18n.English,
		}
		p.SetMaterials(f.RandomString([]string{"none", "basic", "standard", f.Sentence(4)}))
		p.SetStyle(f.RandomString([]string{"interactive", "structured", "storytelling", "mixed", f.Sentence(3)}))

		pr := BuildPrompt(p)
		assert.NotEmpty(t, pr.System)
		assert.True(t, strings.HasPrefix(pr.User, fmt.Sprintf("Create a detailed %d-minute lesson plan", Minutes(p.Duration))))
		assert.Contains(t, pr.User, p.Topic)
		assert.Contains(t, pr.User, p.Country)
		for _, h := range SectionHeaders(i18n.English, Minutes(p.Duration)) {
			assert.Equal(t, 1, strings.Count(pr.User, h+"\n"), h)
		}
	}
}

func TestBuildPromptUniversalWithoutCountry(t *testing.T) {
	for _, country := range []string{"", "skip", " SKIP "} {
		user := BuildPrompt(Parameters{Country: country}).User
		assert.Contains(t, user, "**Location/Context:** Universal")
		assert.Contains(t, user, "Use examples that work in any country")
	}
}

func TestBuildPromptSpanish(t *testing.T) {
	pr := BuildPrompt(Parameters{Topic: "Fracciones", Duration: "60", Language: i18n.Spanish, Materials: MaterialsNone})
	assert.True(t, strings.HasPrefix(pr.User, "Crea un plan de lección detallado de 60 minutos"))
	assert.Contains(t, pr.User, "SIN MATERIALES")
	assert.Contains(t, pr.User, "## Apertura (9 min)")
	assert.Contains(t, pr.User, "## Actividad Principal (36 min)")
	assert.Contains(t, pr.User, "## Cierre (15 min)")
	assert.Contains(t, pr.User, "## Consejos para el Docente")
	assert.Contains(t, pr.System, "español")
	assert.NotContains(t, pr.User, "## Learning Objectives")
	assert.Contains(t, pr.User, "Cualquier país")
	assert.NotContains(t, pr.User, "Universal")
}

func TestBuildPromptSpecialRequests(t *testing.T) {
	user := BuildPrompt(Parameters{SpecialRequests: "include a song"}).User
	assert.Contains(t, user, "**Special Requests:** include a song")
	assert.NotContains(t, BuildPrompt(Parameters{}).User, "Special Requests")
}

func TestBuildPromptDeterministic(t *testing.T) {
	p := Parameters{Subject: "Reading", Topic: "Phonics", Country: "India", Format: FormatFull}
	assert.Equal(t, BuildPrompt(p), BuildPrompt(p))
}

func TestMinutes(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"30", 30},
		{" 90 ", 90},
		{"60 minutes", 60},
		{"about 40 min", 40},
		{"forty", 45},
		{"", 45},
		{"0", 45},
		{"-", 45},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Minutes(tt.in), tt.in)
	}
}

func TestSplitMinutesTruncates(t *testing.T) {
	assert.Equal(t, Timings{Opening: 6, Main: 27, Closing: 11}, SplitMinutes(45))
	assert.Equal(t, Timings{Opening: 13, Main: 54, Closing: 22}, SplitMinutes(90))
	assert.Equal(t, Timings{}, SplitMinutes(1))
}

func TestSectionHeadersCount(t *testing.T) {
	for _, loc := range i18n.Locales.Members() {
		h := SectionHeaders(loc, 45)
		assert.Len(t, h, 9)
		for _, s := range h {
			assert.True(t, strings.HasPrefix(s, "## "), s)
		}
	}
}

func TestRevisionPrompt(t *testing.T) {
	got := RevisionPrompt(i18n.English, "OLD PLAN", "more games")
	assert.True(t, strings.HasPrefix(got, "Here is a lesson plan I previously created:\n\nOLD PLAN"))
	assert.Contains(t, got, "The teacher has requested these changes: more games")
	assert.Contains(t, RevisionPrompt(i18n.Spanish, "X", "Y"), "El docente pidió estos cambios: Y")
}
