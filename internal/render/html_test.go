package render

import (
	"strings"
	"testing"

	"github.com/jaytaylor/html2text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tooley/tooley/internal/i18n"
)

func TestHTMLKeepsUnicodeAndStructure(t *testing.T) {
	out, err := HTML(Classify(sampleText), testMeta())
	require.NoError(t, err)
	page := string(out)

	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, `<html lang="en">`)
	assert.Contains(t, page, "<title>Mathematics: Fractions | Tooley</title>")
	assert.Contains(t, page, "<strong>halves</strong>")
	assert.Contains(t, page, "¿Y la mitad de 8? — answer together ✓")
	assert.Equal(t, 2, strings.Count(page, "<ul>"), "adjacent bullets share one list")
	assert.Contains(t, page, `<h2 class="section">Learning Objectives</h2>`)
	assert.Contains(t, page, "Generated by Tooley")

	text, err := html2text.FromString(page)
	require.NoError(t, err)
	for _, want := range []string{"LESSON SPECIFICATIONS", "Kenya", "Main Activity (18 min)", "Put students in groups of four."} {
		assert.Contains(t, text, want)
	}
	assert.NotContains(t, text, "**")
}

func TestHTMLEscapesLessonText(t *testing.T) {
	out, err := HTML(Classify("Compare 3 < 5 & <script>alert(1)</script>"), Meta{Topic: "<b>x</b>"})
	require.NoError(t, err)
	page := string(out)
	assert.NotContains(t, page, "<script>")
	assert.Contains(t, page, "3 &lt; 5 &amp;")
	assert.Contains(t, page, "&lt;b&gt;x&lt;/b&gt;")
}

func TestHTMLSpanish(t *testing.T) {
	meta := Meta{Subject: "Ciencias", Topic: "Plantas", Duration: "45", Locale: i18n.Spanish}
	out, err := HTML(Classify("## Objetivos de Aprendizaje\n- Nombrar partes de la planta"), meta)
	require.NoError(t, err)
	page := string(out)
	assert.Contains(t, page, `<html lang="es">`)
	assert.Contains(t, page, "Generado por Tooley")
	assert.Contains(t, page, "<strong>Duración:</strong> 45 min")
}

func TestInline(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", "plain"},
		{"a **b** c", "a <strong>b</strong> c"},
		{"**one** and **two**", "<strong>one</strong> and <strong>two</strong>"},
		{"dangling **marker", "dangling **marker"},
		{"x < y", "x &lt; y"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, string(inline(tc.in)), tc.in)
	}
}

func TestRendererFromConfig(t *testing.T) {
	r, err := NewFromConfig(Config{}, nil)
	require.NoError(t, err)

	res, err := r.PDF(sampleText, testMeta())
	require.NoError(t, err)
	assert.Equal(t, "branded", res.Tier)

	_, err = NewFromConfig(Config{TransliterationFile: "/nonexistent/table.yaml"}, nil)
	assert.Error(t, err)

	forced := r.WithLadder(Ladder{Tiers: []Tier{failing("only")}})
	_, err = forced.PDF(sampleText, testMeta())
	assert.ErrorIs(t, err, ErrNoDocument)
}
