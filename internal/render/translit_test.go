package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestASCIIDefaultTable(t *testing.T) {
	tr := DefaultTransliterator()
	tests := []struct{ in, want string }{
		{"Planificación", "Planificacion"},
		{"¿Qué es?", "?Que es?"},
		{"niño – niña", "nino - nina"},
		{"“quoted” ‘single’", "\"quoted\" 'single'"},
		{"wait…", "wait..."},
		{"✓ done ✗ not", "[x] done [ ] not"},
		{"💡 Tip", "[Tip] Tip"},
		{"3 × 4", "3 x 4"},
		{"日本", "  "},
		{"tab\there", "tab here"},
		{"plain ASCII stays put", "plain ASCII stays put"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tr.ASCII(tc.in), tc.in)
	}
}

func TestASCIIOutputIsPrintable(t *testing.T) {
	tr := DefaultTransliterator()
	out := tr.ASCII("Añadir 🌱 más ⏱️ ☃ ½ cup\nline")
	for _, r := range out {
		if r != '\n' && (r < 0x20 || r >= 0x7f) {
			t.Fatalf("non-ASCII rune %q in %q", r, out)
		}
	}
}

func TestParseTableMergesOverDefault(t *testing.T) {
	tr, err := ParseTable([]byte("\"🌱\": \"[Plant]\"\n\"é\": \"E\"\n\"☃\": \"snowman ☃\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "[Plant] E a", tr.ASCII("🌱 é á"))
	assert.Equal(t, " ", tr.ASCII("☃"), "non-ASCII replacement falls back to a space")

	tr, err = ParseTable([]byte("\"★\": \"\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "Great!", tr.ASCII("★Great!"), "an empty replacement drops the character")
	assert.Equal(t, "a", tr.ASCII("á"))
}

func TestParseTableRejectsMultiRuneKeys(t *testing.T) {
	_, err := ParseTable([]byte("\"ab\": \"x\"\n"))
	assert.Error(t, err)

	_, err = ParseTable([]byte("[not, a, map]"))
	assert.Error(t, err)
}

func TestLoadTable(t *testing.T) {
	tr, err := LoadTable("")
	require.NoError(t, err)
	assert.Equal(t, "e", tr.ASCII("é"))

	path := filepath.Join(t.TempDir(), "translit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("\"ŋ\": \"ng\"\n"), 0o644))
	tr, err = LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, "ngoma", tr.ASCII("ŋoma"))

	_, err = LoadTable(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
