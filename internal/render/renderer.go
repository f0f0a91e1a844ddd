package render

import (
	"github.com/tooley/tooley/internal/logger"
)

// Config selects the transliteration table for PDFs.
type Config struct {
	// TransliterationFile is an optional YAML table merged over the built-in one.
	TransliterationFile string `yaml:"transliteration_file"`
}

// Renderer produces both document formats from raw lesson text.
type Renderer struct {
	ladder Ladder
}

// New builds a Renderer with the default ladder over tr.
func New(tr *Transliterator, log *logger.Logger) *Renderer {
	return &Renderer{ladder: DefaultLadder(tr, log)}
}

// NewFromConfig loads the configured table and builds a Renderer.
func NewFromConfig(cfg Config, log *logger.Logger) (*Renderer, error) {
	tr, err := LoadTable(cfg.TransliterationFile)
	if err != nil {
		return nil, err
	}
	return New(tr, log), nil
}

// WithLadder replaces the PDF ladder.
func (r *Renderer) WithLadder(l Ladder) *Renderer {
	return &Renderer{ladder: l}
}

// PDF runs the ladder over text. The error wraps ErrNoDocument when no
// tier succeeded.
func (r *Renderer) PDF(text string, meta Meta) (Result, error) {
	return r.ladder.Render(Classify(text), meta)
}

// HTML renders text as a standalone page.
func (r *Renderer) HTML(text string, meta Meta) ([]byte, error) {
	return HTML(Classify(text), meta)
}
