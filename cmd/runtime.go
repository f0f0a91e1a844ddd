package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tooley/tooley/internal/lesson"
	"github.com/tooley/tooley/internal/library"
	"github.com/tooley/tooley/internal/llm"
	"github.com/tooley/tooley/internal/render"
	"github.com/tooley/tooley/internal/session"
	"github.com/tooley/tooley/internal/store"
	"github.com/tooley/tooley/internal/transcribe"
	"github.com/tooley/tooley/internal/wizard"
)

// runtime holds the services shared by the front-ends.
type runtime struct {
	store    *store.Store
	provider llm.Provider
	lessons  *lesson.Service
	renderer *render.Renderer
	library  *library.Library
	sessions session.Store
	closers  []io.Closer
}

// openRuntime opens the database and builds every service from cfg.
func openRuntime(ctx context.Context) (*runtime, error) {
	st, err := openStore()
	if err != nil {
		return nil, err
	}
	rt := &runtime{store: st, closers: []io.Closer{st}}

	if err := rt.build(ctx); err != nil {
		rt.Close()
		return nil, err
	}
	return rt, nil
}

func (rt *runtime) build(ctx context.Context) error {
	provider, err := llm.NewProvider(ctx, cfg.LLM, rt.store.EventRepo(), log)
	if err != nil {
		return fmt.Errorf("llm provider: %w", err)
	}
	rt.provider = provider
	rt.lessons = lesson.NewService(provider, cfg.Lesson, log)

	rt.renderer, err = render.NewFromConfig(cfg.Render, log)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}

	lib, err := openLibrary(ctx, rt.store)
	if err != nil {
		return err
	}
	rt.library = lib.lib
	rt.addCloser(lib.closer)

	sessions, closer, err := session.Open(ctx, cfg.Session, rt.store, log)
	if err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	rt.sessions = sessions
	rt.addCloser(closer)

	log.Info("services ready",
		"provider", cfg.LLM.Provider,
		"model", provider.ModelID(),
		"sessions", cfg.Session.Backend,
		"library", cfg.Library.Backend)
	return nil
}

type openedLibrary struct {
	lib    *library.Library
	closer io.Closer
}

// openLibrary builds the shared library over the configured backend, with
// the local archive as its fallback. Backend "none" yields a nil Library.
func openLibrary(ctx context.Context, st *store.Store) (openedLibrary, error) {
	blob, closer, err := library.OpenBlob(ctx, cfg.Library, st)
	if err != nil {
		return openedLibrary{}, fmt.Errorf("library: %w", err)
	}
	if blob == nil {
		return openedLibrary{closer: closer}, nil
	}
	lib := library.New(blob, log,
		library.WithCap(cfg.Library.Cap),
		library.WithArchive(st.ArchiveRepo()))
	return openedLibrary{lib: lib, closer: closer}, nil
}

// engine builds the wizard over the runtime's services. Voice notes are
// enabled when a transcription key is configured.
func (rt *runtime) engine() (*wizard.Engine, error) {
	deps := wizard.Deps{
		Sessions: rt.sessions,
		Lessons:  rt.lessons,
		Renderer: rt.renderer,
		Library:  rt.library,
		Log:      log,
	}
	if cfg.Transcribe.Enabled() {
		tr, err := transcribe.New(cfg.Transcribe, log)
		if err != nil {
			return nil, fmt.Errorf("transcriber: %w", err)
		}
		deps.Transcriber = tr
	}
	return wizard.New(cfg.Wizard, deps), nil
}

// offline reports whether lessons come from the built-in sample backend.
func (rt *runtime) offline() bool {
	return strings.EqualFold(cfg.LLM.Provider, "mock")
}

func (rt *runtime) addCloser(c io.Closer) {
	if c != nil {
		rt.closers = append(rt.closers, c)
	}
}

// Close releases resources in reverse order of acquisition.
func (rt *runtime) Close() error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	rt.closers = nil
	return errors.Join(errs...)
}
