// Package config assembles the process configuration from defaults, an
// optional YAML file, a .env file and TOOLEY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/tooley/tooley/internal/httpapi"
	"github.com/tooley/tooley/internal/lesson"
	"github.com/tooley/tooley/internal/library"
	"github.com/tooley/tooley/internal/llm"
	"github.com/tooley/tooley/internal/logger"
	"github.com/tooley/tooley/internal/render"
	"github.com/tooley/tooley/internal/session"
	"github.com/tooley/tooley/internal/telegram"
	"github.com/tooley/tooley/internal/transcribe"
	"github.com/tooley/tooley/internal/wizard"
)

// Config is everything a tooley process needs.
type Config struct {
	LLM        llm.Config        `yaml:"llm"`
	Lesson     lesson.Config     `yaml:"lesson"`
	Telegram   telegram.Config   `yaml:"telegram"`
	HTTP       httpapi.Config    `yaml:"http"`
	Session    session.Config    `yaml:"session"`
	Library    library.Config    `yaml:"library"`
	Transcribe transcribe.Config `yaml:"transcribe"`
	Render     render.Config     `yaml:"render"`
	Wizard     wizard.Config     `yaml:"wizard"`
	Log        logger.Options    `yaml:"log"`
	// DBPath is the local SQLite file. Empty means the XDG default.
	DBPath string `yaml:"db_path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LLM:        llm.DefaultConfig(),
		Lesson:     lesson.DefaultConfig(),
		Telegram:   telegram.Config{PollTimeout: 60, MaxVoiceMB: 20},
		HTTP:       httpapi.DefaultConfig(),
		Session:    session.DefaultConfig(),
		Library:    library.Config{Backend: "sqlite", Cap: library.DefaultCap},
		Transcribe: transcribe.Config{BaseURL: transcribe.DefaultBaseURL, Model: transcribe.DefaultModel},
		Wizard:     wizard.DefaultConfig(),
		Log:        logger.Options{Mode: "dev", Level: "info"},
	}
}

// Options tells Load where to look.
type Options struct {
	// File is an optional YAML file. A missing file is an error.
	File string
	// DotEnv is the .env path; empty means ".env". A missing .env is fine.
	DotEnv string
}

// Load builds the configuration in layers. Later layers override earlier
// ones, and a .env file never overrides variables already set.
func Load(opts Options) (Config, error) {
	cfg := Default()

	if opts.File != "" {
		if err := readFile(opts.File, &cfg); err != nil {
			return Config{}, err
		}
	}

	dotenv := opts.DotEnv
	if dotenv == "" {
		dotenv = ".env"
	}
	if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", dotenv, err)
	}

	return ApplyEnv(cfg), nil
}

// readFile decodes the YAML file onto cfg. Keys absent from the file keep
// their value; keys present replace it, including false, 0 and "".
func readFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays environment variables onto cfg. The plain vendor names
// the bot has always used (TELEGRAM_BOT_TOKEN, GITHUB_TOKEN, GROQ_API_KEY)
// are accepted after their TOOLEY_* forms. Unless TOOLEY_LLM_PROVIDER is
// set, a provider without a key gives way to whichever vendor key is found.
func ApplyEnv(cfg Config) Config {
	cfg.LLM = llm.ApplyEnv(cfg.LLM)
	if os.Getenv("TOOLEY_LLM_PROVIDER") == "" {
		cfg.LLM, _ = llm.Discover(cfg.LLM)
	}

	set(&cfg.Telegram.Token, "TOOLEY_TELEGRAM_TOKEN", "TELEGRAM_BOT_TOKEN")

	set(&cfg.HTTP.Addr, "TOOLEY_HTTP_ADDR")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("TOOLEY_HTTP_ADDR") == "" {
		cfg.HTTP.Addr = ":" + port
	}
	set(&cfg.HTTP.StaticDir, "TOOLEY_STATIC_DIR")

	set(&cfg.Session.Backend, "TOOLEY_SESSION_BACKEND")
	set(&cfg.Session.Redis.Addr, "TOOLEY_REDIS_ADDR")
	set(&cfg.Session.Redis.Password, "TOOLEY_REDIS_PASSWORD")

	backendSet := os.Getenv("TOOLEY_LIBRARY_BACKEND") != ""
	set(&cfg.Library.Backend, "TOOLEY_LIBRARY_BACKEND")
	set(&cfg.Library.GitHub.Token, "TOOLEY_GITHUB_TOKEN", "GITHUB_TOKEN")
	set(&cfg.Library.GitHub.Repo, "TOOLEY_GITHUB_REPO", "GITHUB_REPO")
	set(&cfg.Library.GCS.Bucket, "TOOLEY_GCS_BUCKET")
	set(&cfg.Library.GCS.Credentials, "TOOLEY_GCS_CREDENTIALS", "GOOGLE_APPLICATION_CREDENTIALS")
	if !backendSet && cfg.Library.GitHub.Token != "" && cfg.Library.GitHub.Repo != "" {
		cfg.Library.Backend = "github"
	}

	set(&cfg.Transcribe.APIKey, "TOOLEY_TRANSCRIBE_API_KEY", "GROQ_API_KEY")
	set(&cfg.Transcribe.BaseURL, "TOOLEY_TRANSCRIBE_BASE_URL")
	set(&cfg.Transcribe.Model, "TOOLEY_TRANSCRIBE_MODEL")

	set(&cfg.Render.TransliterationFile, "TOOLEY_TRANSLIT_FILE")

	set(&cfg.Log.Mode, "TOOLEY_LOG_MODE")
	set(&cfg.Log.Level, "TOOLEY_LOG_LEVEL")
	set(&cfg.Log.File, "TOOLEY_LOG_FILE")
	set(&cfg.Log.HashSalt, "TOOLEY_LOG_SALT")

	set(&cfg.DBPath, "TOOLEY_DB")

	if v := os.Getenv("TOOLEY_MAX_GENERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Wizard.MaxConcurrentGenerations = int64(n)
		}
	}
	return cfg
}

func set(dst *string, keys ...string) {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			*dst = v
			return
		}
	}
}

// Validate checks everything shared by the commands.
func (c Config) Validate() error {
	var errs []error
	if err := c.LLM.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("llm: %w", err))
	}
	if err := c.Session.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Library.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Wizard.MaxConcurrentGenerations < 1 {
		errs = append(errs, errors.New("wizard: max_concurrent_generations must be at least 1"))
	}
	return errors.Join(errs...)
}

// ValidateBot also requires a Telegram token.
func (c Config) ValidateBot() error {
	err := c.Validate()
	if !c.Telegram.Enabled() {
		err = errors.Join(err, errors.New("telegram: TOOLEY_TELEGRAM_TOKEN (or TELEGRAM_BOT_TOKEN) is required"))
	}
	return err
}
