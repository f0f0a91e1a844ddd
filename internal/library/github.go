package library

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"resty.dev/v3"
)

// GitHubConfig locates the shared document in a repository.
type GitHubConfig struct {
	Token   string `yaml:"token"`
	Repo    string `yaml:"repo"` // owner/name
	Path    string `yaml:"path"`
	Branch  string `yaml:"branch"`
	BaseURL string `yaml:"base_url"`
}

func (c GitHubConfig) withDefaults() GitHubConfig {
	if c.Path == "" {
		c.Path = "lessons.json"
	}
	if c.BaseURL == "" {
		c.BaseURL = "https://api.github.com"
	}
	return c
}

// GitHubBlob stores the document as a file through the contents API. The
// file's blob sha is the version.
type GitHubBlob struct {
	client *resty.Client
	cfg    GitHubConfig
}

// NewGitHubBlob needs a token and an owner/name repository.
func NewGitHubBlob(cfg GitHubConfig) (*GitHubBlob, error) {
	cfg = cfg.withDefaults()
	if cfg.Token == "" {
		return nil, errors.New("github library: token is required")
	}
	if strings.Count(cfg.Repo, "/") != 1 {
		return nil, fmt.Errorf("github library: repo %q must be owner/name", cfg.Repo)
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetAuthToken(cfg.Token).
		SetHeader("Accept", "application/vnd.github+json").
		SetHeader("X-GitHub-Api-Version", "2022-11-28").
		SetTimeout(30 * time.Second)
	return &GitHubBlob{client: client, cfg: cfg}, nil
}

// Close releases the HTTP client.
func (g *GitHubBlob) Close() error { return g.client.Close() }

func (g *GitHubBlob) contentsURL() string {
	return "/repos/" + g.cfg.Repo + "/contents/" + strings.TrimLeft(g.cfg.Path, "/")
}

type contentsFile struct {
	SHA      string `json:"sha"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

type contentsError struct {
	Message string `json:"message"`
}

func (g *GitHubBlob) request(ctx context.Context) *resty.Request {
	r := g.client.R().SetContext(ctx)
	if g.cfg.Branch != "" {
		r.SetQueryParam("ref", g.cfg.Branch)
	}
	return r
}

func (g *GitHubBlob) Read(ctx context.Context) ([]byte, string, error) {
	var file contentsFile
	var apiErr contentsError
	res, err := g.request(ctx).SetResult(&file).SetError(&apiErr).Get(g.contentsURL())
	if err != nil {
		return nil, "", fmt.Errorf("github read: %w", err)
	}
	if res.StatusCode() == http.StatusNotFound {
		return nil, "", ErrNotFound
	}
	if res.IsError() {
		return nil, "", fmt.Errorf("github read: %s: %s", res.Status(), apiErr.Message)
	}

	// Files over 1MB come back without inline content.
	if file.Encoding == "none" || (file.Content == "" && file.SHA != "") {
		raw, err := g.request(ctx).
			SetHeader("Accept", "application/vnd.github.raw+json").
			Get(g.contentsURL())
		if err != nil {
			return nil, "", fmt.Errorf("github raw read: %w", err)
		}
		if raw.IsError() {
			return nil, "", fmt.Errorf("github raw read: %s", raw.Status())
		}
		return raw.Bytes(), file.SHA, nil
	}

	data, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(file.Content, "\n", ""))
	if err != nil {
		return nil, "", fmt.Errorf("github read: decode content: %w", err)
	}
	return data, file.SHA, nil
}

type contentsPut struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
	Branch  string `json:"branch,omitempty"`
}

func (g *GitHubBlob) Write(ctx context.Context, data []byte, version string) error {
	body := contentsPut{
		Message: "Update shared lessons",
		Content: base64.StdEncoding.EncodeToString(data),
		SHA:     version,
		Branch:  g.cfg.Branch,
	}
	var apiErr contentsError
	res, err := g.client.R().
		SetContext(ctx).
		SetBody(body).
		SetError(&apiErr).
		Put(g.contentsURL())
	if err != nil {
		return fmt.Errorf("github write: %w", err)
	}
	switch res.StatusCode() {
	case http.StatusOK, http.StatusCreated:
		return nil
	case http.StatusConflict, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrConflict, apiErr.Message)
	}
	return fmt.Errorf("github write: %s: %s", res.Status(), apiErr.Message)
}
