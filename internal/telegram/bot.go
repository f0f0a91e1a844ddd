// Package telegram connects the wizard engine to the Telegram Bot API.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"resty.dev/v3"

	"github.com/tooley/tooley/internal/logger"
	"github.com/tooley/tooley/internal/wizard"
)

// ErrNoToken is returned when the bot token is missing.
var ErrNoToken = errors.New("telegram bot token is required")

// Config for the bot.
type Config struct {
	Token string `yaml:"token"`
	// Endpoint overrides the Bot API URL format, e.g. for a local Bot API server.
	Endpoint    string        `yaml:"endpoint"`
	PollTimeout int           `yaml:"poll_timeout"`
	MaxVoiceMB  int           `yaml:"max_voice_mb"`
	HandleLimit time.Duration `yaml:"handle_limit"`
	Debug       bool          `yaml:"debug"`
}

// Enabled reports whether a token is set.
func (c Config) Enabled() bool { return c.Token != "" }

// Handler is the part of the wizard engine the bot drives.
type Handler interface {
	Handle(ctx context.Context, userID string, ev wizard.Event) ([]wizard.Reply, error)
}

// api is the subset of tgbotapi.BotAPI the bot uses.
type api interface {
	GetUpdatesChan(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

// Bot long-polls for updates. Each user's updates are handled in arrival
// order by one worker; different users are handled concurrently.
type Bot struct {
	api     api
	handler Handler
	http    *resty.Client
	cfg     Config
	log     *logger.Logger
	wg      sync.WaitGroup

	mu     sync.Mutex
	queues map[int64][]tgbotapi.Update // a key is present while its worker runs
}

// New connects to the Bot API and checks the token.
func New(cfg Config, handler Handler, log *logger.Logger) (*Bot, error) {
	if !cfg.Enabled() {
		return nil, ErrNoToken
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	botAPI, err := tgbotapi.NewBotAPIWithAPIEndpoint(cfg.Token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("connect telegram: %w", err)
	}
	botAPI.Debug = cfg.Debug
	b := newBot(botAPI, cfg, handler, log)
	b.log.Info("telegram bot authorized", "username", botAPI.Self.UserName)
	return b, nil
}

func newBot(a api, cfg Config, handler Handler, log *logger.Logger) *Bot {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 60
	}
	if cfg.MaxVoiceMB <= 0 {
		cfg.MaxVoiceMB = 20
	}
	if cfg.HandleLimit <= 0 {
		cfg.HandleLimit = 3 * time.Minute
	}
	return &Bot{
		api:     a,
		handler: handler,
		http:    resty.New().SetTimeout(30 * time.Second),
		cfg:     cfg,
		log:     log,
		queues:  make(map[int64][]tgbotapi.Update),
	}
}

// Run polls until ctx is done, then waits for in-flight updates.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.PollTimeout
	updates := b.api.GetUpdatesChan(u)
	b.log.Info("telegram polling started")

	defer func() {
		b.api.StopReceivingUpdates()
		b.wg.Wait()
		b.http.Close()
		b.log.Info("telegram polling stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			b.enqueue(ctx, upd)
		}
	}
}

// sender returns the id of the user an update comes from, or 0.
func sender(upd tgbotapi.Update) int64 {
	switch {
	case upd.CallbackQuery != nil && upd.CallbackQuery.From != nil:
		return upd.CallbackQuery.From.ID
	case upd.Message != nil && upd.Message.From != nil:
		return upd.Message.From.ID
	}
	return 0
}

// enqueue appends upd to its user's queue and starts a worker for the user
// when none is running.
func (b *Bot) enqueue(ctx context.Context, upd tgbotapi.Update) {
	key := sender(upd)
	b.mu.Lock()
	q, running := b.queues[key]
	b.queues[key] = append(q, upd)
	b.mu.Unlock()
	if running {
		return
	}
	b.wg.Add(1)
	go b.drain(ctx, key)
}

// drain handles the user's queue until it is empty. Updates still queued
// when ctx is done are dropped.
func (b *Bot) drain(ctx context.Context, key int64) {
	defer b.wg.Done()
	for {
		b.mu.Lock()
		q := b.queues[key]
		if len(q) == 0 || ctx.Err() != nil {
			delete(b.queues, key)
			b.mu.Unlock()
			return
		}
		upd := q[0]
		b.queues[key] = q[1:]
		b.mu.Unlock()

		b.dispatch(ctx, upd)
	}
}

// dispatch handles one update. A panic is logged and the update dropped.
func (b *Bot) dispatch(ctx context.Context, upd tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("update handler panicked", "update_id", upd.UpdateID, "panic", fmt.Sprint(r))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, b.cfg.HandleLimit)
	defer cancel()

	userID, chatID, ev, ok := b.event(ctx, upd)
	if !ok {
		return
	}
	if cb := upd.CallbackQuery; cb != nil {
		if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
			b.log.Debug("answer callback failed", "chat_id", chatID, "error", err)
		}
	}

	replies, err := b.handler.Handle(ctx, strconv.FormatInt(userID, 10), ev)
	if err != nil {
		b.log.Error("handle update failed", "user_id", userID, "error", err)
	}
	for _, r := range replies {
		if err := b.send(chatID, r); err != nil {
			b.log.Warn("send reply failed", "chat_id", chatID, "error", err)
		}
	}
}

// event maps an update to a wizard event.
func (b *Bot) event(ctx context.Context, upd tgbotapi.Update) (userID, chatID int64, ev wizard.Event, ok bool) {
	if cb := upd.CallbackQuery; cb != nil {
		if cb.From == nil || cb.Message == nil || cb.Message.Chat == nil {
			return 0, 0, nil, false
		}
		return cb.From.ID, cb.Message.Chat.ID, wizard.Press{Token: cb.Data}, true
	}

	msg := upd.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return 0, 0, nil, false
	}
	userID, chatID = msg.From.ID, msg.Chat.ID

	switch {
	case msg.IsCommand():
		return userID, chatID, wizard.Command{Name: msg.Command()}, true
	case msg.Voice != nil:
		audio, err := b.download(ctx, msg.Voice.FileID, msg.Voice.FileSize)
		if err != nil {
			b.log.Warn("voice download failed", "user_id", userID, "error", err)
		}
		return userID, chatID, wizard.Voice{Audio: audio, Filename: "voice.ogg"}, true
	case msg.Audio != nil:
		audio, err := b.download(ctx, msg.Audio.FileID, msg.Audio.FileSize)
		if err != nil {
			b.log.Warn("audio download failed", "user_id", userID, "error", err)
		}
		name := msg.Audio.FileName
		if name == "" {
			name = "audio.mp3"
		}
		return userID, chatID, wizard.Voice{Audio: audio, Filename: name}, true
	case msg.Text != "":
		return userID, chatID, wizard.Text{Body: msg.Text}, true
	}
	return 0, 0, nil, false
}

// download fetches a file through the Bot API file endpoint.
func (b *Bot) download(ctx context.Context, fileID string, size int) ([]byte, error) {
	limit := b.cfg.MaxVoiceMB << 20
	if size > limit {
		return nil, fmt.Errorf("file is %d bytes, limit %d", size, limit)
	}
	link, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolve file: %w", err)
	}
	res, err := b.http.R().SetContext(ctx).Get(link)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("download file: %s", res.Status())
	}
	return res.Bytes(), nil
}
