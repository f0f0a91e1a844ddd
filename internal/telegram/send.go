package telegram

import (
	"errors"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/tooley/tooley/internal/wizard"
)

// MaxMessageLen is Telegram's limit for one text message.
const MaxMessageLen = 4096

// send delivers one reply. Markdown that Telegram rejects is resent as
// plain text.
func (b *Bot) send(chatID int64, r wizard.Reply) error {
	if r.Document != nil {
		doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: r.Document.Filename, Bytes: r.Document.Data})
		doc.Caption = r.Document.Caption
		doc.ReplyMarkup = keyboard(r.Keyboard)
		_, err := b.api.Send(doc)
		return err
	}

	parts := split(r.Text, MaxMessageLen)
	var errs []error
	for i, part := range parts {
		msg := tgbotapi.NewMessage(chatID, part)
		if r.Markdown {
			msg.ParseMode = tgbotapi.ModeMarkdown
		}
		if i == len(parts)-1 {
			msg.ReplyMarkup = keyboard(r.Keyboard)
		}
		_, err := b.api.Send(msg)
		if err != nil && msg.ParseMode != "" && isParseError(err) {
			b.log.Debug("markdown rejected, sending plain text", "chat_id", chatID)
			msg.ParseMode = ""
			_, err = b.api.Send(msg)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// keyboard converts wizard buttons to an inline keyboard. It returns nil
// when there are none so that no empty markup is sent.
func keyboard(rows [][]wizard.Button) any {
	if len(rows) == 0 {
		return nil
	}
	out := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		var btns []tgbotapi.InlineKeyboardButton
		for _, b := range row {
			btns = append(btns, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Token))
		}
		out = append(out, tgbotapi.NewInlineKeyboardRow(btns...))
	}
	return tgbotapi.NewInlineKeyboardMarkup(out...)
}

func isParseError(err error) bool {
	var tgErr *tgbotapi.Error
	if errors.As(err, &tgErr) {
		return tgErr.Code == 400 && strings.Contains(tgErr.Message, "can't parse entities")
	}
	return strings.Contains(err.Error(), "can't parse entities")
}

// split cuts text into chunks of at most limit runes, preferring line
// breaks.
func split(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}
	var out []string
	runes := []rune(text)
	for len(runes) > limit {
		cut := limit
		for i := limit; i > limit/2; i-- {
			if runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		out = append(out, strings.TrimRight(string(runes[:cut]), "\n"))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}
