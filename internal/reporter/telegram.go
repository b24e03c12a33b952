package reporter

import (
	"fmt"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-scroop-automation/internal/pipeline"
)

// maxSummaryExcerpt keeps Telegram messages under the API size limit.
const maxSummaryExcerpt = 1500

type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(token string, chatID int64) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	return &TelegramReporter{
		bot:    bot,
		chatID: chatID,
	}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML" //use HTML for bold/italic
	_, err := t.bot.Send(msg)
	return err
}

// excerpt truncates s to at most maxSummaryExcerpt bytes without splitting a
// multi-byte rune.
func excerpt(s string) string {
	if len(s) <= maxSummaryExcerpt {
		return s
	}
	cut := maxSummaryExcerpt
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}

func (t *TelegramReporter) SendJob(job pipeline.RatedJob) error {
	summary := excerpt(job.Summary)
	text := fmt.Sprintf(
		"🤖 <b>Match Score: %d/10</b>\n"+
			"🔗 <a href=\"%s\">View Job</a>\n"+
			"📝 %s",
		job.Rating,
		job.URL,
		summary,
	)
	return t.SendMessage(text)
}

func (t *TelegramReporter) SendStatus(message string) error {
	return t.SendMessage("ℹ️ " + message)
}

func (t *TelegramReporter) SendError(errReq error) error {
	return t.SendMessage(fmt.Sprintf("⚠️ <b>Scroop Error</b>:\n%v", errReq))
}
