package telegram

import (
	"fmt"
	"strings"

	"go-jobscout/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// messageSender is the part of tgbotapi.BotAPI the bot uses.
type messageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Bot struct {
	api    messageSender
	chatID int64
}

func NewBot(token string, chatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &Bot{
		api:    api,
		chatID: chatID,
	}, nil
}

var markdownReplacer = strings.NewReplacer(
	"\\", "\\\\",
	"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
	")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
	"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
	"}", "\\}", ".", "\\.", "!", "\\!",
)

func escapeMarkdown(text string) string {
	return markdownReplacer.Replace(text)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// jobMessage renders a posting as a MarkdownV2 message.
func (b *Bot) jobMessage(job models.JobPosting) tgbotapi.MessageConfig {
	var text strings.Builder
	fmt.Fprintf(&text, "💼 *%s*\n", escapeMarkdown(orNA(models.Deref(job.Title))))
	fmt.Fprintf(&text, "🏢 %s\n", escapeMarkdown(orNA(models.Deref(job.Company))))
	fmt.Fprintf(&text, "⏳ %s\n", escapeMarkdown(orNA(job.Experience)))
	fmt.Fprintf(&text, "📍 %s\n", escapeMarkdown(orNA(job.Location)))

	skills := "N/A"
	if len(job.Skills) > 0 {
		skills = strings.Join(job.Skills, ", ")
	}
	fmt.Fprintf(&text, "🛠 %s\n", escapeMarkdown(skills))
	fmt.Fprintf(&text, "🔖 Source: %s\n", escapeMarkdown(job.Source))

	msg := tgbotapi.NewMessage(b.chatID, text.String())
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.DisableWebPagePreview = true

	if job.DetailURL != "" {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonURL("🔗 View Job", job.DetailURL),
			),
		)
	}
	return msg
}

func (b *Bot) SendJob(job models.JobPosting) error {
	_, err := b.api.Send(b.jobMessage(job))
	return err
}

func (b *Bot) SendError(err error) error {
	msg := tgbotapi.NewMessage(b.chatID, fmt.Sprintf("❌ Error: %v", err))
	_, sendErr := b.api.Send(msg)
	return sendErr
}

func (b *Bot) SendStatus(message string) error {
	msg := tgbotapi.NewMessage(b.chatID, "ℹ️ "+message)
	_, err := b.api.Send(msg)
	return err
}
