package telegram

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"playbook/internal/application"
	"playbook/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	maxMessageLength = 4096
	maxCaptionLength = 1024
)

func (b *Bot) sendMessage(chatID int64, text string) {
	if text == "" {
		return
	}
	msg := tgbotapi.NewMessage(chatID, truncate(text, maxMessageLength))
	if _, err := b.bot.Send(msg); err != nil {
		b.logger.Warn("telegram send to %d: %v", chatID, err)
	}
}

func (b *Bot) sendPhoto(chatID int64, name string, data []byte, caption string) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	photo.Caption = truncate(caption, maxCaptionLength)
	if _, err := b.bot.Send(photo); err != nil {
		b.logger.Warn("telegram photo to %d: %v", chatID, err)
	}
}

func scheduleText(date time.Time, games []models.ScheduledGame) string {
	if len(games) == 0 {
		return fmt.Sprintf("No games on %s.", date.Format(dateLayout))
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Games on %s:\n\n", date.Format(dateLayout)))
	for _, g := range games {
		sb.WriteString(fmt.Sprintf("%d - %s\n", g.GamePK, g.Label()))
	}
	return sb.String()
}

func playCaption(card application.PlayCard) string {
	play := card.Play
	header := fmt.Sprintf("%s | %s\nPlay %s", play.HalfInning(), play.Event, play.ID)
	if card.Summary == nil {
		if play.Description != "" {
			return header + "\n\n" + play.Description
		}
		return header + "\n\nSummary is not available yet."
	}

	s := card.Summary
	var sb strings.Builder
	if s.Title != "" {
		sb.WriteString(s.Title + "\n\n")
	}
	sb.WriteString(s.Setup + "\n\n")
	sb.WriteString(s.SummaryOfPlayEvents + "\n\n")
	sb.WriteString(s.Outcome + "\n\n")
	sb.WriteString(header)
	return sb.String()
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, application.ErrGameNotFound):
		return "Game not found."
	case errors.Is(err, application.ErrPlayNotFound):
		return "Play not found in this game."
	case errors.Is(err, application.ErrInvalidQuestion):
		return "Please ask a shorter, non-empty question."
	case errors.Is(err, models.ErrUnsupportedLanguage):
		return "Supported languages: English, Spanish, Japanese, Hindi."
	default:
		return "Something went wrong, try again later."
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
