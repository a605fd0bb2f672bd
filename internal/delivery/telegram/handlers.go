package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"playbook/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	commandTimeout = 3 * time.Minute
	dateLayout     = "2006-01-02"
	maxPlays       = 5
)

const helpText = "MLB Playbook\n\n" +
	"/games [YYYY-MM-DD] - Games of a day\n" +
	"/plays <game> [count] - Latest plays with summaries\n" +
	"/ask <game> <play> <question> - Ask about a play\n" +
	"/lang <English|Spanish|Japanese|Hindi> - Summary language"

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	chatID := msg.Chat.ID
	args := strings.Fields(msg.CommandArguments())

	switch msg.Command() {
	case "start", "help":
		b.sendMessage(chatID, helpText)
	case "games":
		b.handleGames(ctx, chatID, args)
	case "plays":
		b.handlePlays(ctx, chatID, args)
	case "ask":
		b.handleAsk(ctx, chatID, args)
	case "lang":
		b.handleLanguage(chatID, args)
	default:
		b.sendMessage(chatID, "Unknown command.\n\n"+helpText)
	}
}

func (b *Bot) handleGames(ctx context.Context, chatID int64, args []string) {
	date := time.Now()
	if len(args) > 0 {
		parsed, err := time.Parse(dateLayout, args[0])
		if err != nil {
			b.sendMessage(chatID, "Usage: /games 2024-07-04")
			return
		}
		date = parsed
	}

	games, err := b.services.Games.Schedule(ctx, date)
	if err != nil {
		b.logger.Error("telegram /games: %v", err)
		b.sendMessage(chatID, "Could not load the schedule, try again later.")
		return
	}
	b.sendMessage(chatID, scheduleText(date, games))
}

func (b *Bot) handlePlays(ctx context.Context, chatID int64, args []string) {
	if len(args) == 0 {
		b.sendMessage(chatID, "Usage: /plays <game> [count]")
		return
	}
	gamePK, err := strconv.Atoi(args[0])
	if err != nil {
		b.sendMessage(chatID, "Game id must be a number.")
		return
	}
	limit := 0
	if len(args) > 1 {
		if limit, err = strconv.Atoi(args[1]); err != nil || limit < 0 {
			b.sendMessage(chatID, "Count must be a number.")
			return
		}
	}
	if limit > maxPlays {
		limit = maxPlays
	}

	feed, err := b.services.Feed.RenderPlays(ctx, b.language(chatID), gamePK, limit)
	if err != nil {
		b.logger.Error("telegram /plays %d: %v", gamePK, err)
		b.sendMessage(chatID, userMessage(err))
		return
	}
	if len(feed.Plays) == 0 {
		b.sendMessage(chatID, fmt.Sprintf("Game %d has no plays yet.", gamePK))
		return
	}

	for _, card := range feed.Plays {
		caption := playCaption(card)
		if card.Banner.Placeholder {
			b.sendMessage(chatID, caption)
			continue
		}
		data, err := b.services.Banners.Banner(ctx, gamePK, card.Play.ID, false)
		if err != nil {
			b.logger.Warn("telegram /plays: banner %s: %v", card.Play.ID, err)
			b.sendMessage(chatID, caption)
			continue
		}
		b.sendPhoto(chatID, card.Play.ID+".png", data, caption)
	}
}

func (b *Bot) handleAsk(ctx context.Context, chatID int64, args []string) {
	if len(args) < 3 {
		b.sendMessage(chatID, "Usage: /ask <game> <play> <question>")
		return
	}
	gamePK, err := strconv.Atoi(args[0])
	if err != nil {
		b.sendMessage(chatID, "Game id must be a number.")
		return
	}

	answer, err := b.services.Chat.Ask(ctx, b.language(chatID), gamePK, args[1], strings.Join(args[2:], " "))
	if err != nil {
		b.logger.Error("telegram /ask %d/%s: %v", gamePK, args[1], err)
		b.sendMessage(chatID, userMessage(err))
		return
	}
	b.sendMessage(chatID, answer)
}

func (b *Bot) handleLanguage(chatID int64, args []string) {
	if len(args) == 0 {
		b.sendMessage(chatID, fmt.Sprintf("Current language: %s", b.language(chatID)))
		return
	}
	lang, err := models.ParseLanguage(args[0])
	if err != nil {
		b.sendMessage(chatID, userMessage(err))
		return
	}
	b.setLanguage(chatID, lang)
	b.sendMessage(chatID, fmt.Sprintf("Summaries will be in %s.", lang))
}
