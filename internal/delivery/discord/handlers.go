package discord

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"playbook/internal/application"
	"playbook/internal/models"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) handleGames(s *discordgo.Session, i *discordgo.Interaction) {
	opts := optionMap(i)
	date := time.Now()
	if opt, ok := opts["date"]; ok {
		parsed, err := time.Parse(dateLayout, opt.StringValue())
		if err != nil {
			b.respondMessage(s, i, "Date must be YYYY-MM-DD.", true)
			return
		}
		date = parsed
	}

	ctx, cancel := b.interactionContext()
	defer cancel()

	games, err := b.services.Games.Schedule(ctx, date)
	if err != nil {
		b.logger.Error("discord /games: %v", err)
		b.respondMessage(s, i, "Could not load the schedule, try again later.", true)
		return
	}
	if len(games) == 0 {
		b.respondMessage(s, i, fmt.Sprintf("No games on %s.", date.Format(dateLayout)), false)
		return
	}

	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{scheduleEmbed(date, games)}},
	})
}

func (b *Bot) handlePlays(s *discordgo.Session, i *discordgo.Interaction) {
	opts := optionMap(i)
	gamePK := int(opts["game"].IntValue())
	limit := 0
	if opt, ok := opts["limit"]; ok {
		limit = int(opt.IntValue())
	}
	if limit > maxEmbedsPerMessage {
		limit = maxEmbedsPerMessage
	}
	lang := languageFrom(opts)

	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})

	ctx, cancel := b.interactionContext()
	defer cancel()

	feed, err := b.services.Feed.RenderPlays(ctx, lang, gamePK, limit)
	if err != nil {
		b.logger.Error("discord /plays %d: %v", gamePK, err)
		b.editContent(s, i, userMessage(err))
		return
	}
	if len(feed.Plays) == 0 {
		b.editContent(s, i, fmt.Sprintf("Game %d has no plays yet.", gamePK))
		return
	}

	embeds := make([]*discordgo.MessageEmbed, 0, len(feed.Plays))
	files := make([]*discordgo.File, 0, len(feed.Plays))
	for _, card := range feed.Plays {
		embed := playEmbed(card)
		if !card.Banner.Placeholder {
			data, err := b.services.Banners.Banner(ctx, gamePK, card.Play.ID, false)
			if err == nil {
				name := attachmentName(card.Play.ID)
				files = append(files, &discordgo.File{Name: name, ContentType: "image/png", Reader: bytes.NewReader(data)})
				embed.Image = &discordgo.MessageEmbedImage{URL: "attachment://" + name}
			} else {
				b.logger.Warn("discord /plays: banner %s: %v", card.Play.ID, err)
			}
		}
		embeds = append(embeds, embed)
	}

	content := fmt.Sprintf("Latest plays of game %d (%s)", gamePK, feed.Language)
	s.InteractionResponseEdit(i, &discordgo.WebhookEdit{
		Content: &content,
		Embeds:  &embeds,
		Files:   files,
	})
}

func (b *Bot) handleAsk(s *discordgo.Session, i *discordgo.Interaction) {
	opts := optionMap(i)
	gamePK := int(opts["game"].IntValue())
	playID := opts["play"].StringValue()
	question := opts["question"].StringValue()
	lang := languageFrom(opts)

	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})

	ctx, cancel := b.interactionContext()
	defer cancel()

	answer, err := b.services.Chat.Ask(ctx, lang, gamePK, playID, question)
	if err != nil {
		b.logger.Error("discord /ask %d/%s: %v", gamePK, playID, err)
		b.editContent(s, i, userMessage(err))
		return
	}

	embeds := []*discordgo.MessageEmbed{{
		Title:       truncate(question, 256),
		Description: truncate(answer, maxDescription),
		Color:       colorGreen,
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Game %d | Play %s", gamePK, playID)},
	}}
	s.InteractionResponseEdit(i, &discordgo.WebhookEdit{Embeds: &embeds})
}

func (b *Bot) handleSeason(s *discordgo.Session, i *discordgo.Interaction) {
	opts := optionMap(i)
	year := int(opts["year"].IntValue())

	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})

	ctx, cancel := b.interactionContext()
	defer cancel()

	if opt, ok := opts["sheet"]; ok && opt.BoolValue() {
		url, err := b.services.Games.PublishSeason(ctx, year)
		if err != nil {
			b.logger.Error("discord /season %d sheet: %v", year, err)
			b.editContent(s, i, userMessage(err))
			return
		}
		b.editContent(s, i, fmt.Sprintf("MLB %d season schedule: %s", year, url))
		return
	}

	data, err := b.services.Games.SeasonWorkbook(ctx, year)
	if err != nil {
		b.logger.Error("discord /season %d: %v", year, err)
		b.editContent(s, i, "Could not build the season schedule.")
		return
	}

	content := fmt.Sprintf("MLB %d season schedule", year)
	s.InteractionResponseEdit(i, &discordgo.WebhookEdit{
		Content: &content,
		Files: []*discordgo.File{
			{Name: fmt.Sprintf("mlb_schedule_%d.xlsx", year), Reader: bytes.NewReader(data)},
		},
	})
}

func (b *Bot) interactionContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(b.ctx, interactionTimeout)
}

// userMessage turns a service error into something safe to show in chat.
func userMessage(err error) string {
	switch {
	case errors.Is(err, application.ErrGameNotFound):
		return "Game not found."
	case errors.Is(err, application.ErrPlayNotFound):
		return "Play not found in this game."
	case errors.Is(err, application.ErrInvalidQuestion):
		return "Please ask a shorter, non-empty question."
	case errors.Is(err, models.ErrUnsupportedLanguage):
		return "That language is not supported."
	case errors.Is(err, application.ErrPublishingDisabled):
		return "Google Sheets publishing is not enabled."
	default:
		return "Something went wrong, try again later."
	}
}
