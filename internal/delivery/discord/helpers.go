package discord

import (
	"fmt"
	"strings"
	"time"

	"playbook/internal/application"
	"playbook/internal/models"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) respondMessage(s *discordgo.Session, i *discordgo.Interaction, msg string, ephemeral bool) {
	flags := discordgo.MessageFlags(0)
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   flags,
		},
	})
}

func (b *Bot) editContent(s *discordgo.Session, i *discordgo.Interaction, msg string) {
	s.InteractionResponseEdit(i, &discordgo.WebhookEdit{Content: &msg})
}

func optionMap(i *discordgo.Interaction) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := i.ApplicationCommandData().Options
	out := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		out[opt.Name] = opt
	}
	return out
}

func languageFrom(opts map[string]*discordgo.ApplicationCommandInteractionDataOption) models.Language {
	opt, ok := opts["language"]
	if !ok {
		return models.BaseLanguage
	}
	lang, err := models.ParseLanguage(opt.StringValue())
	if err != nil {
		return models.BaseLanguage
	}
	return lang
}

func playEmbed(card application.PlayCard) *discordgo.MessageEmbed {
	play := card.Play
	embed := &discordgo.MessageEmbed{
		Color:  colorNavy,
		Footer: &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("%s | %s | Play %s", play.HalfInning(), play.Event, play.ID)},
	}

	if card.Summary == nil {
		embed.Title = valueOrDefault(play.Event, "Play")
		embed.Description = valueOrDefault(play.Description, "Summary is not available yet.")
		embed.Color = colorGray
		return embed
	}

	summary := card.Summary
	embed.Title = truncate(valueOrDefault(summary.Title, play.Event), 256)
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Setup", Value: truncate(summary.Setup, maxFieldLength)},
		{Name: "What happened", Value: truncate(summary.SummaryOfPlayEvents, maxFieldLength)},
		{Name: "Outcome", Value: truncate(summary.Outcome, maxFieldLength)},
		{Name: "Strategy", Value: truncate(summary.OverallStrategyInsights, maxFieldLength)},
	}
	return embed
}

func scheduleEmbed(date time.Time, games []models.ScheduledGame) *discordgo.MessageEmbed {
	var sb strings.Builder
	for idx, g := range games {
		if idx == maxScheduleLines {
			sb.WriteString(fmt.Sprintf("...and %d more\n", len(games)-idx))
			break
		}
		sb.WriteString(fmt.Sprintf("`%d` %s\n", g.GamePK, g.Label()))
	}
	return &discordgo.MessageEmbed{
		Title:       "Games on " + date.Format(dateLayout),
		Description: sb.String(),
		Color:       colorGold,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Use /plays game:<id> to follow a game"},
	}
}

func attachmentName(playID string) string {
	return "banner_" + strings.ReplaceAll(playID, "-", "") + ".png"
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func valueOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
