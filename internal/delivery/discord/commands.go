package discord

import (
	"playbook/internal/models"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) addCommands(commands ...*discordgo.ApplicationCommand) {
	b.commands = append(b.commands, commands...)
}

func languageOption() *discordgo.ApplicationCommandOption {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(models.SupportedLanguages()))
	for _, lang := range models.SupportedLanguages() {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: string(lang), Value: string(lang)})
	}
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "language",
		Description: "Summary language",
		Required:    false,
		Choices:     choices,
	}
}

func gameOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type: discordgo.ApplicationCommandOptionInteger, Name: "game", Description: "Game id (gamePk)", Required: true,
	}
}

func (b *Bot) newGamesCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "games",
		Description: "MLB games of a day",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "date", Description: "YYYY-MM-DD, today by default", Required: false},
		},
	}
}

func (b *Bot) newPlaysCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "plays",
		Description: "Latest plays of a game with summaries and banners",
		Options: []*discordgo.ApplicationCommandOption{
			gameOption(),
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "limit", Description: "How many plays", Required: false},
			languageOption(),
		},
	}
}

func (b *Bot) newAskCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "ask",
		Description: "Ask a question about a play",
		Options: []*discordgo.ApplicationCommandOption{
			gameOption(),
			{Type: discordgo.ApplicationCommandOptionString, Name: "play", Description: "Play id", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "question", Description: "Your question", Required: true},
			languageOption(),
		},
	}
}

func (b *Bot) newSeasonCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "season",
		Description: "Season schedule as an Excel workbook or Google Sheet",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "year", Description: "Season year", Required: true},
			{Type: discordgo.ApplicationCommandOptionBoolean, Name: "sheet", Description: "Publish to the shared Google Sheet instead", Required: false},
		},
	}
}
