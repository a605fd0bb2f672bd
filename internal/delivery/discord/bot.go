package discord

import (
	"context"
	"fmt"

	"playbook/internal/application"

	"github.com/bwmarrin/discordgo"
)

type Bot struct {
	session  *discordgo.Session
	services *application.Service
	logger   application.Logger
	guildID  string
	commands []*discordgo.ApplicationCommand
	ctx      context.Context
}

func NewBot(token, guildID string, services *application.Service, logger application.Logger) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	b := &Bot{
		session:  s,
		services: services,
		logger:   logger,
		guildID:  guildID,
		ctx:      context.Background(),
	}
	b.addCommands(
		b.newGamesCommand(),
		b.newPlaysCommand(),
		b.newAskCommand(),
		b.newSeasonCommand(),
	)
	return b, nil
}

func (b *Bot) Name() string {
	return "discord"
}

func (b *Bot) Init() error {
	b.session.AddHandler(b.onInteraction)
	return nil
}

func (b *Bot) Run(ctx context.Context) error {
	b.ctx = ctx
	if err := b.session.Open(); err != nil {
		return err
	}

	b.logger.Info("Discord bot started, registering slash commands")

	_, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, b.guildID, b.commands)
	if err != nil {
		b.logger.Error("failed to register commands: %v", err)
	} else {
		b.logger.Info("registered %d slash commands", len(b.commands))
	}

	return nil
}

func (b *Bot) Stop() {
	b.session.Close()
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "games":
		b.handleGames(s, i.Interaction)
	case "plays":
		b.handlePlays(s, i.Interaction)
	case "ask":
		b.handleAsk(s, i.Interaction)
	case "season":
		b.handleSeason(s, i.Interaction)
	}
}
