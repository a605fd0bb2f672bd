package telegram

import (
	"context"
	"fmt"
	"sync"

	"playbook/internal/application"
	"playbook/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const updateTimeout = 60

type Bot struct {
	bot      *tgbotapi.BotAPI
	services *application.Service
	logger   application.Logger

	mu        sync.RWMutex
	languages map[int64]models.Language
}

func NewBot(token string, services *application.Service, logger application.Logger) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	logger.Info("Telegram bot authorized on account %s", bot.Self.UserName)

	return &Bot{
		bot:       bot,
		services:  services,
		logger:    logger,
		languages: make(map[int64]models.Language),
	}, nil
}

func (b *Bot) Name() string {
	return "telegram"
}

func (b *Bot) Init() error {
	return nil
}

func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = updateTimeout
	updates := b.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			b.handleCommand(ctx, update.Message)
		}
	}
}

func (b *Bot) Stop() {
	b.bot.StopReceivingUpdates()
}

// language is the chat's chosen summary language, English until /lang is used.
func (b *Bot) language(chatID int64) models.Language {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if lang, ok := b.languages[chatID]; ok {
		return lang
	}
	return models.BaseLanguage
}

func (b *Bot) setLanguage(chatID int64, lang models.Language) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.languages[chatID] = lang
}
