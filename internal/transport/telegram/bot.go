package telegram

import (
	"context"
	"fmt"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/anhngx/grambot/internal/config"
	"github.com/anhngx/grambot/internal/core"
	"github.com/anhngx/grambot/pkg/log"
)

const baseContextKey = "base_context"

// Orchestrator handles one chat exchange.
type Orchestrator interface {
	Handle(ctx context.Context, userID, utterance string) (core.Reply, error)
}

type Bot struct {
	bot     *tele.Bot
	cfg     *config.TelegramConfig
	orch    Orchestrator
	turns   core.TurnsRepository
	sender  *sender
	ownerID int64
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	orch Orchestrator,
	turns core.TurnsRepository,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		cfg:     cfg,
		orch:    orch,
		turns:   turns,
		sender:  newSender(b),
		ownerID: cfg.OwnerID,
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Middleware: Only allow the owner
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender().ID != bot.ownerID {
				return nil // Ignore unauthorized users
			}
			return next(c)
		}
	})

	b.Handle("/clear", bot.handleClear)
	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func userID(c tele.Context) string {
	return fmt.Sprintf("telegram-%d", c.Chat().ID)
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)

	// Notify user we are working
	_ = c.Notify(tele.Typing)

	reply, err := b.orch.Handle(ctx, userID(c), c.Text())
	if err != nil {
		logger.Error().Err(err).Msg("chat failed")
		return c.Send("Sorry, I could not answer that right now. Please try again.")
	}

	return b.sender.sendMarkdown(ctx, c.Chat(), reply.Text, false)
}

func (b *Bot) handleClear(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)

	if err := b.turns.Clear(ctx, userID(c)); err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("history clear failed")
		return c.Send("Could not clear the conversation.")
	}
	return c.Send("Conversation cleared. Let's start fresh!")
}
