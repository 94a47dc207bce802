// Package telegram expõe o assistente como bot do Telegram via
// long polling. Cada chat vira uma sessão independente.
package telegram

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"github.com/lfreitas/granabot/pkg/logger"
)

// Handler processa uma mensagem e devolve a resposta em texto.
type Handler interface {
	Handle(ctx context.Context, message, sessionKey string) string
}

// Channel conecta o bot do Telegram ao orquestrador.
type Channel struct {
	bot     *telego.Bot
	handler Handler
}

func NewChannel(token string, handler Handler) (*Channel, error) {
	bot, err := telego.NewBot(token, telego.WithDefaultLogger(false, true))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar bot do Telegram: %w", err)
	}
	return &Channel{bot: bot, handler: handler}, nil
}

// Run consome updates até o contexto ser cancelado.
func (c *Channel) Run(ctx context.Context) error {
	updates, err := c.bot.UpdatesViaLongPolling(ctx, nil)
	if err != nil {
		return fmt.Errorf("erro ao iniciar long polling: %w", err)
	}

	logger.InfoC("telegram", "✓ Bot do Telegram ativo")

	for update := range updates {
		if update.Message == nil || update.Message.Text == "" {
			continue
		}
		c.handleMessage(ctx, update.Message)
	}

	return nil
}

func (c *Channel) handleMessage(ctx context.Context, msg *telego.Message) {
	sessionKey := fmt.Sprintf("telegram:%d", msg.Chat.ID)

	logger.InfoCF("telegram", "Mensagem recebida", map[string]interface{}{
		"chat_id":     msg.Chat.ID,
		"session_key": sessionKey,
	})

	reply := c.handler.Handle(ctx, msg.Text, sessionKey)
	if reply == "" {
		return
	}

	_, err := c.bot.SendMessage(ctx, tu.Message(tu.ID(msg.Chat.ID), reply))
	if err != nil {
		logger.ErrorCF("telegram", "Falha ao enviar resposta", map[string]interface{}{
			"chat_id": msg.Chat.ID,
			"error":   err.Error(),
		})
	}
}
