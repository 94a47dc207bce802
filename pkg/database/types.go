package database

import (
	"context"
	"time"
)

// HistoryStore persiste o histórico de conversas do assistente.
// Implementações: PostgresStore (pgx) e SupabaseStore (REST API).
type HistoryStore interface {
	Connect(ctx context.Context) error
	IsConnected() bool
	Close() error
	LoadHistory(ctx context.Context, sessionKey string, limit int) ([]Message, error)
	AppendMessage(ctx context.Context, sessionKey string, msg Message) error
}

// Message é uma mensagem persistida de uma conversa.
type Message struct {
	ID         string    `json:"id"`
	SessionKey string    `json:"session_key"`
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	Channel    string    `json:"channel"`
	CreatedAt  time.Time `json:"created_at"`
}
