// Package session mantém o histórico de conversas em memória,
// com persistência opcional em banco de dados.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lfreitas/granabot/pkg/database"
	"github.com/lfreitas/granabot/pkg/logger"
	"github.com/lfreitas/granabot/pkg/providers"
)

// Session guarda as mensagens de uma conversa ativa.
type Session struct {
	Key          string
	Messages     []providers.Message
	LastActivity time.Time
}

// Manager gerencia sessões por chave (ex: "cli:direct", "telegram:12345").
type Manager struct {
	mu         sync.RWMutex
	sessions   map[string]*Session
	store      database.HistoryStore // nil quando não há banco configurado
	maxHistory int
}

func NewManager(store database.HistoryStore) *Manager {
	return &Manager{
		sessions:   make(map[string]*Session),
		store:      store,
		maxHistory: 100,
	}
}

// History retorna o histórico da sessão. Na primeira consulta tenta
// hidratar a partir do banco, se houver.
func (m *Manager) History(ctx context.Context, key string) []providers.Message {
	m.mu.RLock()
	s, ok := m.sessions[key]
	m.mu.RUnlock()

	if ok {
		return append([]providers.Message(nil), s.Messages...)
	}

	var messages []providers.Message
	if m.store != nil && m.store.IsConnected() {
		stored, err := m.store.LoadHistory(ctx, key, m.maxHistory)
		if err != nil {
			logger.DebugC("session", "Histórico não encontrado no banco: "+err.Error())
		}
		for _, msg := range stored {
			messages = append(messages, providers.Message{
				Role:    msg.Role,
				Content: msg.Content,
			})
		}
		if len(messages) > 0 {
			logger.DebugC("session", fmt.Sprintf("Sessão %s hidratada do banco: %d mensagens", key, len(messages)))
		}
	}

	m.mu.Lock()
	m.sessions[key] = &Session{Key: key, Messages: messages, LastActivity: time.Now()}
	m.mu.Unlock()

	return append([]providers.Message(nil), messages...)
}

// Append adiciona uma mensagem user/assistant e persiste no banco.
func (m *Manager) Append(ctx context.Context, key, role, content string) {
	m.AppendFull(key, providers.Message{Role: role, Content: content})

	if m.store == nil || !m.store.IsConnected() {
		return
	}
	err := m.store.AppendMessage(ctx, key, database.Message{
		Role:    role,
		Content: content,
	})
	if err != nil {
		logger.WarnC("session", "Falha ao persistir mensagem: "+err.Error())
	}
}

// AppendFull adiciona uma mensagem completa (com tool calls) apenas
// em memória. Mensagens intermediárias de ferramentas não vão ao banco.
func (m *Manager) AppendFull(key string, msg providers.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[key]
	if !ok {
		s = &Session{Key: key}
		m.sessions[key] = s
	}

	s.Messages = append(s.Messages, msg)
	s.LastActivity = time.Now()

	if len(s.Messages) > m.maxHistory {
		s.Messages = s.Messages[len(s.Messages)-m.maxHistory:]
	}
}

// Reset descarta o histórico em memória da sessão.
func (m *Manager) Reset(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, key)
}
