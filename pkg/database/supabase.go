package database

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/lfreitas/granabot/pkg/logger"
)

// SupabaseStore implementa HistoryStore via a API REST do Supabase,
// para ambientes onde não há conexão direta ao PostgreSQL.
type SupabaseStore struct {
	baseURL    string
	httpClient *http.Client
	headers    map[string]string
	connected  bool
}

func NewSupabaseStore(supabaseURL, supabaseKey string) *SupabaseStore {
	return &SupabaseStore{
		baseURL:    supabaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		headers: map[string]string{
			"apikey":        supabaseKey,
			"Authorization": "Bearer " + supabaseKey,
			"Content-Type":  "application/json",
		},
	}
}

func (s *SupabaseStore) Connect(ctx context.Context) error {
	// Testa a conexão com uma leitura mínima
	_, err := s.request(ctx, http.MethodGet, "conversation_messages?limit=1", nil)
	if err != nil {
		return fmt.Errorf("falha ao conectar ao Supabase: %w", err)
	}
	s.connected = true
	logger.InfoC("database", "✓ Conectado ao Supabase")
	return nil
}

func (s *SupabaseStore) IsConnected() bool {
	return s.connected
}

func (s *SupabaseStore) Close() error {
	s.connected = false
	return nil
}

func (s *SupabaseStore) request(ctx context.Context, method, endpoint string, body interface{}) ([]byte, error) {
	reqURL := fmt.Sprintf("%s/rest/v1/%s", s.baseURL, endpoint)

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, err
	}

	for k, v := range s.headers {
		req.Header.Set(k, v)
	}
	if method == http.MethodPost || method == http.MethodPatch {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("Supabase error %d: %s", resp.StatusCode, string(responseBody))
	}

	return responseBody, nil
}

func (s *SupabaseStore) AppendMessage(ctx context.Context, sessionKey string, msg Message) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	data := map[string]interface{}{
		"id":          msg.ID,
		"session_key": sessionKey,
		"role":        msg.Role,
		"content":     msg.Content,
		"channel":     msg.Channel,
		"created_at":  msg.CreatedAt.Format(time.RFC3339),
	}

	_, err := s.request(ctx, http.MethodPost, "conversation_messages", data)
	return err
}

func (s *SupabaseStore) LoadHistory(ctx context.Context, sessionKey string, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 100
	}

	endpoint := fmt.Sprintf("conversation_messages?session_key=eq.%s&order=created_at.asc&limit=%d",
		url.QueryEscape(sessionKey), limit)
	result, err := s.request(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var messages []Message
	if err := json.Unmarshal(result, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
