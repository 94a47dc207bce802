package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const tavilyEndpoint = "https://api.tavily.com/search"

// WebResult é um resultado individual da busca web.
type WebResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// TavilyClient consulta a API de busca da Tavily.
type TavilyClient struct {
	apiKey     string
	httpClient *http.Client
	endpoint   string
}

// NewTavilyClient cria o cliente. apiKey vazia é permitida: Enabled()
// informa se a busca pode ser usada.
func NewTavilyClient(apiKey string, timeout time.Duration) *TavilyClient {
	return &TavilyClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   tavilyEndpoint,
	}
}

// Enabled informa se há credencial configurada.
func (c *TavilyClient) Enabled() bool { return c.apiKey != "" }

type tavilyRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type tavilyResponse struct {
	Results []WebResult `json:"results"`
}

// Search executa a busca web. Falha quando não há credencial; a conversão
// dessa falha em instruções de configuração é responsabilidade da borda.
func (c *TavilyClient) Search(ctx context.Context, query string, maxResults int) ([]WebResult, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("TAVILY_API_KEY não configurada")
	}
	if maxResults <= 0 {
		maxResults = 3
	}

	payload, err := json.Marshal(tavilyRequest{APIKey: c.apiKey, Query: query, MaxResults: maxResults})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("busca web falhou: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Tavily respondeu %d: %s", resp.StatusCode, string(body))
	}

	var parsed tavilyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("resposta da Tavily inválida: %w", err)
	}
	return parsed.Results, nil
}

// MissingKeyMessage são as instruções estáticas devolvidas quando a busca
// web é chamada sem credencial configurada.
const MissingKeyMessage = `❌ **CHAVE TAVILY NÃO CONFIGURADA**

Para usar busca web:
1. Adicione TAVILY_API_KEY="sua_chave" no arquivo .env
2. Obtenha uma chave em: https://tavily.com`

// FormatWebResults envelopa os resultados com o cabeçalho da busca web.
func FormatWebResults(query string, results []WebResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🌐 **Busca Web para**: %s\n", query)
	for _, r := range results {
		fmt.Fprintf(&b, "\n• **%s**\n  %s\n  %s\n", r.Title, r.URL, r.Content)
	}
	return strings.TrimRight(b.String(), "\n")
}
