package tools

import (
	"context"
	"fmt"

	"github.com/lfreitas/granabot/pkg/search"
)

// WebSearchTool busca informações atuais na web via Tavily.
type WebSearchTool struct {
	client *search.TavilyClient
}

// NewWebSearchTool cria a ferramenta de busca web.
func NewWebSearchTool(client *search.TavilyClient) *WebSearchTool {
	return &WebSearchTool{client: client}
}

// Name devolve o nome exposto ao modelo.
func (t *WebSearchTool) Name() string { return "buscar_informacoes_web" }

// Description descreve a ferramenta para o modelo.
func (t *WebSearchTool) Description() string {
	return "🌐 Busca informações atuais na web usando Tavily. " +
		"Parâmetros: query (string), max_results (inteiro, opcional). " +
		"Retorna informações web atualizadas e relevantes."
}

// Parameters descreve o esquema JSON dos argumentos.
func (t *WebSearchTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "Termos de busca",
			},
			"max_results": map[string]any{
				"type":        "integer",
				"description": "Quantidade máxima de resultados (padrão 3)",
			},
		},
		"required": []string{"query"},
	}
}

// Execute roda a busca. Sem credencial configurada devolve instruções
// estáticas em vez de tentar a chamada.
func (t *WebSearchTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	if !t.client.Enabled() {
		return search.MissingKeyMessage, nil
	}

	query, ok := stringArg(args, "query")
	if !ok || query == "" {
		return "❌ Informe os termos de busca", nil
	}

	maxResults := 3
	if n, ok := floatArg(args, "max_results"); ok && n > 0 {
		maxResults = int(n)
	}

	results, err := t.client.Search(ctx, query, maxResults)
	if err != nil {
		return fmt.Sprintf("❌ Erro na busca web: %v", err), nil
	}
	return search.FormatWebResults(query, results), nil
}
