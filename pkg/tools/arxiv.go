package tools

import (
	"context"
	"fmt"

	"github.com/lfreitas/granabot/pkg/search"
)

// ArxivTool busca artigos científicos no arXiv.
type ArxivTool struct {
	client *search.ArxivClient
}

// NewArxivTool cria a ferramenta de busca acadêmica.
func NewArxivTool(client *search.ArxivClient) *ArxivTool {
	return &ArxivTool{client: client}
}

// Name devolve o nome exposto ao modelo.
func (t *ArxivTool) Name() string { return "consultar_artigos_cientificos" }

// Description descreve a ferramenta para o modelo.
func (t *ArxivTool) Description() string {
	return "📚 Busca artigos científicos no arXiv por relevância. " +
		"Parâmetros: query (string), max_results (inteiro, opcional). " +
		"Retorna artigos acadêmicos com resumo, autores e links."
}

// Parameters descreve o esquema JSON dos argumentos.
func (t *ArxivTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "Termos de busca",
			},
			"max_results": map[string]any{
				"type":        "integer",
				"description": "Quantidade máxima de artigos (padrão 3)",
			},
		},
		"required": []string{"query"},
	}
}

// Execute consulta o arXiv; falhas viram mensagem formatada, nunca erro
// propagado ao chamador.
func (t *ArxivTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	query, ok := stringArg(args, "query")
	if !ok || query == "" {
		return "❌ Informe os termos de busca para consultar artigos", nil
	}

	maxResults := 3
	if n, ok := floatArg(args, "max_results"); ok && n > 0 {
		maxResults = int(n)
	}

	articles, err := t.client.Search(ctx, query, maxResults)
	if err != nil {
		return fmt.Sprintf("❌ Erro na consulta ao arXiv: %v", err), nil
	}
	return search.FormatArticles(query, articles), nil
}
