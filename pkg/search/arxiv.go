// Package search contém os clientes de consulta externa do assistente:
// artigos científicos (arXiv) e busca web (Tavily).
package search

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const arxivEndpoint = "https://export.arxiv.org/api/query"

// Article é um registro devolvido pela busca acadêmica.
type Article struct {
	Title     string
	Authors   []string
	Category  string
	Published time.Time
	Link      string
	Abstract  string
}

// ArxivClient consulta a API Atom do arXiv ordenando por relevância.
type ArxivClient struct {
	httpClient *http.Client
	endpoint   string
}

// NewArxivClient cria o cliente com timeout próprio de requisição.
func NewArxivClient(timeout time.Duration) *ArxivClient {
	return &ArxivClient{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   arxivEndpoint,
	}
}

type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID        string `xml:"id"`
	Title     string `xml:"title"`
	Summary   string `xml:"summary"`
	Published string `xml:"published"`
	Authors   []struct {
		Name string `xml:"name"`
	} `xml:"author"`
	PrimaryCategory struct {
		Term string `xml:"term,attr"`
	} `xml:"primary_category"`
}

// Search consulta o arXiv e devolve até maxResults artigos.
func (c *ArxivClient) Search(ctx context.Context, query string, maxResults int) ([]Article, error) {
	if maxResults <= 0 {
		maxResults = 3
	}

	params := url.Values{}
	params.Set("search_query", "all:"+strings.TrimSpace(query))
	params.Set("max_results", fmt.Sprintf("%d", maxResults))
	params.Set("sortBy", "relevance")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("consulta ao arXiv falhou: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv respondeu %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("resposta do arXiv inválida: %w", err)
	}

	articles := make([]Article, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		published, _ := time.Parse(time.RFC3339, e.Published)
		authors := make([]string, 0, len(e.Authors))
		for _, a := range e.Authors {
			authors = append(authors, a.Name)
		}
		articles = append(articles, Article{
			Title:     strings.TrimSpace(e.Title),
			Authors:   authors,
			Category:  e.PrimaryCategory.Term,
			Published: published,
			Link:      strings.TrimSpace(e.ID),
			Abstract:  strings.Join(strings.Fields(e.Summary), " "),
		})
	}
	return articles, nil
}

// FormatArticles monta o relatório em pt-BR da busca acadêmica: no máximo
// três autores são listados (seguidos de "et al."), e o resumo é truncado
// em 250 caracteres.
func FormatArticles(query string, articles []Article) string {
	if len(articles) == 0 {
		return fmt.Sprintf("❌ Nenhum artigo encontrado para: '%s'", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔍 **RESULTADOS PARA: '%s'**\n%s", query, strings.Repeat("=", 60))

	for i, a := range articles {
		authors := a.Authors
		if len(authors) > 3 {
			authors = append(append([]string{}, authors[:3]...), "et al.")
		}

		abstract := a.Abstract
		if len([]rune(abstract)) > 250 {
			abstract = string([]rune(abstract)[:250]) + "..."
		}

		fmt.Fprintf(&b, "\n\n📄 **ARTIGO %d**\n", i+1)
		fmt.Fprintf(&b, "📝 **Título**: %s\n", a.Title)
		fmt.Fprintf(&b, "👥 **Autores**: %s\n", strings.Join(authors, ", "))
		fmt.Fprintf(&b, "📂 **Categoria**: %s\n", a.Category)
		fmt.Fprintf(&b, "📅 **Data**: %s\n", a.Published.Format("02/01/2006"))
		fmt.Fprintf(&b, "🔗 **Link**: %s\n", a.Link)
		fmt.Fprintf(&b, "📖 **Resumo**: %s", abstract)
	}
	return b.String()
}
