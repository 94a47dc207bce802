package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const atomFixture = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:arxiv="http://arxiv.org/schemas/atom">
  <entry>
    <id>http://arxiv.org/abs/1706.03762v7</id>
    <title>Attention Is All You Need</title>
    <summary>
      The dominant sequence transduction models are based on complex
      recurrent or convolutional neural networks.
    </summary>
    <published>2017-06-12T17:57:34Z</published>
    <author><name>Ashish Vaswani</name></author>
    <author><name>Noam Shazeer</name></author>
    <author><name>Niki Parmar</name></author>
    <author><name>Jakob Uszkoreit</name></author>
    <arxiv:primary_category term="cs.CL"/>
  </entry>
</feed>`

func TestArxivSearchParsesAtom(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "all:transformers", r.URL.Query().Get("search_query"))
		assert.Equal(t, "relevance", r.URL.Query().Get("sortBy"))
		w.Write([]byte(atomFixture))
	}))
	defer srv.Close()

	client := NewArxivClient(5 * time.Second)
	client.endpoint = srv.URL

	articles, err := client.Search(context.Background(), "transformers", 3)
	require.NoError(t, err)
	require.Len(t, articles, 1)

	a := articles[0]
	assert.Equal(t, "Attention Is All You Need", a.Title)
	assert.Len(t, a.Authors, 4)
	assert.Equal(t, "cs.CL", a.Category)
	assert.Equal(t, 2017, a.Published.Year())
	assert.Equal(t, "http://arxiv.org/abs/1706.03762v7", a.Link)
	// O resumo é normalizado para uma única linha.
	assert.NotContains(t, a.Abstract, "\n")
}

func TestArxivSearchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewArxivClient(5 * time.Second)
	client.endpoint = srv.URL

	_, err := client.Search(context.Background(), "qualquer", 3)
	require.Error(t, err)
}

func TestFormatArticles(t *testing.T) {
	long := make([]rune, 300)
	for i := range long {
		long[i] = 'a'
	}

	out := FormatArticles("transformers", []Article{{
		Title:     "Attention Is All You Need",
		Authors:   []string{"A", "B", "C", "D", "E"},
		Category:  "cs.CL",
		Published: time.Date(2017, 6, 12, 0, 0, 0, 0, time.UTC),
		Link:      "http://arxiv.org/abs/1706.03762v7",
		Abstract:  string(long),
	}})

	assert.Contains(t, out, "RESULTADOS PARA: 'transformers'")
	assert.Contains(t, out, "A, B, C, et al.")
	assert.Contains(t, out, "12/06/2017")
	assert.Contains(t, out, "...")
	assert.NotContains(t, out, "D, E")
}

func TestFormatArticlesEmpty(t *testing.T) {
	out := FormatArticles("nada", nil)
	assert.Contains(t, out, "Nenhum artigo encontrado")
}

func TestTavilyRequiresKey(t *testing.T) {
	client := NewTavilyClient("", time.Second)
	assert.False(t, client.Enabled())

	_, err := client.Search(context.Background(), "selic hoje", 3)
	require.Error(t, err)
}

func TestTavilySearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"results":[{"title":"Selic","url":"https://example.com","content":"taxa básica"}]}`))
	}))
	defer srv.Close()

	client := NewTavilyClient("tvly_test", 5*time.Second)
	client.endpoint = srv.URL

	results, err := client.Search(context.Background(), "selic hoje", 3)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Selic", results[0].Title)

	formatted := FormatWebResults("selic hoje", results)
	assert.Contains(t, formatted, "Busca Web para**: selic hoje")
	assert.Contains(t, formatted, "https://example.com")
}
