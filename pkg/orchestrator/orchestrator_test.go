package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfreitas/granabot/pkg/search"
)

type fakeAgent struct {
	result string
	err    error
	panics bool
	calls  int
}

func (f *fakeAgent) Respond(ctx context.Context, message, sessionKey string) (string, error) {
	f.calls++
	if f.panics {
		panic("estado interno corrompido")
	}
	return f.result, f.err
}

type fakeCompleter struct {
	result string
	err    error
	prompt string
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.result, f.err
}

type fakeSearcher struct {
	articles []search.Article
	err      error
	query    string
}

func (f *fakeSearcher) Search(ctx context.Context, query string, maxResults int) ([]search.Article, error) {
	f.query = query
	return f.articles, f.err
}

func newOrchestrator(agent Responder, completer Completer, searcher ArticleSearcher) *Orchestrator {
	if completer == nil {
		completer = &fakeCompleter{result: "resposta geral do modelo com conteúdo suficiente"}
	}
	if searcher == nil {
		searcher = &fakeSearcher{}
	}
	return New(agent, completer, searcher, DefaultGate())
}

func TestGateAccept(t *testing.T) {
	gate := DefaultGate()

	tests := []struct {
		name   string
		input  string
		accept bool
	}{
		{"resposta boa", "O imposto devido para essa renda é R$ 2.195,10.", true},
		{"vazia", "", false},
		{"só espaços", "   \n\t  ", false},
		{"curta demais", "Resposta curta.", false},
		{"contém error", "An unexpected ERROR occurred while processing", false},
		{"contém erro maiúsculo", "ERRO ao consultar o modelo de linguagem agora", false},
		{"contém failed", "The request failed after several retries here", false},
		{"contém none", "None of the providers returned anything usable", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.accept, gate.Accept(tt.input))
		})
	}
}

func TestGateConfigurable(t *testing.T) {
	gate := Gate{MinLength: 5, Denylist: []string{"proibido"}}
	assert.True(t, gate.Accept("resposta ok"))
	assert.False(t, gate.Accept("isto é PROIBIDO aqui"))
	assert.False(t, gate.Accept("curta"))
}

func TestHandleAcceptsGoodAgentAnswer(t *testing.T) {
	agent := &fakeAgent{result: "O montante final do investimento será R$ 16.105,10."}
	completer := &fakeCompleter{}
	o := newOrchestrator(agent, completer, nil)

	out := o.Handle(context.Background(), "calcule juros", "cli:direct")
	assert.Equal(t, agent.result, out)
	assert.Empty(t, completer.prompt, "não deve cair no fallback")
}

func TestHandleRejectsAgentAnswerWithErrorMarker(t *testing.T) {
	// resposta bem formada mas com indicador de falha: gate rejeita
	agent := &fakeAgent{result: "I encountered an Error while running the requested tool chain."}
	o := newOrchestrator(agent, nil, nil)

	out := o.Handle(context.Background(), "Calcule o imposto de renda de R$ 50.000", "cli:direct")
	assert.Contains(t, out, "IMPOSTO DE RENDA")
	assert.Contains(t, out, "2.195,10")
}

func TestHandleAgentFailureFallsThrough(t *testing.T) {
	agent := &fakeAgent{err: errors.New("groq indisponível")}
	o := newOrchestrator(agent, nil, nil)

	out := o.Handle(context.Background(), "Calcule 20% de R$ 5.000", "cli:direct")
	assert.Contains(t, out, "1.000,00")
}

func TestHandleEndToEndPercentage(t *testing.T) {
	o := newOrchestrator(nil, nil, nil)

	out := o.Handle(context.Background(), "Calcule 20% de R$ 5.000", "cli:direct")
	assert.Contains(t, out, "PORCENTAGEM")
	assert.Contains(t, out, "1.000,00")
}

func TestHandleTaxWithoutValue(t *testing.T) {
	o := newOrchestrator(nil, nil, nil)

	out := o.Handle(context.Background(), "como calcular ir", "cli:direct")
	assert.Contains(t, out, "informe o valor da renda")
}

func TestHandlePercentageMissingRate(t *testing.T) {
	o := newOrchestrator(nil, nil, nil)

	out := o.Handle(context.Background(), "qual a porcentagem de 5000", "cli:direct")
	assert.Contains(t, out, "Pergunta incompleta")
	assert.Contains(t, out, "5000")
}

func TestHandlePercentageNoNumbers(t *testing.T) {
	o := newOrchestrator(nil, nil, nil)

	out := o.Handle(context.Background(), "como funciona percentual de desconto", "cli:direct")
	assert.Contains(t, out, "Para calcular porcentagem, preciso de")
}

func TestHandleCompoundInterest(t *testing.T) {
	o := newOrchestrator(nil, nil, nil)

	out := o.Handle(context.Background(), "Calcule juros compostos de R$ 10.000 a 10% por 5 anos", "cli:direct")
	assert.Contains(t, out, "JUROS COMPOSTOS")
	assert.Contains(t, out, "16.105,10")
}

func TestHandleCompoundInterestMissingFields(t *testing.T) {
	o := newOrchestrator(nil, nil, nil)

	out := o.Handle(context.Background(), "quanto rende com juros compostos?", "cli:direct")
	assert.Contains(t, out, "Para calcular juros compostos, preciso de")
}

func TestHandleScientificSearch(t *testing.T) {
	searcher := &fakeSearcher{articles: []search.Article{{
		Title:    "Deep Learning for Finance",
		Authors:  []string{"A. Silva"},
		Category: "cs.LG",
		Link:     "https://arxiv.org/abs/0000.0001",
		Abstract: "Um estudo sobre redes neurais.",
	}}}
	o := newOrchestrator(nil, nil, searcher)

	out := o.Handle(context.Background(), "busque artigos científicos sobre machine learning", "cli:direct")
	assert.Contains(t, out, "Deep Learning for Finance")
	assert.Contains(t, searcher.query, "machine learning")
	assert.NotContains(t, searcher.query, "busque")
}

func TestHandleScientificSearchError(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("timeout")}
	o := newOrchestrator(nil, nil, searcher)

	out := o.Handle(context.Background(), "busque papers sobre física", "cli:direct")
	assert.Contains(t, out, "❌ Erro na consulta ao arXiv")
}

func TestHandleGeneralUsesCompletion(t *testing.T) {
	completer := &fakeCompleter{result: "Blockchain é um livro-razão distribuído e imutável."}
	o := newOrchestrator(nil, completer, nil)

	out := o.Handle(context.Background(), "O que é blockchain?", "cli:direct")
	assert.Equal(t, completer.result, out)
	assert.Contains(t, completer.prompt, "O que é blockchain?")
	assert.Contains(t, completer.prompt, "Responda à pergunta de forma clara")
}

func TestHandleGeneralCompletionFailure(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("sem quota")}
	o := newOrchestrator(nil, completer, nil)

	out := o.Handle(context.Background(), "explique a teoria da relatividade", "cli:direct")
	assert.Contains(t, out, "O que posso fazer por você")
	assert.Contains(t, out, "Imposto de Renda")
}

func TestHandleNeverPanics(t *testing.T) {
	agent := &fakeAgent{panics: true}
	o := newOrchestrator(agent, nil, nil)

	var out string
	require.NotPanics(t, func() {
		out = o.Handle(context.Background(), "qualquer coisa", "cli:direct")
	})
	assert.True(t, strings.HasPrefix(out, "❌ Erro crítico"))
}

func TestHandleIsDeterministicPerIntent(t *testing.T) {
	o := newOrchestrator(nil, nil, nil)
	msg := "Calcule 20% de R$ 5.000"

	first := o.Handle(context.Background(), msg, "cli:direct")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, o.Handle(context.Background(), msg, "cli:direct"))
	}
}
