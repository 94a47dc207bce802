package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfreitas/granabot/pkg/providers"
	"github.com/lfreitas/granabot/pkg/session"
	"github.com/lfreitas/granabot/pkg/tools"
)

// fakeProvider devolve respostas roteirizadas, uma por chamada.
type fakeProvider struct {
	name      string
	responses []*providers.LLMResponse
	err       error
	calls     int
	seen      [][]providers.Message
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Chat(ctx context.Context, messages []providers.Message, toolDefs []providers.ToolDefinition, opts providers.Options) (*providers.LLMResponse, error) {
	f.seen = append(f.seen, messages)
	if f.err != nil {
		return nil, f.err
	}
	if f.calls >= len(f.responses) {
		return &providers.LLMResponse{Content: "sem roteiro"}, nil
	}
	resp := f.responses[f.calls]
	f.calls++
	return resp, nil
}

func (f *fakeProvider) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := f.Chat(ctx, []providers.Message{{Role: "user", Content: prompt}}, nil, providers.Options{})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func newTestRegistry() *tools.Registry {
	r := tools.NewRegistry()
	r.Register(tools.NewIncomeTaxTool())
	r.Register(tools.NewFinanceTool())
	return r
}

func TestRespondDirectAnswer(t *testing.T) {
	provider := &fakeProvider{
		name:      "groq",
		responses: []*providers.LLMResponse{{Content: "Posso ajudar com cálculos financeiros."}},
	}
	loop := NewLoop([]providers.LLMProvider{provider}, newTestRegistry(), session.NewManager(nil), 8)

	out, err := loop.Respond(context.Background(), "o que você faz?", "cli:direct")
	require.NoError(t, err)
	assert.Equal(t, "Posso ajudar com cálculos financeiros.", out)

	// system prompt vai na primeira posição
	require.NotEmpty(t, provider.seen)
	assert.Equal(t, "system", provider.seen[0][0].Role)
}

func TestRespondResolvesToolCalls(t *testing.T) {
	provider := &fakeProvider{
		name: "groq",
		responses: []*providers.LLMResponse{
			{ToolCalls: []providers.ResponseToolCall{{
				ID:   "call_1",
				Name: "calcular_imposto_renda",
				Arguments: map[string]any{
					"rendimento": 50000.0,
				},
			}}},
			{Content: "O imposto devido é R$ 2.195,10."},
		},
	}
	loop := NewLoop([]providers.LLMProvider{provider}, newTestRegistry(), session.NewManager(nil), 8)

	out, err := loop.Respond(context.Background(), "quanto pago de IR com 50000?", "cli:direct")
	require.NoError(t, err)
	assert.Contains(t, out, "2.195,10")
	assert.Equal(t, 2, provider.calls)

	// a segunda chamada recebe o resultado da ferramenta
	second := provider.seen[1]
	last := second[len(second)-1]
	assert.Equal(t, "tool", last.Role)
	assert.Equal(t, "call_1", last.ToolCallID)
	assert.Contains(t, last.Content, "2.195,10")
}

func TestRespondFallsBackToSecondProvider(t *testing.T) {
	broken := &fakeProvider{name: "groq", err: errors.New("rate limited")}
	backup := &fakeProvider{
		name:      "anthropic",
		responses: []*providers.LLMResponse{{Content: "resposta do fallback"}},
	}
	loop := NewLoop([]providers.LLMProvider{broken, backup}, newTestRegistry(), session.NewManager(nil), 8)

	out, err := loop.Respond(context.Background(), "oi", "cli:direct")
	require.NoError(t, err)
	assert.Equal(t, "resposta do fallback", out)
}

func TestRespondAllProvidersFail(t *testing.T) {
	broken := &fakeProvider{name: "groq", err: errors.New("boom")}
	loop := NewLoop([]providers.LLMProvider{broken}, newTestRegistry(), session.NewManager(nil), 8)

	_, err := loop.Respond(context.Background(), "oi", "cli:direct")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "todos os provedores falharam")
}

func TestRespondStopsAtMaxIterations(t *testing.T) {
	// provider sempre pede ferramenta, nunca responde
	loopingCall := &providers.LLMResponse{ToolCalls: []providers.ResponseToolCall{{
		ID:        "call_x",
		Name:      "calculadora_financeira",
		Arguments: map[string]any{"tipo": "porcentagem", "valor": 100.0, "percentual": 10.0},
	}}}
	provider := &fakeProvider{
		name:      "groq",
		responses: []*providers.LLMResponse{loopingCall, loopingCall, loopingCall},
	}
	loop := NewLoop([]providers.LLMProvider{provider}, newTestRegistry(), session.NewManager(nil), 3)

	_, err := loop.Respond(context.Background(), "calcule", "cli:direct")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 iterações")
}

func TestRespondKeepsHistory(t *testing.T) {
	provider := &fakeProvider{
		name: "groq",
		responses: []*providers.LLMResponse{
			{Content: "primeira"},
			{Content: "segunda"},
		},
	}
	sessions := session.NewManager(nil)
	loop := NewLoop([]providers.LLMProvider{provider}, newTestRegistry(), sessions, 8)

	_, err := loop.Respond(context.Background(), "pergunta 1", "cli:direct")
	require.NoError(t, err)
	_, err = loop.Respond(context.Background(), "pergunta 2", "cli:direct")
	require.NoError(t, err)

	// segunda chamada inclui o histórico da primeira troca
	second := provider.seen[1]
	var contents []string
	for _, m := range second {
		contents = append(contents, m.Content)
	}
	assert.Contains(t, contents, "pergunta 1")
	assert.Contains(t, contents, "primeira")
}
