// Package agent implementa o loop de raciocínio do assistente:
// chamada ao LLM com ferramentas, execução dos tool calls solicitados
// e fallback entre provedores quando um deles falha.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lfreitas/granabot/pkg/logger"
	"github.com/lfreitas/granabot/pkg/providers"
	"github.com/lfreitas/granabot/pkg/session"
	"github.com/lfreitas/granabot/pkg/tools"
)

// systemPrompt orienta o modelo a preferir as ferramentas registradas
// em vez de calcular de cabeça.
const systemPrompt = `Você é um assistente financeiro multifuncional brasileiro.

Suas capacidades:
- Calcular imposto de renda (tabela brasileira)
- Cálculos financeiros: porcentagem, juros compostos e juros simples
- Buscar artigos científicos no arXiv
- Buscar informações atualizadas na web

Regras:
1. SEMPRE use as ferramentas disponíveis para cálculos e buscas. Nunca calcule de cabeça.
2. Responda sempre em português do Brasil.
3. Valores monetários no formato brasileiro (R$ 1.234,56).
4. Se faltar informação para um cálculo, pergunte ao usuário o que falta.
5. Seja direto e objetivo nas respostas.`

// Loop executa o ciclo pergunta -> LLM -> ferramentas -> resposta.
type Loop struct {
	providers     []providers.LLMProvider
	registry      *tools.Registry
	sessions      *session.Manager
	maxIterations int
}

func NewLoop(provs []providers.LLMProvider, registry *tools.Registry, sessions *session.Manager, maxIterations int) *Loop {
	if maxIterations < 1 {
		maxIterations = 1
	}
	return &Loop{
		providers:     provs,
		registry:      registry,
		sessions:      sessions,
		maxIterations: maxIterations,
	}
}

// Providers expõe a cadeia de provedores na ordem de fallback.
func (l *Loop) Providers() []providers.LLMProvider {
	return l.providers
}

// Respond processa uma mensagem do usuário dentro de uma sessão e
// devolve a resposta final do modelo após resolver os tool calls.
func (l *Loop) Respond(ctx context.Context, userMessage, sessionKey string) (string, error) {
	history := l.sessions.History(ctx, sessionKey)

	messages := make([]providers.Message, 0, len(history)+2)
	messages = append(messages, providers.Message{Role: "system", Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, providers.Message{Role: "user", Content: userMessage})

	l.sessions.Append(ctx, sessionKey, "user", userMessage)

	final, iterations, err := l.runIterations(ctx, messages, sessionKey)
	if err != nil {
		return "", err
	}

	l.sessions.Append(ctx, sessionKey, "assistant", final)

	logger.DebugCF("agent", "Resposta gerada", map[string]interface{}{
		"session_key": sessionKey,
		"iterations":  iterations,
		"chars":       len(final),
	})

	return final, nil
}

// runIterations roda o loop de tool calling até o modelo responder
// sem pedir ferramentas ou até esgotar as iterações.
func (l *Loop) runIterations(ctx context.Context, messages []providers.Message, sessionKey string) (string, int, error) {
	toolDefs := l.registry.ToProviderDefs()
	opts := providers.Options{MaxTokens: 2048, Temperature: 0.1}

	iteration := 0
	var final string

	for iteration < l.maxIterations {
		iteration++

		response, err := l.chatWithFallback(ctx, messages, toolDefs, opts)
		if err != nil {
			return "", iteration, err
		}

		if len(response.ToolCalls) == 0 {
			final = response.Content
			break
		}

		toolNames := make([]string, 0, len(response.ToolCalls))
		for _, tc := range response.ToolCalls {
			toolNames = append(toolNames, tc.Name)
		}
		logger.InfoCF("agent", "Modelo solicitou ferramentas", map[string]interface{}{
			"tools":     toolNames,
			"iteration": iteration,
		})

		assistantMsg := providers.Message{Role: "assistant", Content: response.Content}
		for _, tc := range response.ToolCalls {
			argsJSON, _ := json.Marshal(tc.Arguments)
			assistantMsg.ToolCalls = append(assistantMsg.ToolCalls, providers.ToolCall{
				ID:   tc.ID,
				Type: "function",
				Function: &providers.FunctionCall{
					Name:      tc.Name,
					Arguments: string(argsJSON),
				},
			})
		}
		messages = append(messages, assistantMsg)
		l.sessions.AppendFull(sessionKey, assistantMsg)

		for _, tc := range response.ToolCalls {
			result := l.executeTool(ctx, tc)
			toolMsg := providers.Message{
				Role:       "tool",
				Content:    result,
				ToolCallID: tc.ID,
			}
			messages = append(messages, toolMsg)
			l.sessions.AppendFull(sessionKey, toolMsg)
		}
	}

	if final == "" {
		return "", iteration, fmt.Errorf("modelo não produziu resposta final após %d iterações", iteration)
	}

	return final, iteration, nil
}

// chatWithFallback tenta os provedores na ordem configurada.
func (l *Loop) chatWithFallback(ctx context.Context, messages []providers.Message, toolDefs []providers.ToolDefinition, opts providers.Options) (*providers.LLMResponse, error) {
	var lastErr error

	for i, provider := range l.providers {
		if i > 0 {
			logger.WarnCF("agent", "Tentando provedor fallback", map[string]interface{}{
				"provider": provider.Name(),
				"position": i + 1,
			})
		}

		response, err := provider.Chat(ctx, messages, toolDefs, opts)
		if err == nil {
			return response, nil
		}

		lastErr = err
		logger.ErrorCF("agent", "Provedor falhou", map[string]interface{}{
			"provider": provider.Name(),
			"error":    err.Error(),
		})
	}

	return nil, fmt.Errorf("todos os provedores falharam: %w", lastErr)
}

func (l *Loop) executeTool(ctx context.Context, tc providers.ResponseToolCall) string {
	tool, ok := l.registry.Get(tc.Name)
	if !ok {
		return fmt.Sprintf("❌ Ferramenta desconhecida: %s", tc.Name)
	}

	argsJSON, _ := json.Marshal(tc.Arguments)
	logger.InfoCF("agent", fmt.Sprintf("Executando %s", tc.Name), map[string]interface{}{
		"args": truncate(string(argsJSON), 200),
	})

	result, err := tool.Execute(ctx, tc.Arguments)
	if err != nil {
		return fmt.Sprintf("❌ Erro ao executar %s: %v", tc.Name, err)
	}
	return result
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max]) + "..."
}
