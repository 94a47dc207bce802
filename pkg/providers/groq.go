package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/lfreitas/granabot/pkg/logger"
)

// GroqProvider fala com a API da Groq pelo protocolo OpenAI-compatível.
// models é uma lista ordenada: o primeiro é o modelo principal e os demais
// são tentados em sequência quando uma chamada falha.
type GroqProvider struct {
	client  openai.Client
	models  []string
	timeout time.Duration
}

// NewGroqProvider cria o provedor apontando para baseURL (a API da Groq
// ou qualquer endpoint OpenAI-compatível).
func NewGroqProvider(apiKey, baseURL string, models []string, timeout time.Duration) *GroqProvider {
	return &GroqProvider{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
		),
		models:  models,
		timeout: timeout,
	}
}

// Name identifica o provedor em logs.
func (p *GroqProvider) Name() string { return "groq" }

// Chat executa uma rodada de chat com ferramentas, percorrendo a lista de
// modelos em ordem até uma chamada bem-sucedida.
func (p *GroqProvider) Chat(ctx context.Context, messages []Message, tools []ToolDefinition, opts Options) (*LLMResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Messages: toOpenAIMessages(messages),
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(opts.MaxTokens))
	}
	params.Temperature = openai.Float(opts.Temperature)
	if len(tools) > 0 {
		params.Tools = toOpenAITools(tools)
	}

	var lastErr error
	for i, model := range p.models {
		if i > 0 {
			logger.WarnCF("providers", "Modelo principal falhou, tentando fallback",
				map[string]interface{}{"model": model, "attempt": i + 1})
		}
		params.Model = shared.ChatModel(model)

		resp, err := p.client.Chat.Completions.New(ctx, params)
		if err != nil {
			lastErr = err
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("resposta sem choices do modelo %s", model)
			continue
		}
		return fromOpenAIResponse(resp), nil
	}
	return nil, fmt.Errorf("todos os modelos Groq falharam: %w", lastErr)
}

// Complete faz uma chamada única de completion sem ferramentas.
func (p *GroqProvider) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := p.Chat(ctx, []Message{{Role: "user", Content: prompt}}, nil, Options{
		MaxTokens:   2048,
		Temperature: 0.1,
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case "system":
			out = append(out, openai.SystemMessage(m.Content))
		case "tool":
			out = append(out, openai.ToolMessage(m.Content, m.ToolCallID))
		case "assistant":
			assistant := openai.ChatCompletionAssistantMessageParam{}
			if m.Content != "" {
				assistant.Content.OfString = openai.String(m.Content)
			}
			for _, tc := range m.ToolCalls {
				assistant.ToolCalls = append(assistant.ToolCalls, openai.ChatCompletionMessageToolCallUnionParam{
					OfFunction: &openai.ChatCompletionMessageFunctionToolCallParam{
						ID: tc.ID,
						Function: openai.ChatCompletionMessageFunctionToolCallFunctionParam{
							Name:      tc.Function.Name,
							Arguments: tc.Function.Arguments,
						},
					},
				})
			}
			out = append(out, openai.ChatCompletionMessageParamUnion{OfAssistant: &assistant})
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

func toOpenAITools(tools []ToolDefinition) []openai.ChatCompletionToolUnionParam {
	out := make([]openai.ChatCompletionToolUnionParam, 0, len(tools))
	for _, t := range tools {
		out = append(out, openai.ChatCompletionFunctionTool(shared.FunctionDefinitionParam{
			Name:        t.Function.Name,
			Description: openai.String(t.Function.Description),
			Parameters:  shared.FunctionParameters(t.Function.Parameters),
		}))
	}
	return out
}

func fromOpenAIResponse(resp *openai.ChatCompletion) *LLMResponse {
	choice := resp.Choices[0]
	result := &LLMResponse{Content: choice.Message.Content}

	for _, tc := range choice.Message.ToolCalls {
		args := map[string]any{}
		if tc.Function.Arguments != "" {
			// Argumentos malformados viram chamada sem argumentos; a
			// ferramenta devolve orientação ao modelo na iteração seguinte.
			_ = json.Unmarshal([]byte(tc.Function.Arguments), &args)
		}
		result.ToolCalls = append(result.ToolCalls, ResponseToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: args,
		})
	}
	return result
}
