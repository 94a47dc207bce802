package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicProvider é o provedor secundário, usado pelo loop do agente
// quando o primário falha.
type AnthropicProvider struct {
	client  anthropic.Client
	model   string
	timeout time.Duration
}

// NewAnthropicProvider cria o provedor com a chave e o modelo informados.
func NewAnthropicProvider(apiKey, model string, timeout time.Duration) *AnthropicProvider {
	return &AnthropicProvider{
		client:  anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:   model,
		timeout: timeout,
	}
}

// Name identifica o provedor em logs.
func (p *AnthropicProvider) Name() string { return "anthropic" }

// Chat executa uma rodada de chat com ferramentas via API de Messages.
func (p *AnthropicProvider) Chat(ctx context.Context, messages []Message, tools []ToolDefinition, opts Options) (*LLMResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	maxTokens := int64(opts.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 2048
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: maxTokens,
	}

	for _, m := range messages {
		switch m.Role {
		case "system":
			params.System = append(params.System, anthropic.TextBlockParam{Text: m.Content})
		case "user":
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		case "tool":
			params.Messages = append(params.Messages,
				anthropic.NewUserMessage(anthropic.NewToolResultBlock(m.ToolCallID, m.Content, false)))
		case "assistant":
			var blocks []anthropic.ContentBlockParamUnion
			if m.Content != "" {
				blocks = append(blocks, anthropic.NewTextBlock(m.Content))
			}
			for _, tc := range m.ToolCalls {
				blocks = append(blocks, anthropic.NewToolUseBlock(tc.ID, json.RawMessage(tc.Function.Arguments), tc.Function.Name))
			}
			if len(blocks) > 0 {
				params.Messages = append(params.Messages, anthropic.NewAssistantMessage(blocks...))
			}
		}
	}

	for _, t := range tools {
		schema := anthropic.ToolInputSchemaParam{}
		if props, ok := t.Function.Parameters["properties"]; ok {
			schema.Properties = props
		}
		if req, ok := t.Function.Parameters["required"].([]string); ok {
			schema.Required = req
		}
		params.Tools = append(params.Tools, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        t.Function.Name,
				Description: anthropic.String(t.Function.Description),
				InputSchema: schema,
			},
		})
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("chamada à Anthropic falhou: %w", err)
	}

	result := &LLMResponse{}
	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			result.Content += block.Text
		case "tool_use":
			args := map[string]any{}
			_ = json.Unmarshal(block.Input, &args)
			result.ToolCalls = append(result.ToolCalls, ResponseToolCall{
				ID:        block.ID,
				Name:      block.Name,
				Arguments: args,
			})
		}
	}
	return result, nil
}

// Complete faz uma chamada única de completion sem ferramentas.
func (p *AnthropicProvider) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := p.Chat(ctx, []Message{{Role: "user", Content: prompt}}, nil, Options{MaxTokens: 2048})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}
