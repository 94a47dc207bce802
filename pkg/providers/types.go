// Package providers abstrai os modelos de linguagem por trás de uma
// interface única de chat com ferramentas e completion direto.
package providers

import "context"

// Message é uma mensagem de conversa no formato neutro do assistente.
type Message struct {
	Role       string // "system", "user", "assistant" ou "tool"
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string // preenchido em mensagens de resultado de ferramenta
}

// ToolCall é uma chamada de ferramenta registrada em uma mensagem de
// assistente.
type ToolCall struct {
	ID       string
	Type     string
	Function *FunctionCall
}

// FunctionCall carrega nome e argumentos (JSON) de uma chamada.
type FunctionCall struct {
	Name      string
	Arguments string
}

// ToolDefinition descreve uma ferramenta para o modelo.
type ToolDefinition struct {
	Type     string
	Function FunctionSpec
}

// FunctionSpec é a assinatura da função exposta ao modelo.
type FunctionSpec struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// ResponseToolCall é uma chamada de ferramenta pedida pelo modelo.
type ResponseToolCall struct {
	ID        string
	Name      string
	Arguments map[string]any
}

// LLMResponse é a resposta de uma rodada de chat.
type LLMResponse struct {
	Content   string
	ToolCalls []ResponseToolCall
}

// Options são os parâmetros de geração de uma chamada.
type Options struct {
	MaxTokens   int
	Temperature float64
}

// LLMProvider é o contrato comum dos provedores. O loop do agente mantém
// uma lista ordenada de provedores e usa o próximo quando um falha.
type LLMProvider interface {
	Name() string
	Chat(ctx context.Context, messages []Message, tools []ToolDefinition, opts Options) (*LLMResponse, error)
	Complete(ctx context.Context, prompt string) (string, error)
}
