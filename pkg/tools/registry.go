// Package tools define as ferramentas expostas ao loop de raciocínio e o
// registro que as apresenta ao modelo.
package tools

import (
	"context"

	"github.com/lfreitas/granabot/pkg/providers"
)

// Tool é uma ferramenta invocável pelo modelo. Execute devolve o texto a
// ser repassado ao modelo; falhas de validação são convertidas em texto de
// orientação aqui mesmo, na borda — o erro de retorno fica reservado a
// falhas inesperadas.
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]any
	Execute(ctx context.Context, args map[string]any) (string, error)
}

// Registry mantém as ferramentas em ordem de registro.
type Registry struct {
	order []string
	tools map[string]Tool
}

// NewRegistry cria um registro vazio.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adiciona uma ferramenta; nomes repetidos substituem a anterior.
func (r *Registry) Register(t Tool) {
	if _, exists := r.tools[t.Name()]; !exists {
		r.order = append(r.order, t.Name())
	}
	r.tools[t.Name()] = t
}

// Get devolve a ferramenta pelo nome.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// List devolve os nomes em ordem de registro.
func (r *Registry) List() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// ToProviderDefs converte o registro para o formato aceito pelos provedores.
func (r *Registry) ToProviderDefs() []providers.ToolDefinition {
	defs := make([]providers.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		defs = append(defs, providers.ToolDefinition{
			Type: "function",
			Function: providers.FunctionSpec{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			},
		})
	}
	return defs
}

// floatArg lê o primeiro argumento numérico presente entre as chaves
// informadas. Números chegam do JSON como float64; strings numéricas não
// são aceitas.
func floatArg(args map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		if v, ok := args[key]; ok {
			switch n := v.(type) {
			case float64:
				return n, true
			case int:
				return float64(n), true
			}
		}
	}
	return 0, false
}

// stringArg lê um argumento textual.
func stringArg(args map[string]any, key string) (string, bool) {
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok {
			return s, true
		}
	}
	return "", false
}
