package orchestrator

import "strings"

// Gate é o filtro de qualidade aplicado às respostas do agente.
// O agente pode devolver uma string degradada como se fosse resposta
// válida: não basta confiar em "não deu erro".
type Gate struct {
	MinLength int
	Denylist  []string
}

// DefaultGate aceita respostas com mais de 20 caracteres que não
// contenham indicadores de falha.
func DefaultGate() Gate {
	return Gate{
		MinLength: 20,
		Denylist:  []string{"error", "erro", "failed", "none"},
	}
}

// Accept decide se a resposta do agente pode ser entregue ao usuário.
func (g Gate) Accept(result string) bool {
	trimmed := strings.TrimSpace(result)
	if trimmed == "" || len(trimmed) <= g.MinLength {
		return false
	}

	lower := strings.ToLower(trimmed)
	for _, marker := range g.Denylist {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	return true
}
