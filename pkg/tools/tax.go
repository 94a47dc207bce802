package tools

import (
	"context"

	"github.com/lfreitas/granabot/pkg/fincalc"
)

// IncomeTaxTool calcula o imposto de renda brasileiro pela tabela
// progressiva.
type IncomeTaxTool struct{}

// NewIncomeTaxTool cria a ferramenta de IRPF.
func NewIncomeTaxTool() *IncomeTaxTool { return &IncomeTaxTool{} }

// Name devolve o nome exposto ao modelo.
func (t *IncomeTaxTool) Name() string { return "calcular_imposto_renda" }

// Description descreve a ferramenta para o modelo.
func (t *IncomeTaxTool) Description() string {
	return "🧮 Calcula imposto de renda brasileiro com tabela oficial 2024. " +
		"Parâmetros: rendimento (número), ano (inteiro, opcional). " +
		"Retorna cálculo detalhado com faixa, dedução e alíquota efetiva."
}

// Parameters descreve o esquema JSON dos argumentos.
func (t *IncomeTaxTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"rendimento": map[string]any{
				"type":        "number",
				"description": "Rendimento bruto anual em reais",
			},
			"ano": map[string]any{
				"type":        "integer",
				"description": "Ano-base da tabela (padrão 2024)",
			},
		},
		"required": []string{"rendimento"},
	}
}

// Execute roda o cálculo e devolve o relatório ou a mensagem de rejeição.
func (t *IncomeTaxTool) Execute(_ context.Context, args map[string]any) (string, error) {
	income, ok := floatArg(args, "rendimento", "renda", "valor")
	if !ok {
		return "❌ Por favor, informe o valor da renda para calcular o IR", nil
	}

	year := 0
	if y, ok := floatArg(args, "ano"); ok {
		year = int(y)
	}

	res, err := fincalc.CalculateIncomeTax(fincalc.IncomeTaxInput{Income: income, Year: year})
	if err != nil {
		if fincalc.IsValidation(err) {
			return "❌ Rendimento não pode ser negativo.", nil
		}
		return "", err
	}
	return res.Report(), nil
}
