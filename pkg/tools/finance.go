package tools

import (
	"context"
	"fmt"

	"github.com/lfreitas/granabot/pkg/fincalc"
)

// FinanceTool é a calculadora financeira geral: porcentagem, juros
// compostos e juros simples. O campo "tipo" é mapeado para a variante
// tipada correspondente de fincalc.Request.
type FinanceTool struct{}

// NewFinanceTool cria a calculadora financeira geral.
func NewFinanceTool() *FinanceTool { return &FinanceTool{} }

// Name devolve o nome exposto ao modelo.
func (t *FinanceTool) Name() string { return "calculadora_financeira" }

// Description descreve a ferramenta para o modelo.
func (t *FinanceTool) Description() string {
	return "📊 Calculadora financeira geral para diversos cálculos. " +
		"Parâmetros: tipo (string), valor/principal (número), percentual/taxa (número), periodo (número). " +
		"Tipos: 'porcentagem', 'juros_compostos', 'juros_simples'."
}

// Parameters descreve o esquema JSON dos argumentos.
func (t *FinanceTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tipo": map[string]any{
				"type":        "string",
				"enum":        []string{"porcentagem", "juros_compostos", "juros_simples"},
				"description": "Tipo de cálculo a executar",
			},
			"valor": map[string]any{
				"type":        "number",
				"description": "Valor base (porcentagem)",
			},
			"percentual": map[string]any{
				"type":        "number",
				"description": "Percentual a aplicar (porcentagem)",
			},
			"principal": map[string]any{
				"type":        "number",
				"description": "Capital inicial (juros)",
			},
			"taxa": map[string]any{
				"type":        "number",
				"description": "Taxa de juros em percentual inteiro, ex.: 10 para 10%",
			},
			"periodo": map[string]any{
				"type":        "number",
				"description": "Quantidade de períodos",
			},
		},
		"required": []string{"tipo"},
	}
}

// Execute monta a variante tipada do pedido e roda o cálculo.
func (t *FinanceTool) Execute(_ context.Context, args map[string]any) (string, error) {
	tipo, _ := stringArg(args, "tipo")

	req, errMsg := buildRequest(tipo, args)
	if errMsg != "" {
		return errMsg, nil
	}

	result, err := fincalc.Calculate(req)
	if err != nil {
		if fincalc.IsValidation(err) {
			return rejectionFor(tipo), nil
		}
		return "", err
	}
	return result.Report(), nil
}

func buildRequest(tipo string, args map[string]any) (fincalc.Request, string) {
	switch tipo {
	case "porcentagem":
		value, _ := floatArg(args, "valor", "principal")
		pct, _ := floatArg(args, "percentual", "taxa")
		return fincalc.PercentageInput{Value: value, Percentage: pct}, ""

	case "juros_compostos":
		principal, _ := floatArg(args, "principal", "valor")
		rate, _ := floatArg(args, "taxa", "percentual")
		period, _ := floatArg(args, "periodo")
		return fincalc.CompoundInterestInput{Principal: principal, Rate: rate, Period: period}, ""

	case "juros_simples":
		principal, _ := floatArg(args, "principal", "valor")
		rate, _ := floatArg(args, "taxa", "percentual")
		period, _ := floatArg(args, "periodo")
		return fincalc.SimpleInterestInput{Principal: principal, Rate: rate, Period: period}, ""

	default:
		return nil, fmt.Sprintf("❌ Tipo '%s' não suportado. Use: porcentagem, juros_compostos, juros_simples", tipo)
	}
}

func rejectionFor(tipo string) string {
	if tipo == "porcentagem" {
		return "❌ Valores devem ser positivos para cálculo de porcentagem"
	}
	return "❌ Valores devem ser positivos para juros compostos"
}
