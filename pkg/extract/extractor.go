// Package extract localiza valores financeiros em texto livre usando as
// convenções numéricas brasileiras (ponto de milhar, vírgula decimal).
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// Valor monetário com prefixo explícito de moeda: "R$ 5.000".
	currencyRe = regexp.MustCompile(`R\$\s*([\d.,]+)`)
	// Qualquer token numérico; o sufixo capturado distingue percentuais.
	numberRe = regexp.MustCompile(`([\d]+(?:[.,]\d+)*)\s*(%?)`)
	// Percentual: token numérico imediatamente seguido de %.
	percentRe = regexp.MustCompile(`([\d.,]+)\s*%`)
	// Período: inteiro seguido de unidade de tempo em português. A unidade
	// é descartada — "12 meses" e "12 anos" extraem o mesmo período
	// (perda de precisão conhecida, ver teste).
	periodRe = regexp.MustCompile(`(?i)(\d+)\s*(?:anos?|meses?|dias?)`)
)

// Values é o conjunto de campos numéricos encontrados em uma mensagem.
// Campo nil significa "não encontrado no texto", distinto de zero.
// Construído por mensagem, consumido por um único cálculo e descartado.
type Values struct {
	Principal *float64
	Rate      *float64
	Period    *float64
}

// Value é o alias de Principal usado pelo cálculo de porcentagem.
func (v Values) Value() *float64 { return v.Principal }

// Percentual é o alias de Rate usado pelo cálculo de porcentagem.
func (v Values) Percentual() *float64 { return v.Rate }

// HasPrincipal informa se algum valor monetário foi encontrado.
func (v Values) HasPrincipal() bool { return v.Principal != nil }

// HasRate informa se algum percentual foi encontrado.
func (v Values) HasRate() bool { return v.Rate != nil }

// HasPeriod informa se algum período foi encontrado.
func (v Values) HasPeriod() bool { return v.Period != nil }

// Extract localiza o primeiro valor monetário, o primeiro percentual e o
// primeiro período do texto. Entrada sem números produz Values vazio;
// a ausência é o sinal de erro, nunca há falha.
//
// Apenas o primeiro candidato de cada categoria é usado, mesmo quando o
// texto traz vários números: simplicidade deliberada, não um parse
// garantidamente correto.
func Extract(text string) Values {
	var v Values

	if raw, ok := firstMonetary(text); ok {
		if f, err := parseMonetaryBR(raw); err == nil {
			v.Principal = &f
		}
	}

	if m := percentRe.FindStringSubmatch(text); m != nil {
		// Percentuais normalizam só a vírgula decimal ("8,5%" -> 8.5).
		if f, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64); err == nil {
			v.Rate = &f
		}
	}

	if m := periodRe.FindStringSubmatch(text); m != nil {
		if f, err := strconv.ParseFloat(m[1], 64); err == nil {
			v.Period = &f
		}
	}

	return v
}

// firstMonetary devolve o primeiro candidato a valor monetário: um token
// prefixado por R$ tem prioridade; na ausência dele, o primeiro token
// numérico que não seja um percentual.
func firstMonetary(text string) (string, bool) {
	if m := currencyRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	for _, m := range numberRe.FindAllStringSubmatch(text, -1) {
		if m[2] == "%" {
			continue
		}
		return m[1], true
	}
	return "", false
}

// parseMonetaryBR converte "5.000" ou "1.234,56" para float: remove os
// pontos de milhar e troca a vírgula decimal por ponto.
func parseMonetaryBR(raw string) (float64, error) {
	normalized := strings.ReplaceAll(raw, ".", "")
	normalized = strings.Replace(normalized, ",", ".", 1)
	return strconv.ParseFloat(normalized, 64)
}
