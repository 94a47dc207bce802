// Package intent decide, por famílias de palavras-chave, qual calculadora
// ou busca atende uma mensagem quando o loop de raciocínio não resolve.
package intent

import (
	"regexp"
	"strings"
)

// Intent é o destino escolhido para uma mensagem.
type Intent string

const (
	// IntentTax roteia para o cálculo de imposto de renda.
	IntentTax Intent = "tax"
	// IntentPercentage roteia para o cálculo de porcentagem.
	IntentPercentage Intent = "percentage"
	// IntentCompoundInterest roteia para o cálculo de juros compostos.
	IntentCompoundInterest Intent = "compound_interest"
	// IntentScientificSearch roteia para a busca de artigos no arXiv.
	IntentScientificSearch Intent = "scientific_search"
	// IntentIncompletePercentage indica pergunta de porcentagem sem o
	// percentual; o usuário recebe orientação ecoando o número achado.
	IntentIncompletePercentage Intent = "incomplete_percentage"
	// IntentGeneral cai para a consulta direta de conhecimento do modelo.
	IntentGeneral Intent = "general"
)

// Rule é um par (predicado, intenção) avaliado em sequência fixa.
type Rule struct {
	Name   string
	Match  func(lower, original string) bool
	Intent Intent
}

var digitRe = regexp.MustCompile(`\d`)

// rules é a cadeia ordenada de decisão. A ordem importa porque os
// predicados se sobrepõem ("percentual de" também contém "porcent");
// a primeira regra que casa vence — contrato explícito, coberto por teste.
var rules = []Rule{
	{
		Name:   "imposto de renda",
		Match:  containsAny("imposto de renda", "calcular ir", "ir de"),
		Intent: IntentTax,
	},
	{
		Name:   "porcentagem",
		Match:  containsAny("% de", "porcent", "percentual de"),
		Intent: IntentPercentage,
	},
	{
		Name:   "juros compostos",
		Match:  containsAny("juros compostos", "montante"),
		Intent: IntentCompoundInterest,
	},
	{
		Name:   "busca acadêmica",
		Match:  containsAny("artigos científicos", "papers", "arxiv", "pesquisa acadêmica"),
		Intent: IntentScientificSearch,
	},
	{
		Name: "porcentagem incompleta",
		Match: func(lower, original string) bool {
			return strings.Contains(lower, "porcentagem") && digitRe.MatchString(original)
		},
		Intent: IntentIncompletePercentage,
	},
}

func containsAny(terms ...string) func(lower, original string) bool {
	return func(lower, _ string) bool {
		for _, term := range terms {
			if strings.Contains(lower, term) {
				return true
			}
		}
		return false
	}
}

// Classify percorre a cadeia de regras e devolve a primeira intenção que
// casa, ou IntentGeneral. Função pura do texto: determinística, sem estado.
func Classify(text string) Intent {
	lower := strings.ToLower(text)
	for _, rule := range rules {
		if rule.Match(lower, text) {
			return rule.Intent
		}
	}
	return IntentGeneral
}

var searchNoiseRe = regexp.MustCompile(`(?i)\b(busque|procure|artigos|científicos|cientificos|papers|sobre)\b`)

// SearchQuery remove a família de palavras-chave de busca acadêmica da
// mensagem antes de repassá-la como consulta.
func SearchQuery(text string) string {
	cleaned := searchNoiseRe.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(cleaned), " ")
}
