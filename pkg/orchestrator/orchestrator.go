// Package orchestrator é o controle de topo do assistente: tenta o
// agente autônomo primeiro, valida a qualidade da resposta e, quando
// necessário, percorre a cadeia de fallback por intenção até degradar
// para uma completion direta de conhecimento geral.
package orchestrator

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/lfreitas/granabot/pkg/extract"
	"github.com/lfreitas/granabot/pkg/fincalc"
	"github.com/lfreitas/granabot/pkg/intent"
	"github.com/lfreitas/granabot/pkg/logger"
	"github.com/lfreitas/granabot/pkg/search"
)

// Responder é o agente de raciocínio autônomo (colaborador opaco).
type Responder interface {
	Respond(ctx context.Context, message, sessionKey string) (string, error)
}

// Completer emite uma completion direta, sem ferramentas.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ArticleSearcher busca artigos acadêmicos.
type ArticleSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]search.Article, error)
}

// Orchestrator processa uma mensagem por vez, sempre devolvendo texto
// ao usuário. Nenhuma falha interna atravessa Handle como erro.
type Orchestrator struct {
	agent     Responder
	completer Completer
	arxiv     ArticleSearcher
	gate      Gate
}

func New(agent Responder, completer Completer, arxiv ArticleSearcher, gate Gate) *Orchestrator {
	return &Orchestrator{
		agent:     agent,
		completer: completer,
		arxiv:     arxiv,
		gate:      gate,
	}
}

const generalPromptTemplate = `Você é um assistente IA especializado. Responda à pergunta de forma clara e didática:

PERGUNTA: %s

Forneça uma resposta detalhada e bem formatada com emojis quando apropriado.`

const capabilitiesMessage = `❌ **Não consegui processar sua pergunta adequadamente.**

🤖 **O que posso fazer por você:**
• 💰 Cálculos de Imposto de Renda
• 📈 Cálculos financeiros (juros, investimentos)
• 📚 Busca de artigos científicos
• 🧠 Responder perguntas gerais
• 🌐 Buscar informações atuais (se configurado)`

// Handle processa uma mensagem de ponta a ponta. Qualquer pânico
// interno vira texto de erro genérico: o chamador só vê strings.
func (o *Orchestrator) Handle(ctx context.Context, message, sessionKey string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorCF("orchestrator", "Pânico recuperado", map[string]interface{}{
				"panic": fmt.Sprintf("%v", r),
			})
			reply = fmt.Sprintf("❌ Erro crítico: %v", r)
		}
	}()

	// Primeira tentativa: agente autônomo com ferramentas
	if o.agent != nil {
		result, err := o.agent.Respond(ctx, message, sessionKey)
		if err != nil {
			logger.WarnC("orchestrator", "Agente falhou: "+err.Error())
		} else if o.gate.Accept(result) {
			logger.InfoC("orchestrator", "✅ Agente respondeu com sucesso")
			return result
		} else {
			logger.WarnC("orchestrator", "⚠️ Resposta do agente inadequada, usando fallback")
		}
	}

	// Fallback: análise manual por intenção
	return o.dispatch(ctx, message)
}

func (o *Orchestrator) dispatch(ctx context.Context, message string) string {
	detected := intent.Classify(message)
	logger.InfoCF("orchestrator", "Intenção detectada", map[string]interface{}{
		"intent": string(detected),
	})

	switch detected {
	case intent.IntentTax:
		return o.handleTax(message)
	case intent.IntentPercentage:
		return o.handlePercentage(message)
	case intent.IntentCompoundInterest:
		return o.handleCompoundInterest(message)
	case intent.IntentScientificSearch:
		return o.handleScientificSearch(ctx, message)
	case intent.IntentIncompletePercentage:
		return o.handleIncompletePercentage(message)
	default:
		return o.handleGeneral(ctx, message)
	}
}

func (o *Orchestrator) handleTax(message string) string {
	values := extract.Extract(message)
	if !values.HasPrincipal() {
		return "❌ Por favor, informe o valor da renda para calcular o IR"
	}

	result, err := fincalc.CalculateIncomeTax(fincalc.IncomeTaxInput{Income: *values.Principal})
	if err != nil {
		return presentCalcError(err, "❌ Rendimento não pode ser negativo.")
	}
	return result.Report()
}

const percentagePrompt = `📊 **Para calcular porcentagem, preciso de:**
💰 Valor base (ex: 10.000)
📈 Percentual (ex: 15%)

**Exemplos:**
• "Quanto é 15% de 10.000?"
• "Calcule 20% de R$ 5.000"
• "Qual é 8,5% de 12.500?"`

func (o *Orchestrator) handlePercentage(message string) string {
	values := extract.Extract(message)

	if values.HasPrincipal() && values.HasRate() {
		result, err := fincalc.CalculatePercentage(fincalc.PercentageInput{
			Value:      *values.Value(),
			Percentage: *values.Percentual(),
		})
		if err != nil {
			return presentCalcError(err, "❌ Valores devem ser positivos para cálculo de porcentagem")
		}
		return result.Report()
	}

	// "porcentagem" com um número mas sem o percentual: ecoa o valor
	// encontrado e pede o campo que falta
	if values.HasPrincipal() && strings.Contains(strings.ToLower(message), "porcentagem") {
		return incompletePercentageMessage(*values.Principal)
	}

	return percentagePrompt
}

const compoundInterestPrompt = `📈 **Para calcular juros compostos, preciso de:**
💰 Capital inicial (ex: R$ 10.000)
📊 Taxa de juros (ex: 10% ao ano)
⏱️ Período (ex: 5 anos)

**Exemplo:** "Calcule juros compostos de R$ 10.000 a 10% por 5 anos"`

func (o *Orchestrator) handleCompoundInterest(message string) string {
	values := extract.Extract(message)

	if values.HasPrincipal() && values.HasRate() && values.HasPeriod() {
		result, err := fincalc.CalculateCompoundInterest(fincalc.CompoundInterestInput{
			Principal: *values.Principal,
			Rate:      *values.Rate,
			Period:    *values.Period,
		})
		if err != nil {
			return presentCalcError(err, "❌ Capital, taxa e período devem ser positivos")
		}
		return result.Report()
	}

	return compoundInterestPrompt
}

func (o *Orchestrator) handleScientificSearch(ctx context.Context, message string) string {
	query := intent.SearchQuery(message)

	articles, err := o.arxiv.Search(ctx, query, 3)
	if err != nil {
		return fmt.Sprintf("❌ Erro na consulta ao arXiv: %v", err)
	}
	return search.FormatArticles(query, articles)
}

func (o *Orchestrator) handleIncompletePercentage(message string) string {
	values := extract.Extract(message)
	if values.HasPrincipal() {
		return incompletePercentageMessage(*values.Principal)
	}
	return percentagePrompt
}

func incompletePercentageMessage(value float64) string {
	rendered := strings.Replace(strconv.FormatFloat(value, 'f', -1, 64), ".", ",", 1)
	return fmt.Sprintf(`❓ **Pergunta incompleta detectada!**

Você mencionou o valor **%[1]s**, mas não especificou:
📊 **Qual percentual?**

**Exemplos corretos:**
• "Quanto é 10%% de %[1]s?"
• "Calcule 15%% de %[1]s"
• "Qual é 25%% de %[1]s?"

💡 **Ou talvez queira saber:**
• "%[1]s é quantos %% de [outro valor]?"`, rendered)
}

func (o *Orchestrator) handleGeneral(ctx context.Context, message string) string {
	logger.InfoC("orchestrator", "🧠 Respondendo com conhecimento geral")

	response, err := o.completer.Complete(ctx, fmt.Sprintf(generalPromptTemplate, message))
	if err != nil {
		logger.WarnC("orchestrator", "Completion falhou: "+err.Error())
		return capabilitiesMessage
	}
	return strings.TrimSpace(response)
}

// presentCalcError converte erros das calculadoras em texto na borda
// de apresentação. Erros de validação têm mensagem própria por tipo.
func presentCalcError(err error, validationText string) string {
	if fincalc.IsValidation(err) {
		return validationText
	}
	return fmt.Sprintf("❌ Erro no cálculo: %v", err)
}
