// Package fincalc implementa os cálculos financeiros do assistente: imposto
// de renda pessoa física, porcentagem, juros compostos e juros simples.
//
// Todos os cálculos são funções puras sobre entradas tipadas. Falhas de
// validação são devolvidas como *ValidationError; a conversão para texto de
// usuário acontece apenas na borda de apresentação (ferramenta/orquestrador).
package fincalc

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ValidationError indica entrada malformada ou fora de faixa em um cálculo.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// IsValidation informa se err é uma falha de validação de entrada.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Request é a união fechada de pedidos aceitos pela calculadora financeira
// geral. Cada variante carrega seus próprios campos obrigatórios tipados,
// eliminando a falha de "chave ausente" em tempo de execução.
type Request interface {
	calculate() (Reporter, error)
}

// Reporter é um resultado de cálculo que sabe se formatar como relatório
// textual em pt-BR.
type Reporter interface {
	Report() string
}

// Calculate executa um pedido da calculadora financeira geral.
func Calculate(req Request) (Reporter, error) {
	return req.calculate()
}

// ---------------------------------------------------------------------------
// Imposto de renda

// IncomeTaxInput é o pedido de cálculo de IRPF. Year zero assume 2024.
type IncomeTaxInput struct {
	Income float64
	Year   int
}

// IncomeTaxResult carrega o resultado do cálculo de IRPF.
type IncomeTaxResult struct {
	Input         IncomeTaxInput
	Bracket       TaxBracket
	Tax           float64
	Net           float64
	EffectiveRate float64 // percentual efetivo (imposto/renda * 100)
	Exempt        bool
}

// CalculateIncomeTax calcula o imposto devido pela tabela progressiva.
// Renda negativa é rejeitada com ValidationError, nunca produz imposto
// negativo.
func CalculateIncomeTax(in IncomeTaxInput) (IncomeTaxResult, error) {
	if in.Income < 0 {
		return IncomeTaxResult{}, &ValidationError{Field: "rendimento", Reason: "não pode ser negativo"}
	}
	if in.Year == 0 {
		in.Year = 2024
	}

	bracket := selectBracket(BracketsForYear(in.Year), in.Income)
	tax := math.Max(0, in.Income*bracket.Rate-bracket.Deduction)

	res := IncomeTaxResult{
		Input:   in,
		Bracket: bracket,
		Tax:     tax,
		Net:     in.Income - tax,
		Exempt:  tax == 0,
	}
	if tax > 0 {
		res.EffectiveRate = tax / in.Income * 100
	}
	return res, nil
}

// Report formata o relatório completo do cálculo de IRPF. A linha de
// alíquota efetiva aparece somente quando há imposto devido.
func (r IncomeTaxResult) Report() string {
	var b strings.Builder
	sep := strings.Repeat("=", 45)

	fmt.Fprintf(&b, "🧮 **CÁLCULO DO IMPOSTO DE RENDA %d**\n%s\n", r.Input.Year, sep)
	fmt.Fprintf(&b, "💰 **Rendimento Bruto**: R$ %s\n", formatBR(r.Input.Income))
	fmt.Fprintf(&b, "📊 **Faixa**: %s\n", r.Bracket.Label)
	fmt.Fprintf(&b, "📈 **Alíquota**: %s%%\n", strings.Replace(fmt.Sprintf("%.1f", r.Bracket.Rate*100), ".", ",", 1))
	fmt.Fprintf(&b, "➖ **Dedução**: R$ %s\n", formatBR(r.Bracket.Deduction))
	fmt.Fprintf(&b, "💸 **Imposto Devido**: R$ %s\n", formatBR(r.Tax))
	fmt.Fprintf(&b, "💵 **Renda Líquida**: R$ %s\n%s", formatBR(r.Net), sep)

	if r.Exempt {
		b.WriteString("\n✅ **ISENTO DE IMPOSTO DE RENDA!**")
	} else {
		fmt.Fprintf(&b, "\n📊 **Alíquota Efetiva**: %s%%", formatBR(r.EffectiveRate))
	}
	return b.String()
}

// ---------------------------------------------------------------------------
// Porcentagem

// PercentageInput calcula quanto é Percentage% de Value.
type PercentageInput struct {
	Value      float64
	Percentage float64
}

// PercentageResult é o resultado de um cálculo de porcentagem.
type PercentageResult struct {
	Input  PercentageInput
	Result float64
}

func (in PercentageInput) calculate() (Reporter, error) {
	r, err := CalculatePercentage(in)
	return r, err
}

/// CalculatePercentage exige valor e percentual estritamente positivos:
// zero não produz "0,00", produz rejeição.
func CalculatePercentage(in PercentageInput) (PercentageResult, error) {
	if in.Value <= 0 || in.Percentage <= 0 {
		return PercentageResult{}, &ValidationError{Field: "porcentagem", Reason: "valor e percentual devem ser positivos"}
	}
	return PercentageResult{Input: in, Result: in.Value * in.Percentage / 100}, nil
}

// Report formata o relatório do cálculo de porcentagem.
func (r PercentageResult) Report() string {
	var b strings.Builder
	sep := strings.Repeat("=", 30)

	fmt.Fprintf(&b, "📊 **CÁLCULO DE PORCENTAGEM**\n%s\n", sep)
	fmt.Fprintf(&b, "💰 **Valor Base**: %s\n", formatBR(r.Input.Value))
	fmt.Fprintf(&b, "📈 **Percentual**: %s%%\n", formatRateBR(r.Input.Percentage))
	fmt.Fprintf(&b, "💵 **Resultado**: %s\n", formatBR(r.Result))
	fmt.Fprintf(&b, "📋 **Fórmula**: %s × %s%% = %s",
		formatBR(r.Input.Value), formatRateBR(r.Input.Percentage), formatBR(r.Result))
	return b.String()
}

// ---------------------------------------------------------------------------
// Juros compostos

// CompoundInterestInput calcula montante por juros compostos. Rate é o
// percentual inteiro por período (10 = 10%).
type CompoundInterestInput struct {
	Principal float64
	Rate      float64
	Period    float64
}

// CompoundInterestResult é o resultado do cálculo de juros compostos.
type CompoundInterestResult struct {
	Input    CompoundInterestInput
	Amount   float64
	Interest float64
	Yield    float64 // rendimento total em percentual
}

func (in CompoundInterestInput) calculate() (Reporter, error) {
	r, err := CalculateCompoundInterest(in)
	return r, err
}

// CalculateCompoundInterest exige capital, taxa e período estritamente
// positivos.
func CalculateCompoundInterest(in CompoundInterestInput) (CompoundInterestResult, error) {
	if in.Principal <= 0 || in.Rate <= 0 || in.Period <= 0 {
		return CompoundInterestResult{}, &ValidationError{Field: "juros compostos", Reason: "capital, taxa e período devem ser positivos"}
	}

	amount := in.Principal * math.Pow(1+in.Rate/100, in.Period)
	return CompoundInterestResult{
		Input:    in,
		Amount:   amount,
		Interest: amount - in.Principal,
		Yield:    (amount/in.Principal - 1) * 100,
	}, nil
}

// Report formata o relatório do cálculo de juros compostos.
func (r CompoundInterestResult) Report() string {
	var b strings.Builder
	sep := strings.Repeat("=", 30)

	fmt.Fprintf(&b, "📈 **JUROS COMPOSTOS**\n%s\n", sep)
	fmt.Fprintf(&b, "💰 **Capital Inicial**: R$ %s\n", formatBR(r.Input.Principal))
	fmt.Fprintf(&b, "📊 **Taxa**: %s%% ao período\n", formatRateBR(r.Input.Rate))
	fmt.Fprintf(&b, "⏱️ **Período**: %s períodos\n", formatRateBR(r.Input.Period))
	fmt.Fprintf(&b, "💸 **Montante Final**: R$ %s\n", formatBR(r.Amount))
	fmt.Fprintf(&b, "💵 **Juros Ganhos**: R$ %s\n", formatBR(r.Interest))
	fmt.Fprintf(&b, "📈 **Rendimento**: %s%%", formatBR(r.Yield))
	return b.String()
}

// ---------------------------------------------------------------------------
// Juros simples

// SimpleInterestInput calcula juros simples. Diferentemente dos demais
// cálculos, não há precondição de positividade — assimetria herdada do
// comportamento original e coberta por teste.
type SimpleInterestInput struct {
	Principal float64
	Rate      float64
	Period    float64
}

// SimpleInterestResult é o resultado do cálculo de juros simples.
type SimpleInterestResult struct {
	Input    SimpleInterestInput
	Interest float64
	Amount   float64
}

func (in SimpleInterestInput) calculate() (Reporter, error) {
	r, err := CalculateSimpleInterest(in)
	return r, err
}

// CalculateSimpleInterest computa juros = capital * taxa * período.
func CalculateSimpleInterest(in SimpleInterestInput) (SimpleInterestResult, error) {
	interest := in.Principal * (in.Rate / 100) * in.Period
	return SimpleInterestResult{
		Input:    in,
		Interest: interest,
		Amount:   in.Principal + interest,
	}, nil
}

// Report formata o relatório do cálculo de juros simples.
func (r SimpleInterestResult) Report() string {
	var b strings.Builder
	sep := strings.Repeat("=", 25)

	fmt.Fprintf(&b, "📊 **JUROS SIMPLES**\n%s\n", sep)
	fmt.Fprintf(&b, "💰 **Capital**: R$ %s\n", formatBR(r.Input.Principal))
	fmt.Fprintf(&b, "📊 **Taxa**: %s%%\n", formatRateBR(r.Input.Rate))
	fmt.Fprintf(&b, "⏱️ **Período**: %s\n", formatRateBR(r.Input.Period))
	fmt.Fprintf(&b, "💸 **Juros**: R$ %s\n", formatBR(r.Interest))
	fmt.Fprintf(&b, "💵 **Montante**: R$ %s", formatBR(r.Amount))
	return b.String()
}
