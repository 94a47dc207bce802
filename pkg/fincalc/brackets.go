package fincalc

import "math"

// TaxBracket é uma faixa da tabela progressiva do IRPF: limite superior,
// alíquota, parcela a deduzir e rótulo. As tabelas são ordenadas por limite
// crescente e a última faixa é ilimitada.
type TaxBracket struct {
	UpperBound float64
	Rate       float64
	Deduction  float64
	Label      string
}

// Tabela anual oficial de 2024.
var brackets2024 = []TaxBracket{
	{28559.70, 0.0, 0, "Isento"},
	{42253.25, 0.075, 2141.98, "7,5%"},
	{56717.56, 0.15, 5304.90, "15%"},
	{74414.84, 0.225, 9756.12, "22,5%"},
	{math.Inf(1), 0.275, 14067.51, "27,5%"},
}

// Tabela simplificada usada para qualquer outro ano (escolha de política:
// valores aproximados, não um bug).
var bracketsApprox = []TaxBracket{
	{28000, 0.0, 0, "Isento"},
	{42000, 0.075, 2100, "7,5%"},
	{56000, 0.15, 5300, "15%"},
	{74000, 0.225, 9700, "22,5%"},
	{math.Inf(1), 0.275, 14000, "27,5%"},
}

// BracketsForYear devolve a tabela do ano: exata para 2024, aproximada
// para os demais.
func BracketsForYear(year int) []TaxBracket {
	if year == 2024 {
		return brackets2024
	}
	return bracketsApprox
}

// selectBracket devolve a primeira faixa cujo limite superior é >= income.
// Como a última faixa é ilimitada, sempre há exatamente uma faixa aplicável.
func selectBracket(brackets []TaxBracket, income float64) TaxBracket {
	for _, b := range brackets {
		if income <= b.UpperBound {
			return b
		}
	}
	return brackets[len(brackets)-1]
}
