package fincalc

import (
	"strconv"
	"strings"
)

// formatBR formata um valor com convenção brasileira: ponto como separador
// de milhar e vírgula como separador decimal, sempre com duas casas.
// Ex.: 16105.1 -> "16.105,10".
func formatBR(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot+1:]

	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteByte(intPart[i])
	}
	out := b.String() + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}

// formatRateBR formata uma taxa percentual descartando casas decimais
// desnecessárias: 15 -> "15", 8.5 -> "8,5".
func formatRateBR(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return strings.Replace(s, ".", ",", 1)
}
