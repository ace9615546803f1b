package indicadores

import "github.com/shopspring/decimal"

// Variacao é a variação percentual de anterior para atual. Com anterior zero o resultado é zero.
func Variacao(atual, anterior decimal.Decimal) decimal.Decimal {
	if anterior.IsZero() {
		return decimal.Zero
	}
	return atual.Sub(anterior).Div(anterior).Mul(cem)
}

// SerieCrescimento aplica Variacao entre elementos consecutivos. O primeiro é sempre zero.
func SerieCrescimento(valores []decimal.Decimal) []decimal.Decimal {
	serie := make([]decimal.Decimal, len(valores))
	for i := range valores {
		if i == 0 {
			serie[i] = decimal.Zero
			continue
		}
		serie[i] = Variacao(valores[i], valores[i-1])
	}
	return serie
}

func media(total decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(n)))
}
