package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseDecimal converte um valor monetário em texto para decimal.
// Aceita vírgula como separador decimal ("1.234,56" ou "1234,56").
// Valores vazios ou não numéricos são tratados como zero; ok indica se a conversão foi limpa.
func ParseDecimal(s string) (v decimal.Decimal, ok bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
