package indicadores

import (
	"github.com/KromaEnergia/painel-comissoes/internal/utils"
	"github.com/shopspring/decimal"
)

// EstadoMeta descreve a situação do mês corrente frente ao mês anterior.
type EstadoMeta string

const (
	MetaAtingida     EstadoMeta = "atingida"
	MetaEmAndamento  EstadoMeta = "em_andamento"
	MetaInalcancavel EstadoMeta = "inalcancavel"
)

// Meta é quanto falta para igualar o mês anterior e a média diária necessária.
type Meta struct {
	Diferenca     decimal.Decimal `json:"diferenca"`
	MetaDiaria    decimal.Decimal `json:"meta_diaria"`
	DiasRestantes int             `json:"dias_restantes"`
	Estado        EstadoMeta      `json:"estado"`
}

// ProjetarMeta compara o total do mês com o do mês anterior. hoje conta como dia restante.
// Sem dias restantes (hoje ausente) a meta é inalcançável e a média diária fica zero.
func ProjetarMeta(atual, anterior decimal.Decimal, hoje utils.Data) Meta {
	m := Meta{
		Diferenca:  anterior.Sub(atual),
		MetaDiaria: decimal.Zero,
	}
	if !hoje.IsZero() {
		m.DiasRestantes = hoje.FimDoMes().Dia() - hoje.Dia() + 1
	}

	switch {
	case !m.Diferenca.IsPositive():
		m.Estado = MetaAtingida
	case m.DiasRestantes <= 0:
		m.Estado = MetaInalcancavel
	default:
		m.Estado = MetaEmAndamento
		m.MetaDiaria = m.Diferenca.Div(decimal.NewFromInt(int64(m.DiasRestantes)))
	}
	return m
}
