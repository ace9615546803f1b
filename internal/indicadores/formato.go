package indicadores

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var impressora = message.NewPrinter(language.BrazilianPortuguese)

// FormatarReal formata o valor em reais com separadores pt-BR, ex.: "R$ 1.234,50".
func FormatarReal(v decimal.Decimal) string {
	return impressora.Sprintf("R$ %.2f", v.Round(2).InexactFloat64())
}

// FormatarPercentual formata com uma casa decimal, ex.: "12,5%".
func FormatarPercentual(v decimal.Decimal) string {
	return impressora.Sprintf("%.1f%%", v.Round(1).InexactFloat64())
}

// Cartao é um indicador pronto para exibição.
type Cartao struct {
	Titulo string `json:"titulo"`
	Valor  string `json:"valor"`
}

func cartoesIndicadores(ind Indicadores) []Cartao {
	return []Cartao{
		{Titulo: "Faturamento Total", Valor: FormatarReal(ind.FaturamentoTotal)},
		{Titulo: "Total de Vendas", Valor: impressora.Sprintf("%d", ind.TotalVendas)},
		{Titulo: "Ticket Médio", Valor: FormatarReal(ind.TicketMedio)},
		{Titulo: "Taxa de Recebimento", Valor: FormatarPercentual(ind.TaxaRecebimento)},
		{Titulo: "Dias Médios de Atraso", Valor: impressora.Sprintf("%.1f", ind.DiasMediosAtraso.InexactFloat64())},
	}
}

func cartoesResumo(r ResumoMensal) []Cartao {
	meta := "Meta atingida"
	switch r.Meta.Estado {
	case MetaEmAndamento:
		meta = FormatarReal(r.Meta.MetaDiaria) + " por dia"
	case MetaInalcancavel:
		meta = "Sem dias restantes"
	}
	return []Cartao{
		{Titulo: "Vendas Realizadas", Valor: FormatarReal(r.MesAtual.Total)},
		{Titulo: "Quantidade de Vendas", Valor: impressora.Sprintf("%d", r.MesAtual.Quantidade)},
		{Titulo: "Ticket Médio", Valor: FormatarReal(r.MesAtual.Ticket)},
		{Titulo: "Meta Diária", Valor: meta},
	}
}
