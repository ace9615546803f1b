package venda

import (
	"github.com/KromaEnergia/painel-comissoes/internal/plano"
	"github.com/KromaEnergia/painel-comissoes/internal/recebimento"
	"github.com/KromaEnergia/painel-comissoes/internal/utils"
)

// GerarCronograma monta as parcelas de recebimento da venda a partir do cronograma do plano.
//
// A primeira parcela incide sobre o valor líquido e vence IntervaloEntreParcelas dias após
// o início da vigência; as demais incidem sobre o valor do plano sem descontos e vencem
// IntervaloEntreParcelas dias após a parcela anterior. parcelas deve estar ordenado por número.
func GerarCronograma(v Venda, parcelas []plano.Parcela) []recebimento.Recebimento {
	const intervalo = recebimento.IntervaloEntreParcelas

	liquido := v.ValorLiquido()
	itens := make([]recebimento.Recebimento, 0, len(parcelas))
	var anterior utils.Data

	for _, p := range parcelas {
		pct := p.PorcentagemParcela.Div(cem)
		var item recebimento.Recebimento
		if p.NumeroParcela == 1 {
			item.ValorParcela = liquido.Mul(pct)
			item.DataPrevistaRecebimento = v.DataVigencia.AddDias(intervalo)
		} else {
			item.ValorParcela = v.ValorPlano.Mul(pct)
			base := anterior
			if base.IsZero() {
				base = v.DataVigencia.AddDias(intervalo * (p.NumeroParcela - 1))
			}
			item.DataPrevistaRecebimento = base.AddDias(intervalo)
		}
		item.VendaID = v.ID
		item.ParcelaID = p.ID
		item.NumeroParcela = p.NumeroParcela
		item.Status = recebimento.StatusPendente

		itens = append(itens, item)
		anterior = item.DataPrevistaRecebimento
	}
	return itens
}
