package plano

import "github.com/shopspring/decimal"

// PlanoDTO é o payload de criação/atualização de um plano.
type PlanoDTO struct {
	Operadora            string          `json:"operadora" validate:"required,max=255"`
	Tipo                 string          `json:"tipo" validate:"required,max=50"`
	NumeroParcelas       int             `json:"numero_parcelas" validate:"gte=0"`
	TaxaPlanoTipo        string          `json:"taxa_plano_tipo" validate:"omitempty,oneof='Valor Fixo' Porcentagem"`
	TaxaPlanoValor       decimal.Decimal `json:"taxa_plano_valor"`
	ComissionamentoTotal decimal.Decimal `json:"comissionamento_total"`
	Parcelas             []ParcelaDTO    `json:"parcelas" validate:"dive"`
}

// ParcelaDTO descreve uma parcela do cronograma de comissão.
type ParcelaDTO struct {
	NumeroParcela      int             `json:"numero_parcela" validate:"gte=1"`
	PorcentagemParcela decimal.Decimal `json:"porcentagem_parcela"`
}

// ParaModelo converte o DTO no modelo persistido.
func (d PlanoDTO) ParaModelo() Plano {
	tipoTaxa := d.TaxaPlanoTipo
	if tipoTaxa == "" {
		tipoTaxa = TaxaValorFixo
	}
	p := Plano{
		Operadora:            d.Operadora,
		Tipo:                 d.Tipo,
		NumeroParcelas:       d.NumeroParcelas,
		TaxaPlanoTipo:        tipoTaxa,
		TaxaPlanoValor:       d.TaxaPlanoValor,
		ComissionamentoTotal: d.ComissionamentoTotal,
	}
	for _, pd := range d.Parcelas {
		p.Parcelas = append(p.Parcelas, Parcela{
			NumeroParcela:      pd.NumeroParcela,
			PorcentagemParcela: pd.PorcentagemParcela,
		})
	}
	return p
}
