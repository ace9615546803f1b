package indicadores

import (
	"github.com/KromaEnergia/painel-comissoes/internal/utils"
	"github.com/KromaEnergia/painel-comissoes/internal/venda"
	"github.com/shopspring/decimal"
)

var cem = decimal.NewFromInt(100)

// ComissaoLiquida é a receita comissionável da venda: valor do plano menos desconto do
// consultor e taxa do plano, multiplicado pelo comissionamento total. Não é arredondada
// nem limitada a zero.
func ComissaoLiquida(v venda.Venda) decimal.Decimal {
	return v.ValorLiquido().Mul(v.Plano.ComissionamentoTotal.Div(cem))
}

// ValorBruto é o valor do plano sem deduções.
func ValorBruto(v venda.Venda) decimal.Decimal {
	return v.ValorPlano
}

// ValorComDesconto é o valor do plano menos o desconto do consultor.
func ValorComDesconto(v venda.Venda) decimal.Decimal {
	return v.ValorPlano.Sub(v.DescontoConsultor)
}

// DataDaVenda seleciona data_venda para filtros e agregações.
func DataDaVenda(v venda.Venda) utils.Data { return v.DataVenda }
