package indicadores

import (
	"sort"

	"github.com/KromaEnergia/painel-comissoes/internal/consultor"
	"github.com/KromaEnergia/painel-comissoes/internal/venda"
	"github.com/shopspring/decimal"
)

// LimiteIndiceEsforco é quantas operadoras o painel mostra no índice de esforço.
const LimiteIndiceEsforco = 20

// TotalDimensao acumula quantidade e valor de uma categoria.
type TotalDimensao struct {
	Categoria  string          `json:"categoria"`
	Quantidade int             `json:"quantidade"`
	Total      decimal.Decimal `json:"total"`
}

// AgregarPorDimensao agrupa os registros pela chave e soma quantidade e valor numa passada.
// As categorias saem na ordem da primeira ocorrência.
func AgregarPorDimensao[R any](registros []R, chave func(R) string, valor func(R) decimal.Decimal) []TotalDimensao {
	var totais []TotalDimensao
	posicao := make(map[string]int)
	for _, r := range registros {
		k := chave(r)
		i, ok := posicao[k]
		if !ok {
			i = len(totais)
			posicao[k] = i
			totais = append(totais, TotalDimensao{Categoria: k, Total: decimal.Zero})
		}
		totais[i].Quantidade++
		totais[i].Total = totais[i].Total.Add(valor(r))
	}
	return totais
}

// CanalDaVenda usa o canal de entrada, "Indicação" quando vazio.
func CanalDaVenda(v venda.Venda) string { return v.Canal() }

// OperadoraDaVenda usa a operadora do plano.
func OperadoraDaVenda(v venda.Venda) string { return v.Plano.Operadora }

// IndiceEsforco é a média por venda de uma operadora.
type IndiceEsforco struct {
	Operadora  string          `json:"operadora"`
	Media      decimal.Decimal `json:"media"`
	Quantidade int             `json:"quantidade"`
}

// IndiceDeEsforco calcula a média por categoria, ordena de forma decrescente (empates
// mantêm a ordem de entrada) e mantém as limite primeiras. limite <= 0 não corta.
func IndiceDeEsforco(totais []TotalDimensao, limite int) []IndiceEsforco {
	indices := make([]IndiceEsforco, len(totais))
	for i, t := range totais {
		indices[i] = IndiceEsforco{Operadora: t.Categoria, Media: media(t.Total, t.Quantidade), Quantidade: t.Quantidade}
	}
	sort.SliceStable(indices, func(i, j int) bool {
		return indices[i].Media.GreaterThan(indices[j].Media)
	})
	if limite > 0 && len(indices) > limite {
		indices = indices[:limite]
	}
	return indices
}

// FaturamentoConsultor é a comissão líquida somada das vendas de um consultor.
type FaturamentoConsultor struct {
	ConsultorID uint            `json:"consultor"`
	Nome        string          `json:"nome"`
	Total       decimal.Decimal `json:"total"`
}

// FaturamentoPorConsultor devolve uma entrada por consultor, na ordem da lista, inclusive
// os que não têm vendas.
func FaturamentoPorConsultor(consultores []consultor.Consultor, vendas []venda.Venda) []FaturamentoConsultor {
	porConsultor := make(map[uint]decimal.Decimal, len(consultores))
	for _, v := range vendas {
		id := consultorDaVenda(v)
		if id == 0 {
			continue
		}
		porConsultor[id] = porConsultor[id].Add(ComissaoLiquida(v))
	}
	lista := make([]FaturamentoConsultor, len(consultores))
	for i, c := range consultores {
		lista[i] = FaturamentoConsultor{ConsultorID: c.ID, Nome: c.Nome, Total: porConsultor[c.ID]}
	}
	return lista
}

func consultorDaVenda(v venda.Venda) uint {
	if v.Consultor.ID != 0 {
		return v.Consultor.ID
	}
	return v.ConsultorID
}
