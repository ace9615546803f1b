package indicadores

import (
	"github.com/KromaEnergia/painel-comissoes/internal/consultor"
	"github.com/KromaEnergia/painel-comissoes/internal/recebimento"
	"github.com/KromaEnergia/painel-comissoes/internal/utils"
	"github.com/KromaEnergia/painel-comissoes/internal/venda"
	"github.com/shopspring/decimal"
)

const (
	MesesAnual     = 12
	MesesSemestral = 6
)

// Snapshot reúne as três coleções lidas juntas. Nenhuma função do pacote a altera.
type Snapshot struct {
	Vendas       []venda.Venda
	Consultores  []consultor.Consultor
	Recebimentos []recebimento.Recebimento
}

// Filtro é o estado escolhido na tela: um período geral e outro só para o
// desempenho por canal.
type Filtro struct {
	Periodo      Periodo `json:"periodo"`
	PeriodoCanal Periodo `json:"periodo_canal"`
	// Janela do faturamento mensal; zero vale MesesAnual.
	Meses int `json:"meses"`
}

// FiltroPadrao cobre do primeiro dia de meses-1 meses atrás até o último dia do mês de hoje.
func FiltroPadrao(hoje utils.Data, meses int) Filtro {
	if meses < 1 {
		meses = 1
	}
	p := Periodo{
		Inicio: hoje.InicioDoMes().AddMeses(-(meses - 1)),
		Fim:    hoje.FimDoMes(),
	}
	return Filtro{Periodo: p, PeriodoCanal: p, Meses: meses}
}

// Indicadores é o painel completo de uma consulta.
type Indicadores struct {
	Filtro Filtro `json:"filtro"`

	FaturamentoTotal decimal.Decimal `json:"faturamento_total"`
	TotalVendas      int             `json:"total_vendas"`
	TicketMedio      decimal.Decimal `json:"ticket_medio"`
	TaxaRecebimento  decimal.Decimal `json:"taxa_recebimento"`
	DiasMediosAtraso decimal.Decimal `json:"dias_medios_atraso"`

	DesempenhoCanal      []TotalDimensao        `json:"desempenho_canal"`
	FaturamentoConsultor []FaturamentoConsultor `json:"faturamento_consultor"`
	PrevisaoRecebimentos []TotalMensal          `json:"previsao_recebimentos"`
	IndiceEsforco        []IndiceEsforco        `json:"indice_esforco"`

	// Janela de FiltroPadrao(hoje, Filtro.Meses), independente do período escolhido.
	FaturamentoMensal []TotalMensal     `json:"faturamento_mensal"`
	CrescimentoMensal []decimal.Decimal `json:"crescimento_mensal"`

	// Últimos 12 meses com todos os meses presentes: Valores[0] quantidade, Valores[1] valor bruto.
	Tendencia []TotalMensal `json:"tendencia"`

	Cartoes []Cartao `json:"cartoes"`
}

// MontarIndicadores compõe todos os widgets do painel sobre o snapshot.
func MontarIndicadores(s Snapshot, f Filtro, hoje utils.Data) Indicadores {
	ind := Indicadores{Filtro: f}

	vendas := FiltrarPorPeriodo(s.Vendas, f.Periodo, DataDaVenda)
	ind.TotalVendas = len(vendas)
	ind.FaturamentoTotal = decimal.Zero
	for _, v := range vendas {
		ind.FaturamentoTotal = ind.FaturamentoTotal.Add(ComissaoLiquida(v))
	}
	ind.TicketMedio = media(ind.FaturamentoTotal, ind.TotalVendas)

	recebimentos := FiltrarPorPeriodo(s.Recebimentos, f.Periodo, DataPrevista)
	ind.TaxaRecebimento = TaxaRecebimento(recebimentos)
	ind.DiasMediosAtraso = DiasMediosAtraso(recebimentos)
	ind.PrevisaoRecebimentos = PrevisaoRecebimentos(recebimentos)

	ind.FaturamentoConsultor = FaturamentoPorConsultor(s.Consultores, vendas)
	ind.IndiceEsforco = IndiceDeEsforco(
		AgregarPorDimensao(vendas, OperadoraDaVenda, ComissaoLiquida), LimiteIndiceEsforco)

	vendasCanal := FiltrarPorPeriodo(s.Vendas, f.PeriodoCanal, DataDaVenda)
	ind.DesempenhoCanal = AgregarPorDimensao(vendasCanal, CanalDaVenda, ComissaoLiquida)

	meses := f.Meses
	if meses < 1 {
		meses = MesesAnual
	}
	janela := FiltrarPorPeriodo(s.Vendas, FiltroPadrao(hoje, meses).Periodo, DataDaVenda)
	ind.FaturamentoMensal = AgregarPorMes(janela, DataDaVenda, nil, ComissaoLiquida)
	ind.CrescimentoMensal = SerieCrescimento(Serie(ind.FaturamentoMensal, 0))

	ind.Tendencia = AgregarPorMes(s.Vendas, DataDaVenda, JanelaMeses(hoje, MesesAnual),
		Contar[venda.Venda], ValorBruto)

	ind.Cartoes = cartoesIndicadores(ind)
	return ind
}

// ResumoDoMes são os totais de um mês usados nos cartões do cabeçalho.
type ResumoDoMes struct {
	Mes        MesChave        `json:"mes"`
	Total      decimal.Decimal `json:"total"`
	Quantidade int             `json:"quantidade"`
	Ticket     decimal.Decimal `json:"ticket"`
}

// ResumoMensal compara o mês de hoje com o anterior.
type ResumoMensal struct {
	MesAtual            ResumoDoMes     `json:"mes_atual"`
	MesAnterior         ResumoDoMes     `json:"mes_anterior"`
	VariacaoFaturamento decimal.Decimal `json:"variacao_faturamento"`
	VariacaoQuantidade  decimal.Decimal `json:"variacao_quantidade"`
	VariacaoTicket      decimal.Decimal `json:"variacao_ticket"`
	Meta                Meta            `json:"meta"`
	Cartoes             []Cartao        `json:"cartoes"`
}

// MontarResumoMensal soma valor do plano menos desconto das vendas do mês de hoje e do
// mês anterior, com variações e a meta diária para igualar o anterior.
func MontarResumoMensal(vendas []venda.Venda, hoje utils.Data) ResumoMensal {
	atual := resumirMes(vendas, hoje.InicioDoMes())
	anterior := resumirMes(vendas, hoje.InicioDoMes().AddMeses(-1))
	r := ResumoMensal{
		MesAtual:            atual,
		MesAnterior:         anterior,
		VariacaoFaturamento: Variacao(atual.Total, anterior.Total),
		VariacaoQuantidade:  Variacao(decimal.NewFromInt(int64(atual.Quantidade)), decimal.NewFromInt(int64(anterior.Quantidade))),
		VariacaoTicket:      Variacao(atual.Ticket, anterior.Ticket),
		Meta:                ProjetarMeta(atual.Total, anterior.Total, hoje),
	}
	r.Cartoes = cartoesResumo(r)
	return r
}

func resumirMes(vendas []venda.Venda, inicio utils.Data) ResumoDoMes {
	r := ResumoDoMes{Mes: ChaveDoMes(inicio), Total: decimal.Zero, Ticket: decimal.Zero}
	if inicio.IsZero() {
		return r
	}
	for _, v := range FiltrarPorPeriodo(vendas, Periodo{Inicio: inicio, Fim: inicio.FimDoMes()}, DataDaVenda) {
		r.Total = r.Total.Add(ValorComDesconto(v))
		r.Quantidade++
	}
	r.Ticket = media(r.Total, r.Quantidade)
	return r
}
