package indicadores

import (
	"github.com/KromaEnergia/painel-comissoes/internal/recebimento"
	"github.com/KromaEnergia/painel-comissoes/internal/utils"
	"github.com/shopspring/decimal"
)

// DataPrevista seleciona data_prevista_recebimento para filtros e agregações.
func DataPrevista(r recebimento.Recebimento) utils.Data { return r.DataPrevistaRecebimento }

// TaxaRecebimento é o percentual de parcelas com status Recebido.
func TaxaRecebimento(recebimentos []recebimento.Recebimento) decimal.Decimal {
	if len(recebimentos) == 0 {
		return decimal.Zero
	}
	recebidas := 0
	for _, r := range recebimentos {
		if r.Status == recebimento.StatusRecebido {
			recebidas++
		}
	}
	return decimal.NewFromInt(int64(recebidas)).Mul(cem).Div(decimal.NewFromInt(int64(len(recebimentos))))
}

// DiasMediosAtraso é a média de dias entre a data prevista e a de recebimento das parcelas
// atrasadas. Só entram parcelas Atrasado que já têm data de recebimento.
func DiasMediosAtraso(recebimentos []recebimento.Recebimento) decimal.Decimal {
	total, n := 0, 0
	for _, r := range recebimentos {
		if r.Status != recebimento.StatusAtrasado || r.DataRecebimento.IsZero() || r.DataPrevistaRecebimento.IsZero() {
			continue
		}
		total += r.DataPrevistaRecebimento.DiasAte(r.DataRecebimento)
		n++
	}
	return media(decimal.NewFromInt(int64(total)), n)
}

// PrevisaoRecebimentos agrupa por mês previsto: Valores[0] é o previsto, Valores[1] o recebido.
func PrevisaoRecebimentos(recebimentos []recebimento.Recebimento) []TotalMensal {
	return AgregarPorMes(recebimentos, DataPrevista, nil,
		func(r recebimento.Recebimento) decimal.Decimal { return r.ValorParcela },
		func(r recebimento.Recebimento) decimal.Decimal {
			if r.Status == recebimento.StatusRecebido {
				return r.ValorParcela
			}
			return decimal.Zero
		},
	)
}
