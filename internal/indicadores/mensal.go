package indicadores

import (
	"sort"

	"github.com/KromaEnergia/painel-comissoes/internal/utils"
	"github.com/shopspring/decimal"
)

// TotalMensal traz, para um mês, um acumulado por função de valor, na ordem em que foram passadas.
type TotalMensal struct {
	Chave   MesChave          `json:"chave"`
	Rotulo  string            `json:"rotulo"`
	Valores []decimal.Decimal `json:"valores"`
}

// Valor retorna o i-ésimo acumulado, zero se não existir.
func (t TotalMensal) Valor(i int) decimal.Decimal {
	if i < 0 || i >= len(t.Valores) {
		return decimal.Zero
	}
	return t.Valores[i]
}

// Contar é a função de valor que soma 1 por registro.
func Contar[R any](R) decimal.Decimal { return decimal.NewFromInt(1) }

// AgregarPorMes agrupa os registros pelo mês da data escolhida por campo e soma cada
// função de valor numa só passada.
//
// Sem janela, só aparecem meses com ao menos um registro. Com janela, todos os meses
// dela aparecem (zerados se vazios) e registros fora dela são descartados.
// O resultado sai em ordem cronológica.
func AgregarPorMes[R any](registros []R, campo func(R) utils.Data, janela []MesChave, valores ...func(R) decimal.Decimal) []TotalMensal {
	baldes := make(map[MesChave][]decimal.Decimal, len(janela))
	novo := func() []decimal.Decimal {
		acc := make([]decimal.Decimal, len(valores))
		for i := range acc {
			acc[i] = decimal.Zero
		}
		return acc
	}
	for _, k := range janela {
		baldes[k] = novo()
	}

	for _, r := range registros {
		k := ChaveDoMes(campo(r))
		if k == "" {
			continue
		}
		acc, ok := baldes[k]
		if !ok {
			if janela != nil {
				continue
			}
			acc = novo()
			baldes[k] = acc
		}
		for i, fn := range valores {
			acc[i] = acc[i].Add(fn(r))
		}
	}

	chaves := make([]MesChave, 0, len(baldes))
	for k := range baldes {
		chaves = append(chaves, k)
	}
	sort.Slice(chaves, func(i, j int) bool { return chaves[i] < chaves[j] })

	totais := make([]TotalMensal, len(chaves))
	for i, k := range chaves {
		totais[i] = TotalMensal{Chave: k, Rotulo: k.Rotulo(), Valores: baldes[k]}
	}
	return totais
}

// Serie extrai o i-ésimo acumulado de cada mês.
func Serie(totais []TotalMensal, i int) []decimal.Decimal {
	serie := make([]decimal.Decimal, len(totais))
	for j, t := range totais {
		serie[j] = t.Valor(i)
	}
	return serie
}
