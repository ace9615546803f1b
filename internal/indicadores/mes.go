package indicadores

import (
	"fmt"
	"strconv"

	"github.com/KromaEnergia/painel-comissoes/internal/utils"
)

// MesChave identifica um mês no formato "YYYY-MM". A ordem lexicográfica é a cronológica.
type MesChave string

var mesesAbreviados = [...]string{"jan.", "fev.", "mar.", "abr.", "mai.", "jun.", "jul.", "ago.", "set.", "out.", "nov.", "dez."}

// ChaveDoMes retorna a chave do mês da data; vazia para data ausente.
func ChaveDoMes(d utils.Data) MesChave {
	if d.IsZero() {
		return ""
	}
	return MesChave(fmt.Sprintf("%04d-%02d", d.Ano(), int(d.Mes())))
}

// JanelaMeses monta as n chaves consecutivas que terminam no mês de referencia, da mais antiga à mais recente.
func JanelaMeses(referencia utils.Data, n int) []MesChave {
	if n <= 0 || referencia.IsZero() {
		return nil
	}
	inicio := referencia.InicioDoMes().AddMeses(-(n - 1))
	janela := make([]MesChave, n)
	for i := range janela {
		janela[i] = ChaveDoMes(inicio.AddMeses(i))
	}
	return janela
}

// Rotulo devolve o nome curto do mês em pt-BR, ex.: "jan. de 2024".
func (k MesChave) Rotulo() string {
	if len(k) != 7 || k[4] != '-' {
		return string(k)
	}
	ano, errAno := strconv.Atoi(string(k[:4]))
	mes, errMes := strconv.Atoi(string(k[5:]))
	if errAno != nil || errMes != nil || mes < 1 || mes > 12 {
		return string(k)
	}
	return fmt.Sprintf("%s de %d", mesesAbreviados[mes-1], ano)
}
