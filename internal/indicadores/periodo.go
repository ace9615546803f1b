package indicadores

import "github.com/KromaEnergia/painel-comissoes/internal/utils"

// Periodo é um intervalo de datas fechado nas duas pontas.
// Um limite zero deixa o intervalo aberto daquele lado.
type Periodo struct {
	Inicio utils.Data `json:"inicio"`
	Fim    utils.Data `json:"fim"`
}

// Contem indica se a data está no período. Data ausente nunca está.
func (p Periodo) Contem(d utils.Data) bool {
	if d.IsZero() {
		return false
	}
	if !p.Inicio.IsZero() && d.Before(p.Inicio) {
		return false
	}
	if !p.Fim.IsZero() && d.After(p.Fim) {
		return false
	}
	return true
}

// FiltrarPorPeriodo devolve, numa fatia nova e na ordem original, os registros
// cuja data escolhida por campo está no período.
func FiltrarPorPeriodo[R any](registros []R, periodo Periodo, campo func(R) utils.Data) []R {
	filtrados := make([]R, 0, len(registros))
	for _, r := range registros {
		if periodo.Contem(campo(r)) {
			filtrados = append(filtrados, r)
		}
	}
	return filtrados
}
