package plano

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
)

// cabecalhoExportacao usa os mesmos nomes de coluna aceitos por ImportarPlanos.
var cabecalhoExportacao = []string{
	"ID", "Operadora", "Tipo", "Comissionamento Total", "Numero Parcelas", "Taxa Plano Valor", "Taxa Plano Tipo",
}

// ExportarPlanos escreve todos os planos em CSV.
func (r *Repository) ExportarPlanos(ctx context.Context, w io.Writer) error {
	planos, err := r.ListarTodos(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(cabecalhoExportacao); err != nil {
		return err
	}
	for _, p := range planos {
		linha := []string{
			strconv.FormatUint(uint64(p.ID), 10),
			p.Operadora,
			p.Tipo,
			p.ComissionamentoTotal.StringFixed(2),
			strconv.Itoa(p.NumeroParcelas),
			p.TaxaPlanoValor.StringFixed(2),
			p.TaxaPlanoTipo,
		}
		if err := cw.Write(linha); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
