package plano

import (
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/KromaEnergia/painel-comissoes/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ImportarPlanos lê planos de um CSV com as colunas
// operadora, comissionamento_total, tipo, numero_parcelas, taxa_plano_valor, taxa_plano_tipo.
// Linhas sem operadora, tipo ou número de parcelas são ignoradas.
func (r *Repository) ImportarPlanos(ctx context.Context, arquivo io.Reader, log *zap.Logger) (utils.ResultadoImportacao, error) {
	var res utils.ResultadoImportacao
	planilha, err := utils.AbrirPlanilha(arquivo)
	if err != nil {
		return res, err
	}
	if err := planilha.ExigirColunas("operadora", "tipo", "numero_parcelas"); err != nil {
		return res, err
	}
	for {
		l, err := planilha.Proxima()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, err
		}

		operadora, tipo := l.Campo("operadora"), l.Campo("tipo")
		numero, errNum := strconv.Atoi(l.Campo("numero_parcelas"))
		if operadora == "" || tipo == "" || errNum != nil || numero == 0 {
			res.Ignorar(l, "campos obrigatórios ausentes")
			continue
		}
		if _, err := r.BuscarPorOperadoraETipo(ctx, operadora, tipo); err == nil {
			res.Ignorar(l, "plano %s/%s já cadastrado", operadora, tipo)
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return res, err
		}

		tipoTaxa := l.Campo("taxa_plano_tipo")
		if tipoTaxa == "" {
			tipoTaxa = TaxaValorFixo
		}
		if !TipoDeTaxaValido(tipoTaxa) {
			res.Ignorar(l, "tipo de taxa inválido %q", tipoTaxa)
			continue
		}
		p := Plano{
			Operadora:            operadora,
			Tipo:                 tipo,
			NumeroParcelas:       numero,
			TaxaPlanoTipo:        tipoTaxa,
			TaxaPlanoValor:       res.Decimal(l, "taxa_plano_valor", log),
			ComissionamentoTotal: res.Decimal(l, "comissionamento_total", log),
		}
		if err := r.Criar(ctx, &p); err != nil {
			res.Ignorar(l, "erro ao gravar: %v", err)
			continue
		}
		res.Importados++
	}
	return res, nil
}

// ImportarParcelas lê parcelas de um CSV com as colunas plano_id, numero_parcela, porcentagem_parcela.
func (r *Repository) ImportarParcelas(ctx context.Context, arquivo io.Reader, log *zap.Logger) (utils.ResultadoImportacao, error) {
	var res utils.ResultadoImportacao
	planilha, err := utils.AbrirPlanilha(arquivo)
	if err != nil {
		return res, err
	}
	if err := planilha.ExigirColunas("plano_id", "numero_parcela", "porcentagem_parcela"); err != nil {
		return res, err
	}
	for {
		l, err := planilha.Proxima()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, err
		}

		planoID, errPlano := strconv.ParseUint(l.Campo("plano_id"), 10, 64)
		numero, errNum := strconv.Atoi(l.Campo("numero_parcela"))
		if errPlano != nil || planoID == 0 || errNum != nil || numero == 0 || l.Campo("porcentagem_parcela") == "" {
			res.Ignorar(l, "campos obrigatórios ausentes")
			continue
		}
		if _, err := r.BuscarPorID(ctx, uint(planoID)); err != nil {
			res.Ignorar(l, "plano com ID %d não encontrado", planoID)
			continue
		}

		pc := Parcela{
			NumeroParcela:      numero,
			PorcentagemParcela: res.Decimal(l, "porcentagem_parcela", log),
		}
		if err := r.CriarParcela(ctx, uint(planoID), &pc); err != nil {
			res.Ignorar(l, "erro ao gravar: %v", err)
			continue
		}
		res.Importados++
	}
	return res, nil
}
