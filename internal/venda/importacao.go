package venda

import (
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/KromaEnergia/painel-comissoes/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Importar lê vendas de um CSV com as colunas numero_proposta, cliente_nome,
// cliente_documento, cliente_email, cliente_telefone, plano_id, consultor_id, valor_plano,
// desconto_consultor, data_venda, data_vigencia, data_vencimento e canal_entrada.
// Cada venda importada ganha seu cronograma de recebimentos, como no cadastro pela API.
func (r *Repository) Importar(ctx context.Context, arquivo io.Reader, log *zap.Logger) (utils.ResultadoImportacao, error) {
	var res utils.ResultadoImportacao
	planilha, err := utils.AbrirPlanilha(arquivo)
	if err != nil {
		return res, err
	}
	if err := planilha.ExigirColunas("numero_proposta", "cliente_nome", "plano_id", "consultor_id", "valor_plano", "data_venda"); err != nil {
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

		v, motivo := vendaDaLinha(&res, l, log)
		if motivo != "" {
			res.Ignorar(l, "%s", motivo)
			continue
		}
		existe, err := r.ExisteProposta(ctx, v.NumeroProposta)
		if err != nil {
			return res, err
		}
		if existe {
			res.Ignorar(l, "proposta %s já cadastrada", v.NumeroProposta)
			continue
		}

		err = r.Salvar(ctx, &v)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			res.Ignorar(l, "plano %d ou consultor %d não encontrado", v.PlanoID, v.ConsultorID)
			continue
		}
		if err != nil {
			res.Ignorar(l, "erro ao gravar: %v", err)
			continue
		}
		res.Importados++
	}
	return res, nil
}

func vendaDaLinha(res *utils.ResultadoImportacao, l utils.Linha, log *zap.Logger) (Venda, string) {
	v := Venda{
		NumeroProposta:   l.Campo("numero_proposta"),
		ClienteNome:      l.Campo("cliente_nome"),
		ClienteDocumento: l.Campo("cliente_documento"),
		ClienteEmail:     l.Campo("cliente_email"),
		ClienteTelefone:  l.Campo("cliente_telefone"),
		CanalEntrada:     l.Campo("canal_entrada"),
	}
	planoID, errPlano := strconv.ParseUint(l.Campo("plano_id"), 10, 64)
	consultorID, errConsultor := strconv.ParseUint(l.Campo("consultor_id"), 10, 64)
	if v.NumeroProposta == "" || v.ClienteNome == "" || errPlano != nil || errConsultor != nil || l.Campo("data_venda") == "" {
		return v, "campos obrigatórios ausentes"
	}
	if l.Campo("valor_plano") == "" {
		return v, "valor_plano ausente"
	}
	v.PlanoID, v.ConsultorID = uint(planoID), uint(consultorID)

	var ok bool
	if v.DataVenda, ok = utils.ParseData(l.Campo("data_venda")); !ok {
		return v, "data_venda inválida"
	}
	if v.DataVigencia, ok = utils.ParseData(l.Campo("data_vigencia")); !ok {
		return v, "data_vigencia inválida"
	}
	if v.DataVencimento, ok = utils.ParseData(l.Campo("data_vencimento")); !ok {
		return v, "data_vencimento inválida"
	}

	if v.CanalEntrada == "" {
		v.CanalEntrada = CanalPadrao
	}
	v.ValorPlano = res.Decimal(l, "valor_plano", log)
	v.DescontoConsultor = res.Decimal(l, "desconto_consultor", log)
	return v, ""
}
