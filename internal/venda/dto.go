package venda

import (
	"github.com/KromaEnergia/painel-comissoes/internal/utils"
	"github.com/shopspring/decimal"
)

// VendaDTO é o payload de criação/atualização de uma venda.
type VendaDTO struct {
	NumeroProposta    string          `json:"numero_proposta" validate:"required,max=100"`
	ClienteNome       string          `json:"cliente_nome" validate:"required,max=255"`
	ClienteDocumento  string          `json:"cliente_documento" validate:"max=50"`
	ClienteEmail      string          `json:"cliente_email" validate:"omitempty,email"`
	ClienteTelefone   string          `json:"cliente_telefone" validate:"max=20"`
	PlanoID           uint            `json:"plano" validate:"required"`
	ConsultorID       uint            `json:"consultor" validate:"required"`
	CanalEntrada      string          `json:"canal_entrada"`
	ValorPlano        decimal.Decimal `json:"valor_plano"`
	DescontoConsultor decimal.Decimal `json:"desconto_consultor"`
	DataVenda         string          `json:"data_venda" validate:"required,datetime=2006-01-02"`
	DataVigencia      string          `json:"data_vigencia" validate:"required,datetime=2006-01-02"`
	DataVencimento    string          `json:"data_vencimento" validate:"required,datetime=2006-01-02"`
}

// ParaModelo converte o DTO no modelo persistido. Datas já foram validadas.
func (d VendaDTO) ParaModelo() Venda {
	canal := d.CanalEntrada
	if canal == "" {
		canal = CanalPadrao
	}
	dataVenda, _ := utils.ParseData(d.DataVenda)
	vigencia, _ := utils.ParseData(d.DataVigencia)
	vencimento, _ := utils.ParseData(d.DataVencimento)
	return Venda{
		NumeroProposta:    d.NumeroProposta,
		ClienteNome:       d.ClienteNome,
		ClienteDocumento:  d.ClienteDocumento,
		ClienteEmail:      d.ClienteEmail,
		ClienteTelefone:   d.ClienteTelefone,
		PlanoID:           d.PlanoID,
		ConsultorID:       d.ConsultorID,
		CanalEntrada:      canal,
		ValorPlano:        d.ValorPlano,
		DescontoConsultor: d.DescontoConsultor,
		DataVenda:         dataVenda,
		DataVigencia:      vigencia,
		DataVencimento:    vencimento,
	}
}
