package venda

import (
	"github.com/KromaEnergia/painel-comissoes/internal/consultor"
	"github.com/KromaEnergia/painel-comissoes/internal/plano"
	"github.com/KromaEnergia/painel-comissoes/internal/recebimento"
	"github.com/KromaEnergia/painel-comissoes/internal/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CanalPadrao é usado quando a venda não informa o canal de entrada.
const CanalPadrao = "Indicação"

// CanaisEntrada lista os canais aceitos no cadastro.
var CanaisEntrada = []string{"Indicação", "Portifolio", "Comprado", "Rede Social", "Site", "Parceria"}

var cem = decimal.NewFromInt(100)

// Venda é uma transação comissionada ligando cliente, plano e consultor.
type Venda struct {
	ID                uint                `gorm:"primaryKey" json:"id"`
	NumeroProposta    string              `gorm:"size:100;not null;uniqueIndex" json:"numero_proposta"`
	ClienteNome       string              `gorm:"size:255;not null" json:"cliente_nome"`
	ClienteDocumento  string              `gorm:"size:50;not null;default:''" json:"cliente_documento"`
	ClienteEmail      string              `gorm:"size:255" json:"cliente_email"`
	ClienteTelefone   string              `gorm:"size:20" json:"cliente_telefone"`
	PlanoID           uint                `gorm:"not null;index" json:"-"`
	Plano             plano.Plano         `gorm:"foreignKey:PlanoID" json:"plano"`
	ConsultorID       uint                `gorm:"not null;index" json:"-"`
	Consultor         consultor.Consultor `gorm:"foreignKey:ConsultorID" json:"consultor"`
	CanalEntrada      string              `gorm:"size:50;not null;default:'Indicação'" json:"canal_entrada"`
	ValorPlano        decimal.Decimal     `gorm:"type:numeric(10,2);not null" json:"valor_plano"`
	DescontoConsultor decimal.Decimal     `gorm:"type:numeric(10,2);not null;default:0" json:"desconto_consultor"`
	DataVenda         utils.Data          `gorm:"not null;index" json:"data_venda"`
	DataVigencia      utils.Data          `gorm:"not null" json:"data_vigencia"`
	DataVencimento    utils.Data          `gorm:"not null" json:"data_vencimento"`

	ParcelasRecebimento []recebimento.Recebimento `gorm:"foreignKey:VendaID;constraint:OnDelete:CASCADE" json:"parcelas_recebimento,omitempty"`
}

// ValorLiquido é o valor do plano menos o desconto do consultor e a taxa do plano.
// Pode ser negativo; não há limitação.
func (v Venda) ValorLiquido() decimal.Decimal {
	valor := v.ValorPlano.Sub(v.DescontoConsultor)
	switch v.Plano.TaxaPlanoTipo {
	case plano.TaxaValorFixo:
		valor = valor.Sub(v.Plano.TaxaPlanoValor)
	case plano.TaxaPorcentagem:
		valor = valor.Sub(valor.Mul(v.Plano.TaxaPlanoValor.Div(cem)))
	}
	return valor
}

// Canal retorna o canal de entrada, com CanalPadrao quando vazio.
func (v Venda) Canal() string {
	if v.CanalEntrada == "" {
		return CanalPadrao
	}
	return v.CanalEntrada
}

// CanalValido indica se o canal está entre os aceitos.
func CanalValido(c string) bool {
	for _, valido := range CanaisEntrada {
		if c == valido {
			return true
		}
	}
	return false
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Venda{})
}
