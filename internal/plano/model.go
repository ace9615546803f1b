package plano

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Tipos de taxa do plano
const (
	TaxaValorFixo   = "Valor Fixo"
	TaxaPorcentagem = "Porcentagem"
)

// Plano define operadora, taxa e percentual de comissionamento de um produto.
type Plano struct {
	ID                   uint            `gorm:"primaryKey" json:"id"`
	Operadora            string          `gorm:"size:255;not null;uniqueIndex:idx_plano_operadora_tipo" json:"operadora"`
	Tipo                 string          `gorm:"size:50;not null;uniqueIndex:idx_plano_operadora_tipo" json:"tipo"`
	NumeroParcelas       int             `gorm:"not null;default:0" json:"numero_parcelas"`
	TaxaPlanoTipo        string          `gorm:"size:20;not null;default:'Valor Fixo'" json:"taxa_plano_tipo"`
	TaxaPlanoValor       decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"taxa_plano_valor"`
	ComissionamentoTotal decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0" json:"comissionamento_total"` // ex: 300.00 (%)

	// Cronograma de parcelas de comissão do plano
	Parcelas []Parcela `gorm:"foreignKey:PlanoID;constraint:OnDelete:CASCADE" json:"parcelas,omitempty"`
}

// Parcela é o percentual pago em cada parcela da comissão de um plano.
type Parcela struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	PlanoID            uint            `gorm:"not null;index" json:"plano"`
	NumeroParcela      int             `gorm:"not null" json:"numero_parcela"`
	PorcentagemParcela decimal.Decimal `gorm:"type:numeric(6,2);not null" json:"porcentagem_parcela"`
}

// TipoDeTaxaValido indica se o tipo de taxa é um dos valores aceitos.
func TipoDeTaxaValido(tipo string) bool {
	return tipo == TaxaValorFixo || tipo == TaxaPorcentagem
}

// Migrate cria as tabelas de planos e parcelas.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Plano{}, &Parcela{})
}
