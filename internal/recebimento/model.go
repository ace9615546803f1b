package recebimento

import (
	"github.com/KromaEnergia/painel-comissoes/internal/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Status de um recebimento
const (
	StatusPendente = "Pendente"
	StatusRecebido = "Recebido"
	StatusAtrasado = "Atrasado"
)

// IntervaloEntreParcelas é o prazo, em dias, entre parcelas consecutivas.
const IntervaloEntreParcelas = 30

// Recebimento é uma parcela da comissão de uma venda, prevista ou já recebida.
type Recebimento struct {
	ID                      uint            `gorm:"primaryKey" json:"id"`
	VendaID                 uint            `gorm:"not null;index" json:"venda"`
	ParcelaID               uint            `gorm:"index" json:"parcela"`
	NumeroParcela           int             `gorm:"not null;default:1" json:"numero_parcela"`
	ValorParcela            decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"valor_parcela"`
	DataPrevistaRecebimento utils.Data      `gorm:"not null;index" json:"data_prevista_recebimento"`
	DataRecebimento         utils.Data      `json:"data_recebimento"`
	Status                  string          `gorm:"size:20;not null;default:'Pendente';index" json:"status"`
	NumeroExtrato           string          `gorm:"size:100" json:"numero_extrato,omitempty"`
}

// TableName define o nome da tabela.
func (Recebimento) TableName() string {
	return "recebimentos"
}

// NormalizarStatus aceita o legado "Não Recebido" como pendente.
// Retorna false quando o status não é reconhecido.
func NormalizarStatus(s string) (string, bool) {
	switch s {
	case "", StatusPendente, "Não Recebido":
		return StatusPendente, true
	case StatusRecebido, StatusAtrasado:
		return s, true
	default:
		return "", false
	}
}

// DataBase é a data a partir da qual a próxima parcela é agendada:
// a data efetiva de recebimento, ou a prevista quando ainda não recebida.
func (r Recebimento) DataBase() utils.Data {
	if !r.DataRecebimento.IsZero() {
		return r.DataRecebimento
	}
	return r.DataPrevistaRecebimento
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Recebimento{})
}
