package consultor

import "gorm.io/gorm"

// Consultor é o agente de vendas ao qual as vendas são atribuídas.
type Consultor struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Nome     string `gorm:"size:255;not null" json:"nome"`
	Telefone string `gorm:"size:20" json:"telefone,omitempty"`
	Email    string `gorm:"size:255" json:"email,omitempty"`
}

// TableName mantém o nome no plural em português.
func (Consultor) TableName() string {
	return "consultores"
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Consultor{})
}
