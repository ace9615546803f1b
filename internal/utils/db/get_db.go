package db

import (
	"fmt"

	"github.com/KromaEnergia/painel-comissoes/internal/auth"
	"github.com/KromaEnergia/painel-comissoes/internal/config"
	"github.com/KromaEnergia/painel-comissoes/internal/consultor"
	"github.com/KromaEnergia/painel-comissoes/internal/plano"
	"github.com/KromaEnergia/painel-comissoes/internal/recebimento"
	"github.com/KromaEnergia/painel-comissoes/internal/venda"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GetDB conecta e aplica as migrações de todos os modelos.
func GetDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	database, err := ConnectDataBase(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := Migrar(database); err != nil {
		return nil, err
	}
	return database, nil
}

// Migrar cria ou atualiza as tabelas, na ordem das dependências.
func Migrar(database *gorm.DB) error {
	migracoes := []struct {
		nome    string
		migrate func(*gorm.DB) error
	}{
		{"planos", plano.Migrate},
		{"consultores", consultor.Migrate},
		{"vendas", venda.Migrate},
		{"recebimentos", recebimento.Migrate},
		{"usuarios", auth.Migrate},
	}
	for _, m := range migracoes {
		if err := m.migrate(database); err != nil {
			return fmt.Errorf("migração de %s: %w", m.nome, err)
		}
	}
	return nil
}
