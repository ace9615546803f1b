package venda

import (
	"context"

	"github.com/KromaEnergia/painel-comissoes/internal/consultor"
	"github.com/KromaEnergia/painel-comissoes/internal/plano"
	"github.com/KromaEnergia/painel-comissoes/internal/recebimento"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository encapsula operações de banco para Venda.
type Repository struct {
	DB           *gorm.DB
	planos       *plano.Repository
	recebimentos *recebimento.Repository
}

// NewRepository cria um novo repositório
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:           db,
		planos:       plano.NewRepository(db),
		recebimentos: recebimento.NewRepository(db),
	}
}

// ListarTodos retorna as vendas com plano e consultor, sem as parcelas de recebimento.
func (r *Repository) ListarTodos(ctx context.Context) ([]Venda, error) {
	var vendas []Venda
	err := r.DB.WithContext(ctx).
		Preload("Plano").
		Preload("Consultor").
		Order("data_venda ASC, id ASC").
		Find(&vendas).Error
	return vendas, err
}

// ListarPorConsultor retorna as vendas de um consultor.
func (r *Repository) ListarPorConsultor(ctx context.Context, consultorID uint) ([]Venda, error) {
	var vendas []Venda
	err := r.DB.WithContext(ctx).
		Preload("Plano").
		Preload("Consultor").
		Where("consultor_id = ?", consultorID).
		Order("data_venda ASC, id ASC").
		Find(&vendas).Error
	return vendas, err
}

// BuscarPorID retorna uma venda com plano, consultor e parcelas de recebimento.
func (r *Repository) BuscarPorID(ctx context.Context, id uint) (*Venda, error) {
	var v Venda
	err := r.DB.WithContext(ctx).
		Preload("Plano").
		Preload("Consultor").
		Preload("ParcelasRecebimento", func(db *gorm.DB) *gorm.DB {
			return db.Order("numero_parcela ASC")
		}).
		First(&v, id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ExisteProposta indica se já há venda com o número de proposta informado.
func (r *Repository) ExisteProposta(ctx context.Context, numero string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&Venda{}).Where("numero_proposta = ?", numero).Count(&n).Error
	return n > 0, err
}

// Salvar cria ou atualiza a venda e recria o cronograma de recebimentos, numa transação.
// Plano e consultor precisam existir; são carregados para o cálculo do valor líquido.
func (r *Repository) Salvar(ctx context.Context, v *Venda) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		v.Plano, v.Consultor = plano.Plano{}, consultor.Consultor{}
		if err := tx.First(&v.Plano, v.PlanoID).Error; err != nil {
			return err
		}
		if err := tx.First(&v.Consultor, v.ConsultorID).Error; err != nil {
			return err
		}

		if v.ID == 0 {
			if err := tx.Omit(clause.Associations).Create(v).Error; err != nil {
				return err
			}
		} else {
			res := tx.Model(&Venda{ID: v.ID}).Select("*").Omit(clause.Associations).Updates(v)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}

		parcelas, err := r.planos.WithDB(tx).ParcelasDoPlano(ctx, v.PlanoID)
		if err != nil {
			return err
		}
		v.ParcelasRecebimento = GerarCronograma(*v, parcelas)
		return r.recebimentos.WithDB(tx).SubstituirDaVenda(ctx, v.ID, v.ParcelasRecebimento)
	})
}

// Deletar remove a venda e suas parcelas de recebimento.
func (r *Repository) Deletar(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.recebimentos.WithDB(tx).ExcluirDaVenda(ctx, id); err != nil {
			return err
		}
		res := tx.Delete(&Venda{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
