package plano

import (
	"context"

	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de planos e suas parcelas.
type Repository struct {
	DB *gorm.DB
}

// NewRepository instancia um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// WithDB retorna uma cópia do repo usando um *gorm.DB específico (ex.: tx).
func (r *Repository) WithDB(db *gorm.DB) *Repository {
	if db == nil {
		db = r.DB
	}
	return &Repository{DB: db}
}

func ordenarParcelas(db *gorm.DB) *gorm.DB {
	return db.Order("numero_parcela ASC")
}

// ListarTodos retorna os planos com o cronograma de parcelas.
func (r *Repository) ListarTodos(ctx context.Context) ([]Plano, error) {
	var planos []Plano
	err := r.DB.WithContext(ctx).
		Preload("Parcelas", ordenarParcelas).
		Order("operadora ASC, tipo ASC").
		Find(&planos).Error
	return planos, err
}

// BuscarPorID retorna um plano pelo ID.
func (r *Repository) BuscarPorID(ctx context.Context, id uint) (*Plano, error) {
	var p Plano
	if err := r.DB.WithContext(ctx).Preload("Parcelas", ordenarParcelas).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// BuscarPorOperadoraETipo localiza o plano pela chave natural (operadora, tipo).
func (r *Repository) BuscarPorOperadoraETipo(ctx context.Context, operadora, tipo string) (*Plano, error) {
	var p Plano
	err := r.DB.WithContext(ctx).
		Where("operadora = ? AND tipo = ?", operadora, tipo).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Criar insere o plano e suas parcelas.
func (r *Repository) Criar(ctx context.Context, p *Plano) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

// Atualizar altera os dados do plano e substitui o cronograma de parcelas.
func (r *Repository) Atualizar(ctx context.Context, id uint, dados *Plano) (*Plano, error) {
	var existente Plano
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&existente, id).Error; err != nil {
			return err
		}
		existente.Operadora = dados.Operadora
		existente.Tipo = dados.Tipo
		existente.NumeroParcelas = dados.NumeroParcelas
		existente.TaxaPlanoTipo = dados.TaxaPlanoTipo
		existente.TaxaPlanoValor = dados.TaxaPlanoValor
		existente.ComissionamentoTotal = dados.ComissionamentoTotal
		if err := tx.Omit("Parcelas").Save(&existente).Error; err != nil {
			return err
		}

		if err := tx.Where("plano_id = ?", id).Delete(&Parcela{}).Error; err != nil {
			return err
		}
		existente.Parcelas = nil
		for _, pc := range dados.Parcelas {
			pc.ID = 0
			pc.PlanoID = id
			existente.Parcelas = append(existente.Parcelas, pc)
		}
		if len(existente.Parcelas) > 0 {
			return tx.Create(&existente.Parcelas).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &existente, nil
}

// Deletar remove o plano; retorna gorm.ErrRecordNotFound se nada foi deletado.
func (r *Repository) Deletar(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plano_id = ?", id).Delete(&Parcela{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Plano{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// CriarParcela adiciona uma parcela ao cronograma de um plano existente.
func (r *Repository) CriarParcela(ctx context.Context, planoID uint, pc *Parcela) error {
	pc.PlanoID = planoID
	return r.DB.WithContext(ctx).Create(pc).Error
}

// ParcelasDoPlano lista o cronograma ordenado pelo número da parcela.
func (r *Repository) ParcelasDoPlano(ctx context.Context, planoID uint) ([]Parcela, error) {
	var parcelas []Parcela
	err := ordenarParcelas(r.DB.WithContext(ctx).Where("plano_id = ?", planoID)).
		Find(&parcelas).Error
	return parcelas, err
}
