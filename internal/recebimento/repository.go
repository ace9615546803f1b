package recebimento

import (
	"context"

	"github.com/KromaEnergia/painel-comissoes/internal/utils"
	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de recebimentos.
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

// Filtro restringe a listagem de recebimentos; campos vazios não filtram.
type Filtro struct {
	Status  string
	VendaID uint
}

/* ========================= Consultas ========================= */

// ListarTodos retorna os recebimentos ordenados pela data prevista.
func (r *Repository) ListarTodos(ctx context.Context) ([]Recebimento, error) {
	return r.Listar(ctx, Filtro{})
}

// Listar retorna os recebimentos que atendem ao filtro.
func (r *Repository) Listar(ctx context.Context, f Filtro) ([]Recebimento, error) {
	q := r.DB.WithContext(ctx)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.VendaID != 0 {
		q = q.Where("venda_id = ?", f.VendaID)
	}
	var lista []Recebimento
	err := q.Order("data_prevista_recebimento ASC, id ASC").Find(&lista).Error
	return lista, err
}

// ListarPorVenda retorna as parcelas de uma venda ordenadas pelo número.
func (r *Repository) ListarPorVenda(ctx context.Context, vendaID uint) ([]Recebimento, error) {
	var lista []Recebimento
	err := r.DB.WithContext(ctx).
		Where("venda_id = ?", vendaID).
		Order("numero_parcela ASC").
		Find(&lista).Error
	return lista, err
}

// BuscarPorID busca um único recebimento.
func (r *Repository) BuscarPorID(ctx context.Context, id uint) (*Recebimento, error) {
	var rec Recebimento
	if err := r.DB.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

/* ========================= Escritas ========================= */

// SubstituirDaVenda apaga as parcelas existentes da venda e grava o novo cronograma.
// Deve ser chamado dentro da transação que salva a venda (ver WithDB).
func (r *Repository) SubstituirDaVenda(ctx context.Context, vendaID uint, itens []Recebimento) error {
	db := r.DB.WithContext(ctx)
	if err := db.Where("venda_id = ?", vendaID).Delete(&Recebimento{}).Error; err != nil {
		return err
	}
	if len(itens) == 0 {
		return nil
	}
	for i := range itens {
		itens[i].ID = 0
		itens[i].VendaID = vendaID
	}
	return db.Create(&itens).Error
}

// ExcluirDaVenda apaga todas as parcelas de uma venda.
func (r *Repository) ExcluirDaVenda(ctx context.Context, vendaID uint) error {
	return r.DB.WithContext(ctx).Where("venda_id = ?", vendaID).Delete(&Recebimento{}).Error
}

// AtualizarStatus altera apenas o status de um recebimento.
func (r *Repository) AtualizarStatus(ctx context.Context, id uint, status string) error {
	res := r.DB.WithContext(ctx).Model(&Recebimento{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Baixa são os dados informados ao registrar (ou corrigir) um recebimento.
type Baixa struct {
	DataRecebimento utils.Data
	Status          string
	NumeroExtrato   string
}

// RegistrarBaixa grava a data de recebimento e, se ela mudou, reagenda as parcelas
// seguintes da mesma venda. Tudo numa transação.
func (r *Repository) RegistrarBaixa(ctx context.Context, id uint, b Baixa) (*Recebimento, error) {
	var atual Recebimento
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&atual, id).Error; err != nil {
			return err
		}
		dataAnterior := atual.DataRecebimento

		atual.DataRecebimento = b.DataRecebimento
		atual.Status = b.Status
		atual.NumeroExtrato = b.NumeroExtrato
		if err := tx.Save(&atual).Error; err != nil {
			return err
		}
		if dataAnterior.Equal(atual.DataRecebimento) {
			return nil
		}

		parcelas, err := r.WithDB(tx).ListarPorVenda(ctx, atual.VendaID)
		if err != nil {
			return err
		}
		var posteriores []Recebimento
		for _, p := range parcelas {
			if p.NumeroParcela > atual.NumeroParcela {
				posteriores = append(posteriores, p)
			}
		}
		for _, p := range ReagendarPosteriores(atual, posteriores) {
			if err := tx.Model(&Recebimento{}).
				Where("id = ?", p.ID).
				Update("data_prevista_recebimento", p.DataPrevistaRecebimento).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &atual, nil
}

// DeleteByID apaga o recebimento; retorna gorm.ErrRecordNotFound se nada foi deletado.
func (r *Repository) DeleteByID(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&Recebimento{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
