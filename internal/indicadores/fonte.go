package indicadores

import (
	"context"
	"fmt"

	"github.com/KromaEnergia/painel-comissoes/internal/consultor"
	"github.com/KromaEnergia/painel-comissoes/internal/recebimento"
	"github.com/KromaEnergia/painel-comissoes/internal/venda"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Fonte entrega as três coleções do painel.
type Fonte interface {
	ListarVendas(ctx context.Context) ([]venda.Venda, error)
	ListarConsultores(ctx context.Context) ([]consultor.Consultor, error)
	ListarRecebimentos(ctx context.Context) ([]recebimento.Recebimento, error)
}

// CarregarSnapshot busca as coleções em paralelo. Se qualquer busca falhar as demais são
// canceladas e nenhum snapshot parcial é devolvido.
func CarregarSnapshot(ctx context.Context, f Fonte) (Snapshot, error) {
	var s Snapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		vendas, err := f.ListarVendas(ctx)
		if err != nil {
			return fmt.Errorf("vendas: %w", err)
		}
		s.Vendas = vendas
		return nil
	})
	g.Go(func() error {
		consultores, err := f.ListarConsultores(ctx)
		if err != nil {
			return fmt.Errorf("consultores: %w", err)
		}
		s.Consultores = consultores
		return nil
	})
	g.Go(func() error {
		recebimentos, err := f.ListarRecebimentos(ctx)
		if err != nil {
			return fmt.Errorf("recebimentos: %w", err)
		}
		s.Recebimentos = recebimentos
		return nil
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// FonteBanco lê as coleções pelos repositórios de cada entidade.
type FonteBanco struct {
	db           *gorm.DB
	vendas       *venda.Repository
	consultores  consultor.Repository
	recebimentos *recebimento.Repository
}

func NewFonteBanco(db *gorm.DB) *FonteBanco {
	return &FonteBanco{
		db:           db,
		vendas:       venda.NewRepository(db),
		consultores:  consultor.NewRepository(),
		recebimentos: recebimento.NewRepository(db),
	}
}

func (f *FonteBanco) ListarVendas(ctx context.Context) ([]venda.Venda, error) {
	return f.vendas.ListarTodos(ctx)
}

func (f *FonteBanco) ListarConsultores(ctx context.Context) ([]consultor.Consultor, error) {
	return f.consultores.ListarTodos(f.db.WithContext(ctx))
}

func (f *FonteBanco) ListarRecebimentos(ctx context.Context) ([]recebimento.Recebimento, error) {
	return f.recebimentos.ListarTodos(ctx)
}
