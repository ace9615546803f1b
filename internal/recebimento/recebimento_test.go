package recebimento

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/KromaEnergia/painel-comissoes/internal/utils"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func novoBanco(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func cronograma(vendaID uint, previstas ...string) []Recebimento {
	itens := make([]Recebimento, 0, len(previstas))
	for i, p := range previstas {
		itens = append(itens, Recebimento{
			VendaID:                 vendaID,
			NumeroParcela:           i + 1,
			ValorParcela:            decimal.NewFromInt(100),
			DataPrevistaRecebimento: utils.MustData(p),
			Status:                  StatusPendente,
		})
	}
	return itens
}

func TestNormalizarStatus(t *testing.T) {
	casos := map[string]string{
		"":             StatusPendente,
		"Não Recebido": StatusPendente,
		"Pendente":     StatusPendente,
		"Recebido":     StatusRecebido,
		"Atrasado":     StatusAtrasado,
	}
	for entrada, esperado := range casos {
		got, ok := NormalizarStatus(entrada)
		assert.True(t, ok, entrada)
		assert.Equal(t, esperado, got, entrada)
	}
	_, ok := NormalizarStatus("Cancelado")
	assert.False(t, ok)
}

func TestReagendarPosteriores(t *testing.T) {
	base := Recebimento{
		NumeroParcela:           1,
		DataPrevistaRecebimento: utils.MustData("2024-02-01"),
		DataRecebimento:         utils.MustData("2024-02-10"),
	}
	posteriores := []Recebimento{
		{ID: 2, NumeroParcela: 2, DataPrevistaRecebimento: utils.MustData("2024-03-02")},
		{ID: 3, NumeroParcela: 3, DataPrevistaRecebimento: utils.MustData("2024-04-01")},
	}

	alteradas := ReagendarPosteriores(base, posteriores)

	require.Len(t, alteradas, 2)
	assert.Equal(t, "2024-03-11", alteradas[0].DataPrevistaRecebimento.String())
	assert.Equal(t, "2024-04-10", alteradas[1].DataPrevistaRecebimento.String())
	assert.Equal(t, "2024-03-02", posteriores[0].DataPrevistaRecebimento.String(), "entrada não é alterada")
}

func TestReagendarPosterioresUsaRecebimentoDaAnterior(t *testing.T) {
	base := Recebimento{DataPrevistaRecebimento: utils.MustData("2024-02-01")}
	posteriores := []Recebimento{
		{ID: 2, NumeroParcela: 2, DataPrevistaRecebimento: utils.MustData("2024-03-02"), DataRecebimento: utils.MustData("2024-03-20")},
		{ID: 3, NumeroParcela: 3, DataPrevistaRecebimento: utils.MustData("2024-04-01")},
	}

	alteradas := ReagendarPosteriores(base, posteriores)

	require.Len(t, alteradas, 1, "a parcela 2 já está na data certa")
	assert.Equal(t, uint(3), alteradas[0].ID)
	assert.Equal(t, "2024-04-19", alteradas[0].DataPrevistaRecebimento.String())
}

func TestRepositorySubstituirDaVenda(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(novoBanco(t))

	require.NoError(t, repo.SubstituirDaVenda(ctx, 1, cronograma(1, "2024-02-01", "2024-03-02")))
	require.NoError(t, repo.SubstituirDaVenda(ctx, 2, cronograma(2, "2024-02-15")))
	require.NoError(t, repo.SubstituirDaVenda(ctx, 1, cronograma(1, "2024-05-01")))

	daVenda, err := repo.ListarPorVenda(ctx, 1)
	require.NoError(t, err)
	require.Len(t, daVenda, 1)
	assert.Equal(t, "2024-05-01", daVenda[0].DataPrevistaRecebimento.String())

	todos, err := repo.ListarTodos(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, uint(2), todos[0].VendaID, "ordenado pela data prevista")

	require.NoError(t, repo.ExcluirDaVenda(ctx, 1))
	daVenda, err = repo.ListarPorVenda(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, daVenda)
}

func TestRepositoryRegistrarBaixaReagenda(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(novoBanco(t))
	require.NoError(t, repo.SubstituirDaVenda(ctx, 1, cronograma(1, "2024-02-01", "2024-03-02", "2024-04-01")))
	parcelas, err := repo.ListarPorVenda(ctx, 1)
	require.NoError(t, err)

	rec, err := repo.RegistrarBaixa(ctx, parcelas[0].ID, Baixa{
		DataRecebimento: utils.MustData("2024-02-05"),
		Status:          StatusRecebido,
		NumeroExtrato:   "EXT-1",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusRecebido, rec.Status)

	parcelas, err = repo.ListarPorVenda(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-05", parcelas[0].DataRecebimento.String())
	assert.Equal(t, "2024-03-06", parcelas[1].DataPrevistaRecebimento.String())
	assert.Equal(t, "2024-04-05", parcelas[2].DataPrevistaRecebimento.String())

	_, err = repo.RegistrarBaixa(ctx, 999, Baixa{Status: StatusPendente})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListarComFiltro(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(novoBanco(t))
	require.NoError(t, repo.SubstituirDaVenda(ctx, 1, cronograma(1, "2024-02-01", "2024-03-02")))
	parcelas, err := repo.ListarPorVenda(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, repo.AtualizarStatus(ctx, parcelas[1].ID, StatusAtrasado))

	atrasados, err := repo.Listar(ctx, Filtro{Status: StatusAtrasado, VendaID: 1})
	require.NoError(t, err)
	require.Len(t, atrasados, 1)
	assert.Equal(t, 2, atrasados[0].NumeroParcela)

	assert.ErrorIs(t, repo.AtualizarStatus(ctx, 999, StatusRecebido), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.DeleteByID(ctx, 999), gorm.ErrRecordNotFound)
}

type invalidadorFake struct{ chamadas int }

func (f *invalidadorFake) Invalidar(context.Context) error {
	f.chamadas++
	return nil
}

func novoRouter(t *testing.T) (*mux.Router, *Repository, *invalidadorFake) {
	t.Helper()
	repo := NewRepository(novoBanco(t))
	inv := &invalidadorFake{}
	h := NewHandler(repo, inv, zaptest.NewLogger(t))

	r := mux.NewRouter()
	r.HandleFunc("/recebimentos", h.List).Methods("GET")
	r.HandleFunc("/recebimentos/{id}", h.Get).Methods("GET")
	r.HandleFunc("/recebimentos/{id}/baixa", h.RegistrarBaixa).Methods("PUT")
	r.HandleFunc("/recebimentos/{id}/status", h.UpdateStatus).Methods("PATCH")
	r.HandleFunc("/recebimentos/{id}", h.Delete).Methods("DELETE")
	return r, repo, inv
}

func TestHandlerRegistrarBaixa(t *testing.T) {
	r, repo, inv := novoRouter(t)
	ctx := context.Background()
	require.NoError(t, repo.SubstituirDaVenda(ctx, 1, cronograma(1, "2024-02-01", "2024-03-02")))
	parcelas, err := repo.ListarPorVenda(ctx, 1)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	alvo := "/recebimentos/" + strconv.FormatUint(uint64(parcelas[0].ID), 10) + "/baixa"
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, alvo, strings.NewReader(`{"data_recebimento":"2024-02-20"}`)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got Recebimento
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, StatusRecebido, got.Status, "data informada sem status marca como recebido")
	assert.Equal(t, 1, inv.chamadas)

	seguinte, err := repo.BuscarPorID(ctx, parcelas[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-21", seguinte.DataPrevistaRecebimento.String())
}

func TestHandlerErros(t *testing.T) {
	r, _, inv := novoRouter(t)

	casos := []struct {
		metodo, alvo, corpo string
		status              int
	}{
		{http.MethodGet, "/recebimentos?status=Cancelado", "", http.StatusBadRequest},
		{http.MethodGet, "/recebimentos?venda=abc", "", http.StatusBadRequest},
		{http.MethodGet, "/recebimentos/abc", "", http.StatusBadRequest},
		{http.MethodGet, "/recebimentos/42", "", http.StatusNotFound},
		{http.MethodPut, "/recebimentos/42/baixa", `{"data_recebimento":"20/02/2024"}`, http.StatusBadRequest},
		{http.MethodPut, "/recebimentos/42/baixa", `{"status":"Cancelado"}`, http.StatusBadRequest},
		{http.MethodPut, "/recebimentos/42/baixa", `{"status":"Pendente"}`, http.StatusNotFound},
		{http.MethodPatch, "/recebimentos/42/status", `{}`, http.StatusBadRequest},
		{http.MethodPatch, "/recebimentos/42/status", `{"status":"Recebido"}`, http.StatusNotFound},
		{http.MethodDelete, "/recebimentos/42", "", http.StatusNotFound},
	}
	for _, c := range casos {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(c.metodo, c.alvo, strings.NewReader(c.corpo)))
		assert.Equal(t, c.status, rec.Code, "%s %s", c.metodo, c.alvo)
	}
	assert.Zero(t, inv.chamadas)
}

func TestHandlerListarVazio(t *testing.T) {
	r, _, _ := novoRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/recebimentos", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandlerGetErroDoBanco(t *testing.T) {
	r, repo, _ := novoRouter(t)
	require.NoError(t, repo.DB.Migrator().DropTable(&Recebimento{}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/recebimentos/1", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Erro ao buscar recebimento")
}
