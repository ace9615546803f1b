package plano

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/KromaEnergia/painel-comissoes/internal/cache"
	"github.com/KromaEnergia/painel-comissoes/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler gerencia as rotas de planos.
type Handler struct {
	Repo  *Repository
	Cache cache.Invalidador
	Log   *zap.Logger
}

// NewHandler cria um novo Handler.
func NewHandler(repo *Repository, c cache.Invalidador, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Repo: repo, Cache: c, Log: log.Named("plano")}
}

func (h *Handler) invalidar(r *http.Request) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.Invalidar(r.Context()); err != nil {
		h.Log.Warn("falha ao invalidar painel", zap.Error(err))
	}
}

// List trata GET /planos
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	planos, err := h.Repo.ListarTodos(r.Context())
	if err != nil {
		h.Log.Error("erro ao listar planos", zap.Error(err))
		http.Error(w, "Erro ao listar planos", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, planos)
}

// Exportar trata GET /planos/exportar
func (h *Handler) Exportar(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.Repo.ExportarPlanos(r.Context(), &buf); err != nil {
		h.Log.Error("erro ao exportar planos", zap.Error(err))
		http.Error(w, "Erro ao exportar planos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="planos.csv"`)
	_, _ = buf.WriteTo(w)
}

// Get trata GET /planos/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		http.Error(w, "ID do plano inválido", http.StatusBadRequest)
		return
	}
	p, err := h.Repo.BuscarPorID(r.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Plano não encontrado", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Log.Error("erro ao buscar plano", zap.Uint("id", id), zap.Error(err))
		http.Error(w, "Erro ao buscar plano", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, p)
}

// Create trata POST /planos
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto PlanoDTO
	if err := utils.DecodificarEValidar(r, &dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p := dto.ParaModelo()
	if err := h.Repo.Criar(r.Context(), &p); err != nil {
		h.Log.Error("erro ao criar plano", zap.Error(err))
		http.Error(w, "Erro ao criar plano", http.StatusInternalServerError)
		return
	}
	h.invalidar(r)
	utils.ResponderJSON(w, http.StatusCreated, p)
}

// Update trata PUT /planos/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		http.Error(w, "ID do plano inválido", http.StatusBadRequest)
		return
	}
	var dto PlanoDTO
	if err := utils.DecodificarEValidar(r, &dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	dados := dto.ParaModelo()
	p, err := h.Repo.Atualizar(r.Context(), id, &dados)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Plano não encontrado", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Log.Error("erro ao atualizar plano", zap.Uint("id", id), zap.Error(err))
		http.Error(w, "Erro ao atualizar plano", http.StatusInternalServerError)
		return
	}
	h.invalidar(r)
	utils.ResponderJSON(w, http.StatusOK, p)
}

// Delete trata DELETE /planos/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		http.Error(w, "ID do plano inválido", http.StatusBadRequest)
		return
	}
	err = h.Repo.Deletar(r.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Plano não encontrado", http.StatusNotFound)
		return
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		http.Error(w, "Plano possui vendas cadastradas", http.StatusConflict)
		return
	}
	if err != nil {
		h.Log.Error("erro ao deletar plano", zap.Uint("id", id), zap.Error(err))
		http.Error(w, "Erro ao deletar plano", http.StatusInternalServerError)
		return
	}
	h.invalidar(r)
	w.WriteHeader(http.StatusNoContent)
}
