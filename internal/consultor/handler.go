package consultor

import (
	"errors"
	"net/http"

	"github.com/KromaEnergia/painel-comissoes/internal/cache"
	"github.com/KromaEnergia/painel-comissoes/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Cache      cache.Invalidador
	Log        *zap.Logger
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB, c cache.Invalidador, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Cache:      c,
		Log:        log.Named("consultor"),
	}
}

func (h *Handler) invalidar(r *http.Request) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.Invalidar(r.Context()); err != nil {
		h.Log.Warn("falha ao invalidar painel", zap.Error(err))
	}
}

// CriarConsultor cadastra novo consultor
func (h *Handler) CriarConsultor(w http.ResponseWriter, r *http.Request) {
	var req ConsultorDTO
	if err := utils.DecodificarEValidar(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c := req.ParaModelo()
	if err := h.Repository.Salvar(h.DB.WithContext(r.Context()), &c); err != nil {
		h.Log.Error("erro ao salvar consultor", zap.Error(err))
		http.Error(w, "erro ao salvar consultor", http.StatusInternalServerError)
		return
	}

	h.invalidar(r)
	utils.ResponderJSON(w, http.StatusCreated, c)
}

// ListarConsultores retorna todos os consultores
func (h *Handler) ListarConsultores(w http.ResponseWriter, r *http.Request) {
	consultores, err := h.Repository.ListarTodos(h.DB.WithContext(r.Context()))
	if err != nil {
		h.Log.Error("erro ao listar consultores", zap.Error(err))
		http.Error(w, "erro ao listar consultores", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, consultores)
}

// BuscarPorID retorna um consultor pelo ID
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	obj, err := h.Repository.BuscarPorID(h.DB.WithContext(r.Context()), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "consultor não encontrado", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Log.Error("erro ao buscar consultor", zap.Uint("id", id), zap.Error(err))
		http.Error(w, "erro ao buscar consultor", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, obj)
}

// AtualizarConsultor altera dados de um consultor existente
func (h *Handler) AtualizarConsultor(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var dados ConsultorDTO
	if err := utils.DecodificarEValidar(r, &dados); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	novo := dados.ParaModelo()
	obj, err := h.Repository.Atualizar(h.DB.WithContext(r.Context()), id, &novo)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "consultor não encontrado", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Log.Error("erro ao atualizar consultor", zap.Uint("id", id), zap.Error(err))
		http.Error(w, "erro ao atualizar consultor", http.StatusInternalServerError)
		return
	}
	h.invalidar(r)
	utils.ResponderJSON(w, http.StatusOK, obj)
}

// DeletarConsultor remove um consultor
func (h *Handler) DeletarConsultor(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	err = h.Repository.Deletar(h.DB.WithContext(r.Context()), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "consultor não encontrado", http.StatusNotFound)
		return
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		http.Error(w, "consultor possui vendas cadastradas", http.StatusConflict)
		return
	}
	if err != nil {
		h.Log.Error("erro ao excluir consultor", zap.Uint("id", id), zap.Error(err))
		http.Error(w, "erro ao excluir consultor", http.StatusInternalServerError)
		return
	}
	h.invalidar(r)
	w.WriteHeader(http.StatusNoContent)
}
