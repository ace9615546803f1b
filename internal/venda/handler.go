package venda

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/KromaEnergia/painel-comissoes/internal/cache"
	"github.com/KromaEnergia/painel-comissoes/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler gerencia as rotas de vendas.
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
	return &Handler{Repo: repo, Cache: c, Log: log.Named("venda")}
}

func (h *Handler) invalidar(r *http.Request) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.Invalidar(r.Context()); err != nil {
		h.Log.Warn("falha ao invalidar painel", zap.Error(err))
	}
}

// List trata GET /vendas e GET /vendas?consultor={id}
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var (
		vendas []Venda
		err    error
	)
	if c := r.URL.Query().Get("consultor"); c != "" {
		id, convErr := strconv.ParseUint(c, 10, 64)
		if convErr != nil {
			http.Error(w, "Parâmetro consultor inválido", http.StatusBadRequest)
			return
		}
		vendas, err = h.Repo.ListarPorConsultor(r.Context(), uint(id))
	} else {
		vendas, err = h.Repo.ListarTodos(r.Context())
	}
	if err != nil {
		h.Log.Error("erro ao listar vendas", zap.Error(err))
		http.Error(w, "Erro ao listar vendas", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, vendas)
}

// Get trata GET /vendas/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		http.Error(w, "ID da venda inválido", http.StatusBadRequest)
		return
	}
	v, err := h.Repo.BuscarPorID(r.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Venda não encontrada", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Log.Error("erro ao buscar venda", zap.Uint("id", id), zap.Error(err))
		http.Error(w, "Erro ao buscar venda", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, v)
}

func (h *Handler) lerVenda(w http.ResponseWriter, r *http.Request) (Venda, bool) {
	var dto VendaDTO
	if err := utils.DecodificarEValidar(r, &dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return Venda{}, false
	}
	v := dto.ParaModelo()
	if !CanalValido(v.CanalEntrada) {
		http.Error(w, "Canal de entrada inválido", http.StatusBadRequest)
		return Venda{}, false
	}
	return v, true
}

// Create trata POST /vendas. Gera as parcelas de recebimento a partir do plano.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	v, ok := h.lerVenda(w, r)
	if !ok {
		return
	}
	existe, err := h.Repo.ExisteProposta(r.Context(), v.NumeroProposta)
	if err != nil {
		h.Log.Error("erro ao verificar proposta", zap.Error(err))
		http.Error(w, "Erro ao criar venda", http.StatusInternalServerError)
		return
	}
	if existe {
		http.Error(w, "Já existe venda com este número de proposta", http.StatusConflict)
		return
	}

	err = h.Repo.Salvar(r.Context(), &v)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Plano ou consultor não encontrado", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.Log.Error("erro ao criar venda", zap.String("proposta", v.NumeroProposta), zap.Error(err))
		http.Error(w, "Erro ao criar venda", http.StatusInternalServerError)
		return
	}
	h.invalidar(r)
	utils.ResponderJSON(w, http.StatusCreated, v)
}

// Update trata PUT /vendas/{id}. O cronograma de recebimentos é recriado.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		http.Error(w, "ID da venda inválido", http.StatusBadRequest)
		return
	}
	v, ok := h.lerVenda(w, r)
	if !ok {
		return
	}
	if _, err := h.Repo.BuscarPorID(r.Context(), id); errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Venda não encontrada", http.StatusNotFound)
		return
	} else if err != nil {
		h.Log.Error("erro ao buscar venda", zap.Uint("id", id), zap.Error(err))
		http.Error(w, "Erro ao buscar venda", http.StatusInternalServerError)
		return
	}

	v.ID = id
	err = h.Repo.Salvar(r.Context(), &v)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Plano ou consultor não encontrado", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.Log.Error("erro ao atualizar venda", zap.Uint("id", id), zap.Error(err))
		http.Error(w, "Erro ao atualizar venda", http.StatusInternalServerError)
		return
	}
	h.invalidar(r)
	utils.ResponderJSON(w, http.StatusOK, v)
}

// Delete trata DELETE /vendas/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		http.Error(w, "ID da venda inválido", http.StatusBadRequest)
		return
	}
	err = h.Repo.Deletar(r.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Venda não encontrada", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Log.Error("erro ao deletar venda", zap.Uint("id", id), zap.Error(err))
		http.Error(w, "Erro ao deletar venda", http.StatusInternalServerError)
		return
	}
	h.invalidar(r)
	w.WriteHeader(http.StatusNoContent)
}
