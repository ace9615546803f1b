package recebimento

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/KromaEnergia/painel-comissoes/internal/cache"
	"github.com/KromaEnergia/painel-comissoes/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

/* ============================== Handler & DTOs ============================== */

type Handler struct {
	Repo  *Repository
	Cache cache.Invalidador
	Log   *zap.Logger
}

func NewHandler(repo *Repository, c cache.Invalidador, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Repo: repo, Cache: c, Log: log.Named("recebimento")}
}

// DTO usado no PUT /recebimentos/{id}/baixa
type BaixaDTO struct {
	DataRecebimento string `json:"data_recebimento" validate:"omitempty,datetime=2006-01-02"`
	Status          string `json:"status"`
	NumeroExtrato   string `json:"numero_extrato" validate:"max=100"`
}

// DTO usado no PATCH /recebimentos/{id}/status
type StatusDTO struct {
	Status string `json:"status" validate:"required"`
}

func (h *Handler) invalidar(r *http.Request) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.Invalidar(r.Context()); err != nil {
		h.Log.Warn("falha ao invalidar painel", zap.Error(err))
	}
}

/* ============================== Endpoints ============================== */

// GET /recebimentos?status=&venda=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var f Filtro
	if s := r.URL.Query().Get("status"); s != "" {
		status, ok := NormalizarStatus(s)
		if !ok {
			http.Error(w, "Status inválido. Use 'Pendente', 'Recebido' ou 'Atrasado'.", http.StatusBadRequest)
			return
		}
		f.Status = status
	}
	if v := r.URL.Query().Get("venda"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			http.Error(w, "ID da venda inválido", http.StatusBadRequest)
			return
		}
		f.VendaID = uint(id)
	}

	lista, err := h.Repo.Listar(r.Context(), f)
	if err != nil {
		h.Log.Error("erro ao buscar recebimentos", zap.Error(err))
		http.Error(w, "Erro ao buscar recebimentos", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, lista)
}

// GET /recebimentos/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		http.Error(w, "ID do recebimento inválido", http.StatusBadRequest)
		return
	}
	rec, err := h.Repo.BuscarPorID(r.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Recebimento não encontrado", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Log.Error("erro ao buscar recebimento", zap.Uint("id", id), zap.Error(err))
		http.Error(w, "Erro ao buscar recebimento", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, rec)
}

// PUT /recebimentos/{id}/baixa
// Registra a data de recebimento; as parcelas seguintes da venda são reagendadas.
func (h *Handler) RegistrarBaixa(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		http.Error(w, "ID do recebimento inválido", http.StatusBadRequest)
		return
	}
	var in BaixaDTO
	if err := utils.DecodificarEValidar(r, &in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, _ := utils.ParseData(in.DataRecebimento)
	status := in.Status
	if status == "" && !data.IsZero() {
		status = StatusRecebido
	}
	status, ok := NormalizarStatus(status)
	if !ok {
		http.Error(w, "Status inválido. Use 'Pendente', 'Recebido' ou 'Atrasado'.", http.StatusBadRequest)
		return
	}

	rec, err := h.Repo.RegistrarBaixa(r.Context(), id, Baixa{
		DataRecebimento: data,
		Status:          status,
		NumeroExtrato:   in.NumeroExtrato,
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Recebimento não encontrado", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Log.Error("erro ao registrar recebimento", zap.Uint("id", id), zap.Error(err))
		http.Error(w, "Erro ao registrar recebimento", http.StatusInternalServerError)
		return
	}
	h.invalidar(r)
	utils.ResponderJSON(w, http.StatusOK, rec)
}

// PATCH /recebimentos/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		http.Error(w, "ID do recebimento inválido", http.StatusBadRequest)
		return
	}
	var payload StatusDTO
	if err := utils.DecodificarEValidar(r, &payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	status, ok := NormalizarStatus(payload.Status)
	if !ok {
		http.Error(w, "Status inválido. Use 'Pendente', 'Recebido' ou 'Atrasado'.", http.StatusBadRequest)
		return
	}

	err = h.Repo.AtualizarStatus(r.Context(), id, status)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Recebimento não encontrado", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Log.Error("erro ao atualizar status", zap.Uint("id", id), zap.Error(err))
		http.Error(w, "Erro ao atualizar status do recebimento", http.StatusInternalServerError)
		return
	}
	rec, err := h.Repo.BuscarPorID(r.Context(), id)
	if err != nil {
		http.Error(w, "Erro ao buscar recebimento atualizado", http.StatusInternalServerError)
		return
	}
	h.invalidar(r)
	utils.ResponderJSON(w, http.StatusOK, rec)
}

// DELETE /recebimentos/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		http.Error(w, "ID do recebimento inválido", http.StatusBadRequest)
		return
	}
	err = h.Repo.DeleteByID(r.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Recebimento não encontrado", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Log.Error("erro ao deletar recebimento", zap.Uint("id", id), zap.Error(err))
		http.Error(w, "Erro ao deletar recebimento", http.StatusInternalServerError)
		return
	}
	h.invalidar(r)
	w.WriteHeader(http.StatusNoContent)
}
