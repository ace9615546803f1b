package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/KromaEnergia/painel-comissoes/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler agrupa login, refresh, logout e gestão de senhas.
type Handler struct {
	DB           *gorm.DB
	Emissor      *Emissor
	RefreshTTL   time.Duration
	CookieSecure bool
	Log          *zap.Logger
}

func NewHandler(db *gorm.DB, e *Emissor, refreshTTL time.Duration, cookieSecure bool, log *zap.Logger) *Handler {
	if refreshTTL <= 0 {
		refreshTTL = 30 * 24 * time.Hour
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{DB: db, Emissor: e, RefreshTTL: refreshTTL, CookieSecure: cookieSecure, Log: log.Named("auth")}
}

type LoginDTO struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

type UsuarioDTO struct {
	Nome    string `json:"nome" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email"`
	Senha   string `json:"senha" validate:"required,min=8"`
	IsAdmin bool   `json:"is_admin"`
}

type NovaSenhaDTO struct {
	SenhaAtual string `json:"senha_atual" validate:"required"`
	NovaSenha  string `json:"nova_senha" validate:"required,min=8,nefield=SenhaAtual"`
}

// Login trata POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := utils.DecodificarEValidar(r, &dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	u, err := buscarPorEmail(r.Context(), h.DB, dto.Email)
	if err != nil || !utils.CheckSenha(u.SenhaHash, dto.Senha) {
		http.Error(w, "Credenciais inválidas", http.StatusUnauthorized)
		return
	}

	access, err := h.emitirTokens(r.Context(), w, u.ID, u.IsAdmin, "")
	if err != nil {
		h.Log.Error("erro ao emitir tokens", zap.Uint("usuario", u.ID), zap.Error(err))
		http.Error(w, "Erro ao autenticar", http.StatusInternalServerError)
		return
	}
	resp := h.resposta(access)
	resp.PrecisaRedefinirSenha = u.PrecisaRedefinirSenha
	utils.ResponderJSON(w, http.StatusOK, resp)
}

// AlterarSenha trata POST /auth/senha para o usuário autenticado.
func (h *Handler) AlterarSenha(w http.ResponseWriter, r *http.Request) {
	id, ok := UsuarioID(r.Context())
	if !ok {
		http.Error(w, "Não autenticado", http.StatusUnauthorized)
		return
	}
	var dto NovaSenhaDTO
	if err := utils.DecodificarEValidar(r, &dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var u Usuario
	if err := h.DB.WithContext(r.Context()).First(&u, id).Error; err != nil {
		http.Error(w, "Usuário não encontrado", http.StatusNotFound)
		return
	}
	if !utils.CheckSenha(u.SenhaHash, dto.SenhaAtual) {
		http.Error(w, "Senha atual incorreta", http.StatusUnauthorized)
		return
	}
	hash, err := utils.HashSenha(dto.NovaSenha)
	if err != nil {
		http.Error(w, "Erro ao alterar senha", http.StatusInternalServerError)
		return
	}
	err = h.DB.WithContext(r.Context()).Model(&u).Updates(map[string]any{
		"senha_hash":              hash,
		"precisa_redefinir_senha": false,
	}).Error
	if err != nil {
		h.Log.Error("erro ao alterar senha", zap.Uint("usuario", id), zap.Error(err))
		http.Error(w, "Erro ao alterar senha", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CriarUsuario trata POST /usuarios (somente administradores).
func (h *Handler) CriarUsuario(w http.ResponseWriter, r *http.Request) {
	var dto UsuarioDTO
	if err := utils.DecodificarEValidar(r, &dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := buscarPorEmail(r.Context(), h.DB, dto.Email); err == nil {
		http.Error(w, "E-mail já cadastrado", http.StatusConflict)
		return
	}
	u, err := CriarUsuario(r.Context(), h.DB, dto.Nome, dto.Email, dto.Senha, dto.IsAdmin)
	if err != nil {
		h.Log.Error("erro ao criar usuário", zap.Error(err))
		http.Error(w, "Erro ao criar usuário", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, u)
}

// SenhaTemporaria trata POST /usuarios/{id}/senha-temporaria (somente administradores):
// gera uma senha nova, exige redefinição no próximo login e revoga as sessões abertas.
func (h *Handler) SenhaTemporaria(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		http.Error(w, "ID do usuário inválido", http.StatusBadRequest)
		return
	}
	senha, err := utils.GerarSenhaTemporaria()
	if err != nil {
		http.Error(w, "Erro ao gerar senha", http.StatusInternalServerError)
		return
	}
	hash, err := utils.HashSenha(senha)
	if err != nil {
		http.Error(w, "Erro ao gerar senha", http.StatusInternalServerError)
		return
	}

	err = h.DB.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Usuario{}).Where("id = ?", id).Updates(map[string]any{
			"senha_hash":              hash,
			"precisa_redefinir_senha": true,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		now := time.Now()
		return tx.Model(&RefreshToken{}).
			Where("user_id = ? AND revoked_at IS NULL", id).
			Update("revoked_at", &now).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Usuário não encontrado", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Log.Error("erro ao gerar senha temporária", zap.Uint("usuario", id), zap.Error(err))
		http.Error(w, "Erro ao gerar senha", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, map[string]string{"senha_temporaria": senha})
}
