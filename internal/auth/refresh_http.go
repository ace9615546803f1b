package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/KromaEnergia/painel-comissoes/internal/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const RefreshCookie = "rt"

// --- Helpers ---

func genRaw() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func hashRaw(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return base64.RawURLEncoding.EncodeToString(h[:])
}

// Em localhost (http) o cookie precisa de Secure=false; em produção use COOKIE_SECURE=true.
func (h *Handler) setRTCookie(w http.ResponseWriter, raw string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    raw,
		Path:     "/auth", // cobre /auth/refresh e /auth/logout
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}

func (h *Handler) clearRTCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    "",
		Path:     "/auth",
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// RespostaToken é o corpo devolvido no login e no refresh.
type RespostaToken struct {
	AccessToken           string `json:"access_token"`
	TokenType             string `json:"token_type"`
	ExpiresIn             int    `json:"expires_in"`
	PrecisaRedefinirSenha bool   `json:"precisa_redefinir_senha,omitempty"`
}

func (h *Handler) resposta(access string) RespostaToken {
	return RespostaToken{AccessToken: access, TokenType: "Bearer", ExpiresIn: int(h.Emissor.AccessTTL.Seconds())}
}

// --- Fluxo ---

// emitirTokens gera o access token e um refresh novo na família indicada (nova quando vazia).
func (h *Handler) emitirTokens(ctx context.Context, w http.ResponseWriter, userID uint, isAdmin bool, familia string) (string, error) {
	access, err := h.Emissor.GerarAccessToken(userID, isAdmin)
	if err != nil {
		return "", err
	}
	raw, err := genRaw()
	if err != nil {
		return "", err
	}
	if familia == "" {
		familia = uuid.NewString()
	}
	rt := RefreshToken{
		UserID:    userID,
		FamilyID:  familia,
		Hash:      hashRaw(raw),
		IsAdmin:   isAdmin,
		ExpiresAt: time.Now().Add(h.RefreshTTL),
	}
	if err := h.DB.WithContext(ctx).Create(&rt).Error; err != nil {
		return "", err
	}
	h.setRTCookie(w, raw, rt.ExpiresAt)
	return access, nil
}

// Refresh trata POST /auth/refresh: revoga o refresh atual e emite outro da mesma família.
// Reapresentar um refresh já revogado revoga a família inteira.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(RefreshCookie)
	if err != nil || c.Value == "" {
		http.Error(w, "Refresh ausente", http.StatusUnauthorized)
		return
	}
	ctx := r.Context()

	var cur RefreshToken
	if err := h.DB.WithContext(ctx).Where("hash = ?", hashRaw(c.Value)).First(&cur).Error; err != nil {
		h.clearRTCookie(w)
		http.Error(w, "Refresh inválido", http.StatusUnauthorized)
		return
	}
	now := time.Now()
	if cur.RevokedAt != nil {
		h.Log.Warn("refresh reutilizado, revogando família", zap.Uint("usuario", cur.UserID), zap.String("familia", cur.FamilyID))
		_ = h.DB.WithContext(ctx).Model(&RefreshToken{}).
			Where("family_id = ? AND revoked_at IS NULL", cur.FamilyID).
			Update("revoked_at", &now).Error
		h.clearRTCookie(w)
		http.Error(w, "Refresh revogado", http.StatusUnauthorized)
		return
	}
	if now.After(cur.ExpiresAt) {
		h.clearRTCookie(w)
		http.Error(w, "Refresh expirado", http.StatusUnauthorized)
		return
	}

	var access string
	err = h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&RefreshToken{}).
			Where("id = ? AND revoked_at IS NULL", cur.ID).
			Update("revoked_at", &now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		tokens := *h
		tokens.DB = tx
		access, err = tokens.emitirTokens(ctx, w, cur.UserID, cur.IsAdmin, cur.FamilyID)
		return err
	})
	if err != nil {
		h.Log.Error("erro ao renovar token", zap.Uint("usuario", cur.UserID), zap.Error(err))
		h.clearRTCookie(w)
		http.Error(w, "Erro ao renovar sessão", http.StatusUnauthorized)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, h.resposta(access))
}

// Logout trata POST /auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(RefreshCookie); err == nil && c.Value != "" {
		now := time.Now()
		_ = h.DB.WithContext(r.Context()).Model(&RefreshToken{}).
			Where("hash = ?", hashRaw(c.Value)).
			Update("revoked_at", &now).Error
	}
	h.clearRTCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
