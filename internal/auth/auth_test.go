package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KromaEnergia/painel-comissoes/internal/utils"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	utils.CustoBcrypt = bcrypt.MinCost
}

func novoBanco(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func novoHandler(t *testing.T) (*Handler, *Usuario) {
	t.Helper()
	db := novoBanco(t)
	u, err := CriarUsuario(context.Background(), db, "Ana", " Ana@Exemplo.com ", "senha-forte", true)
	require.NoError(t, err)
	return NewHandler(db, NovoEmissor("segredo-de-teste", time.Minute), time.Hour, false, zaptest.NewLogger(t)), u
}

func postJSON(t *testing.T, alvo string, corpo any) *http.Request {
	t.Helper()
	b, err := json.Marshal(corpo)
	require.NoError(t, err)
	return httptest.NewRequest(http.MethodPost, alvo, bytes.NewReader(b))
}

func cookieRefresh(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == RefreshCookie {
			return c
		}
	}
	return nil
}

func TestEmissorGeraEValida(t *testing.T) {
	e := NovoEmissor("segredo", time.Minute)

	tok, err := e.GerarAccessToken(7, true)
	require.NoError(t, err)
	claims, err := e.Validar(tok)

	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "7", claims.Subject)
}

func TestEmissorRejeita(t *testing.T) {
	e := NovoEmissor("segredo", time.Minute)
	tok, err := e.GerarAccessToken(1, false)
	require.NoError(t, err)

	_, err = NovoEmissor("outro", time.Minute).Validar(tok)
	assert.Error(t, err, "assinatura com outro segredo")

	expirado := NovoEmissor("segredo", time.Minute)
	expirado.agora = func() time.Time { return time.Now().Add(time.Hour) }
	_, err = expirado.Validar(tok)
	assert.Error(t, err, "token expirado")

	_, err = e.Validar("lixo")
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	e := NovoEmissor("segredo", time.Minute)
	var visto uint
	protegido := e.Middleware(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		visto, _ = UsuarioID(r.Context())
	})))

	rec := httptest.NewRecorder()
	protegido.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	comum, _ := e.GerarAccessToken(2, false)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+comum)
	rec = httptest.NewRecorder()
	protegido.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin, _ := e.GerarAccessToken(3, true)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	rec = httptest.NewRecorder()
	protegido.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(3), visto)
}

func TestLoginRefreshLogout(t *testing.T) {
	h, u := novoHandler(t)

	rec := httptest.NewRecorder()
	h.Login(rec, postJSON(t, "/auth/login", LoginDTO{Email: "ana@exemplo.com", Senha: "senha-forte"}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp RespostaToken
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	claims, err := h.Emissor.Validar(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, 60, resp.ExpiresIn)

	primeiro := cookieRefresh(rec)
	require.NotNil(t, primeiro)
	assert.True(t, primeiro.HttpOnly)

	// rotação
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(primeiro)
	rec = httptest.NewRecorder()
	h.Refresh(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	segundo := cookieRefresh(rec)
	require.NotNil(t, segundo)
	assert.NotEqual(t, primeiro.Value, segundo.Value)

	// reuso do primeiro revoga a família, inclusive o segundo
	req = httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(primeiro)
	rec = httptest.NewRecorder()
	h.Refresh(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(segundo)
	rec = httptest.NewRecorder()
	h.Refresh(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// logout sempre limpa o cookie
	req = httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(segundo)
	rec = httptest.NewRecorder()
	h.Logout(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, cookieRefresh(rec))
	assert.Equal(t, -1, cookieRefresh(rec).MaxAge)
}

func TestLoginCredenciaisInvalidas(t *testing.T) {
	h, _ := novoHandler(t)

	rec := httptest.NewRecorder()
	h.Login(rec, postJSON(t, "/auth/login", LoginDTO{Email: "ana@exemplo.com", Senha: "errada"}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h.Login(rec, postJSON(t, "/auth/login", map[string]string{"email": "não-é-email"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSenhaTemporariaEAlteracao(t *testing.T) {
	h, u := novoHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/usuarios/1/senha-temporaria", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	rec := httptest.NewRecorder()
	h.SenhaTemporaria(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var corpo map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &corpo))
	temporaria := corpo["senha_temporaria"]
	require.Len(t, temporaria, 12)

	rec = httptest.NewRecorder()
	h.Login(rec, postJSON(t, "/auth/login", LoginDTO{Email: "ana@exemplo.com", Senha: temporaria}))
	require.Equal(t, http.StatusOK, rec.Code)
	var resp RespostaToken
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.PrecisaRedefinirSenha)

	req = postJSON(t, "/auth/senha", NovaSenhaDTO{SenhaAtual: temporaria, NovaSenha: "nova-senha-123"})
	req = req.WithContext(context.WithValue(req.Context(), CtxUserID, u.ID))
	rec = httptest.NewRecorder()
	h.AlterarSenha(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	var salvo Usuario
	require.NoError(t, h.DB.First(&salvo, u.ID).Error)
	assert.False(t, salvo.PrecisaRedefinirSenha)
	assert.True(t, utils.CheckSenha(salvo.SenhaHash, "nova-senha-123"))
}

func TestSenhaTemporariaUsuarioInexistente(t *testing.T) {
	h, _ := novoHandler(t)

	req := mux.SetURLVars(httptest.NewRequest(http.MethodPost, "/", nil), map[string]string{"id": "99"})
	rec := httptest.NewRecorder()
	h.SenhaTemporaria(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCriarUsuarioDuplicado(t *testing.T) {
	h, _ := novoHandler(t)

	rec := httptest.NewRecorder()
	h.CriarUsuario(rec, postJSON(t, "/usuarios", UsuarioDTO{Nome: "Bia", Email: "bia@exemplo.com", Senha: "12345678"}))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "senha_hash")

	rec = httptest.NewRecorder()
	h.CriarUsuario(rec, postJSON(t, "/usuarios", UsuarioDTO{Nome: "Bia", Email: "BIA@exemplo.com", Senha: "12345678"}))
	assert.Equal(t, http.StatusConflict, rec.Code)
}
