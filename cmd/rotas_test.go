package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KromaEnergia/painel-comissoes/internal/auth"
	"github.com/KromaEnergia/painel-comissoes/internal/cache"
	"github.com/KromaEnergia/painel-comissoes/internal/config"
	"github.com/KromaEnergia/painel-comissoes/internal/consultor"
	"github.com/KromaEnergia/painel-comissoes/internal/indicadores"
	"github.com/KromaEnergia/painel-comissoes/internal/observabilidade"
	"github.com/KromaEnergia/painel-comissoes/internal/plano"
	"github.com/KromaEnergia/painel-comissoes/internal/recebimento"
	"github.com/KromaEnergia/painel-comissoes/internal/utils/db"
	"github.com/KromaEnergia/painel-comissoes/internal/venda"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func novoServidor(t *testing.T) (http.Handler, *auth.Emissor) {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.Migrar(database))

	log := zap.NewNop()
	c := cache.New(nil, time.Minute, log)
	m := observabilidade.NewMetrics()
	e := auth.NovoEmissor("segredo", time.Minute)
	cfg := &config.Config{AppEnv: "test", CORSOrigins: []string{"http://localhost:3000"}}

	h := handlers{
		planos:       plano.NewHandler(plano.NewRepository(database), c, log),
		consultores:  consultor.NewHandler(database, c, log),
		vendas:       venda.NewHandler(venda.NewRepository(database), c, log),
		recebimentos: recebimento.NewHandler(recebimento.NewRepository(database), c, log),
		indicadores: indicadores.NewHandler(
			indicadores.NewServico(indicadores.NewFonteBanco(database), c, m.Registerer(), log), 12, log),
		auth: auth.NewHandler(database, e, time.Hour, false, log),
	}
	return novoRouter(cfg, log, m, e, h), e
}

func requisitar(srv http.Handler, metodo, alvo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(metodo, alvo, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestRotasProtegidas(t *testing.T) {
	srv, e := novoServidor(t)

	rec := requisitar(srv, http.MethodGet, "/vendas", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tok, err := e.GerarAccessToken(1, false)
	require.NoError(t, err)

	rec = requisitar(srv, http.MethodGet, "/vendas", tok)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = requisitar(srv, http.MethodGet, "/indicadores", tok)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "faturamento_total")

	rec = requisitar(srv, http.MethodPost, "/usuarios", tok)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRotasPublicas(t *testing.T) {
	srv, _ := novoServidor(t)

	rec := requisitar(srv, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = requisitar(srv, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "painel_http_requests_total")
}
