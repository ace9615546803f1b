package logger

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestParseNivel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseNivel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseNivel("warning"))
	assert.Equal(t, zapcore.InfoLevel, ParseNivel("qualquer"))
	assert.Equal(t, gormlogger.Info, NivelGorm("debug"))
	assert.Equal(t, gormlogger.Warn, NivelGorm("info"))
}

func TestMiddlewareGeraRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	var idNoHandler string
	h := Middleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idNoHandler = RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vendas", nil))

	require.NotEmpty(t, idNoHandler)
	assert.Equal(t, idNoHandler, rec.Header().Get(CabecalhoRequestID))
	require.Equal(t, 1, logs.Len())
	campos := logs.All()[0].ContextMap()
	assert.Equal(t, int64(http.StatusTeapot), campos["status"])
	assert.Equal(t, "/vendas", campos["path"])
}

func TestMiddlewareReaproveitaRequestID(t *testing.T) {
	h := Middleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(CabecalhoRequestID, "abc-123")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(CabecalhoRequestID))
}

func TestGormLoggerTrace(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	gl := NovoGorm(zap.New(core), gormlogger.Warn, 100*time.Millisecond)
	ctx := ComRequestID(context.Background(), "req-1")
	sql := func() (string, int64) { return "SELECT 1", 1 }

	gl.Trace(ctx, time.Now(), sql, gormlogger.ErrRecordNotFound)
	assert.Zero(t, logs.Len(), "registro não encontrado é ignorado")

	gl.Trace(ctx, time.Now(), sql, errors.New("falhou"))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
	assert.Equal(t, "req-1", logs.All()[0].ContextMap()["request_id"])

	gl.Trace(ctx, time.Now().Add(-time.Second), sql, nil)
	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "consulta lenta", logs.All()[1].Message)

	gl.Trace(ctx, time.Now(), sql, nil)
	assert.Equal(t, 2, logs.Len(), "consulta rápida não aparece no nível Warn")
}
