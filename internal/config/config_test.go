package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarregarPadroes(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo")

	cfg, err := Carregar(filepath.Join(t.TempDir(), "inexistente.env"))

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 12, cfg.PainelMeses)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, "host=localhost user=postgres password=postgres dbname=painel port=5432 sslmode=disable", cfg.DSN())
	assert.False(t, cfg.Producao())
}

func TestCarregarArquivoEnv(t *testing.T) {
	arquivo := filepath.Join(t.TempDir(), ".env")
	conteudo := "JWT_SECRET=do-arquivo\nPAINEL_MESES=6\nCORS_ORIGINS=https://a.com,https://b.com\n"
	require.NoError(t, os.WriteFile(arquivo, []byte(conteudo), 0o600))
	t.Setenv("JWT_SECRET", "do-ambiente")
	for _, k := range []string{"PAINEL_MESES", "CORS_ORIGINS"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Carregar(arquivo)

	require.NoError(t, err)
	assert.Equal(t, "do-ambiente", cfg.JWTSecret, "ambiente tem precedência sobre o .env")
	assert.Equal(t, 6, cfg.PainelMeses)
	assert.Equal(t, []string{"https://a.com", "https://b.com"}, cfg.CORSOrigins)
}

func TestCarregarExigeSegredo(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")

	_, err := Carregar(filepath.Join(t.TempDir(), "inexistente.env"))

	assert.Error(t, err)
}
