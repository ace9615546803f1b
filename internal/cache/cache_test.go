package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type painelFake struct {
	Total string `json:"total"`
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, time.Minute, zaptest.NewLogger(t))
}

func TestBuscarJSONUsaCacheNaSegundaChamada(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)
	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return painelFake{Total: "10"}, nil
	}

	chave, err := c.Chave(ctx, "indicadores", "2024-01-01", "2024-12-31")
	require.NoError(t, err)

	var first painelFake
	hit, err := c.BuscarJSON(ctx, chave, &first, loader)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "10", first.Total)

	var second painelFake
	hit, err = c.BuscarJSON(ctx, chave, &second, loader)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestInvalidarMudaAChave(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	antes, err := c.Chave(ctx, "indicadores")
	require.NoError(t, err)
	require.NoError(t, c.Invalidar(ctx))
	depois, err := c.Chave(ctx, "indicadores")
	require.NoError(t, err)

	assert.Equal(t, "indicadores:v1", antes)
	assert.Equal(t, "indicadores:v2", depois)
}

func TestCacheSemClienteSempreChamaLoader(t *testing.T) {
	ctx := context.Background()
	c := New(nil, time.Minute, nil)
	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return painelFake{Total: "1"}, nil
	}

	var dst painelFake
	for i := 0; i < 2; i++ {
		hit, err := c.BuscarJSON(ctx, "x", &dst, loader)
		require.NoError(t, err)
		assert.False(t, hit)
	}
	assert.Equal(t, 2, calls)
	assert.NoError(t, c.Invalidar(ctx))
}
