package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const chaveVersao = "painel:versao"

// Invalidador é implementado por quem precisa descartar painéis já calculados
// quando vendas, planos, consultores ou recebimentos mudam.
type Invalidador interface {
	Invalidar(ctx context.Context) error
}

// Cache guarda painéis calculados no Redis sob uma chave versionada.
// Cada escrita incrementa a versão, então um painel antigo nunca é servido
// depois de uma alteração nos dados.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// Conectar cria o cliente Redis e valida a conexão.
func Conectar(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: ping: %w", err)
	}
	return client, nil
}

// New cria o cache. Um client nil desativa o cache (o loader é sempre chamado).
func New(client *redis.Client, ttl time.Duration, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{client: client, ttl: ttl, log: log.Named("cache")}
}

// Versao retorna a versão corrente, inicializando quando ausente.
func (c *Cache) Versao(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, chaveVersao).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.SetNX(ctx, chaveVersao, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// Chave compõe a chave do painel com a versão corrente.
func (c *Cache) Chave(ctx context.Context, partes ...string) (string, error) {
	joined := strings.Join(partes, ":")
	if c == nil || c.client == nil {
		return joined, nil
	}
	ver, err := c.Versao(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:v%d", joined, ver), nil
}

// BuscarJSON lê o valor em cache ou o produz com o loader, gravando o resultado.
// Retorna true quando o valor veio do cache. Falhas do Redis degradam para o loader;
// chave vazia dispensa o Redis.
func (c *Cache) BuscarJSON(ctx context.Context, chave string, dst any, loader func(context.Context) (any, error)) (bool, error) {
	if loader == nil {
		return false, errors.New("cache: loader obrigatório")
	}
	usar := c != nil && c.client != nil && chave != ""
	if usar {
		raw, err := c.client.Get(ctx, chave).Bytes()
		switch {
		case err == nil:
			if err := json.Unmarshal(raw, dst); err == nil {
				return true, nil
			}
			c.log.Warn("valor em cache corrompido, recalculando", zap.String("chave", chave))
		case !errors.Is(err, redis.Nil):
			c.log.Warn("falha ao ler cache", zap.String("chave", chave), zap.Error(err))
		}
	}

	value, err := loader(ctx)
	if err != nil {
		return false, err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	if usar {
		if err := c.client.Set(ctx, chave, raw, c.ttl).Err(); err != nil {
			c.log.Warn("falha ao gravar cache", zap.String("chave", chave), zap.Error(err))
		}
	}
	return false, json.Unmarshal(raw, dst)
}

// Invalidar incrementa a versão, tornando obsoletas todas as chaves anteriores.
func (c *Cache) Invalidar(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, chaveVersao).Err()
}
