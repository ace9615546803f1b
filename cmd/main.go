package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KromaEnergia/painel-comissoes/internal/auth"
	"github.com/KromaEnergia/painel-comissoes/internal/cache"
	"github.com/KromaEnergia/painel-comissoes/internal/config"
	"github.com/KromaEnergia/painel-comissoes/internal/consultor"
	"github.com/KromaEnergia/painel-comissoes/internal/indicadores"
	"github.com/KromaEnergia/painel-comissoes/internal/logger"
	"github.com/KromaEnergia/painel-comissoes/internal/observabilidade"
	"github.com/KromaEnergia/painel-comissoes/internal/plano"
	"github.com/KromaEnergia/painel-comissoes/internal/recebimento"
	"github.com/KromaEnergia/painel-comissoes/internal/utils/db"
	"github.com/KromaEnergia/painel-comissoes/internal/venda"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Carregar()
	if err != nil {
		zap.NewExample().Fatal("erro ao carregar configuração", zap.Error(err))
	}

	log := logger.Novo(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	database, err := db.GetDB(cfg, log)
	if err != nil {
		log.Fatal("erro ao conectar no banco", zap.Error(err))
	}

	var client *redis.Client
	if cfg.RedisAddr != "" {
		client, err = cache.Conectar(ctx, cfg.RedisAddr)
		if err != nil {
			log.Warn("redis indisponível, painéis sem cache", zap.Error(err))
			client = nil
		} else {
			defer client.Close()
		}
	}
	painelCache := cache.New(client, cfg.CacheTTL, log)

	metrics := observabilidade.NewMetrics()
	emissor := auth.NovoEmissor(cfg.JWTSecret, cfg.AccessTTL)

	h := handlers{
		planos:       plano.NewHandler(plano.NewRepository(database), painelCache, log),
		consultores:  consultor.NewHandler(database, painelCache, log),
		vendas:       venda.NewHandler(venda.NewRepository(database), painelCache, log),
		recebimentos: recebimento.NewHandler(recebimento.NewRepository(database), painelCache, log),
		indicadores: indicadores.NewHandler(
			indicadores.NewServico(indicadores.NewFonteBanco(database), painelCache, metrics.Registerer(), log),
			cfg.PainelMeses, log,
		),
		auth: auth.NewHandler(database, emissor, cfg.RefreshTTL, cfg.CookieSecure, log),
	}

	server := &http.Server{
		Addr:              cfg.AppAddr,
		Handler:           novoRouter(cfg, log, metrics, emissor, h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("servidor iniciado", zap.String("addr", cfg.AppAddr), zap.String("env", cfg.AppEnv))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("servidor encerrado com erro", zap.Error(err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("encerrando servidor")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("erro no graceful shutdown", zap.Error(err))
	}
}
