// Comando importar carrega planilhas CSV de planos, parcelas e vendas no banco.
//
//	go run ./cmd/importar -planos planos.csv -parcelas parcelas.csv -vendas vendas.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/KromaEnergia/painel-comissoes/internal/cache"
	"github.com/KromaEnergia/painel-comissoes/internal/config"
	"github.com/KromaEnergia/painel-comissoes/internal/logger"
	"github.com/KromaEnergia/painel-comissoes/internal/plano"
	"github.com/KromaEnergia/painel-comissoes/internal/utils"
	"github.com/KromaEnergia/painel-comissoes/internal/utils/db"
	"github.com/KromaEnergia/painel-comissoes/internal/venda"
	"go.uber.org/zap"
)

type importador func(ctx context.Context, arquivo io.Reader, log *zap.Logger) (utils.ResultadoImportacao, error)

type etapa struct {
	nome    string
	arquivo string
	rodar   importador
}

func main() {
	planos := flag.String("planos", "", "CSV de planos")
	parcelas := flag.String("parcelas", "", "CSV de parcelas dos planos")
	vendas := flag.String("vendas", "", "CSV de vendas")
	flag.Parse()

	if *planos == "" && *parcelas == "" && *vendas == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Carregar()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.Novo(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	database, err := db.GetDB(cfg, log)
	if err != nil {
		log.Fatal("erro ao conectar no banco", zap.Error(err))
	}

	planoRepo := plano.NewRepository(database)
	vendaRepo := venda.NewRepository(database)

	// parcelas e vendas dependem dos planos, então a ordem importa
	etapas := []etapa{
		{"planos", *planos, planoRepo.ImportarPlanos},
		{"parcelas", *parcelas, planoRepo.ImportarParcelas},
		{"vendas", *vendas, vendaRepo.Importar},
	}

	importouAlgo := false
	for _, e := range etapas {
		if e.arquivo == "" {
			continue
		}
		res, err := importarArquivo(ctx, e, log)
		if err != nil {
			log.Fatal("importação interrompida", zap.String("etapa", e.nome), zap.Error(err))
		}
		log.Info("importação concluída",
			zap.String("etapa", e.nome),
			zap.Int("importados", res.Importados),
			zap.Int("ignorados", res.Ignorados),
		)
		for _, aviso := range res.Avisos {
			log.Warn(aviso, zap.String("etapa", e.nome))
		}
		importouAlgo = importouAlgo || res.Importados > 0
	}

	if importouAlgo && cfg.RedisAddr != "" {
		client, err := cache.Conectar(ctx, cfg.RedisAddr)
		if err != nil {
			log.Warn("não foi possível invalidar o cache dos painéis", zap.Error(err))
			return
		}
		defer client.Close()
		if err := cache.New(client, cfg.CacheTTL, log).Invalidar(ctx); err != nil {
			log.Warn("não foi possível invalidar o cache dos painéis", zap.Error(err))
		}
	}
}

func importarArquivo(ctx context.Context, e etapa, log *zap.Logger) (utils.ResultadoImportacao, error) {
	f, err := os.Open(e.arquivo)
	if err != nil {
		return utils.ResultadoImportacao{}, err
	}
	defer f.Close()
	return e.rodar(ctx, f, log.With(zap.String("arquivo", e.arquivo)))
}
