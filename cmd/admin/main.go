// Comando admin cria o primeiro usuário administrador do painel.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/KromaEnergia/painel-comissoes/internal/auth"
	"github.com/KromaEnergia/painel-comissoes/internal/config"
	"github.com/KromaEnergia/painel-comissoes/internal/logger"
	"github.com/KromaEnergia/painel-comissoes/internal/utils/db"
	"go.uber.org/zap"
)

func main() {
	nome := flag.String("nome", "Administrador", "nome do usuário")
	email := flag.String("email", "", "e-mail de login")
	flag.Parse()

	senha := os.Getenv("ADMIN_SENHA")
	if *email == "" || senha == "" {
		fmt.Fprintln(os.Stderr, "uso: ADMIN_SENHA=... admin -email fulano@empresa.com")
		os.Exit(2)
	}

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

	u, err := auth.CriarUsuario(context.Background(), database, *nome, *email, senha, true)
	if err != nil {
		log.Fatal("erro ao criar administrador", zap.Error(err))
	}
	log.Info("administrador criado", zap.Uint("id", u.ID), zap.String("email", u.Email))
}
