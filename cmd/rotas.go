package main

import (
	"net/http"
	"time"

	"github.com/KromaEnergia/painel-comissoes/internal/auth"
	"github.com/KromaEnergia/painel-comissoes/internal/config"
	"github.com/KromaEnergia/painel-comissoes/internal/consultor"
	"github.com/KromaEnergia/painel-comissoes/internal/indicadores"
	"github.com/KromaEnergia/painel-comissoes/internal/logger"
	"github.com/KromaEnergia/painel-comissoes/internal/observabilidade"
	"github.com/KromaEnergia/painel-comissoes/internal/plano"
	"github.com/KromaEnergia/painel-comissoes/internal/recebimento"
	"github.com/KromaEnergia/painel-comissoes/internal/venda"
	"github.com/go-chi/httprate"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

type handlers struct {
	planos       *plano.Handler
	consultores  *consultor.Handler
	vendas       *venda.Handler
	recebimentos *recebimento.Handler
	indicadores  *indicadores.Handler
	auth         *auth.Handler
}

func novoRouter(cfg *config.Config, log *zap.Logger, metrics *observabilidade.Metrics, emissor *auth.Emissor, h handlers) http.Handler {
	r := mux.NewRouter()
	r.Use(metrics.Middleware)

	r.Handle("/metrics", metrics.Handler()).Methods("GET")
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods("GET")

	// Autenticação pública
	limiteLogin := httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP))
	r.Handle("/auth/login", limiteLogin(http.HandlerFunc(h.auth.Login))).Methods("POST")
	r.HandleFunc("/auth/refresh", h.auth.Refresh).Methods("POST")
	r.HandleFunc("/auth/logout", h.auth.Logout).Methods("POST")

	api := r.NewRoute().Subrouter()
	api.Use(emissor.Middleware)

	api.HandleFunc("/auth/senha", h.auth.AlterarSenha).Methods("POST")

	// Planos
	api.HandleFunc("/planos", h.planos.List).Methods("GET")
	api.HandleFunc("/planos", h.planos.Create).Methods("POST")
	api.HandleFunc("/planos/exportar", h.planos.Exportar).Methods("GET")
	api.HandleFunc("/planos/{id}", h.planos.Get).Methods("GET")
	api.HandleFunc("/planos/{id}", h.planos.Update).Methods("PUT")
	api.HandleFunc("/planos/{id}", h.planos.Delete).Methods("DELETE")

	// Consultores
	api.HandleFunc("/consultores", h.consultores.CriarConsultor).Methods("POST")
	api.HandleFunc("/consultores", h.consultores.ListarConsultores).Methods("GET")
	api.HandleFunc("/consultores/{id}", h.consultores.BuscarPorID).Methods("GET")
	api.HandleFunc("/consultores/{id}", h.consultores.AtualizarConsultor).Methods("PUT")
	api.HandleFunc("/consultores/{id}", h.consultores.DeletarConsultor).Methods("DELETE")

	// Vendas
	api.HandleFunc("/vendas", h.vendas.List).Methods("GET")
	api.HandleFunc("/vendas", h.vendas.Create).Methods("POST")
	api.HandleFunc("/vendas/{id}", h.vendas.Get).Methods("GET")
	api.HandleFunc("/vendas/{id}", h.vendas.Update).Methods("PUT")
	api.HandleFunc("/vendas/{id}", h.vendas.Delete).Methods("DELETE")

	// Recebimentos
	api.HandleFunc("/recebimentos", h.recebimentos.List).Methods("GET")
	api.HandleFunc("/recebimentos/{id}", h.recebimentos.Get).Methods("GET")
	api.HandleFunc("/recebimentos/{id}/baixa", h.recebimentos.RegistrarBaixa).Methods("PUT")
	api.HandleFunc("/recebimentos/{id}/status", h.recebimentos.UpdateStatus).Methods("PATCH")
	api.HandleFunc("/recebimentos/{id}", h.recebimentos.Delete).Methods("DELETE")

	// Painéis
	api.HandleFunc("/indicadores", h.indicadores.Get).Methods("GET")
	api.HandleFunc("/indicadores/semestral", h.indicadores.Semestral).Methods("GET")
	api.HandleFunc("/indicadores/resumo-mensal", h.indicadores.ResumoMensal).Methods("GET")

	// Administração de usuários
	admin := api.NewRoute().Subrouter()
	admin.Use(auth.RequireAdmin)
	admin.HandleFunc("/usuarios", h.auth.CriarUsuario).Methods("POST")
	admin.HandleFunc("/usuarios/{id}/senha-temporaria", h.auth.SenhaTemporaria).Methods("POST")

	seguranca := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        cfg.Producao(),
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", logger.CabecalhoRequestID},
		ExposedHeaders:   []string{logger.CabecalhoRequestID},
		AllowCredentials: true,
	})

	return logger.Middleware(log)(c.Handler(seguranca.Handler(r)))
}
