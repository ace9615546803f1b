package indicadores

import (
	"context"
	"strconv"
	"time"

	"github.com/KromaEnergia/painel-comissoes/internal/cache"
	"github.com/KromaEnergia/painel-comissoes/internal/utils"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Servico carrega o snapshot e monta os painéis, com cache por filtro.
type Servico struct {
	fonte   Fonte
	cache   *cache.Cache
	log     *zap.Logger
	duracao *prometheus.HistogramVec
	acessos *prometheus.CounterVec
}

// NewServico registra as métricas do painel em reg (nil dispensa métricas).
func NewServico(fonte Fonte, c *cache.Cache, reg prometheus.Registerer, log *zap.Logger) *Servico {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Servico{
		fonte: fonte,
		cache: c,
		log:   log.Named("indicadores"),
		duracao: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "painel_calculo_duracao_segundos",
			Help:    "Tempo para carregar o snapshot e montar um painel.",
			Buckets: prometheus.DefBuckets,
		}, []string{"painel"}),
		acessos: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "painel_cache_total",
			Help: "Consultas ao painel por resultado do cache.",
		}, []string{"painel", "resultado"}),
	}
	if reg != nil {
		reg.MustRegister(s.duracao, s.acessos)
	}
	return s
}

// Indicadores devolve o painel para o filtro, calculado em relação a hoje.
func (s *Servico) Indicadores(ctx context.Context, f Filtro, hoje utils.Data) (Indicadores, error) {
	var ind Indicadores
	err := s.buscar(ctx, "indicadores", &ind, func(ctx context.Context) (any, error) {
		snap, err := CarregarSnapshot(ctx, s.fonte)
		if err != nil {
			return nil, err
		}
		return MontarIndicadores(snap, f, hoje), nil
	}, f.Periodo.Inicio.String(), f.Periodo.Fim.String(), f.PeriodoCanal.Inicio.String(), f.PeriodoCanal.Fim.String(), strconv.Itoa(f.Meses), hoje.String())
	return ind, err
}

// ResumoMensal devolve os cartões de mês atual contra mês anterior.
func (s *Servico) ResumoMensal(ctx context.Context, hoje utils.Data) (ResumoMensal, error) {
	var r ResumoMensal
	err := s.buscar(ctx, "resumo-mensal", &r, func(ctx context.Context) (any, error) {
		vendas, err := s.fonte.ListarVendas(ctx)
		if err != nil {
			return nil, err
		}
		return MontarResumoMensal(vendas, hoje), nil
	}, hoje.String())
	return r, err
}

func (s *Servico) buscar(ctx context.Context, painel string, dst any, montar func(context.Context) (any, error), partes ...string) error {
	inicio := time.Now()
	defer func() {
		s.duracao.WithLabelValues(painel).Observe(time.Since(inicio).Seconds())
	}()

	chave, err := s.cache.Chave(ctx, append([]string{"painel", painel}, partes...)...)
	if err != nil {
		s.log.Warn("falha ao montar chave de cache", zap.String("painel", painel), zap.Error(err))
		chave = ""
	}

	hit, err := s.cache.BuscarJSON(ctx, chave, dst, montar)
	if err != nil {
		return err
	}
	resultado := "miss"
	if hit {
		resultado = "hit"
	}
	s.acessos.WithLabelValues(painel, resultado).Inc()
	return nil
}
