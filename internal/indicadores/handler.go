package indicadores

import (
	"fmt"
	"net/http"

	"github.com/KromaEnergia/painel-comissoes/internal/utils"
	"go.uber.org/zap"
)

// Handler expõe os painéis em JSON.
type Handler struct {
	Servico *Servico
	Meses   int
	Hoje    func() utils.Data
	Log     *zap.Logger
}

// NewHandler cria o handler; meses é a janela padrão do painel anual.
func NewHandler(s *Servico, meses int, log *zap.Logger) *Handler {
	if meses <= 0 {
		meses = MesesAnual
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Servico: s, Meses: meses, Hoje: utils.Hoje, Log: log.Named("indicadores")}
}

// Get trata GET /indicadores?inicio=&fim=&canal_inicio=&canal_fim=
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	h.responderIndicadores(w, r, h.Meses)
}

// Semestral trata GET /indicadores/semestral, com janela padrão de seis meses.
func (h *Handler) Semestral(w http.ResponseWriter, r *http.Request) {
	h.responderIndicadores(w, r, MesesSemestral)
}

// ResumoMensal trata GET /indicadores/resumo-mensal
func (h *Handler) ResumoMensal(w http.ResponseWriter, r *http.Request) {
	resumo, err := h.Servico.ResumoMensal(r.Context(), h.Hoje())
	if err != nil {
		h.Log.Error("erro ao montar resumo mensal", zap.Error(err))
		http.Error(w, "Erro ao carregar resumo mensal", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, resumo)
}

func (h *Handler) responderIndicadores(w http.ResponseWriter, r *http.Request, meses int) {
	hoje := h.Hoje()
	filtro, err := FiltroDaConsulta(r, FiltroPadrao(hoje, meses))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ind, err := h.Servico.Indicadores(r.Context(), filtro, hoje)
	if err != nil {
		h.Log.Error("erro ao montar indicadores", zap.Error(err))
		http.Error(w, "Erro ao carregar indicadores", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, ind)
}

// FiltroDaConsulta sobrepõe ao padrão as datas informadas na query string.
// Sem canal_inicio/canal_fim o período do canal acompanha o período geral.
func FiltroDaConsulta(r *http.Request, padrao Filtro) (Filtro, error) {
	q := r.URL.Query()
	f := padrao
	var err error
	if f.Periodo.Inicio, err = dataDaConsulta(q.Get("inicio"), padrao.Periodo.Inicio, "inicio"); err != nil {
		return Filtro{}, err
	}
	if f.Periodo.Fim, err = dataDaConsulta(q.Get("fim"), padrao.Periodo.Fim, "fim"); err != nil {
		return Filtro{}, err
	}
	f.PeriodoCanal = f.Periodo
	if f.PeriodoCanal.Inicio, err = dataDaConsulta(q.Get("canal_inicio"), f.Periodo.Inicio, "canal_inicio"); err != nil {
		return Filtro{}, err
	}
	if f.PeriodoCanal.Fim, err = dataDaConsulta(q.Get("canal_fim"), f.Periodo.Fim, "canal_fim"); err != nil {
		return Filtro{}, err
	}
	return f, nil
}

func dataDaConsulta(valor string, padrao utils.Data, nome string) (utils.Data, error) {
	if valor == "" {
		return padrao, nil
	}
	d, ok := utils.ParseData(valor)
	if !ok {
		return utils.Data{}, &ErroParametro{Nome: nome, Valor: valor}
	}
	return d, nil
}

// ErroParametro indica uma data malformada na query string.
type ErroParametro struct {
	Nome  string
	Valor string
}

func (e *ErroParametro) Error() string {
	return fmt.Sprintf("Parâmetro %s inválido (%q): use YYYY-MM-DD", e.Nome, e.Valor)
}
