package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseData(t *testing.T) {
	casos := map[string]string{
		"2024-03-05":           "2024-03-05",
		" 2024-03-05 ":         "2024-03-05",
		"2024-03-05T23:59:00Z": "2024-03-05",
		"2024-03-05 08:00:00":  "2024-03-05",
	}
	for entrada, esperado := range casos {
		d, ok := ParseData(entrada)
		require.True(t, ok, entrada)
		assert.Equal(t, esperado, d.String())
	}

	for _, invalida := range []string{"", "05/03/2024", "2024-02-30", "ontem"} {
		d, ok := ParseData(invalida)
		assert.False(t, ok, invalida)
		assert.True(t, d.IsZero(), invalida)
	}
}

func TestDataAritmetica(t *testing.T) {
	d := MustData("2024-01-31")

	assert.Equal(t, "2024-03-01", d.AddDias(30).String())
	assert.Equal(t, "2024-02-01", d.AddMeses(1).String())
	assert.Equal(t, "2023-11-01", d.AddMeses(-2).String())
	assert.Equal(t, "2024-01-01", d.InicioDoMes().String())
	assert.Equal(t, "2024-02-29", MustData("2024-02-10").FimDoMes().String())
	assert.Equal(t, 29, MustData("2024-02-01").DiasAte(MustData("2024-03-01")))
	assert.True(t, MustData("2024-01-01").Before(d))

	var zero Data
	assert.True(t, zero.AddDias(5).IsZero())
	assert.True(t, zero.FimDoMes().IsZero())
	assert.Panics(t, func() { MustData("x") })
}

func TestDataJSON(t *testing.T) {
	var v struct {
		A Data `json:"a"`
		B Data `json:"b"`
		C Data `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"2024-05-01","b":"lixo","c":null}`), &v))
	assert.Equal(t, "2024-05-01", v.A.String())
	assert.True(t, v.B.IsZero())
	assert.True(t, v.C.IsZero())

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"2024-05-01","b":null,"c":null}`, string(b))
}

func TestDataScanEValue(t *testing.T) {
	var d Data
	require.NoError(t, d.Scan(time.Date(2024, 7, 9, 15, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-07-09", d.String())

	require.NoError(t, d.Scan([]byte("2024-08-01")))
	assert.Equal(t, "2024-08-01", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())
	assert.Error(t, d.Scan(42))

	v, err := MustData("2024-01-02").Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", v)
	v, err = Data{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestParseDecimal(t *testing.T) {
	casos := map[string]string{
		"1.234,56":   "1234.56",
		"1234,5":     "1234.5",
		"1234.56":    "1234.56",
		"R$ 99,90":   "99.9",
		"-10":        "-10",
		"  300.00  ": "300",
	}
	for entrada, esperado := range casos {
		v, ok := ParseDecimal(entrada)
		require.True(t, ok, entrada)
		assert.Equal(t, esperado, v.String(), entrada)
	}
	for _, invalido := range []string{"", "abc", "R$"} {
		v, ok := ParseDecimal(invalido)
		assert.False(t, ok, invalido)
		assert.True(t, v.IsZero(), invalido)
	}
}

func TestPlanilha(t *testing.T) {
	arquivo := "\xEF\xBB\xBFNúmero Proposta;Valor Plano;Canal\n" +
		"P-1;1.000,50;Site\n" +
		";;\n" +
		"P-2;abc\n"

	p, err := AbrirPlanilha(strings.NewReader(arquivo))
	require.NoError(t, err)
	assert.True(t, p.TemColuna("número proposta"))
	assert.False(t, p.TemColuna("cliente"))

	core, logs := observer.New(zapcore.WarnLevel)
	log := zap.New(core)
	var res ResultadoImportacao

	l, err := p.Proxima()
	require.NoError(t, err)
	assert.Equal(t, 2, l.Numero)
	assert.Equal(t, "P-1", l.Campo("Número Proposta"))
	assert.Equal(t, "1000.5", res.Decimal(l, "valor_plano", log).String())

	l, err = p.Proxima()
	require.NoError(t, err)
	assert.Equal(t, 4, l.Numero, "linha em branco é pulada")
	assert.Equal(t, "", l.Campo("canal"), "coluna ausente na linha")
	assert.True(t, res.Decimal(l, "valor_plano", log).IsZero())
	assert.True(t, res.Decimal(l, "canal", log).IsZero())

	_, err = p.Proxima()
	assert.True(t, errors.Is(err, io.EOF))

	require.Len(t, res.Avisos, 1)
	assert.Contains(t, res.Avisos[0], "linha 4")
	assert.Equal(t, 1, logs.Len())

	res.Ignorar(l, "proposta %s duplicada", "P-2")
	assert.Equal(t, 1, res.Ignorados)
	assert.Equal(t, "linha 4 ignorada: proposta P-2 duplicada", res.Avisos[1])
}

func TestPlanilhaSeparadorVirgula(t *testing.T) {
	p, err := AbrirPlanilha(strings.NewReader("a,b\n\"1,5\",x\n"))
	require.NoError(t, err)
	l, err := p.Proxima()
	require.NoError(t, err)
	assert.Equal(t, "1,5", l.Campo("a"))
	assert.Equal(t, "x", l.Campo("b"))
}

func TestPlanilhaVazia(t *testing.T) {
	_, err := AbrirPlanilha(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrPlanilhaVazia)
}

func TestDecodificarEValidar(t *testing.T) {
	type dto struct {
		Nome  string `json:"nome" validate:"required"`
		Email string `json:"email" validate:"omitempty,email"`
	}

	var ok dto
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nome":"Ana"}`))
	require.NoError(t, DecodificarEValidar(req, &ok))

	var invalido dto
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"x"}`))
	err := DecodificarEValidar(req, &invalido)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Nome (required)")
	assert.Contains(t, err.Error(), "Email (email)")

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.ErrorContains(t, DecodificarEValidar(req, &invalido), "JSON mal formado")
}

func TestIDDaRota(t *testing.T) {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "12"})
	id, err := IDDaRota(req, "id")
	require.NoError(t, err)
	assert.Equal(t, uint(12), id)

	for _, v := range []string{"0", "-1", "abc", ""} {
		req = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": v})
		_, err = IDDaRota(req, "id")
		assert.Error(t, err, v)
	}
}

func TestSenha(t *testing.T) {
	hash, err := HashSenha("segredo")
	require.NoError(t, err)
	assert.True(t, CheckSenha(hash, "segredo"))
	assert.False(t, CheckSenha(hash, "outro"))

	tmp, err := GerarSenhaTemporaria()
	require.NoError(t, err)
	assert.Len(t, tmp, 12)
}

func TestExigirColunas(t *testing.T) {
	p, err := AbrirPlanilha(strings.NewReader("Plano ID;Numero Parcela\n1;1\n"))
	require.NoError(t, err)

	assert.NoError(t, p.ExigirColunas("plano_id", "numero parcela"))
	err = p.ExigirColunas("plano_id", "porcentagem_parcela")
	assert.ErrorIs(t, err, ErrColunaAusente)
	assert.ErrorContains(t, err, "porcentagem_parcela")
}
