package utils

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	// ErrPlanilhaVazia indica arquivo sem linha de cabeçalho.
	ErrPlanilhaVazia = errors.New("planilha vazia ou sem cabeçalho")
	ErrColunaAusente = errors.New("coluna obrigatória ausente")
)

// Planilha lê um CSV com cabeçalho, acessando as colunas pelo nome.
// O separador (vírgula ou ponto e vírgula) é detectado pela primeira linha.
type Planilha struct {
	leitor    *csv.Reader
	cabecalho map[string]int
	linha     int
}

// Linha é um registro da planilha; Numero conta a partir do cabeçalho (linha 1).
type Linha struct {
	Numero    int
	campos    []string
	cabecalho map[string]int
}

// ResultadoImportacao resume uma importação em lote.
type ResultadoImportacao struct {
	Importados int      `json:"importados"`
	Ignorados  int      `json:"ignorados"`
	Avisos     []string `json:"avisos,omitempty"`
}

// Ignorar contabiliza uma linha descartada com o motivo.
func (r *ResultadoImportacao) Ignorar(l Linha, motivo string, args ...any) {
	r.Ignorados++
	r.Avisos = append(r.Avisos, fmt.Sprintf("linha %d ignorada: %s", l.Numero, fmt.Sprintf(motivo, args...)))
}

// Avisar registra um problema que não impediu a importação da linha.
func (r *ResultadoImportacao) Avisar(l Linha, msg string, args ...any) {
	r.Avisos = append(r.Avisos, fmt.Sprintf("linha %d: %s", l.Numero, fmt.Sprintf(msg, args...)))
}

// AbrirPlanilha prepara a leitura e consome o cabeçalho.
func AbrirPlanilha(r io.Reader) (*Planilha, error) {
	br := bufio.NewReader(r)
	if bom, _ := br.Peek(3); bytes.Equal(bom, []byte{0xEF, 0xBB, 0xBF}) {
		_, _ = br.Discard(3)
	}

	separador := ','
	if primeira, err := br.Peek(br.Size()); err == nil || err == io.EOF || err == bufio.ErrBufferFull {
		if fim := bytes.IndexByte(primeira, '\n'); fim >= 0 {
			primeira = primeira[:fim]
		}
		if bytes.Count(primeira, []byte{';'}) > bytes.Count(primeira, []byte{','}) {
			separador = ';'
		}
	}

	cr := csv.NewReader(br)
	cr.Comma = separador
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	cab, err := cr.Read()
	if err == io.EOF {
		return nil, ErrPlanilhaVazia
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao ler cabeçalho: %w", err)
	}
	p := &Planilha{leitor: cr, cabecalho: make(map[string]int, len(cab)), linha: 1}
	for i, nome := range cab {
		p.cabecalho[normalizarColuna(nome)] = i
	}
	return p, nil
}

// Proxima retorna a próxima linha ou io.EOF ao final do arquivo.
func (p *Planilha) Proxima() (Linha, error) {
	for {
		campos, err := p.leitor.Read()
		if err != nil {
			return Linha{}, err
		}
		p.linha++
		if linhaEmBranco(campos) {
			continue
		}
		return Linha{Numero: p.linha, campos: campos, cabecalho: p.cabecalho}, nil
	}
}

// TemColuna informa se o cabeçalho contém a coluna.
func (p *Planilha) TemColuna(nome string) bool {
	_, ok := p.cabecalho[normalizarColuna(nome)]
	return ok
}

// ExigirColunas falha com ErrColunaAusente na primeira coluna que o cabeçalho não tiver.
func (p *Planilha) ExigirColunas(nomes ...string) error {
	for _, nome := range nomes {
		if !p.TemColuna(nome) {
			return fmt.Errorf("%w: %s", ErrColunaAusente, nome)
		}
	}
	return nil
}

// Campo retorna o valor da coluna, vazio quando ausente.
func (l Linha) Campo(nome string) string {
	i, ok := l.cabecalho[normalizarColuna(nome)]
	if !ok || i >= len(l.campos) {
		return ""
	}
	return strings.TrimSpace(l.campos[i])
}

func normalizarColuna(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "_")
}

func linhaEmBranco(campos []string) bool {
	for _, c := range campos {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Decimal converte a coluna em decimal. Valor vazio é zero; valor não numérico
// também vira zero, com aviso no resultado e no log.
func (r *ResultadoImportacao) Decimal(l Linha, coluna string, log *zap.Logger) decimal.Decimal {
	bruto := l.Campo(coluna)
	if bruto == "" {
		return decimal.Zero
	}
	v, ok := ParseDecimal(bruto)
	if !ok {
		r.Avisar(l, "%s não numérico (%q), considerado zero", coluna, bruto)
		if log != nil {
			log.Warn("valor não numérico na importação",
				zap.Int("linha", l.Numero), zap.String("coluna", coluna), zap.String("valor", bruto))
		}
	}
	return v
}
