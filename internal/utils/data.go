package utils

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// LayoutData é o formato ISO-8601 usado nos campos de data da API (YYYY-MM-DD).
const LayoutData = "2006-01-02"

// Data representa uma data de calendário, sem hora nem fuso.
// O valor zero significa data ausente ou inválida.
type Data struct {
	t time.Time
}

// NovaData monta uma Data a partir de ano, mês e dia. Valores fora do intervalo
// são normalizados como em time.Date (ex.: dia 0 = último dia do mês anterior).
func NovaData(ano int, mes time.Month, dia int) Data {
	return Data{t: time.Date(ano, mes, dia, 0, 0, 0, 0, time.UTC)}
}

// DataDe extrai a data de calendário de um instante, no fuso do próprio instante.
func DataDe(t time.Time) Data {
	if t.IsZero() {
		return Data{}
	}
	return NovaData(t.Year(), t.Month(), t.Day())
}

// Hoje retorna a data local corrente.
func Hoje() Data {
	return DataDe(time.Now())
}

// ParseData interpreta "YYYY-MM-DD" ou um timestamp RFC3339 (usa apenas a parte da data).
// Retorna false quando o valor não é uma data válida.
func ParseData(s string) (Data, bool) {
	s = strings.TrimSpace(s)
	if len(s) > len(LayoutData) && (s[len(LayoutData)] == 'T' || s[len(LayoutData)] == ' ') {
		s = s[:len(LayoutData)]
	}
	t, err := time.Parse(LayoutData, s)
	if err != nil {
		return Data{}, false
	}
	return DataDe(t), true
}

// MustData é usado em testes e constantes; entra em pânico com datas inválidas.
func MustData(s string) Data {
	d, ok := ParseData(s)
	if !ok {
		panic(fmt.Sprintf("data inválida: %q", s))
	}
	return d
}

func (d Data) IsZero() bool       { return d.t.IsZero() }
func (d Data) Ano() int           { return d.t.Year() }
func (d Data) Mes() time.Month    { return d.t.Month() }
func (d Data) Dia() int           { return d.t.Day() }
func (d Data) Time() time.Time    { return d.t }
func (d Data) Before(o Data) bool { return d.t.Before(o.t) }
func (d Data) After(o Data) bool  { return d.t.After(o.t) }
func (d Data) Equal(o Data) bool  { return d.t.Equal(o.t) }

// AddDias soma n dias de calendário.
func (d Data) AddDias(n int) Data {
	if d.IsZero() {
		return d
	}
	return Data{t: d.t.AddDate(0, 0, n)}
}

// AddMeses desloca n meses mantendo o dia 1, evitando o transbordo de fim de mês.
func (d Data) AddMeses(n int) Data {
	if d.IsZero() {
		return d
	}
	return NovaData(d.Ano(), d.Mes()+time.Month(n), 1)
}

// InicioDoMes retorna o primeiro dia do mês da data.
func (d Data) InicioDoMes() Data {
	if d.IsZero() {
		return d
	}
	return NovaData(d.Ano(), d.Mes(), 1)
}

// FimDoMes retorna o último dia do mês da data.
func (d Data) FimDoMes() Data {
	if d.IsZero() {
		return d
	}
	return NovaData(d.Ano(), d.Mes()+1, 0)
}

// DiasAte retorna o número de dias de calendário entre d e o.
func (d Data) DiasAte(o Data) int {
	return int(o.t.Sub(d.t).Hours() / 24)
}

func (d Data) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(LayoutData)
}

func (d Data) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON é tolerante: valores nulos ou malformados resultam em Data zero.
func (d *Data) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*d = Data{}
		return nil
	}
	*d, _ = ParseData(s)
	return nil
}

// Scan implementa sql.Scanner.
func (d *Data) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = Data{}
	case time.Time:
		*d = DataDe(v)
	case string:
		*d, _ = ParseData(v)
	case []byte:
		*d, _ = ParseData(string(v))
	default:
		return fmt.Errorf("utils.Data: tipo não suportado %T", value)
	}
	return nil
}

// Value implementa driver.Valuer.
func (d Data) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// GormDataType informa ao gorm o tipo da coluna.
func (d Data) GormDataType() string {
	return "date"
}
