package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validar aplica as regras `validate` do struct e devolve uma mensagem legível.
func Validar(v any) error {
	if err := validate.Struct(v); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			campos := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				campos = append(campos, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("campos inválidos: %s", strings.Join(campos, ", "))
		}
		return err
	}
	return nil
}

// ResponderJSON escreve o status e o corpo em JSON.
func ResponderJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// DecodificarEValidar lê o corpo JSON da requisição e valida o destino.
func DecodificarEValidar(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("JSON mal formado: %w", err)
	}
	return Validar(dst)
}

// IDDaRota lê um parâmetro numérico da rota (ex.: {id}).
func IDDaRota(r *http.Request, nome string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[nome], 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("ID inválido")
	}
	return uint(id), nil
}
