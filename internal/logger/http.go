package logger

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type chaveContexto struct{}

// CabecalhoRequestID é o cabeçalho lido e devolvido com o id da requisição.
const CabecalhoRequestID = "X-Request-ID"

// ComRequestID guarda o id da requisição no contexto.
func ComRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, chaveContexto{}, id)
}

// RequestID lê o id da requisição do contexto.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(chaveContexto{}).(string)
	return id
}

type respostaComStatus struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *respostaComStatus) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *respostaComStatus) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// Middleware atribui um id a cada requisição e registra método, rota, status e duração.
func Middleware(log *zap.Logger) func(http.Handler) http.Handler {
	log = log.Named("http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			inicio := time.Now()
			id := r.Header.Get(CabecalhoRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(CabecalhoRequestID, id)

			rec := &respostaComStatus{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(ComRequestID(r.Context(), id)))

			campos := []zap.Field{
				zap.String("request_id", id),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Int("bytes", rec.bytes),
				zap.Duration("elapsed", time.Since(inicio)),
			}
			if rec.status >= http.StatusInternalServerError {
				log.Error("requisição", campos...)
				return
			}
			log.Info("requisição", campos...)
		})
	}
}
