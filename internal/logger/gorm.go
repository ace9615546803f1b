package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger envia os logs do GORM para o zap.
type GormLogger struct {
	log           *zap.Logger
	nivel         gormlogger.LogLevel
	consultaLenta time.Duration
}

// NovoGorm cria o adaptador; consultas acima de lenta são registradas como aviso.
func NovoGorm(log *zap.Logger, nivel gormlogger.LogLevel, lenta time.Duration) *GormLogger {
	return &GormLogger{log: log.Named("gorm"), nivel: nivel, consultaLenta: lenta}
}

func (l *GormLogger) LogMode(nivel gormlogger.LogLevel) gormlogger.Interface {
	novo := *l
	novo.nivel = nivel
	return &novo
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.nivel >= gormlogger.Info {
		l.log.Sugar().Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.nivel >= gormlogger.Warn {
		l.log.Sugar().Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.nivel >= gormlogger.Error {
		l.log.Sugar().Errorf(msg, data...)
	}
}

// Trace registra erros (exceto registro não encontrado), consultas lentas e, no nível Info, todas as consultas.
func (l *GormLogger) Trace(ctx context.Context, inicio time.Time, fc func() (string, int64), err error) {
	if l.nivel <= gormlogger.Silent {
		return
	}
	decorrido := time.Since(inicio)
	sql, linhas := fc()
	campos := []zap.Field{
		zap.Duration("elapsed", decorrido),
		zap.Int64("rows", linhas),
		zap.String("sql", sql),
	}
	if id := RequestID(ctx); id != "" {
		campos = append(campos, zap.String("request_id", id))
	}

	switch {
	case err != nil && l.nivel >= gormlogger.Error && !errors.Is(err, gormlogger.ErrRecordNotFound):
		l.log.Error("erro SQL", append(campos, zap.Error(err))...)
	case l.consultaLenta > 0 && decorrido > l.consultaLenta && l.nivel >= gormlogger.Warn:
		l.log.Warn("consulta lenta", campos...)
	case l.nivel >= gormlogger.Info:
		l.log.Debug("consulta SQL", campos...)
	}
}

// NivelGorm mapeia o nível do zap para o do GORM.
func NivelGorm(nivel string) gormlogger.LogLevel {
	switch ParseNivel(nivel) {
	case zap.DebugLevel:
		return gormlogger.Info
	case zap.ErrorLevel:
		return gormlogger.Error
	default:
		return gormlogger.Warn
	}
}
