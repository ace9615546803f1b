package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config reúne a configuração lida do ambiente (e do .env, quando existir).
type Config struct {
	AppEnv  string `envconfig:"APP_ENV" default:"development"`
	AppAddr string `envconfig:"APP_ADDR" default:":8080"`

	DBHost            string `envconfig:"DB_HOST" default:"localhost"`
	DBPort            uint   `envconfig:"DB_PORT" default:"5432"`
	DBName            string `envconfig:"DB_NAME" default:"painel"`
	DBUser            string `envconfig:"DB_USER" default:"postgres"`
	DBPassword        string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBSSLModeDisabled bool   `envconfig:"DB_SSL_MODE_DISABLE" default:"true"`

	RedisAddr string        `envconfig:"REDIS_ADDR"`
	CacheTTL  time.Duration `envconfig:"CACHE_TTL" default:"10m"`

	JWTSecret    string        `envconfig:"JWT_SECRET" required:"true"`
	AccessTTL    time.Duration `envconfig:"ACCESS_TTL" default:"15m"`
	RefreshTTL   time.Duration `envconfig:"REFRESH_TTL" default:"720h"`
	CookieSecure bool          `envconfig:"COOKIE_SECURE" default:"false"`
	CORSOrigins  []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`

	PainelMeses int `envconfig:"PAINEL_MESES" default:"12"`
}

// Carregar lê o .env (ausente é ignorado) e processa as variáveis de ambiente.
func Carregar(arquivos ...string) (*Config, error) {
	if len(arquivos) == 0 {
		arquivos = []string{".env"}
	}
	_ = godotenv.Load(arquivos...)

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("configuração: %w", err)
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, errors.New("JWT_SECRET não pode ser vazio")
	}
	if cfg.PainelMeses < 1 {
		return nil, errors.New("PAINEL_MESES deve ser positivo")
	}
	return &cfg, nil
}

// DSN monta a string de conexão do Postgres.
func (c *Config) DSN() string {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
	if c.DBSSLModeDisabled {
		dsn += " sslmode=disable"
	}
	return dsn
}

// Producao indica se a aplicação roda em produção.
func (c *Config) Producao() bool {
	return c != nil && c.AppEnv == "production"
}
