// internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

// Server configures the HTTP/WebSocket process.
type Server struct {
	Port      int    `env:"PORT"       envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	RulesFile string `env:"RULES_FILE"`

	// TokenExpire of 0 issues seat tokens without an exp claim.
	TokenExpire    time.Duration `env:"TOKEN_EXPIRE_TIME" envDefault:"0"`
	PrivateKeyPath string        `env:"JWT_PRIVATE_KEY_PATH"`
	PublicKeyPath  string        `env:"JWT_PUBLIC_KEY_PATH"`

	// EnableHistory pushes every event to the Redis historian queue.
	EnableHistory bool `env:"ENABLE_HISTORY" envDefault:"false"`
}

type Redis struct {
	Addr      string `env:"REDIS_ADDR"           envDefault:"localhost:6379"`
	DB        int    `env:"REDIS_DB"             envDefault:"0"`
	QueueName string `env:"HISTORIAN_QUEUE_NAME" envDefault:"monopoly_events"`
}

type Postgres struct {
	User     string `env:"POSTGRES_USER"     envDefault:"postgres"`
	Password string `env:"POSTGRES_PASSWORD"`
	Host     string `env:"PG_HOST"           envDefault:"localhost"`
	Port     int    `env:"PG_PORT"           envDefault:"5432"`
	Database string `env:"PG_DATABASE"       envDefault:"monopoly"`
}

// DSN renders a postgres:// connection string.
func (p Postgres) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(p.User, p.Password),
		Host:   fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:   "/" + p.Database,
	}
	return u.String()
}

// Historian configures the event persistence worker.
type Historian struct {
	BatchSize         int           `env:"HISTORIAN_BATCH_SIZE"        envDefault:"20"`
	FlushInterval     time.Duration `env:"HISTORIAN_FLUSH_INTERVAL"    envDefault:"500ms"`
	PopTimeout        time.Duration `env:"HISTORIAN_POP_TIMEOUT"       envDefault:"3s"`
	InactivityTimeout time.Duration `env:"GAME_INACTIVITY_TIMEOUT"     envDefault:"10m"`
	SweepInterval     time.Duration `env:"HISTORIAN_SWEEP_INTERVAL"    envDefault:"1m"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// NewLogger builds a logrus logger at the given level and format ("text" or "json").
func NewLogger(level, format string) (*logrus.Logger, error) {
	logger := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	logger.SetLevel(lvl)
	switch format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return logger, nil
}
