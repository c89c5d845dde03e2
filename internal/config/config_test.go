// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvDefaults(t *testing.T) {
	var srv Server
	var hist Historian
	require.NoError(t, ParseEnv(&srv))
	require.NoError(t, ParseEnv(&hist))

	assert.Equal(t, 8080, srv.Port)
	assert.Equal(t, "info", srv.LogLevel)
	assert.Equal(t, time.Duration(0), srv.TokenExpire)
	assert.False(t, srv.EnableHistory)
	assert.Equal(t, 20, hist.BatchSize)
	assert.Equal(t, 500*time.Millisecond, hist.FlushInterval)
	assert.Equal(t, 10*time.Minute, hist.InactivityTimeout)
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_EXPIRE_TIME", "72h")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("HISTORIAN_QUEUE_NAME", "events")

	var srv Server
	var rc Redis
	require.NoError(t, ParseEnv(&srv))
	require.NoError(t, ParseEnv(&rc))
	assert.Equal(t, 9090, srv.Port)
	assert.Equal(t, 72*time.Hour, srv.TokenExpire)
	assert.Equal(t, 3, rc.DB)
	assert.Equal(t, "events", rc.QueueName)
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("PORT", "not-an-int")
	var srv Server
	err := ParseEnv(&srv)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestPostgresDSN(t *testing.T) {
	p := Postgres{User: "mono", Password: "p@ss", Host: "db", Port: 5433, Database: "games"}
	assert.Equal(t, "postgres://mono:p%40ss@db:5433/games", p.DSN())
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug", "json")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	_, err = NewLogger("loud", "text")
	assert.Error(t, err)
	_, err = NewLogger("info", "xml")
	assert.Error(t, err)
}
