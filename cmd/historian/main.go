// cmd/historian/main.go is an asynchronous historian service that pops game events from a
// Redis queue and persists them to PostgreSQL.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jason-s-yu/monopoly/internal/cache"
	"github.com/jason-s-yu/monopoly/internal/config"
	"github.com/jason-s-yu/monopoly/internal/database"
	"github.com/jason-s-yu/monopoly/internal/historian"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	var (
		srv  config.Server
		rcfg config.Redis
		pcfg config.Postgres
		hcfg config.Historian
	)
	for _, target := range []any{&srv, &rcfg, &pcfg, &hcfg} {
		if err := config.ParseEnv(target); err != nil {
			log.Fatal(err)
		}
	}
	logger, err := config.NewLogger(srv.LogLevel, srv.LogFormat)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.ConnectDB(ctx, pcfg)
	if err != nil {
		logger.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()
	if err := database.EnsureSchema(ctx, pool); err != nil {
		logger.Fatalf("ensure schema: %v", err)
	}

	rdb, err := cache.ConnectRedis(ctx, rcfg)
	if err != nil {
		logger.Fatalf("connect redis: %v", err)
	}
	defer rdb.Close()

	svc := historian.New(
		historian.NewRedisQueue(rdb, rcfg.QueueName),
		historian.NewPostgresStore(pool),
		hcfg,
		logger,
	)
	logger.WithField("queue", rcfg.QueueName).Info("historian connected")
	svc.Run(ctx)
}
