// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jason-s-yu/monopoly/internal/auth"
	"github.com/jason-s-yu/monopoly/internal/cache"
	"github.com/jason-s-yu/monopoly/internal/config"
	"github.com/jason-s-yu/monopoly/internal/game"
	"github.com/jason-s-yu/monopoly/internal/handlers"
	"github.com/jason-s-yu/monopoly/internal/middleware"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	var cfg config.Server
	if err := config.ParseEnv(&cfg); err != nil {
		log.Fatal(err)
	}
	logger, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.PrivateKeyPath != "" {
		err = auth.InitFromPath(cfg.PrivateKeyPath, cfg.PublicKeyPath, cfg.TokenExpire)
	} else {
		err = auth.Init(cfg.TokenExpire)
	}
	if err != nil {
		logger.Fatalf("init auth keys: %v", err)
	}

	rules, err := game.LoadRules(cfg.RulesFile)
	if err != nil {
		logger.Fatalf("load rules: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gs := handlers.NewGameServer(rules, logger)
	if cfg.EnableHistory {
		var rcfg config.Redis
		if err := config.ParseEnv(&rcfg); err != nil {
			logger.Fatal(err)
		}
		rdb, err := cache.ConnectRedis(ctx, rcfg)
		if err != nil {
			logger.Fatalf("connect redis: %v", err)
		}
		defer rdb.Close()
		gs.History = cache.NewEventSink(rdb, rcfg.QueueName, logger)
		logger.Infof("publishing game events to redis queue %s", rcfg.QueueName)
	}

	mux := http.NewServeMux()
	logged := middleware.LogMiddleware(logger)

	// game endpoints
	mux.Handle("/game/create", logged(handlers.CreateGameHandler(gs)))
	mux.Handle("/game/list", logged(handlers.ListGamesHandler(gs)))

	// game websocket
	mux.Handle("/game/ws/", logged(handlers.GameWSHandler(logger, gs)))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Infof("Running on %s", server.Addr)
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("server exited: %v", err)
		}
	case <-ctx.Done():
		logger.Info("terminating")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	gs.Shutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("shutdown: %v", err)
	}
}
