package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nutritrack/nutritrack/internal/auth"
	"github.com/nutritrack/nutritrack/internal/config"
	"github.com/nutritrack/nutritrack/internal/database"
	"github.com/nutritrack/nutritrack/internal/httpapi"
	"github.com/nutritrack/nutritrack/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	repos := repository.NewManager(db)
	repos.MustValidate()

	logger := auth.DefaultLogger()
	hasher := auth.NewHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService([]byte(cfg.SigningKey), cfg.TokenExpiration, logger)
	auther := auth.NewAuthenticator(repos.Users(), hasher, tokens).WithLogger(logger)

	srv := httpapi.New(cfg, repos, auther, tokens, hasher, httpapi.WithLogger(logger))

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Listen()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errc:
		if err != nil {
			log.Fatalf("server: %v", err)
		}
	case sig := <-stop:
		log.Printf("received %s, shutting down", sig)
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}
}
