package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"

	"chipjack/server/game"
	"chipjack/server/store"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal("bad config", "err", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           parseLevel(cfg.LogLevel),
	})

	var migrateOnly bool
	for _, a := range os.Args[1:] {
		if a == "--migrate" {
			migrateOnly = true
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var st store.Store
	if cfg.DatabaseURL == "" {
		if migrateOnly {
			logger.Fatal("--migrate requires DATABASE_URL")
		}
		logger.Warn("DATABASE_URL not set, using in-memory store")
		st = store.NewMemory()
	} else {
		db, err := store.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("open store", "err", err)
		}
		if migrateOnly || cfg.AutoMigrate {
			if err := store.Migrate(ctx, db); err != nil {
				logger.Fatal("migrate", "err", err)
			}
			logger.Info("migrated")
			if migrateOnly {
				db.Close()
				return
			}
		}
		st = db
	}
	defer st.Close()

	svc := game.NewService(st, game.Config{StartingBalance: cfg.StartingBalance}, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      Router(svc, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shctx)
	}()

	logger.Info("listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server", "err", err)
	}
}

func parseLevel(s string) log.Level {
	lvl, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
