package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Skotchmaster/shop_records/internal/cache"
	"github.com/Skotchmaster/shop_records/internal/config"
	"github.com/Skotchmaster/shop_records/internal/es"
	"github.com/Skotchmaster/shop_records/internal/events"
	"github.com/Skotchmaster/shop_records/internal/httpserver"
	"github.com/Skotchmaster/shop_records/internal/mykafka"
	"github.com/Skotchmaster/shop_records/internal/repo"
	"github.com/Skotchmaster/shop_records/internal/search"
	"github.com/Skotchmaster/shop_records/internal/seed"
	"github.com/Skotchmaster/shop_records/internal/service"
	pkgdb "github.com/Skotchmaster/shop_records/pkg/db"
	"github.com/Skotchmaster/shop_records/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	repository := repo.New(db)

	seedCtx, cancel := context.WithTimeout(logging.IntoContext(context.Background(), logger), 30*time.Second)
	_, err = (&seed.Seeder{Repo: repository}).Bootstrap(seedCtx, cfg.SeedMode)
	cancel()
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}

	var notifiers []events.Notifier
	optional := map[string]httpserver.Pinger{}

	var prod *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		prod, err = mykafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Fatalf("kafka: %v", err)
		}
		notifiers = append(notifiers, prod)
		logger.Info("kafka events enabled", "topic", cfg.KafkaTopic)
	}

	var recordCache *cache.RecordCache
	if cfg.RedisAddr != "" {
		recordCache = cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL)
		optional["redis"] = recordCache
		logger.Info("record cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL.String())
	}

	var searchHTTP *httpserver.SearchHTTP
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		index := &search.Index{ES: esClient, Name: cfg.ESIndex}
		if err := reindex(logger, repository, index); err != nil {
			logger.Error("search reindex failed", "error", err)
		}
		notifiers = append(notifiers, index)
		optional["elasticsearch"] = index
		searchHTTP = &httpserver.SearchHTTP{Index: index}
	}

	e := httpserver.NewServer(logger, &httpserver.Deps{
		Svc:    service.NewShopService(repository, recordCache, notifiers...),
		Health: &httpserver.HealthHTTP{DB: repository, Optional: optional},
		Search: searchHTTP,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if prod != nil {
		if err := prod.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}
	if recordCache != nil {
		if err := recordCache.Close(); err != nil {
			logger.Error("redis close error", "error", err)
		}
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

func reindex(logger *slog.Logger, repository *repo.GormRepo, index *search.Index) error {
	ctx, cancel := context.WithTimeout(logging.IntoContext(context.Background(), logger), time.Minute)
	defer cancel()

	items, err := repository.ShopItems.List(ctx)
	if err != nil {
		return err
	}
	if err := index.Reindex(ctx, items); err != nil {
		return err
	}
	logger.Info("search index rebuilt", "index", index.Name, "items", len(items))
	return nil
}
