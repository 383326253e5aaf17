package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sirdesai22/hackathon-docsync/internal/api"
	"github.com/sirdesai22/hackathon-docsync/internal/config"
	"github.com/sirdesai22/hackathon-docsync/internal/db"
	"github.com/sirdesai22/hackathon-docsync/internal/docstore"
	"github.com/sirdesai22/hackathon-docsync/internal/elastic"
	"github.com/sirdesai22/hackathon-docsync/internal/logger"
	"github.com/sirdesai22/hackathon-docsync/internal/metrics"
	"github.com/sirdesai22/hackathon-docsync/internal/services"
	"github.com/sirdesai22/hackathon-docsync/internal/source"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ invalid configuration")
	}
	logger.Configure(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sqlDB, err := db.Connect(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ relational store unavailable")
	}
	if err := db.Migrate(sqlDB); err != nil {
		logger.Fatal().Err(err).Msg("❌ schema migration failed")
	}
	if cfg.SeedDemo {
		if err := db.Seed(sqlDB); err != nil {
			logger.Fatal().Err(err).Msg("❌ seeding failed")
		}
	}

	metrics.Register()

	runs := services.NewRunLedger(sqlDB)
	migrator := &services.Migrator{
		Reader: source.NewReader(sqlDB),
		Runs:   runs,
		Legacy: cfg.LegacyCollections,
	}
	h := &api.Handler{
		Migrator: migrator,
		SQL:      services.NewSQL(sqlDB),
		Runs:     runs,
	}

	// The service keeps serving the relational endpoints without MongoDB.
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	docs, err := docstore.Connect(connectCtx, cfg.MongoURI, cfg.MongoDatabase)
	cancel()
	if err != nil {
		logger.Warn().Err(err).Msg("⚠️ MongoDB unavailable, document endpoints will return 503")
	} else {
		migrator.Writer = docs
		h.Docs = docs
		defer func() {
			if err := docs.Close(context.Background()); err != nil {
				logger.Warn().Err(err).Msg("⚠️ MongoDB disconnect failed")
			}
		}()
	}

	if cfg.ElasticURL != "" {
		esClient, err := elastic.Connect(cfg.ElasticURL)
		if err == nil {
			err = elastic.EnsureIndex(ctx, esClient)
		}
		if err != nil {
			logger.Warn().Err(err).Msg("⚠️ Elasticsearch unavailable, search mirror disabled")
		} else {
			mirror := elastic.NewMirror(esClient)
			migrator.Mirror = mirror
			h.Search = mirror
		}
	}

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	h.Register(mux)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           corsMiddleware.Handler(api.LogRequests(mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("❌ graceful shutdown failed")
		}
	}()

	logger.Info().Str("addr", cfg.HTTPAddr).Msg("🧭 API running")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("❌ API listener failed")
	}
	logger.Info().Msg("👋 shut down")
}
