package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/UkralStul/comment-engagement-service/internal/config"
	"github.com/UkralStul/comment-engagement-service/internal/events"
	"github.com/UkralStul/comment-engagement-service/internal/handler"
	"github.com/UkralStul/comment-engagement-service/internal/middleware"
	"github.com/UkralStul/comment-engagement-service/internal/service"
	"github.com/UkralStul/comment-engagement-service/internal/storage"
	"github.com/UkralStul/comment-engagement-service/internal/storage/file"
	"github.com/UkralStul/comment-engagement-service/internal/storage/inmemory"
	"github.com/UkralStul/comment-engagement-service/internal/storage/mongo"
	"github.com/UkralStul/comment-engagement-service/internal/storage/postgres"
	redisstore "github.com/UkralStul/comment-engagement-service/internal/storage/redis"
)

func main() {
	// .env может отсутствовать в проде
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	storageType := flag.String("storage", cfg.Storage, "Storage type (file, in-memory, postgres, redis or mongo)")
	seed := flag.Bool("seed", cfg.Seed, "Fill the store with demo data on start")
	flag.Parse()

	logger := cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	ctx := context.Background()

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"storage", *storageType,
	)

	store, closeStore, err := openStore(ctx, cfg, *storageType)
	if err != nil {
		log.Fatalf("failed to open %s storage: %v", *storageType, err)
	}
	defer closeStore()

	hub := events.NewHub(16)
	svc := service.New(storage.NewGuard(store, logger), hub, logger)

	if *seed {
		if err := fillWithMockData(ctx, svc); err != nil {
			log.Fatalf("fillWithMockData: %v", err)
		}
	}

	drifts, err := svc.CheckCounters(ctx)
	if err != nil {
		log.Fatalf("failed to read document: %v", err)
	}
	for _, d := range drifts {
		logger.Warn("counter drift", "detail", d.String())
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(chimw.Recoverer)
	router.Use(middleware.Identity)

	handler.New(svc, hub, logger).Routes(router)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", middleware.UserHeader},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsHandler.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}

func openStore(ctx context.Context, cfg *config.Config, kind string) (storage.DocumentStore, func(), error) {
	noop := func() {}

	switch kind {
	case "file":
		return file.New(cfg.DataFile), noop, nil
	case "in-memory":
		return inmemory.New(), noop, nil
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, nil, errors.New("DATABASE_URL must be set for postgres storage")
		}
		s, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	case "redis":
		s, err := redisstore.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisKey)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	case "mongo":
		s, err := mongo.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close(context.Background()) }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage type %q", kind)
	}
}
