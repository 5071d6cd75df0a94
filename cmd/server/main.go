package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"nav-eval-service/internal/adapters/cache"
	"nav-eval-service/internal/adapters/repositories"
	"nav-eval-service/internal/api"
	"nav-eval-service/internal/config"
	"nav-eval-service/internal/platform/db"
	"nav-eval-service/internal/ports"
	"nav-eval-service/internal/services"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Postgres, Redis) behind ports and starts the HTTP server.
func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	sqliteDB, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer sqliteDB.Close()

	// Initialize schema and seed reference routes on startup for local runs.
	if err := initAndSeed(sqliteDB, cfg.SeedPath); err != nil {
		log.Fatal(err)
	}

	evalCache, closeCache, err := openEvaluationCache(cfg, sqliteDB)
	if err != nil {
		log.Fatal(err)
	}
	defer closeCache()

	evaluator := services.NewEvaluator(evalCache, cfg.Workers)
	samples := repositories.NewSqliteSampleRepository(sqliteDB)
	results := repositories.NewSqliteResultRepository(sqliteDB)
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), int(cfg.RateLimit)+1)

	router := api.NewRouter(samples, results, evaluator, sqliteDB, limiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if err := run(srv); err != nil {
		log.Fatal(err)
	}
}

// run serves until SIGINT/SIGTERM and then shuts down gracefully.
func run(srv *http.Server) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("Server listening addr=%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
		log.Println("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server exited")
	return nil
}

// openEvaluationCache picks Redis when REDIS_ADDR is set, then Postgres when
// DATABASE_URL is set, and falls back to the local SQLite database.
func openEvaluationCache(cfg *config.Config, sqliteDB *sql.DB) (ports.EvaluationCache, func(), error) {
	switch {
	case cfg.RedisAddr != "":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("open evaluation cache: ping redis %q: %w", cfg.RedisAddr, err)
		}
		log.Printf("Evaluation cache backend=redis addr=%s ttl=%s", cfg.RedisAddr, cfg.CacheTTL)
		return cache.NewRedisEvaluationCache(client, cfg.CacheTTL), func() { _ = client.Close() }, nil

	case cfg.DatabaseURL != "":
		pg, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open evaluation cache: %w", err)
		}
		if err := repositories.InitSchema(pg); err != nil {
			_ = pg.Close()
			return nil, nil, fmt.Errorf("open evaluation cache: %w", err)
		}
		log.Println("Evaluation cache backend=postgres")
		return cache.NewSQLEvaluationCache(pg), func() { _ = pg.Close() }, nil

	default:
		log.Println("Evaluation cache backend=sqlite")
		return cache.NewSqliteEvaluationCache(sqliteDB), func() {}, nil
	}
}

func initAndSeed(conn *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if _, err := os.Stat(seedPath); errors.Is(err, os.ErrNotExist) {
		log.Printf("No seed file found path=%s (skipping seed)", seedPath)
		return nil
	}

	if err := repositories.SeedFromJSON(conn, repositories.SQLite, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
