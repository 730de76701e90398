package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/adapters/cache"
	adapterHTTP "github.com/Bahtiyorjon05/Daily-priority-sub003/internal/adapters/handler/http"
	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/adapters/repository"
	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/core/domain"
	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/core/services"
	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/core/workers"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	startTime := time.Now()

	_ = godotenv.Load()

	dbUser := getEnv("DB_USER", "priority_user")
	dbPass := getEnv("DB_PASSWORD", "secret")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "priority_db")
	serverPort := getEnv("PORT", "8080")

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("Critical: JWT_SECRET must be set")
	}
	jwtIssuer := getEnv("JWT_ISSUER", "daily-priority")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Fatalf("Critical: Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("Database connected successfully.")

	var entityRepo domain.EntityRepository = repository.NewPostgresEntityRepository(db)
	completionRepo := repository.NewPostgresCompletionRepository(db)
	userRepo := repository.NewPostgresUserRepository(db)

	rdb, err := cache.NewRedisClient(
		getEnv("REDIS_HOST", "localhost"),
		getEnv("REDIS_PORT", "6379"),
		os.Getenv("REDIS_PASSWORD"),
		0,
	)
	if err != nil {
		log.Printf("Redis unavailable, running without cache and rate limiting: %v", err)
		rdb = nil
	} else {
		defer rdb.Close()
		entityRepo = repository.NewCachedEntityRepository(entityRepo, rdb)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	worker := workers.NewStreakWorker(entityRepo, completionRepo, services.DefaultWindowDays)
	worker.Start(ctx)

	tokenService := services.NewTokenService(jwtSecret, jwtIssuer, 24*time.Hour, userRepo)
	authService := services.NewAuthService(userRepo, tokenService)
	entityService := services.NewEntityService(entityRepo)
	completionService := services.NewCompletionService(completionRepo, entityRepo, worker)
	statsService := services.NewStatsService(entityRepo, completionRepo)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:       adapterHTTP.NewAuthHandler(authService),
		HabitHandler:      adapterHTTP.NewHabitHandler(entityService),
		CompletionHandler: adapterHTTP.NewCompletionHandler(completionService),
		StatsHandler:      adapterHTTP.NewStatsHandler(statsService),
		TokenService:      tokenService,
		DB:                db,
		Redis:             rdb,
		StartTime:         startTime,
	})

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Daily Priority API running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	<-ctx.Done()

	log.Println("Stop signal received. Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
