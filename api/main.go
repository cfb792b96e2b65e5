package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/minipos/minipos/docs"
	"github.com/minipos/minipos/internal/auth"
	"github.com/minipos/minipos/internal/config"
	"github.com/minipos/minipos/internal/db"
	api "github.com/minipos/minipos/internal/http"
	"github.com/minipos/minipos/internal/http/ban"
	"github.com/minipos/minipos/internal/http/handlers"
	rl "github.com/minipos/minipos/internal/http/rate_limiter"
	"github.com/minipos/minipos/internal/pos"
	"github.com/minipos/minipos/internal/repo"
	"github.com/minipos/minipos/internal/store"
)

// @title Mini POS API
// @version 1.0
// @description REST API for point-of-sale checkout, inventory management and sales reporting.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load configuration: %v", err)
	}

	auth.SetSecret(cfg.JWTSecret)
	rl.Configure(cfg.LoginRatePerSec, cfg.LoginBurst)
	ban.Configure(cfg.LockoutStrikes, cfg.LockoutMinutes)

	go auth.StartRefreshTokenCleaner(30 * time.Minute)
	go rl.StartVisitorCleanupLoop()

	var st store.Store = store.NewMemoryStore()
	var accounts repo.AccountRepository = repo.NewInMemoryAccountRepository()

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("could not connect to database:", err)
		}
		defer database.Close()
		accounts = repo.NewPostgresAccountRepository(database)
		st = store.NewPostgresStore(database)
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("could not connect to redis: %v", err)
		}
		defer rdb.Close()
		ban.SetRedisClient(rdb)
		if cfg.DatabaseURL == "" {
			st = store.NewRedisStore(rdb)
		}
	}

	handlers.SetAccountRepo(accounts)
	handlers.SetSessionManager(pos.NewSessionManager(st))

	r := api.NewRouter()
	log.Printf("server running on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatal(err)
	}
}
