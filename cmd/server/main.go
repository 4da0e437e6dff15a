package main

import (
	"log"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"stocksync/internal/app/router"
	instrumentadapters "stocksync/internal/feature/instruments/adapters"
	instrumenthandler "stocksync/internal/feature/instruments/transport/handler"
	instrumentusecase "stocksync/internal/feature/instruments/usecase"
	watchlistadapters "stocksync/internal/feature/watchlist/adapters"
	watchlisthandler "stocksync/internal/feature/watchlist/transport/handler"
	watchlistusecase "stocksync/internal/feature/watchlist/usecase"
	"stocksync/internal/platform/cache"
	infradb "stocksync/internal/platform/db"
	infraredis "stocksync/internal/platform/redis"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	// db
	db := infradb.OpenDB()

	// Redis is optional; the cache decorator degrades to pass-through without it
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	instrumentRepo := instrumentadapters.NewInstrumentRepository(db)
	barRepo := instrumentadapters.NewBarRepository(db)
	watchlistRepo := watchlistadapters.NewWatchlistRepository(db)

	// Wrap the bar read path with the Redis cache
	ttl := cache.TimeUntilNextMarketRefresh()
	cachedBarRepo := cache.NewCachingBarRepository(rdb, ttl, barRepo, "bars")

	// Usecase
	instrumentUC := instrumentusecase.NewInstrumentUsecase(instrumentRepo, cachedBarRepo)
	watchlistUC := watchlistusecase.NewWatchlistUsecase(instrumentRepo, watchlistRepo)

	// Handler
	instrumentH := instrumenthandler.NewInstrumentHandler(instrumentUC)
	watchlistH := watchlisthandler.NewWatchlistHandler(watchlistUC)

	r := router.NewRouter(instrumentH, watchlistH)

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
