// Command sync runs one synchronization pass against the quote provider.
// With -symbols and -since it performs a full historical backfill for the
// listed symbols; without flags it catches up every known instrument from
// its latest stored bar. Meant to be invoked from a scheduler (cron).
package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"stocksync/internal/app/di"
	instrumentadapters "stocksync/internal/feature/instruments/adapters"
	syncusecase "stocksync/internal/feature/sync/usecase"
	infradb "stocksync/internal/platform/db"
	"stocksync/internal/shared/ratelimiter"
)

func main() {
	symbolsFlag := flag.String("symbols", "", "comma-separated symbols for a full backfill (e.g. sh.600000,sz.000001)")
	sinceFlag := flag.String("since", "", "backfill start date (YYYY-MM-DD), required with -symbols")
	flag.Parse()

	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	db := infradb.OpenDB()
	provider := di.NewQuoteProvider()
	instrumentRepo := instrumentadapters.NewInstrumentRepository(db)
	barRepo := instrumentadapters.NewBarRepository(db)
	rl := ratelimiter.NewRateLimiter(8, time.Minute) // provider rejects bursty sessions

	uc := syncusecase.NewSyncUsecase(provider, instrumentRepo, barRepo, rl)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if *symbolsFlag != "" {
		since, err := time.Parse("2006-01-02", *sinceFlag)
		if err != nil {
			log.Fatal("-since must be a date in YYYY-MM-DD format")
		}
		symbols := strings.Split(*symbolsFlag, ",")
		if err := uc.Backfill(ctx, symbols, since); err != nil {
			log.Fatal(err)
		}
		log.Println("backfill ok")
		return
	}

	if err := uc.CatchUpAll(ctx); err != nil {
		log.Fatal(err)
	}
	log.Println("catch-up ok")
}
