// Package usecase implements the synchronization engine that pulls daily
// bars from the external quote provider and persists them.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"stocksync/internal/feature/instruments/domain/entity"
	"stocksync/internal/shared/ratelimiter"
)

// backfillFloor is the fetch-everything sentinel for instruments with no
// stored bars. 1990-01-01 predates the opening of both CN exchanges, so a
// window starting here requests the full available history.
var backfillFloor = time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)

// QuoteProvider fetches daily bars from the external market-data source.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type QuoteProvider interface {
	// FetchDailyBars returns the bars for [start, end]. An empty result and
	// a provider-side query failure look the same to the caller: nothing to
	// upsert. Only a session-establishment failure is reported as an error.
	FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]entity.DailyBar, error)
}

// InstrumentRepository abstracts instrument persistence for the engine.
type InstrumentRepository interface {
	GetOrCreate(ctx context.Context, symbol string) (*entity.Instrument, error)
	ListAll(ctx context.Context) ([]entity.Instrument, error)
}

// BarRepository abstracts bar persistence for the engine.
type BarRepository interface {
	UpsertBatch(ctx context.Context, bars []entity.DailyBar) error
	LatestTradeDate(ctx context.Context, instrumentID uint) (time.Time, bool, error)
}

// SyncUsecase drives the fetch-then-upsert cycle per instrument.
// Instruments are processed strictly sequentially: the provider session is
// single-owner and the provider rejects concurrent sessions.
type SyncUsecase struct {
	provider    QuoteProvider
	instruments InstrumentRepository
	bars        BarRepository
	rateLimiter ratelimiter.RateLimiterInterface
}

// NewSyncUsecase creates a new SyncUsecase.
func NewSyncUsecase(provider QuoteProvider, instruments InstrumentRepository, bars BarRepository, rl ratelimiter.RateLimiterInterface) *SyncUsecase {
	return &SyncUsecase{provider: provider, instruments: instruments, bars: bars, rateLimiter: rl}
}

// Backfill performs a full historical sync for the given symbols starting
// at since. Each symbol's instrument record is created on first reference.
// A failure for one symbol is logged and never aborts the batch.
func (su *SyncUsecase) Backfill(ctx context.Context, symbols []string, since time.Time) error {
	slog.Info("starting full backfill", "symbols", len(symbols), "since", since.Format(dateLayout))
	today := todayUTC()
	for _, symbol := range symbols {
		inst, err := su.instruments.GetOrCreate(ctx, symbol)
		if err != nil {
			slog.Error("failed to resolve instrument", "symbol", symbol, "error", err)
			continue
		}
		if err := su.syncOne(ctx, inst, since, today); err != nil {
			slog.Error("failed to sync instrument", "symbol", symbol, "error", err)
			continue
		}
	}
	slog.Info("full backfill completed")
	return nil
}

// CatchUpAll performs an incremental sync for every known instrument.
// The fetch window per instrument starts the day after the latest stored
// bar, or at the backfill floor when no bars exist yet, and ends today.
// A closed window (start >= end) skips the provider call entirely.
func (su *SyncUsecase) CatchUpAll(ctx context.Context) error {
	insts, err := su.instruments.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(insts) == 0 {
		slog.Warn("no instruments to sync")
		return nil
	}

	slog.Info("starting incremental catch-up", "instruments", len(insts))
	today := todayUTC()
	for i := range insts {
		inst := &insts[i]

		latest, ok, err := su.bars.LatestTradeDate(ctx, inst.ID)
		if err != nil {
			slog.Error("failed to read latest trade date", "symbol", inst.Symbol, "error", err)
			continue
		}
		start := backfillFloor
		if ok {
			start = latest.AddDate(0, 0, 1)
		}
		if !start.Before(today) {
			slog.Info("instrument already up to date", "symbol", inst.Symbol)
			continue
		}

		if err := su.syncOne(ctx, inst, start, today); err != nil {
			slog.Error("failed to sync instrument", "symbol", inst.Symbol, "error", err)
			continue
		}
	}
	slog.Info("incremental catch-up completed")
	return nil
}

// syncOne fetches bars for one instrument and upserts whatever came back.
// The rate limiter gates every provider call.
func (su *SyncUsecase) syncOne(ctx context.Context, inst *entity.Instrument, start, end time.Time) error {
	su.rateLimiter.WaitIfNeeded()

	bars, err := su.provider.FetchDailyBars(ctx, inst.Symbol, start, end)
	if err != nil {
		return err
	}
	if len(bars) == 0 {
		slog.Warn("no bars returned", "symbol", inst.Symbol,
			"start", start.Format(dateLayout), "end", end.Format(dateLayout))
		return nil
	}

	for i := range bars {
		bars[i].InstrumentID = inst.ID
	}
	if err := su.bars.UpsertBatch(ctx, bars); err != nil {
		return err
	}
	slog.Info("synced bars", "symbol", inst.Symbol, "count", len(bars))
	return nil
}

const dateLayout = "2006-01-02"

// todayUTC returns the current calendar date at UTC midnight.
func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
