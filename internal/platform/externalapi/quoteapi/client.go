package quoteapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"stocksync/internal/feature/instruments/domain/entity"
	syncusecase "stocksync/internal/feature/sync/usecase"
	"stocksync/internal/platform/externalapi/quoteapi/dto"
)

// ErrSession indicates that a session could not be established with the
// provider. It is the only hard fault FetchDailyBars reports; everything
// else degrades to "no data".
var ErrSession = errors.New("quote provider session failed")

const (
	// historyFields is the fixed field set requested from the provider,
	// in positional row order.
	historyFields = "date,code,open,high,low,close,volume,amount,adjustflag"

	dateLayout = "2006-01-02"

	// adjustFlagPost requests post-adjustment prices.
	adjustFlagPost = "2"
)

// Client fetches historical daily bars over the provider's session-based
// HTTP API. A session token is acquired and released within the scope of
// one FetchDailyBars call; nothing is shared across concurrent callers.
type Client struct {
	cfg    Config
	client *http.Client
}

// Compile-time check that Client satisfies the sync engine's QuoteProvider.
var _ syncusecase.QuoteProvider = (*Client)(nil)

// NewClient creates a new Client with the given configuration and HTTP client.
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// FetchDailyBars fetches daily post-adjusted bars for [start, end].
// The session is closed on every exit path. A login failure wraps
// ErrSession; a query or parse failure is logged and surfaced as an empty
// result so a multi-instrument batch is never aborted by one bad window.
// Returned bars carry no InstrumentID; the caller tags them.
func (c *Client) FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]entity.DailyBar, error) {
	token, err := c.login(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSession, err)
	}
	defer c.logout(token)

	bars, err := c.queryHistory(ctx, token, symbol, start, end)
	if err != nil {
		slog.Warn("history query failed, treating as no data",
			"symbol", symbol, "start", start.Format(dateLayout), "end", end.Format(dateLayout), "error", err)
		return nil, nil
	}
	if len(bars) == 0 {
		slog.Warn("no data fetched", "symbol", symbol,
			"start", start.Format(dateLayout), "end", end.Format(dateLayout))
	}
	return bars, nil
}

// login opens a session and returns its token.
func (c *Client) login(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("user", c.cfg.Username)
	form.Set("password", c.cfg.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/api/login", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer closeBody(res)

	if res.StatusCode >= 400 {
		return "", fmt.Errorf("login http %d", res.StatusCode)
	}
	var body dto.SessionResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.ErrorCode != "0" {
		return "", fmt.Errorf("login rejected: %s", body.ErrorMsg)
	}
	slog.Debug("quote provider login successful")
	return body.Token, nil
}

// logout closes the session. It uses its own short deadline so the session
// is released even when the caller's context is already cancelled; failures
// are logged, never propagated.
func (c *Client) logout(token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	form := url.Values{}
	form.Set("token", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/api/logout", strings.NewReader(form.Encode()))
	if err != nil {
		slog.Warn("failed to build logout request", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.client.Do(req)
	if err != nil {
		slog.Warn("quote provider logout failed", "error", err)
		return
	}
	closeBody(res)
	slog.Debug("quote provider logout successful")
}

// queryHistory issues the ranged historical-bar query and drains all pages.
func (c *Client) queryHistory(ctx context.Context, token, symbol string, start, end time.Time) ([]entity.DailyBar, error) {
	var bars []entity.DailyBar
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("token", token)
		q.Set("code", symbol)
		q.Set("fields", historyFields)
		q.Set("start_date", start.Format(dateLayout))
		q.Set("end_date", end.Format(dateLayout))
		q.Set("frequency", "d")
		q.Set("adjustflag", adjustFlagPost)
		q.Set("page", strconv.Itoa(page))

		u := fmt.Sprintf("%s/api/history_k_data?%s", c.cfg.BaseURL, q.Encode())
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}

		res, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}

		if res.StatusCode >= 400 {
			closeBody(res)
			return nil, fmt.Errorf("history query http %d", res.StatusCode)
		}
		var body dto.HistoryKDataResponse
		err = json.NewDecoder(res.Body).Decode(&body)
		closeBody(res)
		if err != nil {
			return nil, err
		}
		if body.ErrorCode != "0" {
			return nil, fmt.Errorf("history query rejected: %s", body.ErrorMsg)
		}

		for _, row := range body.Data {
			bar, err := parseRow(row)
			if err != nil {
				return nil, err
			}
			bars = append(bars, bar)
		}
		if !body.HasMore {
			break
		}
	}
	return bars, nil
}

// parseRow converts one positional row into a DailyBar.
// Empty volume persists as 0; empty amount persists as nil, never zero.
func parseRow(row []string) (entity.DailyBar, error) {
	if len(row) < 8 {
		return entity.DailyBar{}, fmt.Errorf("row has %d columns, want at least 8", len(row))
	}

	tradeDate, err := time.Parse(dateLayout, row[0])
	if err != nil {
		return entity.DailyBar{}, fmt.Errorf("parse date %q: %w", row[0], err)
	}
	open, err := decimal.NewFromString(row[2])
	if err != nil {
		return entity.DailyBar{}, fmt.Errorf("parse open %q: %w", row[2], err)
	}
	high, err := decimal.NewFromString(row[3])
	if err != nil {
		return entity.DailyBar{}, fmt.Errorf("parse high %q: %w", row[3], err)
	}
	low, err := decimal.NewFromString(row[4])
	if err != nil {
		return entity.DailyBar{}, fmt.Errorf("parse low %q: %w", row[4], err)
	}
	cls, err := decimal.NewFromString(row[5])
	if err != nil {
		return entity.DailyBar{}, fmt.Errorf("parse close %q: %w", row[5], err)
	}

	var volume int64
	if row[6] != "" {
		volume, err = strconv.ParseInt(row[6], 10, 64)
		if err != nil {
			return entity.DailyBar{}, fmt.Errorf("parse volume %q: %w", row[6], err)
		}
	}
	var amount *int64
	if row[7] != "" {
		a, err := strconv.ParseInt(row[7], 10, 64)
		if err != nil {
			return entity.DailyBar{}, fmt.Errorf("parse amount %q: %w", row[7], err)
		}
		amount = &a
	}

	return entity.DailyBar{
		TradeDate: tradeDate,
		Open:      open,
		High:      high,
		Low:       low,
		Close:     cls,
		Volume:    volume,
		Amount:    amount,
	}, nil
}

func closeBody(res *http.Response) {
	if err := res.Body.Close(); err != nil {
		slog.Warn("failed to close response body", "error", err)
	}
}
