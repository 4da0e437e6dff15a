package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	instrumententity "stocksync/internal/feature/instruments/domain/entity"
	"stocksync/internal/feature/watchlist/domain/entity"
	"stocksync/internal/feature/watchlist/usecase"
)

// mockWatchlistUsecase is a mock implementation of the WatchlistUsecase interface.
type mockWatchlistUsecase struct {
	ListFunc   func(ctx context.Context, userID int64) ([]entity.Entry, error)
	AddFunc    func(ctx context.Context, userID int64, symbol string) (*entity.Entry, error)
	RemoveFunc func(ctx context.Context, userID int64, symbol string) error
}

func (m *mockWatchlistUsecase) List(ctx context.Context, userID int64) ([]entity.Entry, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return nil, errors.New("ListFunc is not implemented")
}

func (m *mockWatchlistUsecase) Add(ctx context.Context, userID int64, symbol string) (*entity.Entry, error) {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, userID, symbol)
	}
	return nil, errors.New("AddFunc is not implemented")
}

func (m *mockWatchlistUsecase) Remove(ctx context.Context, userID int64, symbol string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, userID, symbol)
	}
	return errors.New("RemoveFunc is not implemented")
}

func setupRouter(uc WatchlistUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewWatchlistHandler(uc)
	r := gin.New()
	users := r.Group("/users/:user_id")
	{
		users.GET("/watchlist", h.List)
		users.POST("/watchlist", h.Add)
		users.DELETE("/watchlist/:symbol", h.Remove)
	}
	return r
}

func testEntry() *entity.Entry {
	return &entity.Entry{
		ID:           5,
		UserID:       42,
		InstrumentID: 9,
		AddedAt:      time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		Instrument: instrumententity.Instrument{
			ID:          9,
			Symbol:      "sh.600000",
			Name:        "浦发银行",
			LastUpdated: time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
	}
}

const testEntryJSON = `{
	"id": 5,
	"user_id": 42,
	"instrument_id": 9,
	"added_at": "2025-03-01T09:00:00Z",
	"instrument": {
		"id": 9,
		"symbol": "sh.600000",
		"name": "浦发银行",
		"last_updated": "2025-02-28T00:00:00Z"
	}
}`

func TestWatchlistHandler_List(t *testing.T) {
	t.Run("200 with the user's entries", func(t *testing.T) {
		uc := &mockWatchlistUsecase{
			ListFunc: func(ctx context.Context, userID int64) ([]entity.Entry, error) {
				assert.EqualValues(t, 42, userID)
				return []entity.Entry{*testEntry()}, nil
			},
		}
		r := setupRouter(uc)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/users/42/watchlist", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "["+testEntryJSON+"]", w.Body.String())
	})

	t.Run("200 with an empty list for a user with no entries", func(t *testing.T) {
		uc := &mockWatchlistUsecase{
			ListFunc: func(ctx context.Context, userID int64) ([]entity.Entry, error) {
				return []entity.Entry{}, nil
			},
		}
		r := setupRouter(uc)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/users/42/watchlist", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("400 for a non-numeric user id", func(t *testing.T) {
		r := setupRouter(&mockWatchlistUsecase{})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/users/alice/watchlist", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error": "user_id must be an integer"}`, w.Body.String())
	})

	t.Run("500 for an unexpected error", func(t *testing.T) {
		uc := &mockWatchlistUsecase{
			ListFunc: func(ctx context.Context, userID int64) ([]entity.Entry, error) {
				return nil, errors.New("connection refused")
			},
		}
		r := setupRouter(uc)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/users/42/watchlist", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error": "internal server error"}`, w.Body.String())
	})
}

func TestWatchlistHandler_Add(t *testing.T) {
	post := func(r *gin.Engine, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/users/42/watchlist", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("201 with the created entry", func(t *testing.T) {
		uc := &mockWatchlistUsecase{
			AddFunc: func(ctx context.Context, userID int64, symbol string) (*entity.Entry, error) {
				assert.EqualValues(t, 42, userID)
				assert.Equal(t, "sh.600000", symbol)
				return testEntry(), nil
			},
		}
		w := post(setupRouter(uc), `{"symbol": "sh.600000"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, testEntryJSON, w.Body.String())
	})

	t.Run("400 for a body without a symbol", func(t *testing.T) {
		w := post(setupRouter(&mockWatchlistUsecase{}), `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error": "invalid request"}`, w.Body.String())
	})

	t.Run("400 for malformed JSON", func(t *testing.T) {
		w := post(setupRouter(&mockWatchlistUsecase{}), `{"symbol":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error": "invalid request"}`, w.Body.String())
	})

	t.Run("404 for an unknown symbol", func(t *testing.T) {
		uc := &mockWatchlistUsecase{
			AddFunc: func(ctx context.Context, userID int64, symbol string) (*entity.Entry, error) {
				return nil, usecase.ErrInstrumentNotFound
			},
		}
		w := post(setupRouter(uc), `{"symbol": "sh.999999"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error": "instrument not found"}`, w.Body.String())
	})

	t.Run("409 for a duplicate pairing", func(t *testing.T) {
		uc := &mockWatchlistUsecase{
			AddFunc: func(ctx context.Context, userID int64, symbol string) (*entity.Entry, error) {
				return nil, usecase.ErrAlreadyInWatchlist
			},
		}
		w := post(setupRouter(uc), `{"symbol": "sh.600000"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.JSONEq(t, `{"error": "instrument already in watchlist"}`, w.Body.String())
	})

	t.Run("500 for an unexpected error", func(t *testing.T) {
		uc := &mockWatchlistUsecase{
			AddFunc: func(ctx context.Context, userID int64, symbol string) (*entity.Entry, error) {
				return nil, errors.New("connection refused")
			},
		}
		w := post(setupRouter(uc), `{"symbol": "sh.600000"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error": "internal server error"}`, w.Body.String())
	})
}

func TestWatchlistHandler_Remove(t *testing.T) {
	del := func(r *gin.Engine, path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodDelete, path, nil)
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("200 with a confirmation message", func(t *testing.T) {
		uc := &mockWatchlistUsecase{
			RemoveFunc: func(ctx context.Context, userID int64, symbol string) error {
				assert.EqualValues(t, 42, userID)
				assert.Equal(t, "sh.600000", symbol)
				return nil
			},
		}
		w := del(setupRouter(uc), "/users/42/watchlist/sh.600000")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message": "instrument removed from watchlist"}`, w.Body.String())
	})

	t.Run("404 for an unknown symbol", func(t *testing.T) {
		uc := &mockWatchlistUsecase{
			RemoveFunc: func(ctx context.Context, userID int64, symbol string) error {
				return usecase.ErrInstrumentNotFound
			},
		}
		w := del(setupRouter(uc), "/users/42/watchlist/sh.999999")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error": "instrument not found"}`, w.Body.String())
	})

	t.Run("404 when the instrument is not on the watchlist", func(t *testing.T) {
		uc := &mockWatchlistUsecase{
			RemoveFunc: func(ctx context.Context, userID int64, symbol string) error {
				return usecase.ErrNotInWatchlist
			},
		}
		w := del(setupRouter(uc), "/users/42/watchlist/sh.600000")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error": "instrument not in watchlist"}`, w.Body.String())
	})

	t.Run("500 for an unexpected error", func(t *testing.T) {
		uc := &mockWatchlistUsecase{
			RemoveFunc: func(ctx context.Context, userID int64, symbol string) error {
				return errors.New("connection refused")
			},
		}
		w := del(setupRouter(uc), "/users/42/watchlist/sh.600000")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error": "internal server error"}`, w.Body.String())
	})
}
