// Package handler provides the HTTP handlers for the watchlist feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stocksync/internal/api"
	"stocksync/internal/feature/watchlist/domain/entity"
	"stocksync/internal/feature/watchlist/usecase"
)

// WatchlistUsecase defines the usecase operations consumed by this handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type WatchlistUsecase interface {
	List(ctx context.Context, userID int64) ([]entity.Entry, error)
	Add(ctx context.Context, userID int64, symbol string) (*entity.Entry, error)
	Remove(ctx context.Context, userID int64, symbol string) error
}

// WatchlistHandler handles HTTP requests for watchlist membership.
type WatchlistHandler struct {
	uc WatchlistUsecase
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(uc WatchlistUsecase) *WatchlistHandler {
	return &WatchlistHandler{uc: uc}
}

func userIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "user_id must be an integer"})
		return 0, false
	}
	return id, true
}

// List returns the user's watchlist with instrument summaries.
//
// GET /users/:user_id/watchlist
func (h *WatchlistHandler) List(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	entries, err := h.uc.List(c.Request.Context(), userID)
	if err != nil {
		slog.Error("failed to list watchlist", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	out := make([]api.WatchlistEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, api.NewWatchlistEntryResponse(&entries[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Add attaches an instrument to the user's watchlist by symbol.
// - 400 on an invalid body
// - 404 when the symbol is unknown
// - 409 when the pairing already exists
// - 201 with the new entry on success
//
// POST /users/:user_id/watchlist
func (h *WatchlistHandler) Add(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	var req api.WatchlistAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	entry, err := h.uc.Add(c.Request.Context(), userID, req.Symbol)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInstrumentNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "instrument not found"})
		case errors.Is(err, usecase.ErrAlreadyInWatchlist):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "instrument already in watchlist"})
		default:
			slog.Error("failed to add to watchlist", "user_id", userID, "symbol", req.Symbol, "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, api.NewWatchlistEntryResponse(entry))
}

// Remove detaches an instrument from the user's watchlist by symbol.
// - 404 when the symbol is unknown or the pairing does not exist
// - 200 with a confirmation message on success
//
// DELETE /users/:user_id/watchlist/:symbol
func (h *WatchlistHandler) Remove(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	symbol := c.Param("symbol")

	if err := h.uc.Remove(c.Request.Context(), userID, symbol); err != nil {
		switch {
		case errors.Is(err, usecase.ErrInstrumentNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "instrument not found"})
		case errors.Is(err, usecase.ErrNotInWatchlist):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "instrument not in watchlist"})
		default:
			slog.Error("failed to remove from watchlist", "user_id", userID, "symbol", symbol, "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "instrument removed from watchlist"})
}
