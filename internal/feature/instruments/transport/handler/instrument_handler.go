// Package handler provides the HTTP handlers for the instruments feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stocksync/internal/api"
	"stocksync/internal/feature/instruments/domain/entity"
	"stocksync/internal/feature/instruments/usecase"
)

const dateLayout = "2006-01-02"

// InstrumentUsecase defines the usecase operations consumed by this handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type InstrumentUsecase interface {
	GetInstrument(ctx context.Context, symbol string) (*entity.Instrument, error)
	GetDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]entity.DailyBar, error)
}

// InstrumentHandler handles HTTP requests for instrument data.
type InstrumentHandler struct {
	uc InstrumentUsecase
}

// NewInstrumentHandler creates a new InstrumentHandler.
func NewInstrumentHandler(uc InstrumentUsecase) *InstrumentHandler {
	return &InstrumentHandler{uc: uc}
}

// GetInstrument returns basic information for a single instrument.
//
// GET /instruments/:symbol
func (h *InstrumentHandler) GetInstrument(c *gin.Context) {
	symbol := c.Param("symbol")

	inst, err := h.uc.GetInstrument(c.Request.Context(), symbol)
	if err != nil {
		if errors.Is(err, usecase.ErrInstrumentNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "instrument not found"})
			return
		}
		slog.Error("failed to get instrument", "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, api.NewInstrumentResponse(inst))
}

// GetDailyBars returns the stored daily bars for an instrument within a
// date range, ascending by trade date. A known symbol with no bars in the
// range yields an empty list, not an error.
//
// GET /instruments/:symbol/bars?start=2023-01-01&end=2023-12-31
func (h *InstrumentHandler) GetDailyBars(c *gin.Context) {
	symbol := c.Param("symbol")

	start, err := time.Parse(dateLayout, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "start must be a date in YYYY-MM-DD format"})
		return
	}
	end, err := time.Parse(dateLayout, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "end must be a date in YYYY-MM-DD format"})
		return
	}

	bars, err := h.uc.GetDailyBars(c.Request.Context(), symbol, start, end)
	if err != nil {
		if errors.Is(err, usecase.ErrInstrumentNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "instrument not found"})
			return
		}
		slog.Error("failed to get daily bars", "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	out := make([]api.DailyBarResponse, 0, len(bars))
	for _, b := range bars {
		out = append(out, api.NewDailyBarResponse(b))
	}

	c.JSON(http.StatusOK, out)
}
