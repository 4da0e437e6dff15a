// Package router assembles the application's HTTP route table.
package router

import (
	"github.com/gin-gonic/gin"

	instrumenthandler "stocksync/internal/feature/instruments/transport/handler"
	watchlisthandler "stocksync/internal/feature/watchlist/transport/handler"
	"stocksync/internal/platform/http/handler"
)

// NewRouter builds the gin engine with all application routes.
func NewRouter(instruments *instrumenthandler.InstrumentHandler,
	watchlist *watchlisthandler.WatchlistHandler) *gin.Engine {
	r := gin.Default()

	// Liveness probe
	r.GET("/healthz", handler.Health)

	// Instrument info and bar history (read-only)
	r.GET("/instruments/:symbol", instruments.GetInstrument)
	r.GET("/instruments/:symbol/bars", instruments.GetDailyBars)

	// Watchlist membership per user
	users := r.Group("/users/:user_id")
	{
		users.GET("/watchlist", watchlist.List)
		users.POST("/watchlist", watchlist.Add)
		users.DELETE("/watchlist/:symbol", watchlist.Remove)
	}

	return r
}
