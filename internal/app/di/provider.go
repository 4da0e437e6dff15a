// Package di provides dependency injection factories for creating application components.
package di

import (
	"stocksync/internal/platform/externalapi/quoteapi"
	infrahttp "stocksync/internal/platform/http"
)

// NewQuoteProvider creates a fully configured quote provider client with HTTP client.
func NewQuoteProvider() *quoteapi.Client {
	cfg := quoteapi.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return quoteapi.NewClient(cfg, httpClient)
}
