// Package quoteapi provides a client for the session-oriented historical
// quote provider (login / query / logout framing around every fetch).
package quoteapi

import (
	"os"
	"time"
)

// Config holds configuration for the quote provider client.
type Config struct {
	BaseURL  string        // Base URL for the API (e.g. "https://quotes.example.com")
	Username string        // Session login user
	Password string        // Session login password
	Timeout  time.Duration // HTTP request timeout
}

// LoadConfig loads quote provider configuration from environment variables.
func LoadConfig() Config {
	return Config{
		BaseURL:  os.Getenv("QUOTE_API_BASE_URL"),
		Username: os.Getenv("QUOTE_API_USER"),
		Password: os.Getenv("QUOTE_API_PASSWORD"),
		Timeout:  30 * time.Second,
	}
}
