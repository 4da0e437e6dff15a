// Package dto defines data transfer objects for the quote provider API responses.
package dto

// SessionResponse represents the JSON response from the login and logout endpoints.
type SessionResponse struct {
	ErrorCode string `json:"error_code"`
	ErrorMsg  string `json:"error_msg,omitempty"`
	Token     string `json:"token,omitempty"`
}

// HistoryKDataResponse represents one page of the historical bar query.
// Rows carry positional string columns in the requested field order.
type HistoryKDataResponse struct {
	ErrorCode string     `json:"error_code"`
	ErrorMsg  string     `json:"error_msg,omitempty"`
	Fields    []string   `json:"fields"`
	Data      [][]string `json:"data"`
	HasMore   bool       `json:"has_more"`
}
