package repository

import (
	"net/http"
	"time"
)

const userAgent = "coffeefinder-api/1.0"

// NewHTTPClient returns the client shared by the HTTP-backed repositories.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
