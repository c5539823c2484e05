package httpserver

import (
	"net/http"
	"time"
)

// writeSlack lets a handler that stops at its context deadline still write
// the error response.
const writeSlack = 5 * time.Second

// New builds the API server. requestTimeout is the per-request handler budget.
func New(addr string, handler http.Handler, requestTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      requestTimeout + writeSlack,
		IdleTimeout:       2 * time.Minute,
	}
}
