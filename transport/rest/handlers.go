package rest

import (
	_ "embed"
	"log/slog"
	"net/http"
)

//go:embed static/index.html
var indexPage []byte

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)
	IndexHandler(w http.ResponseWriter, _ *http.Request)
}

type handlers struct {
	logger *slog.Logger
}

func NewHandlers(logger *slog.Logger) Handlers {
	return &handlers{
		logger: logger.With("component", "rest"),
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write response", "method", "PingHandler", "error", err)
	}
}

// IndexHandler - the game page. Every load starts a new game, nothing is carried over from a previous load.
func (that *handlers) IndexHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(indexPage); err != nil {
		that.logger.Error("failed to write response", "method", "IndexHandler", "error", err)
	}
}
