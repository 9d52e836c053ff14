package handlers

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"book-store-api/internal/middleware"
	"book-store-api/internal/utils"
)

const welcomeMessage = "Welcome to MERN stack tutorial"

var sensitiveHeaders = map[string]bool{
	"Authorization":       true,
	"Proxy-Authorization": true,
	"Cookie":              true,
	"Set-Cookie":          true,
	"X-Api-Key":           true,
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type RootHandler struct {
	Store  Pinger
	Logger *zap.Logger
}

func NewRootHandler(p Pinger, logger *zap.Logger) *RootHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RootHandler{Store: p, Logger: logger}
}

// GET /
func (h *RootHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	h.Logger.Info("incoming request",
		zap.String("request_id", middleware.RequestIDFromContext(r.Context())),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
		zap.String("remote_addr", r.RemoteAddr),
		zap.String("user_agent", r.UserAgent()),
		zap.Any("headers", redactHeaders(r.Header)),
	)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, welcomeMessage)
}

// GET /healthz
func (h *RootHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Ping(r.Context()); err != nil {
		h.Logger.Warn("health check failed", zap.Error(err))
		utils.JSONError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "OK")
}

func redactHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		if sensitiveHeaders[http.CanonicalHeaderKey(k)] {
			out[k] = []string{"[REDACTED]"}
			continue
		}
		out[k] = v
	}
	return out
}
