// Package web assembles the HTTP surface: the player WebSocket endpoint,
// spectator event streams and the REST read API.
package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/gamerooms/internal/api"
	"github.com/mcoot/gamerooms/internal/middleware"
	"github.com/mcoot/gamerooms/internal/web/sse"
	"github.com/mcoot/gamerooms/internal/web/ws"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger    *slog.Logger
	WSHandler *ws.Handler
	SSE       *sse.Handler
	API       api.RouterConfig
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	api.Register(r, cfg.API)

	streams := r.NewRoute().Subrouter()
	streams.Use(middleware.Recovery(cfg.Logger, nil))
	streams.Use(middleware.Logging(cfg.Logger))

	streams.Handle("/ws", cfg.WSHandler).Methods(http.MethodGet)
	streams.HandleFunc("/events", cfg.SSE.Lobby).Methods(http.MethodGet)
	streams.HandleFunc("/rooms/{id}/events", cfg.SSE.Room).Methods(http.MethodGet)

	return r
}
