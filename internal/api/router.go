package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/gamerooms/internal/api/handler"
	apimiddleware "github.com/mcoot/gamerooms/internal/api/middleware"
	"github.com/mcoot/gamerooms/internal/middleware"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger *slog.Logger
	Rooms  handler.Rooms
	// Stats is optional; connection counts read zero without it
	Stats handler.Stats
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	Register(r, cfg)
	return r
}

// Register mounts the API routes under /api/v1 on an existing router
func Register(r *mux.Router, cfg RouterConfig) {
	roomHandler := handler.NewRoomHandler(cfg.Rooms)
	healthHandler := handler.NewHealthHandler(cfg.Rooms, cfg.Stats)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(apimiddleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	api.HandleFunc("/rooms", roomHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{id}", roomHandler.Get).Methods(http.MethodGet)
	api.NotFoundHandler = http.HandlerFunc(handler.NotFound)
}
