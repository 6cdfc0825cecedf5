package factory

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/mcoot/gamerooms/internal/api"
	"github.com/mcoot/gamerooms/internal/config"
	"github.com/mcoot/gamerooms/internal/dependencies/clock"
	"github.com/mcoot/gamerooms/internal/dependencies/random"
	"github.com/mcoot/gamerooms/internal/moderation"
	"github.com/mcoot/gamerooms/internal/rules"
	"github.com/mcoot/gamerooms/internal/services/room"
	"github.com/mcoot/gamerooms/internal/storage"
	"github.com/mcoot/gamerooms/internal/storage/memory"
	"github.com/mcoot/gamerooms/internal/web"
	"github.com/mcoot/gamerooms/internal/web/hub"
	"github.com/mcoot/gamerooms/internal/web/sse"
	"github.com/mcoot/gamerooms/internal/web/ws"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Rules     *rules.Dispatcher
	Moderator *moderation.Moderator
	Hub       *hub.Manager
	Registry  *room.Registry

	// Transports
	WSHandler  *ws.Handler
	SSEHandler *sse.Handler

	logger *slog.Logger
}

// New creates a new application with all dependencies wired.
// A nil logger discards output.
func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return newWithDependencies(cfg, memory.New(), clock.New(), random.New(), logger)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(cfg config.Config, store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) (*App, error) {
	moderator, err := moderation.NewModerator(cfg.CensoredWords, cfg.CensorRune(), logger)
	if err != nil {
		return nil, fmt.Errorf("build chat moderator: %w", err)
	}

	dispatcher := rules.Default()
	hubManager := hub.NewManager(cfg.SendBuffer, logger)
	registry := room.NewRegistry(store, hubManager, dispatcher, moderator, clk, rnd, logger)

	wsHandler := ws.NewHandler(registry, hubManager, rnd, ws.Options{
		PingPeriod:     cfg.PingPeriod,
		WriteWait:      cfg.WriteWait,
		ReadLimit:      cfg.ReadLimit,
		AllowedOrigins: cfg.AllowedOrigins,
	}, logger)
	sseHandler := sse.NewHandler(registry, hubManager, rnd, sse.Options{
		KeepalivePeriod: cfg.PingPeriod,
		WriteWait:       cfg.WriteWait,
	}, logger)

	return &App{
		Storage:    store,
		Clock:      clk,
		Random:     rnd,
		Rules:      dispatcher,
		Moderator:  moderator,
		Hub:        hubManager,
		Registry:   registry,
		WSHandler:  wsHandler,
		SSEHandler: sseHandler,
		logger:     logger,
	}, nil
}

// Handler returns the complete HTTP surface
func (a *App) Handler() http.Handler {
	return web.NewRouter(web.RouterConfig{
		Logger:    a.logger,
		WSHandler: a.WSHandler,
		SSE:       a.SSEHandler,
		API: api.RouterConfig{
			Logger: a.logger,
			Rooms:  a.Registry,
			Stats:  a.WSHandler,
		},
	})
}
