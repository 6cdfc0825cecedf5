// Package ws is the WebSocket transport for players. Each connection gets a
// read loop that routes inbound frames to the room registry and a write loop
// that drains the connection's hub queue.
package ws

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mcoot/gamerooms/internal/dependencies/random"
	"github.com/mcoot/gamerooms/internal/model"
	"github.com/mcoot/gamerooms/internal/services/room"
	"github.com/mcoot/gamerooms/internal/web/hub"
)

// Rooms is the registry surface driven by inbound frames
type Rooms interface {
	Connect(ctx context.Context, conn model.ConnID) error
	CreateRoom(ctx context.Context, conn model.ConnID, params room.CreateParams) (*model.Room, error)
	JoinRoom(ctx context.Context, conn model.ConnID, params room.JoinParams) (*model.Room, error)
	LeaveRoom(ctx context.Context, conn model.ConnID) error
	Disconnect(ctx context.Context, conn model.ConnID) error
	ToggleReady(ctx context.Context, conn model.ConnID) error
	StartGame(ctx context.Context, conn model.ConnID) error
	EndGame(ctx context.Context, conn model.ConnID) error
	DispatchGameAction(ctx context.Context, conn model.ConnID, action model.GameAction) error
	SendChatMessage(ctx context.Context, conn model.ConnID, text string) error
}

// Options tunes connection handling
type Options struct {
	PingPeriod time.Duration
	WriteWait  time.Duration
	ReadLimit  int64
	// AllowedOrigins restricts browser origins; empty allows any
	AllowedOrigins []string
}

// DefaultOptions returns the standard connection settings
func DefaultOptions() Options {
	return Options{
		PingPeriod: 30 * time.Second,
		WriteWait:  10 * time.Second,
		ReadLimit:  64 * 1024,
	}
}

// Handler upgrades player connections
type Handler struct {
	rooms    Rooms
	hub      *hub.Manager
	random   random.Random
	opts     Options
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu    sync.Mutex
	conns map[model.ConnID]*websocket.Conn
}

// NewHandler creates a Handler
func NewHandler(rooms Rooms, hubManager *hub.Manager, rnd random.Random, opts Options, logger *slog.Logger) *Handler {
	defaults := DefaultOptions()
	if opts.PingPeriod <= 0 {
		opts.PingPeriod = defaults.PingPeriod
	}
	if opts.WriteWait <= 0 {
		opts.WriteWait = defaults.WriteWait
	}
	if opts.ReadLimit <= 0 {
		opts.ReadLimit = defaults.ReadLimit
	}
	h := &Handler{
		rooms:  rooms,
		hub:    hubManager,
		random: rnd,
		opts:   opts,
		logger: logger.With(slog.String("component", "ws")),
		conns:  make(map[model.ConnID]*websocket.Conn),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	if len(h.opts.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	// non-browser clients send no origin
	return origin == "" || slices.Contains(h.opts.AllowedOrigins, origin)
}

// ServeHTTP handles GET /ws
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		h.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	id := model.ConnID(h.random.UUID())
	logger := h.logger.With(slog.String("conn_id", string(id)))
	client := h.hub.Connect(id)
	h.track(id, conn)

	ctx := context.WithoutCancel(r.Context())
	logger.Info("player connected", slog.String("remote_addr", r.RemoteAddr))

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.writeLoop(conn, client, logger)
	}()

	if err := h.rooms.Connect(ctx, id); err != nil {
		logger.Error("failed to send rooms list", slog.Any("error", err))
	}
	h.readLoop(ctx, conn, id, logger)

	if err := h.rooms.Disconnect(ctx, id); err != nil {
		logger.Error("failed to release connection", slog.Any("error", err))
	}
	h.hub.Disconnect(id)
	<-done
	h.untrack(id)
	_ = conn.Close()
	logger.Info("player disconnected")
}

func (h *Handler) readLoop(ctx context.Context, conn *websocket.Conn, id model.ConnID, logger *slog.Logger) {
	pongWait := h.opts.PingPeriod * 10 / 9
	conn.SetReadLimit(h.opts.ReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read failed", slog.Any("error", err))
			}
			return
		}
		h.route(ctx, id, frame, logger)
	}
}

func (h *Handler) writeLoop(conn *websocket.Conn, client *hub.Client, logger *slog.Logger) {
	ticker := time.NewTicker(h.opts.PingPeriod)
	defer func() {
		ticker.Stop()
		// unblock the read loop
		_ = conn.Close()
	}()

	for {
		select {
		case msg, ok := <-client.Messages():
			_ = conn.SetWriteDeadline(time.Now().Add(h.opts.WriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg.Frame); err != nil {
				logger.Warn("websocket write failed", slog.String("event", msg.Event), slog.Any("error", err))
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(h.opts.WriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// route dispatches one inbound frame. Registry rejections are reported to
// the client by the registry itself; only decode failures are reported here.
func (h *Handler) route(ctx context.Context, id model.ConnID, frame []byte, logger *slog.Logger) {
	env, err := decodeFrame(frame)
	if err != nil {
		h.reject(id, err, logger)
		return
	}

	switch env.Event {
	case EventCreateRoom:
		var req CreateRoomRequest
		if err := decodeData(env, &req); err != nil {
			h.reject(id, err, logger)
			return
		}
		params, err := req.Params()
		if err != nil {
			h.reject(id, err, logger)
			return
		}
		_, _ = h.rooms.CreateRoom(ctx, id, params)

	case EventJoinRoom:
		var req JoinRoomRequest
		if err := decodeData(env, &req); err != nil {
			h.reject(id, err, logger)
			return
		}
		params, err := req.Params()
		if err != nil {
			h.reject(id, err, logger)
			return
		}
		_, _ = h.rooms.JoinRoom(ctx, id, params)

	case EventLeaveRoom:
		_ = h.rooms.LeaveRoom(ctx, id)

	case EventToggleReady:
		_ = h.rooms.ToggleReady(ctx, id)

	case EventStartGame:
		_ = h.rooms.StartGame(ctx, id)

	case EventEndGame:
		_ = h.rooms.EndGame(ctx, id)

	case EventGameAction:
		action, err := decodeGameAction(env)
		if err != nil {
			h.reject(id, err, logger)
			return
		}
		_ = h.rooms.DispatchGameAction(ctx, id, action)

	case EventChatMessage:
		var req ChatMessageRequest
		if err := decodeData(env, &req); err != nil {
			h.reject(id, err, logger)
			return
		}
		_ = h.rooms.SendChatMessage(ctx, id, req.Message)

	default:
		h.reject(id, fmt.Errorf("%w: unknown event %q", model.ErrInvalidRequest, env.Event), logger)
	}
}

func (h *Handler) reject(id model.ConnID, err error, logger *slog.Logger) {
	logger.Warn("inbound frame rejected", slog.Any("error", err))
	h.hub.Send(id, model.NewErrorEvent(err))
}

func (h *Handler) track(id model.ConnID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[id] = conn
}

func (h *Handler) untrack(id model.ConnID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, id)
}

// ConnectionCount returns the number of open player connections
func (h *Handler) ConnectionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Shutdown sends a going-away close frame to every open connection
func (h *Handler) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	deadline := time.Now().Add(h.opts.WriteWait)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	var errs []error
	for _, c := range conns {
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
		if err := c.WriteControl(websocket.CloseMessage, msg, deadline); err != nil && !errors.Is(err, websocket.ErrCloseSent) {
			errs = append(errs, err)
		}
		_ = c.Close()
	}
	h.logger.Info("websocket connections closed", slog.Int("count", len(conns)))
	return errors.Join(errs...)
}
