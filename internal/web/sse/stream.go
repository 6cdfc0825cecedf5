// Package sse serves read-only Server-Sent-Events feeds for spectators: the
// lobby feed carries rooms-list updates, a room feed carries everything
// broadcast to that room. Spectators never join rooms.
package sse

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/mcoot/gamerooms/internal/dependencies/random"
	"github.com/mcoot/gamerooms/internal/model"
	"github.com/mcoot/gamerooms/internal/web/hub"
)

// Rooms is the read-only registry surface used for initial snapshots
type Rooms interface {
	RoomsList(ctx context.Context) ([]model.RoomSummary, error)
	Room(ctx context.Context, id model.RoomID) (*model.Room, error)
}

// Options tunes stream handling
type Options struct {
	// KeepalivePeriod is the interval between comment frames
	KeepalivePeriod time.Duration
	// WriteWait bounds each write, since streams outlive the server write timeout
	WriteWait time.Duration
}

// DefaultOptions returns the standard stream settings
func DefaultOptions() Options {
	return Options{
		KeepalivePeriod: 30 * time.Second,
		WriteWait:       10 * time.Second,
	}
}

// Handler serves spectator streams
type Handler struct {
	rooms  Rooms
	hub    *hub.Manager
	random random.Random
	opts   Options
	logger *slog.Logger
}

// NewHandler creates a Handler
func NewHandler(rooms Rooms, hubManager *hub.Manager, rnd random.Random, opts Options, logger *slog.Logger) *Handler {
	defaults := DefaultOptions()
	if opts.KeepalivePeriod <= 0 {
		opts.KeepalivePeriod = defaults.KeepalivePeriod
	}
	if opts.WriteWait <= 0 {
		opts.WriteWait = defaults.WriteWait
	}
	return &Handler{
		rooms:  rooms,
		hub:    hubManager,
		random: rnd,
		opts:   opts,
		logger: logger.With(slog.String("component", "sse")),
	}
}

// Lobby handles GET /events
func (h *Handler) Lobby(w http.ResponseWriter, r *http.Request) {
	s, ok := h.open(w)
	if !ok {
		return
	}

	id := model.ConnID(h.random.UUID())
	client := h.hub.Connect(id)
	defer h.hub.Disconnect(id)

	rooms, err := h.rooms.RoomsList(r.Context())
	if err != nil {
		h.logger.Error("failed to list rooms", slog.Any("error", err))
		return
	}
	if err := s.event(model.NewEvent(model.EventRoomsList, rooms)); err != nil {
		return
	}
	h.logger.Info("lobby spectator connected", slog.String("conn_id", string(id)))
	h.pump(r.Context(), s, client)
}

// Room handles GET /rooms/{id}/events. The stream ends when the room is deleted.
func (h *Handler) Room(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(strings.ToUpper(mux.Vars(r)["id"]))
	id := model.ConnID(h.random.UUID())

	// watch before the snapshot so no broadcast falls between them
	client := h.hub.Watch(id, roomID)
	defer h.hub.Disconnect(id)

	room, err := h.rooms.Room(r.Context(), roomID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, model.ErrRoomNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	s, ok := h.open(w)
	if !ok {
		return
	}
	if err := s.event(model.NewEvent(model.EventRoomState, room)); err != nil {
		return
	}
	h.logger.Info("room spectator connected",
		slog.String("conn_id", string(id)),
		slog.String("room_id", string(roomID)))
	h.pump(r.Context(), s, client)
}

func (h *Handler) open(w http.ResponseWriter) (*stream, bool) {
	if _, ok := w.(http.Flusher); !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return nil, false
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	return &stream{w: w, rc: http.NewResponseController(w), writeWait: h.opts.WriteWait}, true
}

func (h *Handler) pump(ctx context.Context, s *stream, client *hub.Client) {
	ticker := time.NewTicker(h.opts.KeepalivePeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-client.Messages():
			if !ok {
				// room deleted or replaced
				return
			}
			if err := s.write(formatSSEMessage(msg.Event, string(msg.Data))); err != nil {
				h.logger.Debug("stream write failed",
					slog.String("conn_id", string(client.ID())),
					slog.Any("error", err))
				return
			}
		case <-ticker.C:
			if err := s.write([]byte(": keepalive\n\n")); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

type stream struct {
	w         http.ResponseWriter
	rc        *http.ResponseController
	writeWait time.Duration
}

func (s *stream) event(ev model.Event) error {
	data, err := json.Marshal(ev.Payload)
	if err != nil {
		return err
	}
	return s.write(formatSSEMessage(string(ev.Type), string(data)))
}

func (s *stream) write(b []byte) error {
	// not every writer supports deadlines; httptest recorders don't
	if err := s.rc.SetWriteDeadline(time.Now().Add(s.writeWait)); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return err
	}
	if _, err := s.w.Write(b); err != nil {
		return err
	}
	return s.rc.Flush()
}

// formatSSEMessage formats an SSE message with event name and data.
// Multi-line data gets a "data: " prefix on each line.
func formatSSEMessage(eventName, data string) []byte {
	var b strings.Builder
	b.WriteString("event: ")
	b.WriteString(eventName)
	b.WriteByte('\n')
	for _, line := range splitLines(data) {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return []byte(b.String())
}

// splitLines splits a string into lines, handling various line endings
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r", "")
	lines := strings.Split(s, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
