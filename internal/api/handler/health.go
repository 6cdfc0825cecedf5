package handler

import (
	"net/http"

	"github.com/mcoot/gamerooms/internal/api/response"
)

// Stats reports live counters for the health endpoint
type Stats interface {
	ConnectionCount() int
}

// HealthHandler handles GET /api/v1/health
type HealthHandler struct {
	rooms Rooms
	stats Stats
}

// NewHealthHandler creates a new health handler. stats may be nil.
func NewHealthHandler(rooms Rooms, stats Stats) *HealthHandler {
	return &HealthHandler{rooms: rooms, stats: stats}
}

// Health reports liveness with room and connection counts
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.rooms.RoomsList(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.HealthResponse{Status: "ok", Rooms: len(rooms)}
	if h.stats != nil {
		resp.Connections = h.stats.ConnectionCount()
	}
	response.JSON(w, http.StatusOK, resp)
}
