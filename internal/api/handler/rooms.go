package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/samber/lo"

	"github.com/mcoot/gamerooms/internal/api/request"
	"github.com/mcoot/gamerooms/internal/api/response"
	"github.com/mcoot/gamerooms/internal/model"
)

// Rooms is the read-only registry surface
type Rooms interface {
	RoomsList(ctx context.Context) ([]model.RoomSummary, error)
	Room(ctx context.Context, id model.RoomID) (*model.Room, error)
}

// RoomHandler handles room lookup endpoints
type RoomHandler struct {
	rooms Rooms
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(rooms Rooms) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

// List handles GET /api/v1/rooms
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	query, err := request.ParseListRoomsQuery(r.URL.Query())
	if err != nil {
		WriteError(w, err)
		return
	}

	rooms, err := h.rooms.RoomsList(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomsResponse{
		Rooms: lo.Filter(rooms, func(s model.RoomSummary, _ int) bool {
			return query.Matches(s)
		}),
	})
}

// Get handles GET /api/v1/rooms/{id}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.RoomID(strings.ToUpper(mux.Vars(r)["id"]))

	room, err := h.rooms.Room(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomResponse{Room: room})
}
