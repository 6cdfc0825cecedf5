package response

import "github.com/mcoot/gamerooms/internal/model"

// HealthResponse is the response for the health endpoint
type HealthResponse struct {
	Status      string `json:"status"`
	Rooms       int    `json:"rooms"`
	Connections int    `json:"connections"`
}

// RoomsResponse lists room summaries in creation order
type RoomsResponse struct {
	Rooms []model.RoomSummary `json:"rooms"`
}

// RoomResponse is a full room snapshot
type RoomResponse struct {
	Room *model.Room `json:"room"`
}
