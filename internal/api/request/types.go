package request

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/mcoot/gamerooms/internal/model"
)

// ListRoomsQuery filters GET /api/v1/rooms
type ListRoomsQuery struct {
	GameType string `json:"gameType"`
	// Open keeps only rooms that can still be joined
	Open *bool `json:"open"`
}

// ParseListRoomsQuery reads and validates the query string
func ParseListRoomsQuery(q url.Values) (ListRoomsQuery, error) {
	query := ListRoomsQuery{GameType: q.Get("gameType")}
	if raw := q.Get("open"); raw != "" {
		open, err := strconv.ParseBool(raw)
		if err != nil {
			return ListRoomsQuery{}, fmt.Errorf("%w: open must be a boolean", model.ErrInvalidRequest)
		}
		query.Open = &open
	}
	if query.GameType != "" {
		gt, err := model.ParseGameType(query.GameType)
		if err != nil {
			return ListRoomsQuery{}, err
		}
		query.GameType = string(gt)
	}
	return query, nil
}

// Matches reports whether a room passes the filters
func (q ListRoomsQuery) Matches(s model.RoomSummary) bool {
	if q.GameType != "" && string(s.GameType) != q.GameType {
		return false
	}
	if q.Open != nil {
		open := !s.GameStarted && s.PlayerCount < s.MaxPlayers
		if open != *q.Open {
			return false
		}
	}
	return true
}
