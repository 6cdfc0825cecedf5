package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"time"
)

// RoomID is the unique code of a live room
type RoomID string

// RoomSettings is the creation-time configuration echoed back to clients.
// The coordinator never mutates it.
type RoomSettings map[string]any

// Settings keys referencing the ledger-backed game mode
const (
	SettingExternalGameID = "externalGameId"
	SettingEntryFee       = "entryFee"
)

// ExternalGameRef points at a game run by an external ledger. It is opaque:
// the coordinator never queries or validates it.
type ExternalGameRef struct {
	ID       string `json:"id"`
	EntryFee string `json:"entryFee,omitempty"`
}

// ExternalGameFromSettings extracts the external game reference, if any
func ExternalGameFromSettings(s RoomSettings) *ExternalGameRef {
	id, ok := s[SettingExternalGameID]
	if !ok || id == nil {
		return nil
	}
	ref := &ExternalGameRef{ID: fmt.Sprint(id)}
	if ref.ID == "" {
		return nil
	}
	if fee, ok := s[SettingEntryFee]; ok && fee != nil {
		ref.EntryFee = fmt.Sprint(fee)
	}
	return ref
}

// Room is an ephemeral session grouping players around one game instance
type Room struct {
	ID           RoomID           `json:"id"`
	Name         string           `json:"name"`
	GameType     GameType         `json:"gameType"`
	Host         string           `json:"host"`
	Players      []*Player        `json:"players"` // join order
	MaxPlayers   int              `json:"maxPlayers"`
	GameStarted  bool             `json:"gameStarted"`
	GameState    GameState        `json:"gameState"`
	Settings     RoomSettings     `json:"settings"`
	ExternalGame *ExternalGameRef `json:"externalGame,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// UnmarshalJSON decodes gameState into the variant named by gameType
func (r *Room) UnmarshalJSON(b []byte) error {
	type plain Room
	aux := struct {
		*plain
		GameState json.RawMessage `json:"gameState"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	r.GameState = nil
	if len(aux.GameState) == 0 || bytes.Equal(aux.GameState, []byte("null")) {
		return nil
	}
	state, err := NewGameState(r.GameType)
	if err != nil {
		return fmt.Errorf("decode game state: %w", err)
	}
	if err := json.Unmarshal(aux.GameState, state); err != nil {
		return fmt.Errorf("decode %s game state: %w", r.GameType, err)
	}
	r.GameState = state
	return nil
}

// GetHost returns the current host, or nil if none
func (r *Room) GetHost() *Player {
	for _, p := range r.Players {
		if p.IsHost {
			return p
		}
	}
	return nil
}

// PlayerIndex returns the index of the player bound to conn, or -1
func (r *Room) PlayerIndex(conn ConnID) int {
	for i, p := range r.Players {
		if p.ConnID == conn {
			return i
		}
	}
	return -1
}

// GetPlayer returns the player bound to conn, or nil if not a member
func (r *Room) GetPlayer(conn ConnID) *Player {
	if i := r.PlayerIndex(conn); i >= 0 {
		return r.Players[i]
	}
	return nil
}

// IsFull reports whether the room has reached capacity
func (r *Room) IsFull() bool {
	return len(r.Players) >= r.MaxPlayers
}

// AllReady reports whether every non-host player is ready. The host is
// implicitly always ready.
func (r *Room) AllReady() bool {
	for _, p := range r.Players {
		if !p.IsHost && !p.IsReady {
			return false
		}
	}
	return true
}

// Clone returns a deep copy safe to hand outside the registry
func (r *Room) Clone() *Room {
	c := *r
	c.Players = make([]*Player, len(r.Players))
	for i, p := range r.Players {
		cp := *p
		c.Players[i] = &cp
	}
	if r.GameState != nil {
		c.GameState = r.GameState.Clone()
	}
	c.Settings = maps.Clone(r.Settings)
	if r.ExternalGame != nil {
		ext := *r.ExternalGame
		c.ExternalGame = &ext
	}
	return &c
}

// RoomSummary is the lobby-list view of a room
type RoomSummary struct {
	ID           RoomID           `json:"id"`
	Name         string           `json:"name"`
	GameType     GameType         `json:"gameType"`
	Host         string           `json:"host"`
	PlayerCount  int              `json:"playerCount"`
	MaxPlayers   int              `json:"maxPlayers"`
	GameStarted  bool             `json:"gameStarted"`
	ExternalGame *ExternalGameRef `json:"externalGame,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// Summary returns the lobby-list view of the room
func (r *Room) Summary() RoomSummary {
	s := RoomSummary{
		ID:          r.ID,
		Name:        r.Name,
		GameType:    r.GameType,
		Host:        r.Host,
		PlayerCount: len(r.Players),
		MaxPlayers:  r.MaxPlayers,
		GameStarted: r.GameStarted,
		CreatedAt:   r.CreatedAt,
	}
	if r.ExternalGame != nil {
		ext := *r.ExternalGame
		s.ExternalGame = &ext
	}
	return s
}
