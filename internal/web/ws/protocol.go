package ws

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mcoot/gamerooms/internal/model"
	"github.com/mcoot/gamerooms/internal/services/room"
	"github.com/mcoot/gamerooms/internal/validation"
)

// Inbound event names
const (
	EventCreateRoom  = "create-room"
	EventJoinRoom    = "join-room"
	EventLeaveRoom   = "leave-room"
	EventToggleReady = "toggle-ready"
	EventStartGame   = "start-game"
	EventEndGame     = "end-game"
	EventGameAction  = "game-action"
	EventChatMessage = "chat-message"
)

// CreateRoomRequest is the create-room payload
type CreateRoomRequest struct {
	RoomName   string             `json:"roomName"`
	GameType   string             `json:"gameType" validate:"required"`
	Username   string             `json:"username" validate:"required"`
	MaxPlayers int                `json:"maxPlayers" validate:"min=1"`
	Settings   model.RoomSettings `json:"settings,omitempty"`
}

// Params validates the request and converts it for the registry
func (r CreateRoomRequest) Params() (room.CreateParams, error) {
	if err := validation.Struct(r); err != nil {
		return room.CreateParams{}, err
	}
	gt, err := model.ParseGameType(r.GameType)
	if err != nil {
		return room.CreateParams{}, err
	}
	return room.CreateParams{
		RoomName:   r.RoomName,
		GameType:   gt,
		Username:   r.Username,
		MaxPlayers: r.MaxPlayers,
		Settings:   r.Settings,
	}, nil
}

// JoinRoomRequest is the join-room payload
type JoinRoomRequest struct {
	RoomID   string `json:"roomId" validate:"required"`
	Username string `json:"username" validate:"required"`
}

func (r JoinRoomRequest) Params() (room.JoinParams, error) {
	if err := validation.Struct(r); err != nil {
		return room.JoinParams{}, err
	}
	// codes are shown upper-case but typed by hand
	id := model.RoomID(strings.ToUpper(strings.TrimSpace(r.RoomID)))
	return room.JoinParams{RoomID: id, Username: r.Username}, nil
}

// ChatMessageRequest is the chat-message payload
type ChatMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

// decodeFrame splits an inbound frame into its event name and payload
func decodeFrame(frame []byte) (model.Envelope, error) {
	var env model.Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return model.Envelope{}, fmt.Errorf("%w: malformed frame", model.ErrInvalidRequest)
	}
	if env.Event == "" {
		return model.Envelope{}, fmt.Errorf("%w: missing event name", model.ErrInvalidRequest)
	}
	return env, nil
}

// decodeData unmarshals an event payload. Events without payloads accept
// a missing data field.
func decodeData(env model.Envelope, v any) error {
	if len(env.Data) == 0 {
		return fmt.Errorf("%w: %s requires data", model.ErrInvalidRequest, env.Event)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("%w: malformed %s data", model.ErrInvalidRequest, env.Event)
	}
	return nil
}

func decodeGameAction(env model.Envelope) (model.GameAction, error) {
	var action model.GameAction
	if err := decodeData(env, &action); err != nil {
		return model.GameAction{}, err
	}
	if action.Type == "" {
		return model.GameAction{}, fmt.Errorf("%w: game action type is required", model.ErrInvalidRequest)
	}
	return action, nil
}
