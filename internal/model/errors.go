package model

import "errors"

// Common errors used across the application
var (
	// Room errors
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomFull           = errors.New("room is full")
	ErrGameAlreadyStarted = errors.New("game already started")
	ErrGameNotStarted     = errors.New("game has not started")
	ErrNotHost            = errors.New("only host can perform this action")
	ErrPlayersNotReady    = errors.New("all players must be ready")

	// Game errors
	ErrUnknownGameType = errors.New("unknown game type")
	ErrUnknownAction   = errors.New("unknown game action")

	// Catch-all validation failure; wrapped with detail via fmt.Errorf("%w: ...")
	ErrInvalidRequest = errors.New("invalid request")
)

// Error codes carried by outbound error events
const (
	CodeRoomNotFound       = "ROOM_NOT_FOUND"
	CodeRoomFull           = "ROOM_FULL"
	CodeGameAlreadyStarted = "GAME_ALREADY_STARTED"
	CodeGameNotStarted     = "GAME_NOT_STARTED"
	CodeNotHost            = "NOT_HOST"
	CodePlayersNotReady    = "PLAYERS_NOT_READY"
	CodeUnknownGameType    = "UNKNOWN_GAME_TYPE"
	CodeUnknownAction      = "UNKNOWN_ACTION"
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInternalError      = "INTERNAL_ERROR"
)

// ErrorCode returns the stable code for an error in the taxonomy
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return CodeRoomNotFound
	case errors.Is(err, ErrRoomFull):
		return CodeRoomFull
	case errors.Is(err, ErrGameAlreadyStarted):
		return CodeGameAlreadyStarted
	case errors.Is(err, ErrGameNotStarted):
		return CodeGameNotStarted
	case errors.Is(err, ErrNotHost):
		return CodeNotHost
	case errors.Is(err, ErrPlayersNotReady):
		return CodePlayersNotReady
	case errors.Is(err, ErrUnknownGameType):
		return CodeUnknownGameType
	case errors.Is(err, ErrUnknownAction):
		return CodeUnknownAction
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	default:
		return CodeInternalError
	}
}
