package model

import (
	"encoding/json"
	"time"
)

// EventType identifies the type of outbound event
type EventType string

const (
	// Lobby events
	EventRoomsList          EventType = "rooms-list"
	EventRoomCreated        EventType = "room-created"
	EventRoomState          EventType = "room-state"
	EventPlayerJoined       EventType = "player-joined"
	EventPlayerLeft         EventType = "player-left"
	EventPlayerReadyChanged EventType = "player-ready-changed"
	EventGameStarted        EventType = "game-started"
	EventGameEnded          EventType = "game-ended"
	EventGameStateUpdated   EventType = "game-state-updated"
	EventChatMessage        EventType = "chat-message"
	EventError              EventType = "error"

	// Game announcements
	EventAnswerCorrect   EventType = "answer-correct"
	EventAnswerIncorrect EventType = "answer-incorrect"
	EventTriviaFinished  EventType = "trivia-finished"
	EventWordFound       EventType = "word-found"
	EventPuzzleComplete  EventType = "puzzle-complete"
	EventGuessCorrect    EventType = "guess-correct"
)

// Event is one outbound message: a name plus a type-specific payload
type Event struct {
	Type    EventType
	Payload any
}

// NewEvent creates an event
func NewEvent(t EventType, payload any) Event {
	return Event{Type: t, Payload: payload}
}

// Envelope is the wire framing shared by both directions
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// MarshalJSON encodes the event in its wire envelope
func (e Event) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(e.Payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: string(e.Type), Data: data})
}

// RoomCreatedPayload is sent to the creator of a room
type RoomCreatedPayload struct {
	RoomID RoomID `json:"roomId"`
	Room   *Room  `json:"room"`
}

// PlayerEventPayload carries player-joined, player-left and player-ready-changed
type PlayerEventPayload struct {
	Player *Player `json:"player"`
	Room   *Room   `json:"room"`
}

// RoomPayload carries game-started and game-ended
type RoomPayload struct {
	Room *Room `json:"room"`
}

// GameStateUpdatedPayload echoes the processed action with the new room state
type GameStateUpdatedPayload struct {
	Room   *Room      `json:"room"`
	Action GameAction `json:"action"`
}

// AnswerCorrectPayload announces a correct trivia answer
type AnswerCorrectPayload struct {
	Player string `json:"player"`
	Answer string `json:"answer"`
	Points int    `json:"points"`
}

// AnswerIncorrectPayload announces a wrong trivia answer
type AnswerIncorrectPayload struct {
	Player string `json:"player"`
	Answer string `json:"answer"`
}

// PlayerScore is one line of a final scoreboard
type PlayerScore struct {
	Player string `json:"player"`
	Score  int    `json:"score"`
}

// TriviaFinishedPayload announces that the question bank is exhausted
type TriviaFinishedPayload struct {
	Scores []PlayerScore `json:"scores"`
}

// WordFoundPayload announces a newly found hidden word
type WordFoundPayload struct {
	Player string `json:"player"`
	Word   string `json:"word"`
	Points int    `json:"points"`
}

// PuzzleCompletePayload announces that every hidden word was found
type PuzzleCompletePayload struct {
	FoundWords []string `json:"foundWords"`
}

// GuessCorrectPayload announces a correct guess
type GuessCorrectPayload struct {
	Player string `json:"player"`
	Guess  string `json:"guess"`
	Points int    `json:"points"`
}

// ChatMessageType distinguishes user-authored from system-authored chat
type ChatMessageType string

const (
	ChatMessageUser   ChatMessageType = "user"
	ChatMessageSystem ChatMessageType = "system"
)

// SystemUsername authors every system chat message
const SystemUsername = "System"

// ChatMessage is a chat line relayed to a room
type ChatMessage struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Type      ChatMessageType `json:"type"`
}

// ErrorPayload is delivered only to the offending connection
type ErrorPayload struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// NewErrorEvent builds the scoped error event for err
func NewErrorEvent(err error) Event {
	return NewEvent(EventError, ErrorPayload{
		Message: err.Error(),
		Code:    ErrorCode(err),
	})
}
