package model

import (
	"strings"
	"unicode/utf8"
)

// ConnID is the opaque handle of one live client connection
type ConnID string

// PlayerID uniquely identifies a player within the coordinator
type PlayerID string

// PlayerIDForConn derives the player id bound to a connection
func PlayerIDForConn(conn ConnID) PlayerID {
	return PlayerID("player_" + string(conn))
}

// Player represents a room member. It lives exactly as long as its membership.
type Player struct {
	ID       PlayerID `json:"id"`
	Username string   `json:"username"`
	Avatar   string   `json:"avatar"`
	IsHost   bool     `json:"isHost"`
	IsReady  bool     `json:"isReady"`
	Score    int      `json:"score"`

	// ConnID is never sent to clients
	ConnID ConnID `json:"-"`
}

// NewPlayer creates a player bound to a connection
func NewPlayer(conn ConnID, username string) *Player {
	return &Player{
		ID:       PlayerIDForConn(conn),
		Username: username,
		Avatar:   AvatarFor(username),
		ConnID:   conn,
	}
}

// AvatarFor returns the display glyph for a username: its first rune upper-cased
func AvatarFor(username string) string {
	r, size := utf8.DecodeRuneInString(strings.TrimSpace(username))
	if size == 0 || r == utf8.RuneError {
		return "?"
	}
	return strings.ToUpper(string(r))
}
