package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_WebSocketURL(t *testing.T) {
	tests := []struct {
		server string
		want   string
	}{
		{"http://localhost:8080", "ws://localhost:8080/ws"},
		{"https://rooms.example.com/", "wss://rooms.example.com/ws"},
		{"ws://already", "ws://already/ws"},
	}

	for _, tt := range tests {
		t.Run(tt.server, func(t *testing.T) {
			c := &Config{ServerURL: tt.server}
			assert.Equal(t, tt.want, c.WebSocketURL())
		})
	}
}

func TestDefaultConfig_Env(t *testing.T) {
	t.Setenv("ROOMCTL_SERVER", "http://rooms:9000")
	t.Setenv("ROOMCTL_USERNAME", "")
	t.Setenv("USER", "carol")

	c := DefaultConfig()
	assert.Equal(t, "http://rooms:9000", c.ServerURL)
	assert.Equal(t, "carol", c.Username)
	assert.Equal(t, "text", c.Output)
}

func TestReadEvents(t *testing.T) {
	stream := strings.Join([]string{
		": keepalive",
		"",
		"event: room-state",
		`data: {"id":"ROOM01"}`,
		"",
		"event: chat-message",
		"data: line one",
		"data: line two",
		"",
		"data: orphan data is dropped",
		"",
	}, "\n")

	type got struct{ event, data string }
	var events []got
	err := readEvents(strings.NewReader(stream), func(event, data string) {
		events = append(events, got{event, data})
	})
	require.NoError(t, err)
	assert.Equal(t, []got{
		{"room-state", `{"id":"ROOM01"}`},
		{"chat-message", "line one\nline two"},
	}, events)
}

func TestPrintEvent(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		printEvent(&buf, "chat-message", "hello\nworld", false, now)
		out := buf.String()
		assert.Contains(t, out, "[2024-01-01 12:00:00]")
		assert.Contains(t, out, "chat-message")
		assert.Contains(t, out, "hello world")
	})

	t.Run("text truncates long data", func(t *testing.T) {
		var buf bytes.Buffer
		printEvent(&buf, "room-state", strings.Repeat("x", 150), false, now)
		assert.Contains(t, buf.String(), strings.Repeat("x", 100)+"...")
		assert.NotContains(t, buf.String(), strings.Repeat("x", 101))
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		printEvent(&buf, "error", `{"code":"ROOM_FULL"}`, true, now)

		var ev SSEEvent
		require.NoError(t, json.Unmarshal(buf.Bytes(), &ev))
		assert.Equal(t, SSEEvent{Time: now, Event: "error", Data: `{"code":"ROOM_FULL"}`}, ev)
	})
}

func TestOutput_RoomList(t *testing.T) {
	var buf bytes.Buffer
	NewOutput("text", &buf).Print(RoomList{Rooms: []RoomSummary{
		{ID: "ROOM01", Name: "Quiz night", GameType: "trivia", Host: "alice", PlayerCount: 2, MaxPlayers: 4},
		{ID: "ROOM02", Name: "Sweeper", GameType: "mines", Host: "bob", PlayerCount: 1, MaxPlayers: 1, GameStarted: true},
	}})

	out := buf.String()
	assert.Contains(t, out, "ROOM01")
	assert.Contains(t, out, "Quiz night")
	assert.Contains(t, out, "2/4")
	assert.Contains(t, out, "lobby")
	assert.Contains(t, out, "playing")
}

func TestOutput_EmptyRoomList(t *testing.T) {
	var buf bytes.Buffer
	NewOutput("text", &buf).Print(RoomList{})
	assert.Equal(t, "No rooms\n", buf.String())
}

func TestOutput_Room(t *testing.T) {
	var buf bytes.Buffer
	NewOutput("text", &buf).Print(RoomDetail{Room: Room{
		ID: "ROOM01", Name: "Quiz night", GameType: "trivia", MaxPlayers: 4, GameStarted: true,
		Players: []Player{
			{Username: "alice", IsHost: true},
			{Username: "bob", IsReady: true, Score: 8},
		},
		GameState: json.RawMessage(`{"currentQuestionIndex":1}`),
	}})

	out := buf.String()
	assert.Contains(t, out, "Room: Quiz night (ROOM01)")
	assert.Contains(t, out, "Players (2/4):")
	assert.Contains(t, out, "host")
	assert.Contains(t, out, "8")
	assert.Contains(t, out, `State: {"currentQuestionIndex":1}`)
}

func TestOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	NewOutput("json", &buf).Print(HealthResult{Status: "ok", Rooms: 3, Connections: 5})

	var h HealthResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &h))
	assert.Equal(t, HealthResult{Status: "ok", Rooms: 3, Connections: 5}, h)
}
