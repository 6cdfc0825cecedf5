package sse

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gamerooms/internal/dependencies/mocks"
	"github.com/mcoot/gamerooms/internal/model"
	"github.com/mcoot/gamerooms/internal/testutil"
	"github.com/mcoot/gamerooms/internal/web/hub"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "rooms-list",
			data:      `[{"id":"ABC234"}]`,
			expected:  "event: rooms-list\ndata: [{\"id\":\"ABC234\"}]\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "chat-message",
			data:      "{\n  \"message\": \"hi\"\n}",
			expected:  "event: chat-message\ndata: {\ndata:   \"message\": \"hi\"\ndata: }\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "data with carriage returns",
			eventName: "test",
			data:      "line1\r\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(formatSSEMessage(tt.eventName, tt.data)))
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", []string{""}},
		{"single", []string{"single"}},
		{"line1\nline2", []string{"line1", "line2"}},
		{"trailing\n", []string{"trailing"}},
		{"a\n\nb", []string{"a", "", "b"}},
		{"crlf\r\nline", []string{"crlf", "line"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitLines(tt.input))
		})
	}
}

type fakeRooms struct {
	summaries []model.RoomSummary
	rooms     map[model.RoomID]*model.Room
}

func (f *fakeRooms) RoomsList(context.Context) ([]model.RoomSummary, error) {
	return f.summaries, nil
}

func (f *fakeRooms) Room(_ context.Context, id model.RoomID) (*model.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return r, nil
}

type sseEvent struct {
	name string
	data string
}

// readEvent returns the next non-comment event from the stream
func readEvent(t *testing.T, r *bufio.Reader) (sseEvent, bool) {
	t.Helper()
	var ev sseEvent
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return ev, false
		}
		line = strings.TrimSuffix(line, "\n")
		switch {
		case line == "":
			if ev.name != "" {
				return ev, true
			}
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "event: "):
			ev.name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			ev.data += strings.TrimPrefix(line, "data: ")
		}
	}
}

type fixture struct {
	server *httptest.Server
	hub    *hub.Manager
	random *mocks.MockRandom
}

func newFixture(t *testing.T, rooms Rooms) *fixture {
	t.Helper()
	h := hub.NewManager(16, testutil.NopLogger())
	rnd := mocks.NewMockRandom()
	handler := NewHandler(rooms, h, rnd, Options{KeepalivePeriod: time.Hour}, testutil.NopLogger())

	r := mux.NewRouter()
	r.HandleFunc("/events", handler.Lobby).Methods(http.MethodGet)
	r.HandleFunc("/rooms/{id}/events", handler.Room).Methods(http.MethodGet)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &fixture{server: srv, hub: h, random: rnd}
}

func (f *fixture) open(t *testing.T, path string) (*http.Response, *bufio.Reader) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.server.URL+path, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp, bufio.NewReader(resp.Body)
}

func TestLobby_SnapshotThenGlobalEvents(t *testing.T) {
	rooms := &fakeRooms{summaries: []model.RoomSummary{{ID: "ABC234", Name: "Quiz"}}}
	f := newFixture(t, rooms)
	f.random.QueueUUID("spectator-1")

	resp, r := f.open(t, "/events")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	ev, ok := readEvent(t, r)
	require.True(t, ok)
	assert.Equal(t, "rooms-list", ev.name)
	assert.Contains(t, ev.data, `"ABC234"`)

	f.hub.PublishAll(model.NewEvent(model.EventRoomsList, []model.RoomSummary{}))
	ev, ok = readEvent(t, r)
	require.True(t, ok)
	assert.Equal(t, "rooms-list", ev.name)
	assert.Equal(t, "[]", ev.data)
}

func TestRoom_NotFound(t *testing.T) {
	f := newFixture(t, &fakeRooms{})

	resp, _ := f.open(t, "/rooms/NOPE99/events")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Eventually(t, func() bool { return f.hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestRoom_SnapshotBroadcastsAndClose(t *testing.T) {
	rooms := &fakeRooms{rooms: map[model.RoomID]*model.Room{
		"ABC234": {ID: "ABC234", Name: "Quiz", GameType: model.GameTypeTrivia},
	}}
	f := newFixture(t, rooms)

	// lower-case codes are accepted
	resp, r := f.open(t, "/rooms/abc234/events")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	ev, ok := readEvent(t, r)
	require.True(t, ok)
	assert.Equal(t, "room-state", ev.name)
	assert.Contains(t, ev.data, `"name":"Quiz"`)

	f.hub.Publish("ABC234", model.NewEvent(model.EventChatMessage, model.ChatMessage{Username: "alice", Message: "hi"}))
	ev, ok = readEvent(t, r)
	require.True(t, ok)
	assert.Equal(t, "chat-message", ev.name)
	assert.Contains(t, ev.data, `"message":"hi"`)

	f.hub.CloseGroup("ABC234")
	_, ok = readEvent(t, r)
	assert.False(t, ok, "stream should end when the room closes")
}
