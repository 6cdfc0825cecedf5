package tui

import (
	"encoding/json"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gamerooms/internal/model"
)

type fakeSender struct {
	frames []Frame
	err    error
}

func (f *fakeSender) Send(fr Frame) error {
	if f.err != nil {
		return f.err
	}
	f.frames = append(f.frames, fr)
	return nil
}

func envelope(t *testing.T, event model.EventType, payload any) eventMsg {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return eventMsg{Event: string(event), Data: data}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func typeLine(t *testing.T, m Model, line string) Model {
	t.Helper()
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(line)})
	return update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func testRoom() *model.Room {
	alice := model.NewPlayer("c1", "alice")
	alice.IsHost = true
	bob := model.NewPlayer("c2", "bob")
	bob.Score = 8
	return &model.Room{
		ID: "ROOM01", Name: "Quiz night", GameType: model.GameTypeSpy, Host: "alice",
		Players: []*model.Player{alice, bob}, MaxPlayers: 4,
	}
}

func TestModel_LobbyList(t *testing.T) {
	m := NewModel(&fakeSender{}, nil, "alice")
	m = update(t, m, envelope(t, model.EventRoomsList, []model.RoomSummary{
		{ID: "ROOM01", Name: "Quiz night", GameType: model.GameTypeTrivia, PlayerCount: 1, MaxPlayers: 4},
	}))

	view := m.View()
	assert.Contains(t, view, "ROOM01")
	assert.Contains(t, view, "Quiz night")
	assert.Contains(t, view, "1/4")
}

func TestModel_RoomStateAndVote(t *testing.T) {
	sender := &fakeSender{}
	m := NewModel(sender, nil, "alice")
	m = update(t, m, envelope(t, model.EventRoomState, testRoom()))
	require.NotNil(t, m.room)
	assert.Equal(t, model.GameTypeSpy, m.room.GameType)

	view := m.View()
	assert.Contains(t, view, "bob")
	assert.Contains(t, view, "Find the Spy")

	m = typeLine(t, m, "/vote bob")
	require.Len(t, sender.frames, 1)
	assert.Equal(t, "game-action", sender.frames[0].Event)
	assert.Equal(t, "vote-spy", sender.frames[0].Data.(map[string]any)["type"])
	assert.Empty(t, m.input)
}

func TestModel_PlayerEventsUpdateRoom(t *testing.T) {
	m := NewModel(&fakeSender{}, nil, "alice")
	room := testRoom()
	m = update(t, m, envelope(t, model.EventRoomCreated, model.RoomCreatedPayload{RoomID: room.ID, Room: room}))

	carol := model.NewPlayer("c3", "carol")
	room.Players = append(room.Players, carol)
	m = update(t, m, envelope(t, model.EventPlayerJoined, model.PlayerEventPayload{Player: carol, Room: room}))

	assert.Len(t, m.room.Players, 3)
	assert.Contains(t, m.log[len(m.log)-1].text, "carol joined")
}

func TestModel_ChatAndErrors(t *testing.T) {
	m := NewModel(&fakeSender{}, nil, "alice")
	m = update(t, m, envelope(t, model.EventChatMessage, model.ChatMessage{Username: "bob", Message: "hi", Type: model.ChatMessageUser}))
	m = update(t, m, envelope(t, model.EventChatMessage, model.ChatMessage{Username: model.SystemUsername, Message: "Hint 1", Type: model.ChatMessageSystem}))
	m = update(t, m, envelope(t, model.EventError, model.ErrorPayload{Message: "room not found", Code: "ROOM_NOT_FOUND"}))

	n := len(m.log)
	assert.Equal(t, logLine{kind: lineChat, text: "bob: hi"}, m.log[n-3])
	assert.Equal(t, logLine{kind: lineSystem, text: "Hint 1"}, m.log[n-2])
	assert.Equal(t, logLine{kind: lineError, text: "room not found (ROOM_NOT_FOUND)"}, m.log[n-1])
}

func TestModel_Announcements(t *testing.T) {
	m := NewModel(&fakeSender{}, nil, "alice")
	m = update(t, m, envelope(t, model.EventAnswerCorrect, model.AnswerCorrectPayload{Player: "bob", Answer: "Jupiter", Points: 8}))
	assert.Equal(t, `bob answered "Jupiter" correctly (+8)`, m.log[len(m.log)-1].text)

	m = update(t, m, envelope(t, model.EventTriviaFinished, model.TriviaFinishedPayload{
		Scores: []model.PlayerScore{{Player: "bob", Score: 8}, {Player: "alice", Score: 0}},
	}))
	assert.Equal(t, "Trivia finished: bob 8, alice 0", m.log[len(m.log)-1].text)
}

func TestModel_LeaveClearsRoom(t *testing.T) {
	sender := &fakeSender{}
	m := NewModel(sender, nil, "alice")
	m = update(t, m, envelope(t, model.EventRoomState, testRoom()))

	m = typeLine(t, m, "/leave")
	assert.Nil(t, m.room)
	require.Len(t, sender.frames, 1)
	assert.Equal(t, "leave-room", sender.frames[0].Event)
}

func TestModel_InputErrorsAreLogged(t *testing.T) {
	sender := &fakeSender{err: errors.New("broken pipe")}
	m := NewModel(sender, nil, "alice")

	m = typeLine(t, m, "/dance")
	assert.Equal(t, lineError, m.log[len(m.log)-1].kind)

	m = typeLine(t, m, "hello")
	assert.Equal(t, "send failed: broken pipe", m.log[len(m.log)-1].text)
}

func TestModel_Closed(t *testing.T) {
	sender := &fakeSender{}
	m := NewModel(sender, nil, "alice")
	m = update(t, m, closedMsg{})
	assert.True(t, m.closed)

	m = typeLine(t, m, "hello")
	assert.Empty(t, sender.frames)
	assert.Equal(t, "not connected", m.log[len(m.log)-1].text)
}

func TestModel_Backspace(t *testing.T) {
	m := NewModel(&fakeSender{}, nil, "alice")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("héllo")})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "héll", m.input)
}

func TestModel_WaitForEvent(t *testing.T) {
	events := make(chan model.Envelope, 1)
	m := NewModel(&fakeSender{}, events, "alice")

	events <- model.Envelope{Event: "rooms-list", Data: json.RawMessage(`[]`)}
	msg := m.Init()()
	assert.Equal(t, eventMsg{Event: "rooms-list", Data: json.RawMessage(`[]`)}, msg)

	close(events)
	assert.Equal(t, closedMsg{}, m.Init()())
}
