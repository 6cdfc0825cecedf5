// Package tui is the interactive terminal client behind `roomctl play`.
package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mcoot/gamerooms/internal/model"
)

// maxLog bounds the scrollback
const maxLog = 200

// Options configures a play session
type Options struct {
	URL      string
	Username string
	// JoinRoom is joined as soon as the connection is up
	JoinRoom string
}

// eventMsg carries one inbound envelope
type eventMsg model.Envelope

// closedMsg reports the end of the connection
type closedMsg struct{ err error }

type lineKind int

const (
	lineChat lineKind = iota
	lineSelf
	lineSystem
	lineError
	lineScore
	lineInfo
)

type logLine struct {
	kind lineKind
	text string
}

// playerView and roomView mirror the room snapshot; the game state stays raw
type playerView struct {
	Username string `json:"username"`
	IsHost   bool   `json:"isHost"`
	IsReady  bool   `json:"isReady"`
	Score    int    `json:"score"`
}

type roomView struct {
	ID          model.RoomID    `json:"id"`
	Name        string          `json:"name"`
	GameType    model.GameType  `json:"gameType"`
	Host        string          `json:"host"`
	Players     []playerView    `json:"players"`
	MaxPlayers  int             `json:"maxPlayers"`
	GameStarted bool            `json:"gameStarted"`
	GameState   json.RawMessage `json:"gameState"`
}

type roomEnvelope struct {
	RoomID model.RoomID `json:"roomId"`
	Player *playerView  `json:"player"`
	Room   *roomView    `json:"room"`
}

// Model is the bubbletea model of a play session
type Model struct {
	sender   Sender
	events   <-chan model.Envelope
	username string

	rooms  []model.RoomSummary
	room   *roomView
	log    []logLine
	input  string
	closed bool

	width  int
	height int
}

// NewModel creates a session model reading from events and writing to sender
func NewModel(sender Sender, events <-chan model.Envelope, username string) Model {
	return Model{
		sender:   sender,
		events:   events,
		username: username,
		log:      []logLine{{kind: lineInfo, text: "Connected. Type /help for commands."}},
	}
}

func (m Model) Init() tea.Cmd {
	return m.waitForEvent()
}

func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		env, ok := <-events
		if !ok {
			var err error
			if s, ok := m.sender.(interface{ Err() error }); ok {
				err = s.Err()
			}
			return closedMsg{err: err}
		}
		return eventMsg(env)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case eventMsg:
		m.apply(model.Envelope(msg))
		return m, m.waitForEvent()

	case closedMsg:
		m.closed = true
		text := "Disconnected from server"
		if msg.err != nil {
			text += ": " + msg.err.Error()
		}
		m.push(lineError, text)
		return m, nil

	case tea.KeyMsg:
		return m.updateInput(msg)
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		line := m.input
		m.input = ""
		return m.submit(line)
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m, nil
}

func (m Model) submit(line string) (tea.Model, tea.Cmd) {
	var gameType model.GameType
	if m.room != nil {
		gameType = m.room.GameType
	}
	cmd, err := parseInput(line, m.username, gameType)
	if errors.Is(err, errNothingToSend) {
		return m, nil
	}
	if err != nil {
		m.push(lineError, err.Error())
		return m, nil
	}

	switch cmd.local {
	case localHelp:
		for _, l := range strings.Split(helpText, "\n") {
			m.push(lineInfo, l)
		}
	case localQuit:
		return m, tea.Quit
	case localLeft:
		if m.room != nil {
			m.push(lineInfo, "Left room "+string(m.room.ID))
		}
		m.room = nil
	}

	if cmd.frame != nil {
		if m.closed {
			m.push(lineError, "not connected")
			return m, nil
		}
		if err := m.sender.Send(*cmd.frame); err != nil {
			m.push(lineError, "send failed: "+err.Error())
		}
	}
	return m, nil
}

// apply folds one server event into the view state
func (m *Model) apply(env model.Envelope) {
	switch model.EventType(env.Event) {
	case model.EventRoomsList:
		var rooms []model.RoomSummary
		if json.Unmarshal(env.Data, &rooms) == nil {
			m.rooms = rooms
		}

	case model.EventRoomState:
		var room roomView
		if json.Unmarshal(env.Data, &room) == nil {
			m.room = &room
		}

	case model.EventRoomCreated:
		if p := m.decodeRoom(env); p != nil {
			m.push(lineInfo, fmt.Sprintf("Created room %s. Share the code to invite players.", p.RoomID))
		}
	case model.EventPlayerJoined:
		if p := m.decodeRoom(env); p != nil && p.Player != nil {
			m.push(lineInfo, p.Player.Username+" joined")
		}
	case model.EventPlayerLeft:
		if p := m.decodeRoom(env); p != nil && p.Player != nil {
			m.push(lineInfo, p.Player.Username+" left")
		}
	case model.EventPlayerReadyChanged:
		if p := m.decodeRoom(env); p != nil && p.Player != nil {
			state := "not ready"
			if p.Player.IsReady {
				state = "ready"
			}
			m.push(lineInfo, p.Player.Username+" is "+state)
		}
	case model.EventGameStarted:
		if m.decodeRoom(env) != nil {
			m.push(lineSystem, "Game started!")
		}
	case model.EventGameEnded:
		if m.decodeRoom(env) != nil {
			m.push(lineSystem, "Game ended, back to the lobby")
		}
	case model.EventGameStateUpdated:
		m.decodeRoom(env)

	case model.EventChatMessage:
		var chat model.ChatMessage
		if json.Unmarshal(env.Data, &chat) != nil {
			return
		}
		switch {
		case chat.Type == model.ChatMessageSystem:
			m.push(lineSystem, chat.Message)
		case chat.Username == m.username:
			m.push(lineSelf, chat.Username+": "+chat.Message)
		default:
			m.push(lineChat, chat.Username+": "+chat.Message)
		}

	case model.EventError:
		var e model.ErrorPayload
		if json.Unmarshal(env.Data, &e) == nil {
			m.push(lineError, fmt.Sprintf("%s (%s)", e.Message, e.Code))
		}

	case model.EventAnswerCorrect:
		var p model.AnswerCorrectPayload
		if json.Unmarshal(env.Data, &p) == nil {
			m.push(lineScore, fmt.Sprintf("%s answered %q correctly (+%d)", p.Player, p.Answer, p.Points))
		}
	case model.EventAnswerIncorrect:
		var p model.AnswerIncorrectPayload
		if json.Unmarshal(env.Data, &p) == nil {
			m.push(lineInfo, fmt.Sprintf("%s guessed %q: wrong", p.Player, p.Answer))
		}
	case model.EventTriviaFinished:
		var p model.TriviaFinishedPayload
		if json.Unmarshal(env.Data, &p) == nil {
			parts := make([]string, len(p.Scores))
			for i, s := range p.Scores {
				parts[i] = fmt.Sprintf("%s %d", s.Player, s.Score)
			}
			m.push(lineScore, "Trivia finished: "+strings.Join(parts, ", "))
		}
	case model.EventWordFound:
		var p model.WordFoundPayload
		if json.Unmarshal(env.Data, &p) == nil {
			m.push(lineScore, fmt.Sprintf("%s found %s (+%d)", p.Player, p.Word, p.Points))
		}
	case model.EventPuzzleComplete:
		m.push(lineScore, "Puzzle complete!")
	case model.EventGuessCorrect:
		var p model.GuessCorrectPayload
		if json.Unmarshal(env.Data, &p) == nil {
			m.push(lineScore, fmt.Sprintf("%s guessed %q (+%d)", p.Player, p.Guess, p.Points))
		}
	}
}

// decodeRoom reads a payload carrying a room and adopts the room snapshot
func (m *Model) decodeRoom(env model.Envelope) *roomEnvelope {
	var p roomEnvelope
	if json.Unmarshal(env.Data, &p) != nil {
		return nil
	}
	if p.Room != nil {
		m.room = p.Room
	}
	return &p
}

func (m *Model) push(kind lineKind, text string) {
	m.log = append(m.log, logLine{kind: kind, text: text})
	if len(m.log) > maxLog {
		m.log = m.log[len(m.log)-maxLog:]
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("gamerooms") + dimStyle.Render("  as "+m.username))
	b.WriteString("\n\n")

	if m.room == nil {
		b.WriteString(panelStyle.Render(m.renderLobby()))
	} else {
		b.WriteString(panelStyle.Render(m.renderRoom()))
	}
	b.WriteString("\n")

	for _, l := range m.visibleLog() {
		b.WriteString(renderLine(l))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(inputStyle.Render("> " + m.input + "█"))
	return b.String()
}

func (m Model) visibleLog() []logLine {
	// header, panel and input take roughly twelve rows
	rows := m.height - 12 - len(m.roster())
	if rows < 5 {
		rows = 5
	}
	if len(m.log) <= rows {
		return m.log
	}
	return m.log[len(m.log)-rows:]
}

func (m Model) roster() []playerView {
	if m.room == nil {
		return nil
	}
	return m.room.Players
}

func (m Model) renderLobby() string {
	if len(m.rooms) == 0 {
		return "No rooms yet. /create <game> to start one."
	}
	lines := []string{titleStyle.Render("Rooms")}
	for _, r := range m.rooms {
		status := "open"
		if r.GameStarted {
			status = "playing"
		} else if r.PlayerCount >= r.MaxPlayers {
			status = "full"
		}
		lines = append(lines, fmt.Sprintf("%s  %-20s %-14s %d/%d %s",
			r.ID, r.Name, model.GameTypeDisplayName(r.GameType), r.PlayerCount, r.MaxPlayers, dimStyle.Render(status)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRoom() string {
	r := m.room
	status := "lobby"
	if r.GameStarted {
		status = "playing"
	}
	lines := []string{
		titleStyle.Render(r.Name) + dimStyle.Render(fmt.Sprintf("  %s · %s · %s", r.ID, model.GameTypeDisplayName(r.GameType), status)),
	}
	for _, p := range r.Players {
		name := p.Username
		if name == m.username {
			name = selfStyle.Render(name)
		}
		var tags []string
		if p.IsHost {
			tags = append(tags, "host")
		} else if p.IsReady {
			tags = append(tags, "ready")
		}
		line := fmt.Sprintf("%s %s", name, scoreStyle.Render(fmt.Sprintf("%d", p.Score)))
		if len(tags) > 0 {
			line += dimStyle.Render(" [" + strings.Join(tags, ", ") + "]")
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderLine(l logLine) string {
	switch l.kind {
	case lineSelf:
		return selfStyle.Render(l.text)
	case lineSystem:
		return systemStyle.Render(l.text)
	case lineError:
		return errorStyle.Render(l.text)
	case lineScore:
		return scoreStyle.Render(l.text)
	case lineInfo:
		return dimStyle.Render(l.text)
	default:
		return l.text
	}
}
