package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case HealthResult:
		o.printHealthResult(v)
	case RoomList:
		o.printRoomList(v)
	case RoomDetail:
		o.printRoom(v.Room)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult response type
type HealthResult struct {
	Status      string `json:"status"`
	Rooms       int    `json:"rooms"`
	Connections int    `json:"connections"`
}

// RoomSummary is one row of the lobby listing
type RoomSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	GameType    string `json:"gameType"`
	Host        string `json:"host"`
	PlayerCount int    `json:"playerCount"`
	MaxPlayers  int    `json:"maxPlayers"`
	GameStarted bool   `json:"gameStarted"`
}

// RoomList response type
type RoomList struct {
	Rooms []RoomSummary `json:"rooms"`
}

// Player response type
type Player struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsHost   bool   `json:"isHost"`
	IsReady  bool   `json:"isReady"`
	Score    int    `json:"score"`
}

// Room response type
type Room struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	GameType    string          `json:"gameType"`
	Host        string          `json:"host"`
	Players     []Player        `json:"players"`
	MaxPlayers  int             `json:"maxPlayers"`
	GameStarted bool            `json:"gameStarted"`
	GameState   json.RawMessage `json:"gameState"`
}

// RoomDetail wraps a single room response
type RoomDetail struct {
	Room Room `json:"room"`
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	fmt.Fprintf(o.w, "Rooms: %d\n", h.Rooms)
	fmt.Fprintf(o.w, "Connections: %d\n", h.Connections)
}

func (o *Output) printRoomList(l RoomList) {
	if len(l.Rooms) == 0 {
		fmt.Fprintln(o.w, "No rooms")
		return
	}

	table := o.newTable([]string{"ID", "Name", "Game", "Host", "Players", "Status"})
	for _, r := range l.Rooms {
		table.Append([]string{
			r.ID,
			r.Name,
			r.GameType,
			r.Host,
			fmt.Sprintf("%d/%d", r.PlayerCount, r.MaxPlayers),
			roomStatus(r.GameStarted),
		})
	}
	table.Render()
}

func (o *Output) printRoom(r Room) {
	fmt.Fprintf(o.w, "Room: %s (%s)\n", r.Name, r.ID)
	fmt.Fprintf(o.w, "Game: %s\n", r.GameType)
	fmt.Fprintf(o.w, "Status: %s\n", roomStatus(r.GameStarted))
	fmt.Fprintf(o.w, "Players (%d/%d):\n", len(r.Players), r.MaxPlayers)

	table := o.newTable([]string{"Player", "Role", "Ready", "Score"})
	for _, p := range r.Players {
		role := ""
		if p.IsHost {
			role = "host"
		}
		table.Append([]string{p.Username, role, yesNo(p.IsReady || p.IsHost), strconv.Itoa(p.Score)})
	}
	table.Render()

	if r.GameStarted && len(r.GameState) > 0 {
		fmt.Fprintf(o.w, "State: %s\n", strings.TrimSpace(string(r.GameState)))
	}
}

func (o *Output) newTable(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(o.w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func roomStatus(started bool) string {
	if started {
		return "playing"
	}
	return "lobby"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
