package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mcoot/gamerooms/internal/model"
)

// Frame is one outbound message to the server
type Frame struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// command is a parsed input line: a frame to send, a local action, or both
type command struct {
	frame *Frame
	local localAction
}

type localAction int

const (
	localNone localAction = iota
	localHelp
	localQuit
	localLeft
)

// defaultMaxPlayers is the capacity of rooms created from the terminal
const defaultMaxPlayers = 8

var errNothingToSend = errors.New("nothing to send")

const helpText = `Commands:
  /create <game> [name]   create a room (trivia, word-search, mines, mafia, guess, spy)
  /join <code>            join a room by code
  /leave                  leave the current room
  /ready                  toggle ready
  /start, /end            start or end the game (host)
  /answer <text>          trivia answer
  /word <word>            word-search find
  /reveal <row> <col>     mines reveal
  /flag <row> <col>       mines flag
  /vote <player>          mafia day vote, or spy vote in find-the-spy
  /night <action> <player> mafia night action
  /guess <text>           guess the thing
  /set <answer>           set the round answer (guess host)
  /tick <seconds>         report elapsed round time (guess host)
  /action <type> [json]   send any game action
  /quit                   exit
Anything else is sent as chat.`

// parseInput turns an input line into a command. gameType is the current
// room's game and decides game-specific verbs like /vote.
func parseInput(line, username string, gameType model.GameType) (command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return command{}, errNothingToSend
	}
	if !strings.HasPrefix(line, "/") {
		return send(string(model.EventChatMessage), map[string]string{"message": line}), nil
	}

	verb, rest, _ := strings.Cut(line[1:], " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)

	switch strings.ToLower(verb) {
	case "help", "?":
		return command{local: localHelp}, nil
	case "quit", "exit":
		return command{local: localQuit}, nil

	case "create":
		if len(args) == 0 {
			return command{}, usage("/create <game> [name]")
		}
		gt, err := model.ParseGameType(args[0])
		if err != nil {
			return command{}, err
		}
		name := strings.TrimSpace(strings.TrimPrefix(rest, args[0]))
		if name == "" {
			name = username + "'s " + model.GameTypeDisplayName(gt)
		}
		return send("create-room", map[string]any{
			"roomName":   name,
			"gameType":   string(gt),
			"username":   username,
			"maxPlayers": defaultMaxPlayers,
		}), nil
	case "join":
		if len(args) != 1 {
			return command{}, usage("/join <code>")
		}
		return send("join-room", map[string]string{
			"roomId":   strings.ToUpper(args[0]),
			"username": username,
		}), nil
	case "leave":
		c := send("leave-room", nil)
		c.local = localLeft
		return c, nil
	case "ready":
		return send("toggle-ready", nil), nil
	case "start":
		return send("start-game", nil), nil
	case "end":
		return send("end-game", nil), nil

	case "answer":
		if rest == "" {
			return command{}, usage("/answer <text>")
		}
		return action("submit-answer", map[string]any{"answer": rest}), nil
	case "word":
		if len(args) != 1 {
			return command{}, usage("/word <word>")
		}
		return action("word-found", map[string]any{"word": args[0]}), nil
	case "reveal", "flag":
		if len(args) != 2 {
			return command{}, usage("/" + verb + " <row> <col>")
		}
		row, rerr := strconv.Atoi(args[0])
		col, cerr := strconv.Atoi(args[1])
		if rerr != nil || cerr != nil {
			return command{}, usage("/" + verb + " <row> <col>")
		}
		return action("cell-"+strings.ToLower(verb), map[string]any{"row": row, "col": col}), nil
	case "vote":
		if rest == "" {
			return command{}, usage("/vote <player>")
		}
		if gameType == model.GameTypeSpy {
			return action("vote-spy", map[string]any{"target": rest}), nil
		}
		return action("vote", map[string]any{"target": rest}), nil
	case "night":
		if len(args) < 2 {
			return command{}, usage("/night <action> <player>")
		}
		target := strings.TrimSpace(strings.TrimPrefix(rest, args[0]))
		return action("night-action", map[string]any{"action": args[0], "target": target}), nil
	case "guess":
		if rest == "" {
			return command{}, usage("/guess <text>")
		}
		return action("submit-guess", map[string]any{"guess": rest}), nil
	case "set":
		if rest == "" {
			return command{}, usage("/set <answer>")
		}
		return action("set-answer", map[string]any{"answer": rest}), nil
	case "tick":
		elapsed, err := strconv.Atoi(rest)
		if err != nil {
			return command{}, usage("/tick <seconds>")
		}
		return action("tick", map[string]any{"elapsed": elapsed}), nil
	case "action":
		if len(args) == 0 {
			return command{}, usage("/action <type> [json]")
		}
		fields := map[string]any{}
		if raw := strings.TrimSpace(strings.TrimPrefix(rest, args[0])); raw != "" {
			if err := json.Unmarshal([]byte(raw), &fields); err != nil {
				return command{}, fmt.Errorf("action fields must be a JSON object: %w", err)
			}
		}
		return action(args[0], fields), nil

	default:
		return command{}, fmt.Errorf("unknown command /%s (try /help)", verb)
	}
}

func send(event string, data any) command {
	return command{frame: &Frame{Event: event, Data: data}}
}

func action(actionType string, fields map[string]any) command {
	fields["type"] = actionType
	return send("game-action", fields)
}

func usage(u string) error {
	return fmt.Errorf("usage: %s", u)
}
