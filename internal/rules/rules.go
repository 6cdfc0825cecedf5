// Package rules interprets game actions and chat commands for each game
// type. A Ruleset mutates only the game state and the acting player's score
// it is handed, and reports what happened as announcement events. Rulesets
// keep no references to state between calls.
package rules

import (
	"fmt"
	"strings"
	"time"

	"github.com/mcoot/gamerooms/internal/model"
	"github.com/mcoot/gamerooms/internal/validation"
)

// Play is the context of a single action or chat command
type Play struct {
	// Player is the acting player; its Score may be mutated
	Player *model.Player
	// Players is the room roster in join order; read-only
	Players []*model.Player
	// Now is the processing time of the triggering event
	Now time.Time
}

// Ruleset is the per-game-type capability set
type Ruleset interface {
	GameType() model.GameType
	InitialState() model.GameState
	HandleAction(state model.GameState, play Play, action model.GameAction) ([]model.Event, error)
	HandleChatCommand(state model.GameState, play Play, text string) []model.Event
}

// Dispatcher routes calls to the ruleset of a room's game type
type Dispatcher struct {
	rulesets map[model.GameType]Ruleset
}

// NewDispatcher creates a dispatcher over the given rulesets
func NewDispatcher(rulesets ...Ruleset) *Dispatcher {
	d := &Dispatcher{rulesets: make(map[model.GameType]Ruleset, len(rulesets))}
	for _, rs := range rulesets {
		d.rulesets[rs.GameType()] = rs
	}
	return d
}

// Default returns a dispatcher with every supported game
func Default() *Dispatcher {
	return NewDispatcher(
		NewTrivia(DefaultQuestions()),
		NewWordSearch(DefaultHiddenWords()),
		NewMines(),
		NewMafia(),
		NewGuess(),
		NewSpy(),
	)
}

// Supports reports whether a ruleset is registered for the game type
func (d *Dispatcher) Supports(gt model.GameType) bool {
	_, ok := d.rulesets[gt]
	return ok
}

func (d *Dispatcher) ruleset(gt model.GameType) (Ruleset, error) {
	rs, ok := d.rulesets[gt]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownGameType, gt)
	}
	return rs, nil
}

// InitialState returns a fresh state for the game type
func (d *Dispatcher) InitialState(gt model.GameType) (model.GameState, error) {
	rs, err := d.ruleset(gt)
	if err != nil {
		return nil, err
	}
	return rs.InitialState(), nil
}

// HandleAction applies a game action. On error the state is unchanged.
func (d *Dispatcher) HandleAction(gt model.GameType, state model.GameState, play Play, action model.GameAction) ([]model.Event, error) {
	rs, err := d.ruleset(gt)
	if err != nil {
		return nil, err
	}
	return rs.HandleAction(state, play, action)
}

// HandleChatCommand lets the ruleset react to a chat line
func (d *Dispatcher) HandleChatCommand(gt model.GameType, state model.GameState, play Play, text string) []model.Event {
	rs, err := d.ruleset(gt)
	if err != nil {
		return nil
	}
	return rs.HandleChatCommand(state, play, text)
}

// answersMatch is exact case-insensitive equality after trimming
func answersMatch(submitted, expected string) bool {
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(expected))
}

// decode unmarshals and validates an action payload
func decode(action model.GameAction, v any) error {
	if err := action.Decode(v); err != nil {
		return err
	}
	return validation.Struct(v)
}

func unknownAction(gt model.GameType, action model.GameAction) error {
	return fmt.Errorf("%w: %q for %s", model.ErrUnknownAction, action.Type, gt)
}

func stateMismatch(gt model.GameType, state model.GameState) error {
	return fmt.Errorf("%s ruleset received %T state", gt, state)
}

// systemMessage builds a system-authored chat announcement. The registry
// stamps the id and timestamp when it publishes.
func systemMessage(text string) model.Event {
	return model.NewEvent(model.EventChatMessage, model.ChatMessage{
		Username: model.SystemUsername,
		Message:  text,
		Type:     model.ChatMessageSystem,
	})
}

// noChatCommands is embedded by rulesets without chat commands
type noChatCommands struct{}

func (noChatCommands) HandleChatCommand(model.GameState, Play, string) []model.Event {
	return nil
}
