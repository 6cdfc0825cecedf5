package rules

import (
	"github.com/mcoot/gamerooms/internal/model"
)

const (
	ActionCellReveal = "cell-reveal"
	ActionCellFlag   = "cell-flag"

	minesStatusPlaying = "playing"
)

type cellPayload struct {
	Row *int `json:"row" validate:"required,min=0"`
	Col *int `json:"col" validate:"required,min=0"`
}

// Mines only records the latest move; the board itself is client-side
type Mines struct {
	noChatCommands
}

func NewMines() *Mines {
	return &Mines{}
}

func (m *Mines) GameType() model.GameType {
	return model.GameTypeMines
}

func (m *Mines) InitialState() model.GameState {
	return &model.MinesState{
		Grid:   [][]int{},
		Status: minesStatusPlaying,
	}
}

func (m *Mines) HandleAction(state model.GameState, play Play, action model.GameAction) ([]model.Event, error) {
	st, ok := state.(*model.MinesState)
	if !ok {
		return nil, stateMismatch(m.GameType(), state)
	}
	if action.Type != ActionCellReveal && action.Type != ActionCellFlag {
		return nil, unknownAction(m.GameType(), action)
	}

	var p cellPayload
	if err := decode(action, &p); err != nil {
		return nil, err
	}

	st.LastAction = &model.MinesAction{
		Player:    play.Player.Username,
		Type:      action.Type,
		Row:       *p.Row,
		Col:       *p.Col,
		Timestamp: play.Now,
	}
	return nil, nil
}
