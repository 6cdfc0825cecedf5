package rules

import (
	"github.com/mcoot/gamerooms/internal/model"
)

const (
	ActionVote        = "vote"
	ActionNightAction = "night-action"

	mafiaPhaseDay = "day"
	mafiaTimeLeft = 300
)

type votePayload struct {
	Target string `json:"target" validate:"required"`
}

type nightActionPayload struct {
	Action string `json:"action" validate:"required"`
	Target string `json:"target" validate:"required"`
}

// Mafia records day votes and night actions. Resolution is left to clients.
type Mafia struct {
	noChatCommands
}

func NewMafia() *Mafia {
	return &Mafia{}
}

func (m *Mafia) GameType() model.GameType {
	return model.GameTypeMafia
}

func (m *Mafia) InitialState() model.GameState {
	return &model.MafiaState{
		Phase:        mafiaPhaseDay,
		Votes:        map[model.PlayerID]string{},
		NightActions: map[model.PlayerID]model.NightAction{},
		TimeLeft:     mafiaTimeLeft,
	}
}

func (m *Mafia) HandleAction(state model.GameState, play Play, action model.GameAction) ([]model.Event, error) {
	st, ok := state.(*model.MafiaState)
	if !ok {
		return nil, stateMismatch(m.GameType(), state)
	}

	switch action.Type {
	case ActionVote:
		var p votePayload
		if err := decode(action, &p); err != nil {
			return nil, err
		}
		if st.Votes == nil {
			st.Votes = map[model.PlayerID]string{}
		}
		st.Votes[play.Player.ID] = p.Target
	case ActionNightAction:
		var p nightActionPayload
		if err := decode(action, &p); err != nil {
			return nil, err
		}
		if st.NightActions == nil {
			st.NightActions = map[model.PlayerID]model.NightAction{}
		}
		st.NightActions[play.Player.ID] = model.NightAction{Action: p.Action, Target: p.Target}
	default:
		return nil, unknownAction(m.GameType(), action)
	}
	return nil, nil
}
