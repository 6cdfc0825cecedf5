package rules

import (
	"github.com/mcoot/gamerooms/internal/model"
)

const (
	ActionVoteSpy = "vote-spy"

	spyPhaseDiscussion = "discussion"
	spyTimeLeft        = 480
)

// Spy records who each player accuses of being the spy
type Spy struct {
	noChatCommands
}

func NewSpy() *Spy {
	return &Spy{}
}

func (s *Spy) GameType() model.GameType {
	return model.GameTypeSpy
}

func (s *Spy) InitialState() model.GameState {
	return &model.SpyState{
		Phase:    spyPhaseDiscussion,
		SpyVotes: map[model.PlayerID]string{},
		TimeLeft: spyTimeLeft,
	}
}

func (s *Spy) HandleAction(state model.GameState, play Play, action model.GameAction) ([]model.Event, error) {
	st, ok := state.(*model.SpyState)
	if !ok {
		return nil, stateMismatch(s.GameType(), state)
	}
	if action.Type != ActionVoteSpy {
		return nil, unknownAction(s.GameType(), action)
	}

	var p votePayload
	if err := decode(action, &p); err != nil {
		return nil, err
	}
	if st.SpyVotes == nil {
		st.SpyVotes = map[model.PlayerID]string{}
	}
	st.SpyVotes[play.Player.ID] = p.Target
	return nil, nil
}
