package rules

import (
	"github.com/mcoot/gamerooms/internal/model"
)

const (
	ActionSubmitGuess = "submit-guess"
	ActionSetAnswer   = "set-answer"
	ActionTick        = "tick"

	guessTimeLeft  = 60
	guessMaxPoints = 100
	guessMinPoints = 10
)

type submitGuessPayload struct {
	Guess string `json:"guess" validate:"required"`
}

type setAnswerPayload struct {
	Answer string `json:"answer" validate:"required"`
}

type tickPayload struct {
	Elapsed *int `json:"elapsed" validate:"required,min=0"`
}

// Guess awards points for guessing the host's secret answer, decaying with
// the elapsed round time
type Guess struct {
	noChatCommands
}

func NewGuess() *Guess {
	return &Guess{}
}

func (g *Guess) GameType() model.GameType {
	return model.GameTypeGuess
}

func (g *Guess) InitialState() model.GameState {
	return &model.GuessState{
		CurrentRound: 1,
		TimeLeft:     guessTimeLeft,
	}
}

func (g *Guess) HandleAction(state model.GameState, play Play, action model.GameAction) ([]model.Event, error) {
	st, ok := state.(*model.GuessState)
	if !ok {
		return nil, stateMismatch(g.GameType(), state)
	}

	switch action.Type {
	case ActionSubmitGuess:
		return g.submitGuess(st, play, action)
	case ActionSetAnswer:
		return nil, g.setAnswer(st, play, action)
	case ActionTick:
		return nil, g.tick(st, play, action)
	default:
		return nil, unknownAction(g.GameType(), action)
	}
}

func (g *Guess) submitGuess(st *model.GuessState, play Play, action model.GameAction) ([]model.Event, error) {
	var p submitGuessPayload
	if err := decode(action, &p); err != nil {
		return nil, err
	}
	// an unset answer never matches
	if st.CurrentAnswer == "" || !answersMatch(p.Guess, st.CurrentAnswer) {
		return nil, nil
	}

	points := max(guessMaxPoints-st.TimeElapsed, guessMinPoints)
	play.Player.Score += points
	return []model.Event{model.NewEvent(model.EventGuessCorrect, model.GuessCorrectPayload{
		Player: play.Player.Username,
		Guess:  p.Guess,
		Points: points,
	})}, nil
}

func (g *Guess) setAnswer(st *model.GuessState, play Play, action model.GameAction) error {
	if !play.Player.IsHost {
		return model.ErrNotHost
	}
	var p setAnswerPayload
	if err := decode(action, &p); err != nil {
		return err
	}
	if st.CurrentAnswer != "" {
		st.CurrentRound++
	}
	st.CurrentAnswer = p.Answer
	st.HasAnswer = true
	st.TimeElapsed = 0
	st.TimeLeft = guessTimeLeft
	return nil
}

func (g *Guess) tick(st *model.GuessState, play Play, action model.GameAction) error {
	if !play.Player.IsHost {
		return model.ErrNotHost
	}
	var p tickPayload
	if err := decode(action, &p); err != nil {
		return err
	}
	st.TimeElapsed = *p.Elapsed
	st.TimeLeft = max(guessTimeLeft-st.TimeElapsed, 0)
	return nil
}
