package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gamerooms/internal/model"
)

var testNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newPlay(username string, host bool, others ...*model.Player) Play {
	p := model.NewPlayer(model.ConnID("conn-"+username), username)
	p.IsHost = host
	return Play{
		Player:  p,
		Players: append([]*model.Player{p}, others...),
		Now:     testNow,
	}
}

func action(t string, fields map[string]any) model.GameAction {
	return model.NewGameAction(t, fields)
}

func TestDispatcher_UnknownGameType(t *testing.T) {
	d := NewDispatcher(NewSpy())

	_, err := d.InitialState(model.GameTypeTrivia)
	require.ErrorIs(t, err, model.ErrUnknownGameType)
	assert.False(t, d.Supports(model.GameTypeTrivia))
	assert.True(t, d.Supports(model.GameTypeSpy))

	_, err = d.HandleAction(model.GameTypeTrivia, nil, newPlay("Alice", true), action("x", nil))
	require.ErrorIs(t, err, model.ErrUnknownGameType)
	assert.Nil(t, d.HandleChatCommand(model.GameTypeTrivia, nil, newPlay("Alice", true), "hint"))
}

func TestDispatcher_DefaultSupportsAllGameTypes(t *testing.T) {
	d := Default()
	for _, gt := range model.AllGameTypes() {
		st, err := d.InitialState(gt)
		require.NoError(t, err, gt)
		assert.Equal(t, gt, st.GameType())
	}
}

func TestDispatcher_InitialStates(t *testing.T) {
	d := Default()

	st, err := d.InitialState(model.GameTypeTrivia)
	require.NoError(t, err)
	trivia := st.(*model.TriviaState)
	assert.Equal(t, 0, trivia.CurrentQuestionIndex)
	assert.Equal(t, 0, trivia.HintsUsed)
	assert.Equal(t, 30, trivia.TimeLeft)
	assert.Equal(t, 3, trivia.TotalQuestions)

	st, err = d.InitialState(model.GameTypeWordSearch)
	require.NoError(t, err)
	ws := st.(*model.WordSearchState)
	assert.Empty(t, ws.FoundWords)
	assert.Equal(t, []string{"CAT", "DOG", "BIRD", "MOUSE", "ELEPHANT"}, ws.HiddenWords)
	assert.Equal(t, 300, ws.TimeLeft)

	st, err = d.InitialState(model.GameTypeMines)
	require.NoError(t, err)
	assert.Equal(t, "playing", st.(*model.MinesState).Status)

	st, err = d.InitialState(model.GameTypeMafia)
	require.NoError(t, err)
	assert.Equal(t, "day", st.(*model.MafiaState).Phase)
	assert.Equal(t, 300, st.(*model.MafiaState).TimeLeft)

	st, err = d.InitialState(model.GameTypeGuess)
	require.NoError(t, err)
	assert.Equal(t, 1, st.(*model.GuessState).CurrentRound)
	assert.Equal(t, 60, st.(*model.GuessState).TimeLeft)

	st, err = d.InitialState(model.GameTypeSpy)
	require.NoError(t, err)
	assert.Equal(t, "discussion", st.(*model.SpyState).Phase)
	assert.Equal(t, 480, st.(*model.SpyState).TimeLeft)
}

func TestDispatcher_InitialStatesAreIndependent(t *testing.T) {
	d := Default()
	a, _ := d.InitialState(model.GameTypeWordSearch)
	b, _ := d.InitialState(model.GameTypeWordSearch)

	a.(*model.WordSearchState).HiddenWords[0] = "ZEBRA"
	assert.Equal(t, "CAT", b.(*model.WordSearchState).HiddenWords[0])
}

func TestDispatcher_StateMismatch(t *testing.T) {
	d := Default()
	_, err := d.HandleAction(model.GameTypeTrivia, &model.SpyState{}, newPlay("Alice", true),
		action(ActionSubmitAnswer, map[string]any{"answer": "x"}))
	require.Error(t, err)
}

func TestAnswersMatch(t *testing.T) {
	assert.True(t, answersMatch("  jupiter ", "Jupiter"))
	assert.True(t, answersMatch("AU", "Au"))
	assert.False(t, answersMatch("Jupite", "Jupiter"))
	assert.False(t, answersMatch("", "Jupiter"))
}
