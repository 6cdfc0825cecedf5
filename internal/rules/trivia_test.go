package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gamerooms/internal/model"
)

type TriviaTestSuite struct {
	suite.Suite
	rules *Trivia
	state *model.TriviaState
	play  Play
}

func (s *TriviaTestSuite) SetupTest() {
	s.rules = NewTrivia(DefaultQuestions())
	s.state = s.rules.InitialState().(*model.TriviaState)
	s.play = newPlay("Bob", false)
}

func (s *TriviaTestSuite) submit(answer string) []model.Event {
	events, err := s.rules.HandleAction(s.state, s.play, action(ActionSubmitAnswer, map[string]any{"answer": answer}))
	s.Require().NoError(err)
	return events
}

func (s *TriviaTestSuite) TestInitialStateExposesFirstQuestion() {
	s.Equal("What is the largest planet in our solar system?", s.state.Question)
	s.Equal("Science", s.state.Category)
	s.Empty(s.state.RevealedHints)
	s.False(s.state.Finished)
}

func (s *TriviaTestSuite) TestCorrectAnswerNoHints() {
	events := s.submit("  JUPITER ")

	s.Equal(10, s.play.Player.Score)
	s.Equal(1, s.state.CurrentQuestionIndex)
	s.Equal(0, s.state.HintsUsed)
	s.Require().Len(events, 1)
	s.Equal(model.EventAnswerCorrect, events[0].Type)
	s.Equal(model.AnswerCorrectPayload{Player: "Bob", Answer: "  JUPITER ", Points: 10}, events[0].Payload)
	s.Equal("Technology", s.state.Category)
}

func (s *TriviaTestSuite) TestCorrectAnswerWithTwoHints() {
	s.rules.HandleChatCommand(s.state, s.play, "hint please")
	s.rules.HandleChatCommand(s.state, s.play, "another HINT")
	s.Equal(2, s.state.HintsUsed)
	s.Len(s.state.RevealedHints, 2)

	s.submit("Jupiter")

	s.Equal(6, s.play.Player.Score)
	s.Equal(0, s.state.HintsUsed)
	s.Empty(s.state.RevealedHints)
}

func (s *TriviaTestSuite) TestScoreFloorWithFiveHints() {
	for range 5 {
		s.rules.HandleChatCommand(s.state, s.play, "hint")
	}
	s.Equal(5, s.state.HintsUsed)

	s.submit("Jupiter")
	s.Equal(2, s.play.Player.Score)
}

func (s *TriviaTestSuite) TestIncorrectAnswer() {
	events := s.submit("Saturn")

	s.Equal(0, s.play.Player.Score)
	s.Equal(0, s.state.CurrentQuestionIndex)
	s.Require().Len(events, 1)
	s.Equal(model.EventAnswerIncorrect, events[0].Type)
	s.Equal(model.AnswerIncorrectPayload{Player: "Bob", Answer: "Saturn"}, events[0].Payload)
}

func (s *TriviaTestSuite) TestResubmittingPreviousAnswerIsIncorrect() {
	s.submit("Jupiter")
	events := s.submit("Jupiter")

	s.Equal(10, s.play.Player.Score)
	s.Equal(model.EventAnswerIncorrect, events[0].Type)
}

func (s *TriviaTestSuite) TestFinishesAfterLastQuestion() {
	other := model.NewPlayer("conn-alice", "Alice")
	s.play.Players = append(s.play.Players, other)

	s.submit("Jupiter")
	s.submit("bitcoin")
	events := s.submit("au")

	s.True(s.state.Finished)
	s.Equal(3, s.state.CurrentQuestionIndex)
	s.Empty(s.state.Question)
	s.Require().Len(events, 2)
	s.Equal(model.EventTriviaFinished, events[1].Type)
	s.Equal(model.TriviaFinishedPayload{Scores: []model.PlayerScore{
		{Player: "Bob", Score: 30},
		{Player: "Alice", Score: 0},
	}}, events[1].Payload)

	events = s.submit("anything")
	s.Equal(model.EventAnswerIncorrect, events[0].Type)
}

func (s *TriviaTestSuite) TestHintMessages() {
	events := s.rules.HandleChatCommand(s.state, s.play, "Hint?")
	s.Require().Len(events, 1)
	msg := events[0].Payload.(model.ChatMessage)
	s.Equal(model.EventChatMessage, events[0].Type)
	s.Equal("💡 Hint 1: It's a gas giant", msg.Message)
	s.Equal(model.SystemUsername, msg.Username)
	s.Equal(model.ChatMessageSystem, msg.Type)
	s.Equal([]string{"It's a gas giant"}, s.state.RevealedHints)
}

func (s *TriviaTestSuite) TestHintsRunOut() {
	for range 3 {
		s.rules.HandleChatCommand(s.state, s.play, "hint")
	}
	events := s.rules.HandleChatCommand(s.state, s.play, "hint")

	s.Equal(4, s.state.HintsUsed)
	s.Len(s.state.RevealedHints, 3)
	s.Require().Len(events, 1)
	s.Equal("❌ No more hints available!", events[0].Payload.(model.ChatMessage).Message)
}

func (s *TriviaTestSuite) TestChatWithoutHintIgnored() {
	s.Nil(s.rules.HandleChatCommand(s.state, s.play, "hello there"))
	s.Equal(0, s.state.HintsUsed)
}

func (s *TriviaTestSuite) TestUnknownAction() {
	_, err := s.rules.HandleAction(s.state, s.play, action("skip", nil))
	s.Require().ErrorIs(err, model.ErrUnknownAction)
}

func (s *TriviaTestSuite) TestMissingAnswer() {
	_, err := s.rules.HandleAction(s.state, s.play, action(ActionSubmitAnswer, nil))
	s.Require().ErrorIs(err, model.ErrInvalidRequest)
	s.Equal(0, s.state.CurrentQuestionIndex)
}

func TestTriviaTestSuite(t *testing.T) {
	suite.Run(t, new(TriviaTestSuite))
}

func TestTrivia_EmptyBankFinishesImmediately(t *testing.T) {
	rs := NewTrivia(nil)
	st := rs.InitialState().(*model.TriviaState)
	play := newPlay("Bob", false)

	events, err := rs.HandleAction(st, play, action(ActionSubmitAnswer, map[string]any{"answer": "x"}))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, model.EventAnswerIncorrect, events[0].Type)
	assert.Nil(t, rs.HandleChatCommand(st, play, "hint"))
}
