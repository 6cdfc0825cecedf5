package rules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/mcoot/gamerooms/internal/model"
)

const (
	ActionSubmitAnswer = "submit-answer"

	triviaTimeLeft      = 30
	triviaMaxPoints     = 10
	triviaHintPenalty   = 2
	triviaMinPoints     = 2
	triviaHintKeyword   = "hint"
	triviaNoMoreHints   = "❌ No more hints available!"
	triviaHintMsgFormat = "💡 Hint %d: %s"
)

type submitAnswerPayload struct {
	Answer string `json:"answer" validate:"required"`
}

// Trivia awards points for answering questions from a fixed bank in order
type Trivia struct {
	questions []model.TriviaQuestion
}

// NewTrivia creates the trivia ruleset over a question bank
func NewTrivia(questions []model.TriviaQuestion) *Trivia {
	return &Trivia{questions: slices.Clone(questions)}
}

func (t *Trivia) GameType() model.GameType {
	return model.GameTypeTrivia
}

func (t *Trivia) InitialState() model.GameState {
	st := &model.TriviaState{
		TimeLeft:       triviaTimeLeft,
		TotalQuestions: len(t.questions),
		RevealedHints:  []string{},
		Questions:      t.questions,
	}
	syncQuestion(st)
	return st
}

func (t *Trivia) HandleAction(state model.GameState, play Play, action model.GameAction) ([]model.Event, error) {
	st, ok := state.(*model.TriviaState)
	if !ok {
		return nil, stateMismatch(t.GameType(), state)
	}
	if action.Type != ActionSubmitAnswer {
		return nil, unknownAction(t.GameType(), action)
	}

	var p submitAnswerPayload
	if err := decode(action, &p); err != nil {
		return nil, err
	}

	q := st.CurrentQuestion()
	if q == nil || !answersMatch(p.Answer, q.Answer) {
		return []model.Event{model.NewEvent(model.EventAnswerIncorrect, model.AnswerIncorrectPayload{
			Player: play.Player.Username,
			Answer: p.Answer,
		})}, nil
	}

	points := max(triviaMaxPoints-triviaHintPenalty*st.HintsUsed, triviaMinPoints)
	play.Player.Score += points
	st.CurrentQuestionIndex++
	st.HintsUsed = 0
	st.RevealedHints = []string{}
	syncQuestion(st)

	events := []model.Event{model.NewEvent(model.EventAnswerCorrect, model.AnswerCorrectPayload{
		Player: play.Player.Username,
		Answer: p.Answer,
		Points: points,
	})}

	if st.CurrentQuestion() == nil {
		st.Finished = true
		events = append(events, model.NewEvent(model.EventTriviaFinished, model.TriviaFinishedPayload{
			Scores: lo.Map(play.Players, func(pl *model.Player, _ int) model.PlayerScore {
				return model.PlayerScore{Player: pl.Username, Score: pl.Score}
			}),
		}))
	}
	return events, nil
}

// HandleChatCommand reveals the next hint whenever a chat line mentions one.
// Every request counts against the score, even once hints run out.
func (t *Trivia) HandleChatCommand(state model.GameState, _ Play, text string) []model.Event {
	st, ok := state.(*model.TriviaState)
	if !ok || !strings.Contains(strings.ToLower(text), triviaHintKeyword) {
		return nil
	}
	q := st.CurrentQuestion()
	if q == nil {
		return nil
	}

	st.HintsUsed++
	if st.HintsUsed > len(q.Hints) {
		return []model.Event{systemMessage(triviaNoMoreHints)}
	}
	hint := q.Hints[st.HintsUsed-1]
	st.RevealedHints = append(st.RevealedHints, hint)
	return []model.Event{systemMessage(fmt.Sprintf(triviaHintMsgFormat, st.HintsUsed, hint))}
}

// syncQuestion copies the public view of the active question into the state
func syncQuestion(st *model.TriviaState) {
	if q := st.CurrentQuestion(); q != nil {
		st.Question = q.Question
		st.Category = q.Category
		return
	}
	st.Question = ""
	st.Category = ""
}
