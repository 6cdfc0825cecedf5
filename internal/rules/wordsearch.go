package rules

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/mcoot/gamerooms/internal/model"
)

const (
	ActionWordFound = "word-found"

	wordSearchTimeLeft      = 300
	wordSearchPointsPerRune = 10
)

type wordFoundPayload struct {
	Word string `json:"word" validate:"required"`
}

// WordSearch awards points for finding words from a fixed hidden list
type WordSearch struct {
	noChatCommands
	hiddenWords []string
}

// NewWordSearch creates the word-search ruleset over a hidden word list
func NewWordSearch(hiddenWords []string) *WordSearch {
	return &WordSearch{
		hiddenWords: lo.Map(hiddenWords, func(w string, _ int) string { return strings.ToUpper(w) }),
	}
}

func (w *WordSearch) GameType() model.GameType {
	return model.GameTypeWordSearch
}

func (w *WordSearch) InitialState() model.GameState {
	return &model.WordSearchState{
		FoundWords:  []string{},
		HiddenWords: slices.Clone(w.hiddenWords),
		TimeLeft:    wordSearchTimeLeft,
	}
}

func (w *WordSearch) HandleAction(state model.GameState, play Play, action model.GameAction) ([]model.Event, error) {
	st, ok := state.(*model.WordSearchState)
	if !ok {
		return nil, stateMismatch(w.GameType(), state)
	}
	if action.Type != ActionWordFound {
		return nil, unknownAction(w.GameType(), action)
	}

	var p wordFoundPayload
	if err := decode(action, &p); err != nil {
		return nil, err
	}

	word := strings.ToUpper(strings.TrimSpace(p.Word))
	if !lo.Contains(st.HiddenWords, word) || lo.Contains(st.FoundWords, word) {
		return nil, nil
	}

	points := wordSearchPointsPerRune * len([]rune(word))
	st.FoundWords = append(st.FoundWords, word)
	play.Player.Score += points

	events := []model.Event{model.NewEvent(model.EventWordFound, model.WordFoundPayload{
		Player: play.Player.Username,
		Word:   word,
		Points: points,
	})}
	if len(lo.Without(st.HiddenWords, st.FoundWords...)) == 0 {
		events = append(events, model.NewEvent(model.EventPuzzleComplete, model.PuzzleCompletePayload{
			FoundWords: slices.Clone(st.FoundWords),
		}))
	}
	return events, nil
}
