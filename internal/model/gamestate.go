package model

import (
	"fmt"
	"maps"
	"slices"
	"time"
)

// GameState is the game-type-specific bag a room carries. Each variant is
// owned by the ruleset of its game type; the registry only stores and copies it.
type GameState interface {
	GameType() GameType
	Clone() GameState
}

// TriviaQuestion is one entry of the trivia question bank
type TriviaQuestion struct {
	ID         string
	Question   string
	Category   string
	Difficulty string
	Answer     string
	Hints      []string
}

// TriviaState tracks progress through the question bank
type TriviaState struct {
	CurrentQuestionIndex int      `json:"currentQuestionIndex"`
	HintsUsed            int      `json:"hintsUsed"`
	TimeLeft             int      `json:"timeLeft"`
	TotalQuestions       int      `json:"totalQuestions"`
	Question             string   `json:"question,omitempty"`
	Category             string   `json:"category,omitempty"`
	RevealedHints        []string `json:"revealedHints"`
	Finished             bool     `json:"finished"`

	// Questions holds answers and is never sent to clients
	Questions []TriviaQuestion `json:"-"`
}

func (s *TriviaState) GameType() GameType { return GameTypeTrivia }

func (s *TriviaState) Clone() GameState {
	c := *s
	c.RevealedHints = slices.Clone(s.RevealedHints)
	// question bank is read-only once built
	c.Questions = s.Questions
	return &c
}

// CurrentQuestion returns the active question, or nil once the bank is exhausted
func (s *TriviaState) CurrentQuestion() *TriviaQuestion {
	if s.CurrentQuestionIndex < 0 || s.CurrentQuestionIndex >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.CurrentQuestionIndex]
}

// WordSearchState tracks which hidden words have been found
type WordSearchState struct {
	FoundWords  []string `json:"foundWords"`
	HiddenWords []string `json:"hiddenWords"`
	TimeLeft    int      `json:"timeLeft"`
}

func (s *WordSearchState) GameType() GameType { return GameTypeWordSearch }

func (s *WordSearchState) Clone() GameState {
	return &WordSearchState{
		FoundWords:  slices.Clone(s.FoundWords),
		HiddenWords: slices.Clone(s.HiddenWords),
		TimeLeft:    s.TimeLeft,
	}
}

// MinesAction is the metadata of the most recent mines move
type MinesAction struct {
	Player    string    `json:"player"`
	Type      string    `json:"type"`
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	Timestamp time.Time `json:"timestamp"`
}

// MinesState only records moves; the authoritative grid lives client-side
type MinesState struct {
	Grid        [][]int      `json:"grid"`
	Status      string       `json:"gameStatus"`
	TimeElapsed int          `json:"timeElapsed"`
	LastAction  *MinesAction `json:"lastAction,omitempty"`
}

func (s *MinesState) GameType() GameType { return GameTypeMines }

func (s *MinesState) Clone() GameState {
	c := *s
	c.Grid = make([][]int, len(s.Grid))
	for i, row := range s.Grid {
		c.Grid[i] = slices.Clone(row)
	}
	if s.LastAction != nil {
		a := *s.LastAction
		c.LastAction = &a
	}
	return &c
}

// NightAction is a mafia player's secret night move
type NightAction struct {
	Action string `json:"action"`
	Target string `json:"target"`
}

// MafiaState records day votes and night actions keyed by player id
type MafiaState struct {
	Phase        string                   `json:"phase"`
	Votes        map[PlayerID]string      `json:"votes"`
	NightActions map[PlayerID]NightAction `json:"nightActions"`
	TimeLeft     int                      `json:"timeLeft"`
}

func (s *MafiaState) GameType() GameType { return GameTypeMafia }

func (s *MafiaState) Clone() GameState {
	return &MafiaState{
		Phase:        s.Phase,
		Votes:        maps.Clone(s.Votes),
		NightActions: maps.Clone(s.NightActions),
		TimeLeft:     s.TimeLeft,
	}
}

// GuessState tracks the current guess-the-thing round
type GuessState struct {
	CurrentRound int  `json:"currentRound"`
	HasAnswer    bool `json:"hasAnswer"`
	TimeElapsed  int  `json:"timeElapsed"`
	TimeLeft     int  `json:"timeLeft"`

	// CurrentAnswer is never sent to clients
	CurrentAnswer string `json:"-"`
}

func (s *GuessState) GameType() GameType { return GameTypeGuess }

func (s *GuessState) Clone() GameState {
	c := *s
	return &c
}

// SpyState records spy votes keyed by player id
type SpyState struct {
	Phase    string              `json:"phase"`
	SpyVotes map[PlayerID]string `json:"spyVotes"`
	TimeLeft int                 `json:"timeLeft"`
}

func (s *SpyState) GameType() GameType { return GameTypeSpy }

func (s *SpyState) Clone() GameState {
	return &SpyState{
		Phase:    s.Phase,
		SpyVotes: maps.Clone(s.SpyVotes),
		TimeLeft: s.TimeLeft,
	}
}

// NewGameState returns an empty state value of the variant owned by gt
func NewGameState(gt GameType) (GameState, error) {
	switch gt {
	case GameTypeTrivia:
		return &TriviaState{}, nil
	case GameTypeWordSearch:
		return &WordSearchState{}, nil
	case GameTypeMines:
		return &MinesState{}, nil
	case GameTypeMafia:
		return &MafiaState{}, nil
	case GameTypeGuess:
		return &GuessState{}, nil
	case GameTypeSpy:
		return &SpyState{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownGameType, gt)
}
