package model

import (
	"fmt"
	"strings"
)

// GameType identifies one of the supported mini-games
type GameType string

const (
	GameTypeTrivia     GameType = "trivia"
	GameTypeWordSearch GameType = "word-search"
	GameTypeMines      GameType = "mines"
	GameTypeMafia      GameType = "mafia"
	GameTypeGuess      GameType = "guess"
	GameTypeSpy        GameType = "spy"
)

// legacy spellings still sent by older clients
var gameTypeAliases = map[string]GameType{
	"wordpuzzle":  GameTypeWordSearch,
	"word_search": GameTypeWordSearch,
	"wordsearch":  GameTypeWordSearch,
}

// AllGameTypes returns every supported game type in display order
func AllGameTypes() []GameType {
	return []GameType{
		GameTypeTrivia,
		GameTypeWordSearch,
		GameTypeMines,
		GameTypeMafia,
		GameTypeGuess,
		GameTypeSpy,
	}
}

// ParseGameType normalizes a client-supplied game type
func ParseGameType(s string) (GameType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := gameTypeAliases[key]; ok {
		return alias, nil
	}
	for _, gt := range AllGameTypes() {
		if string(gt) == key {
			return gt, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGameType, s)
}

// GameTypeDisplayName returns a human-readable label for a game type
func GameTypeDisplayName(gt GameType) string {
	switch gt {
	case GameTypeTrivia:
		return "Trivia"
	case GameTypeWordSearch:
		return "Word Search"
	case GameTypeMines:
		return "Mines"
	case GameTypeMafia:
		return "Mafia"
	case GameTypeGuess:
		return "Guess the Thing"
	case GameTypeSpy:
		return "Find the Spy"
	default:
		return string(gt)
	}
}
