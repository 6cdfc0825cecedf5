package rules

import "github.com/mcoot/gamerooms/internal/model"

// DefaultQuestions returns the built-in trivia question bank
func DefaultQuestions() []model.TriviaQuestion {
	return []model.TriviaQuestion{
		{
			ID:         "q1",
			Question:   "What is the largest planet in our solar system?",
			Category:   "Science",
			Difficulty: "easy",
			Answer:     "Jupiter",
			Hints: []string{
				"It's a gas giant",
				"It has a famous red spot",
				"It's the 5th planet from the sun",
			},
		},
		{
			ID:         "q2",
			Question:   "Which cryptocurrency was created by Satoshi Nakamoto?",
			Category:   "Technology",
			Difficulty: "medium",
			Answer:     "Bitcoin",
			Hints: []string{
				"It was the first cryptocurrency",
				"Its symbol is BTC",
				"It was created in 2009",
			},
		},
		{
			ID:         "q3",
			Question:   "What is the chemical symbol for gold?",
			Category:   "Science",
			Difficulty: "easy",
			Answer:     "Au",
			Hints: []string{
				`It comes from the Latin word "aurum"`,
				"It's a two-letter symbol",
				"The first letter is A",
			},
		},
	}
}

// DefaultHiddenWords returns the built-in word-search word list
func DefaultHiddenWords() []string {
	return []string{"CAT", "DOG", "BIRD", "MOUSE", "ELEPHANT"}
}
