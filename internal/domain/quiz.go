package domain

import (
	"strings"
	"time"
)

// Difficulty labels the generator is expected to use.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Quiz is one generation result tied to one Article. Multiple quizzes may
// reference the same article; regeneration never deduplicates.
type Quiz struct {
	ID        int64
	ArticleID int64
	QuizTitle string
	CreatedAt time.Time
}

// Question is one multiple-choice item belonging to a quiz. Questions are
// created in a batch alongside their quiz and are immutable afterwards.
type Question struct {
	ID            int64
	QuizID        int64
	Question      string
	Options       []string
	CorrectAnswer string
	Difficulty    string
	Explanation   string
	RelatedTopics []string
	CreatedAt     time.Time
}

// Validate enforces the question invariants before persistence:
// non-empty text, at least two options and correct answer membership.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return NewInvalidInputError("question text is required", nil)
	}
	if len(q.Options) < 2 {
		return NewInvalidInputError("question needs at least two options", nil)
	}
	found := false
	for _, opt := range q.Options {
		if opt == q.CorrectAnswer {
			found = true
			break
		}
	}
	if !found {
		return NewInvalidInputError("correct answer is not among the options", nil)
	}
	return nil
}

// NormalizeDifficulty lowercases known labels and falls back to medium
// for anything the generator invented.
func NormalizeDifficulty(difficulty string) string {
	switch strings.ToLower(strings.TrimSpace(difficulty)) {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyHard:
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// GeneratedQuiz is the output of the quiz generator collaborator before
// anything is persisted.
type GeneratedQuiz struct {
	QuizTitle string
	Questions []*Question
}
