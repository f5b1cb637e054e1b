package quizgen

import (
	"strings"
	"testing"

	"wiki-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPayload = `{
	"quiz_title": "Octopus Knowledge Check",
	"questions": [
		{
			"question": "How many hearts does an octopus have?",
			"options": ["One", "Two", "Three", "Four"],
			"correct_answer": "Three",
			"difficulty": "easy",
			"explanation": "Two branchial hearts and one systemic heart.",
			"related_topics": ["Anatomy"]
		},
		{
			"question": "What does an octopus use its siphon for?",
			"options": ["Propulsion", "Digestion", "Hearing", "Camouflage"],
			"correct_answer": "Propulsion",
			"difficulty": "HARD",
			"explanation": "",
			"related_topics": []
		}
	]
}`

func TestParseGeneratedQuiz(t *testing.T) {
	quiz, err := parseGeneratedQuiz(validPayload)
	require.NoError(t, err)

	assert.Equal(t, "Octopus Knowledge Check", quiz.QuizTitle)
	require.Len(t, quiz.Questions, 2)
	assert.Equal(t, "Three", quiz.Questions[0].CorrectAnswer)
	assert.Equal(t, domain.DifficultyEasy, quiz.Questions[0].Difficulty)
	// Difficulty is normalized to the known set.
	assert.Equal(t, domain.DifficultyHard, quiz.Questions[1].Difficulty)
}

func TestParseGeneratedQuizStripsMarkdownFences(t *testing.T) {
	wrapped := "Here is your quiz:\n```json\n" + validPayload + "\n```\nLet me know if you need more."

	quiz, err := parseGeneratedQuiz(wrapped)
	require.NoError(t, err)
	assert.Len(t, quiz.Questions, 2)
}

func TestParseGeneratedQuizDropsMalformedQuestions(t *testing.T) {
	payload := `{
		"quiz_title": "Octopus Knowledge Check",
		"questions": [
			{
				"question": "How many hearts does an octopus have?",
				"options": ["One", "Two", "Three"],
				"correct_answer": "Three",
				"difficulty": "easy"
			},
			{
				"question": "Broken answer",
				"options": ["A", "B"],
				"correct_answer": "C",
				"difficulty": "easy"
			},
			{
				"question": "Single option",
				"options": ["A"],
				"correct_answer": "A",
				"difficulty": "easy"
			}
		]
	}`

	quiz, err := parseGeneratedQuiz(payload)
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, "How many hearts does an octopus have?", quiz.Questions[0].Question)
}

func TestParseGeneratedQuizErrors(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"no json at all", "I cannot generate a quiz from this article."},
		{"broken json", `{"quiz_title": "Oops", "questions": [}`},
		{"missing title", `{"questions": [{"question": "Q?", "options": ["A","B"], "correct_answer": "A"}]}`},
		{"empty question list", `{"quiz_title": "Empty", "questions": []}`},
		{"all questions malformed", `{"quiz_title": "Bad", "questions": [{"question": "Q?", "options": ["A"], "correct_answer": "A"}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseGeneratedQuiz(tc.raw)
			require.Error(t, err)

			var domainErr *domain.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, domain.CodeGenerationError, domainErr.Code)
		})
	}
}

func TestBuildPromptTruncatesLongBodies(t *testing.T) {
	content := &domain.ArticleContent{
		Title:   "Octopus",
		Summary: "s",
		Body:    strings.Repeat("a", maxBodyChars*2),
	}

	prompt := buildPrompt(content, 5)
	assert.Less(t, len(prompt), maxBodyChars+2000)
	assert.Contains(t, prompt, "Octopus")
}
