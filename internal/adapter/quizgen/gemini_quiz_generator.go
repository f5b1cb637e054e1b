package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

const (
	// Keep the prompt below the model context window on long pages.
	maxBodyChars = 12000
	// Anything shorter is not worth quizzing on.
	minBodyChars = 200
)

// GeminiQuizGenerator implements domain.QuizGenerator using the
// LangchainGo Google AI client.
type GeminiQuizGenerator struct {
	llm       llms.Model
	modelName string
}

// NewGeminiQuizGenerator creates a new instance of GeminiQuizGenerator.
// The API key is explicit constructor input; config loading has already
// failed fast if it was absent.
func NewGeminiQuizGenerator(ctx context.Context, apiKey string, modelName string) (*GeminiQuizGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key cannot be empty")
	}
	if modelName == "" {
		return nil, fmt.Errorf("Gemini model name cannot be empty")
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	logger.Get().Info("Initialized GeminiQuizGenerator", zap.String("model", modelName))
	return &GeminiQuizGenerator{llm: llm, modelName: modelName}, nil
}

// Generate implements domain.QuizGenerator. numQuestions is a hint; the
// model may return a different count, but an empty result is an error.
func (g *GeminiQuizGenerator) Generate(ctx context.Context, content *domain.ArticleContent, numQuestions int) (*domain.GeneratedQuiz, error) {
	if len(content.Body) < minBodyChars {
		return nil, domain.NewInvalidInputError("article content is too short to generate a quiz from", nil)
	}

	prompt := buildPrompt(content, numQuestions)

	rawResponse, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, llms.WithTemperature(0.2))
	if err != nil {
		logger.Get().Error("Gemini call failed", zap.Error(err), zap.String("model", g.modelName))
		return nil, domain.NewGenerationError(fmt.Errorf("gemini call failed: %w", err))
	}

	quiz, err := parseGeneratedQuiz(rawResponse)
	if err != nil {
		logger.Get().Error("Failed to parse Gemini response",
			zap.Error(err),
			zap.String("raw_response", truncateForLog(rawResponse)),
		)
		return nil, err
	}

	logger.Get().Info("Generated quiz",
		zap.String("quiz_title", quiz.QuizTitle),
		zap.Int("num_requested", numQuestions),
		zap.Int("num_generated", len(quiz.Questions)),
	)
	return quiz, nil
}

func buildPrompt(content *domain.ArticleContent, numQuestions int) string {
	body := content.Body
	if len(body) > maxBodyChars {
		body = body[:maxBodyChars]
	}

	return fmt.Sprintf(`You are an expert quiz generator. Create %d multiple-choice questions from the article below.

Respond with ONLY a JSON object in the following format:
{
  "quiz_title": "a short title for the quiz",
  "questions": [
    {
      "question": "the question text",
      "options": ["option A", "option B", "option C", "option D"],
      "correct_answer": "the exact text of the correct option",
      "difficulty": "easy, medium or hard",
      "explanation": "why the correct answer is correct",
      "related_topics": ["topic1", "topic2"]
    }
  ]
}

Rules:
1. correct_answer must match one of the options exactly
2. Every question needs exactly 4 options
3. Base every question on the article content only

Article title: %s
Article summary: %s
Article text:
%s`, numQuestions, content.Title, content.Summary, body)
}

type generatedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Difficulty    string   `json:"difficulty"`
	Explanation   string   `json:"explanation"`
	RelatedTopics []string `json:"related_topics"`
}

type generatedQuizPayload struct {
	QuizTitle string              `json:"quiz_title"`
	Questions []generatedQuestion `json:"questions"`
}

// parseGeneratedQuiz extracts the JSON object from a raw model completion,
// drops questions that violate the shape invariants and fails when nothing
// usable remains.
func parseGeneratedQuiz(rawResponse string) (*domain.GeneratedQuiz, error) {
	cleaned := strings.TrimSpace(rawResponse)

	jsonStart := strings.Index(cleaned, "{")
	jsonEnd := strings.LastIndex(cleaned, "}")
	if jsonStart == -1 || jsonEnd == -1 || jsonEnd <= jsonStart {
		return nil, domain.NewGenerationError(fmt.Errorf("no JSON object found in model response"))
	}

	var payload generatedQuizPayload
	if err := json.Unmarshal([]byte(cleaned[jsonStart:jsonEnd+1]), &payload); err != nil {
		return nil, domain.NewGenerationError(fmt.Errorf("failed to unmarshal model response: %w", err))
	}

	if payload.QuizTitle == "" {
		return nil, domain.NewGenerationError(fmt.Errorf("model response has no quiz title"))
	}

	questions := make([]*domain.Question, 0, len(payload.Questions))
	for _, gq := range payload.Questions {
		question := &domain.Question{
			Question:      strings.TrimSpace(gq.Question),
			Options:       gq.Options,
			CorrectAnswer: gq.CorrectAnswer,
			Difficulty:    domain.NormalizeDifficulty(gq.Difficulty),
			Explanation:   gq.Explanation,
			RelatedTopics: gq.RelatedTopics,
		}
		if err := question.Validate(); err != nil {
			logger.Get().Warn("Dropping malformed generated question",
				zap.Error(err),
				zap.String("question", question.Question),
			)
			continue
		}
		questions = append(questions, question)
	}

	if len(questions) == 0 {
		return nil, domain.NewGenerationError(fmt.Errorf("model returned no usable questions"))
	}

	return &domain.GeneratedQuiz{
		QuizTitle: payload.QuizTitle,
		Questions: questions,
	}, nil
}

func truncateForLog(s string) string {
	if len(s) > 500 {
		return s[:500]
	}
	return s
}

// Static assertion to ensure GeminiQuizGenerator implements QuizGenerator
var _ domain.QuizGenerator = (*GeminiQuizGenerator)(nil)
