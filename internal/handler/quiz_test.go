package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubQuizService lets each test plug in the behavior it needs.
type stubQuizService struct {
	generateFunc func(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error)
	getFunc      func(ctx context.Context, quizID int64) (*dto.QuizResponse, error)
}

func (s *stubQuizService) GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error) {
	return s.generateFunc(ctx, req)
}

func (s *stubQuizService) GetQuiz(ctx context.Context, quizID int64) (*dto.QuizResponse, error) {
	return s.getFunc(ctx, quizID)
}

func newTestApp(svc *stubQuizService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := NewQuizHandler(svc)
	api := app.Group("/api")
	api.Post("/quizzes", h.GenerateQuiz)
	api.Get("/quizzes/:id", h.GetQuiz)
	return app
}

func sampleResponse() *dto.QuizResponse {
	return &dto.QuizResponse{
		QuizID:    10,
		QuizTitle: "Octopus Knowledge Check",
		Questions: []dto.QuestionResponse{
			{
				ID:            100,
				Question:      "How many hearts does an octopus have?",
				Options:       []string{"One", "Two", "Three"},
				CorrectAnswer: "Three",
				Difficulty:    domain.DifficultyEasy,
			},
		},
	}
}

func postJSON(t *testing.T, app *fiber.App, path string, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeQuiz(t *testing.T, resp *http.Response) dto.QuizResponse {
	t.Helper()
	defer resp.Body.Close()
	var out dto.QuizResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestGenerateQuizEndpoint(t *testing.T) {
	var captured *dto.GenerateQuizRequest
	svc := &stubQuizService{
		generateFunc: func(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error) {
			captured = req
			return sampleResponse(), nil
		},
	}
	app := newTestApp(svc)

	resp := postJSON(t, app, "/api/quizzes",
		`{"url":"https://en.example.org/wiki/Octopus","num_questions":3}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeQuiz(t, resp)
	assert.Equal(t, int64(10), out.QuizID)
	require.Len(t, out.Questions, 1)
	assert.Equal(t, "Three", out.Questions[0].CorrectAnswer)

	require.NotNil(t, captured)
	assert.Equal(t, 3, captured.NumQuestions)
}

func TestGenerateQuizAppliesDefaultCount(t *testing.T) {
	var captured *dto.GenerateQuizRequest
	svc := &stubQuizService{
		generateFunc: func(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error) {
			captured = req
			return sampleResponse(), nil
		},
	}
	app := newTestApp(svc)

	resp := postJSON(t, app, "/api/quizzes", `{"url":"https://en.example.org/wiki/Octopus"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, captured)
	assert.Equal(t, 5, captured.NumQuestions)
}

func TestGenerateQuizRejectsBadRequests(t *testing.T) {
	called := false
	svc := &stubQuizService{
		generateFunc: func(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error) {
			called = true
			return sampleResponse(), nil
		},
	}
	app := newTestApp(svc)

	cases := []struct {
		name string
		body string
	}{
		{"missing url", `{"num_questions":5}`},
		{"relative url", `{"url":"wiki/Octopus"}`},
		{"unsupported scheme", `{"url":"ftp://example.org/file"}`},
		{"count too large", `{"url":"https://en.example.org/wiki/Octopus","num_questions":50}`},
		{"negative count", `{"url":"https://en.example.org/wiki/Octopus","num_questions":-1}`},
		{"malformed json", `{"url":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(t, app, "/api/quizzes", tc.body)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
	assert.False(t, called, "service must not be called for invalid requests")
}

func TestGenerateQuizHidesUpstreamDetails(t *testing.T) {
	svc := &stubQuizService{
		generateFunc: func(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error) {
			return nil, domain.NewGenerationError(errors.New("gemini call failed: quota exceeded"))
		},
	}
	app := newTestApp(svc)

	resp := postJSON(t, app, "/api/quizzes",
		`{"url":"https://en.example.org/wiki/Octopus","num_questions":5}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "quota exceeded")
}

func TestGetQuizEndpoint(t *testing.T) {
	svc := &stubQuizService{
		getFunc: func(ctx context.Context, quizID int64) (*dto.QuizResponse, error) {
			assert.Equal(t, int64(10), quizID)
			return sampleResponse(), nil
		},
	}
	app := newTestApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/quizzes/10", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeQuiz(t, resp)
	assert.Equal(t, "Octopus Knowledge Check", out.QuizTitle)
}

func TestGetQuizRejectsInvalidIDs(t *testing.T) {
	called := false
	svc := &stubQuizService{
		getFunc: func(ctx context.Context, quizID int64) (*dto.QuizResponse, error) {
			called = true
			return sampleResponse(), nil
		},
	}
	app := newTestApp(svc)

	for _, id := range []string{"abc", "0", "-1", "1.5"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/quizzes/"+id, nil))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "id %q", id)
	}
	assert.False(t, called, "service must not be called for invalid ids")
}

func TestGetQuizNotFound(t *testing.T) {
	svc := &stubQuizService{
		getFunc: func(ctx context.Context, quizID int64) (*dto.QuizResponse, error) {
			return nil, domain.NewQuizNotFoundError(quizID)
		},
	}
	app := newTestApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/quizzes/999", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var out middleware.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, string(domain.CodeQuizNotFound), out.Code)
}
