package handler

import (
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/service"
	"wiki-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(svc service.QuizService) *QuizHandler {
	return &QuizHandler{
		service:   svc,
		validator: validation.NewValidator(),
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz from an article URL
// @Description Scrapes the article, generates multiple-choice questions and stores the quiz
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Article URL and question count"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body is not valid JSON", err)
	}

	if req.NumQuestions == 0 {
		req.NumQuestions = validation.DefaultQuestions
	}
	if errs := h.validator.ValidateGenerateQuizRequest(req.URL, req.NumQuestions); len(errs) > 0 {
		return errs
	}

	result, err := h.service.GenerateQuiz(c.Context(), &req)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// GetQuiz godoc
// @Summary Get a quiz by id
// @Description Returns the quiz and its questions in insertion order
// @Tags quiz
// @Accept json
// @Produce json
// @Param id path int true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quizID, errs := h.validator.ParseQuizID(c.Params("id"))
	if len(errs) > 0 {
		return errs
	}

	result, err := h.service.GetQuiz(c.Context(), quizID)
	if err != nil {
		return err
	}

	return c.JSON(result)
}
