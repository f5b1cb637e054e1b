package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.DB
type QuizDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter
func NewQuizDatabaseAdapter(db *sqlx.DB) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

// CreateQuizWithQuestions implements domain.QuizRepository. It runs against
// the executor bound to ctx; callers wrap it in a transaction so the quiz
// and its questions land together or not at all. Generated ids and
// timestamps are written back onto the domain objects.
func (a *QuizDatabaseAdapter) CreateQuizWithQuestions(ctx context.Context, quiz *domain.Quiz, questions []*domain.Question) error {
	if quiz == nil {
		return fmt.Errorf("cannot save nil quiz")
	}
	if len(questions) == 0 {
		return fmt.Errorf("cannot save quiz without questions")
	}
	exec := GetExecutor(ctx, a.db)

	quizID, err := nextID(ctx, exec, quizzesSeq)
	if err != nil {
		return fmt.Errorf("failed to get next quiz id: %w", err)
	}
	now := time.Now()

	quizQuery := `INSERT INTO quizzes (
		id, article_id, quiz_title, created_at
	) VALUES (
		:1, :2, :3, :4
	)`

	_, err = exec.ExecContext(ctx, quizQuery, quizID, quiz.ArticleID, quiz.QuizTitle, now)
	if err != nil {
		return fmt.Errorf("failed to insert quiz: %w", err)
	}
	quiz.ID = quizID
	quiz.CreatedAt = now

	questionQuery := `INSERT INTO questions (
		id, quiz_id, question, options, correct_answer,
		difficulty, explanation, related_topics, created_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9
	)`

	for _, q := range questions {
		questionID, err := nextID(ctx, exec, questionsSeq)
		if err != nil {
			return fmt.Errorf("failed to get next question id: %w", err)
		}

		_, err = exec.ExecContext(ctx, questionQuery,
			questionID,
			quizID,
			q.Question,
			models.StringSlice(q.Options),
			q.CorrectAnswer,
			q.Difficulty,
			q.Explanation,
			models.StringSlice(q.RelatedTopics),
			now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert question: %w", err)
		}
		q.ID = questionID
		q.QuizID = quizID
		q.CreatedAt = now
	}

	return nil
}

// GetQuizByID implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuizByID(ctx context.Context, id int64) (*domain.Quiz, error) {
	exec := GetExecutor(ctx, a.db)

	var modelQuiz models.Quiz
	query := `SELECT
		id "id",
		article_id "article_id",
		quiz_title "quiz_title",
		created_at "created_at"
	FROM quizzes
	WHERE id = :1`

	err := exec.GetContext(ctx, &modelQuiz, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by ID %d: %w", id, err)
	}

	return &domain.Quiz{
		ID:        modelQuiz.ID,
		ArticleID: modelQuiz.ArticleID,
		QuizTitle: modelQuiz.QuizTitle,
		CreatedAt: modelQuiz.CreatedAt,
	}, nil
}

// GetQuestionsByQuizID implements domain.QuizRepository. Ids are assigned
// from a monotonic sequence at insert time, so ordering by id reproduces
// the generator's question order.
func (a *QuizDatabaseAdapter) GetQuestionsByQuizID(ctx context.Context, quizID int64) ([]*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)

	var modelQuestions []models.Question
	query := `SELECT
		id "id",
		quiz_id "quiz_id",
		question "question",
		options "options",
		correct_answer "correct_answer",
		difficulty "difficulty",
		explanation "explanation",
		related_topics "related_topics",
		created_at "created_at"
	FROM questions
	WHERE quiz_id = :1
	ORDER BY id ASC`

	err := exec.SelectContext(ctx, &modelQuestions, query, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions for quiz %d: %w", quizID, err)
	}

	questions := make([]*domain.Question, 0, len(modelQuestions))
	for i := range modelQuestions {
		questions = append(questions, toDomainQuestion(&modelQuestions[i]))
	}
	return questions, nil
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	return &domain.Question{
		ID:            m.ID,
		QuizID:        m.QuizID,
		Question:      m.Question,
		Options:       []string(m.Options),
		CorrectAnswer: m.CorrectAnswer,
		Difficulty:    m.Difficulty,
		Explanation:   m.Explanation,
		RelatedTopics: []string(m.RelatedTopics),
		CreatedAt:     m.CreatedAt,
	}
}
