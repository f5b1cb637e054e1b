package service

import (
	"context"
	"encoding/json"
	"errors"

	"wiki-quiz/internal/cache"
	"wiki-quiz/internal/config"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/logger"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	// GenerateQuiz runs the full pipeline: fetch content, cache the article,
	// generate questions and persist the quiz atomically.
	GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error)
	// GetQuiz returns a stored quiz and its questions in insertion order.
	GetQuiz(ctx context.Context, quizID int64) (*dto.QuizResponse, error)
}

// quizService implements QuizService
type quizService struct {
	articleRepo domain.ArticleRepository
	quizRepo    domain.QuizRepository
	source      domain.ContentSource
	generator   domain.QuizGenerator
	txManager   domain.TransactionManager
	cache       domain.Cache
	cfg         *config.Config
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	articleRepo domain.ArticleRepository,
	quizRepo domain.QuizRepository,
	source domain.ContentSource,
	generator domain.QuizGenerator,
	txManager domain.TransactionManager,
	responseCache domain.Cache,
	cfg *config.Config,
) QuizService {
	return &quizService{
		articleRepo: articleRepo,
		quizRepo:    quizRepo,
		source:      source,
		generator:   generator,
		txManager:   txManager,
		cache:       responseCache,
		cfg:         cfg,
	}
}

// GenerateQuiz implements QuizService. The five steps run strictly in
// sequence with no internal retries. The article commit is independent of
// the quiz transaction: a cached article surviving a failed generation is
// accepted and reused on retry.
func (s *quizService) GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error) {
	content, err := s.source.Fetch(ctx, req.URL)
	if err != nil {
		return nil, reclassify(err, "Failed to fetch article content")
	}

	article, err := s.articleRepo.GetOrCreate(ctx, req.URL, content.Title, content.Summary)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get or create article", err)
	}

	generated, err := s.generator.Generate(ctx, content, req.NumQuestions)
	if err != nil {
		return nil, reclassify(err, "Failed to generate quiz")
	}

	quiz := &domain.Quiz{
		ArticleID: article.ID,
		QuizTitle: generated.QuizTitle,
	}
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.quizRepo.CreateQuizWithQuestions(txCtx, quiz, generated.Questions)
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to persist quiz", err)
	}

	logger.Get().Info("Quiz created",
		zap.Int64("quiz_id", quiz.ID),
		zap.Int64("article_id", article.ID),
		zap.String("url", req.URL),
		zap.Int("num_questions", len(generated.Questions)),
	)

	response := toQuizResponse(quiz, generated.Questions)
	s.putResponseToCache(ctx, response)
	return response, nil
}

// GetQuiz implements QuizService
func (s *quizService) GetQuiz(ctx context.Context, quizID int64) (*dto.QuizResponse, error) {
	if cached := s.getResponseFromCache(ctx, quizID); cached != nil {
		return cached, nil
	}

	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}

	questions, err := s.quizRepo.GetQuestionsByQuizID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get questions", err)
	}

	response := toQuizResponse(quiz, questions)
	s.putResponseToCache(ctx, response)
	return response, nil
}

// getResponseFromCache returns the cached composed response or nil. Cache
// failures are logged and treated as misses.
func (s *quizService) getResponseFromCache(ctx context.Context, quizID int64) *dto.QuizResponse {
	if s.cache == nil {
		return nil
	}
	val, err := s.cache.Get(ctx, cache.QuizKey(quizID))
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Failed to read quiz from cache", zap.Int64("quiz_id", quizID), zap.Error(err))
		}
		return nil
	}
	var response dto.QuizResponse
	if err := json.Unmarshal([]byte(val), &response); err != nil {
		logger.Get().Warn("Failed to decode cached quiz", zap.Int64("quiz_id", quizID), zap.Error(err))
		return nil
	}
	return &response
}

func (s *quizService) putResponseToCache(ctx context.Context, response *dto.QuizResponse) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(response)
	if err != nil {
		logger.Get().Warn("Failed to encode quiz for cache", zap.Int64("quiz_id", response.QuizID), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, cache.QuizKey(response.QuizID), string(payload), s.cfg.Cache.QuizTTL); err != nil {
		logger.Get().Warn("Failed to write quiz to cache", zap.Int64("quiz_id", response.QuizID), zap.Error(err))
	}
}

func toQuizResponse(quiz *domain.Quiz, questions []*domain.Question) *dto.QuizResponse {
	questionResponses := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		questionResponses = append(questionResponses, dto.QuestionResponse{
			ID:            q.ID,
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Difficulty:    q.Difficulty,
			Explanation:   q.Explanation,
			RelatedTopics: q.RelatedTopics,
		})
	}
	return &dto.QuizResponse{
		QuizID:    quiz.ID,
		QuizTitle: quiz.QuizTitle,
		Questions: questionResponses,
	}
}

// reclassify keeps collaborator errors that already carry a domain code and
// wraps anything else as internal.
func reclassify(err error, message string) error {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return domain.NewInternalError(message, err)
}
