package service

import (
	"context"
	"sync"
	"time"

	"wiki-quiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockContentSource struct {
	mock.Mock
}

func (m *MockContentSource) Fetch(ctx context.Context, pageURL string) (*domain.ArticleContent, error) {
	args := m.Called(ctx, pageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ArticleContent), args.Error(1)
}

type MockQuizGenerator struct {
	mock.Mock
}

func (m *MockQuizGenerator) Generate(ctx context.Context, content *domain.ArticleContent, numQuestions int) (*domain.GeneratedQuiz, error) {
	args := m.Called(ctx, content, numQuestions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneratedQuiz), args.Error(1)
}

type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) GetOrCreate(ctx context.Context, url, title, summary string) (*domain.Article, error) {
	args := m.Called(ctx, url, title, summary)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) CreateQuizWithQuestions(ctx context.Context, quiz *domain.Quiz, questions []*domain.Question) error {
	args := m.Called(ctx, quiz, questions)
	return args.Error(0)
}

func (m *MockQuizRepository) GetQuizByID(ctx context.Context, id int64) (*domain.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetQuestionsByQuizID(ctx context.Context, quizID int64) ([]*domain.Question, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

// fakeTxManager runs fn directly; the repository tests cover real
// transaction semantics.
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

// fakeCache is an in-memory domain.Cache.
type fakeCache struct {
	mu    sync.Mutex
	store map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	val, ok := f.store[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return val, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.store, key)
	return nil
}
