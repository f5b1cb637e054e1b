package domain

import "context"

// ContentSource converts a URL into structured article content.
// Implementations must classify failures: unreachable pages surface as
// content source errors, unparsable or empty pages as invalid input.
type ContentSource interface {
	Fetch(ctx context.Context, pageURL string) (*ArticleContent, error)
}

// QuizGenerator turns article content into a quiz title and questions.
// numQuestions is a hint; implementations may return fewer or more items,
// but an empty list is a generation failure.
type QuizGenerator interface {
	Generate(ctx context.Context, content *ArticleContent, numQuestions int) (*GeneratedQuiz, error)
}

// ArticleRepository is the sole writer of article rows.
type ArticleRepository interface {
	// GetOrCreate returns the existing article for url unchanged, or inserts
	// a new one with the given title and summary. First write wins: title and
	// summary are ignored when the row already exists.
	GetOrCreate(ctx context.Context, url, title, summary string) (*Article, error)
}

// QuizRepository is the sole writer of quiz and question rows.
type QuizRepository interface {
	// CreateQuizWithQuestions inserts the quiz and all its questions using the
	// executor bound to ctx. Callers wrap it in TransactionManager.WithTransaction
	// so either all rows exist afterwards or none do.
	CreateQuizWithQuestions(ctx context.Context, quiz *Quiz, questions []*Question) error
	// GetQuizByID returns nil without error when no row matches.
	GetQuizByID(ctx context.Context, id int64) (*Quiz, error)
	// GetQuestionsByQuizID returns the questions in insertion order.
	GetQuestionsByQuizID(ctx context.Context, quizID int64) ([]*Question, error)
}

// TransactionManager scopes a function to a single database transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
