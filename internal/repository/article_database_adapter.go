package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/repository/models"
	"wiki-quiz/internal/util"

	"github.com/jmoiron/sqlx"
)

// ArticleDatabaseAdapter implements domain.ArticleRepository using sqlx.DB
type ArticleDatabaseAdapter struct {
	db *sqlx.DB
}

// NewArticleDatabaseAdapter creates a new instance of ArticleDatabaseAdapter
func NewArticleDatabaseAdapter(db *sqlx.DB) domain.ArticleRepository {
	return &ArticleDatabaseAdapter{db: db}
}

const selectArticleByURL = `SELECT
	id "id",
	url "url",
	title "title",
	summary "summary",
	created_at "created_at"
FROM articles
WHERE url = :1`

// GetOrCreate implements domain.ArticleRepository. The cache is
// first-write-wins: title and summary are ignored on a hit. A unique
// constraint violation on insert means a concurrent request created the
// row between our lookup and insert; the existing row is re-read and
// returned instead of propagating the error.
func (a *ArticleDatabaseAdapter) GetOrCreate(ctx context.Context, url, title, summary string) (*domain.Article, error) {
	exec := GetExecutor(ctx, a.db)

	existing, err := a.getByURL(ctx, exec, url)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	id, err := nextID(ctx, exec, articlesSeq)
	if err != nil {
		return nil, fmt.Errorf("failed to get next article id: %w", err)
	}

	modelArticle := models.Article{
		ID:        id,
		URL:       url,
		Title:     title,
		Summary:   summary,
		CreatedAt: time.Now(),
	}

	query := `INSERT INTO articles (
		id, url, title, summary, created_at
	) VALUES (
		:1, :2, :3, :4, :5
	)`

	_, err = exec.ExecContext(ctx, query,
		modelArticle.ID,
		modelArticle.URL,
		modelArticle.Title,
		modelArticle.Summary,
		modelArticle.CreatedAt,
	)
	if err != nil {
		if util.IsUniqueConstraintViolation(err) {
			// Lost the insert race; someone else just created it.
			winner, readErr := a.getByURL(ctx, exec, url)
			if readErr != nil {
				return nil, readErr
			}
			if winner == nil {
				return nil, fmt.Errorf("article insert conflicted but row not found for url %s", url)
			}
			return winner, nil
		}
		return nil, fmt.Errorf("failed to insert article: %w", err)
	}

	return toDomainArticle(&modelArticle), nil
}

func (a *ArticleDatabaseAdapter) getByURL(ctx context.Context, exec DBTX, url string) (*domain.Article, error) {
	var modelArticle models.Article
	err := exec.GetContext(ctx, &modelArticle, selectArticleByURL, url)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get article by url %s: %w", url, err)
	}
	return toDomainArticle(&modelArticle), nil
}

func toDomainArticle(m *models.Article) *domain.Article {
	if m == nil {
		return nil
	}
	return &domain.Article{
		ID:        m.ID,
		URL:       m.URL,
		Title:     m.Title,
		Summary:   m.Summary,
		CreatedAt: m.CreatedAt,
	}
}
