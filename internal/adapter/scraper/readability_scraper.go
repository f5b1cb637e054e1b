package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"

	readability "github.com/go-shiori/go-readability"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const summaryMaxLen = 500

// ReadabilityScraper implements domain.ContentSource by fetching the page
// over HTTP and extracting the article with go-readability. Concurrent
// fetches of the same URL are collapsed into one request; persistence
// still relies on the database uniqueness constraint.
type ReadabilityScraper struct {
	client *http.Client
	group  singleflight.Group
}

// NewReadabilityScraper creates a new instance of ReadabilityScraper
func NewReadabilityScraper(timeout time.Duration) *ReadabilityScraper {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &ReadabilityScraper{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch implements domain.ContentSource
func (s *ReadabilityScraper) Fetch(ctx context.Context, pageURL string) (*domain.ArticleContent, error) {
	v, err, shared := s.group.Do(pageURL, func() (interface{}, error) {
		return s.fetch(ctx, pageURL)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Get().Debug("Shared in-flight fetch result", zap.String("url", pageURL))
	}
	return v.(*domain.ArticleContent), nil
}

func (s *ReadabilityScraper) fetch(ctx context.Context, pageURL string) (*domain.ArticleContent, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil || !parsedURL.IsAbs() {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("invalid article url: %s", pageURL), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("invalid article url: %s", pageURL), err)
	}
	req.Header.Set("User-Agent", "wiki-quiz/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, domain.NewContentSourceError(fmt.Errorf("failed to fetch %s: %w", pageURL, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.NewContentSourceError(fmt.Errorf("fetching %s returned status %d", pageURL, resp.StatusCode))
	}

	article, err := readability.FromReader(resp.Body, parsedURL)
	if err != nil {
		// The page came back fine but is not an article; that is on the caller.
		return nil, domain.NewInvalidInputError(fmt.Sprintf("page is not a parsable article: %s", pageURL), err)
	}

	content := &domain.ArticleContent{
		Title:   strings.TrimSpace(article.Title),
		Summary: strings.TrimSpace(article.Excerpt),
		Body:    strings.TrimSpace(article.TextContent),
	}
	if content.Summary == "" {
		content.Summary = truncate(content.Body, summaryMaxLen)
	}

	if err := content.Validate(); err != nil {
		return nil, err
	}

	logger.Get().Info("Extracted article content",
		zap.String("url", pageURL),
		zap.String("title", content.Title),
		zap.Int("body_length", len(content.Body)),
	)
	return content, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
