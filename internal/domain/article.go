package domain

import "time"

// Article is the cached representation of a scraped page, keyed by URL.
// Rows are created on the first request for a URL and reused verbatim
// afterwards; they are never updated or deleted.
type Article struct {
	ID        int64
	URL       string
	Title     string
	Summary   string
	CreatedAt time.Time
}

// ArticleContent is the structured output of the content source collaborator.
// Body is handed to the quiz generator but is not persisted.
type ArticleContent struct {
	Title   string
	Summary string
	Body    string
}

// Validate checks the extracted content is usable as generation input.
func (c *ArticleContent) Validate() error {
	if c.Title == "" {
		return NewInvalidInputError("article has no title", nil)
	}
	if c.Body == "" {
		return NewInvalidInputError("article has no readable body text", nil)
	}
	return nil
}
