package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a string array as a JSON text column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

// Article row: one per distinct source URL, protected by uq_articles_url.
type Article struct {
	ID        int64     `db:"id"`
	URL       string    `db:"url"`
	Title     string    `db:"title"`
	Summary   string    `db:"summary"`
	CreatedAt time.Time `db:"created_at"`
}

// Quiz row: one per generation request, references exactly one article.
type Quiz struct {
	ID        int64     `db:"id"`
	ArticleID int64     `db:"article_id"`
	QuizTitle string    `db:"quiz_title"`
	CreatedAt time.Time `db:"created_at"`
}

// Question row: belongs to one quiz; options and related_topics are JSON text.
type Question struct {
	ID            int64       `db:"id"`
	QuizID        int64       `db:"quiz_id"`
	Question      string      `db:"question"`
	Options       StringSlice `db:"options"`
	CorrectAnswer string      `db:"correct_answer"`
	Difficulty    string      `db:"difficulty"`
	Explanation   string      `db:"explanation"`
	RelatedTopics StringSlice `db:"related_topics"`
	CreatedAt     time.Time   `db:"created_at"`
}
