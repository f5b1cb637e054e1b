package validation

import (
	"net/url"
	"strconv"
	"strings"

	"wiki-quiz/internal/domain"
)

const (
	MinQuestions     = 1
	MaxQuestions     = 20
	DefaultQuestions = 5
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateQuizRequest validates the quiz generation request.
// numQuestions is expected to already carry the default when omitted.
func (v *Validator) ValidateGenerateQuizRequest(rawURL string, numQuestions int) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(rawURL) == "" {
		errs = append(errs, domain.NewMissingFieldError("url"))
	} else if !isValidArticleURL(rawURL) {
		errs = append(errs, domain.NewInvalidFormatError("url", rawURL))
	}

	if numQuestions < MinQuestions || numQuestions > MaxQuestions {
		errs = append(errs, domain.NewOutOfRangeError("num_questions", numQuestions, MinQuestions, MaxQuestions))
	}

	return errs
}

// ParseQuizID validates and parses the quiz id path parameter.
func (v *Validator) ParseQuizID(raw string) (int64, domain.ValidationErrors) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ValidationErrors{domain.NewInvalidFormatError("quiz_id", raw)}
	}
	return id, nil
}

// isValidArticleURL checks the URL is absolute http(s) with a host.
func isValidArticleURL(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}
