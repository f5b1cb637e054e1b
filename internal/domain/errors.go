package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Pipeline specific errors
	CodeQuizNotFound       ErrorCode = "QUIZ_NOT_FOUND"
	CodeContentSourceError ErrorCode = "CONTENT_SOURCE_ERROR"
	CodeGenerationError    ErrorCode = "GENERATION_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string, err error) *DomainError {
	return NewError(CodeInvalidInput, message, err)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewQuizNotFoundError(quizID int64) *DomainError {
	return NewError(CodeQuizNotFound, fmt.Sprintf("Quiz not found with ID: %d", quizID), nil)
}

// NewContentSourceError wraps a failure of the page fetching/parsing collaborator.
func NewContentSourceError(err error) *DomainError {
	return NewError(CodeContentSourceError, "Failed to fetch article content", err)
}

// NewGenerationError wraps a failure of the quiz generation collaborator.
func NewGenerationError(err error) *DomainError {
	return NewError(CodeGenerationError, "Failed to generate quiz", err)
}

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is the aggregate returned by request validation.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", e[0].Error())
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    string(CodeMissingField),
		Message: fmt.Sprintf("%s is required", field),
	}
}

func NewInvalidFormatError(field, value string) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    string(CodeInvalidFormat),
		Message: fmt.Sprintf("%s has invalid format: %s", field, value),
	}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    string(CodeOutOfRange),
		Message: fmt.Sprintf("%s must be between %d and %d, got %d", field, min, max, value),
	}
}
