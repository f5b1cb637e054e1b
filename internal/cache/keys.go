package cache

import (
	"fmt"
	"strings"
)

const (
	GlobalKeyPrefix = "wikiquiz"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
func GenerateCacheKey(serviceName, objectType, identifier string) string {
	return strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
}

// QuizKey is the cache key for a composed quiz response.
func QuizKey(quizID int64) string {
	return GenerateCacheKey("quiz", "response", fmt.Sprintf("%d", quizID))
}
