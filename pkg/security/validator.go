package security

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxSearchQueryLength defines the maximum allowed length for search queries
	MaxSearchQueryLength = 100

	// LikeEscape is the escape character used by LikePattern. It is valid as an
	// ESCAPE clause on PostgreSQL, MySQL and SQLite alike.
	LikeEscape = "!"
)

var (
	// ErrSearchQueryTooLong is returned for queries longer than MaxSearchQueryLength runes.
	ErrSearchQueryTooLong = errors.New("search query too long")
	// ErrSearchQueryInvalid is returned for queries with disallowed characters or SQL fragments.
	ErrSearchQueryInvalid = errors.New("search query contains invalid characters")
)

// suspiciousPatterns flag input that looks like an injection attempt even when
// every character on its own is allowed.
var suspiciousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(union|select|insert|update|delete|drop|create|alter|exec|execute)\b`),
	regexp.MustCompile(`(?i)\b(or|and)\s+\d+\s*=\s*\d+`),
	regexp.MustCompile(`--|/\*|\*/`),
	regexp.MustCompile(`(?i)\b(waitfor|benchmark|sleep)\b`),
}

var likeReplacer = strings.NewReplacer(
	LikeEscape, LikeEscape+LikeEscape,
	"%", LikeEscape+"%",
	"_", LikeEscape+"_",
)

// ValidateSearchQuery checks a free-text filter used against user names and emails
// and returns it trimmed. An empty query is valid and means "no filter".
func ValidateSearchQuery(query string) (string, error) {
	if utf8.RuneCountInString(query) > MaxSearchQueryLength {
		return "", ErrSearchQueryTooLong
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return "", nil
	}

	for _, r := range query {
		if !isValidSearchChar(r) {
			return "", ErrSearchQueryInvalid
		}
	}

	for _, pattern := range suspiciousPatterns {
		if pattern.MatchString(query) {
			return "", ErrSearchQueryInvalid
		}
	}

	return query, nil
}

func isValidSearchChar(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsNumber(r) {
		return true
	}
	switch r {
	case ' ', '-', '_', '.', '@', '+', '%':
		return true
	}
	return false
}

// LikePattern builds a lower-cased "contains" pattern for LIKE with the wildcards
// of query escaped by LikeEscape. Use it together with ESCAPE '!'.
func LikePattern(query string) string {
	return "%" + likeReplacer.Replace(strings.ToLower(query)) + "%"
}
