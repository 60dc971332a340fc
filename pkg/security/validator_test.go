package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSearchQuery(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		expectError error
		expected    string
	}{
		{
			name:     "valid empty query",
			query:    "",
			expected: "",
		},
		{
			name:     "only spaces",
			query:    "   ",
			expected: "",
		},
		{
			name:     "valid simple query",
			query:    "maria",
			expected: "maria",
		},
		{
			name:     "valid query with spaces",
			query:    "maria brown",
			expected: "maria brown",
		},
		{
			name:     "valid email-like query",
			query:    "maria@gmail.com",
			expected: "maria@gmail.com",
		},
		{
			name:     "valid query with allowed punctuation",
			query:    "maria-brown_123",
			expected: "maria-brown_123",
		},
		{
			name:     "leading and trailing spaces are trimmed",
			query:    "  alex green  ",
			expected: "alex green",
		},
		{
			name:     "word containing a keyword is fine",
			query:    "updated@example.com",
			expected: "updated@example.com",
		},
		{
			name:        "query too long",
			query:       strings.Repeat("a", MaxSearchQueryLength+1),
			expectError: ErrSearchQueryTooLong,
		},
		{
			name:        "SQL injection attempt - UNION",
			query:       "maria UNION SELECT name FROM users",
			expectError: ErrSearchQueryInvalid,
		},
		{
			name:        "SQL injection attempt - OR condition",
			query:       "maria OR 1=1",
			expectError: ErrSearchQueryInvalid,
		},
		{
			name:        "SQL injection attempt - comment",
			query:       "maria --",
			expectError: ErrSearchQueryInvalid,
		},
		{
			name:        "SQL injection attempt - DROP",
			query:       "maria; DROP TABLE users",
			expectError: ErrSearchQueryInvalid,
		},
		{
			name:        "XSS attempt",
			query:       "<script>alert('xss')</script>",
			expectError: ErrSearchQueryInvalid,
		},
		{
			name:        "ampersand",
			query:       "maria&alex",
			expectError: ErrSearchQueryInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateSearchQuery(tt.query)

			if tt.expectError != nil {
				require.ErrorIs(t, err, tt.expectError)
				assert.Empty(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestLikePattern(t *testing.T) {
	tests := []struct {
		query    string
		expected string
	}{
		{"", "%%"},
		{"Maria", "%maria%"},
		{"maria%", "%maria!%%"},
		{"maria_brown", "%maria!_brown%"},
		{"wow!", "%wow!!%"},
		{"maria@gmail.com", "%maria@gmail.com%"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.expected, LikePattern(tt.query))
		})
	}
}

func TestIsValidSearchChar(t *testing.T) {
	for _, r := range "aZ5 -_.@+%é" {
		assert.True(t, isValidSearchChar(r), "expected %q to be allowed", r)
	}
	for _, r := range ";&<>'\"*#/\\=" {
		assert.False(t, isValidSearchChar(r), "expected %q to be rejected", r)
	}
}

func BenchmarkValidateSearchQuery(b *testing.B) {
	query := "maria brown example"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ValidateSearchQuery(query)
	}
}
