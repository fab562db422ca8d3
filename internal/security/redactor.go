// Package security keeps bot tokens out of log output.
package security

import (
	"regexp"
	"strings"
	"sync"
)

// RedactPlaceholder is the replacement string for redacted secrets.
const RedactPlaceholder = "***REDACTED***"

// botTokenPattern matches the Telegram bot token format embedded anywhere
// in a string: a numeric bot id, a colon, and a long hash. The length
// bounds avoid false positives on timestamps and ratios.
var botTokenPattern = regexp.MustCompile(`\b\d{5,}:[A-Za-z0-9_-]{20,}\b`)

// Redactor replaces secret values in strings with a redaction placeholder.
// It matches the bot token format by default and any literal values added
// at runtime. All methods are safe for concurrent use.
type Redactor struct {
	mu       sync.RWMutex
	patterns []*regexp.Regexp
	literals []string
}

// NewRedactor creates a Redactor pre-loaded with the bot token pattern.
func NewRedactor() *Redactor {
	return &Redactor{
		patterns: []*regexp.Regexp{botTokenPattern},
	}
}

// AddLiteral adds a literal secret value that should be redacted on sight.
// Empty strings are ignored.
func (r *Redactor) AddLiteral(secret string) {
	if secret == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.literals = append(r.literals, secret)
}

// Redact replaces all known secret patterns and literal values in s
// with RedactPlaceholder.
func (r *Redactor) Redact(s string) string {
	if s == "" {
		return s
	}

	r.mu.RLock()
	patterns := r.patterns
	literals := r.literals
	r.mu.RUnlock()

	for _, p := range patterns {
		s = p.ReplaceAllString(s, RedactPlaceholder)
	}

	for _, lit := range literals {
		if strings.Contains(s, lit) {
			s = strings.ReplaceAll(s, lit, RedactPlaceholder)
		}
	}

	return s
}
