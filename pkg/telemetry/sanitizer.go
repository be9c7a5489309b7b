package telemetry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// PIILevel defines how much of a searched person's data may reach logs and spans
type PIILevel string

const (
	// PIILevelNone redacts all query content
	PIILevelNone PIILevel = "none"
	// PIILevelHashed replaces names and contact details with salted hashes
	PIILevelHashed PIILevel = "hashed"
	// PIILevelFull performs no sanitization
	PIILevelFull PIILevel = "full"
)

// Sanitizer scrubs person lookups before they are logged or traced
type Sanitizer struct {
	level PIILevel
	salt  string

	emailPattern *regexp.Regexp
	phonePattern *regexp.Regexp
	urlPattern   *regexp.Regexp
}

// NewSanitizer creates a sanitizer whose hashes are salted per deployment
func NewSanitizer(level PIILevel, salt string) *Sanitizer {
	return &Sanitizer{
		level:        level,
		salt:         salt,
		emailPattern: regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
		phonePattern: regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`),
		urlPattern:   regexp.MustCompile(`https?://[^\s]+`),
	}
}

// Level returns the configured level
func (s *Sanitizer) Level() PIILevel {
	return s.level
}

// SanitizeQuery scrubs the searched name. A name carries no detectable
// pattern, so at the hashed level the whole value is hashed.
func (s *Sanitizer) SanitizeQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return ""
	}

	switch s.level {
	case PIILevelNone:
		return "[REDACTED]"
	case PIILevelFull:
		return query
	default:
		return fmt.Sprintf("[NAME:%s]", s.hash(strings.ToLower(query)))
	}
}

// SanitizeText scrubs free text such as upstream error bodies, which may
// echo profile snippets back.
func (s *Sanitizer) SanitizeText(input string) string {
	switch s.level {
	case PIILevelNone:
		if input == "" {
			return ""
		}
		return "[REDACTED]"
	case PIILevelFull:
		return input
	default:
		return s.hashPII(input)
	}
}

// SanitizeHints scrubs the optional location/university/company hints
func (s *Sanitizer) SanitizeHints(hints map[string]string) map[string]string {
	if hints == nil {
		return nil
	}

	result := make(map[string]string, len(hints))
	for k, v := range hints {
		if s.level == PIILevelFull {
			result[k] = v
			continue
		}
		result[k] = s.SanitizeQuery(v)
	}
	return result
}

// hashPII detects and hashes contact details in the input string
func (s *Sanitizer) hashPII(input string) string {
	result := s.urlPattern.ReplaceAllStringFunc(input, func(match string) string {
		return fmt.Sprintf("[URL:%s]", s.hash(match))
	})

	result = s.emailPattern.ReplaceAllStringFunc(result, func(match string) string {
		return fmt.Sprintf("[EMAIL:%s]", s.hash(match))
	})

	result = s.phonePattern.ReplaceAllStringFunc(result, func(match string) string {
		return fmt.Sprintf("[PHONE:%s]", s.hash(match))
	})

	return result
}

// hash creates a SHA-256 hash with the deployment salt
func (s *Sanitizer) hash(data string) string {
	h := sha256.New()
	h.Write([]byte(data + s.salt))
	hash := hex.EncodeToString(h.Sum(nil))
	// Return first 8 chars for readability
	return hash[:8]
}
