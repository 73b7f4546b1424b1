// Package validation holds the pure request validators for admin actions.
// Validators never stop at the first problem: every violated rule adds one
// message so the caller can report them together.
package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MinReasonLength      = 10
	MaxReasonLength      = 1000
	MaxUnbanReasonLength = 500
)

type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

type errorList []string

func (l *errorList) add(msg string) {
	if msg != "" {
		*l = append(*l, msg)
	}
}

func (l errorList) result() Result {
	return Result{Valid: len(l) == 0, Errors: l}
}

// Only flags obvious attempts; apostrophes in ordinary prose must pass.
// A trailing "--" is checked per line so a comment marker cannot hide before a newline.
var sqlInjectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(';|';\s*--|';\s*(DROP|DELETE|INSERT|UPDATE|SELECT))`),
	regexp.MustCompile(`(?i)\b(DROP\s+TABLE|DELETE\s+FROM|INSERT\s+INTO)\b`),
	regexp.MustCompile(`(?im)(UNION\s+SELECT|--\s*$)`),
	regexp.MustCompile(`(?i)(/\*.*\*/)`),
	regexp.MustCompile(`(?i)(\bOR\b.*=.*\bOR\b)`),
	regexp.MustCompile(`(?i)(1=1|'=')`),
}

func ContainsSQLInjection(s string) bool {
	if s == "" {
		return false
	}
	for _, re := range sqlInjectionPatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// ValidateID returns "" when value is a well-formed identifier.
func ValidateID(value, field string) string {
	if strings.TrimSpace(value) == "" {
		return fmt.Sprintf("%s is required", field)
	}
	if _, err := uuid.Parse(value); err != nil {
		return fmt.Sprintf("Invalid %s format", field)
	}
	return ""
}

// ValidateReason checks a required free-text justification.
func ValidateReason(reason string, min, max int) string {
	trimmed := strings.TrimSpace(reason)
	n := utf8.RuneCountInString(trimmed)
	switch {
	case trimmed == "":
		return "Reason is required"
	case n < min:
		return fmt.Sprintf("Reason must be at least %d characters", min)
	case n > max:
		return fmt.Sprintf("Reason too long (max %d characters)", max)
	}
	return ""
}

func IsValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
