package contact

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Clean trims every field and folds the email address to lower case.
func (s Submission) Clean() Submission {
	return Submission{
		Name:    strings.TrimSpace(s.Name),
		Email:   cases.Lower(language.Und).String(strings.TrimSpace(s.Email)),
		Message: strings.TrimSpace(s.Message),
	}
}

// NewMessage builds a stored message from a submission. Fields that are
// empty after trimming are rejected.
func NewMessage(s Submission, now time.Time) (Message, error) {
	cleaned := s.Clean()

	requiredFields := []struct {
		name  string
		value string
	}{
		{"name", cleaned.Name},
		{"email", cleaned.Email},
		{"message", cleaned.Message},
	}
	for _, field := range requiredFields {
		if field.value == "" {
			return Message{}, fmt.Errorf("%s must not be blank", field.name)
		}
	}

	return Message{
		ID:          uuid.NewString(),
		Name:        cleaned.Name,
		Email:       cleaned.Email,
		Message:     cleaned.Message,
		SubmittedAt: now.UTC(),
		Status:      StatusNew,
	}, nil
}

// Normalize clamps pagination values to the supported range.
func (f ListFilter) Normalize() ListFilter {
	if f.Skip < 0 {
		f.Skip = 0
	}
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	return f
}
