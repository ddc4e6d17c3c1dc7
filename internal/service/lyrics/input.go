package lyrics

import (
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/lyrictalk-backend/internal/domain"
)

// RegisterCorpusInput holds the parameters for registering lyrics.
type RegisterCorpusInput struct {
	Text   string
	Title  *string
	Artist *string
}

// Validate checks all fields and collects all errors.
func (i RegisterCorpusInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Text) == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	}
	if i.Title != nil && utf8.RuneCountInString(strings.TrimSpace(*i.Title)) > 200 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 200 characters"})
	}
	if i.Artist != nil && utf8.RuneCountInString(strings.TrimSpace(*i.Artist)) > 200 {
		errs = append(errs, domain.FieldError{Field: "artist", Message: "max 200 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
