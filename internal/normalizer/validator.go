package normalizer

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"articlebuild/internal/models"
)

// Validation errors.
var (
	ErrMissingURL      = errors.New("article has no url")
	ErrEmptyContent    = errors.New("article has no content")
	ErrContentTooShort = errors.New("article content below minimum length")
)

// Validator decides whether a normalized article is kept.
type Validator struct {
	minContentLength int
}

// NewValidator creates a validator requiring at least minContentLength
// characters of content.
func NewValidator(minContentLength int) *Validator {
	return &Validator{minContentLength: minContentLength}
}

// Validate returns nil when the article has a url and enough content.
// Length is counted in characters, not bytes.
func (v *Validator) Validate(article *models.Article) error {
	if article.Key() == "" {
		return ErrMissingURL
	}

	if article.Content == "" {
		return ErrEmptyContent
	}

	if n := utf8.RuneCountInString(article.Content); n < v.minContentLength {
		return fmt.Errorf("%w: %d < %d", ErrContentTooShort, n, v.minContentLength)
	}

	return nil
}
