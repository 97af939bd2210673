package services

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips unsafe markup from user-supplied text before storage.
type Sanitizer interface {
	Sanitize(input string) string
}

type commentSanitizer struct {
	policy *bluemonday.Policy
}

// NewCommentSanitizer returns a sanitizer that strips all HTML from comment
// text. Comments are plain text; anything executable or markup-shaped goes.
func NewCommentSanitizer() Sanitizer {
	return &commentSanitizer{policy: bluemonday.StrictPolicy()}
}

func (s *commentSanitizer) Sanitize(input string) string {
	return strings.TrimSpace(s.policy.Sanitize(input))
}
