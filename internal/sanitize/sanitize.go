// Package sanitize strips unsafe markup from user supplied text.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict = bluemonday.StrictPolicy()
	rich   = bluemonday.UGCPolicy()
)

// Text removes every tag. Used for titles and comments.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// HTML keeps the formatting tags safe for user generated content.
func HTML(s string) string {
	return strings.TrimSpace(rich.Sanitize(s))
}
