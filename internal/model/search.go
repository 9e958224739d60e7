package model

import (
	"strings"

	"golang.org/x/text/cases"
)

// SearchKey case-folds s with full Unicode folding. Stored *_key columns and
// search patterns must both be built with it.
func SearchKey(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
