// Package search implements the case-insensitive product text match shared by
// the catalog and the favorites list.
package search

import (
	"strings"

	"shopfront/internal/domain"

	"golang.org/x/text/cases"
)

// Matcher tests products against a fixed query.
type Matcher struct {
	folded string
	fold   cases.Caser
}

// NewMatcher returns a Matcher for query. Surrounding whitespace is ignored
// and an empty query matches everything.
func NewMatcher(query string) Matcher {
	fold := cases.Fold()
	return Matcher{folded: fold.String(strings.TrimSpace(query)), fold: fold}
}

// Match reports whether p's name or description contains the query.
func (m Matcher) Match(p domain.Product) bool {
	if m.folded == "" {
		return true
	}
	return strings.Contains(m.fold.String(p.Name), m.folded) ||
		strings.Contains(m.fold.String(p.Description), m.folded)
}
