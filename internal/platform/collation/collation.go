// Package collation provides the locale-aware string comparator the deck
// resolver uses for stable display ordering. Collation never affects
// validation or cost math, only sort order.
package collation

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collator compares two strings, returning -1, 0, or 1.
type Collator interface {
	Compare(a, b string) int
}

type localeCollator struct {
	c *collate.Collator
}

func (l localeCollator) Compare(a, b string) int {
	return l.c.CompareString(a, b)
}

// New returns a collator for the given locale, falling back to English when
// the locale does not parse.
func New(locale string) Collator {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return localeCollator{c: collate.New(tag, collate.IgnoreCase)}
}
