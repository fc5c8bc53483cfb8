package entity

import (
	"errors"
	"fmt"
)

// Category is one of the six fixed news sections.
type Category string

// News sections collected from the portal.
const (
	CategoryPolitics    Category = "정치"
	CategoryEconomy     Category = "경제"
	CategorySociety     Category = "사회"
	CategoryLifeCulture Category = "생활/문화"
	CategoryITScience   Category = "IT/과학"
	CategoryWorld       Category = "세계"
)

// ErrInvalidCategory indicates that a category is not one of the fixed sections.
var ErrInvalidCategory = errors.New("invalid category")

// allCategories keeps the canonical collection order.
var allCategories = []Category{
	CategoryPolitics,
	CategoryEconomy,
	CategorySociety,
	CategoryLifeCulture,
	CategoryITScience,
	CategoryWorld,
}

// AllCategories returns every supported category in canonical order.
// The returned slice is a copy and may be modified by the caller.
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// Valid reports whether c is one of the fixed sections.
func (c Category) Valid() bool {
	for _, known := range allCategories {
		if c == known {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// ParseCategory converts a raw string into a Category.
// Returns an error wrapping ErrInvalidCategory for unknown values.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// ParseCategories converts raw names in order. An empty input yields nil,
// which callers treat as every category.
func ParseCategories(names []string) ([]Category, error) {
	if len(names) == 0 {
		return nil, nil
	}
	out := make([]Category, 0, len(names))
	for _, name := range names {
		c, err := ParseCategory(name)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
