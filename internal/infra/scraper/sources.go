package scraper

import (
	"fmt"
	"net/url"

	"newsdiary/internal/domain/entity"
)

// BaseURL is the origin of every section page.
const BaseURL = "https://news.naver.com"

// Listing selectors of a section page.
const (
	ListSelector  = "ul.sa_list li.sa_item"
	TitleSelector = "a.sa_text_title"
	PressSelector = ".sa_text_press"
)

// DefaultMaxItems caps the number of listing nodes read per category.
const DefaultMaxItems = 20

var sectionPaths = map[entity.Category]string{
	entity.CategoryPolitics:    "/section/100",
	entity.CategoryEconomy:     "/section/101",
	entity.CategorySociety:     "/section/102",
	entity.CategoryLifeCulture: "/section/103",
	entity.CategoryITScience:   "/section/105",
	entity.CategoryWorld:       "/section/104",
}

// Sources returns the section URL of every category on the given origin.
func Sources(base string) map[entity.Category]string {
	out := make(map[entity.Category]string, len(sectionPaths))
	for c, p := range sectionPaths {
		out[c] = base + p
	}
	return out
}

// SourceURL resolves a category to its section page on the given origin.
func SourceURL(base string, c entity.Category) (string, error) {
	p, ok := sectionPaths[c]
	if !ok {
		return "", fmt.Errorf("%w: %q", entity.ErrInvalidCategory, string(c))
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	return u.JoinPath(p).String(), nil
}
