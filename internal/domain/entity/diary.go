package entity

import (
	"sort"
)

// DiaryEntry is the operator's note on a single article.
// At most one entry exists per ArticleID.
type DiaryEntry struct {
	ID        string    `json:"id"`
	ArticleID string    `json:"article_id"`
	Content   string    `json:"content"`
	Summary   string    `json:"summary"`
	Opinion   string    `json:"opinion"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// DiaryBook is the canonical diary collection keyed by article ID.
type DiaryBook map[string]DiaryEntry

// NewDiaryBook collapses a list of entries into a book.
// When the list holds several entries for one article, the later one wins.
// Entries without an article ID cannot be addressed and are dropped.
func NewDiaryBook(entries []DiaryEntry) DiaryBook {
	book := make(DiaryBook, len(entries))
	for _, e := range entries {
		if e.ArticleID == "" {
			continue
		}
		book[e.ArticleID] = e
	}
	return book
}

// List returns the entries ordered by creation time, then by ID.
func (b DiaryBook) List() []DiaryEntry {
	out := make([]DiaryEntry, 0, len(b))
	for _, e := range b {
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt.Time)
		}
		if out[i].ID != out[j].ID {
			return out[i].ID < out[j].ID
		}
		return out[i].ArticleID < out[j].ArticleID
	})
	return out
}

// FindByID returns the entry with the given entry ID.
func (b DiaryBook) FindByID(id string) (DiaryEntry, bool) {
	for _, e := range b {
		if e.ID == id {
			return e, true
		}
	}
	return DiaryEntry{}, false
}

// Clone returns a shallow copy that can be mutated independently.
func (b DiaryBook) Clone() DiaryBook {
	out := make(DiaryBook, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
