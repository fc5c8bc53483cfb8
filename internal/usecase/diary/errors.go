// Package diary provides the diary use cases: one note per article, with
// upsert on creation and partial updates.
package diary

import "errors"

// ErrEntryNotFound indicates that no diary entry has the requested ID.
var ErrEntryNotFound = errors.New("diary entry not found")
