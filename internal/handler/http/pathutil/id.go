package pathutil

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// maxIDLength bounds IDs accepted from a path.
const maxIDLength = 256

// PathID returns the unescaped path wildcard name of r.
// Article IDs embed their category, so "생활/문화" arrives as "%2F" and is
// returned with the slash restored.
func PathID(r *http.Request, name string) (string, error) {
	id := r.PathValue(name)
	if strings.TrimSpace(id) == "" || len(id) > maxIDLength || !utf8.ValidString(id) {
		return "", ErrInvalidID
	}
	return id, nil
}
