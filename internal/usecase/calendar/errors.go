// Package calendar provides the calendar issue use cases. Issues are
// free-standing notes attached to a date; several may share a date.
package calendar

import "errors"

// ErrIssueNotFound indicates that no issue has the requested ID.
var ErrIssueNotFound = errors.New("calendar issue not found")
