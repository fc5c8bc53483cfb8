package respond

import (
	"context"
	"errors"
	"net/http"

	"newsdiary/internal/domain/entity"
	"newsdiary/internal/handler/http/pathutil"
	"newsdiary/internal/infra/docstore"
	artUC "newsdiary/internal/usecase/article"
	"newsdiary/internal/usecase/calendar"
	"newsdiary/internal/usecase/diary"
)

// FromError maps domain errors to client-facing AppErrors.
// It returns nil for errors with no dedicated mapping.
func FromError(err error) *AppError {
	var verr *entity.ValidationError
	switch {
	case errors.As(err, &verr):
		return NewAppError(http.StatusBadRequest, verr.Error(), err)
	case errors.Is(err, entity.ErrInvalidCategory):
		return NewAppError(http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, pathutil.ErrInvalidID):
		return NewAppError(http.StatusBadRequest, "invalid id", err)
	case errors.Is(err, artUC.ErrArticleNotFound),
		errors.Is(err, diary.ErrEntryNotFound),
		errors.Is(err, calendar.ErrIssueNotFound):
		return NewAppError(http.StatusNotFound, notFoundMessage(err), err)
	case errors.Is(err, artUC.ErrCascadeIncomplete):
		return NewAppError(http.StatusInternalServerError,
			"articles deleted but diary cleanup failed; retry the request", err)
	case errors.Is(err, docstore.ErrCorrupt):
		return NewAppError(http.StatusInternalServerError,
			"stored data is corrupt; writes are refused until it is repaired", err)
	case errors.Is(err, context.DeadlineExceeded):
		return NewAppError(http.StatusGatewayTimeout, "request timed out", err)
	}
	return nil
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, artUC.ErrArticleNotFound):
		return artUC.ErrArticleNotFound.Error()
	case errors.Is(err, diary.ErrEntryNotFound):
		return diary.ErrEntryNotFound.Error()
	default:
		return calendar.ErrIssueNotFound.Error()
	}
}
