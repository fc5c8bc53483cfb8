package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"newsdiary/internal/handler/http/requestid"
	"newsdiary/internal/handler/http/respond"
)

type ctxKey string

const ctxSubject ctxKey = "subject"

// SubjectFromContext returns the authenticated operator name, if any.
func SubjectFromContext(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(ctxSubject).(string)
	return sub, ok
}

// Authz requires a valid bearer token on every method of every endpoint
// except the public ones.
func Authz(issuer *Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IsPublicEndpoint(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			subject, err := bearerSubject(r.Header.Get("Authorization"), issuer)
			RecordAuthzCheckDuration(time.Since(start).Seconds())
			if err != nil {
				RecordUnauthorizedAttempt(r.Method)
				slog.WarnContext(r.Context(), "request rejected",
					slog.String("request_id", requestid.FromContext(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("reason", err.Error()))
				w.Header().Set("WWW-Authenticate", `Bearer realm="newsdiary"`)
				respond.Error(w, http.StatusUnauthorized, fmt.Errorf("unauthorized: %w", err))
				return
			}

			ctx := context.WithValue(r.Context(), ctxSubject, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerSubject(header string, issuer *Issuer) (string, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", errors.New("missing bearer token")
	}
	return issuer.Verify(strings.TrimSpace(strings.TrimPrefix(header, prefix)))
}
