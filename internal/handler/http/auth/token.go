package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"newsdiary/internal/handler/http/requestid"
	"newsdiary/internal/handler/http/respond"
)

// Issuer signs and verifies HS256 tokens for the operator.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an Issuer. A non-positive ttl defaults to one hour.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token for subject and its expiry.
func (i *Issuer) Issue(subject string) (string, time.Time, error) {
	now := i.now()
	exp := now.Add(i.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify checks the signature, algorithm and expiry and returns the subject.
func (i *Issuer) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", errors.New("token expired")
		}
		return "", errors.New("invalid token")
	}
	if !tok.Valid || claims.Subject == "" {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenHandler exchanges the operator credentials for a token.
//
// @Summary      Issue JWT
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "operator credentials"
// @Success      200 {object} tokenResponse
// @Failure      400 {string} string "invalid request"
// @Failure      401 {string} string "invalid credentials"
// @Failure      429 {string} string "rate limit exceeded"
// @Router       /auth/token [post]
func TokenHandler(op *Operator, issuer *Issuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := slog.With(slog.String("request_id", requestid.FromContext(r.Context())))

		finish := func(result string) {
			RecordAuthRequest(result)
			RecordAuthDuration(time.Since(start).Seconds())
		}

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("authentication failed", slog.String("reason", "invalid_request"))
			finish("failure")
			respond.Error(w, http.StatusBadRequest, errors.New("invalid request body"))
			return
		}

		if !op.Authenticate(req.Username, req.Password) {
			logger.Warn("authentication failed", slog.String("reason", "invalid_credentials"))
			finish("failure")
			respond.Error(w, http.StatusUnauthorized, errors.New("invalid credentials"))
			return
		}

		signed, exp, err := issuer.Issue(op.User())
		if err != nil {
			logger.Error("token generation failed", slog.Any("error", err))
			finish("failure")
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}

		logger.Info("authentication successful",
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		finish("success")
		respond.JSON(w, http.StatusOK, tokenResponse{Token: signed, ExpiresAt: exp.UTC()})
	}
}
