package http

import (
	"log/slog"
	"net/http"
	"time"

	harticle "newsdiary/internal/handler/http/article"
	hauth "newsdiary/internal/handler/http/auth"
	hcollect "newsdiary/internal/handler/http/collect"
	hdiary "newsdiary/internal/handler/http/diary"
	hissue "newsdiary/internal/handler/http/issue"
	"newsdiary/internal/handler/http/requestid"
	"newsdiary/internal/observability/tracing"
	artUC "newsdiary/internal/usecase/article"
	"newsdiary/internal/usecase/calendar"
	diaryUC "newsdiary/internal/usecase/diary"
)

// RouterConfig holds everything the API routes need.
type RouterConfig struct {
	Logger *slog.Logger

	Articles  *artUC.Service
	Diary     *diaryUC.Service
	Calendar  *calendar.Service
	Collector hcollect.Collector

	Operator *hauth.Operator
	Issuer   *hauth.Issuer

	Health *HealthHandler

	// CollectTimeout bounds POST /collect. Zero means the request context only.
	CollectTimeout time.Duration
	MaxBodyBytes   int64
	// TokenLimiter guards POST /auth/token. Nil disables the limit.
	TokenLimiter *RateLimiter
}

// NewRouter registers every route and wraps the mux with the middleware chain:
// request ID → tracing → recover → logging → metrics → body limit → authz.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	var token http.Handler = hauth.TokenHandler(cfg.Operator, cfg.Issuer)
	if cfg.TokenLimiter != nil {
		token = cfg.TokenLimiter.Limit(token)
	}
	mux.Handle("POST /auth/token", token)

	health := cfg.Health
	if health == nil {
		health = &HealthHandler{}
	}
	mux.Handle("GET /health", health)
	mux.Handle("GET /health/ready", health)
	mux.Handle("GET /metrics", MetricsHandler())

	harticle.Register(mux, cfg.Articles)
	hdiary.Register(mux, cfg.Diary, cfg.Articles)
	hissue.Register(mux, cfg.Calendar)
	hcollect.Register(mux, cfg.Collector, cfg.CollectTimeout)

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}

	var h http.Handler = mux
	h = hauth.Authz(cfg.Issuer)(h)
	h = LimitRequestBody(maxBody)(h)
	h = MetricsMiddleware(h)
	h = Logging(logger)(h)
	h = Recover(logger)(h)
	h = tracing.Middleware(h)
	h = requestid.Middleware(h)
	return h
}
