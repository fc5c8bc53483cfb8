package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdiary/internal/domain/entity"
	hauth "newsdiary/internal/handler/http/auth"
	"newsdiary/internal/infra/adapter/persistence/jsondoc"
	"newsdiary/internal/infra/docstore"
	artUC "newsdiary/internal/usecase/article"
	"newsdiary/internal/usecase/calendar"
	diaryUC "newsdiary/internal/usecase/diary"
	"newsdiary/internal/usecase/fetch"
)

const (
	testUser     = "operator"
	testPassword = "Tr0ub4dor&3-horse"
	testSecret   = "kZ8v2Qm4Xr7Tn1Wp5Ys9Lc3Hd6Fb0Gj2"
)

type noopCollector struct{}

func (noopCollector) Collect(context.Context, []entity.Category) (map[entity.Category][]entity.Article, *fetch.CollectResult, error) {
	return map[entity.Category][]entity.Article{}, &fetch.CollectResult{RunID: "r"}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store, err := docstore.NewFileStore(t.TempDir())
	require.NoError(t, err)

	articles := jsondoc.NewArticleRepo(store)
	diaryRepo := jsondoc.NewDiaryRepo(store)
	require.NoError(t, articles.Save(context.Background(), []entity.Article{{
		ID:          "news_세계_1",
		Title:       "정상회담",
		URL:         "https://n.news.naver.com/9",
		Category:    entity.CategoryWorld,
		CollectedAt: entity.NewTimestamp(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)),
		Source:      "naver",
	}}))

	return NewRouter(RouterConfig{
		Logger:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
		Articles:  artUC.NewService(articles, diaryRepo),
		Diary:     diaryUC.NewService(diaryRepo),
		Calendar:  calendar.NewService(jsondoc.NewIssueRepo(store)),
		Collector: noopCollector{},
		Operator:  hauth.NewOperator(testUser, testPassword),
		Issuer:    hauth.NewIssuer(testSecret, time.Hour),
		Health: &HealthHandler{Version: "test", Checks: map[string]Check{
			"storage": func(ctx context.Context) error {
				_, err := articles.Load(ctx)
				return err
			},
		}},
		TokenLimiter: NewRateLimiter(time.Minute, 3),
	})
}

func call(h http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func login(t *testing.T, h http.Handler) string {
	t.Helper()
	rr := call(h, http.MethodPost, "/auth/token", "",
		`{"username":"`+testUser+`","password":"`+testPassword+`"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestRouter_PublicEndpoints(t *testing.T) {
	h := newTestRouter(t)

	for _, path := range []string{"/health", "/health/ready", "/metrics"} {
		rr := call(h, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.NotEmpty(t, rr.Header().Get("X-Request-ID"), path)
	}
}

func TestRouter_ProtectedRequireToken(t *testing.T) {
	h := newTestRouter(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/articles"},
		{http.MethodGet, "/diary"},
		{http.MethodGet, "/issues"},
		{http.MethodPost, "/collect"},
		{http.MethodDelete, "/articles/all"},
	} {
		rr := call(h, tc.method, tc.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code, tc.path)
		assert.NotEmpty(t, rr.Header().Get("WWW-Authenticate"), tc.path)
	}

	rr := call(h, http.MethodGet, "/articles", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRouter_AuthenticatedFlow(t *testing.T) {
	h := newTestRouter(t)
	token := login(t, h)

	rr := call(h, http.MethodGet, "/articles", token, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), "news_세계_1")

	rr = call(h, http.MethodPut, "/articles/news_세계_1/diary", token, `{"content":"메모"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = call(h, http.MethodPost, "/issues", token, `{"date":"2024-05-01","title":"회담"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = call(h, http.MethodPost, "/collect", token, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = call(h, http.MethodDelete, "/articles/all", token, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.JSONEq(t, `{"deleted_count":1}`, rr.Body.String())
}

func TestRouter_BadCredentialsAndRateLimit(t *testing.T) {
	h := newTestRouter(t)

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		rr := call(h, http.MethodPost, "/auth/token", "", `{"username":"operator","password":"wrong"}`)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{
		http.StatusUnauthorized,
		http.StatusUnauthorized,
		http.StatusUnauthorized,
		http.StatusTooManyRequests,
	}, codes)
}

func TestRouter_UnknownRouteAndMethod(t *testing.T) {
	h := newTestRouter(t)
	token := login(t, h)

	assert.Equal(t, http.StatusNotFound, call(h, http.MethodGet, "/nope", token, "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, call(h, http.MethodPatch, "/articles/all", token, "").Code)
}
