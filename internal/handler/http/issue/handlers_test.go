package issue_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdiary/internal/handler/http/issue"
	"newsdiary/internal/infra/adapter/persistence/jsondoc"
	"newsdiary/internal/infra/docstore"
	"newsdiary/internal/usecase/calendar"
)

func newMux(t *testing.T) *http.ServeMux {
	t.Helper()
	store, err := docstore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	mux := http.NewServeMux()
	issue.Register(mux, calendar.NewService(jsondoc.NewIssueRepo(store)))
	return mux
}

func do(t *testing.T, mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestIssueLifecycle(t *testing.T) {
	mux := newMux(t)

	rr := do(t, mux, http.MethodPost, "/issues", `{"date":"2024-05-01","title":"총선","content":"개표"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decode[issue.DTO](t, rr)
	assert.Equal(t, "2024-05-01", created.Date)
	assert.NotEmpty(t, created.ID)

	got := decode[issue.DTO](t, do(t, mux, http.MethodGet, "/issues/"+created.ID, ""))
	assert.Equal(t, created, got)

	rr = do(t, mux, http.MethodPut, "/issues/"+created.ID, `{"content":"결과 발표"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	updated := decode[issue.DTO](t, rr)
	assert.Equal(t, "총선", updated.Title)
	assert.Equal(t, "결과 발표", updated.Content)

	assert.Equal(t, http.StatusNoContent, do(t, mux, http.MethodDelete, "/issues/"+created.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, mux, http.MethodGet, "/issues/"+created.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, mux, http.MethodDelete, "/issues/"+created.ID, "").Code)
}

func TestListByDateAndDates(t *testing.T) {
	mux := newMux(t)
	for _, body := range []string{
		`{"date":"2024-05-01","title":"a"}`,
		`{"date":"2024-05-03","title":"b"}`,
		`{"date":"2024-05-01","title":"c"}`,
	} {
		require.Equal(t, http.StatusCreated, do(t, mux, http.MethodPost, "/issues", body).Code)
	}

	all := decode[[]issue.DTO](t, do(t, mux, http.MethodGet, "/issues", ""))
	assert.Len(t, all, 3)

	day := decode[[]issue.DTO](t, do(t, mux, http.MethodGet, "/issues?date=2024-05-01", ""))
	require.Len(t, day, 2)
	assert.Equal(t, "a", day[0].Title)
	assert.Equal(t, "c", day[1].Title)

	none := do(t, mux, http.MethodGet, "/issues?date=2024-06-01", "")
	require.Equal(t, http.StatusOK, none.Code)
	assert.JSONEq(t, `[]`, none.Body.String())

	dates := decode[[]string](t, do(t, mux, http.MethodGet, "/issues/dates", ""))
	assert.Equal(t, []string{"2024-05-03", "2024-05-01"}, dates)
}

func TestValidationErrors(t *testing.T) {
	mux := newMux(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{"bad date", http.MethodPost, "/issues", `{"date":"05/01/2024","title":"a"}`},
		{"missing title", http.MethodPost, "/issues", `{"date":"2024-05-01"}`},
		{"malformed body", http.MethodPost, "/issues", `{`},
		{"bad list date", http.MethodGet, "/issues?date=yesterday", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, mux, tt.method, tt.target, tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
		})
	}

	created := decode[issue.DTO](t, do(t, mux, http.MethodPost, "/issues", `{"date":"2024-05-01","title":"a"}`))
	rr := do(t, mux, http.MethodPut, "/issues/"+created.ID, `{"title":""}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
