package collect_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdiary/internal/domain/entity"
	"newsdiary/internal/handler/http/collect"
	"newsdiary/internal/infra/docstore"
	"newsdiary/internal/usecase/fetch"
)

/* ───────── 스텁 ───────── */

type stubCollector struct {
	mu      sync.Mutex
	got     [][]entity.Category
	err     error
	started chan struct{}
	block   chan struct{}
}

func (s *stubCollector) Collect(ctx context.Context, cats []entity.Category) (map[entity.Category][]entity.Article, *fetch.CollectResult, error) {
	s.mu.Lock()
	s.got = append(s.got, cats)
	s.mu.Unlock()

	if s.started != nil {
		close(s.started)
	}
	if s.block != nil {
		<-s.block
	}
	if s.err != nil {
		return nil, &fetch.CollectResult{}, s.err
	}
	return map[entity.Category][]entity.Article{
			entity.CategoryPolitics: {{ID: "a"}, {ID: "b"}},
			entity.CategoryWorld:    {},
		}, &fetch.CollectResult{
			RunID:            "run-1",
			Collected:        2,
			Added:            1,
			Duplicates:       1,
			Total:            10,
			FailedCategories: []entity.Category{entity.CategoryWorld},
			Duration:         1500 * time.Millisecond,
		}, nil
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/collect", strings.NewReader(body)))
	return rr
}

/* ───────── 테스트 ───────── */

func TestHandler_Success(t *testing.T) {
	stub := &stubCollector{}
	h := &collect.Handler{Svc: stub}

	rr := post(h, `{"categories":["정치","세계"]}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var got collect.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	want := collect.Response{
		RunID:            "run-1",
		Collected:        2,
		Added:            1,
		Duplicates:       1,
		Total:            10,
		FailedCategories: []string{"세계"},
		PerCategory:      map[string]int{"정치": 2, "세계": 0},
		DurationMS:       1500,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, [][]entity.Category{{entity.CategoryPolitics, entity.CategoryWorld}}, stub.got)
}

func TestHandler_EmptyBodyCollectsAll(t *testing.T) {
	stub := &stubCollector{}
	rr := post(&collect.Handler{Svc: stub}, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Len(t, stub.got, 1)
	assert.Empty(t, stub.got[0])
}

func TestHandler_BadRequests(t *testing.T) {
	for _, body := range []string{`{"categories":["스포츠"]}`, `{`} {
		stub := &stubCollector{}
		rr := post(&collect.Handler{Svc: stub}, body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
		assert.Empty(t, stub.got)
	}
}

func TestHandler_StorageFailure(t *testing.T) {
	stub := &stubCollector{err: docstore.ErrCorrupt}
	rr := post(&collect.Handler{Svc: stub}, "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "stored data is corrupt")

	stub = &stubCollector{err: errors.New("disk full at /var/lib/secret")}
	rr = post(&collect.Handler{Svc: stub}, "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rr.Body.String())
}

func TestHandler_RejectsConcurrentRun(t *testing.T) {
	stub := &stubCollector{started: make(chan struct{}), block: make(chan struct{})}
	h := &collect.Handler{Svc: stub}

	done := make(chan *httptest.ResponseRecorder)
	go func() { done <- post(h, "") }()
	<-stub.started

	rr := post(h, "")
	assert.Equal(t, http.StatusConflict, rr.Code)

	close(stub.block)
	assert.Equal(t, http.StatusOK, (<-done).Code)
}
