package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
)

type recorded struct {
	Method string
	Path   string
	Body   string
}

// fakeES answers like an Elasticsearch node and records every request.
type fakeES struct {
	mu       sync.Mutex
	requests []recorded
	status   int
	body     string
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recorded{Method: r.Method, Path: r.URL.Path, Body: string(b)})
	status, body := f.status, f.body
	f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func newTestIndex(t *testing.T, f *fakeES) *PostIndex {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	es, err := helpers.NewESClient([]string{srv.URL}, "", "")
	require.NoError(t, err)
	return NewPostIndex(es, "posts")
}

func TestIndexPost(t *testing.T) {
	f := &fakeES{body: `{"result":"created"}`, status: http.StatusCreated}
	idx := newTestIndex(t, f)

	err := idx.IndexPost(context.Background(), entity.Post{
		ID: 9, Title: "Hello", Body: "Hello world body", UserID: 3,
		CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Author:    entity.Author{ID: 3, Username: "jane"},
	})
	require.NoError(t, err)

	require.Len(t, f.requests, 1)
	assert.Equal(t, http.MethodPut, f.requests[0].Method)
	assert.Equal(t, "/posts/_doc/9", f.requests[0].Path)
	var doc postDoc
	require.NoError(t, json.Unmarshal([]byte(f.requests[0].Body), &doc))
	assert.Equal(t, "jane", doc.Username)
	assert.Equal(t, int64(3), doc.UserID)
}

func TestRemovePostToleratesMissing(t *testing.T) {
	f := &fakeES{status: http.StatusNotFound, body: `{"result":"not_found"}`}
	idx := newTestIndex(t, f)

	assert.NoError(t, idx.RemovePost(context.Background(), 9))
	assert.Equal(t, http.MethodDelete, f.requests[0].Method)

	f.status = http.StatusInternalServerError
	assert.Error(t, idx.RemovePost(context.Background(), 9))
}

func TestSearchPostIDs(t *testing.T) {
	f := &fakeES{body: `{"hits":{"hits":[{"_id":"4"},{"_id":"junk"},{"_id":"2"}]}}`}
	idx := newTestIndex(t, f)

	ids, err := idx.SearchPostIDs(context.Background(), "garden", 5)
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 2}, ids)

	req := f.requests[0]
	assert.True(t, strings.HasSuffix(req.Path, "/posts/_search"))
	assert.Contains(t, req.Body, `"multi_match"`)
	assert.Contains(t, req.Body, `"size":5`)
}

func TestEnsureIndexSkipsExisting(t *testing.T) {
	f := &fakeES{}
	idx := newTestIndex(t, f)

	require.NoError(t, idx.EnsureIndex(context.Background()))
	require.Len(t, f.requests, 1)
	assert.Equal(t, http.MethodHead, f.requests[0].Method)
}
