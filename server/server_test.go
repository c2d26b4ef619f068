package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonwraymond/docsearch/corpus"
	"github.com/jonwraymond/docsearch/index"
	"github.com/jonwraymond/docsearch/search"
)

type stubSearcher struct {
	hits  []search.Hit
	err   error
	input string
	panic bool
}

func (s *stubSearcher) Search(_ context.Context, input string) ([]search.Hit, error) {
	if s.panic {
		panic("boom")
	}
	s.input = input
	return s.hits, s.err
}

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	srv, err := New(opts)
	require.NoError(t, err)
	return srv
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestNew_RequiresSearcher(t *testing.T) {
	_, err := New(Options{})
	assert.ErrorIs(t, err, ErrNoSearcher)
}

func TestSearch_OK(t *testing.T) {
	stub := &stubSearcher{hits: []search.Hit{
		{URL: "/a", Version: "1.0"},
		{URL: "/b", Version: "2.0"},
	}}
	srv := newTestServer(t, Options{Searcher: stub})

	rec := get(t, srv, `/search?q=%22red+pepper%22`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, `"red pepper"`, stub.input)

	var body SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"/a", "/b"}, search.Hits(body.Hits).URLs())
}

func TestSearch_VersionFilter(t *testing.T) {
	stub := &stubSearcher{hits: []search.Hit{
		{URL: "/a", Version: "1.0"},
		{URL: "/b", Version: "2.0"},
	}}
	srv := newTestServer(t, Options{Searcher: stub})

	rec := get(t, srv, "/search?q=pepper&version=2.0")
	require.Equal(t, http.StatusOK, rec.Code)

	var body SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"/b"}, search.Hits(body.Hits).URLs())

	rec = get(t, srv, "/search?q=pepper&version=9.9")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"hits":[]}`, rec.Body.String())
}

func TestSearch_VersionFilterAfterHitCap(t *testing.T) {
	c := corpus.Corpus{
		"0": {Title: "A", Content: "pepper pepper pepper", URL: "/a", Version: "1.0"},
		"1": {Title: "B", Content: "a pepper with a few other words", URL: "/b", Version: "2.0"},
	}
	blob, err := index.NewSnapshot(c).Marshal()
	require.NoError(t, err)
	adapter, err := search.New(search.Options{Corpus: c, IndexBlob: blob, MaxHits: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = adapter.Close() })
	srv := newTestServer(t, Options{Searcher: adapter})

	rec := get(t, srv, "/search?q=pepper")
	require.Equal(t, http.StatusOK, rec.Code)
	var body SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"/a"}, search.Hits(body.Hits).URLs())

	rec = get(t, srv, "/search?q=pepper&version=2.0")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"hits":[]}`, rec.Body.String())
}

func TestSearch_EmptyQueryIsAllowed(t *testing.T) {
	srv := newTestServer(t, Options{Searcher: &stubSearcher{hits: []search.Hit{}}})

	rec := get(t, srv, "/search?q=")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"hits":[]}`, rec.Body.String())
}

func TestSearch_MissingQuery(t *testing.T) {
	srv := newTestServer(t, Options{Searcher: &stubSearcher{}})

	rec := get(t, srv, "/search")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, CodeBadRequest, body.Code)
}

func TestSearch_IndexUnavailable(t *testing.T) {
	stub := &stubSearcher{err: &search.IndexError{Op: search.OpExecute, Err: errors.New("disk gone")}}
	srv := newTestServer(t, Options{Searcher: stub})

	rec := get(t, srv, "/search?q=pepper")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, CodeSearchUnavailable, body.Code)
	assert.NotContains(t, body.Message, "disk gone")
}

func TestSearch_InternalError(t *testing.T) {
	srv := newTestServer(t, Options{Searcher: &stubSearcher{err: errors.New("unexpected")}})

	rec := get(t, srv, "/search?q=pepper")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"code":"internal_error","message":"internal error"}`, rec.Body.String())
}

func TestSearch_PanicRecovered(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	srv := newTestServer(t, Options{Searcher: &stubSearcher{panic: true}, Logger: zap.New(core)})

	rec := get(t, srv, "/search?q=pepper")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestWideEventLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	srv := newTestServer(t, Options{Searcher: &stubSearcher{hits: []search.Hit{}}, Logger: zap.New(core)})

	get(t, srv, "/search?q=pepper")

	entries := logs.FilterMessage("http_request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/search", fields["path"])
	assert.Equal(t, "pepper", fields["query"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, Options{Searcher: &stubSearcher{}, Fingerprint: "abc123"})

	rec := get(t, srv, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","fingerprint":"abc123"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, Options{Searcher: &stubSearcher{}})

	rec := get(t, srv, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMCPMount(t *testing.T) {
	mcpHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	srv := newTestServer(t, Options{Searcher: &stubSearcher{}, MCP: mcpHandler})

	rec := get(t, srv, "/mcp")
	assert.Equal(t, http.StatusAccepted, rec.Code)

	without := newTestServer(t, Options{Searcher: &stubSearcher{}})
	rec = get(t, without, "/mcp")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	srv := newTestServer(t, Options{Searcher: &stubSearcher{}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := srv.ListenAndServe(ctx, "127.0.0.1:0", Timeouts{Shutdown: time.Second})
	assert.NoError(t, err)
}
