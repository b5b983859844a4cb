package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/session"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	completer := suggest.NewCompleter(suggest.Options{MaxLimit: cfg.Server.MaxLimit})
	completer.Seed([]dictionary.Entry{
		{Word: "app", Frequency: 5},
		{Word: "apple", Frequency: 3},
		{Word: "apply", Frequency: 2},
		{Word: "application", Frequency: 1},
	})
	return NewServer(cfg, session.New(completer, session.Options{Limit: 5}), completer)
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func words(resp SuggestResponse) []string {
	out := make([]string, len(resp.Suggestions))
	for i, s := range resp.Suggestions {
		out[i] = s.Word
	}
	return out
}

func TestSuggest(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/suggest?prefix=app&limit=3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decode[SuggestResponse](t, rec)
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, []string{"app", "apple", "apply"}, words(resp))
	assert.Equal(t, 1, resp.Suggestions[0].Rank)
	assert.Equal(t, 5, resp.Suggestions[0].Frequency)

	rec = do(t, s, http.MethodGet, "/api/suggest?prefix=appl&rank=alphabetical", "")
	resp = decode[SuggestResponse](t, rec)
	assert.Equal(t, []string{"apple", "application", "apply"}, words(resp))

	rec = do(t, s, http.MethodGet, "/api/suggest?prefix=APPL&limit=1", "")
	resp = decode[SuggestResponse](t, rec)
	assert.Equal(t, []string{"APPLe"}, words(resp))

	rec = do(t, s, http.MethodGet, "/api/suggest?prefix=zzz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decode[SuggestResponse](t, rec)
	assert.Equal(t, 0, resp.Count)
	assert.NotNil(t, resp.Suggestions)
}

func TestSuggestBadRequests(t *testing.T) {
	s := newTestServer(t)

	for _, target := range []string{
		"/api/suggest",
		"/api/suggest?prefix=app&limit=x",
		"/api/suggest?prefix=app&limit=-2",
		"/api/suggest?prefix=" + strings.Repeat("a", 61),
	} {
		rec := do(t, s, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, http.StatusBadRequest, decode[ErrorResponse](t, rec).Status)
	}

	rec := do(t, s, http.MethodPost, "/api/suggest?prefix=app", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestWordLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/words/apply", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, WordResponse{Word: "apply", Frequency: 2}, decode[WordResponse](t, rec))

	rec = do(t, s, http.MethodPost, "/api/words/apply/accept", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decode[WordResponse](t, rec).Frequency)

	rec = do(t, s, http.MethodPost, "/api/words/nope/accept", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/words", `{"word":"Banana"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, WordResponse{Word: "banana", Frequency: 1}, decode[WordResponse](t, rec))

	rec = do(t, s, http.MethodPost, "/api/words", `{"word":"banana"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/words", `{"word":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/words", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/words/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRejectHidesWord(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/words/app/reject", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/suggest?prefix=app&limit=2", "")
	assert.Equal(t, []string{"apple", "apply"}, words(decode[SuggestResponse](t, rec)))

	rec = do(t, s, http.MethodGet, "/api/words/app", "")
	assert.Equal(t, 5, decode[WordResponse](t, rec).Frequency)
}

func TestRecentStatsActivity(t *testing.T) {
	s := newTestServer(t)

	do(t, s, http.MethodPost, "/api/words/apple/accept", "")
	do(t, s, http.MethodPost, "/api/words", `{"word":"banana"}`)
	do(t, s, http.MethodPost, "/api/words/app/reject", "")

	rec := do(t, s, http.MethodGet, "/api/recent?prefix=ap", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"apple"}, words(decode[SuggestResponse](t, rec)))

	rec = do(t, s, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decode[session.Snapshot](t, rec)
	assert.Equal(t, session.Counters{Accepted: 1, Rejected: 1, Added: 1}, snap.Counters)
	assert.Equal(t, 5, snap.Stats.TotalWords)
	assert.Len(t, snap.Activities, 3)

	rec = do(t, s, http.MethodGet, "/api/activity", "")
	feed := decode[[]session.Activity](t, rec)
	require.Len(t, feed, 3)
	assert.Equal(t, session.ActivityRejected, feed[0].Type)
	assert.Equal(t, "app", feed[0].Word)
	assert.Equal(t, session.ActivityAccepted, feed[2].Type)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"status": "ok"}, decode[map[string]string](t, rec))
}

func TestStartShutsDownOnCancel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.HTTP.Port = 0
	completer := suggest.NewCompleter(suggest.Options{})
	s := NewServer(cfg, session.New(completer, session.Options{}), completer)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
