package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"threadsum/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

type fakeSummarizer struct {
	summary string
	err     error
	calls   []service.SummaryRequest
}

func (f *fakeSummarizer) Summarize(ctx context.Context, req service.SummaryRequest) (string, error) {
	f.calls = append(f.calls, req)
	return f.summary, f.err
}

func newTestSummaryRouter(svc ThreadSummarizer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewThreadSummaryHandler(svc)
	r.GET("/v1/thread_summary", h.GetThreadSummary)
	return r
}

func doGet(r *gin.Engine, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", url, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestGetThreadSummary_OK(t *testing.T) {
	svc := &fakeSummarizer{summary: "Builders compared notes."}
	r := newTestSummaryRouter(svc)

	w := doGet(r, "/v1/thread_summary?hash=0xabc&length=2&refresh=true")

	assert.Equal(t, http.StatusOK, w.Code)

	var res ThreadSummaryResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Builders compared notes.", res.Summary)

	assert.Equal(t, 1, len(svc.calls))
	assert.Equal(t, service.SummaryRequest{Hash: "0xabc", Length: "2", Refresh: true}, svc.calls[0])
}

func TestGetThreadSummary_Defaults(t *testing.T) {
	svc := &fakeSummarizer{summary: "ok"}
	r := newTestSummaryRouter(svc)

	w := doGet(r, "/v1/thread_summary?hash=0xabc&refresh=yes")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.SummaryRequest{Hash: "0xabc"}, svc.calls[0])
}

func TestGetThreadSummary_MissingHash(t *testing.T) {
	svc := &fakeSummarizer{}
	r := newTestSummaryRouter(svc)

	w := doGet(r, "/v1/thread_summary?length=1")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Thread hash is required", w.Body.String())
	assert.Equal(t, 0, len(svc.calls))
}

func TestGetThreadSummary_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "upstream data", err: fmt.Errorf("%w: missing casts", service.ErrUpstreamData), code: http.StatusBadRequest},
		{name: "invalid request", err: fmt.Errorf("%w: empty", service.ErrInvalidRequest), code: http.StatusBadRequest},
		{name: "upstream unavailable", err: fmt.Errorf("%w: timeout", service.ErrUpstreamUnavailable), code: http.StatusInternalServerError},
		{name: "summarization", err: fmt.Errorf("%w: 429", service.ErrSummarization), code: http.StatusInternalServerError},
		{name: "storage", err: fmt.Errorf("%w: db down", service.ErrStorage), code: http.StatusInternalServerError},
		{name: "unclassified", err: errors.New("boom"), code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestSummaryRouter(&fakeSummarizer{err: tt.err})

			w := doGet(r, "/v1/thread_summary?hash=0xabc")

			assert.Equal(t, tt.code, w.Code)
			assert.NotEqual(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		})
	}
}
