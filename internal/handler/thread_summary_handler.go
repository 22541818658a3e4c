package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"threadsum/internal/service"

	"github.com/gin-gonic/gin"
)

type ThreadSummarizer interface {
	Summarize(ctx context.Context, req service.SummaryRequest) (string, error)
}

type ThreadSummaryHandler struct {
	service ThreadSummarizer
}

func NewThreadSummaryHandler(service ThreadSummarizer) *ThreadSummaryHandler {
	return &ThreadSummaryHandler{service: service}
}

// GetThreadSummary serves GET /v1/thread_summary?hash=&length=&refresh=.
func (h *ThreadSummaryHandler) GetThreadSummary(c *gin.Context) {
	req := service.SummaryRequest{
		Hash:    c.Query("hash"),
		Length:  c.Query("length"),
		Refresh: c.Query("refresh") == "true",
	}

	if req.Hash == "" {
		c.String(http.StatusBadRequest, "Thread hash is required")
		return
	}

	summary, err := h.service.Summarize(c.Request.Context(), req)
	if err != nil {
		slog.Error("error summarizing thread", "thread_hash", req.Hash, "length", req.Length, "refresh", req.Refresh, "error", err)
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			c.String(http.StatusBadRequest, "Thread hash is required")
		case errors.Is(err, service.ErrUpstreamData):
			c.String(http.StatusBadRequest, "Invalid thread hash or bad upstream response")
		default:
			c.String(http.StatusInternalServerError, "Error processing request")
		}
		return
	}

	c.JSON(http.StatusOK, ThreadSummaryResponse{Summary: summary})
}
