package service

import "errors"

var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrUpstreamData        = errors.New("invalid thread id or bad upstream response")
	ErrUpstreamUnavailable = errors.New("thread fetch failed")
	ErrSummarization       = errors.New("summarization failed")
	ErrStorage             = errors.New("summary storage failed")
)
