package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"threadsum/internal/model"
	"threadsum/internal/thread"
	"threadsum/pkg/llm"
	"threadsum/pkg/neynar"

	"golang.org/x/sync/singleflight"
)

const NoSummaryPlaceholder = "No summary generated"

type SummaryStore interface {
	GetSummary(ctx context.Context, hash string, length model.SummaryLength) (*model.ThreadSummary, error)
	SaveSummary(ctx context.Context, hash string, length model.SummaryLength, summary string) error
	UpdateSummary(ctx context.Context, hash string, length model.SummaryLength, summary string) (bool, error)
}

// KeyLocker serializes work on one cache key across processes.
type KeyLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

type PromptFunc func(chains []string, length model.SummaryLength) string

type SummaryRequest struct {
	Hash    string
	Length  string
	Refresh bool
}

type ThreadSummaryService struct {
	store   SummaryStore
	fetcher neynar.ThreadFetcher
	llm     llm.Completer
	prompt  PromptFunc
	locker  KeyLocker
	flights singleflight.Group
}

type Option func(*ThreadSummaryService)

func WithLocker(locker KeyLocker) Option {
	return func(s *ThreadSummaryService) { s.locker = locker }
}

func WithPrompt(prompt PromptFunc) Option {
	return func(s *ThreadSummaryService) { s.prompt = prompt }
}

func NewThreadSummaryService(store SummaryStore, fetcher neynar.ThreadFetcher, completer llm.Completer, opts ...Option) *ThreadSummaryService {
	s := &ThreadSummaryService{
		store:   store,
		fetcher: fetcher,
		llm:     completer,
		prompt:  llm.ThreadSummaryPrompt,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize returns the summary for a thread, serving the cached record
// unless req.Refresh is set. Errors wrap one of the package sentinels.
func (s *ThreadSummaryService) Summarize(ctx context.Context, req SummaryRequest) (string, error) {
	if req.Hash == "" {
		return "", fmt.Errorf("%w: thread hash is required", ErrInvalidRequest)
	}
	length := model.ParseSummaryLength(req.Length)

	existing, err := s.lookup(ctx, req.Hash, length)
	if err != nil {
		return "", err
	}
	if existing != nil && !req.Refresh {
		slog.Debug("serving cached summary", "thread_hash", req.Hash, "length", length)
		return existing.Summary, nil
	}

	key := req.Hash + ":" + string(length) + ":" + strconv.FormatBool(req.Refresh)
	// Joined callers share the first caller's work, so it must not be cut
	// short when that caller goes away.
	flightCtx := context.WithoutCancel(ctx)
	result, err, shared := s.flights.Do(key, func() (interface{}, error) {
		return s.refresh(flightCtx, req.Hash, length, req.Refresh)
	})
	if err != nil {
		return "", err
	}
	if shared {
		slog.Debug("joined in-flight summarization", "thread_hash", req.Hash, "length", length)
	}

	return result.(string), nil
}

func (s *ThreadSummaryService) refresh(ctx context.Context, hash string, length model.SummaryLength, force bool) (string, error) {
	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, hash+":"+string(length))
		if err != nil {
			return "", fmt.Errorf("%w: lock: %v", ErrStorage, err)
		}
		defer unlock()
	}

	// A flight that finished after our first lookup, or another process
	// holding the lock before us, may have written the record already.
	current, err := s.lookup(ctx, hash, length)
	if err != nil {
		return "", err
	}
	if current != nil && !force {
		return current.Summary, nil
	}
	exists := current != nil

	summary, err := s.compute(ctx, hash, length)
	if err != nil {
		return "", err
	}

	if err := s.persist(ctx, hash, length, summary, exists); err != nil {
		return "", err
	}

	return summary, nil
}

func (s *ThreadSummaryService) compute(ctx context.Context, hash string, length model.SummaryLength) (string, error) {
	casts, err := s.fetcher.FetchThread(ctx, hash)
	if err != nil {
		if errors.Is(err, neynar.ErrMalformedResponse) {
			return "", fmt.Errorf("%w: %v", ErrUpstreamData, err)
		}
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	chains := thread.FormatThreads(casts)
	slog.Info("summarizing thread", "thread_hash", hash, "length", length, "casts", len(casts), "chains", len(chains), "model", s.llm.ModelName())

	summary, err := s.llm.Complete(ctx, s.prompt(chains, length))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSummarization, err)
	}
	if summary == "" {
		slog.Warn("completion returned no text, using placeholder", "thread_hash", hash, "length", length)
		summary = NoSummaryPlaceholder
	}

	return summary, nil
}

func (s *ThreadSummaryService) persist(ctx context.Context, hash string, length model.SummaryLength, summary string, exists bool) error {
	if !exists {
		if err := s.store.SaveSummary(ctx, hash, length, summary); err != nil {
			return fmt.Errorf("%w: insert: %v", ErrStorage, err)
		}
		return nil
	}

	updated, err := s.store.UpdateSummary(ctx, hash, length, summary)
	if err != nil {
		return fmt.Errorf("%w: update: %v", ErrStorage, err)
	}
	if !updated {
		slog.Warn("summary update matched no row", "thread_hash", hash, "length", length)
	}
	return nil
}

func (s *ThreadSummaryService) lookup(ctx context.Context, hash string, length model.SummaryLength) (*model.ThreadSummary, error) {
	existing, err := s.store.GetSummary(ctx, hash, length)
	if err != nil {
		return nil, fmt.Errorf("%w: lookup: %v", ErrStorage, err)
	}
	return existing, nil
}
