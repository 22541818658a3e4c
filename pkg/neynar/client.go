package neynar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"threadsum/internal/model"
	"time"
)

const defaultBaseURL = "https://api.neynar.com"

// ErrMalformedResponse is returned when the thread endpoint answered but the
// body does not carry a cast collection.
var ErrMalformedResponse = errors.New("malformed thread response")

type ThreadFetcher interface {
	FetchThread(ctx context.Context, threadHash string) ([]model.Cast, error)
}

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) FetchThread(ctx context.Context, threadHash string) ([]model.Cast, error) {
	endpoint := fmt.Sprintf("%s/v1/farcaster/all-casts-in-thread?threadHash=%s", c.baseURL, url.QueryEscape(threadHash))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("neynar request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api_key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("neynar fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("neynar read: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("neynar fetch: status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	return decodeThread(body)
}

type threadResponse struct {
	Result *struct {
		Casts *[]castPayload `json:"casts"`
	} `json:"result"`
}

type castPayload struct {
	Hash       string  `json:"hash"`
	ParentHash *string `json:"parentHash"`
	Author     struct {
		Username string `json:"username"`
	} `json:"author"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

func decodeThread(body []byte) ([]model.Cast, error) {
	var raw threadResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if raw.Result == nil || raw.Result.Casts == nil {
		return nil, fmt.Errorf("%w: missing result.casts", ErrMalformedResponse)
	}

	casts := make([]model.Cast, 0, len(*raw.Result.Casts))
	for _, item := range *raw.Result.Casts {
		timestamp, err := time.Parse(time.RFC3339, item.Timestamp)
		if err != nil {
			timestamp = time.Time{}
		}

		var parentHash string
		if item.ParentHash != nil {
			parentHash = *item.ParentHash
		}

		casts = append(casts, model.Cast{
			Hash:           item.Hash,
			ParentHash:     parentHash,
			AuthorUsername: item.Author.Username,
			Text:           item.Text,
			Timestamp:      timestamp,
		})
	}

	return casts, nil
}
