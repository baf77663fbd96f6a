// Package wordsource talks to the word source HTTP API.
package wordsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"vocabquiz/internal/domain"

	"go.uber.org/zap"
)

const (
	getWordPath    = "/api/getWord/"
	postResultPath = "/api/postResult/"
)

// Client implements quiz.WordSource over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the API rooted at baseURL
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// FetchWords requests a batch of n word records
func (c *Client) FetchWords(ctx context.Context, n int) ([]domain.WordRecord, error) {
	query := url.Values{}
	query.Set("num_words", strconv.Itoa(n))

	resp, err := c.get(ctx, getWordPath, query)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var records []domain.WordRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode words: %w", err)
	}

	c.logger.Debug("Fetched words", zap.Int("requested", n), zap.Int("received", len(records)))
	return records, nil
}

// ReportResult sends the outcome of one round, the response body is ignored
func (c *Client) ReportResult(ctx context.Context, word string, correct bool) error {
	query := url.Values{}
	query.Set("word", word)
	query.Set("result", strconv.FormatBool(correct))

	resp, err := c.get(ctx, postResultPath, query)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	endpoint := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, &StatusError{Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	return resp, nil
}

// StatusError is returned for non-200 responses
type StatusError struct {
	Path string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request %s: unexpected status %d: %s", e.Path, e.Code, e.Body)
}
