// Package codeforces talks to the two Codeforces API methods the tracker
// needs: the problemset catalog and a user's submission history.
package codeforces

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cm_sheet/internal/common"
	"cm_sheet/internal/domain/judge"
	"cm_sheet/internal/domain/model"
)

const DefaultBaseURL = "https://codeforces.com/api"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout bounds every request, including reading the body.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the wrapper every API method responds with.
type envelope struct {
	Status  string          `json:"status"`
	Comment string          `json:"comment,omitempty"`
	Result  json.RawMessage `json:"result"`
}

// ProblemsetProblems fetches the whole problemset catalog.
func (c *Client) ProblemsetProblems(ctx context.Context) ([]model.CatalogEntry, error) {
	var result struct {
		Problems []model.CatalogEntry `json:"problems"`
	}
	if err := c.call(ctx, "problemset.problems", nil, &result); err != nil {
		return nil, err
	}
	return result.Problems, nil
}

// UserStatus fetches the full submission history of handle.
func (c *Client) UserStatus(ctx context.Context, handle string) ([]model.JudgeSubmission, error) {
	var subs []model.JudgeSubmission
	if err := c.call(ctx, "user.status", url.Values{"handle": {handle}}, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// AcceptedProblemKeys returns the distinct problem keys handle has an
// accepted submission for, in first-seen order.
func (c *Client) AcceptedProblemKeys(ctx context.Context, handle string) ([]string, error) {
	subs, err := c.UserStatus(ctx, handle)
	if err != nil {
		return nil, err
	}
	return AcceptedKeys(subs), nil
}

// AcceptedKeys keeps the submissions with an OK verdict and derives their keys.
func AcceptedKeys(subs []model.JudgeSubmission) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, s := range subs {
		if s.Verdict != model.VerdictAccepted {
			continue
		}
		key := judge.Key(s.Problem.ContestID, s.Problem.Index)
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys
}

func (c *Client) call(ctx context.Context, method string, params url.Values, out any) error {
	endpoint := c.baseURL + "/" + method
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("codeforces %s: failed to create request: %w", method, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("codeforces %s: %v: %w", method, err, common.ErrServiceUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("codeforces %s: failed to read response: %v: %w", method, err, common.ErrServiceUnavailable)
	}

	// failed calls still answer with the envelope, usually with a 400
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("codeforces %s: unexpected response (HTTP %d): %w", method, resp.StatusCode, common.ErrServiceUnavailable)
	}
	if env.Status != "OK" {
		comment := env.Comment
		if comment == "" {
			comment = "status " + env.Status
		}
		return fmt.Errorf("codeforces %s: %s: %w", method, comment, common.ErrServiceUnavailable)
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("codeforces %s: failed to decode result: %w", method, err)
	}
	return nil
}
