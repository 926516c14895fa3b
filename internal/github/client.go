// Package github fetches issue and discussion metadata for a single
// repository and normalizes it into document records for the indexer.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// MaxRetries is the maximum number of retries for transient errors.
	MaxRetries = 5

	// RetryDelay is the initial delay between retries, doubled per attempt.
	RetryDelay = time.Second

	// PageSize is the page size used for all paginated requests.
	PageSize = 100
)

// Client wraps the go-github client with rate limiting and the GraphQL
// endpoint used for discussions.
type Client struct {
	gh          *gh.Client
	http        *http.Client
	rateLimiter *RateLimiter
	graphqlURL  string
}

// NewClient creates a GitHub API client with a static access token.
// Works for both PAT and Actions-issued tokens.
func NewClient(ctx context.Context, token string) *Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout

	return &Client{
		gh:          gh.NewClient(tc),
		http:        tc,
		rateLimiter: NewRateLimiter(),
		graphqlURL:  "https://api.github.com/graphql",
	}
}

// NewClientWithHTTPClient creates a client with a custom http.Client and
// API base URLs. Useful for tests against an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, graphqlURL string) (*Client, error) {
	ghClient, err := gh.NewClient(httpClient).WithEnterpriseURLs(baseURL, baseURL)
	if err != nil {
		return nil, fmt.Errorf("github: set base URL: %w", err)
	}
	return &Client{
		gh:          ghClient,
		http:        httpClient,
		rateLimiter: NewRateLimiter(),
		graphqlURL:  graphqlURL,
	}, nil
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// listIssuesPage fetches one page of issues, respecting the rate limiter.
func (c *Client) listIssuesPage(
	ctx context.Context, owner, repo string, opts *gh.IssueListByRepoOptions,
) ([]*gh.Issue, *gh.Response, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, nil, fmt.Errorf("rate limit wait: %w", err)
	}

	issues, resp, err := c.gh.Issues.ListByRepo(ctx, owner, repo, opts)
	if err != nil {
		return nil, resp, c.wrapError(err, "list issues")
	}

	c.updateRateLimitFromResponse(resp)
	return issues, resp, nil
}

// updateRateLimitFromResponse updates the rate limiter from GitHub response headers.
func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		return &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
			URL:        ghErr.Response.Request.URL.String(),
		}
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   c.rateLimiter.ResetTime(),
			Remaining: c.rateLimiter.Remaining(),
			Limit:     c.rateLimiter.Limit(),
		}
	}

	return fmt.Errorf("%s: %w", operation, err)
}
