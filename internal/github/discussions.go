package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/gh-docs-index/internal/docs"
	"github.com/custodia-labs/gh-docs-index/internal/logger"
)

// discussionsQuery pages through a repository's discussions newest-first,
// so an early stop at the since watermark skips unchanged history.
const discussionsQuery = `
query($owner:String!, $name:String!, $cursor:String) {
  repository(owner:$owner, name:$name){
    discussions(first:100, after:$cursor, orderBy:{field:UPDATED_AT, direction:DESC}) {
      pageInfo { hasNextPage endCursor }
      nodes { id number title url updatedAt bodyText }
    }
  }
}`

// discussionNode is one discussion in the GraphQL response.
type discussionNode struct {
	ID        string    `json:"id"`
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	UpdatedAt time.Time `json:"updatedAt"`
	BodyText  string    `json:"bodyText"`
}

// discussionsResponse is the GraphQL response envelope for discussionsQuery.
type discussionsResponse struct {
	Data struct {
		Repository struct {
			Discussions struct {
				PageInfo struct {
					HasNextPage bool   `json:"hasNextPage"`
					EndCursor   string `json:"endCursor"`
				} `json:"pageInfo"`
				Nodes []discussionNode `json:"nodes"`
			} `json:"discussions"`
		} `json:"repository"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// FetchDiscussions retrieves all discussions updated since the watermark,
// normalized into documents. Discussions are fetched newest-first via
// GraphQL; fetching stops at the first node older than since. A zero
// since fetches everything; maxItems <= 0 means no cap.
func FetchDiscussions(
	ctx context.Context, client *Client, owner, repo string, since time.Time, maxItems int,
) ([]docs.Document, error) {
	documents := make([]docs.Document, 0)

	var cursor *string
	for {
		variables := map[string]any{
			"owner":  owner,
			"name":   repo,
			"cursor": cursor,
		}

		var result discussionsResponse
		if err := client.graphql(ctx, discussionsQuery, variables, &result); err != nil {
			return nil, fmt.Errorf("list discussions: %w", err)
		}
		if len(result.Errors) > 0 {
			messages := make([]string, len(result.Errors))
			for i, e := range result.Errors {
				messages[i] = e.Message
			}
			return nil, &GraphQLError{Messages: messages}
		}

		discussions := result.Data.Repository.Discussions
		for _, node := range discussions.Nodes {
			if !since.IsZero() && node.UpdatedAt.Before(since) {
				return documents, nil
			}
			documents = append(documents, discussionDocument(node))
			if maxItems > 0 && len(documents) >= maxItems {
				return documents, nil
			}
		}

		if !discussions.PageInfo.HasNextPage {
			break
		}
		next := discussions.PageInfo.EndCursor
		cursor = &next
		logger.Debug("discussions: fetching after cursor %s", next)
	}

	return documents, nil
}

// discussionDocument normalizes one discussion node into a document record.
// Discussions carry no labels; the field stays an empty set.
func discussionDocument(node discussionNode) docs.Document {
	return docs.Document{
		ID:        "D" + node.ID,
		Type:      docs.TypeDiscussion,
		Number:    node.Number,
		Title:     node.Title,
		URL:       node.URL,
		Labels:    []string{},
		UpdatedAt: node.UpdatedAt,
		Excerpt:   docs.Excerpt(node.BodyText, docs.ExcerptLength),
	}
}

// graphql posts a GraphQL query and decodes the response into out.
// Transient failures (429, 5xx) are retried with exponential backoff up
// to MaxRetries attempts.
func (c *Client) graphql(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	delay := RetryDelay
	for attempt := 0; attempt < MaxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/vnd.github+json")

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("post graphql: %w", err)
		}

		if isTransient(resp.StatusCode) {
			resp.Body.Close()
			logger.Warn("graphql: status %d, retrying in %s", resp.StatusCode, delay)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
			continue
		}

		if rlErr := c.rateLimiter.CheckRateLimit(resp); rlErr != nil {
			resp.Body.Close()
			return rlErr
		}
		if resp.StatusCode != http.StatusOK {
			data, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return &APIError{
				StatusCode: resp.StatusCode,
				Message:    string(data),
				URL:        c.graphqlURL,
			}
		}

		decodeErr := json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if decodeErr != nil {
			return fmt.Errorf("decode response: %w", decodeErr)
		}
		return nil
	}

	return fmt.Errorf("graphql: giving up after %d attempts", MaxRetries)
}

// isTransient reports whether a status code is worth retrying.
func isTransient(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
