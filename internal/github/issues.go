package github

import (
	"context"
	"fmt"
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/gh-docs-index/internal/docs"
	"github.com/custodia-labs/gh-docs-index/internal/logger"
)

// FetchIssues retrieves all issues from a repository updated since the
// given watermark, normalized into documents in API order. Pull requests
// are skipped: they show up in the issues endpoint too. A zero since
// fetches everything; maxItems <= 0 means no cap.
func FetchIssues(
	ctx context.Context, client *Client, owner, repo string, since time.Time, maxItems int,
) ([]docs.Document, error) {
	documents := make([]docs.Document, 0)

	opts := &gh.IssueListByRepoOptions{
		State:     "all",
		Sort:      "updated",
		Direction: "desc",
		ListOptions: gh.ListOptions{
			PerPage: PageSize,
		},
	}
	if !since.IsZero() {
		opts.Since = since
	}

	for {
		select {
		case <-ctx.Done():
			return documents, ctx.Err()
		default:
		}

		issues, resp, err := client.listIssuesPage(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("list issues: %w", err)
		}

		for _, issue := range issues {
			if issue.IsPullRequest() {
				continue
			}
			documents = append(documents, issueDocument(issue))
			if maxItems > 0 && len(documents) >= maxItems {
				return documents, nil
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opts.ListOptions.Page = resp.NextPage
		logger.Debug("issues: fetching page %d", resp.NextPage)
	}

	return documents, nil
}

// issueDocument normalizes one issue into a document record.
func issueDocument(issue *gh.Issue) docs.Document {
	labels := make([]string, len(issue.Labels))
	for i, l := range issue.Labels {
		labels[i] = l.GetName()
	}

	return docs.Document{
		ID:        fmt.Sprintf("I%d", issue.GetID()),
		Type:      docs.TypeIssue,
		Number:    issue.GetNumber(),
		Title:     issue.GetTitle(),
		URL:       issue.GetHTMLURL(),
		Labels:    labels,
		UpdatedAt: issue.GetUpdatedAt().Time,
		Excerpt:   docs.Excerpt(issue.GetBody(), docs.ExcerptLength),
	}
}
