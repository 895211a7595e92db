// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST client.
package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v62/github"
	"github.com/montanaflynn/stats"
	"golang.org/x/oauth2"

	"github.com/naka-gawa/repo-health/internal/domain"
)

// perPage caps every fetch at one page of results. Deeper history is a known
// accepted limitation of the health check, not something to paginate around.
const perPage = 100

// Fetcher defines the behavior of a gateway for fetching repository history
// from GitHub. Commit data is mandatory; issue data is best effort.
type Fetcher interface {
	FetchCommits(ctx context.Context, owner, repo string) ([]domain.Commit, error)
	FetchClosedIssues(ctx context.Context, owner, repo string) domain.IssueStats
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient *github.Client
	logger     *log.Logger
}

// NewGitHubGateway creates a gateway authenticated with the given token.
// The token is injected here once; nothing reads ambient state mid-call.
func NewGitHubGateway(token string, logger *log.Logger) (*GitHubGateway, error) {
	if token == "" {
		return nil, domain.ErrMissingToken
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{Source: ts},
	}
	return &GitHubGateway{
		restClient: github.NewClient(httpClient),
		logger:     logger,
	}, nil
}

// FetchCommits issues a single GET /repos/{owner}/{repo}/commits?per_page=100
// and reduces each entry to an (author, timestamp) record, preserving the
// host's return order. Entries whose commit author is absent are skipped.
func (g *GitHubGateway) FetchCommits(ctx context.Context, owner, repo string) ([]domain.Commit, error) {
	g.logger.Debug("fetching commits", "owner", owner, "repo", repo)

	opts := &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	commits, resp, err := g.restClient.Repositories.ListCommits(ctx, owner, repo, opts)
	if err != nil {
		if resp != nil {
			return nil, &domain.FetchError{StatusCode: resp.StatusCode}
		}
		return nil, fmt.Errorf("failed to list commits: %w", err)
	}

	records := make([]domain.Commit, 0, len(commits))
	for _, rc := range commits {
		author := rc.GetCommit().GetAuthor()
		if author == nil {
			continue
		}
		records = append(records, domain.Commit{
			Author:    author.GetName(),
			Timestamp: author.GetDate().Time,
		})
	}
	if len(records) == 0 {
		return nil, domain.ErrEmptyRepository
	}

	g.logger.Debug("fetched commits", "count", len(records))
	return records, nil
}

// FetchClosedIssues issues a single
// GET /repos/{owner}/{repo}/issues?state=closed&per_page=100 and returns the
// mean resolution time in hours together with the number of issues analyzed.
// Pull requests are excluded. Unlike commits, issue data never fails the run:
// any error collapses to a zero result.
func (g *GitHubGateway) FetchClosedIssues(ctx context.Context, owner, repo string) domain.IssueStats {
	g.logger.Debug("fetching closed issues", "owner", owner, "repo", repo)

	opts := &github.IssueListByRepoOptions{
		State:       "closed",
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	issues, _, err := g.restClient.Issues.ListByRepo(ctx, owner, repo, opts)
	if err != nil {
		g.logger.Debug("issue fetch failed, continuing without issue data", "err", err)
		return domain.IssueStats{}
	}

	var hours []float64
	for _, issue := range issues {
		if issue.IsPullRequest() {
			continue
		}
		created := issue.GetCreatedAt().Time
		closed := issue.GetClosedAt().Time
		hours = append(hours, closed.Sub(created).Hours())
	}
	if len(hours) == 0 {
		return domain.IssueStats{}
	}

	mean, err := stats.Mean(hours)
	if err != nil {
		return domain.IssueStats{}
	}

	g.logger.Debug("fetched closed issues", "count", len(hours))
	return domain.IssueStats{MeanHours: mean, Count: len(hours)}
}
