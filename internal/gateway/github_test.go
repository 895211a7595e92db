package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/google/go-github/v62/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/repo-health/internal/domain"
)

// setupTestGateway creates a GitHubGateway that communicates with a mock HTTP server.
func setupTestGateway(t *testing.T, handler http.Handler) (*GitHubGateway, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)

	restClient := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	restClient.BaseURL = baseURL

	gateway := &GitHubGateway{
		restClient: restClient,
		logger:     charmlog.New(io.Discard),
	}
	return gateway, server
}

func TestGitHubGateway_FetchCommits(t *testing.T) {
	testCases := []struct {
		name        string
		handlerFunc func(w http.ResponseWriter, r *http.Request)
		expected    []string // author order
		expectedErr error
	}{
		{
			name: "happy path - one page, null authors skipped, order preserved",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/repos/any-owner/any-repo/commits", r.URL.Path)
				assert.Equal(t, "100", r.URL.Query().Get("per_page"))
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `[
					{"commit": {"author": {"name": "alice", "date": "2024-06-12T09:00:00Z"}}},
					{"commit": {"author": null}},
					{"commit": {"author": {"name": "bob", "date": "2024-06-10T22:30:00Z"}}}
				]`)
			},
			expected: []string{"alice", "bob"},
		},
		{
			name: "error case - repository not found",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"message": "Not Found"}`)
			},
			expectedErr: &domain.FetchError{StatusCode: http.StatusNotFound},
		},
		{
			name: "error case - empty repository",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `[]`)
			},
			expectedErr: domain.ErrEmptyRepository,
		},
		{
			name: "error case - every entry lacks an author",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `[{"commit": {"author": null}}]`)
			},
			expectedErr: domain.ErrEmptyRepository,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway, server := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc))
			defer server.Close()

			commits, err := gateway.FetchCommits(context.Background(), "any-owner", "any-repo")

			if tc.expectedErr != nil {
				require.Error(t, err)
				var fe *domain.FetchError
				if wantFE, ok := tc.expectedErr.(*domain.FetchError); ok {
					require.ErrorAs(t, err, &fe)
					assert.Equal(t, wantFE.StatusCode, fe.StatusCode)
				} else {
					assert.ErrorIs(t, err, tc.expectedErr)
				}
				return
			}

			require.NoError(t, err)
			require.Len(t, commits, len(tc.expected))
			for i, author := range tc.expected {
				assert.Equal(t, author, commits[i].Author)
				assert.False(t, commits[i].Timestamp.IsZero())
			}
		})
	}
}

func TestGitHubGateway_FetchClosedIssues(t *testing.T) {
	testCases := []struct {
		name        string
		handlerFunc func(w http.ResponseWriter, r *http.Request)
		expected    domain.IssueStats
	}{
		{
			name: "happy path - mean over issues, pull requests excluded",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/repos/any-owner/any-repo/issues", r.URL.Path)
				assert.Equal(t, "closed", r.URL.Query().Get("state"))
				assert.Equal(t, "100", r.URL.Query().Get("per_page"))
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `[
					{"created_at": "2024-06-01T00:00:00Z", "closed_at": "2024-06-02T00:00:00Z"},
					{"created_at": "2024-06-01T00:00:00Z", "closed_at": "2024-06-03T00:00:00Z"},
					{"created_at": "2024-06-01T00:00:00Z", "closed_at": "2024-06-10T00:00:00Z",
					 "pull_request": {"url": "https://example.test/pr/1"}}
				]`)
			},
			// (24h + 48h) / 2, the PR entry does not count.
			expected: domain.IssueStats{MeanHours: 36, Count: 2},
		},
		{
			name: "failure collapses to a neutral zero result",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"message": "Internal Server Error"}`)
			},
			expected: domain.IssueStats{},
		},
		{
			name: "no qualifying issues",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `[]`)
			},
			expected: domain.IssueStats{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway, server := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc))
			defer server.Close()

			stats := gateway.FetchClosedIssues(context.Background(), "any-owner", "any-repo")

			assert.InDelta(t, tc.expected.MeanHours, stats.MeanHours, 0.001)
			assert.Equal(t, tc.expected.Count, stats.Count)
		})
	}
}

func TestNewGitHubGateway_RequiresToken(t *testing.T) {
	_, err := NewGitHubGateway("", charmlog.New(io.Discard))
	assert.ErrorIs(t, err, domain.ErrMissingToken)
}
