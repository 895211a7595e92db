package domain

import (
	"errors"
	"fmt"
)

// ErrMissingToken means no access token was available at startup. Nothing can
// be fetched without one, so callers should halt before doing any work.
var ErrMissingToken = errors.New("no GitHub token configured: set GITHUB_TOKEN or the token field in the config file")

// ErrEmptyRepository means the commits endpoint answered with zero usable
// records. Every metric divides by the commit count, so the run is aborted.
var ErrEmptyRepository = errors.New("repository has no commits to analyze")

// ErrAuthorNotFound means the searched author does not appear in the fetched
// commit history. It only affects the comparison block, never the run.
var ErrAuthorNotFound = errors.New("author not found in recent commit history")

// FetchError is a non-success response from the commits endpoint. Commit data
// is mandatory, so it aborts the run carrying the upstream status code.
type FetchError struct {
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("commit fetch failed with status %d", e.StatusCode)
}
