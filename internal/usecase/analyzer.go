// Package usecase contains the business logic of the application.
package usecase

import (
	"math"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/naka-gawa/repo-health/internal/domain"
)

// Thresholds for the health labels. These are fixed constants, not tunables.
const (
	// inactiveDays is the number of whole days without a commit after which
	// a repository counts as dead. Strictly fewer days keeps it ALIVE.
	inactiveDays = 30

	// dominanceLimit is the lead author's commit share (percent) above which
	// the bus factor risk flips to HIGH. Exactly 50 is still LOW.
	dominanceLimit = 50.0

	// weekendLimit is the weekend-work percentage above which the burnout
	// label flips to High.
	weekendLimit = 30.0
)

// Analyzer derives a health Report from fetched commit and issue records.
// It holds no state between runs; the same inputs always yield the same
// Report for a fixed clock.
type Analyzer struct {
	logger *log.Logger
	now    func() time.Time
}

// NewAnalyzer creates an Analyzer using the real clock.
func NewAnalyzer(logger *log.Logger) *Analyzer {
	return &Analyzer{logger: logger, now: time.Now}
}

// NewAnalyzerWithClock creates an Analyzer with an injected clock, which keeps
// the days-inactive derivation deterministic under test.
func NewAnalyzerWithClock(logger *log.Logger, now func() time.Time) *Analyzer {
	return &Analyzer{logger: logger, now: now}
}

// Analyze computes every health metric over the fetched records.
//
// Precondition: commits is non-empty. The commit fetcher rejects empty
// repositories upstream, so the percentage derivations here divide freely.
//
// If compareAuthor is non-empty and absent from the history, the returned
// Report carries a not-found comparison and err is domain.ErrAuthorNotFound;
// the rest of the Report is still fully populated.
func (a *Analyzer) Analyze(owner, repo string, commits []domain.Commit, issues domain.IssueStats, compareAuthor string) (*domain.Report, error) {
	a.logger.Debug("analyzing history", "commits", len(commits), "issues", issues.Count)

	report := &domain.Report{
		Owner:        owner,
		Repo:         repo,
		TotalCommits: len(commits),
		AvgIssueDays: issues.MeanHours / 24,
		IssueCount:   issues.Count,
	}

	// The host is expected to return commits newest first, but that ordering
	// is not part of its contract. Scan for the maximum timestamp instead of
	// trusting index zero.
	last := commits[0].Timestamp
	for _, c := range commits[1:] {
		if c.Timestamp.After(last) {
			last = c.Timestamp
		}
	}
	report.LastCommitAt = last
	report.DaysInactive = int(math.Floor(a.now().UTC().Sub(last).Hours() / 24))
	report.ActivityStatus = domain.StatusZombie
	if report.DaysInactive < inactiveDays {
		report.ActivityStatus = domain.StatusAlive
	}

	report.AuthorCounts = countAuthors(commits)
	report.LeadName = report.AuthorCounts[0].Name
	report.LeadCount = report.AuthorCounts[0].Commits
	report.LeadDominance = float64(report.LeadCount) / float64(report.TotalCommits) * 100
	report.BusFactorRisk = domain.RiskLow
	if report.LeadDominance > dominanceLimit {
		report.BusFactorRisk = domain.RiskHigh
	}

	weekend := 0
	for _, c := range commits {
		if domain.IsWeekend(c.Timestamp) {
			weekend++
		}
	}
	report.WeekendPercent = float64(weekend) / float64(report.TotalCommits) * 100
	report.BurnoutLabel = domain.BurnoutHealthy
	if report.WeekendPercent > weekendLimit {
		report.BurnoutLabel = domain.BurnoutHigh
	}

	report.Timing = bucketTiming(commits)

	if compareAuthor != "" {
		report.Comparison = compare(report, compareAuthor)
		if !report.Comparison.Found {
			return report, domain.ErrAuthorNotFound
		}
	}

	return report, nil
}

// countAuthors builds the commit frequency table, descending by count.
// Ties keep first-encountered order, so the sort must be stable.
func countAuthors(commits []domain.Commit) []domain.AuthorCount {
	index := make(map[string]int)
	var counts []domain.AuthorCount
	for _, c := range commits {
		if i, ok := index[c.Author]; ok {
			counts[i].Commits++
			continue
		}
		index[c.Author] = len(counts)
		counts = append(counts, domain.AuthorCount{Name: c.Author, Commits: 1})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Commits > counts[j].Commits
	})
	return counts
}

// bucketTiming produces the sparse (weekday, hour) commit counts backing the
// work-culture heatmap. Empty cells are omitted; the emitted order is weekday
// ascending, then hour ascending.
func bucketTiming(commits []domain.Commit) []domain.TimingBucket {
	grid := make(map[[2]int]int)
	for _, c := range commits {
		key := [2]int{domain.WeekdayIndex(c.Timestamp), c.Timestamp.Hour()}
		grid[key]++
	}

	var buckets []domain.TimingBucket
	for day := 0; day < 7; day++ {
		for hour := 0; hour < 24; hour++ {
			if n, ok := grid[[2]int{day, hour}]; ok {
				buckets = append(buckets, domain.TimingBucket{Weekday: day, Hour: hour, Count: n})
			}
		}
	}
	return buckets
}

// compare builds the team-battle block for the searched author against the
// lead. A gap of zero or less means the searched author is the lead.
func compare(report *domain.Report, name string) *domain.Comparison {
	for _, ac := range report.AuthorCounts {
		if ac.Name == name {
			gap := report.LeadCount - ac.Commits
			return &domain.Comparison{
				Name:    name,
				Commits: ac.Commits,
				Gap:     gap,
				IsLead:  gap <= 0,
				Found:   true,
			}
		}
	}
	return &domain.Comparison{Name: name}
}
