// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// Commit is a single commit record reduced to what the health metrics need.
// Entries without an author on the host side are never materialized.
type Commit struct {
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
}

// AuthorCount is one row of the commit leaderboard.
type AuthorCount struct {
	Name    string `json:"name"`
	Commits int    `json:"commits"`
}

// IssueStats is the derived result of the closed-issue fetch. Issue data is
// best effort, so a zero value means "no data" rather than an error.
type IssueStats struct {
	MeanHours float64 `json:"mean_hours"`
	Count     int     `json:"count"`
}

// TimingBucket counts commits for one (weekday, hour) cell of the work-culture
// heatmap. Weekday is 0 for Monday through 6 for Sunday. Buckets with zero
// commits are never emitted.
type TimingBucket struct {
	Weekday int `json:"weekday"`
	Hour    int `json:"hour"`
	Count   int `json:"count"`
}

// Comparison holds the "team battle" block for an optionally searched author.
type Comparison struct {
	Name    string `json:"name"`
	Commits int    `json:"commits"`
	Gap     int    `json:"gap"`
	IsLead  bool   `json:"is_lead"`
	Found   bool   `json:"found"`
}

// Activity status labels. The threshold is fixed at 30 days of inactivity.
const (
	StatusAlive  = "ALIVE"
	StatusZombie = "ZOMBIE"
)

// Bus factor risk labels. HIGH means the lead author owns a strict majority
// of the fetched commits.
const (
	RiskHigh = "HIGH"
	RiskLow  = "LOW"
)

// Burnout labels derived from the weekend-work ratio.
const (
	BurnoutHigh    = "High"
	BurnoutHealthy = "Healthy"
)

// Report is the full health snapshot for one run. It is recomputed from
// scratch on every check and never updated incrementally.
type Report struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`

	TotalCommits   int       `json:"total_commits"`
	LastCommitAt   time.Time `json:"last_commit_at"`
	DaysInactive   int       `json:"days_inactive"`
	ActivityStatus string    `json:"activity_status"`

	AuthorCounts  []AuthorCount `json:"author_counts"`
	LeadName      string        `json:"lead_name"`
	LeadCount     int           `json:"lead_count"`
	LeadDominance float64       `json:"lead_dominance"`
	BusFactorRisk string        `json:"bus_factor_risk"`

	WeekendPercent float64 `json:"weekend_percent"`
	BurnoutLabel   string  `json:"burnout_label"`

	AvgIssueDays float64 `json:"avg_issue_days"`
	IssueCount   int     `json:"issue_count"`

	Timing     []TimingBucket `json:"timing"`
	Comparison *Comparison    `json:"comparison,omitempty"`
}

// ViewMode selects how dense the leaderboard chart is. The source dashboard
// compared two different labels for the same option; here there is exactly one
// identifier per mode.
type ViewMode string

const (
	ViewTop5 ViewMode = "top5"
	ViewAll  ViewMode = "all"
)

// WeekdayIndex maps t's weekday onto the Monday-first index used by the
// timing buckets and the weekend ratio.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	return WeekdayIndex(t) >= 5
}
