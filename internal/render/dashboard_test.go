package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/naka-gawa/repo-health/internal/domain"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		Owner:          "acme",
		Repo:           "rocket",
		TotalCommits:   10,
		LastCommitAt:   time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC),
		DaysInactive:   5,
		ActivityStatus: domain.StatusAlive,
		AuthorCounts: []domain.AuthorCount{
			{Name: "alice", Commits: 4},
			{Name: "bob", Commits: 2},
			{Name: "carol", Commits: 1},
			{Name: "dave", Commits: 1},
			{Name: "erin", Commits: 1},
			{Name: "frank", Commits: 1},
		},
		LeadName:       "alice",
		LeadCount:      4,
		LeadDominance:  40,
		BusFactorRisk:  domain.RiskLow,
		WeekendPercent: 10,
		BurnoutLabel:   domain.BurnoutHealthy,
		AvgIssueDays:   1.5,
		IssueCount:     7,
		Timing: []domain.TimingBucket{
			{Weekday: 0, Hour: 9, Count: 6},
			{Weekday: 5, Hour: 22, Count: 4},
		},
	}
}

func TestDashboard_ContainsAllSections(t *testing.T) {
	out := Dashboard(sampleReport(), domain.ViewAll)

	assert.Contains(t, out, "acme/rocket")
	assert.Contains(t, out, "Activity Status")
	assert.Contains(t, out, domain.StatusAlive)
	assert.Contains(t, out, "Bus Factor Risk")
	assert.Contains(t, out, "40.0% dominance")
	assert.Contains(t, out, "Weekend Work")
	assert.Contains(t, out, "Avg Issue Fix Time")
	assert.Contains(t, out, "1.5 days")
	assert.Contains(t, out, "7 analyzed")
	assert.Contains(t, out, "Commit Leaderboard")
	assert.Contains(t, out, "Work Culture Map")
	assert.Contains(t, out, "Behavior Analysis")
}

func TestLeaderboard_ViewModes(t *testing.T) {
	r := sampleReport()

	t.Run("top5 hides the sixth author", func(t *testing.T) {
		out := Leaderboard(r, domain.ViewTop5)
		assert.Contains(t, out, "alice")
		assert.Contains(t, out, "erin")
		assert.NotContains(t, out, "frank")
	})

	t.Run("all shows everyone", func(t *testing.T) {
		out := Leaderboard(r, domain.ViewAll)
		assert.Contains(t, out, "frank")
	})

	t.Run("bars scale with the lead", func(t *testing.T) {
		out := Leaderboard(r, domain.ViewAll)
		lines := strings.Split(out, "\n")
		var aliceBar, bobBar int
		for _, line := range lines {
			if strings.Contains(line, "alice") {
				aliceBar = strings.Count(line, "█")
			}
			if strings.Contains(line, "bob") {
				bobBar = strings.Count(line, "█")
			}
		}
		assert.Greater(t, aliceBar, bobBar)
	})
}

func TestHeatmap_RendersAllWeekdays(t *testing.T) {
	out := Heatmap(sampleReport())
	for _, day := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
		assert.Contains(t, out, day)
	}
}

func TestInsights(t *testing.T) {
	t.Run("weekend warrior above threshold", func(t *testing.T) {
		r := sampleReport()
		r.WeekendPercent = 45
		assert.Contains(t, Insights(r), "Weekend Warrior")
	})

	t.Run("nine to five below threshold", func(t *testing.T) {
		r := sampleReport()
		r.WeekendPercent = 2
		assert.Contains(t, Insights(r), "9-to-5 Pro")
	})

	t.Run("balanced in between", func(t *testing.T) {
		r := sampleReport()
		r.WeekendPercent = 15
		assert.Contains(t, Insights(r), "Balanced Schedule")
	})

	t.Run("comparison when trailing the lead", func(t *testing.T) {
		r := sampleReport()
		r.Comparison = &domain.Comparison{Name: "bob", Commits: 2, Gap: 2, Found: true}
		out := Insights(r)
		assert.Contains(t, out, "Team Battle")
		assert.Contains(t, out, "trailing lead (alice) by 2")
	})

	t.Run("comparison when searched author is the lead", func(t *testing.T) {
		r := sampleReport()
		r.Comparison = &domain.Comparison{Name: "alice", Commits: 4, Gap: 0, IsLead: true, Found: true}
		assert.Contains(t, Insights(r), "You are the lead!")
	})

	t.Run("unknown author notice", func(t *testing.T) {
		r := sampleReport()
		r.Comparison = &domain.Comparison{Name: "mallory"}
		assert.Contains(t, Insights(r), `"mallory" not found`)
	})
}
