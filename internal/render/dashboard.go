// Package render turns a health Report into terminal output. It is a pure
// text transformation: nothing here fetches or computes metrics, so the same
// Report always renders the same dashboard.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/naka-gawa/repo-health/internal/domain"
)

var (
	colorCyan   = lipgloss.Color("36")  // titles
	colorGreen  = lipgloss.Color("35")  // healthy values
	colorYellow = lipgloss.Color("220") // warnings
	colorRed    = lipgloss.Color("167") // risky values
	colorWhite  = lipgloss.Color("255") // plain values
	colorDim    = lipgloss.Color("240") // captions, axes
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleHeading = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleGood    = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	styleWarn    = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	styleBad     = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	styleBar     = lipgloss.NewStyle().Foreground(colorGreen)

	stylePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1).
			Width(24)
)

const (
	topAuthors = 5
	barWidth   = 28
)

var weekdayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Dashboard renders the full terminal dashboard: title, the four vitals
// panels, the commit leaderboard, the work-culture heatmap, and the
// narrative insight blocks.
func Dashboard(r *domain.Report, mode domain.ViewMode) string {
	var b strings.Builder

	b.WriteString(styleTitle.Render(fmt.Sprintf("Repository Health · %s/%s", r.Owner, r.Repo)))
	b.WriteString("\n\n")
	b.WriteString(Panels(r))
	b.WriteString("\n\n")
	b.WriteString(Leaderboard(r, mode))
	b.WriteString("\n\n")
	b.WriteString(Heatmap(r))
	b.WriteString("\n\n")
	b.WriteString(Insights(r))
	b.WriteString("\n")

	return b.String()
}

// Panels renders the four key-vitals panels side by side.
func Panels(r *domain.Report) string {
	activity := styleGood
	if r.ActivityStatus == domain.StatusZombie {
		activity = styleBad
	}
	risk := styleGood
	if r.BusFactorRisk == domain.RiskHigh {
		risk = styleBad
	}
	burnout := styleGood
	if r.BurnoutLabel == domain.BurnoutHigh {
		burnout = styleWarn
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		panel("Activity Status", activity.Render(r.ActivityStatus),
			fmt.Sprintf("%d days inactive", r.DaysInactive)),
		panel("Bus Factor Risk", risk.Render(r.BusFactorRisk),
			fmt.Sprintf("%.1f%% dominance", r.LeadDominance)),
		panel("Weekend Work", burnout.Render(fmt.Sprintf("%.1f%%", r.WeekendPercent)),
			r.BurnoutLabel),
		panel("Avg Issue Fix Time", styleHeading.Render(fmt.Sprintf("%.1f days", r.AvgIssueDays)),
			fmt.Sprintf("%d analyzed", r.IssueCount)),
	)
}

func panel(title, value, caption string) string {
	content := styleDim.Render(title) + "\n" + value + "\n" + styleDim.Render(caption)
	return stylePanel.Render(content)
}

// Leaderboard renders the per-author commit bar chart. In top5 mode only the
// five busiest authors are shown; in all mode every author appears.
func Leaderboard(r *domain.Report, mode domain.ViewMode) string {
	counts := r.AuthorCounts
	title := "Commit Leaderboard"
	if mode == domain.ViewTop5 && len(counts) > topAuthors {
		counts = counts[:topAuthors]
		title += " (top 5)"
	}

	nameWidth := 0
	for _, ac := range counts {
		if len(ac.Name) > nameWidth {
			nameWidth = len(ac.Name)
		}
	}
	max := counts[0].Commits

	var b strings.Builder
	b.WriteString(styleHeading.Render(title))
	b.WriteString("\n")
	for _, ac := range counts {
		width := ac.Commits * barWidth / max
		if width == 0 {
			width = 1
		}
		b.WriteString(fmt.Sprintf("%-*s %s %d\n",
			nameWidth, ac.Name,
			styleBar.Render(strings.Repeat("█", width)),
			ac.Commits))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Heatmap renders the weekday-by-hour commit timing grid. Cell shading scales
// with the bucket count relative to the busiest cell.
func Heatmap(r *domain.Report) string {
	grid := make(map[[2]int]int, len(r.Timing))
	max := 0
	for _, tb := range r.Timing {
		grid[[2]int{tb.Weekday, tb.Hour}] = tb.Count
		if tb.Count > max {
			max = tb.Count
		}
	}

	var b strings.Builder
	b.WriteString(styleHeading.Render("Work Culture Map"))
	b.WriteString("\n")
	for day := 0; day < 7; day++ {
		b.WriteString(styleDim.Render(weekdayNames[day]))
		b.WriteString(" ")
		for hour := 0; hour < 24; hour++ {
			b.WriteString(cell(grid[[2]int{day, hour}], max))
		}
		b.WriteString("\n")
	}
	b.WriteString(styleDim.Render("    0     6     12    18"))
	return b.String()
}

// cell picks a shade character for one heatmap cell.
func cell(count, max int) string {
	if count == 0 || max == 0 {
		return styleDim.Render("·")
	}
	shades := []string{"░", "▒", "▓", "█"}
	idx := (count*len(shades) - 1) / max
	if idx >= len(shades) {
		idx = len(shades) - 1
	}
	return styleBar.Render(shades[idx])
}

// Insights renders the narrative blocks: the behavior analysis chosen by the
// weekend-work thresholds and, when a comparison was requested, the team
// battle against the lead author.
func Insights(r *domain.Report) string {
	var b strings.Builder

	b.WriteString(styleHeading.Render("Behavior Analysis"))
	b.WriteString("\n")
	switch {
	case r.WeekendPercent > 30:
		b.WriteString(styleWarn.Render("The Weekend Warrior:") + " high weekend activity detected.")
	case r.WeekendPercent < 5:
		b.WriteString(styleGood.Render("The 9-to-5 Pro:") + " professional weekday schedule.")
	default:
		b.WriteString(styleHeading.Render("Balanced Schedule:") + " standard mix of work.")
	}

	if c := r.Comparison; c != nil {
		b.WriteString("\n\n")
		b.WriteString(styleHeading.Render("Team Battle"))
		b.WriteString("\n")
		switch {
		case !c.Found:
			b.WriteString(styleBad.Render(fmt.Sprintf("Developer %q not found in recent history.", c.Name)))
		case c.IsLead:
			b.WriteString(fmt.Sprintf("%s has %d commits. ", c.Name, c.Commits))
			b.WriteString(styleGood.Render("You are the lead!"))
		default:
			b.WriteString(fmt.Sprintf("%s has %d commits, trailing lead (%s) by %d.",
				c.Name, c.Commits, r.LeadName, c.Gap))
		}
	}

	return b.String()
}
