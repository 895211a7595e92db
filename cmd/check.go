package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/repo-health/internal/config"
	"github.com/naka-gawa/repo-health/internal/domain"
	"github.com/naka-gawa/repo-health/internal/gateway"
	"github.com/naka-gawa/repo-health/internal/render"
	"github.com/naka-gawa/repo-health/internal/usecase"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Runs a health check for one repository and renders the dashboard",
	Long: `Fetches up to 100 recent commits (mandatory) and up to 100 closed
issues (best effort) for the given repository, computes the health metrics,
and prints the dashboard to standard output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := newLogger(verbose)

		owner, _ := cmd.Flags().GetString("owner")
		repo, _ := cmd.Flags().GetString("repo")
		compare, _ := cmd.Flags().GetString("compare")
		viewStr, _ := cmd.Flags().GetString("view")

		mode, err := parseViewMode(viewStr)
		if err != nil {
			return err
		}

		cfg, err := config.Load(config.DefaultFile)
		if err != nil {
			return err
		}

		gw, err := gateway.NewGitHubGateway(cfg.Token, logger)
		if err != nil {
			return err
		}

		// Commits first and mandatory, then issues as best effort. The two
		// calls are deliberately sequential; there is nothing to overlap.
		commits, err := gw.FetchCommits(ctx, owner, repo)
		if err != nil {
			return fmt.Errorf("health check for %s/%s aborted: %w", owner, repo, err)
		}
		issues := gw.FetchClosedIssues(ctx, owner, repo)

		analyzer := usecase.NewAnalyzer(logger)
		report, err := analyzer.Analyze(owner, repo, commits, issues, compare)
		if err != nil && !errors.Is(err, domain.ErrAuthorNotFound) {
			return err
		}

		// An unknown comparison author is reported inside the dashboard's
		// team-battle block; it never aborts the run.
		fmt.Fprint(os.Stdout, render.Dashboard(report, mode))
		return nil
	},
}

func parseViewMode(s string) (domain.ViewMode, error) {
	switch domain.ViewMode(s) {
	case domain.ViewTop5, domain.ViewAll:
		return domain.ViewMode(s), nil
	}
	return "", fmt.Errorf("invalid --view %q: must be %q or %q", s, domain.ViewTop5, domain.ViewAll)
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringP("owner", "o", "", "Repository owner (required)")
	checkCmd.Flags().StringP("repo", "r", "", "Repository name (required)")
	checkCmd.MarkFlagRequired("owner")
	checkCmd.MarkFlagRequired("repo")
	checkCmd.Flags().String("compare", "", "Developer name to compare against the lead (optional)")
	checkCmd.Flags().String("view", string(domain.ViewTop5), "Leaderboard density: top5 or all")
}
