package cmd

import (
	"github.com/spf13/cobra"

	"github.com/naka-gawa/repo-health/internal/config"
	"github.com/naka-gawa/repo-health/internal/gateway"
	"github.com/naka-gawa/repo-health/internal/server"
	"github.com/naka-gawa/repo-health/internal/usecase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the health check as a JSON HTTP API",
	Long: `Starts an HTTP server exposing the same health check as the check
command under GET /api/repos/{owner}/{repo}/health. Each request performs a
fresh fetch-and-compute cycle; nothing is cached between requests.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := newLogger(verbose)

		cfg, err := config.Load(config.DefaultFile)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.ListenAddr = addr
		}

		gw, err := gateway.NewGitHubGateway(cfg.Token, logger)
		if err != nil {
			return err
		}

		srv := server.New(gw, usecase.NewAnalyzer(logger), logger)
		return srv.Start(cfg.ListenAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Bind address (overrides config, default :8080)")
}
