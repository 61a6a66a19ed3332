package cli

import (
	"github.com/spf13/cobra"

	"github.com/axellelanca/refcheck/cmd"
	"github.com/axellelanca/refcheck/internal/checker"
	"github.com/axellelanca/refcheck/internal/metrics"
)

var (
	retriesFlag int
	delayFlag   int
)

// CheckCmd checks each referral by calling the status endpoint directly.
var CheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Check referral links by calling the status endpoint directly",
	Long: `Extracts every referral link from <file>, asks the status endpoint about
each one in turn and rewrites <file> as a status table.

The authentication cookie is read from AUTH_COOKIE (or CHECK_COOKIE) and sent
verbatim with every request. Server errors are retried with a linear backoff.

Example:
  AUTH_COOKIE="WorkosCursorSessionToken=..." refcheck check referrals.md`,
	Args: cmd.RequireInputFile,
	RunE: func(c *cobra.Command, args []string) error {
		cfg := cmd.Cfg
		if c.Flags().Changed("retries") {
			cfg.Check.MaxRetries = retriesFlag
		}
		if c.Flags().Changed("delay") {
			cfg.Check.DelayMS = delayFlag
		}

		ctx, stop := signalContext()
		defer stop()

		m := metrics.New()
		chk := checker.NewHTTPChecker(checker.HTTPOptions{
			Endpoint:   cfg.Check.Endpoint,
			Cookie:     cfg.Check.Cookie,
			MaxRetries: cfg.Check.MaxRetries,
			Delay:      cfg.Delay(),
			Timeout:    cfg.RequestTimeout(),
		}, cmd.Log, m)

		return runChecks(ctx, args[0], chk, checker.ModeHTTP, m)
	},
}

func init() {
	CheckCmd.Flags().IntVar(&retriesFlag, "retries", 3, "Attempts per code before giving up")
	CheckCmd.Flags().IntVar(&delayFlag, "delay", 1000, "Delay in milliseconds between checks and backoff unit")

	cmd.RootCmd.AddCommand(CheckCmd)
}
