package cli

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/axellelanca/refcheck/cmd"
	"github.com/axellelanca/refcheck/internal/checker"
	"github.com/axellelanca/refcheck/internal/metrics"
)

// ScrapeCmd checks each referral by reading the text of its page.
var ScrapeCmd = &cobra.Command{
	Use:   "scrape <file>",
	Short: "Check referral links by reading the referral page text",
	Long: `Fetches every referral page from <file> over plain HTTP and looks for the
advertised credit or an "invalid referral code" message. Only useful when the
page is rendered server-side; otherwise use 'check' or 'browse'.`,
	Args: cmd.RequireInputFile,
	RunE: func(c *cobra.Command, args []string) error {
		cfg := cmd.Cfg

		ctx, stop := signalContext()
		defer stop()

		m := metrics.New()
		client := &http.Client{Timeout: cfg.RequestTimeout()}
		chk := checker.NewPageChecker(client, cfg.Report.Currency, cfg.Report.UnitValue, cfg.Scrape.AltValues, cmd.Log, m)

		return runChecks(ctx, args[0], chk, checker.ModePage, m)
	},
}

func init() {
	cmd.RootCmd.AddCommand(ScrapeCmd)
}
