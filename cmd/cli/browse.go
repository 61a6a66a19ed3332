package cli

import (
	"github.com/spf13/cobra"

	"github.com/axellelanca/refcheck/cmd"
	"github.com/axellelanca/refcheck/internal/checker"
	"github.com/axellelanca/refcheck/internal/metrics"
)

var (
	profileFlag    string
	showWindowFlag bool
)

// BrowseCmd checks each referral by loading its page in Chrome.
var BrowseCmd = &cobra.Command{
	Use:   "browse <file>",
	Short: "Check referral links by loading each page in headless Chrome",
	Long: `Loads every referral page from <file> in a single Chrome tab and reads the
status the page itself fetches. Each check waits at most browser.timeout_seconds.

Authentication comes from the Chrome profile given with --profile; log in there
once beforehand.

Example:
  refcheck browse --profile ~/.config/refcheck-chrome referrals.md`,
	Args: cmd.RequireInputFile,
	RunE: func(c *cobra.Command, args []string) error {
		cfg := cmd.Cfg
		if c.Flags().Changed("profile") {
			cfg.Browser.UserDataDir = profileFlag
		}

		ctx, stop := signalContext()
		defer stop()

		m := metrics.New()
		chk, err := checker.NewBrowserChecker(ctx, checker.BrowserOptions{
			Headless:    cfg.Browser.Headless && !showWindowFlag,
			ExecPath:    cfg.Browser.ExecPath,
			UserDataDir: cfg.Browser.UserDataDir,
			StatusPath:  cfg.Browser.StatusPath,
			Timeout:     cfg.BrowserTimeout(),
		}, cmd.Log, m)
		if err != nil {
			return err
		}
		defer chk.Close()

		return runChecks(ctx, args[0], chk, checker.ModeBrowser, m)
	},
}

func init() {
	BrowseCmd.Flags().StringVar(&profileFlag, "profile", "", "Chrome user data directory holding a logged-in session (overrides browser.user_data_dir)")
	BrowseCmd.Flags().BoolVar(&showWindowFlag, "show", false, "Show the browser window instead of running headless")

	cmd.RootCmd.AddCommand(BrowseCmd)
}
