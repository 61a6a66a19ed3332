package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/axellelanca/refcheck/internal/config"
	customerrors "github.com/axellelanca/refcheck/internal/errors"
	"github.com/axellelanca/refcheck/internal/logger"
)

// Cfg holds the configuration loaded before any command runs.
var Cfg *config.Config

// Log is the process-wide logger, built from Cfg.
var Log logger.Logger = logger.NewNop()

// RootCmd is the base command for the CLI application.
// Subcommands (check, browse, scrape, serve) register themselves in their own init().
var RootCmd = &cobra.Command{
	Use:   "refcheck",
	Short: "Check whether referral links are still redeemable",
	Long: `refcheck reads a Markdown or text file of referral links, asks the
referral service whether each code is still active, then rewrites the file as
a status table (keeping a .bak copy) and writes a summary of the active links.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point for the Cobra application.
func Execute() {
	err := RootCmd.Execute()
	// Flush buffered log entries before a possible os.Exit
	_ = Log.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// RequireInputFile accepts exactly one positional argument, the inventory file.
func RequireInputFile(_ *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		return customerrors.ErrMissingInput
	case 1:
		return nil
	default:
		return fmt.Errorf("expected one input file, got %d arguments", len(args))
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

// initConfig loads the configuration and builds the logger. A broken config
// file is a setup fault.
func initConfig() {
	var err error

	// Load configuration from file, environment variables, and defaults
	Cfg, err = config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Build the logger from the loaded log section
	Log, err = logger.New(logger.Config{Level: Cfg.Log.Level, Development: Cfg.Log.Development})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}

	// Configuration and logger are now available via cmd.Cfg and cmd.Log
}
