package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/afero"

	"github.com/axellelanca/refcheck/cmd"
	"github.com/axellelanca/refcheck/internal/checker"
	"github.com/axellelanca/refcheck/internal/logger"
	"github.com/axellelanca/refcheck/internal/metrics"
	"github.com/axellelanca/refcheck/internal/models"
	"github.com/axellelanca/refcheck/internal/report"
	"github.com/axellelanca/refcheck/internal/repository"
	"github.com/axellelanca/refcheck/internal/services"
)

// signalContext is cancelled on Ctrl+C or SIGTERM; a cancelled run writes nothing.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// runChecks wires the repository and service around chk, runs one pass over
// path and prints the outcome.
func runChecks(ctx context.Context, path string, chk checker.Checker, mode checker.Mode, m *metrics.Metrics) error {
	cfg := cmd.Cfg

	linkRepo := repository.NewLinkRepository(afero.NewOsFs(), path, cfg.Report.SummaryFile)
	svc := services.NewCheckService(linkRepo, chk, cmd.Log, services.Options{
		Mode:      mode,
		Delay:     cfg.Delay(),
		UnitValue: cfg.Report.UnitValue,
		Currency:  cfg.Report.Currency,
		Metrics:   m,
	})

	summary, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("check %s: %w", path, err)
	}

	if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		cmd.Log.Warn("Failed to write metrics textfile",
			logger.String("path", cfg.Metrics.Textfile), logger.Err(err))
	}

	printSummary(os.Stdout, summary, cfg.Report.UnitValue, cfg.Report.Currency)
	fmt.Printf("\nStatus table written to %s (backup: %s)\n", linkRepo.Path(), linkRepo.BackupPath())
	if summary.Active > 0 {
		fmt.Printf("Active links summary written to %s\n", linkRepo.SummaryPath())
	}
	return nil
}

func printSummary(w io.Writer, summary *models.RunSummary, unitValue float64, currency string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Referral check results")
	t.AppendHeader(table.Row{"Checked", "Active", "Redeemed", "Unknown", "Success rate", "Credit"})
	t.AppendRow(table.Row{
		summary.Total,
		summary.Active,
		summary.Redeemed,
		summary.Unknown,
		fmt.Sprintf("%.1f%%", report.SuccessRate(*summary)),
		fmt.Sprintf("%s%.2f", currency, report.CreditValue(*summary, unitValue)),
	})
	t.Render()
}
