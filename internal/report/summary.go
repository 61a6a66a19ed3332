package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/axellelanca/refcheck/internal/models"
)

// SummaryOptions controls RenderSummary.
type SummaryOptions struct {
	UnitValue   float64 // credit per active referral
	Currency    string
	GeneratedAt time.Time
}

// RenderSummary renders the active-links document. The second return value is
// false when there is nothing active to report.
func RenderSummary(results []models.LinkStatus, opts SummaryOptions) (string, bool) {
	summary := models.Tally(results)
	if summary.Active == 0 {
		return "", false
	}

	var b strings.Builder
	b.WriteString("# Active Referral Links\n\n")
	fmt.Fprintf(&b, "_Generated %s_\n\n", opts.GeneratedAt.Format(TimeLayout))
	fmt.Fprintf(&b, "- **Active:** %d out of %d checked\n", summary.Active, summary.Total)
	fmt.Fprintf(&b, "- **Success rate:** %s%%\n", formatNumber(SuccessRate(summary)))
	fmt.Fprintf(&b, "- **Total credit value:** %s%s\n\n", opts.Currency, formatNumber(CreditValue(summary, opts.UnitValue)))

	b.WriteString("## Links\n\n")
	for i, r := range summary.ActiveResults() {
		fmt.Fprintf(&b, "%d. %s (checked %s)\n", i+1, r.URL, r.LastChecked.Format(TimeLayout))
	}
	return b.String(), true
}

// SuccessRate is the share of active results, as a percentage.
func SuccessRate(s models.RunSummary) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Active) / float64(s.Total) * 100
}

// CreditValue is active count times the per-referral credit.
func CreditValue(s models.RunSummary, unitValue float64) float64 {
	return float64(s.Active) * unitValue
}

// formatNumber rounds to one decimal and drops a trailing ".0".
func formatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}
