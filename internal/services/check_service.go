// Package services contains the business logic layer: one run over the link inventory.
package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/axellelanca/refcheck/internal/checker"
	customerrors "github.com/axellelanca/refcheck/internal/errors"
	"github.com/axellelanca/refcheck/internal/extract"
	"github.com/axellelanca/refcheck/internal/logger"
	"github.com/axellelanca/refcheck/internal/metrics"
	"github.com/axellelanca/refcheck/internal/models"
	"github.com/axellelanca/refcheck/internal/repository"
	"github.com/axellelanca/refcheck/internal/report"
)

// CheckService checks every referral in the inventory, one at a time, and
// rewrites the inventory with the results.
type CheckService struct {
	linkRepo repository.LinkRepository
	checker  checker.Checker
	mode     checker.Mode
	limiter  *rate.Limiter
	summary  report.SummaryOptions
	log      logger.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

// Options configures NewCheckService.
type Options struct {
	Mode      checker.Mode
	Delay     time.Duration // minimum spacing between two checks
	UnitValue float64
	Currency  string
	Metrics   *metrics.Metrics
	Now       func() time.Time // defaults to time.Now
}

// NewCheckService creates and returns a new instance of CheckService.
func NewCheckService(linkRepo repository.LinkRepository, chk checker.Checker, log logger.Logger, opts Options) *CheckService {
	limit := rate.Inf
	if opts.Delay > 0 {
		limit = rate.Every(opts.Delay)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &CheckService{
		linkRepo: linkRepo,
		checker:  chk,
		mode:     opts.Mode,
		limiter:  rate.NewLimiter(limit, 1),
		summary:  report.SummaryOptions{UnitValue: opts.UnitValue, Currency: opts.Currency},
		log:      log,
		metrics:  opts.Metrics,
		now:      now,
	}
}

// Run performs one full pass. Only setup faults are returned: an unreadable
// inventory, an inventory without links, a cancelled context or a failed write.
// Nothing is written unless every link was checked.
func (s *CheckService) Run(ctx context.Context) (*models.RunSummary, error) {
	// Read the inventory; it is also the backup content
	content, err := s.linkRepo.Load()
	if err != nil {
		return nil, err
	}

	// Extract referral links in input order, duplicates included
	refs := extract.Referrals(content)
	if len(refs) == 0 {
		return nil, customerrors.ErrNoLinks
	}
	s.log.Info("Starting referral checks", logger.Int("links", len(refs)), logger.String("mode", string(s.mode)))

	results := make([]models.LinkStatus, 0, len(refs))
	for i, ref := range refs {
		// Pace checks; the first one starts immediately
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("run aborted after %d of %d links: %w", i, len(refs), err)
		}

		start := time.Now()
		status := s.checker.Check(ctx, ref)
		s.metrics.RecordCheck(string(s.mode), status, time.Since(start))

		s.log.Info("Checked referral",
			logger.Int("index", i+1),
			logger.Int("total", len(refs)),
			logger.String("code", ref.Code),
			logger.String("status", string(status)))

		results = append(results, models.LinkStatus{
			URL:         ref.URL,
			Code:        ref.Code,
			Status:      status,
			LastChecked: s.now(),
		})
	}
	// A cancelled run leaves every file untouched
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run aborted: %w", err)
	}

	// Keep the original input, then overwrite it with the status table
	if err := s.linkRepo.Backup(content); err != nil {
		return nil, err
	}
	if err := s.linkRepo.SaveStatuses(results); err != nil {
		return nil, err
	}

	// The summary document is only written when something is active
	opts := s.summary
	opts.GeneratedAt = s.now()
	if doc, ok := report.RenderSummary(results, opts); ok {
		if err := s.linkRepo.SaveSummary(doc); err != nil {
			return nil, err
		}
	}

	summary := models.Tally(results)
	s.log.Info("Referral checks completed",
		logger.Int("total", summary.Total),
		logger.Int("active", summary.Active),
		logger.Int("redeemed", summary.Redeemed),
		logger.Int("unknown", summary.Unknown))
	return &summary, nil
}
