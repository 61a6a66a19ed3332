package checker

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	customerrors "github.com/axellelanca/refcheck/internal/errors"
	"github.com/axellelanca/refcheck/internal/logger"
	"github.com/axellelanca/refcheck/internal/metrics"
	"github.com/axellelanca/refcheck/internal/models"
)

// BrowserChecker loads each referral page in one long-lived headless Chrome tab
// and classifies the status exchange the page itself makes. Authentication comes
// from the browser profile (UserDataDir), never from this tool.
type BrowserChecker struct {
	tabCtx      context.Context
	tabCancel   context.CancelFunc
	allocCancel context.CancelFunc

	statusPath string
	timeout    time.Duration
	log        logger.Logger
	metrics    *metrics.Metrics
}

// BrowserOptions configures NewBrowserChecker.
type BrowserOptions struct {
	Headless    bool
	ExecPath    string
	UserDataDir string
	StatusPath  string        // substring identifying the status exchange URL
	Timeout     time.Duration // wall-clock bound per check
}

// NewBrowserChecker launches Chrome and opens the tab used for every check.
// Call Close when done.
func NewBrowserChecker(ctx context.Context, opts BrowserOptions, log logger.Logger, m *metrics.Metrics) (*BrowserChecker, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.Flag("headless", opts.Headless))
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}
	if opts.UserDataDir != "" {
		allocOpts = append(allocOpts, chromedp.UserDataDir(opts.UserDataDir))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	// The first Run starts the browser.
	if err := chromedp.Run(tabCtx, network.Enable()); err != nil {
		tabCancel()
		allocCancel()
		return nil, fmt.Errorf("%w: %v", customerrors.ErrBrowserLaunch, err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &BrowserChecker{
		tabCtx:      tabCtx,
		tabCancel:   tabCancel,
		allocCancel: allocCancel,
		statusPath:  opts.StatusPath,
		timeout:     timeout,
		log:         log,
		metrics:     m,
	}, nil
}

// Close shuts the tab and the browser.
func (b *BrowserChecker) Close() {
	b.tabCancel()
	b.allocCancel()
}

// Check navigates to ref.URL and resolves with whichever comes first: the status
// exchange being observed and parsed, the timeout, or a navigation fault.
// There is no retry.
func (b *BrowserChecker) Check(ctx context.Context, ref models.Referral) models.Status {
	log := b.log.With(logger.String("code", ref.Code))
	o := newOutcome()

	listenCtx, stopListening := context.WithCancel(b.tabCtx)
	defer stopListening()
	chromedp.ListenTarget(listenCtx, b.exchangeListener(listenCtx, o))

	navCtx, cancelNav := context.WithCancel(b.tabCtx)
	navDone := make(chan struct{})
	go func() {
		defer close(navDone)
		if err := chromedp.Run(navCtx, chromedp.Navigate(ref.URL)); err != nil {
			o.settle(models.StatusUnknown, "navigation failed: "+err.Error())
		}
	}()

	status, reason := awaitFirst(ctx, o, b.timeout)
	stopListening()
	cancelNav()
	<-navDone

	b.metrics.RecordAttempt(string(ModeBrowser), browserOutcome(status, reason))
	if status == models.StatusUnknown {
		log.Warn("Browser check unresolved", logger.String("reason", reason))
	} else {
		log.Debug("Browser check resolved", logger.String("status", string(status)))
	}
	return status
}

// exchangeListener returns the CDP event handler that watches for the status
// exchange. It runs on chromedp's event loop, so body retrieval happens in a
// separate goroutine.
func (b *BrowserChecker) exchangeListener(ctx context.Context, o *outcome) func(ev interface{}) {
	var (
		mu      sync.Mutex
		tracked network.RequestID
		code    int64
	)

	return func(ev interface{}) {
		switch e := ev.(type) {
		case *network.EventResponseReceived:
			if e.Type != network.ResourceTypeFetch && e.Type != network.ResourceTypeXHR {
				return
			}
			if !strings.Contains(e.Response.URL, b.statusPath) {
				return
			}
			mu.Lock()
			if tracked == "" {
				tracked = e.RequestID
				code = e.Response.Status
			}
			mu.Unlock()

		case *network.EventLoadingFinished:
			mu.Lock()
			match := tracked != "" && e.RequestID == tracked
			statusCode := code
			mu.Unlock()
			if !match {
				return
			}
			go func(id network.RequestID) {
				c := chromedp.FromContext(ctx)
				if c == nil || c.Target == nil {
					o.settle(models.StatusUnknown, "browser target gone")
					return
				}
				body, err := network.GetResponseBody(id).Do(cdp.WithExecutor(ctx, c.Target))
				if err != nil {
					o.settle(models.StatusUnknown, "response body unavailable: "+err.Error())
					return
				}
				o.settle(Classify(int(statusCode), body), "exchange observed")
			}(e.RequestID)

		case *network.EventLoadingFailed:
			mu.Lock()
			match := tracked != "" && e.RequestID == tracked
			mu.Unlock()
			if match {
				o.settle(models.StatusUnknown, "exchange failed: "+e.ErrorText)
			}
		}
	}
}

func browserOutcome(status models.Status, reason string) string {
	switch {
	case status != models.StatusUnknown, reason == "exchange observed":
		return "ok"
	case reason == "timeout":
		return "timeout"
	case strings.HasPrefix(reason, "navigation failed"):
		return "navigation_fault"
	default:
		return "transport_fault"
	}
}

var _ Checker = (*BrowserChecker)(nil)
