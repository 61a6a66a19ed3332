package checker

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/axellelanca/refcheck/internal/logger"
	"github.com/axellelanca/refcheck/internal/metrics"
	"github.com/axellelanca/refcheck/internal/models"
)

// PageChecker fetches the referral page itself and judges it by its visible
// text. It only works when the page is rendered server-side; prefer HTTPChecker
// or BrowserChecker otherwise.
type PageChecker struct {
	httpClient *http.Client
	amount     string   // e.g. "$50", the credit the page advertises for a live code
	altAmounts []string // other credits accepted in headings and message boxes
	log        logger.Logger
	metrics    *metrics.Metrics
}

// NewPageChecker creates a PageChecker. currency and unitValue form the amount
// a live referral page advertises; altValues are older promotion amounts that
// still count when they appear in a heading or message element.
func NewPageChecker(client *http.Client, currency string, unitValue float64, altValues []float64, log logger.Logger, m *metrics.Metrics) *PageChecker {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	alt := make([]string, 0, len(altValues))
	for _, v := range altValues {
		alt = append(alt, formatAmount(currency, v))
	}
	return &PageChecker{
		httpClient: client,
		amount:     formatAmount(currency, unitValue),
		altAmounts: alt,
		log:        log,
		metrics:    m,
	}
}

// Check fetches ref.URL once. Any fault resolves to unknown.
func (p *PageChecker) Check(ctx context.Context, ref models.Referral) models.Status {
	log := p.log.With(logger.String("code", ref.Code))

	doc, err := p.fetch(ctx, ref.URL)
	if err != nil {
		p.metrics.RecordAttempt(string(ModePage), "transport_fault")
		log.Warn("Referral page unavailable", logger.Err(err))
		return models.StatusUnknown
	}
	p.metrics.RecordAttempt(string(ModePage), "ok")
	return p.classifyPage(doc)
}

func (p *PageChecker) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

func (p *PageChecker) classifyPage(doc *goquery.Document) models.Status {
	// Only what a reader sees counts; inline scripts often carry every message string.
	doc.Find("script, style, noscript, template").Remove()

	text := strings.ToLower(doc.Find("body").Text())

	if p.advertisesCredit(text) {
		return models.StatusActive
	}
	if mentionsInvalidCode(text) {
		return models.StatusRedeemed
	}

	title := strings.ToLower(doc.Find("title").Text())
	if strings.Contains(title, "invalid") && strings.Contains(title, "referral") {
		return models.StatusRedeemed
	}

	status := models.StatusUnknown
	doc.Find("h1, h2, h3, .message, .error, .success, .credit").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		t := strings.ToLower(s.Text())
		switch {
		case strings.Contains(t, "invalid referral code"):
			status = models.StatusRedeemed
			return false
		case p.advertisesCredit(t) || p.advertisesAltCredit(t):
			status = models.StatusActive
			return false
		}
		return true
	})
	return status
}

func (p *PageChecker) advertisesCredit(text string) bool {
	return strings.Contains(text, "credit") && strings.Contains(text, strings.ToLower(p.amount))
}

func (p *PageChecker) advertisesAltCredit(text string) bool {
	if !strings.Contains(text, "credit") {
		return false
	}
	for _, a := range p.altAmounts {
		if strings.Contains(text, strings.ToLower(a)) {
			return true
		}
	}
	return false
}

func formatAmount(currency string, v float64) string {
	return currency + strconv.FormatFloat(v, 'f', -1, 64)
}

func mentionsInvalidCode(text string) bool {
	if strings.Contains(text, "invalid referral code") || strings.Contains(text, "this referral code is invalid") {
		return true
	}
	return strings.Contains(text, "invalid") && strings.Contains(text, "referral") && strings.Contains(text, "code")
}

var _ Checker = (*PageChecker)(nil)
