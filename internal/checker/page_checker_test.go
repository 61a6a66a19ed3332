package checker_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/axellelanca/refcheck/internal/checker"
	"github.com/axellelanca/refcheck/internal/logger"
	"github.com/axellelanca/refcheck/internal/models"
)

func newReferralPages(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()

	router := gin.New()
	router.GET("/referral", func(c *gin.Context) {
		page, ok := pages[c.Query("code")]
		if !ok {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestPageChecker(t *testing.T) {
	t.Parallel()

	srv := newReferralPages(t, map[string]string{
		"LIVE":     `<html><body><h1>Welcome!</h1><p>Sign up and get $50 in credit.</p></body></html>`,
		"USED":     `<html><body><div class="error">Invalid referral code</div></body></html>`,
		"TITLE":    `<html><head><title>Invalid Referral</title></head><body>Oops</body></html>`,
		"BLANK":    `<html><body><div id="root"></div></body></html>`,
		"WRONGAM":  `<html><body><p>Get $20 credit</p></body></html>`,
		"OLDPROMO": `<html><body><h2>Get $20 credit</h2></body></html>`,
		"SCRIPTED": `<html><body><div id="root"></div><script>window.__i18n={err:"Invalid referral code"};</script></body></html>`,
		"STYLED":   `<html><head><style>.credit:after{content:"$50 credit"}</style></head><body><div id="app"></div><noscript>Invalid referral code</noscript></body></html>`,
	})
	chk := checker.NewPageChecker(srv.Client(), "$", 50, []float64{20}, logger.NewNop(), nil)

	tests := map[string]models.Status{
		"LIVE":     models.StatusActive,
		"USED":     models.StatusRedeemed,
		"TITLE":    models.StatusRedeemed,
		"BLANK":    models.StatusUnknown,
		"WRONGAM":  models.StatusUnknown,
		"MISSING":  models.StatusUnknown,
		"OLDPROMO": models.StatusActive,
		"SCRIPTED": models.StatusUnknown,
		"STYLED":   models.StatusUnknown,
	}
	for code, want := range tests {
		ref := models.Referral{URL: srv.URL + "/referral?code=" + code, Code: code}
		assert.Equal(t, want, chk.Check(context.Background(), ref), code)
	}
}
