package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/axellelanca/refcheck/internal/logger"
	"github.com/axellelanca/refcheck/internal/models"
	"github.com/axellelanca/refcheck/internal/report"
	"github.com/axellelanca/refcheck/internal/repository"
)

// SetupRoutes configures the read-only report routes.
// The inventory file is re-read on every request so a concurrent `check` run
// shows up without restarting the server.
//   - router: Gin engine instance to configure routes on
//   - linkRepo: source of the persisted status table
//   - unitValue: credit per active referral, for the summary
func SetupRoutes(router *gin.Engine, linkRepo repository.LinkRepository, unitValue float64, log logger.Logger) {
	// Health Check Route - used for monitoring service availability
	router.GET("/health", HealthCheckHandler)

	api := router.Group("/api/v1")
	{
		api.GET("/links", ListLinksHandler(linkRepo, unitValue, log))
		api.GET("/links/active", ListActiveLinksHandler(linkRepo, log))
		api.GET("/links/:code", GetLinkHandler(linkRepo, log))
	}
}

// HealthCheckHandler handles the /health route to verify service status
func HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// LinksResponse is the body of GET /api/v1/links.
type LinksResponse struct {
	Results []models.LinkStatus `json:"results"`
	Summary struct {
		Total       int     `json:"total"`
		Active      int     `json:"active"`
		Redeemed    int     `json:"redeemed"`
		Unknown     int     `json:"unknown"`
		SuccessRate float64 `json:"success_rate"`
		CreditValue float64 `json:"credit_value"`
	} `json:"summary"`
}

// ListLinksHandler returns every row of the status table with aggregate counts.
func ListLinksHandler(linkRepo repository.LinkRepository, unitValue float64, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		results, ok := loadStatuses(c, linkRepo, log)
		if !ok {
			return
		}

		tally := models.Tally(results)
		var resp LinksResponse
		resp.Results = results
		resp.Summary.Total = tally.Total
		resp.Summary.Active = tally.Active
		resp.Summary.Redeemed = tally.Redeemed
		resp.Summary.Unknown = tally.Unknown
		resp.Summary.SuccessRate = report.SuccessRate(tally)
		resp.Summary.CreditValue = report.CreditValue(tally, unitValue)

		c.JSON(http.StatusOK, resp)
	}
}

// ListActiveLinksHandler returns only the active rows.
func ListActiveLinksHandler(linkRepo repository.LinkRepository, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		results, ok := loadStatuses(c, linkRepo, log)
		if !ok {
			return
		}
		active := models.Tally(results).ActiveResults()
		if active == nil {
			active = []models.LinkStatus{}
		}
		c.JSON(http.StatusOK, gin.H{"results": active})
	}
}

// GetLinkHandler returns the first row whose code matches, case-insensitively.
func GetLinkHandler(linkRepo repository.LinkRepository, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Param("code")

		results, ok := loadStatuses(c, linkRepo, log)
		if !ok {
			return
		}
		for _, r := range results {
			if strings.EqualFold(r.Code, code) {
				c.JSON(http.StatusOK, r)
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Referral code not found"})
	}
}

func loadStatuses(c *gin.Context, linkRepo repository.LinkRepository, log logger.Logger) ([]models.LinkStatus, bool) {
	results, err := linkRepo.GetAllStatuses()
	if err != nil {
		log.Error("Error reading status table", logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Status table unavailable"})
		return nil, false
	}
	return results, true
}
