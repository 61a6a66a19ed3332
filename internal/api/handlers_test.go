package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axellelanca/refcheck/internal/api"
	"github.com/axellelanca/refcheck/internal/logger"
	"github.com/axellelanca/refcheck/internal/models"
	"github.com/axellelanca/refcheck/internal/repository"
)

const table = "| URL | Status | Last Checked |\n" +
	"|-----|--------|--------------|\n" +
	"| https://cursor.com/referral?code=AAA | active | 2026-10-15 10:00:00 |\n" +
	"| https://cursor.com/referral?code=BBB | redeemed | 2026-10-15 10:00:01 |\n" +
	"| https://cursor.com/referral?code=CCC | unknown | 2026-10-15 10:00:02 |\n" +
	"| https://cursor.com/referral?code=DDD | active | 2026-10-15 10:00:03 |\n"

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T, content string, write bool) *gin.Engine {
	t.Helper()

	fs := afero.NewMemMapFs()
	if write {
		require.NoError(t, afero.WriteFile(fs, "/links.md", []byte(content), 0o644))
	}
	router := gin.New()
	api.SetupRoutes(router, repository.NewLinkRepository(fs, "/links.md", "ACTIVE.md"), 50, logger.NewNop())
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	t.Parallel()

	w := get(newRouter(t, "", false), "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListLinks(t *testing.T) {
	t.Parallel()

	w := get(newRouter(t, table, true), "/api/v1/links")
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.LinksResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 4)
	assert.Equal(t, "AAA", resp.Results[0].Code)
	assert.Equal(t, 4, resp.Summary.Total)
	assert.Equal(t, 2, resp.Summary.Active)
	assert.Equal(t, 1, resp.Summary.Redeemed)
	assert.Equal(t, 1, resp.Summary.Unknown)
	assert.InDelta(t, 50.0, resp.Summary.SuccessRate, 0.001)
	assert.InDelta(t, 100.0, resp.Summary.CreditValue, 0.001)
}

func TestListActiveLinks(t *testing.T) {
	t.Parallel()

	w := get(newRouter(t, table, true), "/api/v1/links/active")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Results []models.LinkStatus `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "AAA", resp.Results[0].Code)
	assert.Equal(t, "DDD", resp.Results[1].Code)
}

func TestGetLink(t *testing.T) {
	t.Parallel()

	router := newRouter(t, table, true)

	w := get(router, "/api/v1/links/bbb")
	require.Equal(t, http.StatusOK, w.Code)
	var got models.LinkStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, models.StatusRedeemed, got.Status)

	w = get(router, "/api/v1/links/ZZZ")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMissingTable(t *testing.T) {
	t.Parallel()

	w := get(newRouter(t, "", false), "/api/v1/links")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
