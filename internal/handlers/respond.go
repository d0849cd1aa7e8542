package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/forgeops/buildboard/internal/models"
)

const (
	defaultPage    = 1
	defaultPerPage = 10
)

// respondError renders the single JSON error envelope used by every
// non-2xx response.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": code, "message": message})
}

// pageParams parses page/per_page query values. Missing, non-numeric and
// non-positive values fall back to the defaults; anything beyond that is
// left to the store's offset/limit semantics.
func pageParams(c *gin.Context) (page, perPage int) {
	page = defaultPage
	perPage = defaultPerPage
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.Query("per_page")); err == nil && v > 0 {
		perPage = v
	}
	return page, perPage
}

// idParam parses a numeric path id. Non-numeric ids behave like absent
// resources.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func isoUTC(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func projectJSON(p *models.Project) gin.H {
	return gin.H{
		"id":                p.ID,
		"name":              p.Name,
		"repo":              p.Repo,
		"last_build_status": p.LastBuildStatus,
		"created_at":        isoUTC(p.CreatedAt),
	}
}

func buildJSON(b *models.Build) gin.H {
	return gin.H{
		"id":         b.ID,
		"project_id": b.ProjectID,
		"status":     b.Status,
		"duration_s": b.DurationS,
		"logs":       b.Logs,
		"created_at": isoUTC(b.CreatedAt),
	}
}
