package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/forgeops/buildboard/internal/build"
	"github.com/forgeops/buildboard/internal/db"
	"github.com/forgeops/buildboard/internal/metrics"
	"github.com/forgeops/buildboard/internal/models"
)

type BuildHandler struct {
	DB  *gorm.DB
	Sim *build.Simulator
}

func NewBuildHandler(gdb *gorm.DB, sim *build.Simulator) *BuildHandler {
	return &BuildHandler{DB: gdb, Sim: sim}
}

// POST /projects/:id/build
//
// Build execution is simulated: the outcome is synthesized and written
// synchronously, and any request body is ignored.
func (h *BuildHandler) TriggerBuild(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		respondError(c, http.StatusNotFound, "not_found", "project not found")
		return
	}
	project, err := db.GetProject(h.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "not_found", "project not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	outcome := h.Sim.Simulate()
	b := models.Build{
		ProjectID: project.ID,
		Status:    outcome.Status,
		DurationS: outcome.DurationS,
		Logs:      outcome.Logs,
	}
	if err := db.CreateBuild(h.DB, &b); err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	metrics.ObserveBuildSimulated(b.Status)
	c.JSON(http.StatusCreated, buildJSON(&b))
}

// GET /projects/:id/builds
func (h *BuildHandler) ListBuilds(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		respondError(c, http.StatusNotFound, "not_found", "project not found")
		return
	}
	if _, err := db.GetProject(h.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "not_found", "project not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	page, perPage := pageParams(c)
	result, err := db.ListBuilds(h.DB, id, page, perPage)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	items := make([]gin.H, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, buildJSON(&result.Items[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": result.Total,
		"page":  result.Page,
		"pages": result.Pages,
	})
}
