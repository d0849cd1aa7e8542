package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/forgeops/buildboard/internal/db"
	"github.com/forgeops/buildboard/internal/metrics"
	"github.com/forgeops/buildboard/internal/models"
)

type ProjectHandler struct {
	DB *gorm.DB
}

func NewProjectHandler(gdb *gorm.DB) *ProjectHandler {
	return &ProjectHandler{DB: gdb}
}

type createProjectRequest struct {
	Name string `json:"name"`
	Repo string `json:"repo"`
}

// GET /projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	page, perPage := pageParams(c)
	result, err := db.ListProjects(h.DB, page, perPage)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	items := make([]gin.H, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, projectJSON(&result.Items[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": result.Total,
		"page":  result.Page,
		"pages": result.Pages,
	})
}

// POST /projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", "name and repo required")
		return
	}
	var problems []string
	if strings.TrimSpace(req.Name) == "" {
		problems = append(problems, "name is required and must be a non-empty string")
	}
	if strings.TrimSpace(req.Repo) == "" {
		problems = append(problems, "repo is required and must be a non-empty string")
	}
	if len(problems) > 0 {
		respondError(c, http.StatusBadRequest, "validation_error", strings.Join(problems, ", "))
		return
	}

	if _, err := db.GetProjectByName(h.DB, req.Name); err == nil {
		respondError(c, http.StatusConflict, "conflict", "project name already exists")
		return
	}

	project := models.Project{
		Name:            req.Name,
		Repo:            req.Repo,
		LastBuildStatus: models.StatusNone,
	}
	if err := db.CreateProject(h.DB, &project); err != nil {
		// The pre-insert lookup races with concurrent creates; the unique
		// constraint is the real arbiter.
		if isUniqueViolation(err) {
			respondError(c, http.StatusConflict, "conflict", "project name already exists")
			return
		}
		respondError(c, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	metrics.ObserveProjectCreated()
	c.JSON(http.StatusCreated, projectJSON(&project))
}

// GET /projects/:id
func (h *ProjectHandler) GetProject(c *gin.Context) {
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
	c.JSON(http.StatusOK, projectJSON(project))
}

// DELETE /projects/:id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
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
	if err := db.DeleteProject(h.DB, id); err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry")
}
