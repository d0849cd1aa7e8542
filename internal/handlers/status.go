package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/forgeops/buildboard/internal/db"
)

type StatusHandler struct {
	DB      *gorm.DB
	Version string
	Start   time.Time
}

func NewStatusHandler(gdb *gorm.DB, version string, start time.Time) *StatusHandler {
	return &StatusHandler{DB: gdb, Version: version, Start: start}
}

// GET /status
func (h *StatusHandler) Status(c *gin.Context) {
	dbOK := db.Ping(h.DB) == nil
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"version":  h.Version,
		"uptime_s": int64(time.Since(h.Start).Seconds()),
		"db_ok":    dbOK,
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}
