package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/forgeops/buildboard/internal/auth"
	"github.com/forgeops/buildboard/internal/build"
)

// Register wires every route onto r. Reads are public; mutations sit behind
// the bearer-token middleware.
func Register(r *gin.Engine, gdb *gorm.DB, secret, version string, start time.Time) {
	login := NewLoginHandler(gdb, secret)
	status := NewStatusHandler(gdb, version, start)
	projects := NewProjectHandler(gdb)
	builds := NewBuildHandler(gdb, build.NewSimulator())

	authed := auth.RequireToken(secret)

	r.POST("/login", login.Login)
	r.GET("/status", status.Status)

	r.GET("/projects", projects.ListProjects)
	r.POST("/projects", authed, projects.CreateProject)
	r.GET("/projects/:id", projects.GetProject)
	r.DELETE("/projects/:id", authed, projects.DeleteProject)

	r.POST("/projects/:id/build", authed, builds.TriggerBuild)
	r.GET("/projects/:id/builds", builds.ListBuilds)
}
