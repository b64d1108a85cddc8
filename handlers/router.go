package handlers

import (
	"folio/middleware"
	"folio/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// RouterConfig holds the collaborators the HTTP surface is built from.
type RouterConfig struct {
	Store    Store
	Keys     middleware.KeyStore
	Sessions middleware.SessionVerifier
	Logger   *logrus.Logger
}

// NewRouter wires every route. Reads accept a session or an API key;
// mutations require a session.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(cfg.Logger))

	h := New(cfg.Store, cfg.Logger)

	read := middleware.Authenticate(cfg.Keys, cfg.Sessions, cfg.Logger)
	admin := middleware.RequireSession(cfg.Sessions)
	readProjects := middleware.RequirePermission(models.PermissionReadProjects)
	readSkills := middleware.RequirePermission(models.PermissionReadSkills)

	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	projects := r.Group("/projects")
	projects.GET("", read, readProjects, h.ListProjects)
	projects.POST("", admin, h.CreateProject)
	projects.PUT("/order", admin, h.ReorderProjects)
	projects.GET("/:id", read, readProjects, h.GetProject)
	projects.PUT("/:id", admin, h.UpdateProject)
	projects.DELETE("/:id", admin, h.DeleteProject)

	skills := r.Group("/skills")
	skills.GET("", read, readSkills, h.ListSkills)
	skills.POST("", admin, h.CreateSkill)

	r.GET("/stats", admin, h.Stats)

	return r
}
