package handlers

import (
	"context"
	"errors"
	"net/http"

	"folio/access"
	"folio/database"
	"folio/metrics"
	"folio/middleware"
	"folio/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Store is everything the handlers need from persistence. Both
// *database.DB and *database.MemoryStore satisfy it.
type Store interface {
	Ping(ctx context.Context) error

	ListProjects(ctx context.Context, f access.ProjectFilter) ([]models.Project, error)
	GetProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error)
	CreateProject(ctx context.Context, req models.CreateProjectRequest, createdBy string) (*models.Project, error)
	UpdateProject(ctx context.Context, projectID uuid.UUID, req models.UpdateProjectRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error)
	ReorderProjects(ctx context.Context, ids []uuid.UUID) error
	ProjectStats(ctx context.Context) (*models.Stats, error)

	ListSkills(ctx context.Context, category string) ([]models.Skill, error)
	CreateSkill(ctx context.Context, req models.CreateSkillRequest) (*models.Skill, error)

	InsertActivity(ctx context.Context, entry models.ActivityLog) error
}

type Handlers struct {
	store Store
	log   *logrus.Logger
}

func New(store Store, logger *logrus.Logger) *Handlers {
	return &Handlers{store: store, log: logger}
}

func (h *Handlers) Health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		h.log.WithError(err).Error("Health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handlers) Stats(c *gin.Context) {
	stats, err := h.store.ProjectStats(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "failed to load stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// respondError maps store errors onto status codes. Not-found and
// validation errors are the caller's; anything else is logged and hidden.
func (h *Handlers) respondError(c *gin.Context, err error, msg string) {
	var validationErr *database.ValidationError
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage(c)})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	default:
		h.log.WithError(err).WithField("path", c.FullPath()).Error(msg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

func notFoundMessage(c *gin.Context) string {
	if c.Param("id") != "" {
		return "project not found"
	}
	return "not found"
}

// recordActivity writes an audit entry. Failures are logged and counted
// but never reach the client.
func (h *Handlers) recordActivity(c *gin.Context, action, resourceType string, resourceID uuid.UUID, details map[string]any) {
	principal, _ := middleware.PrincipalFrom(c)

	entry := models.ActivityLog{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		UserID:       principal.UserID,
		Details:      details,
	}
	if err := h.store.InsertActivity(c.Request.Context(), entry); err != nil {
		metrics.ActivityLogFailuresTotal.Inc()
		h.log.WithError(err).WithFields(logrus.Fields{
			"action":   action,
			"resource": resourceType,
			"id":       resourceID,
		}).Warn("Failed to write activity log")
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return uuid.Nil, false
	}
	return id, true
}
