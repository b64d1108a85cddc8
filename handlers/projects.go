package handlers

import (
	"errors"
	"net/http"

	"folio/access"
	"folio/database"
	"folio/metrics"
	"folio/middleware"
	"folio/models"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) ListProjects(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)
	query := access.ParseProjectQuery(c.Query("type"), c.Query("status"), c.Query("limit"))

	projects, err := h.store.ListProjects(c.Request.Context(), access.ProjectFilterFor(principal, query))
	if err != nil {
		h.respondError(c, err, "failed to list projects")
		return
	}

	c.JSON(http.StatusOK, models.ProjectsResponse{
		Projects: projects,
		Total:    len(projects),
	})
}

// GetProject answers 404 both for missing rows and for rows the caller is
// not allowed to see.
func (h *Handlers) GetProject(c *gin.Context) {
	projectID, ok := parseID(c)
	if !ok {
		return
	}

	project, err := h.store.GetProject(c.Request.Context(), projectID)
	if err != nil {
		h.respondError(c, err, "failed to get project")
		return
	}

	principal, _ := middleware.PrincipalFrom(c)
	if !access.CanView(principal, project) {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	c.JSON(http.StatusOK, models.ProjectResponse{Project: *project})
}

func (h *Handlers) CreateProject(c *gin.Context) {
	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	principal, _ := middleware.PrincipalFrom(c)
	project, err := h.store.CreateProject(c.Request.Context(), req, principal.UserID)
	if err != nil {
		h.respondError(c, err, "failed to create project")
		return
	}

	h.recordActivity(c, models.ActionCreate, models.ResourceProject, project.ID,
		map[string]any{"title": project.Title})

	c.JSON(http.StatusCreated, models.ProjectResponse{Project: *project})
}

func (h *Handlers) UpdateProject(c *gin.Context) {
	projectID, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.store.UpdateProject(c.Request.Context(), projectID, req)
	if err != nil {
		h.respondError(c, err, "failed to update project")
		return
	}

	h.recordActivity(c, models.ActionUpdate, models.ResourceProject, project.ID,
		map[string]any{"title": project.Title})

	c.JSON(http.StatusOK, models.ProjectResponse{Project: *project})
}

func (h *Handlers) DeleteProject(c *gin.Context) {
	projectID, ok := parseID(c)
	if !ok {
		return
	}

	project, err := h.store.DeleteProject(c.Request.Context(), projectID)
	if err != nil {
		h.respondError(c, err, "failed to delete project")
		return
	}

	h.recordActivity(c, models.ActionDelete, models.ResourceProject, projectID,
		map[string]any{"title": project.Title})

	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}

// ReorderProjects persists priority = position+1 for the submitted order.
// When persisting fails the response carries the authoritative order so
// the client can resync instead of trusting its local state.
func (h *Handlers) ReorderProjects(c *gin.Context) {
	var req models.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := database.ValidateOrder(req.IDs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	all := access.ProjectFilter{}

	if err := h.store.ReorderProjects(ctx, req.IDs); err != nil {
		metrics.ReordersTotal.WithLabelValues("failed").Inc()
		h.log.WithError(err).WithField("count", len(req.IDs)).Warn("Reorder failed")

		status, msg := http.StatusInternalServerError, "failed to reorder projects"
		if errors.Is(err, database.ErrNotFound) {
			status, msg = http.StatusNotFound, "project not found"
		}

		body := gin.H{"error": msg}
		if current, listErr := h.store.ListProjects(ctx, all); listErr == nil {
			body["projects"] = current
		} else {
			h.log.WithError(listErr).Error("Failed to reload projects after reorder failure")
		}
		c.JSON(status, body)
		return
	}

	metrics.ReordersTotal.WithLabelValues("ok").Inc()
	h.recordActivity(c, models.ActionReorder, models.ResourceProject, req.IDs[0],
		map[string]any{"ids": req.IDs})

	projects, err := h.store.ListProjects(ctx, all)
	if err != nil {
		h.respondError(c, err, "failed to list projects")
		return
	}

	c.JSON(http.StatusOK, models.ProjectsResponse{
		Projects: projects,
		Total:    len(projects),
	})
}
