package handlers

import (
	"net/http"

	"folio/access"
	"folio/models"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) ListSkills(c *gin.Context) {
	category := access.ParseCategory(c.Query("category"))

	skills, err := h.store.ListSkills(c.Request.Context(), category)
	if err != nil {
		h.respondError(c, err, "failed to list skills")
		return
	}

	c.JSON(http.StatusOK, models.SkillsResponse{
		Skills: skills,
		Total:  len(skills),
	})
}

func (h *Handlers) CreateSkill(c *gin.Context) {
	var req models.CreateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	skill, err := h.store.CreateSkill(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "failed to create skill")
		return
	}

	h.recordActivity(c, models.ActionCreate, models.ResourceSkill, skill.ID,
		map[string]any{"name": skill.Name})

	c.JSON(http.StatusCreated, models.SkillResponse{Skill: *skill})
}
