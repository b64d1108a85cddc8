package models

import (
	"time"

	"github.com/google/uuid"
)

var SkillCategories = []string{"frontend", "backend", "database", "devops", "design", "other"}

type Skill struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Category  string    `json:"category" db:"category"`
	Level     int       `json:"level" db:"level"`
	IconURL   *string   `json:"icon_url,omitempty" db:"icon_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CreateSkillRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=255"`
	Category string  `json:"category" binding:"required,oneof=frontend backend database devops design other"`
	Level    int     `json:"level" binding:"required,min=1,max=5"`
	IconURL  *string `json:"icon_url"`
}

type SkillsResponse struct {
	Skills []Skill `json:"skills"`
	Total  int     `json:"total"`
}

type SkillResponse struct {
	Skill Skill `json:"skill"`
}
