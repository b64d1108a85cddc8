package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionReorder = "reorder"

	ResourceProject = "project"
	ResourceSkill   = "skill"
	ResourceAPIKey  = "api_key"
)

// ActivityLog is an append-only audit record of an admin mutation.
type ActivityLog struct {
	ID           uuid.UUID      `json:"id"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type"`
	ResourceID   uuid.UUID      `json:"resource_id"`
	UserID       string         `json:"user_id"`
	Details      map[string]any `json:"details,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// Stats summarizes dashboard counts.
type Stats struct {
	TotalProjects     int            `json:"total_projects"`
	PublishedProjects int            `json:"published_projects"`
	DraftProjects     int            `json:"draft_projects"`
	TotalSkills       int            `json:"total_skills"`
	ProjectsByType    map[string]int `json:"projects_by_type"`
}
