package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProjectTypeIndividual    = "individual"
	ProjectTypeCollaboration = "collaboration"
	ProjectTypeClient        = "client"

	ProjectStatusDraft     = "draft"
	ProjectStatusPublished = "published"
)

var (
	ProjectTypes    = []string{ProjectTypeIndividual, ProjectTypeCollaboration, ProjectTypeClient}
	ProjectStatuses = []string{ProjectStatusDraft, ProjectStatusPublished}
)

// Project is a portfolio entry managed from the dashboard.
// Priority defines display order (ascending). IsPrivate only has meaning
// for individual projects; it hides them from API key consumers.
type Project struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Description   string    `json:"description" db:"description"`
	Content       string    `json:"content" db:"content"`
	Type          string    `json:"type" db:"type"`
	Status        string    `json:"status" db:"status"`
	Technologies  []string  `json:"technologies" db:"technologies"`
	ThumbnailURL  *string   `json:"thumbnail_url,omitempty" db:"thumbnail_url"`
	Images        []string  `json:"images" db:"images"`
	DemoURL       *string   `json:"demo_url,omitempty" db:"demo_url"`
	GithubURL     *string   `json:"github_url,omitempty" db:"github_url"`
	ClientName    *string   `json:"client_name,omitempty" db:"client_name"`
	ClientContact *string   `json:"client_contact,omitempty" db:"client_contact"`
	Budget        *float64  `json:"budget,omitempty" db:"budget"`
	TeamMembers   []string  `json:"team_members" db:"team_members"`
	IsPrivate     bool      `json:"is_private" db:"is_private"`
	Priority      int       `json:"priority" db:"priority"`
	CreatedBy     string    `json:"created_by" db:"created_by"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// CreateProjectRequest is the payload for creating a project.
// Priority and CreatedBy are assigned by the server.
type CreateProjectRequest struct {
	Title         string   `json:"title" binding:"required,min=1,max=255"`
	Description   string   `json:"description"`
	Content       string   `json:"content"`
	Type          string   `json:"type" binding:"required,oneof=individual collaboration client"`
	Status        string   `json:"status" binding:"omitempty,oneof=draft published"`
	Technologies  []string `json:"technologies"`
	ThumbnailURL  *string  `json:"thumbnail_url"`
	Images        []string `json:"images"`
	DemoURL       *string  `json:"demo_url"`
	GithubURL     *string  `json:"github_url"`
	ClientName    *string  `json:"client_name"`
	ClientContact *string  `json:"client_contact"`
	Budget        *float64 `json:"budget" binding:"omitempty,gte=0"`
	TeamMembers   []string `json:"team_members"`
	IsPrivate     bool     `json:"is_private"`
}

// UpdateProjectRequest is a partial update: nil fields are left untouched.
type UpdateProjectRequest struct {
	Title         *string   `json:"title" binding:"omitempty,min=1,max=255"`
	Description   *string   `json:"description"`
	Content       *string   `json:"content"`
	Type          *string   `json:"type" binding:"omitempty,oneof=individual collaboration client"`
	Status        *string   `json:"status" binding:"omitempty,oneof=draft published"`
	Technologies  *[]string `json:"technologies"`
	ThumbnailURL  *string   `json:"thumbnail_url"`
	Images        *[]string `json:"images"`
	DemoURL       *string   `json:"demo_url"`
	GithubURL     *string   `json:"github_url"`
	ClientName    *string   `json:"client_name"`
	ClientContact *string   `json:"client_contact"`
	Budget        *float64  `json:"budget" binding:"omitempty,gte=0"`
	TeamMembers   *[]string `json:"team_members"`
	IsPrivate     *bool     `json:"is_private"`
	Priority      *int      `json:"priority" binding:"omitempty,min=1"`
}

// IsEmpty reports whether the request changes nothing.
func (r UpdateProjectRequest) IsEmpty() bool {
	return r.Title == nil && r.Description == nil && r.Content == nil &&
		r.Type == nil && r.Status == nil && r.Technologies == nil &&
		r.ThumbnailURL == nil && r.Images == nil && r.DemoURL == nil &&
		r.GithubURL == nil && r.ClientName == nil && r.ClientContact == nil &&
		r.Budget == nil && r.TeamMembers == nil && r.IsPrivate == nil &&
		r.Priority == nil
}

// ReorderRequest carries the full new order of project ids.
type ReorderRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}

// ProjectsResponse is the standard response format for project listings.
type ProjectsResponse struct {
	Projects []Project `json:"projects"`
	Total    int       `json:"total"`
}

// ProjectResponse wraps a single project.
type ProjectResponse struct {
	Project Project `json:"project"`
}
