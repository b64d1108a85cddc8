package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PermissionReadProjects = "read:projects"
	PermissionReadSkills   = "read:skills"
)

// APIKey grants read access to external consumers.
// Keys are created out-of-band (folioctl) and revoked by clearing IsActive.
type APIKey struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Key         string     `json:"key" db:"key"`
	Permissions []string   `json:"permissions" db:"permissions"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	LastUsedAt  *time.Time `json:"last_used_at,omitempty" db:"last_used_at"`
}
