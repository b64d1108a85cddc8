package access

import (
	"testing"

	"folio/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPrincipalKinds(t *testing.T) {
	admin := AdminSession("user-1")
	assert.True(t, admin.IsAdmin())
	assert.False(t, admin.IsAPIKey())
	assert.Equal(t, "session", admin.Kind.String())

	key := &models.APIKey{ID: uuid.New(), Permissions: []string{models.PermissionReadSkills}}
	p := APIKeyPrincipal(key)
	assert.True(t, p.IsAPIKey())
	assert.Equal(t, key.ID, p.KeyID)
	assert.Equal(t, "api_key", p.Kind.String())
	assert.Equal(t, "unknown", Kind(0).String())
}

func TestPrincipal_HasPermission(t *testing.T) {
	key := &models.APIKey{ID: uuid.New(), Permissions: []string{models.PermissionReadSkills}}
	p := APIKeyPrincipal(key)

	assert.True(t, p.HasPermission(models.PermissionReadSkills))
	assert.False(t, p.HasPermission(models.PermissionReadProjects))
	assert.True(t, AdminSession("u").HasPermission(models.PermissionReadProjects))

	// the principal keeps its own copy
	key.Permissions[0] = models.PermissionReadProjects
	assert.False(t, p.HasPermission(models.PermissionReadProjects))
}
