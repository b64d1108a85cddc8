package database

import (
	"context"
	"strings"
	"testing"

	"folio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAPIKey(t *testing.T) {
	a, b := generateAPIKey(), generateAPIKey()

	assert.True(t, strings.HasPrefix(a, "folio_"))
	assert.Len(t, a, len("folio_")+32)
	assert.NotEqual(t, a, b)
}

func TestDB_ListAPIKeys(t *testing.T) {
	db := GetTestDB(t)
	CleanupTestDB(t, db)
	ctx := context.Background()

	first, err := db.CreateAPIKey(ctx, "site", nil)
	require.NoError(t, err)
	second, err := db.CreateAPIKey(ctx, "cv", []string{models.PermissionReadSkills})
	require.NoError(t, err)
	require.NoError(t, db.SetAPIKeyActive(ctx, first.ID, false))

	keys, err := db.ListAPIKeys(ctx)
	require.NoError(t, err)
	require.Len(t, keys, 2)

	byID := map[string]models.APIKey{}
	for _, k := range keys {
		byID[k.ID.String()] = k
	}
	assert.False(t, byID[first.ID.String()].IsActive)
	assert.ElementsMatch(t, DefaultPermissions, byID[first.ID.String()].Permissions)
	assert.True(t, byID[second.ID.String()].IsActive)
	assert.Equal(t, []string{models.PermissionReadSkills}, byID[second.ID.String()].Permissions)
}
