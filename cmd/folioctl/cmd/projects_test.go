package cmd

import (
	"bytes"
	"context"
	"testing"

	"folio/database"
	"folio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOrder(t *testing.T, titles ...string) *database.MemoryStore {
	t.Helper()
	store := database.NewMemoryStore()
	for _, title := range titles {
		_, err := store.CreateProject(context.Background(), models.CreateProjectRequest{
			Title: title,
			Type:  models.ProjectTypeClient,
		}, "admin")
		require.NoError(t, err)
	}
	return store
}

func titles(projects []models.Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.Title
	}
	return out
}

func TestMoveProject(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		expected []string
		moved    bool
	}{
		{name: "last to first", from: 3, to: 1, expected: []string{"C", "A", "B"}, moved: true},
		{name: "first to last", from: 1, to: 3, expected: []string{"B", "C", "A"}, moved: true},
		{name: "same position", from: 2, to: 2, expected: []string{"A", "B", "C"}, moved: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := seedOrder(t, "A", "B", "C")

			projects, moved, err := moveProject(context.Background(), store, tt.from, tt.to)
			require.NoError(t, err)

			assert.Equal(t, tt.moved, moved)
			assert.Equal(t, tt.expected, titles(projects))
			for i, p := range projects {
				assert.Equal(t, i+1, p.Priority)
			}
			if tt.moved {
				require.Len(t, store.Activity(), 1)
				assert.Equal(t, models.ActionReorder, store.Activity()[0].Action)
			} else {
				assert.Empty(t, store.Activity())
			}
		})
	}
}

func TestMoveProject_OutOfRange(t *testing.T) {
	store := seedOrder(t, "A", "B")

	for _, pos := range [][2]int{{0, 1}, {1, 3}, {-1, 2}} {
		_, _, err := moveProject(context.Background(), store, pos[0], pos[1])
		assert.Error(t, err, "from=%d to=%d", pos[0], pos[1])
	}
}

func TestPrintProjects(t *testing.T) {
	store := seedOrder(t, "Alpha", "Beta")
	projects, _, err := moveProject(context.Background(), store, 2, 1)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printProjects(&buf, projects))

	out := buf.String()
	assert.Contains(t, out, "POS")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Beta")), bytes.Index(buf.Bytes(), []byte("Alpha")))
}

func TestValidPermission(t *testing.T) {
	assert.True(t, validPermission(models.PermissionReadProjects))
	assert.True(t, validPermission(models.PermissionReadSkills))
	assert.False(t, validPermission("write:projects"))
}
