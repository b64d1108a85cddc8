package access

import (
	"testing"

	"folio/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func apiKey() Principal {
	return APIKeyPrincipal(&models.APIKey{
		ID:          uuid.New(),
		Permissions: []string{models.PermissionReadProjects},
		IsActive:    true,
	})
}

func project(typ, status string, private bool) *models.Project {
	return &models.Project{ID: uuid.New(), Type: typ, Status: status, IsPrivate: private}
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "positive", input: "2", expected: 2},
		{name: "empty", input: "", expected: 0},
		{name: "not a number", input: "abc", expected: 0},
		{name: "zero", input: "0", expected: 0},
		{name: "negative", input: "-5", expected: 0},
		{name: "padded", input: " 7 ", expected: 7},
		{name: "float", input: "1.5", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLimit(tt.input))
		})
	}
}

func TestParseProjectQuery(t *testing.T) {
	q := ParseProjectQuery("client", "draft", "10")
	assert.Equal(t, ProjectQuery{Type: "client", Status: "draft", Limit: 10}, q)

	q = ParseProjectQuery("secret", "archived", "abc")
	assert.Equal(t, ProjectQuery{}, q)
}

func TestParseCategory(t *testing.T) {
	assert.Equal(t, "devops", ParseCategory("devops"))
	assert.Equal(t, "", ParseCategory("cooking"))
	assert.Equal(t, "", ParseCategory(""))
}

func TestProjectFilterFor_Admin(t *testing.T) {
	f := ProjectFilterFor(AdminSession("user-1"), ProjectQuery{Type: "individual", Status: "draft", Limit: 3})

	assert.Equal(t, ProjectFilter{Type: "individual", Status: "draft", Limit: 3}, f)
	assert.True(t, f.Matches(project("individual", "draft", true)))
}

func TestProjectFilterFor_APIKey(t *testing.T) {
	tests := []struct {
		name     string
		query    ProjectQuery
		expected ProjectFilter
	}{
		{
			name:     "no filters",
			query:    ProjectQuery{},
			expected: ProjectFilter{Status: "published", HidePrivateIndividual: true},
		},
		{
			name:     "caller status is overridden",
			query:    ProjectQuery{Status: "draft"},
			expected: ProjectFilter{Status: "published", HidePrivateIndividual: true},
		},
		{
			name:     "individual type",
			query:    ProjectQuery{Type: "individual"},
			expected: ProjectFilter{Type: "individual", Status: "published", NonPrivateOnly: true},
		},
		{
			name:     "client type",
			query:    ProjectQuery{Type: "client", Limit: 2},
			expected: ProjectFilter{Type: "client", Status: "published", HidePrivateIndividual: true, Limit: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ProjectFilterFor(apiKey(), tt.query))
		})
	}
}

func TestProjectFilter_APIKeyNeverSeesRestrictedRows(t *testing.T) {
	types := append([]string{""}, models.ProjectTypes...)
	statuses := append([]string{""}, models.ProjectStatuses...)

	for _, qt := range types {
		for _, qs := range statuses {
			f := ProjectFilterFor(apiKey(), ProjectQuery{Type: qt, Status: qs})

			for _, rowStatus := range models.ProjectStatuses {
				assert.False(t, f.Matches(project("individual", rowStatus, true)),
					"private individual leaked for type=%q status=%q", qt, qs)
			}
			for _, rowType := range models.ProjectTypes {
				assert.False(t, f.Matches(project(rowType, "draft", false)),
					"draft leaked for type=%q status=%q", qt, qs)
			}
		}
	}
}

func TestProjectFilter_PublishedNonIndividualAlwaysVisible(t *testing.T) {
	for _, typ := range []string{"collaboration", "client"} {
		for _, private := range []bool{false, true} {
			p := project(typ, "published", private)
			assert.True(t, ProjectFilterFor(apiKey(), ProjectQuery{}).Matches(p))
			assert.True(t, ProjectFilterFor(apiKey(), ProjectQuery{Type: typ}).Matches(p))
			assert.True(t, CanView(apiKey(), p))
		}
	}
}

func TestCanView(t *testing.T) {
	tests := []struct {
		name      string
		principal Principal
		project   *models.Project
		expected  bool
	}{
		{name: "admin sees draft", principal: AdminSession("u"), project: project("client", "draft", false), expected: true},
		{name: "admin sees private", principal: AdminSession("u"), project: project("individual", "published", true), expected: true},
		{name: "key hides draft", principal: apiKey(), project: project("client", "draft", false), expected: false},
		{name: "key hides private individual", principal: apiKey(), project: project("individual", "published", true), expected: false},
		{name: "key sees public individual", principal: apiKey(), project: project("individual", "published", false), expected: true},
		{name: "key sees published client", principal: apiKey(), project: project("client", "published", false), expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanView(tt.principal, tt.project))
		})
	}
}
