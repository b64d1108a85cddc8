package database

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"folio/access"
	"folio/models"

	"github.com/google/uuid"
)

// MemoryStore keeps every table in process memory. It implements the same
// methods as DB and is used for tests and for running the server with
// STORE=memory.
type MemoryStore struct {
	mu       sync.Mutex
	projects map[uuid.UUID]models.Project
	skills   map[uuid.UUID]models.Skill
	keys     map[uuid.UUID]models.APIKey
	activity []models.ActivityLog
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		projects: map[uuid.UUID]models.Project{},
		skills:   map[uuid.UUID]models.Skill{},
		keys:     map[uuid.UUID]models.APIKey{},
		now:      time.Now,
	}
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (m *MemoryStore) ListProjects(ctx context.Context, f access.ProjectFilter) ([]models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	projects := []models.Project{}
	for _, p := range m.sortedProjects() {
		if f.Matches(&p) {
			projects = append(projects, cloneProject(p))
		}
	}
	if f.Limit > 0 && len(projects) > f.Limit {
		projects = projects[:f.Limit]
	}
	return projects, nil
}

func (m *MemoryStore) GetProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.projects[projectID]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	p = cloneProject(p)
	return &p, nil
}

func (m *MemoryStore) CreateProject(ctx context.Context, req models.CreateProjectRequest, createdBy string) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	status := req.Status
	if status == "" {
		status = models.ProjectStatusDraft
	}

	maxPriority := 0
	for _, p := range m.projects {
		maxPriority = max(maxPriority, p.Priority)
	}

	now := m.now()
	p := models.Project{
		ID:            uuid.New(),
		Title:         req.Title,
		Description:   req.Description,
		Content:       req.Content,
		Type:          req.Type,
		Status:        status,
		Technologies:  slices.Clone(nonNil(req.Technologies)),
		ThumbnailURL:  req.ThumbnailURL,
		Images:        slices.Clone(nonNil(req.Images)),
		DemoURL:       req.DemoURL,
		GithubURL:     req.GithubURL,
		ClientName:    req.ClientName,
		ClientContact: req.ClientContact,
		Budget:        req.Budget,
		TeamMembers:   slices.Clone(nonNil(req.TeamMembers)),
		IsPrivate:     req.IsPrivate,
		Priority:      maxPriority + 1,
		CreatedBy:     createdBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	m.projects[p.ID] = p

	out := cloneProject(p)
	return &out, nil
}

func (m *MemoryStore) UpdateProject(ctx context.Context, projectID uuid.UUID, req models.UpdateProjectRequest) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.projects[projectID]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	if req.IsEmpty() {
		p = cloneProject(p)
		return &p, nil
	}

	assign(&p.Title, req.Title)
	assign(&p.Description, req.Description)
	assign(&p.Content, req.Content)
	assign(&p.Type, req.Type)
	assign(&p.Status, req.Status)
	if req.Technologies != nil {
		p.Technologies = slices.Clone(nonNil(*req.Technologies))
	}
	if req.ThumbnailURL != nil {
		p.ThumbnailURL = req.ThumbnailURL
	}
	if req.Images != nil {
		p.Images = slices.Clone(nonNil(*req.Images))
	}
	if req.DemoURL != nil {
		p.DemoURL = req.DemoURL
	}
	if req.GithubURL != nil {
		p.GithubURL = req.GithubURL
	}
	if req.ClientName != nil {
		p.ClientName = req.ClientName
	}
	if req.ClientContact != nil {
		p.ClientContact = req.ClientContact
	}
	if req.Budget != nil {
		p.Budget = req.Budget
	}
	if req.TeamMembers != nil {
		p.TeamMembers = slices.Clone(nonNil(*req.TeamMembers))
	}
	assign(&p.IsPrivate, req.IsPrivate)
	assign(&p.Priority, req.Priority)
	p.UpdatedAt = m.now()
	m.projects[projectID] = p

	out := cloneProject(p)
	return &out, nil
}

func (m *MemoryStore) DeleteProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.projects[projectID]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	delete(m.projects, projectID)
	return &p, nil
}

// ReorderProjects checks every id before writing, so a failed reorder
// leaves priorities untouched.
func (m *MemoryStore) ReorderProjects(ctx context.Context, ids []uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, id := range ids {
		if _, ok := m.projects[id]; !ok {
			return &ReorderError{FailedIndex: i, Total: len(ids), ID: id, Err: ErrNotFound}
		}
	}

	now := m.now()
	for _, a := range priorityAssignments(ids) {
		p := m.projects[a.ID]
		p.Priority = a.Priority
		p.UpdatedAt = now
		m.projects[a.ID] = p
	}
	return nil
}

func (m *MemoryStore) ProjectStats(ctx context.Context) (*models.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := newStats()
	for _, p := range m.projects {
		stats.add(p.Type, p.Status, 1)
	}
	stats.TotalSkills = len(m.skills)
	return &stats.Stats, nil
}

func (m *MemoryStore) ListSkills(ctx context.Context, category string) ([]models.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	skills := []models.Skill{}
	for _, s := range m.skills {
		if category == "" || s.Category == category {
			skills = append(skills, s)
		}
	}
	slices.SortFunc(skills, func(a, b models.Skill) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return skills, nil
}

func (m *MemoryStore) CreateSkill(ctx context.Context, req models.CreateSkillRequest) (*models.Skill, error) {
	if req.Level < 1 || req.Level > 5 {
		return nil, &ValidationError{Err: fmt.Errorf("level must be between 1 and 5")}
	}
	if access.ParseCategory(req.Category) == "" {
		return nil, &ValidationError{Err: fmt.Errorf("unknown category %q", req.Category)}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s := models.Skill{
		ID:        uuid.New(),
		Name:      req.Name,
		Category:  req.Category,
		Level:     req.Level,
		IconURL:   req.IconURL,
		CreatedAt: m.now(),
	}
	m.skills[s.ID] = s
	return &s, nil
}

func (m *MemoryStore) GetActiveAPIKey(ctx context.Context, key string) (*models.APIKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, k := range m.keys {
		if k.Key == key && k.IsActive {
			k.Permissions = slices.Clone(k.Permissions)
			return &k, nil
		}
	}
	return nil, ErrInvalidAPIKey
}

func (m *MemoryStore) TouchAPIKey(ctx context.Context, keyID uuid.UUID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k, ok := m.keys[keyID]
	if !ok {
		return fmt.Errorf("API key %s: %w", keyID, ErrNotFound)
	}
	k.LastUsedAt = &at
	m.keys[keyID] = k
	return nil
}

func (m *MemoryStore) CreateAPIKey(ctx context.Context, name string, permissions []string) (*models.APIKey, error) {
	if len(permissions) == 0 {
		permissions = DefaultPermissions
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	k := models.APIKey{
		ID:          uuid.New(),
		Name:        name,
		Key:         generateAPIKey(),
		Permissions: slices.Clone(permissions),
		IsActive:    true,
		CreatedAt:   m.now(),
	}
	m.keys[k.ID] = k
	return &k, nil
}

func (m *MemoryStore) SetAPIKeyActive(ctx context.Context, keyID uuid.UUID, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k, ok := m.keys[keyID]
	if !ok {
		return fmt.Errorf("API key %s: %w", keyID, ErrNotFound)
	}
	k.IsActive = active
	m.keys[keyID] = k
	return nil
}

// APIKey returns the stored key by id, for inspection.
func (m *MemoryStore) APIKey(keyID uuid.UUID) (models.APIKey, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k, ok := m.keys[keyID]
	return k, ok
}

func (m *MemoryStore) InsertActivity(ctx context.Context, entry models.ActivityLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = m.now()
	m.activity = append(m.activity, entry)
	return nil
}

// Activity returns a copy of the audit trail in insertion order.
func (m *MemoryStore) Activity() []models.ActivityLog {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.activity)
}

// sortedProjects mirrors ORDER BY priority ASC, created_at ASC. Callers
// hold m.mu.
func (m *MemoryStore) sortedProjects() []models.Project {
	out := make([]models.Project, 0, len(m.projects))
	for _, p := range m.projects {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b models.Project) int {
		if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
			return c
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return out
}

func cloneProject(p models.Project) models.Project {
	p.Technologies = slices.Clone(p.Technologies)
	p.Images = slices.Clone(p.Images)
	p.TeamMembers = slices.Clone(p.TeamMembers)
	return p
}

func assign[T any](dst *T, value *T) {
	if value != nil {
		*dst = *value
	}
}
