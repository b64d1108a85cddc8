package database

import (
	"fmt"
	"slices"

	"folio/models"

	"github.com/google/uuid"
)

// ReorderError indicates which update failed during a reorder.
type ReorderError struct {
	FailedIndex int
	Total       int
	ID          uuid.UUID
	Err         error
}

func (e *ReorderError) Error() string {
	return fmt.Sprintf("failed to set priority for project %s at index %d/%d: %v",
		e.ID, e.FailedIndex, e.Total, e.Err)
}

func (e *ReorderError) Unwrap() error {
	return e.Err
}

type priorityAssignment struct {
	ID       uuid.UUID
	Priority int
}

// priorityAssignments numbers ids 1..N in the given order.
func priorityAssignments(ids []uuid.UUID) []priorityAssignment {
	out := make([]priorityAssignment, len(ids))
	for i, id := range ids {
		out[i] = priorityAssignment{ID: id, Priority: i + 1}
	}
	return out
}

// ValidateOrder rejects an empty order or one that repeats an id.
func ValidateOrder(ids []uuid.UUID) error {
	if len(ids) == 0 {
		return &ValidationError{Err: fmt.Errorf("order must contain at least one id")}
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return &ValidationError{Err: fmt.Errorf("duplicate id %s in order", id)}
		}
		seen[id] = struct{}{}
	}
	return nil
}

// MoveItem returns a copy of ids with the element at from moved to to.
// The second result is false when nothing changes: same position or an
// index out of range.
func MoveItem(ids []uuid.UUID, from, to int) ([]uuid.UUID, bool) {
	if from == to || from < 0 || to < 0 || from >= len(ids) || to >= len(ids) {
		return ids, false
	}

	moved := ids[from]
	out := slices.Delete(slices.Clone(ids), from, from+1)
	out = slices.Insert(out, to, moved)
	return out, true
}

// ProjectIDs extracts ids in list order.
func ProjectIDs(projects []models.Project) []uuid.UUID {
	ids := make([]uuid.UUID, len(projects))
	for i := range projects {
		ids[i] = projects[i].ID
	}
	return ids
}

type statsBuilder struct {
	models.Stats
}

func newStats() *statsBuilder {
	return &statsBuilder{Stats: models.Stats{
		ProjectsByType: map[string]int{
			models.ProjectTypeIndividual:    0,
			models.ProjectTypeCollaboration: 0,
			models.ProjectTypeClient:        0,
		},
	}}
}

func (s *statsBuilder) add(typ, status string, n int) {
	s.TotalProjects += n
	s.ProjectsByType[typ] += n
	switch status {
	case models.ProjectStatusPublished:
		s.PublishedProjects += n
	case models.ProjectStatusDraft:
		s.DraftProjects += n
	}
}
