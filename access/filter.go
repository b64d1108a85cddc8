package access

import (
	"slices"
	"strconv"
	"strings"

	"folio/models"
)

// ProjectQuery holds the caller-supplied project list filters after
// normalization. Zero values mean "no filter".
type ProjectQuery struct {
	Type   string
	Status string
	Limit  int
}

// ParseProjectQuery normalizes raw query parameters. Unknown type or
// status values and non-positive or malformed limits are dropped rather
// than reported.
func ParseProjectQuery(typ, status, limit string) ProjectQuery {
	q := ProjectQuery{Limit: ParseLimit(limit)}
	if slices.Contains(models.ProjectTypes, typ) {
		q.Type = typ
	}
	if slices.Contains(models.ProjectStatuses, status) {
		q.Status = status
	}
	return q
}

// ParseLimit returns the positive integer in raw, or 0 for no limit.
func ParseLimit(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

// ParseCategory returns raw if it names a skill category, "" otherwise.
func ParseCategory(raw string) string {
	if slices.Contains(models.SkillCategories, raw) {
		return raw
	}
	return ""
}

// ProjectFilter is the effective predicate for a project query: the
// caller's filters plus whatever the principal forces on top.
type ProjectFilter struct {
	Type   string
	Status string

	// NonPrivateOnly requires is_private = false.
	NonPrivateOnly bool
	// HidePrivateIndividual requires type <> 'individual' OR is_private = false.
	HidePrivateIndividual bool

	Limit int
}

// ProjectFilterFor builds the predicate a principal is allowed to run.
//
// Admin sessions see everything the caller asked for. API keys only ever
// see published rows, and never a private individual project: when the
// caller filters on individual the predicate is is_private = false,
// otherwise the union (type <> individual) OR (is_private = false).
func ProjectFilterFor(p Principal, q ProjectQuery) ProjectFilter {
	f := ProjectFilter{Type: q.Type, Status: q.Status, Limit: q.Limit}
	if !p.IsAPIKey() {
		return f
	}

	f.Status = models.ProjectStatusPublished
	if q.Type == models.ProjectTypeIndividual {
		f.NonPrivateOnly = true
	} else {
		f.HidePrivateIndividual = true
	}
	return f
}

// Matches evaluates the predicate against a single row. Limit is not
// considered.
func (f ProjectFilter) Matches(p *models.Project) bool {
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.NonPrivateOnly && p.IsPrivate {
		return false
	}
	if f.HidePrivateIndividual && p.Type == models.ProjectTypeIndividual && p.IsPrivate {
		return false
	}
	return true
}

// CanView reports whether p may fetch the project by id. Rows that fail
// must be answered as not found.
func CanView(p Principal, project *models.Project) bool {
	return ProjectFilterFor(p, ProjectQuery{}).Matches(project)
}
