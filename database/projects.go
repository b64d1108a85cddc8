package database

import (
	"context"
	"errors"
	"fmt"

	"folio/access"
	"folio/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
)

const projectColumns = `id, title, description, content, type, status, technologies,
	thumbnail_url, images, demo_url, github_url, client_name, client_contact,
	budget, team_members, is_private, priority, created_by, created_at, updated_at`

// ListProjects returns projects matching f ordered by priority ascending.
// The visibility predicates in f are expressed in SQL so that the limit
// applies after filtering.
func (db *DB) ListProjects(ctx context.Context, f access.ProjectFilter) ([]models.Project, error) {
	defer db.timed("ListProjects", logrus.Fields{
		"type": f.Type, "status": f.Status, "limit": f.Limit,
	})()

	qb := NewQueryBuilder()
	if f.Type != "" {
		qb.AddCondition("type", f.Type)
	}
	if f.Status != "" {
		qb.AddCondition("status", f.Status)
	}
	if f.NonPrivateOnly {
		qb.AddCondition("is_private", false)
	}
	if f.HidePrivateIndividual {
		qb.AddRaw("(type <> %s OR is_private = %s)", models.ProjectTypeIndividual, false)
	}
	where := qb.WhereClause()
	limit := qb.LimitClause(f.Limit)

	query := fmt.Sprintf(`
		SELECT %s
		FROM projects
		%s
		ORDER BY priority ASC, created_at ASC
		%s
	`, projectColumns, where, limit)

	rows, err := db.Pool.Query(ctx, query, qb.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows)
}

func (db *DB) GetProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	project, err := scanProject(db.Pool.QueryRow(ctx, query, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return project, nil
}

// CreateProject inserts a project at the end of the current order
// (priority = max + 1).
func (db *DB) CreateProject(ctx context.Context, req models.CreateProjectRequest, createdBy string) (*models.Project, error) {
	defer db.timed("CreateProject", logrus.Fields{"title": req.Title})()

	status := req.Status
	if status == "" {
		status = models.ProjectStatusDraft
	}

	query := `
		INSERT INTO projects (title, description, content, type, status, technologies,
			thumbnail_url, images, demo_url, github_url, client_name, client_contact,
			budget, team_members, is_private, created_by, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			COALESCE((SELECT MAX(priority) FROM projects), 0) + 1)
		RETURNING ` + projectColumns

	project, err := scanProject(db.Pool.QueryRow(ctx, query,
		req.Title, req.Description, req.Content, req.Type, status, nonNil(req.Technologies),
		req.ThumbnailURL, nonNil(req.Images), req.DemoURL, req.GithubURL, req.ClientName,
		req.ClientContact, req.Budget, nonNil(req.TeamMembers), req.IsPrivate, createdBy,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", classify(err))
	}

	db.log.WithFields(logrus.Fields{"id": project.ID, "priority": project.Priority}).Info("Created project")
	return project, nil
}

// UpdateProject applies the non-nil fields of req.
func (db *DB) UpdateProject(ctx context.Context, projectID uuid.UUID, req models.UpdateProjectRequest) (*models.Project, error) {
	if req.IsEmpty() {
		return db.GetProject(ctx, projectID)
	}

	qb := NewQueryBuilder()
	setIf(qb, "title", req.Title)
	setIf(qb, "description", req.Description)
	setIf(qb, "content", req.Content)
	setIf(qb, "type", req.Type)
	setIf(qb, "status", req.Status)
	if req.Technologies != nil {
		qb.AddAssignment("technologies", nonNil(*req.Technologies))
	}
	setIf(qb, "thumbnail_url", req.ThumbnailURL)
	if req.Images != nil {
		qb.AddAssignment("images", nonNil(*req.Images))
	}
	setIf(qb, "demo_url", req.DemoURL)
	setIf(qb, "github_url", req.GithubURL)
	setIf(qb, "client_name", req.ClientName)
	setIf(qb, "client_contact", req.ClientContact)
	setIf(qb, "budget", req.Budget)
	if req.TeamMembers != nil {
		qb.AddAssignment("team_members", nonNil(*req.TeamMembers))
	}
	setIf(qb, "is_private", req.IsPrivate)
	setIf(qb, "priority", req.Priority)
	qb.AddAssignmentExpr("updated_at", "NOW()")
	qb.AddCondition("id", projectID)

	query := fmt.Sprintf(`UPDATE projects %s %s RETURNING %s`,
		qb.SetClause(), qb.WhereClause(), projectColumns)

	project, err := scanProject(db.Pool.QueryRow(ctx, query, qb.Args()...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update project: %w", classify(err))
	}

	db.log.WithField("id", project.ID).Info("Updated project")
	return project, nil
}

// DeleteProject removes a project and returns the deleted row.
func (db *DB) DeleteProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	query := `DELETE FROM projects WHERE id = $1 RETURNING ` + projectColumns

	project, err := scanProject(db.Pool.QueryRow(ctx, query, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to delete project: %w", err)
	}

	db.log.WithField("id", projectID).Info("Deleted project")
	return project, nil
}

// ReorderProjects sets priority = position+1 for every id, in one
// transaction. An id that matches no row aborts the whole reorder with a
// *ReorderError wrapping ErrNotFound.
func (db *DB) ReorderProjects(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	defer db.timed("ReorderProjects", logrus.Fields{"count": len(ids)})()

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin reorder: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	batch := &pgx.Batch{}
	for _, a := range priorityAssignments(ids) {
		batch.Queue(`UPDATE projects SET priority = $1, updated_at = NOW() WHERE id = $2`, a.Priority, a.ID)
	}

	if err := execReorderBatch(tx.SendBatch(ctx, batch), ids); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit reorder: %w", err)
	}
	return nil
}

func execReorderBatch(results pgx.BatchResults, ids []uuid.UUID) error {
	for i, id := range ids {
		tag, err := results.Exec()
		if err == nil && tag.RowsAffected() == 0 {
			err = ErrNotFound
		}
		if err != nil {
			_ = results.Close()
			return &ReorderError{FailedIndex: i, Total: len(ids), ID: id, Err: err}
		}
	}
	return results.Close()
}

// ProjectStats counts projects by status and type plus the skill total.
func (db *DB) ProjectStats(ctx context.Context) (*models.Stats, error) {
	rows, err := db.Pool.Query(ctx, `SELECT type, status, COUNT(*) FROM projects GROUP BY type, status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}
	defer rows.Close()

	stats := newStats()
	for rows.Next() {
		var typ, status string
		var n int
		if err := rows.Scan(&typ, &status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan project counts: %w", err)
		}
		stats.add(typ, status, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project counts: %w", err)
	}

	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM skills`).Scan(&stats.TotalSkills); err != nil {
		return nil, fmt.Errorf("failed to count skills: %w", err)
	}

	return &stats.Stats, nil
}

// Helper functions

func setIf[T any](qb *QueryBuilder, column string, value *T) {
	if value != nil {
		qb.AddAssignment(column, *value)
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	var project models.Project
	err := row.Scan(
		&project.ID,
		&project.Title,
		&project.Description,
		&project.Content,
		&project.Type,
		&project.Status,
		&project.Technologies,
		&project.ThumbnailURL,
		&project.Images,
		&project.DemoURL,
		&project.GithubURL,
		&project.ClientName,
		&project.ClientContact,
		&project.Budget,
		&project.TeamMembers,
		&project.IsPrivate,
		&project.Priority,
		&project.CreatedBy,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

type rowsScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanProjects(rows rowsScanner) ([]models.Project, error) {
	projects := []models.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, nil
}
