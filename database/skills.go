package database

import (
	"context"
	"fmt"

	"folio/models"

	"github.com/sirupsen/logrus"
)

const skillColumns = `id, name, category, level, icon_url, created_at`

// ListSkills returns skills ordered by name, optionally restricted to a
// category.
func (db *DB) ListSkills(ctx context.Context, category string) ([]models.Skill, error) {
	defer db.timed("ListSkills", logrus.Fields{"category": category})()

	qb := NewQueryBuilder()
	if category != "" {
		qb.AddCondition("category", category)
	}

	query := fmt.Sprintf(`SELECT %s FROM skills %s ORDER BY name ASC`, skillColumns, qb.WhereClause())

	rows, err := db.Pool.Query(ctx, query, qb.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()

	skills := []models.Skill{}
	for rows.Next() {
		skill, err := scanSkill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		skills = append(skills, *skill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating skills: %w", err)
	}

	return skills, nil
}

func (db *DB) CreateSkill(ctx context.Context, req models.CreateSkillRequest) (*models.Skill, error) {
	query := `
		INSERT INTO skills (name, category, level, icon_url)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + skillColumns

	skill, err := scanSkill(db.Pool.QueryRow(ctx, query, req.Name, req.Category, req.Level, req.IconURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create skill: %w", classify(err))
	}

	db.log.WithFields(logrus.Fields{"id": skill.ID, "name": skill.Name}).Info("Created skill")
	return skill, nil
}

func scanSkill(row rowScanner) (*models.Skill, error) {
	var skill models.Skill
	err := row.Scan(
		&skill.ID,
		&skill.Name,
		&skill.Category,
		&skill.Level,
		&skill.IconURL,
		&skill.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &skill, nil
}
