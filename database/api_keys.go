package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"folio/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const apiKeyColumns = `id, name, key, permissions, is_active, created_at, last_used_at`

// DefaultPermissions is granted to keys created without an explicit set.
var DefaultPermissions = []string{models.PermissionReadProjects, models.PermissionReadSkills}

// GetActiveAPIKey looks up an active key by its secret. Unknown and
// inactive keys both return ErrInvalidAPIKey.
func (db *DB) GetActiveAPIKey(ctx context.Context, key string) (*models.APIKey, error) {
	query := `SELECT ` + apiKeyColumns + ` FROM api_keys WHERE key = $1 AND is_active = true`

	apiKey, err := scanAPIKey(db.Pool.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidAPIKey
		}
		return nil, fmt.Errorf("failed to get API key: %w", err)
	}

	return apiKey, nil
}

// TouchAPIKey records a successful use of the key.
func (db *DB) TouchAPIKey(ctx context.Context, keyID uuid.UUID, at time.Time) error {
	_, err := db.Pool.Exec(ctx, `UPDATE api_keys SET last_used_at = $2 WHERE id = $1`, keyID, at)
	if err != nil {
		return fmt.Errorf("failed to touch API key: %w", err)
	}
	return nil
}

func (db *DB) CreateAPIKey(ctx context.Context, name string, permissions []string) (*models.APIKey, error) {
	if len(permissions) == 0 {
		permissions = DefaultPermissions
	}

	query := `
		INSERT INTO api_keys (name, key, permissions)
		VALUES ($1, $2, $3)
		RETURNING ` + apiKeyColumns

	apiKey, err := scanAPIKey(db.Pool.QueryRow(ctx, query, name, generateAPIKey(), permissions))
	if err != nil {
		return nil, fmt.Errorf("failed to create API key: %w", classify(err))
	}

	db.log.WithField("id", apiKey.ID).Info("Created API key")
	return apiKey, nil
}

func (db *DB) ListAPIKeys(ctx context.Context) ([]models.APIKey, error) {
	rows, err := db.Pool.Query(ctx, `SELECT `+apiKeyColumns+` FROM api_keys ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list API keys: %w", err)
	}
	defer rows.Close()

	keys := []models.APIKey{}
	for rows.Next() {
		key, err := scanAPIKey(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan API key: %w", err)
		}
		keys = append(keys, *key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating API keys: %w", err)
	}

	return keys, nil
}

// SetAPIKeyActive flips is_active. Deactivated keys fail authentication
// on their next use.
func (db *DB) SetAPIKeyActive(ctx context.Context, keyID uuid.UUID, active bool) error {
	result, err := db.Pool.Exec(ctx, `UPDATE api_keys SET is_active = $2 WHERE id = $1`, keyID, active)
	if err != nil {
		return fmt.Errorf("failed to update API key: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("API key %s: %w", keyID, ErrNotFound)
	}

	db.log.WithField("id", keyID).WithField("active", active).Info("Updated API key")
	return nil
}

func generateAPIKey() string {
	return "folio_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func scanAPIKey(row rowScanner) (*models.APIKey, error) {
	var key models.APIKey
	err := row.Scan(
		&key.ID,
		&key.Name,
		&key.Key,
		&key.Permissions,
		&key.IsActive,
		&key.CreatedAt,
		&key.LastUsedAt,
	)
	if err != nil {
		return nil, err
	}
	return &key, nil
}
