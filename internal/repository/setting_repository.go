package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
)

// Setting keys stored in the system_setting table.
const (
	// SettingParserAPIKey holds the fernet-encrypted language model API key.
	SettingParserAPIKey = "parser_api_key"
)

// SettingRepository provides data access methods for the system_setting table.
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetSetting retrieves a setting value by key.
// Returns apperrors.ErrSettingNotFound if the key has never been stored.
func (r *SettingRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string

	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM system_setting WHERE "key" = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperrors.ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query system_setting table: %w", err)
	}

	return value, nil
}

// SetSetting stores a setting value, replacing any previous value for the key.
func (r *SettingRepository) SetSetting(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO system_setting (id, "key", value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT("key") DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		uuid.New().String(),
		key,
		value,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to store setting: %w", err)
	}

	return nil
}

// DeleteSetting removes a setting if present.
func (r *SettingRepository) DeleteSetting(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM system_setting WHERE "key" = ?`, key); err != nil {
		return fmt.Errorf("failed to delete setting: %w", err)
	}
	return nil
}
