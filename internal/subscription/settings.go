// AngelaMos | 2026
// settings.go

package subscription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/brightpath-edu/backend/internal/core"
)

type settingsRepository struct {
	db core.DBTX
}

// NewSettingsRepository stores named JSON blobs in the settings table.
func NewSettingsRepository(db core.DBTX) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM settings WHERE key = $1`

	var value []byte
	if err := r.db.GetContext(ctx, &value, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("setting %s: %w", key, core.ErrNotFound)
		}
		return nil, fmt.Errorf("get setting: %w", err)
	}

	return value, nil
}

func (r *settingsRepository) Upsert(
	ctx context.Context,
	key string,
	value []byte,
) error {
	query := `
		INSERT INTO settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("upsert setting: %w", err)
	}

	return nil
}
