package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"mcnutrition/src/database"
	"mcnutrition/src/domain"

	"github.com/sirupsen/logrus"
)

// PlannerRepository implements domain.PlannerRepository backed by
// PostgreSQL. One row per identity key, state stored as JSONB.
type PlannerRepository struct {
	db      *database.DB
	logger  *logrus.Logger
	anonTTL time.Duration
}

// NewPlannerRepository creates a new planner repository. anonTTL sets the
// expiry window for anonymous rows, measured from the last write.
func NewPlannerRepository(db *database.DB, logger *logrus.Logger, anonTTL time.Duration) *PlannerRepository {
	return &PlannerRepository{
		db:      db,
		logger:  logger,
		anonTTL: anonTTL,
	}
}

// Get retrieves the active planner for an identity key. Expired anonymous
// rows are treated as absent. Returns (nil, nil) when no row exists.
func (r *PlannerRepository) Get(ctx context.Context, identityKey string) (*domain.PlannerState, error) {
	query := `
		SELECT state FROM active_planners
		WHERE identity_key = $1 AND (expires_at IS NULL OR expires_at > NOW())`

	var raw []byte
	err := r.db.QueryRowContext(ctx, query, identityKey).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.WithError(err).WithField("identity_key", identityKey).Error("プランナーの取得に失敗")
		return nil, fmt.Errorf("failed to get planner: %w", err)
	}

	state := &domain.PlannerState{}
	if err := json.Unmarshal(raw, state); err != nil {
		return nil, fmt.Errorf("failed to decode planner state: %w", err)
	}

	return state, nil
}

// Upsert writes the full planner state for an identity key, replacing any
// existing row. Anonymous rows get an expiry stamp on every write.
func (r *PlannerRepository) Upsert(ctx context.Context, identityKey string, state *domain.PlannerState, anonymous bool) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode planner state: %w", err)
	}

	var expiresAt interface{}
	if anonymous {
		expiresAt = time.Now().Add(r.anonTTL)
	}

	query := `
		INSERT INTO active_planners (identity_key, state, anonymous, updated_at, expires_at)
		VALUES ($1, $2, $3, NOW(), $4)
		ON CONFLICT (identity_key)
		DO UPDATE SET state = $2, anonymous = $3, updated_at = NOW(), expires_at = $4`

	if _, err := r.db.ExecContext(ctx, query, identityKey, raw, anonymous, expiresAt); err != nil {
		r.logger.WithError(err).WithField("identity_key", identityKey).Error("プランナーの保存に失敗")
		return fmt.Errorf("failed to upsert planner: %w", err)
	}

	return nil
}

// Delete removes the active planner row for an identity key. Deleting an
// absent row is not an error.
func (r *PlannerRepository) Delete(ctx context.Context, identityKey string) error {
	query := `DELETE FROM active_planners WHERE identity_key = $1`

	if _, err := r.db.ExecContext(ctx, query, identityKey); err != nil {
		r.logger.WithError(err).WithField("identity_key", identityKey).Error("プランナーの削除に失敗")
		return fmt.Errorf("failed to delete planner: %w", err)
	}

	return nil
}

// PurgeExpired deletes anonymous rows past their expiry. Intended to run
// periodically from a background goroutine.
func (r *PlannerRepository) PurgeExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM active_planners WHERE expires_at IS NOT NULL AND expires_at <= NOW()`

	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired planners: %w", err)
	}

	purged, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if purged > 0 {
		r.logger.WithField("count", purged).Info("期限切れの匿名プランナーを削除しました")
	}
	return purged, nil
}
