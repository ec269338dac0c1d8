package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"mcnutrition/src/database"
	"mcnutrition/src/domain"

	"github.com/sirupsen/logrus"
)

// MealRepository implements domain.MealRepository backed by PostgreSQL.
// Saved meals are immutable snapshots, entries stored as JSONB.
type MealRepository struct {
	db     *database.DB
	logger *logrus.Logger
}

// NewMealRepository creates a new saved meal repository.
func NewMealRepository(db *database.DB, logger *logrus.Logger) *MealRepository {
	return &MealRepository{
		db:     db,
		logger: logger,
	}
}

func scanSavedMeal(row interface{ Scan(...interface{}) error }) (*domain.SavedMeal, error) {
	meal := &domain.SavedMeal{}
	var entries, totals []byte

	err := row.Scan(&meal.ID, &meal.UserID, &meal.MealName, &entries, &totals, &meal.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(entries, &meal.Entries); err != nil {
		return nil, fmt.Errorf("failed to decode meal entries: %w", err)
	}
	if err := json.Unmarshal(totals, &meal.Totals); err != nil {
		return nil, fmt.Errorf("failed to decode meal totals: %w", err)
	}

	return meal, nil
}

// List retrieves all saved meals for a user, newest first.
func (r *MealRepository) List(ctx context.Context, userID string) ([]domain.SavedMeal, error) {
	query := `
		SELECT id, user_id, meal_name, entries, totals, created_at
		FROM saved_meals WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.WithError(err).WithField("user_id", userID).Error("保存済みミールの一覧取得に失敗")
		return nil, fmt.Errorf("failed to list saved meals: %w", err)
	}
	defer rows.Close()

	var meals []domain.SavedMeal
	for rows.Next() {
		meal, err := scanSavedMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan saved meal: %w", err)
		}
		meals = append(meals, *meal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return meals, nil
}

// GetByID retrieves a saved meal by ID.
func (r *MealRepository) GetByID(ctx context.Context, id string) (*domain.SavedMeal, error) {
	query := `
		SELECT id, user_id, meal_name, entries, totals, created_at
		FROM saved_meals WHERE id = $1`

	meal, err := scanSavedMeal(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("saved meal not found")
		}
		r.logger.WithError(err).WithField("meal_id", id).Error("保存済みミールの取得に失敗")
		return nil, fmt.Errorf("failed to get saved meal: %w", err)
	}

	return meal, nil
}

// Create inserts a new saved meal snapshot.
func (r *MealRepository) Create(ctx context.Context, meal *domain.SavedMeal) error {
	entries, err := json.Marshal(meal.Entries)
	if err != nil {
		return fmt.Errorf("failed to encode meal entries: %w", err)
	}
	totals, err := json.Marshal(meal.Totals)
	if err != nil {
		return fmt.Errorf("failed to encode meal totals: %w", err)
	}

	query := `
		INSERT INTO saved_meals (id, user_id, meal_name, entries, totals, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := r.db.ExecContext(ctx, query, meal.ID, meal.UserID, meal.MealName, entries, totals, meal.CreatedAt); err != nil {
		r.logger.WithError(err).WithField("meal_id", meal.ID).Error("保存済みミールの作成に失敗")
		return fmt.Errorf("failed to create saved meal: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"meal_id": meal.ID,
		"user_id": meal.UserID,
	}).Info("ミールを保存しました")
	return nil
}

// Delete removes a saved meal.
func (r *MealRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM saved_meals WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.logger.WithError(err).WithField("meal_id", id).Error("保存済みミールの削除に失敗")
		return fmt.Errorf("failed to delete saved meal: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("saved meal not found")
	}

	r.logger.WithField("meal_id", id).Info("保存済みミールを削除しました")
	return nil
}
