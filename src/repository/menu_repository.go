package repository

import (
	"context"
	"database/sql"
	"fmt"

	"mcnutrition/src/database"
	"mcnutrition/src/domain"

	"github.com/sirupsen/logrus"
)

const menuColumns = `id, item, category, cal, pro, carb, fat, sfat, tfat, chol, salt, fbr, sgr`

// MenuRepository implements domain.MenuRepository backed by PostgreSQL.
type MenuRepository struct {
	db     *database.DB
	logger *logrus.Logger
}

// NewMenuRepository creates a new menu repository.
func NewMenuRepository(db *database.DB, logger *logrus.Logger) *MenuRepository {
	return &MenuRepository{
		db:     db,
		logger: logger,
	}
}

func scanMenuItem(row interface{ Scan(...interface{}) error }) (*domain.MenuItem, error) {
	item := &domain.MenuItem{}
	err := row.Scan(
		&item.ID, &item.Name, &item.Category,
		&item.Calories, &item.Protein, &item.Carbs, &item.Fat,
		&item.SaturatedFat, &item.TransFat, &item.Cholesterol,
		&item.Sodium, &item.Fiber, &item.Sugar,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Create creates a new menu record.
func (r *MenuRepository) Create(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	query := `
		INSERT INTO menu_items (item, category, cal, pro, carb, fat, sfat, tfat, chol, salt, fbr, sgr)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		item.Name, item.Category,
		item.Calories, item.Protein, item.Carbs, item.Fat,
		item.SaturatedFat, item.TransFat, item.Cholesterol,
		item.Sodium, item.Fiber, item.Sugar,
	).Scan(&item.ID)

	if err != nil {
		r.logger.WithError(err).Error("メニュー項目の作成に失敗")
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	r.logger.WithField("menu_id", item.ID).Info("メニュー項目を作成しました")
	return item, nil
}

// GetByID retrieves a menu record by ID.
func (r *MenuRepository) GetByID(ctx context.Context, id int) (*domain.MenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM menu_items WHERE id = $1`

	item, err := scanMenuItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("menu item not found")
		}
		r.logger.WithError(err).WithField("menu_id", id).Error("メニュー項目の取得に失敗")
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}

	return item, nil
}

// List retrieves menu records with filtering, in insertion order. The
// order is load bearing: per-category listing IDs are derived from it.
func (r *MenuRepository) List(ctx context.Context, filter domain.MenuFilter) ([]domain.MenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM menu_items WHERE 1=1`

	var args []interface{}
	argIndex := 1

	// フィルター条件を追加
	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIndex)
		args = append(args, filter.Category)
		argIndex++
	}

	if filter.Search != "" {
		query += fmt.Sprintf(" AND item ILIKE $%d", argIndex)
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	query += " ORDER BY id ASC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.WithError(err).Error("メニューリストの取得に失敗")
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			r.logger.WithError(err).Error("メニュー項目のスキャンに失敗")
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return items, nil
}

// Search retrieves menu records whose name contains the terms,
// case-insensitively, ordered by name.
func (r *MenuRepository) Search(ctx context.Context, terms string, limit int) ([]domain.MenuItem, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `SELECT ` + menuColumns + ` FROM menu_items WHERE item ILIKE $1 ORDER BY item ASC LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, "%"+terms+"%", limit)
	if err != nil {
		r.logger.WithError(err).Error("メニュー検索に失敗")
		return nil, fmt.Errorf("failed to search menu items: %w", err)
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return items, nil
}

// Update updates a menu record and returns the updated row.
func (r *MenuRepository) Update(ctx context.Context, id int, item *domain.MenuItem) (*domain.MenuItem, error) {
	query := `
		UPDATE menu_items
		SET item = $1, category = $2, cal = $3, pro = $4, carb = $5, fat = $6,
			sfat = $7, tfat = $8, chol = $9, salt = $10, fbr = $11, sgr = $12
		WHERE id = $13
		RETURNING ` + menuColumns

	updated, err := scanMenuItem(r.db.QueryRowContext(ctx, query,
		item.Name, item.Category,
		item.Calories, item.Protein, item.Carbs, item.Fat,
		item.SaturatedFat, item.TransFat, item.Cholesterol,
		item.Sodium, item.Fiber, item.Sugar,
		id,
	))

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("menu item not found")
		}
		r.logger.WithError(err).WithField("menu_id", id).Error("メニュー項目の更新に失敗")
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}

	r.logger.WithField("menu_id", id).Info("メニュー項目を更新しました")
	return updated, nil
}

// Delete deletes a menu record.
func (r *MenuRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM menu_items WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.logger.WithError(err).WithField("menu_id", id).Error("メニュー項目の削除に失敗")
		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("menu item not found")
	}

	r.logger.WithField("menu_id", id).Info("メニュー項目を削除しました")
	return nil
}
