package usecase

import (
	"context"
	"errors"
	"strings"

	"mcnutrition/src/domain"
)

var (
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrInvalidItemName  = errors.New("item name is required and must be less than 200 characters")
	ErrInvalidCategory  = errors.New("category must be one of the defined category keys")
	ErrInvalidNutrition = errors.New("nutrition values must be non-negative numbers or empty")
	ErrInvalidLimit     = errors.New("limit must be between 1 and 100")
)

// MenuItemRequest represents input for creating or updating a menu item.
// Nutrition values come in as strings, matching the stored encoding.
type MenuItemRequest struct {
	Name         string
	Category     string
	Calories     string
	Protein      string
	Carbs        string
	Fat          string
	SaturatedFat string
	TransFat     string
	Cholesterol  string
	Sodium       string
	Fiber        string
	Sugar        string
}

// MenuUsecase defines the interface for menu business logic
type MenuUsecase interface {
	CreateMenuItem(ctx context.Context, req MenuItemRequest) (*domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error)
	ListMenuItems(ctx context.Context, filter domain.MenuFilter) ([]domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id int, req MenuItemRequest) (*domain.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id int) error
	SearchMenuItems(ctx context.Context, query string, limit int) ([]domain.MenuItem, error)
}

type menuUsecase struct {
	menuRepo domain.MenuRepository
}

// NewMenuUsecase creates a new menu usecase
func NewMenuUsecase(menuRepo domain.MenuRepository) MenuUsecase {
	return &menuUsecase{
		menuRepo: menuRepo,
	}
}

// CreateMenuItem creates a new menu item
func (u *menuUsecase) CreateMenuItem(ctx context.Context, req MenuItemRequest) (*domain.MenuItem, error) {
	if err := u.validateRequest(req); err != nil {
		return nil, err
	}

	item := u.toMenuItem(req)
	return u.menuRepo.Create(ctx, item)
}

// GetMenuItem retrieves a menu item by ID
func (u *menuUsecase) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	item, err := u.menuRepo.GetByID(ctx, id)
	if err != nil {
		if strings.Contains(err.Error(), "menu item not found") {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// ListMenuItems retrieves menu items with filtering
func (u *menuUsecase) ListMenuItems(ctx context.Context, filter domain.MenuFilter) ([]domain.MenuItem, error) {
	if filter.Category != "" && !domain.IsKnownCategory(filter.Category) {
		return nil, ErrInvalidCategory
	}
	if filter.Limit < 0 || filter.Limit > 100 {
		return nil, ErrInvalidLimit
	}

	return u.menuRepo.List(ctx, filter)
}

// UpdateMenuItem updates an existing menu item
func (u *menuUsecase) UpdateMenuItem(ctx context.Context, id int, req MenuItemRequest) (*domain.MenuItem, error) {
	if err := u.validateRequest(req); err != nil {
		return nil, err
	}

	item, err := u.menuRepo.Update(ctx, id, u.toMenuItem(req))
	if err != nil {
		if strings.Contains(err.Error(), "menu item not found") {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// DeleteMenuItem deletes a menu item
func (u *menuUsecase) DeleteMenuItem(ctx context.Context, id int) error {
	if err := u.menuRepo.Delete(ctx, id); err != nil {
		if strings.Contains(err.Error(), "menu item not found") {
			return ErrMenuItemNotFound
		}
		return err
	}
	return nil
}

// SearchMenuItems searches menu items by name
func (u *menuUsecase) SearchMenuItems(ctx context.Context, query string, limit int) ([]domain.MenuItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.MenuItem{}, nil
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		return nil, ErrInvalidLimit
	}

	return u.menuRepo.Search(ctx, query, limit)
}

// validateRequest validates a create or update request
func (u *menuUsecase) validateRequest(req MenuItemRequest) error {
	if strings.TrimSpace(req.Name) == "" || len(req.Name) > 200 {
		return ErrInvalidItemName
	}
	if !domain.IsKnownCategory(req.Category) {
		return ErrInvalidCategory
	}

	for _, v := range []string{
		req.Calories, req.Protein, req.Carbs, req.Fat,
		req.SaturatedFat, req.TransFat, req.Cholesterol,
		req.Sodium, req.Fiber, req.Sugar,
	} {
		if !validNutritionValue(v) {
			return ErrInvalidNutrition
		}
	}
	return nil
}

// validNutritionValue 空は未計測として許可、それ以外は非負の数値文字列のみ
func validNutritionValue(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return true
	}
	seenDot := false
	for i, r := range v {
		if r == '.' {
			if seenDot || i == 0 || i == len(v)-1 {
				return false
			}
			seenDot = true
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (u *menuUsecase) toMenuItem(req MenuItemRequest) *domain.MenuItem {
	return &domain.MenuItem{
		Name:         strings.TrimSpace(req.Name),
		Category:     req.Category,
		Calories:     strings.TrimSpace(req.Calories),
		Protein:      strings.TrimSpace(req.Protein),
		Carbs:        strings.TrimSpace(req.Carbs),
		Fat:          strings.TrimSpace(req.Fat),
		SaturatedFat: strings.TrimSpace(req.SaturatedFat),
		TransFat:     strings.TrimSpace(req.TransFat),
		Cholesterol:  strings.TrimSpace(req.Cholesterol),
		Sodium:       strings.TrimSpace(req.Sodium),
		Fiber:        strings.TrimSpace(req.Fiber),
		Sugar:        strings.TrimSpace(req.Sugar),
	}
}
