package domain

import "context"

// MenuRepository defines the interface for menu record operations.
type MenuRepository interface {
	Create(ctx context.Context, item *MenuItem) (*MenuItem, error)
	GetByID(ctx context.Context, id int) (*MenuItem, error)
	List(ctx context.Context, filter MenuFilter) ([]MenuItem, error)
	Search(ctx context.Context, terms string, limit int) ([]MenuItem, error)
	Update(ctx context.Context, id int, item *MenuItem) (*MenuItem, error)
	Delete(ctx context.Context, id int) error
}

// PlannerRepository defines the persistence collaborator for active
// planner state, keyed by identity key (user or anonymous session).
type PlannerRepository interface {
	Get(ctx context.Context, identityKey string) (*PlannerState, error)
	Upsert(ctx context.Context, identityKey string, state *PlannerState, anonymous bool) error
	Delete(ctx context.Context, identityKey string) error
}

// MealRepository defines the persistence collaborator for saved meals.
type MealRepository interface {
	List(ctx context.Context, userID string) ([]SavedMeal, error)
	GetByID(ctx context.Context, id string) (*SavedMeal, error)
	Create(ctx context.Context, meal *SavedMeal) error
	Delete(ctx context.Context, id string) error
}
