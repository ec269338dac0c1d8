package usecase

import (
	"context"
	"errors"
	"strings"

	"mcnutrition/src/domain"
)

var (
	ErrMealNotFound  = errors.New("saved meal not found")
	ErrNotAuthorized = errors.New("meal belongs to another user")
)

// MealUsecase defines the interface for saved meal business logic.
// Authorization is per meal: a user may only read or delete their own.
type MealUsecase interface {
	ListMeals(ctx context.Context, userID string) ([]domain.SavedMeal, error)
	GetMeal(ctx context.Context, userID, mealID string) (*domain.SavedMeal, error)
	DeleteMeal(ctx context.Context, userID, mealID string) error
}

type mealUsecase struct {
	mealRepo domain.MealRepository
}

// NewMealUsecase creates a new saved meal usecase
func NewMealUsecase(mealRepo domain.MealRepository) MealUsecase {
	return &mealUsecase{
		mealRepo: mealRepo,
	}
}

// ListMeals retrieves all saved meals for a user, newest first
func (u *mealUsecase) ListMeals(ctx context.Context, userID string) ([]domain.SavedMeal, error) {
	return u.mealRepo.List(ctx, userID)
}

// GetMeal retrieves one saved meal, checking ownership
func (u *mealUsecase) GetMeal(ctx context.Context, userID, mealID string) (*domain.SavedMeal, error) {
	meal, err := u.mealRepo.GetByID(ctx, mealID)
	if err != nil {
		if strings.Contains(err.Error(), "saved meal not found") {
			return nil, ErrMealNotFound
		}
		return nil, err
	}
	if meal.UserID != userID {
		return nil, ErrNotAuthorized
	}
	return meal, nil
}

// DeleteMeal deletes one saved meal, checking ownership
func (u *mealUsecase) DeleteMeal(ctx context.Context, userID, mealID string) error {
	meal, err := u.mealRepo.GetByID(ctx, mealID)
	if err != nil {
		if strings.Contains(err.Error(), "saved meal not found") {
			return ErrMealNotFound
		}
		return err
	}
	if meal.UserID != userID {
		return ErrNotAuthorized
	}

	return u.mealRepo.Delete(ctx, mealID)
}
