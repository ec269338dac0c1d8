package planner_test

import (
	"context"
	"io"

	"mcnutrition/src/domain"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

// MockPlannerRepository は domain.PlannerRepository のモック実装
type MockPlannerRepository struct {
	mock.Mock
}

func (m *MockPlannerRepository) Get(ctx context.Context, identityKey string) (*domain.PlannerState, error) {
	args := m.Called(ctx, identityKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlannerState), args.Error(1)
}

func (m *MockPlannerRepository) Upsert(ctx context.Context, identityKey string, state *domain.PlannerState, anonymous bool) error {
	args := m.Called(ctx, identityKey, state, anonymous)
	return args.Error(0)
}

func (m *MockPlannerRepository) Delete(ctx context.Context, identityKey string) error {
	args := m.Called(ctx, identityKey)
	return args.Error(0)
}

// MockMealRepository は domain.MealRepository のモック実装
type MockMealRepository struct {
	mock.Mock
}

func (m *MockMealRepository) List(ctx context.Context, userID string) ([]domain.SavedMeal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavedMeal), args.Error(1)
}

func (m *MockMealRepository) GetByID(ctx context.Context, id string) (*domain.SavedMeal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavedMeal), args.Error(1)
}

func (m *MockMealRepository) Create(ctx context.Context, meal *domain.SavedMeal) error {
	args := m.Called(ctx, meal)
	return args.Error(0)
}

func (m *MockMealRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// testLogger はテスト出力を汚さないロガー
func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
