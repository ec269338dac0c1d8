package planner_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"mcnutrition/src/domain"
	"mcnutrition/src/planner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func plannerState(mealName string, names ...string) domain.PlannerState {
	state := domain.PlannerState{MealName: mealName}
	for i, name := range names {
		state.Entries = append(state.Entries, domain.PlannerEntry{
			ID:   "BURGERSANDWICH-" + string(rune('0'+i)),
			Item: domain.MenuItem{Name: name, Category: "BURGERSANDWICH"},
		})
	}
	return state
}

func TestManagerLoadPrecedence(t *testing.T) {
	t.Run("staged meal load wins over everything", func(t *testing.T) {
		planners := new(MockPlannerRepository)
		planners.On("Upsert", mock.Anything, userIdentity.Key, mock.Anything, false).Return(nil)
		drafts := planner.NewMemoryDraftCache()
		m := planner.NewManager(planners, new(MockMealRepository), drafts, testLogger(), planner.Options{})

		m.StageMealLoad(userIdentity.Key, domain.SavedMeal{
			ID:       "meal_1_x",
			MealName: "Saved Lunch",
			Entries:  plannerState("", "Big Mac").Entries,
		})
		m.StageLogin("sess_old", plannerState("Pre-Login", "Hamburger"))

		s := m.Session(context.Background(), userIdentity, "sess_old")
		state := s.State()
		assert.Equal(t, "Saved Lunch", state.MealName)
		require.Len(t, state.Entries, 1)
		assert.Equal(t, "Big Mac", state.Entries[0].Item.Name)

		// ログイン退避分はそのまま残り、次のタッチで適用される
		s = m.Session(context.Background(), userIdentity, "sess_old")
		state = s.State()
		assert.Equal(t, "Pre-Login", state.MealName)
		assert.Equal(t, "Hamburger", state.Entries[0].Item.Name)
	})

	t.Run("server record beats local draft", func(t *testing.T) {
		planners := new(MockPlannerRepository)
		serverState := plannerState("From Server", "Filet-O-Fish")
		planners.On("Get", mock.Anything, anonIdentity.Key).Return(&serverState, nil)
		drafts := planner.NewMemoryDraftCache()
		drafts.Put(anonIdentity.Key, planner.Draft{
			Entries:   plannerState("", "Draft Burger").Entries,
			MealName:  "From Draft",
			Timestamp: time.Now(),
		})
		m := planner.NewManager(planners, new(MockMealRepository), drafts, testLogger(), planner.Options{})

		state := m.Session(context.Background(), anonIdentity, anonIdentity.Key).State()
		assert.Equal(t, "From Server", state.MealName)
		assert.Equal(t, "Filet-O-Fish", state.Entries[0].Item.Name)
	})

	t.Run("load failure falls back to fresh draft", func(t *testing.T) {
		planners := new(MockPlannerRepository)
		planners.On("Get", mock.Anything, anonIdentity.Key).Return(nil, errors.New("timeout"))
		drafts := planner.NewMemoryDraftCache()
		drafts.Put(anonIdentity.Key, planner.Draft{
			Entries:   plannerState("", "Draft Burger").Entries,
			MealName:  "From Draft",
			Timestamp: time.Now().Add(-time.Hour),
		})
		m := planner.NewManager(planners, new(MockMealRepository), drafts, testLogger(), planner.Options{})

		state := m.Session(context.Background(), anonIdentity, anonIdentity.Key).State()
		assert.Equal(t, "From Draft", state.MealName)
		assert.Equal(t, "Draft Burger", state.Entries[0].Item.Name)
	})

	t.Run("stale draft is ignored", func(t *testing.T) {
		planners := new(MockPlannerRepository)
		planners.On("Get", mock.Anything, anonIdentity.Key).Return(nil, nil)
		drafts := planner.NewMemoryDraftCache()
		drafts.Put(anonIdentity.Key, planner.Draft{
			Entries:   plannerState("", "Stale Burger").Entries,
			MealName:  "Old Draft",
			Timestamp: time.Now().Add(-8 * 24 * time.Hour),
		})
		m := planner.NewManager(planners, new(MockMealRepository), drafts, testLogger(), planner.Options{})

		state := m.Session(context.Background(), anonIdentity, anonIdentity.Key).State()
		assert.Empty(t, state.Entries)
		assert.Equal(t, domain.DefaultMealName, state.MealName)
	})

	t.Run("empty draft is ignored", func(t *testing.T) {
		planners := new(MockPlannerRepository)
		planners.On("Get", mock.Anything, anonIdentity.Key).Return(nil, nil)
		drafts := planner.NewMemoryDraftCache()
		drafts.Put(anonIdentity.Key, planner.Draft{
			MealName:  "Empty Draft",
			Timestamp: time.Now(),
		})
		m := planner.NewManager(planners, new(MockMealRepository), drafts, testLogger(), planner.Options{})

		state := m.Session(context.Background(), anonIdentity, anonIdentity.Key).State()
		assert.Empty(t, state.Entries)
		assert.Equal(t, domain.DefaultMealName, state.MealName)
	})
}

func TestManagerLoginMigration(t *testing.T) {
	t.Run("staged payload moves into the authenticated record", func(t *testing.T) {
		planners := new(MockPlannerRepository)
		planners.On("Upsert", mock.Anything, userIdentity.Key, mock.Anything, false).Return(nil)
		m := newTestManager(planners, new(MockMealRepository), planner.Options{})

		m.StageLogin("sess_old", plannerState("Pre-Login", "Big Mac", "Fries"))

		state := m.Session(context.Background(), userIdentity, "sess_old").State()
		assert.Equal(t, "Pre-Login", state.MealName)
		assert.Len(t, state.Entries, 2)

		// デバウンスを待たず即座に保存される
		planners.AssertCalled(t, "Upsert", mock.Anything, userIdentity.Key, mock.Anything, false)
		// デフォルトでは匿名レコードは残る
		planners.AssertNotCalled(t, "Delete", mock.Anything, "sess_old")
	})

	t.Run("anonymous record is deleted when configured", func(t *testing.T) {
		planners := new(MockPlannerRepository)
		planners.On("Upsert", mock.Anything, userIdentity.Key, mock.Anything, false).Return(nil)
		planners.On("Delete", mock.Anything, "sess_old").Return(nil)
		m := newTestManager(planners, new(MockMealRepository), planner.Options{DeleteAnonOnMigrate: true})

		m.StageLogin("sess_old", plannerState("Pre-Login", "Big Mac"))
		m.Session(context.Background(), userIdentity, "sess_old")

		planners.AssertCalled(t, "Delete", mock.Anything, "sess_old")
	})

	t.Run("staged payload is consumed once", func(t *testing.T) {
		planners := new(MockPlannerRepository)
		planners.On("Upsert", mock.Anything, userIdentity.Key, mock.Anything, false).Return(nil)
		m := newTestManager(planners, new(MockMealRepository), planner.Options{})

		m.StageLogin("sess_old", plannerState("Pre-Login", "Big Mac"))
		s := m.Session(context.Background(), userIdentity, "sess_old")
		s.Clear()

		// 2回目のタッチで退避分が再適用されることはない
		state := m.Session(context.Background(), userIdentity, "sess_old").State()
		assert.Empty(t, state.Entries)
	})
}

func TestManagerFlushAll(t *testing.T) {
	planners := new(MockPlannerRepository)
	planners.On("Get", mock.Anything, anonIdentity.Key).Return(nil, nil)
	planners.On("Upsert", mock.Anything, anonIdentity.Key, mock.Anything, true).Return(nil)

	m := newTestManager(planners, new(MockMealRepository), planner.Options{DebounceWindow: time.Hour})
	s := m.Session(context.Background(), anonIdentity, anonIdentity.Key)
	s.Toggle("SALAD-0", domain.MenuItem{Name: "Side Salad"})

	// デバウンス窓の残り時間に関係なく書き出される
	m.FlushAll()
	planners.AssertNumberOfCalls(t, "Upsert", 1)
}

func TestManagerDrop(t *testing.T) {
	planners := new(MockPlannerRepository)
	planners.On("Get", mock.Anything, anonIdentity.Key).Return(nil, nil)

	m := newTestManager(planners, new(MockMealRepository), planner.Options{})
	m.Session(context.Background(), anonIdentity, anonIdentity.Key)
	m.Drop(anonIdentity.Key)
	m.Session(context.Background(), anonIdentity, anonIdentity.Key)

	// セッション破棄後のタッチは読み込みをやり直す
	planners.AssertNumberOfCalls(t, "Get", 2)
}
