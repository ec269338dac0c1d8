package planner_test

import (
	"testing"

	"mcnutrition/src/domain"
	"mcnutrition/src/planner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreToggle(t *testing.T) {
	store := planner.NewStore()
	bigMac := domain.MenuItem{Name: "Big Mac", Category: "BURGERSANDWICH", Calories: "550"}
	fries := domain.MenuItem{Name: "World Famous Fries", Category: "SNACKSIDE", Calories: "320"}

	assert.True(t, store.Toggle("BURGERSANDWICH-0", bigMac))
	assert.True(t, store.Toggle("SNACKSIDE-0", fries))
	assert.Equal(t, 2, store.Len())

	// 再トグルで削除される
	assert.False(t, store.Toggle("BURGERSANDWICH-0", bigMac))
	assert.Equal(t, 1, store.Len())

	// 2回のトグルで元の集合と順序に戻る
	assert.True(t, store.Toggle("BURGERSANDWICH-0", bigMac))
	entries := store.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "SNACKSIDE-0", entries[0].ID)
	assert.Equal(t, "BURGERSANDWICH-0", entries[1].ID)
}

func TestStoreRemove(t *testing.T) {
	store := planner.NewStore()
	store.Toggle("SALAD-0", domain.MenuItem{Name: "Side Salad"})

	store.Remove("SALAD-0")
	assert.Equal(t, 0, store.Len())

	// 存在しないIDの削除は何もしない
	store.Remove("SALAD-0")
	assert.Equal(t, 0, store.Len())
}

func TestStoreClearKeepsMealName(t *testing.T) {
	store := planner.NewStore()
	store.Rename("Cheat Day")
	store.Toggle("BURGERSANDWICH-0", domain.MenuItem{Name: "Big Mac"})

	store.Clear()

	assert.Equal(t, 0, store.Len())
	assert.Equal(t, "Cheat Day", store.MealName())
}

func TestStoreRename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "normal rename", input: "Lunch Run", expected: "Lunch Run"},
		{name: "trimmed", input: "  Lunch Run  ", expected: "Lunch Run"},
		{name: "empty falls back to default", input: "", expected: domain.DefaultMealName},
		{name: "whitespace falls back to default", input: "   ", expected: domain.DefaultMealName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := planner.NewStore()
			store.Rename(tt.input)
			assert.Equal(t, tt.expected, store.MealName())
		})
	}
}

func TestStoreComputeTotals(t *testing.T) {
	store := planner.NewStore()
	store.Toggle("BURGERSANDWICH-0", domain.MenuItem{Calories: "550", Protein: "25", Carbs: "46"})
	store.Toggle("BEVERAGE-0", domain.MenuItem{Calories: "140", Protein: "", Carbs: "39", Sugar: "39"})
	store.Toggle("MCCAFE-0", domain.MenuItem{Calories: "bad data", Protein: "1"})

	totals := store.ComputeTotals()
	assert.Equal(t, 690.0, totals.Calories)
	assert.Equal(t, 26.0, totals.Protein)
	assert.Equal(t, 85.0, totals.Carbs)
	assert.Equal(t, 39.0, totals.Sugar)
}

func TestStoreSnapshotIsDetached(t *testing.T) {
	store := planner.NewStore()
	store.Toggle("SALAD-0", domain.MenuItem{Name: "Side Salad", Calories: "15"})

	snap := store.Snapshot()
	store.Clear()

	require.Len(t, snap.Entries, 1)
	assert.Equal(t, "Side Salad", snap.Entries[0].Item.Name)
	assert.Equal(t, 15.0, snap.Totals.Calories)
}

func TestStoreRestore(t *testing.T) {
	store := planner.NewStore()
	store.Restore(domain.PlannerState{
		Entries: []domain.PlannerEntry{
			{ID: "BREAKFAST-2", Item: domain.MenuItem{Name: "Hotcakes", Calories: "580"}},
		},
		MealName: "", // 空の名前はデフォルトに戻る
	})

	assert.Equal(t, 1, store.Len())
	assert.Equal(t, domain.DefaultMealName, store.MealName())
	assert.Equal(t, 580.0, store.ComputeTotals().Calories)
}
