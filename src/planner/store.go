// Package planner holds the in-memory meal planner state, the coalescing
// debounce primitive, and the sync layer that keeps the persisted record
// eventually consistent with it.
package planner

import (
	"strings"

	"mcnutrition/src/domain"
)

// Store maintains the ordered set of selected items for one identity.
// It is not goroutine safe; Session serializes access.
type Store struct {
	entries  []domain.PlannerEntry
	mealName string
}

// NewStore creates an empty store with the default meal name.
func NewStore() *Store {
	return &Store{mealName: domain.DefaultMealName}
}

// Toggle adds the item when absent and removes it when present. The
// return value reports whether the item is selected afterwards; toggling
// twice restores the original entry set and order.
func (s *Store) Toggle(id string, item domain.MenuItem) bool {
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return false
		}
	}
	s.entries = append(s.entries, domain.PlannerEntry{ID: id, Item: item})
	return true
}

// Remove removes the entry if present. Absent IDs are a no-op.
func (s *Store) Remove(id string) {
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// Clear empties the entries. The meal name survives a clear.
func (s *Store) Clear() {
	s.entries = nil
}

// Rename sets the meal name. Blank input falls back to the default name;
// the stored name is never empty.
func (s *Store) Rename(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = domain.DefaultMealName
	}
	s.mealName = name
}

// MealName returns the current meal name.
func (s *Store) MealName() string {
	return s.mealName
}

// Len returns the number of selected entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the selected entries in insertion order.
func (s *Store) Entries() []domain.PlannerEntry {
	out := make([]domain.PlannerEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// ComputeTotals sums every nutrition field across the entries. Missing or
// malformed fields contribute 0. The result is a fresh record each call.
func (s *Store) ComputeTotals() domain.Nutrition {
	var totals domain.Nutrition
	for _, e := range s.entries {
		totals.Add(e.Item)
	}
	return totals
}

// Snapshot returns a detached copy of the full planner state.
func (s *Store) Snapshot() domain.PlannerState {
	return domain.PlannerState{
		Entries:  s.Entries(),
		MealName: s.mealName,
		Totals:   s.ComputeTotals(),
	}
}

// Restore replaces the store contents with a persisted state. An empty
// meal name falls back to the default.
func (s *Store) Restore(state domain.PlannerState) {
	s.entries = make([]domain.PlannerEntry, len(state.Entries))
	copy(s.entries, state.Entries)
	s.Rename(state.MealName)
}
