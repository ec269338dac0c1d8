package planner

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"mcnutrition/src/domain"

	"github.com/sirupsen/logrus"
)

var (
	// ErrNoEntries 空のプランナーは保存できない
	ErrNoEntries = errors.New("meal must contain at least one item")
	// ErrAuthRequired 保存済みミールは認証済みユーザーのみ
	ErrAuthRequired = errors.New("not authenticated")
)

const saveTimeout = 5 * time.Second

// Session owns the live planner for one identity: the in-memory store,
// the debounced auto-save and the local draft backup. All mutations are
// applied to the store synchronously; persistence happens afterwards and
// never blocks or rolls back the in-memory state.
type Session struct {
	mu       sync.Mutex
	identity domain.Identity
	store    *Store
	debounce *Debouncer

	planners domain.PlannerRepository
	meals    domain.MealRepository
	drafts   DraftCache
	logger   *logrus.Logger
}

// State returns a detached snapshot of the current planner state.
func (s *Session) State() domain.PlannerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Snapshot()
}

// Toggle applies a toggle command and reports whether the item is now
// selected.
func (s *Session) Toggle(id string, item domain.MenuItem) bool {
	s.mu.Lock()
	selected := s.store.Toggle(id, item)
	s.mu.Unlock()
	s.scheduleSave()
	return selected
}

// Remove applies a remove command. Unknown IDs are a no-op.
func (s *Session) Remove(id string) {
	s.mu.Lock()
	s.store.Remove(id)
	s.mu.Unlock()
	s.scheduleSave()
}

// Clear empties the planner entries. The meal name is kept.
func (s *Session) Clear() {
	s.mu.Lock()
	s.store.Clear()
	s.mu.Unlock()
	s.scheduleSave()
}

// Rename applies a rename command.
func (s *Session) Rename(name string) {
	s.mu.Lock()
	s.store.Rename(name)
	s.mu.Unlock()
	s.scheduleSave()
}

// scheduleSave writes the local draft backup synchronously and (re)arms
// the debounced upsert. Rapid successive mutations supersede each other;
// only the final state reaches the persistence collaborator.
func (s *Session) scheduleSave() {
	s.writeDraft()
	s.debounce.Arm(func() {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		s.persist(ctx)
	})
}

// persist upserts the current state. Failures are logged and swallowed:
// the in-memory state and the draft copy stay authoritative for the
// session.
func (s *Session) persist(ctx context.Context) {
	state := s.State()
	err := s.planners.Upsert(ctx, s.identity.Key, &state, !s.identity.Authenticated)
	if err != nil {
		s.logger.WithError(err).WithField("identity_key", s.identity.Key).Warn("プランナーの自動保存に失敗")
		return
	}
	s.logger.WithFields(logrus.Fields{
		"identity_key": s.identity.Key,
		"entries":      len(state.Entries),
	}).Debug("プランナーを自動保存しました")
}

func (s *Session) writeDraft() {
	s.mu.Lock()
	draft := Draft{
		Entries:   s.store.Entries(),
		MealName:  s.store.MealName(),
		Timestamp: time.Now(),
	}
	s.mu.Unlock()
	s.drafts.Put(s.identity.Key, draft)
}

// Flush runs any pending auto-save immediately.
func (s *Session) Flush() {
	s.debounce.Flush()
}

// SaveMeal snapshots the planner into a new immutable saved meal. It
// requires an authenticated identity and at least one entry; neither
// failure mutates any state.
func (s *Session) SaveMeal(ctx context.Context) (*domain.SavedMeal, error) {
	if !s.identity.Authenticated {
		return nil, ErrAuthRequired
	}

	s.mu.Lock()
	if s.store.Len() == 0 {
		s.mu.Unlock()
		return nil, ErrNoEntries
	}
	meal := &domain.SavedMeal{
		ID:        newMealID(),
		UserID:    s.identity.Key,
		MealName:  s.store.MealName(),
		Entries:   s.store.Entries(),
		Totals:    s.store.ComputeTotals(),
		CreatedAt: time.Now(),
	}
	s.mu.Unlock()

	if err := s.meals.Create(ctx, meal); err != nil {
		return nil, fmt.Errorf("failed to save meal: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"meal_id": meal.ID,
		"user_id": meal.UserID,
	}).Info("ミールを保存しました")
	return meal, nil
}

// ClearPersisted empties the store and deletes the persisted record
// immediately, skipping the debounce.
func (s *Session) ClearPersisted(ctx context.Context) error {
	s.mu.Lock()
	s.store.Clear()
	s.mu.Unlock()
	s.debounce.Stop()
	s.writeDraft()

	if err := s.planners.Delete(ctx, s.identity.Key); err != nil {
		return fmt.Errorf("failed to clear planner: %w", err)
	}
	return nil
}

// restore replaces the store contents outside of the command path (load
// precedence, staged transfers).
func (s *Session) restore(state domain.PlannerState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Restore(state)
}

// saveNow performs the explicit, non-debounced upsert used when a staged
// login payload is migrated into the authenticated record.
func (s *Session) saveNow(ctx context.Context) error {
	state := s.State()
	return s.planners.Upsert(ctx, s.identity.Key, &state, !s.identity.Authenticated)
}

// newMealID は時刻シードのランダムトークンでミールIDを生成する
func newMealID() string {
	return fmt.Sprintf("meal_%d_%s", time.Now().UnixMilli(), randomToken(13))
}

const tokenAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomToken(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = tokenAlphabet[rand.Intn(len(tokenAlphabet))]
	}
	return string(b)
}
