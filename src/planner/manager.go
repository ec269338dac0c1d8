package planner

import (
	"context"
	"sync"
	"time"

	"mcnutrition/src/domain"

	"github.com/sirupsen/logrus"
)

// Options configures planner session behavior.
type Options struct {
	// DebounceWindow 自動保存の静止期間
	DebounceWindow time.Duration
	// DraftMaxAge ローカルドラフトを復元する上限経過時間
	DraftMaxAge time.Duration
	// DeleteAnonOnMigrate ログイン移行後に匿名レコードを削除するか。
	// 観測された挙動では削除されないためデフォルトはオフ
	DeleteAnonOnMigrate bool
}

// DefaultOptions returns the observed production behavior.
func DefaultOptions() Options {
	return Options{
		DebounceWindow: 500 * time.Millisecond,
		DraftMaxAge:    7 * 24 * time.Hour,
	}
}

// Manager owns one Session per identity key plus the staged transfer
// payloads consulted by the load precedence chain.
type Manager struct {
	planners domain.PlannerRepository
	meals    domain.MealRepository
	drafts   DraftCache
	logger   *logrus.Logger
	opts     Options

	mu          sync.Mutex
	sessions    map[string]*Session
	stagedLoad  map[string]domain.SavedMeal   // identity key → "load to planner" transfer
	stagedLogin map[string]domain.PlannerState // anonymous session key → post-login payload
}

// NewManager creates a session manager.
func NewManager(planners domain.PlannerRepository, meals domain.MealRepository, drafts DraftCache, logger *logrus.Logger, opts Options) *Manager {
	if opts.DebounceWindow <= 0 {
		opts.DebounceWindow = DefaultOptions().DebounceWindow
	}
	if opts.DraftMaxAge <= 0 {
		opts.DraftMaxAge = DefaultOptions().DraftMaxAge
	}
	return &Manager{
		planners:    planners,
		meals:       meals,
		drafts:      drafts,
		logger:      logger,
		opts:        opts,
		sessions:    make(map[string]*Session),
		stagedLoad:  make(map[string]domain.SavedMeal),
		stagedLogin: make(map[string]domain.PlannerState),
	}
}

// StageMealLoad stages a "load to planner" transfer from the saved meals
// list. It fully replaces the planner state on the next session touch and
// is cleared after use.
func (m *Manager) StageMealLoad(identityKey string, meal domain.SavedMeal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stagedLoad[identityKey] = meal
}

// StageLogin stages the planner payload written before redirecting to the
// identity provider, keyed by the anonymous session key the browser keeps
// across the redirect.
func (m *Manager) StageLogin(sessionKey string, state domain.PlannerState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stagedLogin[sessionKey] = state
}

// Session returns the live session for the identity, creating and loading
// it on first touch. sessionKey carries the browser's anonymous session
// key, used to find a staged post-login payload after authentication.
func (m *Manager) Session(ctx context.Context, identity domain.Identity, sessionKey string) *Session {
	m.mu.Lock()
	s, ok := m.sessions[identity.Key]
	if !ok {
		s = &Session{
			identity: identity,
			store:    NewStore(),
			debounce: NewDebouncer(m.opts.DebounceWindow),
			planners: m.planners,
			meals:    m.meals,
			drafts:   m.drafts,
			logger:   m.logger,
		}
		m.sessions[identity.Key] = s
	}
	m.mu.Unlock()

	if !ok {
		m.load(ctx, s, sessionKey)
	} else {
		m.applyStaged(ctx, s, sessionKey)
	}
	return s
}

// Drop discards the in-memory session for an identity.
func (m *Manager) Drop(identityKey string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[identityKey]; ok {
		s.debounce.Stop()
		delete(m.sessions, identityKey)
	}
}

// FlushAll runs every pending auto-save, used at shutdown.
func (m *Manager) FlushAll() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()
	for _, s := range sessions {
		s.Flush()
	}
}

// load runs the startup precedence chain: staged transfers first, then
// the persisted record, then a recent local draft, then an empty planner.
func (m *Manager) load(ctx context.Context, s *Session, sessionKey string) {
	if m.applyStaged(ctx, s, sessionKey) {
		return
	}

	state, err := m.planners.Get(ctx, s.identity.Key)
	if err != nil {
		// 読み込み失敗時はフォールバックチェーンを継続する
		m.logger.WithError(err).WithField("identity_key", s.identity.Key).Warn("保存済みプランナーの取得に失敗")
	}
	if state != nil {
		s.restore(*state)
		m.logger.WithField("identity_key", s.identity.Key).Debug("保存済みプランナーを復元しました")
		return
	}

	if draft, ok := m.drafts.Get(s.identity.Key); ok && time.Since(draft.Timestamp) < m.opts.DraftMaxAge && len(draft.Entries) > 0 {
		s.restore(domain.PlannerState{Entries: draft.Entries, MealName: draft.MealName})
		m.logger.WithField("identity_key", s.identity.Key).Debug("ローカルドラフトを復元しました")
		return
	}
	// 何も無ければデフォルト名の空プランナーのまま
}

// applyStaged applies at most one staged transfer. A staged meal load
// wins over a staged login payload, which then stays untouched.
func (m *Manager) applyStaged(ctx context.Context, s *Session, sessionKey string) bool {
	m.mu.Lock()
	if meal, ok := m.stagedLoad[s.identity.Key]; ok {
		delete(m.stagedLoad, s.identity.Key)
		m.mu.Unlock()
		s.restore(domain.PlannerState{Entries: meal.Entries, MealName: meal.MealName})
		s.writeDraft()
		m.logger.WithFields(logrus.Fields{
			"identity_key": s.identity.Key,
			"meal_id":      meal.ID,
		}).Info("保存済みミールをプランナーへ読み込みました")
		return true
	}

	if sessionKey != "" {
		if state, ok := m.stagedLogin[sessionKey]; ok {
			delete(m.stagedLogin, sessionKey)
			m.mu.Unlock()
			s.restore(state)
			s.writeDraft()
			// デバウンスを経由しない明示的な保存で認証済みレコードへ移行する
			if err := s.saveNow(ctx); err != nil {
				m.logger.WithError(err).WithField("identity_key", s.identity.Key).Warn("ログイン移行時の保存に失敗")
			}
			if m.opts.DeleteAnonOnMigrate && s.identity.Authenticated && sessionKey != s.identity.Key {
				if err := m.planners.Delete(ctx, sessionKey); err != nil {
					m.logger.WithError(err).WithField("session_key", sessionKey).Warn("匿名レコードの削除に失敗")
				}
			}
			m.logger.WithField("identity_key", s.identity.Key).Info("ログイン前のプランナーを引き継ぎました")
			return true
		}
	}
	m.mu.Unlock()
	return false
}
