package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jrsteele09/podmixer-console/internal/errors"
	"github.com/jrsteele09/podmixer-console/token"
	"github.com/rs/zerolog/log"
)

// LoginPath is the login entry point every logout navigates back to.
const LoginPath = "/login"

// State is a snapshot of the operator's session.
type State struct {
	LoggedIn  bool
	Token     string
	Subject   string
	ExpiresAt time.Time
}

// Navigator receives the path the console should show next. Logout always
// signals LoginPath.
type Navigator func(path string)

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces the wall clock, typically with clockfake.Clock.
func WithClock(c Clock) Option {
	return func(m *Manager) { m.clock = c }
}

// WithDecoder replaces token.Decode.
func WithDecoder(d token.Decoder) Option {
	return func(m *Manager) { m.decode = d }
}

// WithNavigator registers the logout navigation signal.
func WithNavigator(n Navigator) Option {
	return func(m *Manager) { m.navigate = n }
}

// Manager owns the console's single authentication session: the bearer token,
// its durable copy and the timer that ends it at the token's expiry instant.
//
// The session is logged in only while an auto-logout timer for the current
// token is pending. Establishing or ending a session always stops the
// previous timer first, so at most one is ever active.
type Manager struct {
	store    Store
	decode   token.Decoder
	clock    Clock
	navigate Navigator

	mu         sync.Mutex
	state      State
	timer      Timer
	generation uint64 // bumped whenever the timer is replaced or stopped

	listenersMu  sync.Mutex
	listeners    map[uint64]func(State)
	nextListener uint64
}

// NewManager creates a logged out Manager over store. Call Restore once at
// startup to pick up a persisted session.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:     store,
		decode:    token.Decode,
		clock:     SystemClock,
		navigate:  func(string) {},
		listeners: make(map[uint64]func(State)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Restore reads the persisted token and, if it is still valid, re-establishes
// the session and schedules its auto-logout. A missing, unreadable or expired
// token leaves the session logged out; an expired one is purged from storage.
func (m *Manager) Restore(ctx context.Context) State {
	m.mu.Lock()
	raw, err := m.store.Get(ctx)
	if err != nil {
		state := m.state
		m.mu.Unlock()
		if !errors.Is(err, errors.ErrTokenNotFound) {
			log.Err(err).Msg("session: failed to read stored token")
		}
		return state
	}
	state, changed, err := m.establishLocked(ctx, raw)
	m.mu.Unlock()

	if err != nil {
		log.Info().Err(err).Msg("session: stored token discarded")
	}
	if changed {
		m.notify(state)
	}
	return state
}

// Login persists a newly issued token and establishes the session. A token
// that is malformed or already expired ends any current session instead and
// the returned error wraps errors.ErrTokenExpired.
func (m *Manager) Login(ctx context.Context, raw string) (State, error) {
	m.mu.Lock()
	if err := m.store.Set(ctx, raw); err != nil {
		state, changed := m.clearLocked(ctx, true)
		m.mu.Unlock()
		if changed {
			m.notify(state)
		}
		m.navigate(LoginPath)
		return state, errors.Wrapf(err, "[Manager Login] failed to persist token")
	}
	state, changed, err := m.establishLocked(ctx, raw)
	m.mu.Unlock()

	if changed {
		m.notify(state)
	}
	if err != nil {
		m.navigate(LoginPath)
		return state, fmt.Errorf("[Manager Login] %w", err)
	}
	log.Info().Str("sub", state.Subject).Time("expires_at", state.ExpiresAt).Msg("session: logged in")
	return state, nil
}

// Logout stops the auto-logout timer, purges the stored token and signals
// navigation to LoginPath. Calling it while logged out only repeats the
// navigation signal.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	state, changed := m.clearLocked(ctx, true)
	m.mu.Unlock()

	if changed {
		log.Info().Msg("session: logged out")
		m.notify(state)
	}
	m.navigate(LoginPath)
}

// Sync reconciles the session with storage after another process changed the
// shared entry. A different stored token is adopted as if it had been
// restored; a vanished entry ends the session. Storage is read under the
// session lock so a concurrent Logout cannot be undone by a stale read.
func (m *Manager) Sync(ctx context.Context) State {
	m.mu.Lock()
	raw, err := m.store.Get(ctx)
	var (
		state   State
		changed bool
	)
	switch {
	case err != nil && !errors.Is(err, errors.ErrTokenNotFound):
		state = m.state
		m.mu.Unlock()
		log.Err(err).Msg("session: sync failed to read stored token")
		return state
	case err != nil:
		state, changed = m.clearLocked(ctx, false)
		err = nil
	case raw == m.state.Token:
		state = m.state
	default:
		state, changed, err = m.establishLocked(ctx, raw)
	}
	m.mu.Unlock()

	if err != nil {
		log.Info().Err(err).Msg("session: synced token discarded")
	}
	if changed {
		m.notify(state)
		if !state.LoggedIn {
			m.navigate(LoginPath)
		}
	}
	return state
}

// IsLoggedIn reports whether a valid session is established.
func (m *Manager) IsLoggedIn() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.LoggedIn
}

// State returns a snapshot of the session.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe registers fn to receive every state transition. fn runs on the
// goroutine that caused the transition, after the session lock is released.
func (m *Manager) Subscribe(fn func(State)) (unsubscribe func()) {
	m.listenersMu.Lock()
	defer m.listenersMu.Unlock()

	id := m.nextListener
	m.nextListener++
	m.listeners[id] = fn
	return func() {
		m.listenersMu.Lock()
		defer m.listenersMu.Unlock()
		delete(m.listeners, id)
	}
}

// Close releases the pending auto-logout timer. Storage is left untouched so
// the session can be restored by the next process.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopTimerLocked()
	m.state = State{}
}

// establishLocked replaces the current session with one for raw. It reports
// whether the visible state changed. Expired or unreadable tokens clear the
// session and storage and return an error wrapping ErrTokenExpired.
func (m *Manager) establishLocked(ctx context.Context, raw string) (State, bool, error) {
	claims, err := m.decode(raw)
	if err != nil {
		claims = token.Claims{ExpiresAt: time.Unix(0, 0)}
	}

	remaining := claims.Remaining(m.clock.Now())
	if remaining <= 0 {
		state, changed := m.clearLocked(ctx, true)
		if err != nil {
			return state, changed, fmt.Errorf("%w: %v", errors.ErrTokenExpired, err)
		}
		return state, changed, errors.ErrTokenExpired
	}

	m.stopTimerLocked()
	generation := m.generation
	m.timer = m.clock.AfterFunc(remaining, func() { m.expire(generation) })

	previous := m.state
	m.state = State{
		LoggedIn:  true,
		Token:     raw,
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt,
	}
	return m.state, previous != m.state, nil
}

// clearLocked ends the session. purge also deletes the stored token.
func (m *Manager) clearLocked(ctx context.Context, purge bool) (State, bool) {
	m.stopTimerLocked()
	if purge {
		if err := m.store.Delete(ctx); err != nil {
			log.Err(err).Msg("session: failed to purge stored token")
		}
	}
	changed := m.state.LoggedIn
	m.state = State{}
	return m.state, changed
}

func (m *Manager) stopTimerLocked() {
	m.generation++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// expire is the auto-logout callback. A timer superseded between firing and
// acquiring the lock carries a stale generation and does nothing.
func (m *Manager) expire(generation uint64) {
	m.mu.Lock()
	if generation != m.generation || !m.state.LoggedIn {
		m.mu.Unlock()
		return
	}
	m.timer = nil
	state, changed := m.clearLocked(context.Background(), true)
	m.mu.Unlock()

	log.Info().Msg("session: token expired, logged out")
	if changed {
		m.notify(state)
	}
	m.navigate(LoginPath)
}

func (m *Manager) notify(state State) {
	m.listenersMu.Lock()
	fns := make([]func(State), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.listenersMu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}
