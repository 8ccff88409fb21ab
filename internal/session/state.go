// Package session owns the signed-in learner: sign-in and onboarding,
// persisting every profile change, attempt history and the tutor
// transcript. Progress rules live in package progress; a Session only
// stores what they return.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/abhisek/academy/internal/learner"
	"github.com/abhisek/academy/internal/platform/logger"
	"github.com/abhisek/academy/internal/store"
)

// HistoryLimit is how many transcript entries are loaded on sign-in.
const HistoryLimit = 200

var (
	// ErrSignedOut is returned by operations that need a learner.
	ErrSignedOut = errors.New("session: no learner signed in")

	// ErrUnknownEmail is returned by Login when no learner has the email.
	ErrUnknownEmail = errors.New("session: no learner with that email")

	// ErrEmailTaken is returned by Register for an email already in use.
	ErrEmailTaken = errors.New("session: email already registered")

	// ErrInvalidRegistration is returned when onboarding answers are
	// incomplete.
	ErrInvalidRegistration = errors.New("session: name and email are required")

	// ErrForeignProfile is returned by Save for a profile other than the
	// signed-in one.
	ErrForeignProfile = errors.New("session: profile belongs to another learner")
)

// Repos are the stores a Session writes through.
type Repos struct {
	Profiles store.ProfileRepo
	Chats    store.ChatRepo
	Attempts store.AttemptRepo
}

// ReposFrom returns the repositories of s.
func ReposFrom(s *store.Store) Repos {
	return Repos{Profiles: s.Profiles(), Chats: s.Chats(), Attempts: s.Attempts()}
}

// Session is the state container for the signed-in learner. The profile
// it hands out is a copy; changes go back through Save.
type Session struct {
	repos Repos
	log   *logger.Logger
	now   func() time.Time

	mu       sync.RWMutex
	profile  learner.Profile
	signedIn bool
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the time source used for streaks and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New creates a signed-out Session.
func New(repos Repos, log *logger.Logger, opts ...Option) *Session {
	if log == nil {
		log = logger.Nop()
	}
	s := &Session{repos: repos, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Profile returns a copy of the signed-in learner's profile.
func (s *Session) Profile() (learner.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.signedIn {
		return learner.Profile{}, false
	}
	return s.profile.Clone(), true
}

// SignedIn reports whether a learner is signed in.
func (s *Session) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.signedIn
}

func (s *Session) set(p learner.Profile) {
	s.mu.Lock()
	s.profile = p.Clone()
	s.signedIn = true
	s.mu.Unlock()
}

func (s *Session) clear() {
	s.mu.Lock()
	s.profile = learner.Profile{}
	s.signedIn = false
	s.mu.Unlock()
}

func (s *Session) current() (learner.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.signedIn {
		return learner.Profile{}, ErrSignedOut
	}
	return s.profile, nil
}
