package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/academy/internal/learner"
	"github.com/abhisek/academy/internal/progress"
	"github.com/abhisek/academy/internal/store"
)

// Registration holds the onboarding answers.
type Registration struct {
	Name            string
	Email           string
	ExperienceLevel learner.ExperienceLevel
	LearningGoal    learner.LearningGoal
}

// Seed installs the sample learners when the collection is empty. It
// returns how many were added.
func (s *Session) Seed(ctx context.Context) (int, error) {
	n, err := s.repos.Profiles.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count learners: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	seeds := learner.Seeds(s.now())
	for _, p := range seeds {
		if _, err := s.repos.Profiles.Upsert(ctx, p); err != nil {
			return 0, fmt.Errorf("seed %s: %w", p.ID, err)
		}
	}
	s.log.Info("seeded sample learners", "count", len(seeds))
	return len(seeds), nil
}

// Restore signs the previously active learner back in. It reports false
// when nobody was signed in or the learner no longer exists.
func (s *Session) Restore(ctx context.Context) (bool, error) {
	id, err := s.repos.Profiles.Active(ctx)
	if err != nil {
		return false, fmt.Errorf("read active learner: %w", err)
	}
	if id == "" {
		return false, nil
	}

	p, err := s.repos.Profiles.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		s.log.Warn("active learner missing", "learner_id", id)
		return false, s.repos.Profiles.SetActive(ctx, "")
	}
	if err != nil {
		return false, fmt.Errorf("load learner: %w", err)
	}
	if err := s.signIn(ctx, p); err != nil {
		return false, err
	}
	return true, nil
}

// Login signs in the learner registered with email.
func (s *Session) Login(ctx context.Context, email string) (learner.Profile, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return learner.Profile{}, ErrUnknownEmail
	}
	p, err := s.repos.Profiles.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return learner.Profile{}, ErrUnknownEmail
	}
	if err != nil {
		return learner.Profile{}, fmt.Errorf("find learner: %w", err)
	}
	if err := s.signIn(ctx, p); err != nil {
		return learner.Profile{}, err
	}
	out, _ := s.Profile()
	return out, nil
}

// Register creates a learner from onboarding answers and signs them in.
func (s *Session) Register(ctx context.Context, r Registration) (learner.Profile, error) {
	name, email := strings.TrimSpace(r.Name), strings.TrimSpace(r.Email)
	if name == "" || email == "" {
		return learner.Profile{}, ErrInvalidRegistration
	}
	_, err := s.repos.Profiles.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return learner.Profile{}, ErrEmailTaken
	case !errors.Is(err, store.ErrNotFound):
		return learner.Profile{}, fmt.Errorf("check email: %w", err)
	}

	level, goal := r.ExperienceLevel, r.LearningGoal
	if level == "" {
		level = learner.ExperienceNone
	}
	if goal == "" {
		goal = learner.GoalPersonal
	}

	p, err := s.repos.Profiles.Upsert(ctx, learner.New(name, email, level, goal, s.now()))
	if err != nil {
		return learner.Profile{}, fmt.Errorf("create learner: %w", err)
	}
	if err := s.repos.Profiles.SetActive(ctx, p.ID); err != nil {
		return learner.Profile{}, fmt.Errorf("set active learner: %w", err)
	}
	s.set(p)
	s.log.Info("learner registered", "learner_id", p.ID, "role", p.Role)
	return p.Clone(), nil
}

// signIn reconciles the streak for this visit, saves and makes p active.
func (s *Session) signIn(ctx context.Context, p learner.Profile) error {
	p = progress.ReconcileStreak(p, s.now())
	saved, err := s.repos.Profiles.Upsert(ctx, p)
	if err != nil {
		return fmt.Errorf("save learner: %w", err)
	}
	if err := s.repos.Profiles.SetActive(ctx, saved.ID); err != nil {
		return fmt.Errorf("set active learner: %w", err)
	}
	s.set(saved)
	s.log.Info("learner signed in", "learner_id", saved.ID, "streak", saved.Streak)
	return nil
}

// Logout signs the learner out. Their data stays.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.repos.Profiles.SetActive(ctx, ""); err != nil {
		return fmt.Errorf("clear active learner: %w", err)
	}
	s.clear()
	return nil
}

// Save persists p, which must be the signed-in learner's profile as
// returned by a progress function. It returns the stamped copy.
func (s *Session) Save(ctx context.Context, p learner.Profile) (learner.Profile, error) {
	cur, err := s.current()
	if err != nil {
		return learner.Profile{}, err
	}
	if p.ID != cur.ID {
		return learner.Profile{}, ErrForeignProfile
	}
	saved, err := s.repos.Profiles.Upsert(ctx, p)
	if err != nil {
		return learner.Profile{}, fmt.Errorf("save learner: %w", err)
	}
	s.set(saved)
	return saved.Clone(), nil
}

// Update applies fn to the signed-in profile and saves the result.
func (s *Session) Update(ctx context.Context, fn func(learner.Profile) learner.Profile) (learner.Profile, error) {
	cur, err := s.current()
	if err != nil {
		return learner.Profile{}, err
	}
	return s.Save(ctx, fn(cur.Clone()))
}

// RecordAttempt stores a finished quiz or exam for the signed-in learner.
func (s *Session) RecordAttempt(ctx context.Context, kind learner.AttemptKind, refID string, score, total int, passed bool) error {
	cur, err := s.current()
	if err != nil {
		return err
	}
	_, err = s.repos.Attempts.Record(ctx, learner.Attempt{
		Kind:        kind,
		LearnerID:   cur.ID,
		RefID:       refID,
		Score:       score,
		Total:       total,
		Passed:      passed,
		AttemptedAt: s.now(),
	})
	if err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	s.log.Debug("attempt recorded", "learner_id", cur.ID, "kind", kind, "ref", refID, "score", score, "total", total)
	return nil
}

// Attempts returns the signed-in learner's attempts, newest first.
func (s *Session) Attempts(ctx context.Context, limit int) ([]learner.Attempt, error) {
	cur, err := s.current()
	if err != nil {
		return nil, err
	}
	return s.repos.Attempts.ForLearner(ctx, cur.ID, store.QueryOpts{Limit: limit})
}

// ChatHistory loads the signed-in learner's transcript, oldest first.
func (s *Session) ChatHistory(ctx context.Context) ([]learner.ChatEntry, error) {
	cur, err := s.current()
	if err != nil {
		return nil, err
	}
	return s.repos.Chats.History(ctx, cur.ID, store.QueryOpts{Limit: HistoryLimit})
}

// AppendChat persists one transcript entry.
func (s *Session) AppendChat(ctx context.Context, e learner.ChatEntry) error {
	cur, err := s.current()
	if err != nil {
		return err
	}
	if err := s.repos.Chats.Append(ctx, cur.ID, e); err != nil {
		return fmt.Errorf("append chat: %w", err)
	}
	return nil
}

// ClearChat deletes the signed-in learner's transcript.
func (s *Session) ClearChat(ctx context.Context) error {
	cur, err := s.current()
	if err != nil {
		return err
	}
	return s.repos.Chats.Clear(ctx, cur.ID)
}

// Learners lists every learner, highest XP first.
func (s *Session) Learners(ctx context.Context) ([]learner.Profile, error) {
	return s.repos.Profiles.List(ctx)
}
