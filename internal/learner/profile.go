// Package learner defines the learner profile: the one mutable aggregate of
// the academy. Profiles reference catalog entities by id only.
package learner

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the learner's access role.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// ExperienceLevel is the self-reported marketing experience captured at onboarding.
type ExperienceLevel string

const (
	ExperienceNone         ExperienceLevel = "No experience"
	ExperienceBeginner     ExperienceLevel = "Beginner"
	ExperienceIntermediate ExperienceLevel = "Intermediate"
	ExperienceAdvanced     ExperienceLevel = "Advanced"
)

// ExperienceLevels lists the onboarding choices in display order.
var ExperienceLevels = []ExperienceLevel{
	ExperienceNone, ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced,
}

// LearningGoal is why the learner signed up.
type LearningGoal string

const (
	GoalCareer         LearningGoal = "Start a career"
	GoalJobImprovement LearningGoal = "Improve job"
	GoalBusiness       LearningGoal = "Grow business"
	GoalPersonal       LearningGoal = "Personal interest"
)

// LearningGoals lists the onboarding choices in display order.
var LearningGoals = []LearningGoal{
	GoalCareer, GoalJobImprovement, GoalBusiness, GoalPersonal,
}

// Profile is one learner's progress record. It is passed and returned by
// value; callers must use Clone before mutating slices of a shared copy.
type Profile struct {
	ID                       string          `json:"id"`
	Name                     string          `json:"name"`
	Email                    string          `json:"email"`
	Role                     Role            `json:"role"`
	ExperienceLevel          ExperienceLevel `json:"experienceLevel"`
	LearningGoal             LearningGoal    `json:"learningGoal"`
	XP                       int             `json:"xp"`
	Streak                   int             `json:"streak"`
	LongestStreak            int             `json:"longestStreak"`
	LastActive               time.Time       `json:"lastActive"`
	CompletedModules         []string        `json:"completedModules"`
	CompletedCurriculums     []string        `json:"completedCurriculums"`
	FinalExamsPassed         []string        `json:"finalExamsPassed"`
	Badges                   []string        `json:"badges"`
	LastAccessedTopicID      string          `json:"lastAccessedTopicId,omitempty"`
	LastAccessedCurriculumID string          `json:"lastAccessedCurriculumId,omitempty"`
	CreatedAt                time.Time       `json:"createdAt"`
	UpdatedAt                time.Time       `json:"updatedAt"`
}

// New creates a fresh profile from onboarding answers. Emails containing
// "admin" get the admin role. A new learner starts on a one-day streak.
func New(name, email string, level ExperienceLevel, goal LearningGoal, now time.Time) Profile {
	role := RoleStudent
	if strings.Contains(strings.ToLower(email), "admin") {
		role = RoleAdmin
	}
	return Profile{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(name),
		Email:           strings.TrimSpace(email),
		Role:            role,
		ExperienceLevel: level,
		LearningGoal:    goal,
		Streak:          1,
		LongestStreak:   1,
		LastActive:      now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Clone returns a deep copy whose slices do not alias p's.
func (p Profile) Clone() Profile {
	c := p
	c.CompletedModules = slices.Clone(p.CompletedModules)
	c.CompletedCurriculums = slices.Clone(p.CompletedCurriculums)
	c.FinalExamsPassed = slices.Clone(p.FinalExamsPassed)
	c.Badges = slices.Clone(p.Badges)
	return c
}

// IsAdmin reports whether the profile may open the admin view.
func (p Profile) IsAdmin() bool { return p.Role == RoleAdmin }

// HasCompletedTopic reports whether topicID is in CompletedModules.
func (p Profile) HasCompletedTopic(topicID string) bool {
	return slices.Contains(p.CompletedModules, topicID)
}

// HasCompletedCurriculum reports whether currID is in CompletedCurriculums.
func (p Profile) HasCompletedCurriculum(currID string) bool {
	return slices.Contains(p.CompletedCurriculums, currID)
}

// HasPassedExam reports whether the final exam of currID was passed.
func (p Profile) HasPassedExam(currID string) bool {
	return slices.Contains(p.FinalExamsPassed, currID)
}

// HasBadge reports whether the named pillar badge was earned.
func (p Profile) HasBadge(name string) bool {
	return slices.Contains(p.Badges, name)
}

// AddToSet appends id to set unless already present. The second return
// value reports whether the set grew.
func AddToSet(set []string, id string) ([]string, bool) {
	if slices.Contains(set, id) {
		return set, false
	}
	return append(slices.Clone(set), id), true
}

// MatchesEmail compares emails case-insensitively, ignoring surrounding space.
func (p Profile) MatchesEmail(email string) bool {
	return strings.EqualFold(strings.TrimSpace(p.Email), strings.TrimSpace(email))
}
