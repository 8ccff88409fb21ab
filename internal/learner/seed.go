package learner

import "time"

// Seeds returns the sample learners installed into an empty collection so
// the leaderboard and admin view have something to show.
func Seeds(now time.Time) []Profile {
	return []Profile{
		{
			ID:                   "u1",
			Name:                 "Sarah Chen",
			Email:                "sarah@example.com",
			Role:                 RoleStudent,
			ExperienceLevel:      ExperienceIntermediate,
			LearningGoal:         GoalCareer,
			XP:                   4850,
			Streak:               12,
			LongestStreak:        20,
			LastActive:           now,
			CompletedModules:     []string{"topic-foundation-0", "topic-foundation-1"},
			CompletedCurriculums: []string{},
			FinalExamsPassed:     []string{},
			Badges:               []string{"Core Foundations"},
			CreatedAt:            time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			UpdatedAt:            now,
		},
		{
			ID:                   "u2",
			Name:                 "Marcus Bell",
			Email:                "marcus@example.com",
			Role:                 RoleStudent,
			ExperienceLevel:      ExperienceAdvanced,
			LearningGoal:         GoalBusiness,
			XP:                   4200,
			Streak:               5,
			LongestStreak:        15,
			LastActive:           now,
			CompletedModules:     []string{"topic-ads-0", "topic-ads-1", "topic-ads-2"},
			CompletedCurriculums: []string{},
			FinalExamsPassed:     []string{},
			Badges:               []string{"Paid Advertising (PPC)"},
			CreatedAt:            time.Date(2024, 2, 10, 14, 30, 0, 0, time.UTC),
			UpdatedAt:            now,
		},
	}
}
