// Package progress implements the learner progression rules: streaks,
// topic unlocking, completion awards and the derived stats shown on the
// dashboard. Every function is pure: it takes a profile and returns a new
// one, leaving the input untouched.
package progress

import (
	"slices"
	"strings"
	"time"

	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/learner"
)

const (
	// TopicXP is awarded the first time a topic quiz is passed.
	TopicXP = 300

	// ExamXP is awarded the first time a final exam is passed.
	ExamXP = 1000

	// XPPerLevel is the XP span of one level.
	XPPerLevel = 1000
)

const day = 24 * time.Hour

// ReconcileStreak updates the daily streak for a visit at now. Gaps are
// measured in whole elapsed days, not calendar boundaries: under one day
// keeps the streak, exactly one day extends it, more resets it to 1.
// A clock that went backwards counts as no gap.
func ReconcileStreak(p learner.Profile, now time.Time) learner.Profile {
	out := p.Clone()

	diffDays := int(now.Sub(p.LastActive) / day)
	switch {
	case diffDays <= 0:
	case diffDays == 1:
		out.Streak++
	default:
		out.Streak = 1
	}

	out.LongestStreak = max(out.LongestStreak, out.Streak)
	out.LastActive = now
	return out
}

// Percent returns the share of c's topics the learner completed, 0..100.
// A curriculum without topics is 0%.
func Percent(c catalog.Curriculum, p learner.Profile) float64 {
	if len(c.Topics) == 0 {
		return 0
	}
	done := 0
	for _, t := range c.Topics {
		if p.HasCompletedTopic(t.ID) {
			done++
		}
	}
	return 100 * float64(done) / float64(len(c.Topics))
}

// IsUnlocked reports whether topicID can be opened. The first topic is always
// open; any later topic opens once its immediate predecessor is complete.
// Topics that are not part of c are locked.
func IsUnlocked(topicID string, c catalog.Curriculum, p learner.Profile) bool {
	i := c.TopicIndex(topicID)
	switch {
	case i < 0:
		return false
	case i == 0:
		return true
	default:
		return p.HasCompletedTopic(c.Topics[i-1].ID)
	}
}

// Visit records topicID as the learner's resume position.
func Visit(p learner.Profile, c catalog.Curriculum, topicID string) learner.Profile {
	if c.TopicIndex(topicID) < 0 {
		return p
	}
	out := p.Clone()
	out.LastAccessedTopicID = topicID
	out.LastAccessedCurriculumID = c.ID
	return out
}

// CompleteTopic marks a topic passed. XP is granted only when the topic was
// not already complete. The resume pointers move to the topic either way.
func CompleteTopic(p learner.Profile, c catalog.Curriculum, topicID string) learner.Profile {
	if c.TopicIndex(topicID) < 0 {
		return p
	}
	out := Visit(p, c, topicID)

	var added bool
	out.CompletedModules, added = learner.AddToSet(out.CompletedModules, topicID)
	if added {
		out.XP += TopicXP
	}
	return out
}

// CompleteCurriculum records c as finished and grants its pillar badge.
func CompleteCurriculum(p learner.Profile, c catalog.Curriculum) learner.Profile {
	out := p.Clone()
	out.CompletedCurriculums, _ = learner.AddToSet(out.CompletedCurriculums, c.ID)
	if c.PillarName != "" {
		out.Badges, _ = learner.AddToSet(out.Badges, c.PillarName)
	}
	return out
}

// PassExam certifies c. XP is granted only on the first pass.
func PassExam(p learner.Profile, c catalog.Curriculum) learner.Profile {
	out := p.Clone()
	var added bool
	out.FinalExamsPassed, added = learner.AddToSet(out.FinalExamsPassed, c.ID)
	if added {
		out.XP += ExamXP
	}
	return out
}

// Level derives the learner level from XP, starting at 1.
func Level(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// LevelProgress returns how far into the current level xp is, 0..1.
func LevelProgress(xp int) float64 {
	if xp < 0 {
		return 0
	}
	return float64(xp%XPPerLevel) / XPPerLevel
}

// ResumeTarget picks where the learner should continue in c: the last
// accessed topic when it belongs to c and is not yet complete, else the
// first incomplete topic, else the first topic. Returns false only for a
// curriculum without topics.
func ResumeTarget(c catalog.Curriculum, p learner.Profile) (catalog.Topic, bool) {
	if len(c.Topics) == 0 {
		return catalog.Topic{}, false
	}
	if p.LastAccessedCurriculumID == c.ID {
		if t, ok := c.Topic(p.LastAccessedTopicID); ok && !p.HasCompletedTopic(t.ID) {
			return t, true
		}
	}
	for _, t := range c.Topics {
		if !p.HasCompletedTopic(t.ID) {
			return t, true
		}
	}
	return c.Topics[0], true
}

// ActiveTracks returns the curriculums the learner has started but not
// finished, in catalog order.
func ActiveTracks(currs []catalog.Curriculum, p learner.Profile) []catalog.Curriculum {
	var out []catalog.Curriculum
	for _, c := range currs {
		pct := Percent(c, p)
		if pct > 0 && pct < 100 {
			out = append(out, c)
		}
	}
	return out
}

// NextCurriculum returns the first curriculum by order the learner has not
// completed.
func NextCurriculum(currs []catalog.Curriculum, p learner.Profile) (catalog.Curriculum, bool) {
	sorted := slices.Clone(currs)
	slices.SortStableFunc(sorted, func(a, b catalog.Curriculum) int { return a.Order - b.Order })
	for _, c := range sorted {
		if !p.HasCompletedCurriculum(c.ID) {
			return c, true
		}
	}
	return catalog.Curriculum{}, false
}

// Leaderboard ranks profiles by XP descending, ties broken by name, and
// keeps the top n. n <= 0 keeps everyone.
func Leaderboard(profiles []learner.Profile, n int) []learner.Profile {
	ranked := slices.Clone(profiles)
	slices.SortStableFunc(ranked, func(a, b learner.Profile) int {
		if a.XP != b.XP {
			return b.XP - a.XP
		}
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
