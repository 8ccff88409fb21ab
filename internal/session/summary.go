package session

import (
	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/learner"
	"github.com/abhisek/academy/internal/progress"
)

// CurriculumStatus is one curriculum as seen by a learner.
type CurriculumStatus struct {
	Curriculum catalog.Curriculum
	Percent    float64
	ExamPassed bool
}

// Summary holds the figures shown on the dashboard, the profile view and
// by the stats command.
type Summary struct {
	Level         int
	LevelProgress float64
	XP            int
	Streak        int
	LongestStreak int
	TopicsDone    int
	TopicsTotal   int
	Certificates  []catalog.Curriculum
	Badges        []string
	Active        []CurriculumStatus
	// Next is the first curriculum not yet completed; nil once all are.
	Next *catalog.Curriculum
}

// BuildSummary derives a Summary of p against cat. Ids in p that the
// catalog does not know are skipped.
func BuildSummary(cat *catalog.Catalog, p learner.Profile) Summary {
	sum := Summary{
		Level:         progress.Level(p.XP),
		LevelProgress: progress.LevelProgress(p.XP),
		XP:            p.XP,
		Streak:        p.Streak,
		LongestStreak: p.LongestStreak,
		TopicsTotal:   cat.TopicCount(),
		Badges:        p.Badges,
	}

	for _, id := range p.CompletedModules {
		if _, _, ok := cat.Topic(id); ok {
			sum.TopicsDone++
		}
	}
	for _, id := range p.FinalExamsPassed {
		if c, ok := cat.Curriculum(id); ok {
			sum.Certificates = append(sum.Certificates, c)
		}
	}
	for _, c := range progress.ActiveTracks(cat.Curriculums(), p) {
		sum.Active = append(sum.Active, CurriculumStatus{
			Curriculum: c,
			Percent:    progress.Percent(c, p),
			ExamPassed: p.HasPassedExam(c.ID),
		})
	}
	if c, ok := progress.NextCurriculum(cat.Curriculums(), p); ok {
		sum.Next = &c
	}
	return sum
}

// Statuses returns every curriculum of cat with p's progress, optionally
// limited to one pillar.
func Statuses(cat *catalog.Catalog, p learner.Profile, pillarID string) []CurriculumStatus {
	currs := cat.Curriculums()
	if pillarID != "" {
		currs = cat.ByPillar(pillarID)
	}
	out := make([]CurriculumStatus, 0, len(currs))
	for _, c := range currs {
		out = append(out, CurriculumStatus{
			Curriculum: c,
			Percent:    progress.Percent(c, p),
			ExamPassed: p.HasPassedExam(c.ID),
		})
	}
	return out
}
