package progress

import (
	"math/rand/v2"
	"reflect"
	"slices"
	"testing"
	"time"

	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/learner"
)

var t0 = time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)

func threeTopics() catalog.Curriculum {
	return catalog.Curriculum{
		ID:         "curr-x",
		Pillar:     "x",
		PillarName: "Pillar X",
		Order:      1,
		Topics:     []catalog.Topic{{ID: "A"}, {ID: "B"}, {ID: "C"}},
	}
}

func TestReconcileStreak_Transitions(t *testing.T) {
	tests := []struct {
		name        string
		elapsed     time.Duration
		streak      int
		longest     int
		wantStreak  int
		wantLongest int
	}{
		{"half a day keeps streak", 12 * time.Hour, 4, 6, 4, 6},
		{"exactly one day extends", 24 * time.Hour, 4, 6, 5, 6},
		{"one and a half days extends", 36 * time.Hour, 6, 6, 7, 7},
		{"two and a half days resets", 60 * time.Hour, 4, 6, 1, 6},
		{"clock went backwards", -5 * time.Hour, 3, 3, 3, 3},
		{"same instant", 0, 2, 9, 2, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := learner.Profile{Streak: tt.streak, LongestStreak: tt.longest, LastActive: t0}
			now := t0.Add(tt.elapsed)

			got := ReconcileStreak(p, now)

			if got.Streak != tt.wantStreak {
				t.Errorf("Streak = %d, want %d", got.Streak, tt.wantStreak)
			}
			if got.LongestStreak != tt.wantLongest {
				t.Errorf("LongestStreak = %d, want %d", got.LongestStreak, tt.wantLongest)
			}
			if !got.LastActive.Equal(now) {
				t.Errorf("LastActive = %v, want %v", got.LastActive, now)
			}
			if p.Streak != tt.streak || !p.LastActive.Equal(t0) {
				t.Error("input profile was mutated")
			}
		})
	}
}

func TestReconcileStreak_LongestNeverBelowStreak(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 7))
	p := learner.Profile{Streak: 1, LongestStreak: 1, LastActive: t0}
	now := t0

	for i := range 500 {
		now = now.Add(time.Duration(r.IntN(80)) * time.Hour)
		p = ReconcileStreak(p, now)
		if p.LongestStreak < p.Streak {
			t.Fatalf("step %d: LongestStreak %d < Streak %d", i, p.LongestStreak, p.Streak)
		}
	}
}

func TestIsUnlocked(t *testing.T) {
	c := threeTopics()

	tests := []struct {
		name      string
		completed []string
		topic     string
		want      bool
	}{
		{"first always open", nil, "A", true},
		{"second locked", nil, "B", false},
		{"second opens after first", []string{"A"}, "B", true},
		{"third not opened by first", []string{"A"}, "C", false},
		{"third opens after second alone", []string{"B"}, "C", true},
		{"unknown topic locked", []string{"A", "B", "C"}, "Z", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := learner.Profile{CompletedModules: tt.completed}
			if got := IsUnlocked(tt.topic, c, p); got != tt.want {
				t.Errorf("IsUnlocked(%s) = %v, want %v", tt.topic, got, tt.want)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	four := catalog.Curriculum{Topics: []catalog.Topic{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}}
	p := learner.Profile{CompletedModules: []string{"b", "elsewhere"}}

	if got := Percent(four, p); got != 25.0 {
		t.Errorf("Percent = %v, want 25", got)
	}
	if got := Percent(catalog.Curriculum{}, p); got != 0 {
		t.Errorf("Percent(empty) = %v, want 0", got)
	}
}

func TestCompleteTopic_AwardsOnce(t *testing.T) {
	c := threeTopics()
	p := learner.Profile{XP: 100}

	p1 := CompleteTopic(p, c, "A")
	if p1.XP != 400 {
		t.Errorf("XP = %d, want 400", p1.XP)
	}
	if !slices.Equal(p1.CompletedModules, []string{"A"}) {
		t.Errorf("CompletedModules = %v, want [A]", p1.CompletedModules)
	}
	if p1.LastAccessedTopicID != "A" || p1.LastAccessedCurriculumID != "curr-x" {
		t.Errorf("last accessed = %s/%s, want curr-x/A", p1.LastAccessedCurriculumID, p1.LastAccessedTopicID)
	}

	p2 := CompleteTopic(p1, c, "A")
	if p2.XP != 400 {
		t.Errorf("repeat completion XP = %d, want 400", p2.XP)
	}
	if len(p2.CompletedModules) != 1 {
		t.Errorf("CompletedModules = %v, want one entry", p2.CompletedModules)
	}

	if p.XP != 100 || len(p.CompletedModules) != 0 {
		t.Error("input profile was mutated")
	}
}

func TestCompleteTopic_UnknownTopicIsNoop(t *testing.T) {
	p := learner.Profile{XP: 50}
	if got := CompleteTopic(p, threeTopics(), "Z"); !reflect.DeepEqual(got, p) {
		t.Errorf("CompleteTopic(Z) = %+v, want %+v", got, p)
	}
}

func TestCompleteCurriculum(t *testing.T) {
	c := threeTopics()
	p := CompleteCurriculum(learner.Profile{}, c)
	p = CompleteCurriculum(p, c)

	if !slices.Equal(p.CompletedCurriculums, []string{"curr-x"}) {
		t.Errorf("CompletedCurriculums = %v, want [curr-x]", p.CompletedCurriculums)
	}
	if !slices.Equal(p.Badges, []string{"Pillar X"}) {
		t.Errorf("Badges = %v, want [Pillar X]", p.Badges)
	}
}

func TestPassExam_AwardsOnce(t *testing.T) {
	c := threeTopics()
	p := PassExam(learner.Profile{XP: 200}, c)
	if p.XP != 1200 {
		t.Errorf("XP = %d, want 1200", p.XP)
	}
	if !slices.Equal(p.FinalExamsPassed, []string{"curr-x"}) {
		t.Errorf("FinalExamsPassed = %v, want [curr-x]", p.FinalExamsPassed)
	}

	p = PassExam(p, c)
	if p.XP != 1200 {
		t.Errorf("second pass XP = %d, want 1200", p.XP)
	}
	if len(p.FinalExamsPassed) != 1 {
		t.Errorf("FinalExamsPassed = %v, want one entry", p.FinalExamsPassed)
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{0, 1}, {999, 1}, {1000, 2}, {4850, 5}, {-10, 1},
	}
	for _, tt := range tests {
		if got := Level(tt.xp); got != tt.want {
			t.Errorf("Level(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
	if got := LevelProgress(4850); got != 0.85 {
		t.Errorf("LevelProgress(4850) = %v, want 0.85", got)
	}
}

func TestResumeTarget(t *testing.T) {
	c := threeTopics()

	tests := []struct {
		name string
		p    learner.Profile
		want string
	}{
		{"fresh learner starts at first", learner.Profile{}, "A"},
		{"first incomplete", learner.Profile{CompletedModules: []string{"A"}}, "B"},
		{"last accessed wins", learner.Profile{LastAccessedTopicID: "C", LastAccessedCurriculumID: "curr-x"}, "C"},
		{"completed last accessed skipped", learner.Profile{
			CompletedModules: []string{"A"}, LastAccessedTopicID: "A", LastAccessedCurriculumID: "curr-x",
		}, "B"},
		{"other curriculum pointer ignored", learner.Profile{LastAccessedTopicID: "C", LastAccessedCurriculumID: "curr-y"}, "A"},
		{"all complete falls back to first", learner.Profile{CompletedModules: []string{"A", "B", "C"}}, "A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResumeTarget(c, tt.p)
			if !ok || got.ID != tt.want {
				t.Errorf("ResumeTarget = %q, %v; want %q", got.ID, ok, tt.want)
			}
		})
	}

	if _, ok := ResumeTarget(catalog.Curriculum{}, learner.Profile{}); ok {
		t.Error("ResumeTarget(empty) should be false")
	}
}

func TestActiveTracksAndNext(t *testing.T) {
	c1 := catalog.Curriculum{ID: "c1", Order: 1, Topics: []catalog.Topic{{ID: "a"}, {ID: "b"}}}
	c2 := catalog.Curriculum{ID: "c2", Order: 2, Topics: []catalog.Topic{{ID: "c"}}}
	c3 := catalog.Curriculum{ID: "c3", Order: 3, Topics: []catalog.Topic{{ID: "d"}, {ID: "e"}}}
	all := []catalog.Curriculum{c3, c1, c2}

	p := learner.Profile{
		CompletedModules:     []string{"a", "c", "d"},
		CompletedCurriculums: []string{"c1"},
	}

	var ids []string
	for _, c := range ActiveTracks(all, p) {
		ids = append(ids, c.ID)
	}
	if !slices.Equal(ids, []string{"c3", "c1"}) {
		t.Errorf("ActiveTracks = %v, want [c3 c1]", ids)
	}

	next, ok := NextCurriculum(all, p)
	if !ok || next.ID != "c2" {
		t.Errorf("NextCurriculum = %q, %v; want c2", next.ID, ok)
	}

	p.CompletedCurriculums = []string{"c1", "c2", "c3"}
	if _, ok := NextCurriculum(all, p); ok {
		t.Error("NextCurriculum with everything complete should be false")
	}
}

func TestLeaderboard(t *testing.T) {
	profiles := []learner.Profile{
		{Name: "Zed", XP: 500},
		{Name: "amy", XP: 900},
		{Name: "Bob", XP: 500},
		{Name: "Cat", XP: 100},
	}

	top := Leaderboard(profiles, 3)
	names := make([]string, len(top))
	for i, p := range top {
		names[i] = p.Name
	}
	if !slices.Equal(names, []string{"amy", "Bob", "Zed"}) {
		t.Errorf("Leaderboard = %v, want [amy Bob Zed]", names)
	}
	if profiles[0].Name != "Zed" {
		t.Error("input order was changed")
	}
	if got := len(Leaderboard(profiles, 0)); got != 4 {
		t.Errorf("len(Leaderboard(0)) = %d, want 4", got)
	}
}
