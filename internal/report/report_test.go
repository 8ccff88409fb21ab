package report

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/learner"
)

func fixture(t *testing.T) (*catalog.Catalog, []learner.Profile, []learner.Attempt) {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)

	now := time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)
	ada := learner.New("Ada", "ada@example.com", learner.ExperienceLevels[0], learner.LearningGoals[0], now)
	ada.XP = 1600
	ada.CompletedModules = []string{"topic-foundation-0", "topic-foundation-1"}
	ada.FinalExamsPassed = []string{"curr-seo"}
	ada.Badges = []string{"Core Foundations"}

	bob := learner.New("Bob", "bob@example.com", learner.ExperienceLevels[0], learner.LearningGoals[0], now)

	attempts := []learner.Attempt{
		{Kind: learner.AttemptExam, LearnerID: ada.ID, RefID: "curr-seo", Score: 9, Total: 10, Passed: true, AttemptedAt: now},
		{Kind: learner.AttemptTopic, LearnerID: ada.ID, RefID: "topic-foundation-1", Score: 5, Total: 5, Passed: true, AttemptedAt: now},
		{Kind: learner.AttemptTopic, LearnerID: "gone", RefID: "topic-missing", Score: 2, Total: 5, AttemptedAt: now},
	}
	return cat, []learner.Profile{ada, bob}, attempts
}

func TestBuild(t *testing.T) {
	cat, profiles, attempts := fixture(t)

	wb, err := Build(cat, profiles, attempts)
	require.NoError(t, err)
	defer wb.Close()

	learners, err := wb.Rows(SheetLearners)
	require.NoError(t, err)
	require.Len(t, learners, 3)
	assert.Equal(t, "Name", learners[0][0])
	assert.Equal(t, []string{"Ada", "ada@example.com", "student", "2", "1600", "1", "1", "2", "0", "1", "Core Foundations", "2026-04-02 09:30"}, learners[1])

	prog, err := wb.Rows(SheetProgress)
	require.NoError(t, err)
	// Ada: foundation in progress plus the SEO exam; Bob has nothing.
	require.Len(t, prog, 3)
	assert.Equal(t, "Ada", prog[1][0])
	assert.Equal(t, "Core Foundations Mastery", prog[1][1])
	assert.Equal(t, "no", prog[1][4])
	assert.Equal(t, "yes", prog[2][4])

	hist, err := wb.Rows(SheetAttempts)
	require.NoError(t, err)
	require.Len(t, hist, 4)
	assert.Contains(t, hist[1][2], "final exam")
	assert.Equal(t, "gone", hist[3][0])
	assert.Equal(t, "topic-missing", hist[3][2])
}

func TestSaveRoundTrip(t *testing.T) {
	cat, profiles, attempts := fixture(t)
	wb, err := Build(cat, profiles, attempts)
	require.NoError(t, err)
	defer wb.Close()

	path := filepath.Join(t.TempDir(), "progress.xlsx")
	require.NoError(t, wb.Save(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SheetLearners, SheetProgress, SheetAttempts}, f.GetSheetList())

	var buf bytes.Buffer
	n, err := wb.WriteTo(&buf)
	require.NoError(t, err)
	assert.Positive(t, n)
}
