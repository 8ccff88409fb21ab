package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/quiz"
	"github.com/abhisek/academy/internal/session"
	"github.com/abhisek/academy/internal/store"
)

// execute runs the root command with args and stdin, returning its output.
// Flags keep their values between runs, so callers pass every flag they
// depend on.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestPreviewPerfectRun(t *testing.T) {
	out, err := execute(t, "1\nStatistical\n1\n1\n vector \n", "preview", "--topic", "topic-search-0", "--read=false")
	require.NoError(t, err)
	assert.Equal(t, 5, strings.Count(out, "Correct!"))
	assert.Contains(t, out, "5/5 correct, passed")
}

func TestPreviewMistake(t *testing.T) {
	out, err := execute(t, "2\nstatistical\n1\n1\nvector\n", "preview", "--topic", "topic-search-0", "--read=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrong.")
	assert.Contains(t, out, "4/5 correct, not passed")
}

func TestPreviewInputClosed(t *testing.T) {
	out, err := execute(t, "1\n", "preview", "--topic", "topic-search-1", "--read=false")
	require.NoError(t, err)
	assert.Contains(t, out, "(input closed)")
}

func TestPreviewUnknownTopic(t *testing.T) {
	_, err := execute(t, "", "preview", "--topic", "topic-nope-0", "--read=false")
	assert.ErrorContains(t, err, "no topic found")
}

func TestPreviewResponse(t *testing.T) {
	mc := catalog.QuizStep{Type: catalog.MultipleChoice}
	fill := catalog.QuizStep{Type: catalog.FillInBlank}

	tests := []struct {
		step catalog.QuizStep
		line string
		want quiz.Response
	}{
		{mc, " 2 ", quiz.Choice(1)},
		{mc, "b", quiz.Choice(-1)},
		{fill, "  vector\n", quiz.Text("vector")},
	}
	for _, tt := range tests {
		if got := previewResponse(tt.step, tt.line); got != tt.want {
			t.Errorf("previewResponse(%q) = %+v, want %+v", tt.line, got, tt.want)
		}
	}
}

func seedLearners(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "academy.db")
	st, err := store.Open(path)
	require.NoError(t, err)
	defer st.Close()
	_, err = session.New(session.ReposFrom(st), nil).Seed(context.Background())
	require.NoError(t, err)
	return path
}

func countLearners(t *testing.T, path string) int {
	t.Helper()
	st, err := store.Open(path)
	require.NoError(t, err)
	defer st.Close()
	n, err := st.Profiles().Count(context.Background())
	require.NoError(t, err)
	return n
}

func TestResetOneLearner(t *testing.T) {
	db := seedLearners(t)

	out, err := execute(t, "", "reset", "--db", db, "--email", "marcus@example.com", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted Marcus Bell")
	assert.Equal(t, 1, countLearners(t, db))
}

func TestResetNeedsConfirmation(t *testing.T) {
	db := seedLearners(t)

	out, err := execute(t, "no\n", "reset", "--db", db, "--email", "", "--yes=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")
	assert.Equal(t, 2, countLearners(t, db))

	out, err = execute(t, "yes\n", "reset", "--db", db, "--email", "", "--yes=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted ALL learners.")
	assert.Zero(t, countLearners(t, db))
}

func TestResetUnknownEmail(t *testing.T) {
	db := seedLearners(t)
	_, err := execute(t, "", "reset", "--db", db, "--email", "ghost@example.com", "--yes")
	assert.ErrorContains(t, err, "no learner with email")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "✓✓", truncate("✓✓✓", 2))
}
