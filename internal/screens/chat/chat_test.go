package chat

import (
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/academy/internal/learner"
	"github.com/abhisek/academy/internal/llm"
	"github.com/abhisek/academy/internal/nav"
	"github.com/abhisek/academy/internal/screen/screentest"
	"github.com/abhisek/academy/internal/tutor"
)

func TestAskAndPersist(t *testing.T) {
	deps, mock := screentest.Deps(t, llm.TextResponse("Start with keyword research."))
	screentest.SignIn(t, deps)
	c := deps.Catalog.Curriculums()[0]
	s := New(deps, nav.ToTutorAbout(c.Topics[0]))

	screentest.Type(s, "Where do I start?")
	cmd := screentest.Press(s, "enter")
	require.NotNil(t, cmd)
	assert.True(t, s.tr.Pending())
	assert.Empty(t, s.input.Value())

	s.Update(cmd())
	assert.False(t, s.tr.Pending())

	entries := s.tr.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, learner.ChatBot, entries[1].Role)
	assert.Equal(t, "Start with keyword research.", entries[1].Text)

	require.Len(t, mock.Calls(), 1)
	assert.Contains(t, mock.Calls()[0].System, c.Topics[0].Title)
	assert.NotContains(t, mock.Calls()[0].System, "ada@example.com")

	saved, err := deps.Session.ChatHistory(t.Context())
	require.NoError(t, err)
	require.Len(t, saved, 2)

	// A new screen picks the transcript back up.
	again := New(deps, nav.ToTutor())
	assert.Equal(t, 2, again.tr.Len())
}

func TestFailureAppendsOneFallback(t *testing.T) {
	deps, _ := screentest.Deps(t, llm.ErrorResponse(&llm.ErrProviderUnavailable{Err: errors.New("down")}))
	p := screentest.SignIn(t, deps)
	s := New(deps, nav.ToTutor())

	screentest.Type(s, "hello")
	s.Update(screentest.Press(s, "enter")())

	entries := s.tr.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, tutor.FallbackReply, entries[1].Text)

	after, _ := deps.Session.Profile()
	assert.Equal(t, p.XP, after.XP)
}

func TestStaleReplyDropped(t *testing.T) {
	deps, _ := screentest.Deps(t, llm.TextResponse("first"), llm.TextResponse("second"))
	screentest.SignIn(t, deps)
	s := New(deps, nav.ToTutor())

	screentest.Type(s, "one")
	first := screentest.Press(s, "enter")
	screentest.Type(s, "two")
	second := screentest.Press(s, "enter")

	s.Update(second())
	s.Update(first())

	entries := s.tr.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "one", entries[0].Text)
	assert.Equal(t, "two", entries[1].Text)
	assert.Equal(t, learner.ChatBot, entries[2].Role)
}

func TestReplyForEarlierScreenIgnored(t *testing.T) {
	deps, _ := screentest.Deps(t, llm.TextResponse("answer to old"), llm.TextResponse("answer to new"))
	screentest.SignIn(t, deps)

	left := New(deps, nav.ToTutor())
	screentest.Type(left, "old question")
	oldCmd := screentest.Press(left, "enter")

	reopened := New(deps, nav.ToTutor())
	screentest.Type(reopened, "new question")
	newCmd := screentest.Press(reopened, "enter")

	reopened.Update(oldCmd())
	assert.True(t, reopened.tr.Pending(), "reply to the other screen must not settle this one")
	reopened.Update(newCmd())

	entries := reopened.tr.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "old question", entries[0].Text)
	assert.Equal(t, "new question", entries[1].Text)
	assert.Equal(t, "answer to new", entries[2].Text)
}

func TestBlankQuestionIgnored(t *testing.T) {
	deps, mock := screentest.Deps(t)
	screentest.SignIn(t, deps)
	s := New(deps, nav.ToTutor())

	screentest.Type(s, "   ")
	assert.Nil(t, screentest.Press(s, "enter"))
	assert.Zero(t, s.tr.Len())
	assert.Zero(t, mock.CallCount())
}

func TestClear(t *testing.T) {
	deps, _ := screentest.Deps(t, llm.TextResponse("late"))
	screentest.SignIn(t, deps)
	s := New(deps, nav.ToTutor())

	screentest.Type(s, "question")
	cmd := screentest.Press(s, "enter")
	s.Update(ctrlL())
	s.Update(cmd())

	assert.Zero(t, s.tr.Len())
	saved, err := deps.Session.ChatHistory(t.Context())
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func ctrlL() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: 'l', Mod: tea.ModCtrl}
}
