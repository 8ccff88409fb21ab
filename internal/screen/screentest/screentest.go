// Package screentest builds screen dependencies over an in-memory store for
// screen tests.
package screentest

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/learner"
	"github.com/abhisek/academy/internal/llm"
	"github.com/abhisek/academy/internal/quiz"
	"github.com/abhisek/academy/internal/screen"
	"github.com/abhisek/academy/internal/session"
	"github.com/abhisek/academy/internal/store"
	"github.com/abhisek/academy/internal/tutor"
)

// Now is the fixed clock every test dependency uses.
var Now = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

// Deps returns screen dependencies backed by a fresh in-memory store. The
// tutor answers from a mock provider loaded with responses.
func Deps(t testing.TB, responses ...llm.MockResponse) (screen.Deps, *llm.MockProvider) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open("file:screen_" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	clock := func() time.Time { return Now }
	st.SetClock(clock)

	cat, err := catalog.Default()
	require.NoError(t, err)

	mock := llm.NewMockProvider(responses...)
	return screen.Deps{
		Catalog:  cat,
		Session:  session.New(session.ReposFrom(st), nil, session.WithClock(clock)),
		Tutor:    tutor.New(mock, nil),
		Shuffler: func() quiz.Shuffler { return quiz.NewShuffler(7) },
		Now:      clock,
	}, mock
}

// SignIn registers and signs in a learner named Ada.
func SignIn(t testing.TB, deps screen.Deps) learner.Profile {
	t.Helper()
	p, err := deps.Session.Register(context.Background(), session.Registration{
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
	})
	require.NoError(t, err)
	return p
}

// Key builds a key press for a key name such as "enter", "esc", "left" or a
// single character.
func Key(name string) tea.KeyPressMsg {
	switch name {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	}
	r := []rune(name)[0]
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Press sends each key to s in order and returns the last command.
func Press(s screen.Screen, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = s.Update(Key(k))
	}
	return cmd
}

// Type sends text to s one character at a time.
func Type(s screen.Screen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}
