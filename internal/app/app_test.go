package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/academy/internal/learner"
	"github.com/abhisek/academy/internal/nav"
	"github.com/abhisek/academy/internal/screen/screentest"
)

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	require.True(t, ok)
	return am, cmd
}

func activeTitle(m AppModel) string {
	return m.router.Active().Title()
}

func TestStartScreen(t *testing.T) {
	deps, _ := screentest.Deps(t)
	m := newAppModel(deps)
	assert.Equal(t, "", activeTitle(m), "signed out starts on welcome")

	screentest.SignIn(t, deps)
	m = newAppModel(deps)
	assert.Equal(t, "Dashboard", activeTitle(m))
}

func TestNavigateAppliesAccessRules(t *testing.T) {
	deps, _ := screentest.Deps(t)
	m := newAppModel(deps)

	m, _ = update(t, m, nav.GoMsg{To: nav.Profile{}, Mode: nav.Push})
	assert.Equal(t, "", activeTitle(m), "signed-out visitors are sent to welcome")

	screentest.SignIn(t, deps)
	m, _ = update(t, m, nav.GoMsg{To: nav.Dashboard{}, Mode: nav.Reset})
	assert.Equal(t, 1, m.router.Depth())
	assert.Equal(t, "Dashboard", activeTitle(m))

	m, _ = update(t, m, nav.GoMsg{To: nav.Admin{}, Mode: nav.Push})
	assert.Equal(t, "Dashboard", activeTitle(m), "students cannot open the admin console")

	c := deps.Catalog.Curriculums()[0]
	locked, err := nav.ToCoursePlayer(c, c.Topics[1].ID)
	require.NoError(t, err)
	m, _ = update(t, m, nav.GoMsg{To: locked, Mode: nav.Push})
	assert.Equal(t, c.Title, activeTitle(m), "a locked topic falls back to its curriculum")

	m, _ = update(t, m, nav.GoMsg{To: nav.ToFinalExam(c), Mode: nav.Replace})
	assert.Equal(t, c.Title, activeTitle(m), "the exam needs every topic done")
}

func TestEscPopsAndQuit(t *testing.T) {
	deps, _ := screentest.Deps(t)
	screentest.SignIn(t, deps)
	m := newAppModel(deps)

	m, _ = update(t, m, nav.GoMsg{To: nav.Profile{}, Mode: nav.Push})
	require.Equal(t, 2, m.router.Depth())

	m, cmd := update(t, m, screentest.Key("esc"))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Equal(t, 1, m.router.Depth())

	_, cmd = update(t, m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestQKeyDoesNotQuitWhileTyping(t *testing.T) {
	deps, _ := screentest.Deps(t)
	m := newAppModel(deps)
	m, _ = update(t, m, nav.GoMsg{To: nav.Login{}, Mode: nav.Reset})

	_, cmd := update(t, m, screentest.Key("q"))
	if cmd != nil {
		_, quit := cmd().(tea.QuitMsg)
		assert.False(t, quit)
	}
}

func TestHeaderShowsStats(t *testing.T) {
	deps, _ := screentest.Deps(t)
	screentest.SignIn(t, deps)
	_, err := deps.Session.Update(t.Context(), func(p learner.Profile) learner.Profile {
		p.XP = 1600
		return p
	})
	require.NoError(t, err)

	m := newAppModel(deps)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Contains(t, m.render(), "1,600 XP")
}

func TestScreenForEveryDestination(t *testing.T) {
	deps, _ := screentest.Deps(t)
	screentest.SignIn(t, deps)
	c := deps.Catalog.Curriculums()[0]
	player, err := nav.ToCoursePlayer(c, c.Topics[0].ID)
	require.NoError(t, err)

	dests := []nav.Destination{
		nav.Welcome{}, nav.Login{}, nav.Onboarding{}, nav.Dashboard{}, nav.Catalog{},
		nav.ToCurriculum(c), player, nav.ToFinalExam(c), nav.ToTutor(), nav.Profile{}, nav.Admin{},
	}
	for _, d := range dests {
		assert.NotNil(t, screenFor(deps, d), d.Name())
	}
}
