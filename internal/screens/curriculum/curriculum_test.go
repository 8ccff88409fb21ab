package curriculum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/academy/internal/learner"
	"github.com/abhisek/academy/internal/nav"
	"github.com/abhisek/academy/internal/progress"
	"github.com/abhisek/academy/internal/screen/screentest"
)

func TestLockedTopicsDisabled(t *testing.T) {
	deps, _ := screentest.Deps(t)
	p := screentest.SignIn(t, deps)
	c := deps.Catalog.Curriculums()[0]
	s := New(deps, nav.ToCurriculum(c))

	m := s.menu(p)
	require.Len(t, m.Items, len(c.Topics)+1)
	assert.False(t, m.Items[0].Disabled)
	assert.True(t, m.Items[1].Disabled)
	assert.True(t, m.Items[len(m.Items)-1].Disabled, "exam locked until every topic is done")

	// Moving down skips past locked topics, so enter still opens the first.
	cmd := screentest.Press(s, "down", "enter")
	require.NotNil(t, cmd)
	d, ok := cmd().(nav.GoMsg).To.(nav.CoursePlayer)
	require.True(t, ok)
	assert.Equal(t, c.Topics[0].ID, d.Topic().ID)
}

func TestResumeKey(t *testing.T) {
	deps, _ := screentest.Deps(t)
	screentest.SignIn(t, deps)
	c := deps.Catalog.Curriculums()[0]
	_, err := deps.Session.Update(t.Context(), func(p learner.Profile) learner.Profile {
		p = progress.CompleteTopic(p, c, c.Topics[0].ID)
		return progress.CompleteTopic(p, c, c.Topics[1].ID)
	})
	require.NoError(t, err)

	s := New(deps, nav.ToCurriculum(c))
	assert.Equal(t, 2, s.selected)

	d, ok := screentest.Press(s, "r")().(nav.GoMsg).To.(nav.CoursePlayer)
	require.True(t, ok)
	assert.Equal(t, c.Topics[2].ID, d.Topic().ID)
}

func TestExamOpensWhenComplete(t *testing.T) {
	deps, _ := screentest.Deps(t)
	screentest.SignIn(t, deps)
	c := deps.Catalog.Curriculums()[0]
	_, err := deps.Session.Update(t.Context(), func(p learner.Profile) learner.Profile {
		for _, topic := range c.Topics {
			p = progress.CompleteTopic(p, c, topic.ID)
		}
		return p
	})
	require.NoError(t, err)

	s := New(deps, nav.ToCurriculum(c))
	keys := make([]string, 0, len(c.Topics)+1)
	for range c.Topics {
		keys = append(keys, "down")
	}
	cmd := screentest.Press(s, append(keys, "enter")...)
	require.NotNil(t, cmd)
	_, ok := cmd().(nav.GoMsg).To.(nav.FinalExam)
	assert.True(t, ok)
}

func TestTutorKey(t *testing.T) {
	deps, _ := screentest.Deps(t)
	screentest.SignIn(t, deps)
	c := deps.Catalog.Curriculums()[0]
	s := New(deps, nav.ToCurriculum(c))

	d, ok := screentest.Press(s, "t")().(nav.GoMsg).To.(nav.Tutor)
	require.True(t, ok)
	topic, ok := d.Topic()
	require.True(t, ok)
	assert.Equal(t, c.Topics[0].ID, topic.ID)
}
