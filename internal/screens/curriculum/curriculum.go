// Package curriculum shows one curriculum's topics with their lock and
// completion state, and the final exam once every topic is done.
package curriculum

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/learner"
	"github.com/abhisek/academy/internal/nav"
	"github.com/abhisek/academy/internal/progress"
	"github.com/abhisek/academy/internal/quiz"
	"github.com/abhisek/academy/internal/screen"
	"github.com/abhisek/academy/internal/ui/components"
	"github.com/abhisek/academy/internal/ui/layout"
	"github.com/abhisek/academy/internal/ui/theme"
)

// CurriculumScreen lists a curriculum's topics.
type CurriculumScreen struct {
	deps     screen.Deps
	c        catalog.Curriculum
	selected int
}

var _ screen.Screen = (*CurriculumScreen)(nil)
var _ screen.KeyHintProvider = (*CurriculumScreen)(nil)

// New creates a CurriculumScreen for d.
func New(deps screen.Deps, d nav.Curriculum) *CurriculumScreen {
	s := &CurriculumScreen{deps: deps, c: d.Curriculum()}
	p, _ := deps.Session.Profile()
	if t, ok := progress.ResumeTarget(s.c, p); ok {
		s.selected = s.c.TopicIndex(t.ID)
	}
	return s
}

func (s *CurriculumScreen) Init() tea.Cmd { return nil }

func (s *CurriculumScreen) Title() string { return s.c.Title }

func (s *CurriculumScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "r", Description: "Resume"},
		{Key: "t", Description: "Ask tutor"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *CurriculumScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	p, _ := s.deps.Session.Profile()
	switch kmsg.String() {
	case "r":
		if t, ok := progress.ResumeTarget(s.c, p); ok {
			return s, s.open(t.ID)
		}
		return s, nil
	case "t":
		if s.selected < len(s.c.Topics) {
			return s, nav.Go(nav.ToTutorAbout(s.c.Topics[s.selected]))
		}
		return s, nav.Go(nav.ToTutor())
	}

	m := s.menu(p)
	var cmd tea.Cmd
	m, cmd = m.Update(msg)
	s.selected = m.Selected
	return s, cmd
}

func (s *CurriculumScreen) open(topicID string) tea.Cmd {
	d, err := nav.ToCoursePlayer(s.c, topicID)
	if err != nil {
		s.deps.Logger().Warn("open topic", "topic", topicID, "error", err)
		return nil
	}
	return nav.Go(d)
}

// menu lists every topic followed by the final exam. Locked topics and an
// exam that is not yet open are disabled.
func (s *CurriculumScreen) menu(p learner.Profile) components.Menu {
	items := make([]components.MenuItem, 0, len(s.c.Topics)+1)
	for i, t := range s.c.Topics {
		mark, locked := "○", !progress.IsUnlocked(t.ID, s.c, p)
		switch {
		case p.HasCompletedTopic(t.ID):
			mark = "✓"
		case locked:
			mark = "🔒"
		}
		id := t.ID
		items = append(items, components.MenuItem{
			Label:    fmt.Sprintf("%s %02d  %s", mark, i+1, t.Title),
			Detail:   fmt.Sprintf("%s · %s", t.Difficulty, t.EstimatedTime),
			Disabled: locked,
			Action:   func() tea.Cmd { return s.open(id) },
		})
	}

	examDetail := "complete every topic to unlock"
	switch {
	case p.HasPassedExam(s.c.ID):
		examDetail = "✓ certified"
	case progress.Percent(s.c, p) == 100:
		examDetail = fmt.Sprintf("%d questions", min(len(s.c.QuizSteps()), quiz.ExamSize))
	}
	items = append(items, components.MenuItem{
		Label:    "★ Final exam",
		Detail:   examDetail,
		Disabled: progress.Percent(s.c, p) < 100,
		Action:   func() tea.Cmd { return nav.Go(nav.ToFinalExam(s.c)) },
	})

	m := components.NewMenu(items)
	if i := min(s.selected, len(items)-1); i >= 0 && !items[i].Disabled {
		m.Selected = i
	}
	return m
}

func (s *CurriculumScreen) View(width, height int) string {
	p, _ := s.deps.Session.Profile()
	cw := components.ContentWidth(width)
	pct := progress.Percent(s.c, p)

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%s · %s · %s", s.c.PillarName, s.c.Difficulty, s.c.EstimatedTime)))
	b.WriteString("\n")
	if s.c.Description != "" {
		b.WriteString(theme.Body.Width(cw - 4).Render(s.c.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("Progress", pct, true, cw-4).View())
	b.WriteString("\n\n")

	m := s.menu(p)
	lines := strings.Split(strings.TrimRight(m.View(), "\n"), "\n")
	room := max(layout.ContentHeight(height)-10, 3)
	if len(lines) > room {
		start := min(max(m.Selected-room/2, 0), len(lines)-room)
		lines = lines[start : start+room]
	}
	b.WriteString(strings.Join(lines, "\n"))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(s.c.Title, b.String(), cw))
}
