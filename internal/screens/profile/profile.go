// Package profile shows the learner's stats, certificates, badges, recent
// attempts and an AI-suggested learning path.
package profile

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/abhisek/academy/internal/learner"
	"github.com/abhisek/academy/internal/nav"
	"github.com/abhisek/academy/internal/screen"
	"github.com/abhisek/academy/internal/session"
	"github.com/abhisek/academy/internal/tutor"
	"github.com/abhisek/academy/internal/ui/components"
	"github.com/abhisek/academy/internal/ui/layout"
	"github.com/abhisek/academy/internal/ui/theme"
)

const recentAttempts = 5

type attemptsMsg struct {
	attempts []learner.Attempt
	err      error
}

type pathMsg struct {
	pillars []string
	err     error
}

// ProfileScreen is the learner's record.
type ProfileScreen struct {
	deps     screen.Deps
	attempts []learner.Attempt
	path     []string
	pathErr  bool
	loading  bool
	selected int
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)

// New creates a ProfileScreen.
func New(deps screen.Deps) *ProfileScreen {
	return &ProfileScreen{deps: deps}
}

func (s *ProfileScreen) Init() tea.Cmd {
	sess := s.deps.Session
	return func() tea.Msg {
		a, err := sess.Attempts(context.Background(), recentAttempts)
		return attemptsMsg{attempts: a, err: err}
	}
}

func (s *ProfileScreen) Title() string { return "Profile" }

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "s", Description: "Suggest path"}}
	if len(s.path) > 0 {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Browse pillar"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case attemptsMsg:
		if msg.err != nil {
			s.deps.Logger().Warn("load attempts", "error", msg.err)
		}
		s.attempts = msg.attempts
		return s, nil

	case pathMsg:
		s.loading = false
		s.path = msg.pillars
		s.pathErr = msg.err != nil || len(msg.pillars) == 0
		s.selected = 0
		return s, nil

	case tea.KeyPressMsg:
		if msg.String() == "s" {
			return s, s.suggest()
		}
		m := s.pathMenu()
		var cmd tea.Cmd
		m, cmd = m.Update(msg)
		s.selected = m.Selected
		return s, cmd
	}
	return s, nil
}

func (s *ProfileScreen) suggest() tea.Cmd {
	if s.loading || s.deps.Tutor == nil {
		return nil
	}
	s.loading = true
	s.pathErr = false
	p, _ := s.deps.Session.Profile()
	tc, profile := s.deps.Tutor, tutor.ProfileContext(p)
	return func() tea.Msg {
		names, err := tc.SuggestPath(context.Background(), profile)
		return pathMsg{pillars: names, err: err}
	}
}

func (s *ProfileScreen) pathMenu() components.Menu {
	items := make([]components.MenuItem, 0, len(s.path))
	for i, name := range s.path {
		item := components.MenuItem{Label: fmt.Sprintf("%d. %s", i+1, name)}
		if p, ok := s.deps.Catalog.PillarByName(name); ok {
			id := p.ID
			item.Action = func() tea.Cmd { return nav.Go(nav.Catalog{Pillar: id}) }
		}
		items = append(items, item)
	}
	m := components.NewMenu(items)
	if len(items) > 0 {
		m.Selected = min(s.selected, len(items)-1)
	}
	return m
}

func (s *ProfileScreen) View(width, height int) string {
	p, _ := s.deps.Session.Profile()
	sum := session.BuildSummary(s.deps.Catalog, p)
	cw := components.ContentWidth(width)

	sections := []string{
		components.Card(p.Name, s.renderStats(p, sum, cw), cw),
		components.Card("Certificates", renderCertificates(sum), cw),
		components.Card("Recent attempts", s.renderAttempts(), cw),
		components.Card("Suggested path", s.renderPath(), cw),
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(sections, "\n"))
}

func (s *ProfileScreen) renderStats(p learner.Profile, sum session.Summary, cw int) string {
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%s · %s · %s", p.ExperienceLevel, p.LearningGoal, p.Role)))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf(
		"Level %d   %s XP   Streak %d (best %d)   Topics %d/%d",
		sum.Level, humanize.Comma(int64(sum.XP)), sum.Streak, sum.LongestStreak, sum.TopicsDone, sum.TopicsTotal,
	)))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("Level", sum.LevelProgress*100, true, cw-4).View())
	if len(sum.Badges) > 0 {
		b.WriteString("\n\n")
		tags := make([]string, 0, len(sum.Badges))
		for _, badge := range sum.Badges {
			tags = append(tags, components.Tag(badge, lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.Accent)))
		}
		b.WriteString(strings.Join(tags, " "))
	}
	if !p.CreatedAt.IsZero() {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Member since " + humanize.Time(p.CreatedAt)))
	}
	return b.String()
}

func renderCertificates(sum session.Summary) string {
	if len(sum.Certificates) == 0 {
		return theme.Hint.Render("No certificates yet. Pass a final exam to earn one.")
	}
	lines := make([]string, 0, len(sum.Certificates))
	for _, c := range sum.Certificates {
		lines = append(lines, theme.Done.Render("★ "+strings.TrimSuffix(c.Title, " Mastery")))
	}
	return strings.Join(lines, "\n")
}

func (s *ProfileScreen) renderAttempts() string {
	if len(s.attempts) == 0 {
		return theme.Hint.Render("No attempts recorded.")
	}
	lines := make([]string, 0, len(s.attempts))
	for _, a := range s.attempts {
		name := a.RefID
		if a.Kind == learner.AttemptExam {
			if c, ok := s.deps.Catalog.Curriculum(a.RefID); ok {
				name = c.Title + " exam"
			}
		} else if _, t, ok := s.deps.Catalog.Topic(a.RefID); ok {
			name = t.Title
		}
		style, mark := theme.Incorrect, "✗"
		if a.Passed {
			style, mark = theme.Correct, "✓"
		}
		lines = append(lines, fmt.Sprintf("%s %-40s %d/%d  %s",
			style.Render(mark), layout.Truncate(name, 40), a.Score, a.Total,
			theme.Hint.Render(humanize.RelTime(a.AttemptedAt, s.deps.Clock(), "ago", "from now"))))
	}
	return strings.Join(lines, "\n")
}

func (s *ProfileScreen) renderPath() string {
	switch {
	case s.loading:
		return theme.Hint.Render("Consulting the faculty...")
	case s.pathErr:
		return theme.Hint.Render("Path suggestions are unavailable right now.")
	case len(s.path) == 0:
		return theme.Hint.Render("Press s for a personalised learning path.")
	}
	return s.pathMenu().View()
}
