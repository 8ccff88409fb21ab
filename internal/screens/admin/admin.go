// Package admin lists every learner for admins, searchable by name.
package admin

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/abhisek/academy/internal/learner"
	"github.com/abhisek/academy/internal/progress"
	"github.com/abhisek/academy/internal/screen"
	"github.com/abhisek/academy/internal/ui/components"
	"github.com/abhisek/academy/internal/ui/layout"
	"github.com/abhisek/academy/internal/ui/theme"
)

type learnersMsg struct {
	learners []learner.Profile
	err      error
}

// AdminScreen is the learner directory.
type AdminScreen struct {
	deps     screen.Deps
	search   components.TextInput
	learners []learner.Profile
	loaded   bool
	err      string
}

var _ screen.Screen = (*AdminScreen)(nil)
var _ screen.KeyHintProvider = (*AdminScreen)(nil)
var _ screen.InputCapturer = (*AdminScreen)(nil)

// New creates an AdminScreen.
func New(deps screen.Deps) *AdminScreen {
	return &AdminScreen{
		deps:   deps,
		search: components.NewTextInput("Search by name", 60),
	}
}

func (a *AdminScreen) Init() tea.Cmd {
	sess := a.deps.Session
	return tea.Batch(a.search.Init(), func() tea.Msg {
		all, err := sess.Learners(context.Background())
		return learnersMsg{learners: all, err: err}
	})
}

func (a *AdminScreen) Title() string { return "Admin Console" }

func (a *AdminScreen) CapturingInput() bool { return true }

func (a *AdminScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Type", Description: "Search"},
		{Key: "Esc", Description: "Back"},
	}
}

func (a *AdminScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(learnersMsg); ok {
		a.loaded = true
		if msg.err != nil {
			a.deps.Logger().Error("load learners", "error", msg.err)
			a.err = "Could not load learners."
			return a, nil
		}
		a.learners = progress.Leaderboard(msg.learners, 0)
		return a, nil
	}

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	return a, cmd
}

// Filtered returns the learners whose name contains the search text,
// ignoring case.
func (a *AdminScreen) Filtered() []learner.Profile {
	q := strings.ToLower(a.search.Value())
	if q == "" {
		return a.learners
	}
	var out []learner.Profile
	for _, p := range a.learners {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out
}

func (a *AdminScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	rows := a.Filtered()

	var b strings.Builder
	b.WriteString(a.search.View())
	b.WriteString("\n\n")

	switch {
	case a.err != "":
		b.WriteString(components.ErrorLine(a.err))
	case !a.loaded:
		b.WriteString(theme.Hint.Render("Loading learners..."))
	case len(rows) == 0:
		b.WriteString(theme.Hint.Render("No learners match."))
	default:
		b.WriteString(theme.Label.Render(fmt.Sprintf("%-20s %-5s %9s %6s %6s %5s  %s",
			"NAME", "ROLE", "XP", "LEVEL", "STREAK", "CERTS", "ACTIVE")))
		b.WriteString("\n")
		room := max(layout.ContentHeight(height)-8, 1)
		for i, p := range rows {
			if i == room {
				b.WriteString(theme.Hint.Render(fmt.Sprintf("... %d more", len(rows)-room)))
				break
			}
			role := "user"
			if p.IsAdmin() {
				role = "admin"
			}
			b.WriteString(theme.Body.Render(fmt.Sprintf("%-20s %-5s %9s %6d %6d %5d  %s",
				layout.Truncate(p.Name, 20), role, humanize.Comma(int64(p.XP)), progress.Level(p.XP),
				p.Streak, len(p.FinalExamsPassed), humanize.RelTime(p.LastActive, a.deps.Clock(), "ago", "from now"))))
			b.WriteString("\n")
		}
	}

	title := fmt.Sprintf("Learners (%d)", len(a.learners))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(title, b.String(), cw))
}
