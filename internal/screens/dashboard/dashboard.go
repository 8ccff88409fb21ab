// Package dashboard is the signed-in home: learner stats, the market news
// digest, tracks to resume and the leaderboard.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/learner"
	"github.com/abhisek/academy/internal/nav"
	"github.com/abhisek/academy/internal/progress"
	"github.com/abhisek/academy/internal/screen"
	"github.com/abhisek/academy/internal/session"
	"github.com/abhisek/academy/internal/tutor"
	"github.com/abhisek/academy/internal/ui/components"
	"github.com/abhisek/academy/internal/ui/layout"
	"github.com/abhisek/academy/internal/ui/theme"
)

const (
	newsPending    = "Syncing latest market intelligence..."
	boardSize      = 5
	maxTracksShown = 3
)

type newsMsg struct{ text string }

type boardMsg struct {
	learners []learner.Profile
	err      error
}

// DashboardScreen is the signed-in home.
type DashboardScreen struct {
	deps     screen.Deps
	news     string
	board    []learner.Profile
	selected int
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a DashboardScreen.
func New(deps screen.Deps) *DashboardScreen {
	return &DashboardScreen{deps: deps, news: newsPending}
}

func (d *DashboardScreen) Init() tea.Cmd {
	return tea.Batch(d.loadNews(), d.loadBoard())
}

func (d *DashboardScreen) Title() string { return "Dashboard" }

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (d *DashboardScreen) loadNews() tea.Cmd {
	tc, cc := d.deps.Tutor, d.deps.Cache
	text := tutor.NewsText(d.deps.Catalog.News())
	log := d.deps.Logger()
	return func() tea.Msg {
		if tc == nil {
			return newsMsg{text: tutor.NewsFallback}
		}
		digest, err := tc.NewsDigest(context.Background(), cc, text)
		if err != nil {
			log.Warn("news digest", "error", err)
		}
		return newsMsg{text: digest}
	}
}

func (d *DashboardScreen) loadBoard() tea.Cmd {
	sess := d.deps.Session
	return func() tea.Msg {
		all, err := sess.Learners(context.Background())
		return boardMsg{learners: all, err: err}
	}
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case newsMsg:
		d.news = msg.text
		return d, nil

	case boardMsg:
		if msg.err != nil {
			d.deps.Logger().Warn("load leaderboard", "error", msg.err)
			return d, nil
		}
		d.board = progress.Leaderboard(msg.learners, boardSize)
		return d, nil

	case tea.KeyPressMsg:
		m := d.menu()
		var cmd tea.Cmd
		m, cmd = m.Update(msg)
		d.selected = m.Selected
		return d, cmd
	}
	return d, nil
}

// menu rebuilds the actions from the current profile so progress made on
// screens above this one shows when the learner comes back.
func (d *DashboardScreen) menu() components.Menu {
	p, _ := d.deps.Session.Profile()
	cat := d.deps.Catalog

	var items []components.MenuItem
	tracks := progress.ActiveTracks(cat.Curriculums(), p)
	for i, c := range tracks {
		if i == maxTracksShown {
			break
		}
		items = append(items, components.MenuItem{
			Label:  "Resume " + c.Title,
			Detail: fmt.Sprintf("%.0f%%", progress.Percent(c, p)),
			Action: resume(c, p),
		})
	}
	if len(tracks) == 0 {
		if c, ok := progress.NextCurriculum(cat.Curriculums(), p); ok {
			items = append(items, components.MenuItem{
				Label:  "Begin " + c.Title,
				Detail: string(c.Difficulty),
				Action: resume(c, p),
			})
		}
	}

	items = append(items,
		components.MenuItem{Label: "Course catalog", Action: func() tea.Cmd { return nav.Go(nav.Catalog{}) }},
		components.MenuItem{Label: "AI tutor", Action: func() tea.Cmd { return nav.Go(nav.ToTutor()) }},
		components.MenuItem{Label: "Profile & certificates", Action: func() tea.Cmd { return nav.Go(nav.Profile{}) }},
	)
	if p.IsAdmin() {
		items = append(items, components.MenuItem{Label: "Admin console", Action: func() tea.Cmd { return nav.Go(nav.Admin{}) }})
	}
	items = append(items, components.MenuItem{Label: "Sign out", Action: d.logout})

	m := components.NewMenu(items)
	m.Selected = min(d.selected, len(items)-1)
	return m
}

// resume opens the topic the learner should continue with in c, or the
// curriculum view once every topic is done.
func resume(c catalog.Curriculum, p learner.Profile) func() tea.Cmd {
	return func() tea.Cmd {
		if t, ok := progress.ResumeTarget(c, p); ok {
			if d, err := nav.ToCoursePlayer(c, t.ID); err == nil {
				return nav.Go(d)
			}
		}
		return nav.Go(nav.ToCurriculum(c))
	}
}

func (d *DashboardScreen) logout() tea.Cmd {
	sess, log := d.deps.Session, d.deps.Logger()
	return func() tea.Msg {
		if err := sess.Logout(context.Background()); err != nil {
			log.Error("sign out", "error", err)
		}
		return nav.GoMsg{To: nav.Welcome{}, Mode: nav.Reset}
	}
}

func (d *DashboardScreen) View(width, height int) string {
	p, _ := d.deps.Session.Profile()
	sum := session.BuildSummary(d.deps.Catalog, p)
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, d.renderGreeting(p, sum, cw))
	sections = append(sections, components.Card("Market Intelligence", theme.Body.Width(cw-4).Render(d.news), cw))

	menu := d.menu()
	if layout.IsCompactWidth(width) {
		sections = append(sections, components.Card("Continue", menu.View(), cw))
		sections = append(sections, components.Card("Leaderboard", d.renderBoard(p.ID), cw))
	} else {
		half := (cw - 2) / 2
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
			components.Card("Continue", menu.View(), half),
			"  ",
			components.Card("Leaderboard", d.renderBoard(p.ID), half),
		))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(sections, "\n"))
}

func (d *DashboardScreen) renderGreeting(p learner.Profile, sum session.Summary, cw int) string {
	first, _, _ := strings.Cut(p.Name, " ")

	var b strings.Builder
	b.WriteString(theme.Title.Render("Welcome, " + first))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf(
		"🔥 %d day streak   Lvl %d Architect   %s XP   %d/%d topics",
		sum.Streak, sum.Level, humanize.Comma(int64(sum.XP)), sum.TopicsDone, sum.TopicsTotal,
	)))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("Next level", sum.LevelProgress*100, true, cw-4).View())
	return theme.Card.Width(cw).Render(b.String())
}

func (d *DashboardScreen) renderBoard(self string) string {
	if len(d.board) == 0 {
		return theme.Hint.Render("No rankings yet.")
	}
	var b strings.Builder
	for i, p := range d.board {
		line := fmt.Sprintf("%d. %-14s %s XP", i+1, layout.Truncate(p.Name, 14), humanize.Comma(int64(p.XP)))
		style := theme.Body
		if p.ID == self {
			style = theme.Selected
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
