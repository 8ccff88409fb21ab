// Package courses lists the curriculums of the catalog with the learner's
// progress, filtered by pillar.
package courses

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/nav"
	"github.com/abhisek/academy/internal/screen"
	"github.com/abhisek/academy/internal/session"
	"github.com/abhisek/academy/internal/ui/components"
	"github.com/abhisek/academy/internal/ui/layout"
	"github.com/abhisek/academy/internal/ui/theme"
)

const allPillars = "All Pillars"

// CoursesScreen is the catalog browser.
type CoursesScreen struct {
	deps     screen.Deps
	pillars  []catalog.Pillar
	filter   int // 0 is every pillar, i > 0 is pillars[i-1]
	selected int
}

var _ screen.Screen = (*CoursesScreen)(nil)
var _ screen.KeyHintProvider = (*CoursesScreen)(nil)

// New creates a CoursesScreen, preselecting d.Pillar when set.
func New(deps screen.Deps, d nav.Catalog) *CoursesScreen {
	c := &CoursesScreen{deps: deps, pillars: deps.Catalog.Pillars()}
	for i, p := range c.pillars {
		if p.ID == d.Pillar {
			c.filter = i + 1
		}
	}
	return c
}

func (c *CoursesScreen) Init() tea.Cmd { return nil }

func (c *CoursesScreen) Title() string { return "Course Catalog" }

func (c *CoursesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←/→", Description: "Pillar"},
		{Key: "↑/↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (c *CoursesScreen) pillarID() string {
	if c.filter == 0 {
		return ""
	}
	return c.pillars[c.filter-1].ID
}

func (c *CoursesScreen) pillarName() string {
	if c.filter == 0 {
		return allPillars
	}
	return c.pillars[c.filter-1].Name
}

func (c *CoursesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "left", "h":
		c.filter = (c.filter + len(c.pillars)) % (len(c.pillars) + 1)
		c.selected = 0
		return c, nil
	case "right", "l":
		c.filter = (c.filter + 1) % (len(c.pillars) + 1)
		c.selected = 0
		return c, nil
	}

	m := c.menu()
	var cmd tea.Cmd
	m, cmd = m.Update(msg)
	c.selected = m.Selected
	return c, cmd
}

func (c *CoursesScreen) menu() components.Menu {
	p, _ := c.deps.Session.Profile()

	statuses := session.Statuses(c.deps.Catalog, p, c.pillarID())
	items := make([]components.MenuItem, 0, len(statuses))
	for _, st := range statuses {
		curr := st.Curriculum
		detail := fmt.Sprintf("%s · %d topics · %.0f%%", curr.Difficulty, len(curr.Topics), st.Percent)
		if st.ExamPassed {
			detail += " · ✓ certified"
		}
		label := curr.Title
		if curr.Trending {
			label += " ▲"
		}
		items = append(items, components.MenuItem{
			Label:  label,
			Detail: detail,
			Action: func() tea.Cmd { return nav.Go(nav.ToCurriculum(curr)) },
		})
	}

	m := components.NewMenu(items)
	if len(items) > 0 {
		m.Selected = min(c.selected, len(items)-1)
	}
	return m
}

func (c *CoursesScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	filter := theme.Label.Render("PILLAR ") +
		theme.Selected.Render("◂ "+c.pillarName()+" ▸") +
		theme.Hint.Render(fmt.Sprintf("   %d/%d", c.filter, len(c.pillars)))

	m := c.menu()
	list := m.View()
	if len(m.Items) == 0 {
		list = theme.Hint.Render("No curriculums in this pillar yet.")
	}

	// Keep the selection visible on short terminals.
	lines := strings.Split(strings.TrimRight(list, "\n"), "\n")
	room := max(layout.ContentHeight(height)-6, 3)
	if len(lines) > room {
		start := min(max(m.Selected-room/2, 0), len(lines)-room)
		lines = lines[start : start+room]
	}

	body := filter + "\n\n" + strings.Join(lines, "\n")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card("", body, cw))
}
