package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/academy/internal/nav"
	"github.com/abhisek/academy/internal/progress"
	"github.com/abhisek/academy/internal/router"
	"github.com/abhisek/academy/internal/screen"
	"github.com/abhisek/academy/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps   screen.Deps
	router *router.Router
	width  int
	height int
}

// newAppModel opens on the dashboard for a signed-in learner and on the
// welcome screen otherwise.
func newAppModel(deps screen.Deps) AppModel {
	p, signedIn := deps.Session.Profile()
	start := nav.Resolve(nav.Dashboard{}, p, signedIn)
	return AppModel{
		deps:   deps,
		router: router.New(screenFor(deps, start)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case nav.GoMsg:
		return m, m.navigate(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if !m.capturing() && m.router.Depth() == 1 {
				return m, tea.Quit
			}
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) capturing() bool {
	c, ok := m.router.Active().(screen.InputCapturer)
	return ok && c.CapturingInput()
}

// navigate applies the access rules to msg.To and changes the stack.
func (m AppModel) navigate(msg nav.GoMsg) tea.Cmd {
	p, signedIn := m.deps.Session.Profile()
	dest := nav.Resolve(msg.To, p, signedIn)
	if msg.To != nil && dest.Name() != msg.To.Name() {
		m.deps.Logger().Debug("navigation redirected", "from", msg.To.Name(), "to", dest.Name())
	}

	s := screenFor(m.deps, dest)
	switch msg.Mode {
	case nav.Replace:
		return m.router.Replace(s)
	case nav.Reset:
		return m.router.Reset(s)
	default:
		return m.router.Push(s)
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	v.SetContent(m.render())
	return v
}

// render composes the header, the active screen and the footer.
func (m AppModel) render() string {
	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	var stats *layout.Stats
	if p, ok := m.deps.Session.Profile(); ok {
		stats = &layout.Stats{XP: p.XP, Level: progress.Level(p.XP), Streak: p.Streak}
	}
	header := layout.RenderHeader(title, stats, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if hp, ok := active.(screen.KeyHintProvider); ok {
		return hp.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "q", Description: "Quit"},
	}
}

// Options configure Run.
type Options struct {
	Deps screen.Deps
}

// Run seeds the sample learners on first use, restores the last signed-in
// learner and starts the Bubble Tea program.
func Run(ctx context.Context, opts Options) error {
	deps := opts.Deps
	log := deps.Logger()

	if n, err := deps.Session.Seed(ctx); err != nil {
		log.Warn("seed learners", "error", err)
	} else if n > 0 {
		log.Info("seeded learners", "count", n)
	}
	if _, err := deps.Session.Restore(ctx); err != nil {
		log.Warn("restore session", "error", err)
	}

	p := tea.NewProgram(newAppModel(deps), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
