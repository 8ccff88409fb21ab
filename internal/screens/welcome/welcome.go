package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/academy/internal/nav"
	"github.com/abhisek/academy/internal/screen"
	"github.com/abhisek/academy/internal/ui/components"
	"github.com/abhisek/academy/internal/ui/layout"
	"github.com/abhisek/academy/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bannerAt     = 500 * time.Millisecond
	totalDur     = 1500 * time.Millisecond
)

const tagline = "Master the marketing archive, one pillar at a time."

// sparkle frames cycle beside the banner
var sparkleFrames = []string{"✦", "✧"}

type tickMsg time.Time

// WelcomeScreen is the landing page for signed-out visitors. The banner
// fades in, then the learner picks between creating a profile and signing
// in with an existing one.
type WelcomeScreen struct {
	buttons   components.ButtonRow
	elapsed   time.Duration
	tickCount int
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen.
func New() *WelcomeScreen {
	return &WelcomeScreen{
		buttons: components.NewButtonRow(
			components.Button{Label: "Initialize Profile", OnPress: func() tea.Cmd { return nav.Go(nav.Onboarding{}) }},
			components.Button{Label: "Existing Access", OnPress: func() tea.Cmd { return nav.Go(nav.Login{}) }},
		),
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←/→", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		// The first key press during the intro only skips it.
		if w.elapsed < totalDur {
			w.elapsed = totalDur
			return w, nil
		}
		var cmd tea.Cmd
		w.buttons, cmd = w.buttons.Update(msg)
		return w, cmd
	}

	return w, nil
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	if w.elapsed >= bannerAt {
		sparkle := lipgloss.NewStyle().Foreground(theme.Accent).
			Render(sparkleFrames[w.tickCount%len(sparkleFrames)])
		sections = append(sections, sparkle+"  "+theme.Subtitle.Render("MARKETING ACADEMY")+"  "+sparkle)
		sections = append(sections, RenderBanner(width), "")
	}

	if w.elapsed >= totalDur {
		sections = append(sections,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(tagline),
			"",
			w.buttons.View(),
		)
	} else {
		sections = append(sections, theme.Hint.Render("loading archive..."))
	}

	return components.Center(strings.Join(sections, "\n"), width, height)
}
