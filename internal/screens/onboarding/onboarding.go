// Package onboarding registers a new learner in three steps: identity,
// experience level and learning goal.
package onboarding

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/academy/internal/learner"
	"github.com/abhisek/academy/internal/nav"
	"github.com/abhisek/academy/internal/screen"
	"github.com/abhisek/academy/internal/session"
	"github.com/abhisek/academy/internal/ui/components"
	"github.com/abhisek/academy/internal/ui/layout"
	"github.com/abhisek/academy/internal/ui/theme"
)

type step int

const (
	stepIdentity step = iota
	stepLevel
	stepGoal
)

const stepCount = 3

type registeredMsg struct{ err error }

// OnboardingScreen collects a registration and signs the new learner in.
type OnboardingScreen struct {
	deps  screen.Deps
	step  step
	name  components.TextInput
	email components.TextInput
	// focus is 0 for the name field and 1 for email.
	focus int
	level int
	goal  int
	busy  bool
	err   string
}

var _ screen.Screen = (*OnboardingScreen)(nil)
var _ screen.KeyHintProvider = (*OnboardingScreen)(nil)
var _ screen.InputCapturer = (*OnboardingScreen)(nil)

// New creates an OnboardingScreen with the default level and goal selected.
func New(deps screen.Deps) *OnboardingScreen {
	o := &OnboardingScreen{
		deps:  deps,
		name:  components.NewTextInput("Full name", 80),
		email: components.NewTextInput("you@company.com", 120),
		level: max(slices.Index(learner.ExperienceLevels, learner.ExperienceNone), 0),
		goal:  max(slices.Index(learner.LearningGoals, learner.GoalPersonal), 0),
	}
	o.email.Blur()
	return o
}

func (o *OnboardingScreen) Init() tea.Cmd { return o.name.Init() }

func (o *OnboardingScreen) Title() string { return "New Profile" }

func (o *OnboardingScreen) CapturingInput() bool { return o.step == stepIdentity }

func (o *OnboardingScreen) KeyHints() []layout.KeyHint {
	if o.step == stepIdentity {
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next field"},
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Choose"},
		{Key: "Enter", Description: "Continue"},
		{Key: "←", Description: "Previous step"},
	}
}

func (o *OnboardingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case registeredMsg:
		o.busy = false
		switch {
		case msg.err == nil:
			return o, nav.Home(nav.Dashboard{})
		case errors.Is(msg.err, session.ErrEmailTaken):
			o.err = "An account with that email already exists."
			return o, o.gotoIdentity(1)
		case errors.Is(msg.err, session.ErrInvalidRegistration):
			o.err = "Name and email are required."
			return o, o.gotoIdentity(0)
		default:
			o.deps.Logger().Error("register learner", "error", msg.err)
			o.err = "Could not create the profile. Try again."
		}
		return o, nil

	case tea.KeyPressMsg:
		if o.busy {
			return o, nil
		}
		switch o.step {
		case stepIdentity:
			return o, o.updateIdentity(msg)
		case stepLevel:
			o.level = o.updateChoice(msg, o.level, len(learner.ExperienceLevels))
		case stepGoal:
			o.goal = o.updateChoice(msg, o.goal, len(learner.LearningGoals))
			if msg.String() == "enter" {
				return o, o.submit()
			}
		}
		return o, nil
	}
	return o, nil
}

func (o *OnboardingScreen) updateIdentity(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "shift+tab", "down", "up":
		return o.setFocus(1 - o.focus)
	case "enter":
		if o.focus == 0 {
			return o.setFocus(1)
		}
		if o.name.Value() == "" || o.email.Value() == "" {
			o.err = "Name and email are required."
			return nil
		}
		o.err = ""
		o.step = stepLevel
		o.name.Blur()
		o.email.Blur()
		return nil
	}

	var cmd tea.Cmd
	if o.focus == 0 {
		o.name, cmd = o.name.Update(msg)
	} else {
		o.email, cmd = o.email.Update(msg)
	}
	return cmd
}

// updateChoice moves a list selection and handles step navigation.
func (o *OnboardingScreen) updateChoice(msg tea.KeyPressMsg, sel, n int) int {
	switch msg.String() {
	case "up", "k":
		return max(sel-1, 0)
	case "down", "j":
		return min(sel+1, n-1)
	case "left", "h":
		if o.step == stepLevel {
			o.gotoIdentity(o.focus)
		} else {
			o.step--
		}
	case "enter":
		if o.step == stepLevel {
			o.step = stepGoal
		}
	}
	return sel
}

func (o *OnboardingScreen) gotoIdentity(focus int) tea.Cmd {
	o.step = stepIdentity
	return o.setFocus(focus)
}

func (o *OnboardingScreen) setFocus(focus int) tea.Cmd {
	o.focus = focus
	if focus == 0 {
		o.email.Blur()
		return o.name.Focus()
	}
	o.name.Blur()
	return o.email.Focus()
}

func (o *OnboardingScreen) submit() tea.Cmd {
	o.busy = true
	o.err = ""
	reg := session.Registration{
		Name:            o.name.Value(),
		Email:           o.email.Value(),
		ExperienceLevel: learner.ExperienceLevels[o.level],
		LearningGoal:    learner.LearningGoals[o.goal],
	}
	sess := o.deps.Session
	return func() tea.Msg {
		_, err := sess.Register(context.Background(), reg)
		return registeredMsg{err: err}
	}
}

func (o *OnboardingScreen) View(width, height int) string {
	cw := min(components.ContentWidth(width), 60)

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Step %d of %d", int(o.step)+1, stepCount)))
	b.WriteString("\n\n")

	var title string
	switch o.step {
	case stepIdentity:
		title = "Who are you?"
		b.WriteString(theme.Label.Render("NAME") + "\n" + o.name.View() + "\n\n")
		b.WriteString(theme.Label.Render("EMAIL") + "\n" + o.email.View() + "\n")
	case stepLevel:
		title = "Marketing experience"
		b.WriteString(choices(learner.ExperienceLevels, o.level))
	case stepGoal:
		title = "What brings you here?"
		b.WriteString(choices(learner.LearningGoals, o.goal))
	}

	b.WriteString("\n")
	switch {
	case o.busy:
		b.WriteString(theme.Hint.Render("Creating profile..."))
	case o.err != "":
		b.WriteString(components.ErrorLine(o.err))
	}

	return components.Center(components.Card(title, b.String(), cw), width, height)
}

func choices[T ~string](options []T, selected int) string {
	items := make([]components.MenuItem, len(options))
	for i, opt := range options {
		items[i] = components.MenuItem{Label: string(opt)}
	}
	m := components.NewMenu(items)
	m.Selected = selected
	return m.View()
}
