package login

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/academy/internal/nav"
	"github.com/abhisek/academy/internal/screen"
	"github.com/abhisek/academy/internal/session"
	"github.com/abhisek/academy/internal/ui/components"
	"github.com/abhisek/academy/internal/ui/layout"
	"github.com/abhisek/academy/internal/ui/theme"
)

const notFound = "Account not found."

type resultMsg struct{ err error }

// LoginScreen signs an existing learner in by email.
type LoginScreen struct {
	deps  screen.Deps
	email components.TextInput
	busy  bool
	err   string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)
var _ screen.InputCapturer = (*LoginScreen)(nil)

// New creates a LoginScreen.
func New(deps screen.Deps) *LoginScreen {
	return &LoginScreen{
		deps:  deps,
		email: components.NewTextInput("you@company.com", 120),
	}
}

func (l *LoginScreen) Init() tea.Cmd { return l.email.Init() }

func (l *LoginScreen) Title() string { return "Sign In" }

func (l *LoginScreen) CapturingInput() bool { return true }

func (l *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Access"},
		{Key: "Esc", Description: "Back"},
	}
}

func (l *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		l.busy = false
		switch {
		case msg.err == nil:
			return l, nav.Home(nav.Dashboard{})
		case errors.Is(msg.err, session.ErrUnknownEmail):
			l.err = notFound
		default:
			l.deps.Logger().Error("sign in", "error", msg.err)
			l.err = "Sign-in failed. Try again."
		}
		return l, nil

	case tea.KeyPressMsg:
		if msg.String() == "enter" {
			return l, l.submit()
		}
	}

	var cmd tea.Cmd
	l.email, cmd = l.email.Update(msg)
	return l, cmd
}

func (l *LoginScreen) submit() tea.Cmd {
	email := l.email.Value()
	if email == "" || l.busy {
		return nil
	}
	l.busy = true
	l.err = ""
	sess := l.deps.Session
	return func() tea.Msg {
		_, err := sess.Login(context.Background(), email)
		return resultMsg{err: err}
	}
}

func (l *LoginScreen) View(width, height int) string {
	cw := min(components.ContentWidth(width), 56)

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("Enter the email you registered with."))
	b.WriteString("\n\n")
	b.WriteString(theme.Label.Render("EMAIL"))
	b.WriteString("\n")
	b.WriteString(l.email.View())
	b.WriteString("\n\n")
	switch {
	case l.busy:
		b.WriteString(theme.Hint.Render("Verifying access..."))
	case l.err != "":
		b.WriteString(components.ErrorLine(l.err))
	}

	return components.Center(components.Card("Existing Access", b.String(), cw), width, height)
}
