// Package chat is the AI tutor conversation. Questions go out as commands
// carrying a transcript token; a reply that arrives after a newer question
// is dropped.
package chat

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/academy/internal/learner"
	"github.com/abhisek/academy/internal/nav"
	"github.com/abhisek/academy/internal/screen"
	"github.com/abhisek/academy/internal/tutor"
	"github.com/abhisek/academy/internal/ui/components"
	"github.com/abhisek/academy/internal/ui/layout"
	"github.com/abhisek/academy/internal/ui/theme"
)

type replyMsg struct {
	tok   tutor.Token
	reply string
	err   error
}

// ChatScreen is the tutor chat.
type ChatScreen struct {
	deps   screen.Deps
	tutor  *tutor.Client
	module string
	tr     *tutor.Transcript
	input  components.TextInput
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)
var _ screen.InputCapturer = (*ChatScreen)(nil)

// New creates a ChatScreen from the learner's saved transcript. When d
// carries a topic, questions are asked in its context.
func New(deps screen.Deps, d nav.Tutor) *ChatScreen {
	tc := deps.Tutor
	if tc == nil {
		tc = tutor.New(nil, deps.Log)
	}
	s := &ChatScreen{
		deps:  deps,
		tutor: tc,
		input: components.NewTextInput("Ask the professor anything about marketing...", 500),
	}
	if t, ok := d.Topic(); ok {
		s.module = t.Title
	}

	history, err := deps.Session.ChatHistory(context.Background())
	if err != nil {
		deps.Logger().Warn("load chat history", "error", err)
	}
	s.tr = tutor.NewTranscript(history, deps.Now)
	return s
}

func (s *ChatScreen) Init() tea.Cmd { return s.input.Init() }

func (s *ChatScreen) Title() string { return "AI Tutor" }

func (s *ChatScreen) CapturingInput() bool { return true }

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Ctrl+L", Description: "Clear"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		s.settle(msg)
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			return s, s.ask()
		case "ctrl+l":
			s.tr.Clear()
			if err := s.deps.Session.ClearChat(context.Background()); err != nil {
				s.deps.Logger().Warn("clear chat", "error", err)
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ChatScreen) ask() tea.Cmd {
	text := s.input.Value()
	if text == "" {
		return nil
	}
	s.input.Reset()

	tok, entry, prior := s.tr.Begin(text)
	s.persist(entry)

	p, _ := s.deps.Session.Profile()
	q := tutor.Question{
		Text:           text,
		ProfileContext: tutor.ProfileContext(p),
		ModuleContext:  s.module,
		PriorTurns:     prior,
	}
	tc := s.tutor
	return func() tea.Msg {
		reply, err := tc.Ask(context.Background(), q)
		return replyMsg{tok: tok, reply: reply, err: err}
	}
}

func (s *ChatScreen) settle(msg replyMsg) {
	var (
		entry learner.ChatEntry
		kept  bool
	)
	if msg.err != nil {
		s.deps.Logger().Warn("tutor reply", "error", msg.err)
		entry, kept = s.tr.Fail(msg.tok)
	} else {
		entry, kept = s.tr.Resolve(msg.tok, msg.reply)
	}
	if kept {
		s.persist(entry)
	}
}

func (s *ChatScreen) persist(e learner.ChatEntry) {
	if err := s.deps.Session.AppendChat(context.Background(), e); err != nil {
		s.deps.Logger().Warn("save chat entry", "error", err)
	}
}

func (s *ChatScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	bubble := cw * 3 / 4

	var blocks []string
	for _, e := range s.tr.Entries() {
		if e.Role == learner.ChatUser {
			blocks = append(blocks, lipgloss.PlaceHorizontal(cw, lipgloss.Right,
				theme.UserBubble.Width(bubble).Render(e.Text)))
		} else {
			blocks = append(blocks, theme.BotBubble.Width(bubble).Render(e.Text))
		}
	}
	if s.tr.Pending() {
		blocks = append(blocks, theme.Hint.Render("The professor is thinking..."))
	}
	if len(blocks) == 0 {
		blocks = append(blocks, theme.Hint.Render("No questions yet. Ask about any topic in the archive."))
	}

	header := theme.Subtitle.Render("Context: " + s.moduleLabel())
	if !s.tutor.Online() {
		header += theme.Hint.Render("   (offline: no model configured)")
	}

	// Show the newest messages that fit above the input.
	lines := strings.Split(strings.Join(blocks, "\n"), "\n")
	room := max(layout.ContentHeight(height)-6, 3)
	if len(lines) > room {
		lines = lines[len(lines)-room:]
	}

	content := header + "\n\n" + strings.Join(lines, "\n") + "\n\n" + s.input.View()
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(content))
}

func (s *ChatScreen) moduleLabel() string {
	if s.module == "" {
		return tutor.DefaultModuleContext
	}
	return s.module
}
