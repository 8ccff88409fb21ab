// Package exam runs a curriculum's final certification exam.
package exam

import (
	"context"
	"fmt"
	"strings"
	"time"

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

type attemptMsg struct{ err error }

// ExamScreen shows the exam intro, one question at a time and the result.
// Leaving mid-exam discards it.
type ExamScreen struct {
	deps    screen.Deps
	c       catalog.Curriculum
	exam    *quiz.Exam
	choice  components.MultiChoice
	input   components.TextInput
	result  components.ButtonRow
	awarded bool
	err     string
}

var _ screen.Screen = (*ExamScreen)(nil)
var _ screen.KeyHintProvider = (*ExamScreen)(nil)
var _ screen.InputCapturer = (*ExamScreen)(nil)

// New creates an ExamScreen for d.
func New(deps screen.Deps, d nav.FinalExam) *ExamScreen {
	s := &ExamScreen{deps: deps, c: d.Curriculum()}
	s.reset()
	return s
}

func (s *ExamScreen) reset() {
	var sh quiz.Shuffler
	if s.deps.Shuffler != nil {
		sh = s.deps.Shuffler()
	} else {
		sh = quiz.NewShuffler(uint64(time.Now().UnixNano()))
	}
	s.exam = quiz.NewExam(s.c, sh)
	s.awarded = false
	s.err = ""
}

func (s *ExamScreen) Init() tea.Cmd { return nil }

func (s *ExamScreen) Title() string { return s.c.Title + " · Final Exam" }

func (s *ExamScreen) CapturingInput() bool {
	return s.exam.State() == quiz.ExamInProgress && s.current().Type == catalog.FillInBlank
}

func (s *ExamScreen) KeyHints() []layout.KeyHint {
	switch s.exam.State() {
	case quiz.ExamNotStarted:
		return []layout.KeyHint{{Key: "Enter", Description: "Begin"}, {Key: "Esc", Description: "Back"}}
	case quiz.ExamInProgress:
		return []layout.KeyHint{{Key: "Enter", Description: "Submit"}, {Key: "Esc", Description: "Abandon"}}
	default:
		return []layout.KeyHint{{Key: "←/→", Description: "Choose"}, {Key: "Enter", Description: "Select"}}
	}
}

func (s *ExamScreen) current() catalog.QuizStep {
	q, _ := s.exam.Question()
	return q
}

func (s *ExamScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case attemptMsg:
		if msg.err != nil {
			s.deps.Logger().Warn("record exam attempt", "error", msg.err)
		}
		return s, nil

	case tea.KeyPressMsg:
		switch s.exam.State() {
		case quiz.ExamNotStarted:
			if msg.String() == "enter" {
				return s, s.start()
			}
		case quiz.ExamInProgress:
			return s, s.updateQuestion(msg)
		default:
			var cmd tea.Cmd
			s.result, cmd = s.result.Update(msg)
			return s, cmd
		}
	}
	return s, nil
}

func (s *ExamScreen) start() tea.Cmd {
	if err := s.exam.Start(); err != nil {
		s.err = "This exam has no questions."
		s.deps.Logger().Warn("start exam", "curriculum", s.c.ID, "error", err)
		return nil
	}
	return s.prepare()
}

func (s *ExamScreen) prepare() tea.Cmd {
	q := s.current()
	if q.Type == catalog.FillInBlank {
		s.input = components.NewTextInput("type your answer", 60)
		return s.input.Init()
	}
	s.choice = components.NewMultiChoice(q.Options)
	return nil
}

func (s *ExamScreen) updateQuestion(msg tea.KeyPressMsg) tea.Cmd {
	var r quiz.Response
	if s.current().Type == catalog.FillInBlank {
		if msg.String() != "enter" {
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return cmd
		}
		if s.input.Value() == "" {
			return nil
		}
		r = quiz.Text(s.input.Value())
	} else {
		s.choice, _ = s.choice.Update(msg)
		if !s.choice.Submitted {
			return nil
		}
		r = quiz.Choice(s.choice.Selected)
	}

	if _, err := s.exam.Answer(r); err != nil {
		s.deps.Logger().Warn("answer exam question", "error", err)
		return nil
	}
	if s.exam.State() == quiz.ExamInProgress {
		return s.prepare()
	}
	return s.finish()
}

func (s *ExamScreen) finish() tea.Cmd {
	passed := s.exam.State() == quiz.ExamPassed
	if passed {
		before, _ := s.deps.Session.Profile()
		after, err := s.deps.Session.Update(context.Background(), s.exam.Apply)
		if err != nil {
			s.deps.Logger().Error("save exam result", "error", err)
			s.err = "Your certificate could not be saved."
		}
		s.awarded = after.XP > before.XP
	}

	c := s.c
	if passed {
		s.result = components.NewButtonRow(
			components.Button{Label: "Back to curriculum", OnPress: func() tea.Cmd { return nav.Swap(nav.ToCurriculum(c)) }},
			components.Button{Label: "Dashboard", OnPress: func() tea.Cmd { return nav.Home(nav.Dashboard{}) }},
		)
	} else {
		s.result = components.NewButtonRow(
			components.Button{Label: "Retake exam", OnPress: func() tea.Cmd { s.reset(); return nil }},
			components.Button{Label: "Back to curriculum", OnPress: func() tea.Cmd { return nav.Swap(nav.ToCurriculum(c)) }},
		)
	}

	sess, score, total, id := s.deps.Session, s.exam.Score(), s.exam.Total(), s.c.ID
	return func() tea.Msg {
		err := sess.RecordAttempt(context.Background(), learner.AttemptExam, id, score, total, passed)
		return attemptMsg{err: err}
	}
}

func (s *ExamScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	switch s.exam.State() {
	case quiz.ExamNotStarted:
		n := min(len(s.c.QuizSteps()), quiz.ExamSize)
		b.WriteString(theme.Body.Width(cw - 4).Render(fmt.Sprintf(
			"%d questions drawn from every topic of %s. You need %d correct to earn the certificate. Each question takes one answer.",
			n, s.c.Title, quiz.PassThreshold(n))))
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Press Enter to begin."))

	case quiz.ExamInProgress:
		q := s.current()
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Question %d of %d", s.exam.Index()+1, s.exam.Total())))
		b.WriteString("\n")
		b.WriteString(components.NewProgressBar("", float64(s.exam.Index())*100/float64(s.exam.Total()), false, cw-4).View())
		b.WriteString("\n\n")
		b.WriteString(theme.Body.Width(cw - 4).Bold(true).Render(q.Content))
		b.WriteString("\n\n")
		if q.Type == catalog.FillInBlank {
			b.WriteString(s.input.View())
		} else {
			b.WriteString(s.choice.View())
		}

	case quiz.ExamPassed:
		b.WriteString(theme.Correct.Render(fmt.Sprintf("✓ Certified · %d/%d", s.exam.Score(), s.exam.Total())))
		b.WriteString("\n\n")
		line := "You hold the " + strings.TrimSuffix(s.c.Title, " Mastery") + " certificate."
		if s.awarded {
			line += fmt.Sprintf(" +%d XP", progress.ExamXP)
		}
		b.WriteString(theme.Body.Render(line))
		b.WriteString("\n\n")
		b.WriteString(s.result.View())

	case quiz.ExamFailed:
		b.WriteString(theme.Incorrect.Render(fmt.Sprintf("✗ Score %d/%d", s.exam.Score(), s.exam.Total())))
		b.WriteString("\n\n")
		b.WriteString(theme.Body.Render(fmt.Sprintf("%d correct answers are needed. Review the topics and try again.", quiz.PassThreshold(s.exam.Total()))))
		b.WriteString("\n\n")
		b.WriteString(s.result.View())
	}

	if s.err != "" {
		b.WriteString("\n\n" + components.ErrorLine(s.err))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card("Final Exam", b.String(), cw))
}
