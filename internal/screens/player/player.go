// Package player is the course player: it walks a learner through a
// topic's articles, runs its quiz and records the result.
package player

import (
	"context"
	"fmt"
	"strings"

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

// PlayerScreen plays one curriculum starting at a topic. Passing a topic
// moves straight on to the next one.
type PlayerScreen struct {
	deps   screen.Deps
	ts     *quiz.TopicSession
	choice components.MultiChoice
	input  components.TextInput
	notice string
	passed bool
	err    string
	done   bool
	finish components.ButtonRow
}

var _ screen.Screen = (*PlayerScreen)(nil)
var _ screen.KeyHintProvider = (*PlayerScreen)(nil)
var _ screen.InputCapturer = (*PlayerScreen)(nil)

// New opens the topic of d for the signed-in learner and records it as the
// last accessed topic. It fails when the topic is locked.
func New(deps screen.Deps, d nav.CoursePlayer) (*PlayerScreen, error) {
	c, t := d.Curriculum(), d.Topic()
	p, _ := deps.Session.Profile()

	ts, err := quiz.NewTopicSession(c, t.ID, p)
	if err != nil {
		return nil, err
	}
	if _, err := deps.Session.Update(context.Background(), func(p learner.Profile) learner.Profile {
		return progress.Visit(p, c, t.ID)
	}); err != nil {
		deps.Logger().Warn("record visit", "topic", t.ID, "error", err)
	}

	return &PlayerScreen{
		deps: deps,
		ts:   ts,
		finish: components.NewButtonRow(
			components.Button{Label: "Take final exam", OnPress: func() tea.Cmd { return nav.Swap(nav.ToFinalExam(c)) }},
			components.Button{Label: "Dashboard", OnPress: func() tea.Cmd { return nav.Home(nav.Dashboard{}) }},
		),
	}, nil
}

func (s *PlayerScreen) Init() tea.Cmd { return nil }

func (s *PlayerScreen) Title() string { return s.ts.Curriculum().Title }

func (s *PlayerScreen) CapturingInput() bool {
	return s.fillIn() && !s.ts.Answered()
}

func (s *PlayerScreen) fillIn() bool {
	return !s.done && s.ts.Phase() == quiz.PhaseQuizzing && s.ts.Step().Type == catalog.FillInBlank
}

func (s *PlayerScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.done:
		return []layout.KeyHint{{Key: "←/→", Description: "Choose"}, {Key: "Enter", Description: "Select"}}
	case s.ts.Phase() == quiz.PhaseReading:
		return []layout.KeyHint{
			{Key: "←/→", Description: "Page"},
			{Key: "Enter", Description: "Next"},
			{Key: "t", Description: "Ask tutor"},
			{Key: "Esc", Description: "Leave"},
		}
	case s.ts.Answered():
		return []layout.KeyHint{{Key: "Enter", Description: "Continue"}, {Key: "Esc", Description: "Leave"}}
	case s.fillIn():
		return []layout.KeyHint{{Key: "Enter", Description: "Submit"}, {Key: "Esc", Description: "Leave"}}
	default:
		return []layout.KeyHint{
			{Key: "↑/↓", Description: "Choose"},
			{Key: "A-D", Description: "Pick"},
			{Key: "Enter", Description: "Submit"},
		}
	}
}

func (s *PlayerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case attemptMsg:
		if msg.err != nil {
			s.deps.Logger().Warn("record topic attempt", "error", msg.err)
		}
		return s, nil

	case tea.KeyPressMsg:
		if s.done {
			var cmd tea.Cmd
			s.finish, cmd = s.finish.Update(msg)
			return s, cmd
		}
		if s.ts.Phase() == quiz.PhaseReading {
			return s, s.updateReading(msg)
		}
		return s, s.updateQuiz(msg)
	}
	return s, nil
}

func (s *PlayerScreen) updateReading(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "right", "l", "n":
		if s.ts.NextArticle() {
			s.notice = ""
		}
	case "left", "h", "p":
		if s.ts.PrevArticle() {
			s.notice = ""
		}
	case "enter":
		if s.ts.NextArticle() {
			s.notice = ""
			return nil
		}
		if err := s.ts.StartQuiz(); err != nil {
			s.deps.Logger().Warn("start quiz", "error", err)
			return nil
		}
		s.notice = ""
		return s.prepareStep()
	case "t":
		return nav.Go(nav.ToTutorAbout(s.ts.Topic()))
	}
	return nil
}

func (s *PlayerScreen) updateQuiz(msg tea.KeyPressMsg) tea.Cmd {
	if s.ts.Answered() {
		if msg.String() == "enter" {
			return s.next()
		}
		return nil
	}

	if s.fillIn() {
		if msg.String() == "enter" {
			if s.input.Value() == "" {
				return nil
			}
			s.answer(quiz.Text(s.input.Value()))
			s.input.Blur()
			return nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return cmd
	}

	s.choice, _ = s.choice.Update(msg)
	if s.choice.Submitted {
		s.answer(quiz.Choice(s.choice.Selected))
		s.choice.Reveal = true
		s.choice.CorrectIndex = s.ts.Step().CorrectIndex
	}
	return nil
}

func (s *PlayerScreen) answer(r quiz.Response) {
	if _, err := s.ts.Answer(r); err != nil {
		s.deps.Logger().Warn("answer step", "error", err)
	}
}

// prepareStep resets the answer widgets for the current step.
func (s *PlayerScreen) prepareStep() tea.Cmd {
	step := s.ts.Step()
	if step.Type == catalog.FillInBlank {
		s.input = components.NewTextInput("type your answer", 60)
		return s.input.Init()
	}
	s.choice = components.NewMultiChoice(step.Options)
	return nil
}

func (s *PlayerScreen) next() tea.Cmd {
	before, _ := s.deps.Session.Profile()
	res, err := s.ts.Continue(before)
	if err != nil {
		s.deps.Logger().Warn("continue quiz", "error", err)
		return nil
	}

	switch res.Outcome {
	case quiz.OutcomeNextStep:
		return s.prepareStep()

	case quiz.OutcomeRetry:
		s.passed = false
		s.notice = fmt.Sprintf("Score %d/%d. Every answer must be correct: review the material and try again.", res.Score, res.Total)
		return s.record(res)

	case quiz.OutcomeAdvanced:
		s.save(res.Profile)
		s.passed = true
		s.notice = fmt.Sprintf("✓ %s complete%s. Up next: %s", res.Topic.Title, xpGain(before, res.Profile), s.ts.Topic().Title)
		return s.record(res)

	case quiz.OutcomeCurriculumDone:
		s.save(res.Profile)
		s.passed = true
		s.done = true
		s.notice = fmt.Sprintf("✓ %s complete%s.", res.Topic.Title, xpGain(before, res.Profile))
		return s.record(res)
	}
	return nil
}

// save writes the profile inline so consecutive results are stored in the
// order they happened.
func (s *PlayerScreen) save(p learner.Profile) {
	if _, err := s.deps.Session.Save(context.Background(), p); err != nil {
		s.deps.Logger().Error("save progress", "error", err)
		s.err = "Progress could not be saved."
	}
}

func (s *PlayerScreen) record(res quiz.Result) tea.Cmd {
	sess := s.deps.Session
	return func() tea.Msg {
		err := sess.RecordAttempt(context.Background(), learner.AttemptTopic, res.Topic.ID, res.Score, res.Total, res.Passed())
		return attemptMsg{err: err}
	}
}

func xpGain(before, after learner.Profile) string {
	if d := after.XP - before.XP; d > 0 {
		return fmt.Sprintf(". +%d XP", d)
	}
	return ""
}

func (s *PlayerScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	t := s.ts.Topic()

	var b strings.Builder
	if s.notice != "" {
		style := theme.Incorrect
		if s.passed {
			style = theme.Correct
		}
		b.WriteString(style.Width(cw-4).Render(s.notice) + "\n\n")
	}
	if s.err != "" {
		b.WriteString(components.ErrorLine(s.err) + "\n\n")
	}

	var title string
	switch {
	case s.done:
		title = "Curriculum complete"
		b.WriteString(theme.Body.Width(cw - 4).Render("Every topic is done. The final exam is now open: pass it to earn your certificate."))
		b.WriteString("\n\n")
		b.WriteString(s.finish.View())

	case s.ts.Phase() == quiz.PhaseReading:
		title = t.Title
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Article %d of %d", s.ts.ArticleIndex()+1, s.ts.ArticleCount())))
		b.WriteString("\n\n")
		b.WriteString(renderArticle(s.ts.Article(), cw-4))
		b.WriteString("\n\n")
		if s.ts.OnLastArticle() {
			b.WriteString(theme.Hint.Render("Press Enter to start the quiz."))
		} else {
			b.WriteString(theme.Hint.Render("Press Enter for the next article."))
		}

	default:
		title = t.Title + " · Quiz"
		s.renderStep(&b, cw)
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(title, b.String(), cw))
}

func (s *PlayerScreen) renderStep(b *strings.Builder, cw int) {
	step := s.ts.Step()
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Question %d of %d", s.ts.StepIndex()+1, s.ts.StepCount())))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Width(cw - 4).Bold(true).Render(step.Content))
	b.WriteString("\n\n")

	if step.Type == catalog.FillInBlank {
		b.WriteString(s.input.View())
	} else {
		b.WriteString(s.choice.View())
	}

	if !s.ts.Answered() {
		return
	}
	b.WriteString("\n\n")
	if fb := s.ts.Feedback(); fb.Correct {
		b.WriteString(theme.Correct.Render("✓ Correct"))
	} else {
		b.WriteString(theme.Incorrect.Render("✗ Expected: " + fb.Expected))
	}
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Press Enter to continue."))
}
