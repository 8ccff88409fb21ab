// Package nav defines the closed set of places the app can show and the
// rules for reaching them. Destinations that need a payload can only be
// built through their constructors, so a course player always knows its
// curriculum and topic.
package nav

import (
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/learner"
	"github.com/abhisek/academy/internal/progress"
)

// ErrUnknownTopic is returned when a course player is requested for a topic
// outside the curriculum.
var ErrUnknownTopic = errors.New("nav: topic not in curriculum")

// Destination is one place in the app. The set is closed: only this
// package can add variants.
type Destination interface {
	Name() string
	destination()
}

type (
	// Welcome is the landing screen for signed-out visitors.
	Welcome struct{}
	// Login asks for an email.
	Login struct{}
	// Onboarding registers a new learner.
	Onboarding struct{}
	// Dashboard is the signed-in home.
	Dashboard struct{}
	// Catalog lists curriculums, optionally filtered to one pillar id.
	Catalog struct{ Pillar string }
	// Profile shows the learner's stats, certificates and badges.
	Profile struct{}
	// Admin lists every learner. Admins only.
	Admin struct{}
)

// Curriculum shows one curriculum's topics.
type Curriculum struct {
	c catalog.Curriculum
}

// CoursePlayer reads and quizzes one topic of a curriculum.
type CoursePlayer struct {
	c     catalog.Curriculum
	topic catalog.Topic
}

// FinalExam runs a curriculum's certification exam.
type FinalExam struct {
	c catalog.Curriculum
}

// Tutor is the AI tutor chat, optionally about the topic being studied.
type Tutor struct {
	topic *catalog.Topic
}

// ToCurriculum returns the curriculum destination for c.
func ToCurriculum(c catalog.Curriculum) Curriculum { return Curriculum{c: c} }

// ToCoursePlayer returns the player for topicID of c.
func ToCoursePlayer(c catalog.Curriculum, topicID string) (CoursePlayer, error) {
	t, ok := c.Topic(topicID)
	if !ok {
		return CoursePlayer{}, ErrUnknownTopic
	}
	return CoursePlayer{c: c, topic: t}, nil
}

// ToFinalExam returns the exam destination for c.
func ToFinalExam(c catalog.Curriculum) FinalExam { return FinalExam{c: c} }

// ToTutor returns the tutor without a topic context.
func ToTutor() Tutor { return Tutor{} }

// ToTutorAbout returns the tutor primed with t as the current module.
func ToTutorAbout(t catalog.Topic) Tutor { return Tutor{topic: &t} }

func (d Curriculum) Curriculum() catalog.Curriculum   { return d.c }
func (d CoursePlayer) Curriculum() catalog.Curriculum { return d.c }
func (d CoursePlayer) Topic() catalog.Topic           { return d.topic }
func (d FinalExam) Curriculum() catalog.Curriculum    { return d.c }

// Topic returns the tutor's topic context, if any.
func (d Tutor) Topic() (catalog.Topic, bool) {
	if d.topic == nil {
		return catalog.Topic{}, false
	}
	return *d.topic, true
}

func (Welcome) Name() string      { return "welcome" }
func (Login) Name() string        { return "login" }
func (Onboarding) Name() string   { return "onboarding" }
func (Dashboard) Name() string    { return "dashboard" }
func (Catalog) Name() string      { return "catalog" }
func (Curriculum) Name() string   { return "curriculum" }
func (CoursePlayer) Name() string { return "course-player" }
func (FinalExam) Name() string    { return "final-exam" }
func (Tutor) Name() string        { return "tutor" }
func (Profile) Name() string      { return "profile" }
func (Admin) Name() string        { return "admin" }

func (Welcome) destination()      {}
func (Login) destination()        {}
func (Onboarding) destination()   {}
func (Dashboard) destination()    {}
func (Catalog) destination()      {}
func (Curriculum) destination()   {}
func (CoursePlayer) destination() {}
func (FinalExam) destination()    {}
func (Tutor) destination()        {}
func (Profile) destination()      {}
func (Admin) destination()        {}

// RequiresLearner reports whether d is only shown to a signed-in learner.
func RequiresLearner(d Destination) bool {
	switch d.(type) {
	case Welcome, Login, Onboarding:
		return false
	}
	return true
}

// Resolve applies the access rules and returns where the app should
// actually go for d:
//   - signed-out visitors only see Welcome, Login and Onboarding;
//   - signed-in learners skip those and land on the Dashboard;
//   - Admin needs the admin role;
//   - a locked topic, or an exam before every topic is done, falls back
//     to the curriculum view;
//   - a destination built without its payload falls back to the Catalog.
func Resolve(d Destination, p learner.Profile, signedIn bool) Destination {
	if d == nil {
		d = Welcome{}
	}
	if !signedIn {
		if RequiresLearner(d) {
			return Welcome{}
		}
		return d
	}
	if !RequiresLearner(d) {
		return Dashboard{}
	}

	switch d := d.(type) {
	case Admin:
		if !p.IsAdmin() {
			return Dashboard{}
		}
	case Curriculum:
		if d.c.ID == "" {
			return Catalog{}
		}
	case CoursePlayer:
		if d.c.ID == "" || d.topic.ID == "" {
			return Catalog{}
		}
		if !progress.IsUnlocked(d.topic.ID, d.c, p) {
			return ToCurriculum(d.c)
		}
	case FinalExam:
		if d.c.ID == "" {
			return Catalog{}
		}
		if progress.Percent(d.c, p) < 100 {
			return ToCurriculum(d.c)
		}
	}
	return d
}

// Mode says how a navigation changes the screen stack.
type Mode int

const (
	// Push opens the destination on top of the current screen.
	Push Mode = iota
	// Replace swaps the current screen.
	Replace
	// Reset clears the stack so the destination becomes the root.
	Reset
)

// GoMsg asks the app to navigate.
type GoMsg struct {
	To   Destination
	Mode Mode
}

// Go returns a command that pushes d.
func Go(d Destination) tea.Cmd {
	return func() tea.Msg { return GoMsg{To: d, Mode: Push} }
}

// Swap returns a command that replaces the current screen with d.
func Swap(d Destination) tea.Cmd {
	return func() tea.Msg { return GoMsg{To: d, Mode: Replace} }
}

// Home returns a command that makes d the only screen.
func Home(d Destination) tea.Cmd {
	return func() tea.Msg { return GoMsg{To: d, Mode: Reset} }
}
