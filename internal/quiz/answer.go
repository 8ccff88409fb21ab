// Package quiz runs topic quizzes and final exams. Sessions are small state
// machines over immutable catalog content; applying their outcome to a
// learner profile is delegated to the progress package.
package quiz

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abhisek/academy/internal/catalog"
)

// Response is a learner's answer to one step. Choice is used for
// multiple-choice steps and Text for fill-in-blank steps.
type Response struct {
	Choice int
	Text   string
}

// Choice builds a multiple-choice response.
func Choice(i int) Response { return Response{Choice: i} }

// Text builds a fill-in-blank response.
func Text(s string) Response { return Response{Text: s} }

// CheckTopicAnswer scores a response inside a topic quiz: the chosen option
// must equal the correct index, typed text must match ignoring case and
// surrounding whitespace.
func CheckTopicAnswer(step catalog.QuizStep, r Response) bool {
	switch step.Type {
	case catalog.MultipleChoice:
		return r.Choice == step.CorrectIndex
	case catalog.FillInBlank:
		return fold(r.Text) == fold(step.CorrectText)
	default:
		return false
	}
}

// CheckExamAnswer scores a response inside a final exam. The answer is
// rendered as text and compared case-insensitively with the canonical
// answer, which for multiple-choice is the decimal option index.
func CheckExamAnswer(step catalog.QuizStep, r Response) bool {
	given := r.Text
	if step.Type == catalog.MultipleChoice {
		given = strconv.Itoa(r.Choice)
	}
	return fold(given) == fold(step.CorrectAnswer())
}

// fold normalises text for comparison: trimmed and lowercased, without
// full case folding, so "Straße" does not match "strasse". A Caser keeps
// state, so one is made per call.
func fold(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}
