package quiz

import (
	"math/rand/v2"
	"slices"

	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/learner"
	"github.com/abhisek/academy/internal/progress"
)

// ExamSize is the number of questions drawn for a final exam.
const ExamSize = 10

// Shuffler permutes n elements through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// NewShuffler returns a seeded Shuffler. Equal seeds give equal exams.
func NewShuffler(seed uint64) Shuffler {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// ExamState is the lifecycle of a final exam.
type ExamState int

const (
	ExamNotStarted ExamState = iota
	ExamInProgress
	ExamPassed
	ExamFailed
)

func (s ExamState) String() string {
	switch s {
	case ExamInProgress:
		return "in progress"
	case ExamPassed:
		return "passed"
	case ExamFailed:
		return "failed"
	default:
		return "not started"
	}
}

// PassThreshold is the minimum score that passes an exam of n questions:
// 90% rounded up, which is 9 for a full exam.
func PassThreshold(n int) int {
	return (9*n + 9) / 10
}

// Exam is the certification gate of a curriculum. It draws up to ExamSize
// questions from every topic quiz and accepts one answer per question.
// Abandoning an exam is simply dropping it; nothing is saved until Apply.
type Exam struct {
	curriculum catalog.Curriculum
	shuffler   Shuffler
	state      ExamState
	questions  []catalog.QuizStep
	current    int
	score      int
}

// NewExam prepares an exam for c. A nil shuffler keeps catalog order.
func NewExam(c catalog.Curriculum, shuffler Shuffler) *Exam {
	return &Exam{curriculum: c, shuffler: shuffler}
}

func (e *Exam) Curriculum() catalog.Curriculum { return e.curriculum }
func (e *Exam) State() ExamState               { return e.state }
func (e *Exam) Score() int                     { return e.score }

// Total returns the number of drawn questions.
func (e *Exam) Total() int { return len(e.questions) }

// Index returns the zero-based position of the current question.
func (e *Exam) Index() int { return e.current }

// Questions returns the drawn questions in exam order.
func (e *Exam) Questions() []catalog.QuizStep { return slices.Clone(e.questions) }

// Start draws the questions. Restarting a finished exam draws afresh.
func (e *Exam) Start() error {
	pool := e.curriculum.QuizSteps()
	if len(pool) == 0 {
		return ErrNoQuestions
	}
	if e.shuffler != nil {
		e.shuffler.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	}
	if len(pool) > ExamSize {
		pool = pool[:ExamSize]
	}

	e.questions = pool
	e.current = 0
	e.score = 0
	e.state = ExamInProgress
	return nil
}

// Question returns the question to answer.
func (e *Exam) Question() (catalog.QuizStep, error) {
	if e.state != ExamInProgress {
		return catalog.QuizStep{}, ErrExamNotRunning
	}
	return e.questions[e.current], nil
}

// Answer scores the current question and moves on. After the last question
// the exam completes as passed or failed.
func (e *Exam) Answer(r Response) (bool, error) {
	if e.state != ExamInProgress {
		return false, ErrExamNotRunning
	}

	correct := CheckExamAnswer(e.questions[e.current], r)
	if correct {
		e.score++
	}

	if e.current < len(e.questions)-1 {
		e.current++
		return correct, nil
	}

	if e.score >= PassThreshold(len(e.questions)) {
		e.state = ExamPassed
	} else {
		e.state = ExamFailed
	}
	return correct, nil
}

// Apply folds a finished exam into p. Only a pass changes the profile.
func (e *Exam) Apply(p learner.Profile) learner.Profile {
	if e.state != ExamPassed {
		return p
	}
	return progress.PassExam(p, e.curriculum)
}
