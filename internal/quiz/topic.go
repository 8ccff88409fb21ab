package quiz

import (
	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/learner"
	"github.com/abhisek/academy/internal/progress"
)

// Phase is where a topic session currently is.
type Phase int

const (
	PhaseReading Phase = iota
	PhaseQuizzing
)

func (p Phase) String() string {
	if p == PhaseQuizzing {
		return "quizzing"
	}
	return "reading"
}

// Outcome describes what Continue did.
type Outcome int

const (
	// OutcomeNextStep moved on to the next quiz step.
	OutcomeNextStep Outcome = iota
	// OutcomeRetry means the quiz was not perfect; the session is back at
	// the first article.
	OutcomeRetry
	// OutcomeAdvanced means the topic was passed and the session moved to
	// the next topic of the curriculum.
	OutcomeAdvanced
	// OutcomeCurriculumDone means the last topic was passed.
	OutcomeCurriculumDone
)

// Feedback is shown after a step is answered.
type Feedback struct {
	Correct  bool
	Expected string
}

// Result is returned by Continue. Profile is the learner's profile after the
// step; it differs from the input only when a topic was passed.
type Result struct {
	Outcome Outcome
	// Topic is the topic that was being quizzed.
	Topic   catalog.Topic
	Score   int
	Total   int
	Profile learner.Profile
}

// Finished reports whether the quiz of Result.Topic ended.
func (r Result) Finished() bool { return r.Outcome != OutcomeNextStep }

// Passed reports whether the quiz of Result.Topic was passed.
func (r Result) Passed() bool {
	return r.Outcome == OutcomeAdvanced || r.Outcome == OutcomeCurriculumDone
}

// TopicSession walks a learner through one topic's articles and quiz.
// A quiz passes only with every step correct; anything less sends the
// learner back to the first article.
type TopicSession struct {
	curriculum catalog.Curriculum
	topic      catalog.Topic
	phase      Phase
	article    int
	step       int
	score      int
	answered   bool
	feedback   Feedback
}

// NewTopicSession opens topicID of c for p. Locked or unknown topics are
// refused.
func NewTopicSession(c catalog.Curriculum, topicID string, p learner.Profile) (*TopicSession, error) {
	t, ok := c.Topic(topicID)
	if !ok {
		return nil, ErrUnknownTopic
	}
	if !progress.IsUnlocked(topicID, c, p) {
		return nil, ErrTopicLocked
	}
	return &TopicSession{curriculum: c, topic: t}, nil
}

func (s *TopicSession) Curriculum() catalog.Curriculum { return s.curriculum }
func (s *TopicSession) Topic() catalog.Topic           { return s.topic }
func (s *TopicSession) Phase() Phase                   { return s.phase }
func (s *TopicSession) Score() int                     { return s.score }

// ArticleIndex returns the zero-based article position.
func (s *TopicSession) ArticleIndex() int { return s.article }

// Article returns the article being read.
func (s *TopicSession) Article() string { return s.topic.Articles[s.article] }

// ArticleCount returns the number of articles in the topic.
func (s *TopicSession) ArticleCount() int { return len(s.topic.Articles) }

// OnLastArticle reports whether the quiz can be started.
func (s *TopicSession) OnLastArticle() bool {
	return s.article == len(s.topic.Articles)-1
}

// NextArticle moves forward one article. Returns false at the end or
// outside the reading phase.
func (s *TopicSession) NextArticle() bool {
	if s.phase != PhaseReading || s.OnLastArticle() {
		return false
	}
	s.article++
	return true
}

// PrevArticle moves back one article.
func (s *TopicSession) PrevArticle() bool {
	if s.phase != PhaseReading || s.article == 0 {
		return false
	}
	s.article--
	return true
}

// StartQuiz enters the quiz phase from the last article.
func (s *TopicSession) StartQuiz() error {
	if s.phase != PhaseReading {
		return ErrNotQuizzing
	}
	if !s.OnLastArticle() {
		return ErrNotLastArticle
	}
	s.phase = PhaseQuizzing
	s.step = 0
	s.score = 0
	s.answered = false
	return nil
}

// StepIndex returns the zero-based quiz step position.
func (s *TopicSession) StepIndex() int { return s.step }

// StepCount returns the number of quiz steps.
func (s *TopicSession) StepCount() int { return len(s.topic.QuizSteps) }

// Step returns the quiz step being shown.
func (s *TopicSession) Step() catalog.QuizStep { return s.topic.QuizSteps[s.step] }

// Answered reports whether the current step has been answered.
func (s *TopicSession) Answered() bool { return s.answered }

// Feedback returns the feedback of the current step once answered.
func (s *TopicSession) Feedback() Feedback { return s.feedback }

// Answer scores the current step. Each step accepts exactly one answer.
func (s *TopicSession) Answer(r Response) (Feedback, error) {
	if s.phase != PhaseQuizzing {
		return Feedback{}, ErrNotQuizzing
	}
	if s.answered {
		return Feedback{}, ErrAlreadyAnswered
	}

	step := s.Step()
	correct := CheckTopicAnswer(step, r)
	if correct {
		s.score++
	}
	s.answered = true
	s.feedback = Feedback{Correct: correct, Expected: expectedText(step)}
	return s.feedback, nil
}

// Continue leaves an answered step. After the last step the quiz is
// evaluated against p: a perfect score completes the topic and moves the
// session to the next topic, otherwise the session restarts the reading.
func (s *TopicSession) Continue(p learner.Profile) (Result, error) {
	if s.phase != PhaseQuizzing {
		return Result{}, ErrNotQuizzing
	}
	if !s.answered {
		return Result{}, ErrNotAnswered
	}

	res := Result{Topic: s.topic, Score: s.score, Total: s.StepCount(), Profile: p}

	if s.step < s.StepCount()-1 {
		s.step++
		s.answered = false
		s.feedback = Feedback{}
		res.Outcome = OutcomeNextStep
		return res, nil
	}

	if s.score < s.StepCount() {
		s.reset(s.topic)
		res.Outcome = OutcomeRetry
		return res, nil
	}

	res.Profile = progress.CompleteTopic(p, s.curriculum, s.topic.ID)
	next, ok := s.curriculum.NextTopic(s.topic.ID)
	if !ok {
		if progress.Percent(s.curriculum, res.Profile) == 100 {
			res.Profile = progress.CompleteCurriculum(res.Profile, s.curriculum)
		}
		s.reset(s.topic)
		res.Outcome = OutcomeCurriculumDone
		return res, nil
	}

	res.Profile = progress.Visit(res.Profile, s.curriculum, next.ID)
	s.reset(next)
	res.Outcome = OutcomeAdvanced
	return res, nil
}

func (s *TopicSession) reset(t catalog.Topic) {
	s.topic = t
	s.phase = PhaseReading
	s.article = 0
	s.step = 0
	s.score = 0
	s.answered = false
	s.feedback = Feedback{}
}

func expectedText(step catalog.QuizStep) string {
	if step.Type == catalog.MultipleChoice && step.CorrectIndex < len(step.Options) {
		return step.Options[step.CorrectIndex]
	}
	return step.CorrectText
}
