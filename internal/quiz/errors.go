package quiz

import "errors"

var (
	// ErrNotLastArticle is returned when the quiz is started before the
	// learner reached the final article.
	ErrNotLastArticle = errors.New("quiz: quiz starts from the last article")

	// ErrNotQuizzing is returned for quiz actions outside the quiz phase.
	ErrNotQuizzing = errors.New("quiz: not in the quiz phase")

	// ErrAlreadyAnswered is returned when a shown step is answered twice.
	ErrAlreadyAnswered = errors.New("quiz: step already answered")

	// ErrNotAnswered is returned when continuing past an unanswered step.
	ErrNotAnswered = errors.New("quiz: step not answered yet")

	// ErrUnknownTopic is returned when a topic is not part of the curriculum.
	ErrUnknownTopic = errors.New("quiz: topic not in curriculum")

	// ErrTopicLocked is returned when opening a topic whose predecessor is
	// incomplete.
	ErrTopicLocked = errors.New("quiz: topic is locked")

	// ErrExamNotRunning is returned for exam actions outside InProgress.
	ErrExamNotRunning = errors.New("quiz: exam is not in progress")

	// ErrNoQuestions is returned when a curriculum has no quiz steps to draw.
	ErrNoQuestions = errors.New("quiz: curriculum has no questions")
)
