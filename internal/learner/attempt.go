package learner

import "time"

// AttemptKind distinguishes topic quizzes from final exams.
type AttemptKind string

const (
	AttemptTopic AttemptKind = "topic"
	AttemptExam  AttemptKind = "exam"
)

// Attempt records one finished topic quiz or final exam.
type Attempt struct {
	ID          string      `json:"id"`
	Kind        AttemptKind `json:"kind"`
	LearnerID   string      `json:"learnerId"`
	RefID       string      `json:"refId"`
	Score       int         `json:"score"`
	Total       int         `json:"total"`
	Passed      bool        `json:"passed"`
	AttemptedAt time.Time   `json:"attemptedAt"`
}
