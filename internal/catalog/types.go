package catalog

import "strconv"

// Difficulty is the advertised difficulty of a curriculum or topic.
type Difficulty string

const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

// StepType is the kind of quiz step.
type StepType string

const (
	MultipleChoice StepType = "multiple-choice"
	FillInBlank    StepType = "fill-in-blank"
)

// Pillar is a top-level subject category.
type Pillar struct {
	ID   string
	Name string
}

// QuizStep is one question in a topic quiz or a final exam pool.
type QuizStep struct {
	ID      string
	Type    StepType
	Content string
	// Options is set for multiple-choice steps only.
	Options []string
	// CorrectIndex is the correct option for multiple-choice steps.
	CorrectIndex int
	// CorrectText is the expected answer for fill-in-blank steps.
	CorrectText string
}

// CorrectAnswer returns the canonical answer as text: the option index in
// decimal for multiple-choice, the expected word for fill-in-blank.
func (q QuizStep) CorrectAnswer() string {
	if q.Type == MultipleChoice {
		return strconv.Itoa(q.CorrectIndex)
	}
	return q.CorrectText
}

// Topic is one lesson: articles to read followed by a quiz.
type Topic struct {
	ID            string
	Title         string
	Pillar        string
	Description   string
	Difficulty    Difficulty
	EstimatedTime string
	Articles      []string
	QuizSteps     []QuizStep
}

// Curriculum is an ordered course of topics tied to one pillar. Topic
// order is prerequisite order.
type Curriculum struct {
	ID            string
	Title         string
	Pillar        string
	PillarName    string
	Difficulty    Difficulty
	Order         int
	Description   string
	EstimatedTime string
	Trending      bool
	Topics        []Topic
}

// TopicIndex returns the position of topicID in c, or -1.
func (c Curriculum) TopicIndex(topicID string) int {
	for i := range c.Topics {
		if c.Topics[i].ID == topicID {
			return i
		}
	}
	return -1
}

// Topic looks up a topic of c by id.
func (c Curriculum) Topic(topicID string) (Topic, bool) {
	if i := c.TopicIndex(topicID); i >= 0 {
		return c.Topics[i], true
	}
	return Topic{}, false
}

// NextTopic returns the topic following topicID, if any.
func (c Curriculum) NextTopic(topicID string) (Topic, bool) {
	i := c.TopicIndex(topicID)
	if i < 0 || i+1 >= len(c.Topics) {
		return Topic{}, false
	}
	return c.Topics[i+1], true
}

// QuizSteps flattens every topic's quiz steps in curriculum order.
func (c Curriculum) QuizSteps() []QuizStep {
	var out []QuizStep
	for _, t := range c.Topics {
		out = append(out, t.QuizSteps...)
	}
	return out
}

// NewsItem is a short market headline shown on the dashboard.
type NewsItem struct {
	ID      string
	Title   string
	Summary string
	Date    string
}
