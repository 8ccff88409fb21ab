package quiz

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"testing"

	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/learner"
)

// makeTopic builds a topic with two articles and five steps alternating
// multiple-choice (answer index 0) and fill-in-blank (answer "vector").
func makeTopic(id string) catalog.Topic {
	t := catalog.Topic{ID: id, Articles: []string{"intro", "deep dive"}}
	for n := 1; n <= 5; n++ {
		stepID := fmt.Sprintf("q-%s-%d", id, n)
		if n%2 == 0 {
			t.QuizSteps = append(t.QuizSteps, catalog.QuizStep{ID: stepID, Type: catalog.FillInBlank, CorrectText: "vector"})
		} else {
			t.QuizSteps = append(t.QuizSteps, catalog.QuizStep{
				ID: stepID, Type: catalog.MultipleChoice, Options: []string{"right", "wrong"}, CorrectIndex: 0,
			})
		}
	}
	return t
}

func makeCurriculum(topicIDs ...string) catalog.Curriculum {
	c := catalog.Curriculum{ID: "curr-t", Pillar: "t", PillarName: "Testing"}
	for _, id := range topicIDs {
		c.Topics = append(c.Topics, makeTopic(id))
	}
	return c
}

func correctResponse(step catalog.QuizStep) Response {
	if step.Type == catalog.MultipleChoice {
		return Choice(step.CorrectIndex)
	}
	return Text(step.CorrectText)
}

func wrongResponse(step catalog.QuizStep) Response {
	if step.Type == catalog.MultipleChoice {
		return Choice(step.CorrectIndex + 1)
	}
	return Text("nope")
}

// runQuiz reads to the end, starts the quiz and answers every step, failing
// the steps listed in wrong. It returns the final Continue result.
func runQuiz(t *testing.T, s *TopicSession, p learner.Profile, wrong map[int]bool) Result {
	t.Helper()
	for s.NextArticle() {
	}
	if err := s.StartQuiz(); err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}

	var res Result
	for i := 0; ; i++ {
		step := s.Step()
		r := correctResponse(step)
		if wrong[i] {
			r = wrongResponse(step)
		}
		if _, err := s.Answer(r); err != nil {
			t.Fatalf("Answer step %d: %v", i, err)
		}

		var err error
		res, err = s.Continue(p)
		if err != nil {
			t.Fatalf("Continue step %d: %v", i, err)
		}
		if res.Finished() {
			return res
		}
	}
}

func TestCheckTopicAnswer_FillInBlankTolerance(t *testing.T) {
	step := catalog.QuizStep{Type: catalog.FillInBlank, CorrectText: "vector"}
	for _, in := range []string{"vector", "Vector", " vector ", "VECTOR", "\tVeCtOr\n"} {
		if !CheckTopicAnswer(step, Text(in)) {
			t.Errorf("CheckTopicAnswer(%q) = false, want true", in)
		}
		if !CheckExamAnswer(step, Text(in)) {
			t.Errorf("CheckExamAnswer(%q) = false, want true", in)
		}
	}
	if CheckTopicAnswer(step, Text("vectors")) {
		t.Error("CheckTopicAnswer(vectors) = true, want false")
	}
}

// Matching lowercases only; it does not apply full case folding.
func TestCheckTopicAnswer_NoFullCaseFolding(t *testing.T) {
	tests := []struct {
		correct, given string
		want           bool
	}{
		{"strasse", "Straße", false},
		{"straße", "STRAßE", true},
		{"CRM", "crm", true},
	}
	for _, tt := range tests {
		step := catalog.QuizStep{Type: catalog.FillInBlank, CorrectText: tt.correct}
		if got := CheckTopicAnswer(step, Text(tt.given)); got != tt.want {
			t.Errorf("CheckTopicAnswer(%q vs %q) = %v, want %v", tt.given, tt.correct, got, tt.want)
		}
	}
}

func TestCheckAnswer_MultipleChoice(t *testing.T) {
	step := catalog.QuizStep{Type: catalog.MultipleChoice, Options: []string{"a", "b", "c"}, CorrectIndex: 2}

	tests := []struct {
		name   string
		check  func(catalog.QuizStep, Response) bool
		choice int
		want   bool
	}{
		{"topic correct", CheckTopicAnswer, 2, true},
		{"topic wrong", CheckTopicAnswer, 0, false},
		{"exam correct", CheckExamAnswer, 2, true},
		{"exam wrong", CheckExamAnswer, 1, false},
	}
	for _, tt := range tests {
		if got := tt.check(step, Choice(tt.choice)); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func newSession(t *testing.T, c catalog.Curriculum, topicID string, p learner.Profile) *TopicSession {
	t.Helper()
	s, err := NewTopicSession(c, topicID, p)
	if err != nil {
		t.Fatalf("NewTopicSession(%s): %v", topicID, err)
	}
	return s
}

func TestTopicSession_ReadingNavigation(t *testing.T) {
	s := newSession(t, makeCurriculum("A"), "A", learner.Profile{})

	if s.PrevArticle() {
		t.Error("PrevArticle on the first article = true, want false")
	}
	if err := s.StartQuiz(); !errors.Is(err, ErrNotLastArticle) {
		t.Errorf("StartQuiz before the end = %v, want ErrNotLastArticle", err)
	}

	if !s.NextArticle() {
		t.Error("NextArticle = false, want true")
	}
	if s.NextArticle() {
		t.Error("NextArticle past the last article = true, want false")
	}
	if !s.PrevArticle() || !s.NextArticle() {
		t.Error("back and forth between articles failed")
	}

	if err := s.StartQuiz(); err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}
	if s.Phase() != PhaseQuizzing {
		t.Errorf("Phase = %v, want %v", s.Phase(), PhaseQuizzing)
	}
	if s.NextArticle() {
		t.Error("article navigation is disabled while quizzing")
	}
}

func TestTopicSession_RejectsSecondAnswer(t *testing.T) {
	s := newSession(t, makeCurriculum("A"), "A", learner.Profile{})
	s.NextArticle()
	if err := s.StartQuiz(); err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}

	if _, err := s.Answer(Choice(1)); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if _, err := s.Answer(Choice(0)); !errors.Is(err, ErrAlreadyAnswered) {
		t.Errorf("second Answer = %v, want ErrAlreadyAnswered", err)
	}
	if s.Score() != 0 {
		t.Errorf("Score = %d, want 0; a second answer must not count", s.Score())
	}

	if _, err := s.Continue(learner.Profile{}); err != nil {
		t.Fatalf("Continue: %v", err)
	}
	if _, err := s.Continue(learner.Profile{}); !errors.Is(err, ErrNotAnswered) {
		t.Errorf("Continue without answer = %v, want ErrNotAnswered", err)
	}
}

func TestTopicSession_ImperfectScoreRetries(t *testing.T) {
	c := makeCurriculum("A", "B")
	p := learner.Profile{XP: 1000}
	s := newSession(t, c, "A", p)

	res := runQuiz(t, s, p, map[int]bool{3: true})

	if res.Outcome != OutcomeRetry {
		t.Errorf("Outcome = %v, want OutcomeRetry", res.Outcome)
	}
	if res.Score != 4 || res.Total != 5 {
		t.Errorf("score = %d/%d, want 4/5", res.Score, res.Total)
	}
	if res.Profile.XP != 1000 || len(res.Profile.CompletedModules) != 0 {
		t.Errorf("profile changed on retry: XP %d, completed %v", res.Profile.XP, res.Profile.CompletedModules)
	}

	if s.Phase() != PhaseReading || s.ArticleIndex() != 0 || s.Score() != 0 {
		t.Errorf("session = %v article %d score %d, want reading from the start", s.Phase(), s.ArticleIndex(), s.Score())
	}
	if s.Topic().ID != "A" {
		t.Errorf("Topic = %s, want A", s.Topic().ID)
	}
}

func TestTopicSession_PerfectScoreAdvances(t *testing.T) {
	c := makeCurriculum("A", "B")
	p := learner.Profile{XP: 0}
	s := newSession(t, c, "A", p)

	res := runQuiz(t, s, p, nil)

	if res.Outcome != OutcomeAdvanced || !res.Passed() {
		t.Errorf("Outcome = %v, want OutcomeAdvanced", res.Outcome)
	}
	if res.Profile.XP != 300 {
		t.Errorf("XP = %d, want 300", res.Profile.XP)
	}
	if !slices.Equal(res.Profile.CompletedModules, []string{"A"}) {
		t.Errorf("CompletedModules = %v, want [A]", res.Profile.CompletedModules)
	}
	if res.Profile.LastAccessedTopicID != "B" || res.Profile.LastAccessedCurriculumID != "curr-t" {
		t.Errorf("last accessed = %s/%s, want curr-t/B", res.Profile.LastAccessedCurriculumID, res.Profile.LastAccessedTopicID)
	}

	if s.Topic().ID != "B" || s.Phase() != PhaseReading || s.Score() != 0 {
		t.Errorf("session = %s %v score %d, want B reading score 0", s.Topic().ID, s.Phase(), s.Score())
	}
}

func TestTopicSession_ReplayDoesNotAwardTwice(t *testing.T) {
	c := makeCurriculum("A", "B")
	p := learner.Profile{XP: 300, CompletedModules: []string{"A"}}
	s := newSession(t, c, "A", p)

	res := runQuiz(t, s, p, nil)

	if res.Outcome != OutcomeAdvanced {
		t.Errorf("Outcome = %v, want OutcomeAdvanced", res.Outcome)
	}
	if res.Profile.XP != 300 {
		t.Errorf("XP = %d, want 300", res.Profile.XP)
	}
	if len(res.Profile.CompletedModules) != 1 {
		t.Errorf("CompletedModules = %v, want one entry", res.Profile.CompletedModules)
	}
}

func TestTopicSession_LastTopicFinishesCurriculum(t *testing.T) {
	c := makeCurriculum("A", "B")
	p := learner.Profile{CompletedModules: []string{"A"}, XP: 300}
	s := newSession(t, c, "B", p)

	res := runQuiz(t, s, p, nil)

	if res.Outcome != OutcomeCurriculumDone {
		t.Errorf("Outcome = %v, want OutcomeCurriculumDone", res.Outcome)
	}
	if res.Profile.XP != 600 {
		t.Errorf("XP = %d, want 600", res.Profile.XP)
	}
	if !slices.Equal(res.Profile.CompletedCurriculums, []string{"curr-t"}) {
		t.Errorf("CompletedCurriculums = %v, want [curr-t]", res.Profile.CompletedCurriculums)
	}
	if !slices.Equal(res.Profile.Badges, []string{"Testing"}) {
		t.Errorf("Badges = %v, want [Testing]", res.Profile.Badges)
	}
}

func TestNewTopicSession_Gate(t *testing.T) {
	c := makeCurriculum("A", "B")

	if _, err := NewTopicSession(c, "B", learner.Profile{}); !errors.Is(err, ErrTopicLocked) {
		t.Errorf("locked topic err = %v, want ErrTopicLocked", err)
	}
	if _, err := NewTopicSession(c, "Z", learner.Profile{}); !errors.Is(err, ErrUnknownTopic) {
		t.Errorf("unknown topic err = %v, want ErrUnknownTopic", err)
	}
}

func TestPassThreshold(t *testing.T) {
	tests := []struct{ n, want int }{
		{10, 9}, {5, 5}, {7, 7}, {1, 1}, {20, 18},
	}
	for _, tt := range tests {
		if got := PassThreshold(tt.n); got != tt.want {
			t.Errorf("PassThreshold(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

// reverse is a deterministic Shuffler that reverses the pool.
type reverse struct{}

func (reverse) Shuffle(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

func startExam(t *testing.T, e *Exam) {
	t.Helper()
	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
}

func runExam(t *testing.T, e *Exam, wrong int) {
	t.Helper()
	startExam(t, e)
	for i := 0; e.State() == ExamInProgress; i++ {
		q, err := e.Question()
		if err != nil {
			t.Fatalf("Question %d: %v", i, err)
		}
		r := correctResponse(q)
		if i < wrong {
			r = wrongResponse(q)
		}
		if _, err := e.Answer(r); err != nil {
			t.Fatalf("Answer %d: %v", i, err)
		}
	}
}

func TestExam_DrawsTenWithInjectedShuffle(t *testing.T) {
	e := NewExam(makeCurriculum("A", "B", "C"), reverse{})
	startExam(t, e)

	qs := e.Questions()
	if len(qs) != ExamSize {
		t.Fatalf("len(Questions) = %d, want %d", len(qs), ExamSize)
	}
	if qs[0].ID != "q-C-5" || qs[9].ID != "q-B-1" {
		t.Errorf("draw = %s..%s, want q-C-5..q-B-1", qs[0].ID, qs[9].ID)
	}
}

func TestExam_SeededShufflerIsRepeatable(t *testing.T) {
	c := makeCurriculum("A", "B", "C")
	e1 := NewExam(c, NewShuffler(99))
	e2 := NewExam(c, NewShuffler(99))
	startExam(t, e1)
	startExam(t, e2)
	if !reflect.DeepEqual(e1.Questions(), e2.Questions()) {
		t.Error("same seed drew different questions")
	}
}

func TestExam_NineOfTenPasses(t *testing.T) {
	c := makeCurriculum("A", "B", "C")
	e := NewExam(c, nil)
	runExam(t, e, 1)

	if e.State() != ExamPassed || e.Score() != 9 {
		t.Errorf("exam = %v %d/10, want passed 9/10", e.State(), e.Score())
	}

	p := e.Apply(learner.Profile{XP: 500})
	if p.XP != 1500 {
		t.Errorf("XP = %d, want 1500", p.XP)
	}
	if !slices.Equal(p.FinalExamsPassed, []string{"curr-t"}) {
		t.Errorf("FinalExamsPassed = %v, want [curr-t]", p.FinalExamsPassed)
	}

	again := NewExam(c, nil)
	runExam(t, again, 0)
	p = again.Apply(p)
	if p.XP != 1500 {
		t.Errorf("XP after second pass = %d, want 1500", p.XP)
	}
	if len(p.FinalExamsPassed) != 1 {
		t.Errorf("FinalExamsPassed = %v, want one entry", p.FinalExamsPassed)
	}
}

func TestExam_EightOfTenFails(t *testing.T) {
	e := NewExam(makeCurriculum("A", "B", "C"), nil)
	runExam(t, e, 2)

	if e.State() != ExamFailed {
		t.Errorf("State = %v, want %v", e.State(), ExamFailed)
	}
	in := learner.Profile{XP: 500}
	if got := e.Apply(in); !reflect.DeepEqual(got, in) {
		t.Errorf("Apply after failing = %+v, want %+v", got, in)
	}
}

func TestExam_ShortPoolTakesAll(t *testing.T) {
	e := NewExam(makeCurriculum("A"), nil)
	runExam(t, e, 1)

	if e.Total() != 5 {
		t.Errorf("Total = %d, want 5", e.Total())
	}
	if e.State() != ExamFailed {
		t.Errorf("4/5 State = %v, want %v", e.State(), ExamFailed)
	}

	e2 := NewExam(makeCurriculum("A"), nil)
	runExam(t, e2, 0)
	if e2.State() != ExamPassed {
		t.Errorf("5/5 State = %v, want %v", e2.State(), ExamPassed)
	}
}

func TestExam_Errors(t *testing.T) {
	e := NewExam(catalog.Curriculum{ID: "empty"}, nil)
	if err := e.Start(); !errors.Is(err, ErrNoQuestions) {
		t.Errorf("Start on empty pool = %v, want ErrNoQuestions", err)
	}
	if _, err := e.Answer(Choice(0)); !errors.Is(err, ErrExamNotRunning) {
		t.Errorf("Answer before start = %v, want ErrExamNotRunning", err)
	}

	done := NewExam(makeCurriculum("A"), nil)
	runExam(t, done, 0)
	if _, err := done.Answer(Choice(0)); !errors.Is(err, ErrExamNotRunning) {
		t.Errorf("Answer after completion = %v, want ErrExamNotRunning", err)
	}
}
