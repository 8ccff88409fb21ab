package tutor

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/abhisek/academy/internal/learner"
)

// Token identifies one outstanding tutor request. Tokens are unique across
// every Transcript in the process, so a reply addressed to one transcript is
// stale for all others.
type Token uint64

var lastToken atomic.Uint64

// Transcript is the in-memory chat history of one learner. Each question
// gets a Token; only the newest outstanding token may append a reply, so a
// slow stale response never lands after a newer question.
type Transcript struct {
	mu      sync.Mutex
	entries []learner.ChatEntry
	pending Token // zero when nothing is outstanding
	now     func() time.Time
}

// NewTranscript starts from persisted history, oldest first.
func NewTranscript(history []learner.ChatEntry, now func() time.Time) *Transcript {
	if now == nil {
		now = time.Now
	}
	return &Transcript{entries: slices.Clone(history), now: now}
}

// Begin appends the learner's question and returns the request token, the
// appended entry, and the turns that preceded it.
func (t *Transcript) Begin(question string) (Token, learner.ChatEntry, []learner.ChatEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	prior := slices.Clone(t.entries)
	e := learner.ChatEntry{Role: learner.ChatUser, Text: question, Timestamp: t.now()}
	t.entries = append(t.entries, e)

	t.pending = Token(lastToken.Add(1))
	return t.pending, e, prior
}

// Resolve appends the tutor's reply when tok is still the newest
// outstanding request. It reports whether the reply was kept.
func (t *Transcript) Resolve(tok Token, reply string) (learner.ChatEntry, bool) {
	return t.settle(tok, reply)
}

// Fail appends exactly one FallbackReply for tok, under the same staleness
// rule as Resolve.
func (t *Transcript) Fail(tok Token) (learner.ChatEntry, bool) {
	return t.settle(tok, FallbackReply)
}

func (t *Transcript) settle(tok Token, text string) (learner.ChatEntry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if tok == 0 || tok != t.pending {
		return learner.ChatEntry{}, false
	}
	t.pending = 0
	e := learner.ChatEntry{Role: learner.ChatBot, Text: text, Timestamp: t.now()}
	t.entries = append(t.entries, e)
	return e, true
}

// Pending reports whether a request is awaiting its reply.
func (t *Transcript) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending != 0
}

// Entries returns a copy of the history, oldest first.
func (t *Transcript) Entries() []learner.ChatEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.entries)
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Clear drops the history and invalidates any outstanding request.
func (t *Transcript) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = nil
	t.pending = 0
}
