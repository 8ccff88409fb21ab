package store

import (
	"context"
	"time"

	"github.com/abhisek/academy/internal/learner"
)

// QueryOpts configures list queries with pagination.
type QueryOpts struct {
	Limit  int   // max results (0 = unlimited)
	Before int64 // sequence < Before (0 = no bound)
}

// ProfileRepo is the "all learners" collection, keyed by profile id.
type ProfileRepo interface {
	// Upsert replaces the profile with the same id or inserts it. UpdatedAt
	// is stamped on every save; the stamped profile is returned.
	Upsert(ctx context.Context, p learner.Profile) (learner.Profile, error)

	// Get returns the profile with id, or ErrNotFound.
	Get(ctx context.Context, id string) (learner.Profile, error)

	// FindByEmail matches emails case-insensitively, or returns ErrNotFound.
	FindByEmail(ctx context.Context, email string) (learner.Profile, error)

	// List returns every profile ordered by XP descending then name.
	List(ctx context.Context) ([]learner.Profile, error)

	// Count returns the number of stored profiles.
	Count(ctx context.Context) (int, error)

	// Delete removes one learner together with their transcript and
	// attempts.
	Delete(ctx context.Context, id string) error

	// DeleteAll removes every learner and their data.
	DeleteAll(ctx context.Context) error

	// SetActive records which learner is signed in. An empty id signs out.
	SetActive(ctx context.Context, id string) error

	// Active returns the signed-in learner id, or "" when nobody is.
	Active(ctx context.Context) (string, error)
}

// ChatRepo stores each learner's tutor transcript.
type ChatRepo interface {
	// Append adds one entry to the end of the learner's transcript.
	Append(ctx context.Context, learnerID string, e learner.ChatEntry) error

	// History returns the learner's transcript oldest first, limited to the
	// newest opts.Limit entries when set.
	History(ctx context.Context, learnerID string, opts QueryOpts) ([]learner.ChatEntry, error)

	// Clear deletes the learner's transcript.
	Clear(ctx context.Context, learnerID string) error
}

// AttemptRepo stores finished quiz and exam attempts.
type AttemptRepo interface {
	// Record stores an attempt. An empty ID is filled in.
	Record(ctx context.Context, a learner.Attempt) (learner.Attempt, error)

	// ForLearner returns the learner's attempts newest first.
	ForLearner(ctx context.Context, learnerID string, opts QueryOpts) ([]learner.Attempt, error)

	// All returns every attempt newest first.
	All(ctx context.Context, opts QueryOpts) ([]learner.Attempt, error)
}

// LLMEvent captures a single LLM request.
type LLMEvent struct {
	Sequence     int64
	Timestamp    time.Time
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// PurposeUsage aggregates LLM events for one purpose.
type PurposeUsage struct {
	Purpose      string
	Model        string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, e LLMEvent) error

	// ListLLMRequests returns events newest first.
	ListLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMRequest returns one event by sequence, or ErrNotFound.
	GetLLMRequest(ctx context.Context, seq int64) (LLMEvent, error)

	// UsageByPurpose aggregates token usage per purpose and model.
	UsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
}

// KVRepo is a small string key/value table with optional expiry.
type KVRepo interface {
	// Get returns the value for key, or ErrNotFound when missing or expired.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key. A zero ttl never expires.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes key.
	Delete(ctx context.Context, key string) error
}
