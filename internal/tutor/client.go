// Package tutor is the narrow client the app uses for AI help: tutor
// answers, the dashboard news digest and learning-path suggestions. Every
// call degrades to fixed fallback text instead of failing.
package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/academy/internal/learner"
	"github.com/abhisek/academy/internal/llm"
	"github.com/abhisek/academy/internal/platform/logger"
)

const (
	// FallbackReply is shown in the transcript when a tutor call fails.
	FallbackReply = "Consultation failed. Professors are currently offline."

	// NewsFallback replaces the dashboard digest when summarising fails.
	NewsFallback = "Live feed temporarily offline."

	// DefaultModuleContext is used when the learner has no topic open.
	DefaultModuleContext = "General Marketing Overview"

	// PathSize is how many pillars SuggestPath asks for.
	PathSize = 5

	maxPriorTurns = 20
)

// Purposes label LLM events per call site.
const (
	PurposeChat = "tutor-chat"
	PurposeNews = "news-summary"
	PurposePath = "learning-path"
)

// ErrEmptyQuestion is returned by Ask for a blank question.
var ErrEmptyQuestion = errors.New("tutor: empty question")

// Question is one tutor request.
type Question struct {
	Text           string
	ProfileContext string
	ModuleContext  string
	// PriorTurns is the transcript before this question, oldest first.
	PriorTurns []learner.ChatEntry
}

// Client wraps an llm.Provider with prompts and the fallback policy. A nil
// provider makes every call fail over to its fallback.
type Client struct {
	provider llm.Provider
	log      *logger.Logger
	timeout  time.Duration
	pillars  []string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds each call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithPillars restricts SuggestPath results to these pillar names.
func WithPillars(names []string) Option {
	return func(c *Client) { c.pillars = names }
}

// New creates a Client.
func New(provider llm.Provider, log *logger.Logger, opts ...Option) *Client {
	if log == nil {
		log = logger.Nop()
	}
	c := &Client{provider: provider, log: log}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Online reports whether a provider is configured.
func (c *Client) Online() bool {
	return c.provider != nil
}

// Ask returns the tutor's reply. On failure it returns FallbackReply along
// with the error so callers can record the fallback.
func (c *Client) Ask(ctx context.Context, q Question) (string, error) {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return "", ErrEmptyQuestion
	}

	module := strings.TrimSpace(q.ModuleContext)
	if module == "" {
		module = DefaultModuleContext
	}

	turns := q.PriorTurns
	if len(turns) > maxPriorTurns {
		turns = turns[len(turns)-maxPriorTurns:]
	}
	msgs := make([]llm.Message, 0, len(turns)+1)
	for _, t := range turns {
		role := llm.RoleUser
		if t.Role == learner.ChatBot {
			role = llm.RoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: role, Content: t.Text})
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: text})

	resp, err := c.generate(ctx, PurposeChat, llm.Request{
		System:      tutorSystemPrompt(q.ProfileContext, module),
		Messages:    msgs,
		MaxTokens:   1024,
		Temperature: 0.7,
	})
	if err != nil {
		return FallbackReply, err
	}
	return resp.Text(), nil
}

// SummarizeNews condenses raw news text into a short digest for learners.
// On failure it returns NewsFallback along with the error.
func (c *Client) SummarizeNews(ctx context.Context, text string) (string, error) {
	resp, err := c.generate(ctx, PurposeNews, llm.Request{
		Messages: []llm.Message{{
			Role: llm.RoleUser,
			Content: "Summarize the following digital marketing news for students in plain, " +
				"actionable language. Use bullet points for the key takeaways.\n\nContent: " + text,
		}},
		MaxTokens:   512,
		Temperature: 0.3,
	})
	if err != nil {
		return NewsFallback, err
	}
	return resp.Text(), nil
}

// SuggestPath asks for PathSize pillar names to focus on next. Failures and
// unparseable replies yield an empty list.
func (c *Client) SuggestPath(ctx context.Context, profileJSON string) ([]string, error) {
	resp, err := c.generate(ctx, PurposePath, llm.Request{
		Messages: []llm.Message{{
			Role: llm.RoleUser,
			Content: fmt.Sprintf("Based on this learner profile: %s\nsuggest a learning path of %d focus "+
				"areas chosen from the marketing pillars%s. Return only the pillar names.",
				profileJSON, PathSize, c.pillarHint()),
		}},
		Schema:      pathSchema,
		MaxTokens:   256,
		Temperature: 0.2,
	})
	if err != nil {
		return []string{}, err
	}

	var out struct {
		Pillars []string `json:"pillars"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		c.log.Warn("decode learning path", "error", err)
		return []string{}, fmt.Errorf("decode learning path: %w", err)
	}
	return c.filterPillars(out.Pillars), nil
}

func (c *Client) generate(ctx context.Context, purpose string, req llm.Request) (*llm.Response, error) {
	if c.provider == nil {
		return nil, llm.ErrNotConfigured
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.provider.Generate(llm.WithPurpose(ctx, purpose), req)
	if err == nil && resp.Text() == "" {
		err = errors.New("empty reply")
	}
	if err != nil {
		c.log.Warn("tutor request failed", "purpose", purpose, "error", err)
		return nil, err
	}
	return resp, nil
}

func (c *Client) pillarHint() string {
	if len(c.pillars) == 0 {
		return ""
	}
	return " (" + strings.Join(c.pillars, ", ") + ")"
}

// filterPillars canonicalises names against the configured pillar list,
// dropping unknown names and duplicates.
func (c *Client) filterPillars(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool)
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if len(c.pillars) > 0 {
			canon, ok := "", false
			for _, p := range c.pillars {
				if strings.EqualFold(p, n) {
					canon, ok = p, true
					break
				}
			}
			if !ok {
				continue
			}
			n = canon
		}
		if seen[strings.ToLower(n)] {
			continue
		}
		seen[strings.ToLower(n)] = true
		out = append(out, n)
		if len(out) == PathSize {
			break
		}
	}
	return out
}

var pathSchema = &llm.Schema{
	Name:        "learning-path",
	Description: "Marketing pillars the learner should focus on next, most important first.",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"pillars": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"maxItems": 10,
			},
		},
		"required":             []string{"pillars"},
		"additionalProperties": false,
	},
}

func tutorSystemPrompt(profile, module string) string {
	var b strings.Builder
	b.WriteString("You are the lead digital marketing professor of the Academy.\n\n")
	fmt.Fprintf(&b, "LEARNER PROFILE: %s\n", profile)
	fmt.Fprintf(&b, "CURRENT MODULE: %s\n\n", module)
	b.WriteString(`How to help:
1. Act as a mentor. Explain with concrete examples, not definitions alone.
2. When asked for a practice task, set a specific real-world exercise
   (for example: write a meta description for a boutique coffee roaster).
3. When the learner submits work, review it against industry practice and
   say what to change.
4. Keep answers short. Use bold for key terms and simple lists.
5. Relate concepts back to the marketing pillars where it helps.
`)
	return b.String()
}

// ProfileContext renders the parts of a profile the tutor needs. Contact
// details are left out.
func ProfileContext(p learner.Profile) string {
	ctx := struct {
		Name                 string   `json:"name"`
		ExperienceLevel      string   `json:"experienceLevel"`
		LearningGoal         string   `json:"learningGoal"`
		XP                   int      `json:"xp"`
		Streak               int      `json:"streak"`
		CompletedTopics      int      `json:"completedTopics"`
		CompletedCurriculums []string `json:"completedCurriculums"`
		Badges               []string `json:"badges"`
	}{
		Name:                 p.Name,
		ExperienceLevel:      string(p.ExperienceLevel),
		LearningGoal:         string(p.LearningGoal),
		XP:                   p.XP,
		Streak:               p.Streak,
		CompletedTopics:      len(p.CompletedModules),
		CompletedCurriculums: p.CompletedCurriculums,
		Badges:               p.Badges,
	}
	b, err := json.Marshal(ctx)
	if err != nil {
		return p.Name
	}
	return string(b)
}
