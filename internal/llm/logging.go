package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/academy/internal/platform/logger"
	"github.com/abhisek/academy/internal/store"
)

// EventRecorder persists one LLM request event.
type EventRecorder interface {
	AppendLLMRequest(ctx context.Context, e store.LLMEvent) error
}

// LoggingProvider records every request as a store event and a log line.
// Recording failures are logged and never fail the request.
type LoggingProvider struct {
	inner    Provider
	provider string
	events   EventRecorder
	log      *logger.Logger
	now      func() time.Time
}

// WithLogging wraps a Provider with event logging. Either events or log may
// be nil.
func WithLogging(p Provider, provider string, events EventRecorder, log *logger.Logger) Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &LoggingProvider{inner: p, provider: provider, events: events, log: log, now: time.Now}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := l.now()
	resp, err := l.inner.Generate(ctx, req)

	e := store.LLMEvent{
		Timestamp:   start,
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   l.now().Sub(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		e.InputTokens = resp.Usage.InputTokens
		e.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			e.Model = resp.Model
		}
		e.ResponseBody = string(resp.Content)
	}
	if err != nil {
		e.ErrorMessage = err.Error()
	}

	kv := []any{
		"provider", e.Provider, "model", e.Model, "purpose", e.Purpose,
		"latency_ms", e.LatencyMs, "input_tokens", e.InputTokens, "output_tokens", e.OutputTokens,
	}
	if err != nil {
		l.log.Warn("llm request failed", append(kv, "error", err)...)
	} else {
		l.log.Debug("llm request", kv...)
	}

	if l.events != nil {
		// The caller's context may already be done; the event still matters.
		if recErr := l.events.AppendLLMRequest(context.WithoutCancel(ctx), e); recErr != nil {
			l.log.Warn("record llm event", "error", recErr)
		}
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest renders a request for the event log.
func serializeRequest(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
