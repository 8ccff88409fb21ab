package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func down() MockResponse {
	return ErrorResponse(&ErrProviderUnavailable{Err: errors.New("down")})
}

func TestRetry(t *testing.T) {
	invalid := ErrorResponse(&ErrInvalidResponse{Err: errors.New("bad")})

	tests := []struct {
		name      string
		responses []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first attempt", []MockResponse{TextResponse("ok")}, false, 1},
		{"transient then success", []MockResponse{down(), TextResponse("ok")}, false, 2},
		{"all attempts fail", []MockResponse{down(), down(), down(), TextResponse("unreached")}, true, 3},
		{"rate limit", []MockResponse{ErrorResponse(&ErrRateLimit{RetryAfter: time.Millisecond}), TextResponse("ok")}, false, 2},
		{"max tokens not retried", []MockResponse{ErrorResponse(&ErrMaxTokensExceeded{}), TextResponse("unreached")}, true, 1},
		{"invalid retried once", []MockResponse{invalid, invalid, TextResponse("unreached")}, true, 2},
		{"rejected request not retried", []MockResponse{ErrorResponse(fmt.Errorf("request rejected (401): %w", errors.New("bad key"))), TextResponse("unreached")}, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			resp, err := WithRetry(mock, retryConfig()).Generate(context.Background(), Request{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && resp.Text() != "ok" {
				t.Errorf("Text() = %q, want ok", resp.Text())
			}
			if mock.CallCount() != tt.wantCalls {
				t.Errorf("calls = %d, want %d", mock.CallCount(), tt.wantCalls)
			}
		})
	}
}

func TestRetry_ContextCancellation(t *testing.T) {
	mock := NewMockProvider(down(), down(), TextResponse("ok"))
	p := WithRetry(mock, RetryConfig{MaxAttempts: 3, InitialWait: time.Hour, MaxWait: time.Hour, Multiplier: 1})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.Generate(ctx, Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetry_Backoff(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: 300 * time.Millisecond, Multiplier: 2}}
	err := &ErrProviderUnavailable{}

	for attempt, base := range []time.Duration{100, 200, 300, 300} {
		base *= time.Millisecond
		got := r.backoff(attempt, err)
		lo, hi := time.Duration(float64(base)*0.8), time.Duration(float64(base)*1.2)
		if got < lo || got > hi {
			t.Errorf("backoff(%d) = %v, want within [%v, %v]", attempt, got, lo, hi)
		}
	}

	if got := r.backoff(0, &ErrRateLimit{RetryAfter: 7 * time.Second}); got != 7*time.Second {
		t.Errorf("rate limit backoff = %v, want 7s", got)
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	if id := WithRetry(NewMockProvider(), retryConfig()).ModelID(); id != "mock" {
		t.Fatalf("ModelID() = %q, want mock", id)
	}
}
