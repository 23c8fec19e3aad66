package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func newTestRetry(inner Provider, attempts int) (*RetryProvider, *[]time.Duration) {
	var waits []time.Duration
	r := WithRetry(inner, RetryConfig{
		MaxAttempts: attempts,
		InitialWait: 100 * time.Millisecond,
		MaxWait:     300 * time.Millisecond,
		Multiplier:  2,
	}).(*RetryProvider)
	r.sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return ctx.Err()
	}
	return r, &waits
}

func unavailable() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
}

func TestRetryFirstAttemptSucceeds(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"ok":true}`)})
	p, waits := newTestRetry(mock, 3)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 1 || len(*waits) != 0 {
		t.Errorf("calls = %d, waits = %d; want 1, 0", mock.CallCount(), len(*waits))
	}
}

func TestRetryTransientThenSuccess(t *testing.T) {
	mock := NewMockProvider(unavailable(), MockResponse{Content: json.RawMessage(`{"ok":true}`)})
	p, waits := newTestRetry(mock, 3)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"ok":true}` {
		t.Errorf("content = %s", resp.Content)
	}
	if mock.CallCount() != 2 || len(*waits) != 1 {
		t.Errorf("calls = %d, waits = %d; want 2, 1", mock.CallCount(), len(*waits))
	}
}

func TestRetryGivesUpAfterMaxAttempts(t *testing.T) {
	mock := NewMockProvider(unavailable(), unavailable(), unavailable(), unavailable())
	p, waits := newTestRetry(mock, 3)

	_, err := p.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if mock.CallCount() != 3 {
		t.Errorf("calls = %d, want 3", mock.CallCount())
	}
	if len(*waits) != 2 {
		t.Errorf("waits = %d, want 2 (no sleep after the last attempt)", len(*waits))
	}
}

func TestRetryBackoffGrowsAndCaps(t *testing.T) {
	mock := NewMockProvider(unavailable(), unavailable(), unavailable(), unavailable(), unavailable())
	p, waits := newTestRetry(mock, 5)
	_, _ = p.Generate(context.Background(), Request{})

	want := []time.Duration{100, 200, 300, 300}
	if len(*waits) != len(want) {
		t.Fatalf("waits = %v", *waits)
	}
	for i, w := range *waits {
		base := want[i] * time.Millisecond
		lo, hi := base*8/10, base*12/10
		if w < lo || w > hi {
			t.Errorf("wait[%d] = %s, want within [%s, %s]", i, w, lo, hi)
		}
	}
}

func TestRetryMaxTokensNotRetried(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrMaxTokensExceeded{}}, MockResponse{Content: json.RawMessage(`{}`)})
	p, _ := newTestRetry(mock, 3)

	_, err := p.Generate(context.Background(), Request{})
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetryInvalidResponseRetriedOnce(t *testing.T) {
	bad := MockResponse{Err: &ErrInvalidResponse{Err: errors.New("bad json")}}
	mock := NewMockProvider(bad, bad, MockResponse{Content: json.RawMessage(`{}`)})
	p, _ := newTestRetry(mock, 5)

	_, err := p.Generate(context.Background(), Request{})
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
	if mock.CallCount() != 2 {
		t.Errorf("calls = %d, want 2", mock.CallCount())
	}
}

func TestRetryStopsOnCancelledContext(t *testing.T) {
	mock := NewMockProvider(unavailable(), unavailable(), unavailable())
	p, _ := newTestRetry(mock, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetryRespectsRetryAfter(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 2 * time.Second, Err: errors.New("429")}},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	p, waits := newTestRetry(mock, 3)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*waits) != 1 || (*waits)[0] != 2*time.Second {
		t.Errorf("waits = %v, want [2s]", *waits)
	}
}

func TestRetryModelIDDelegates(t *testing.T) {
	p := WithRetry(NewMockProvider(), RetryConfig{})
	if p.ModelID() != "mock" {
		t.Errorf("ModelID() = %q, want mock", p.ModelID())
	}
}
