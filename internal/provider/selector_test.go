package provider

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

type fakeProvider struct {
	name       string
	configured bool
	err        error
	calls      int32
}

func (f *fakeProvider) Name() string     { return f.name }
func (f *fakeProvider) Configured() bool { return f.configured }

func (f *fakeProvider) Chat(ctx context.Context, systemPrompt string, history []ChatMessage, message string) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return "", f.err
	}
	return "ok", nil
}

func TestSelectorPinsFirstHealthy(t *testing.T) {
	first := &fakeProvider{name: "first", configured: true}
	second := &fakeProvider{name: "second", configured: true}

	s := NewSelector(first, second)
	active, label := s.Active(context.Background())

	if active != first {
		t.Fatalf("active = %v, want first", active)
	}
	if label != "first" {
		t.Errorf("label = %q, want first", label)
	}
	if atomic.LoadInt32(&second.calls) != 0 {
		t.Error("second provider was probed despite first succeeding")
	}
}

func TestSelectorSkipsUnconfigured(t *testing.T) {
	unconfigured := &fakeProvider{name: "no-key", configured: false}
	healthy := &fakeProvider{name: "healthy", configured: true}

	s := NewSelector(unconfigured, healthy)
	active, label := s.Active(context.Background())

	if active != healthy {
		t.Fatalf("active = %v, want healthy", active)
	}
	if label != "healthy" {
		t.Errorf("label = %q, want healthy", label)
	}
	if atomic.LoadInt32(&unconfigured.calls) != 0 {
		t.Error("unconfigured provider should not be probed")
	}
}

func TestSelectorSkipsFailingProbe(t *testing.T) {
	broken := &fakeProvider{name: "broken", configured: true, err: errors.New("connection refused")}
	healthy := &fakeProvider{name: "healthy", configured: true}

	s := NewSelector(broken, healthy)
	active, label := s.Active(context.Background())

	if active != healthy {
		t.Fatalf("active = %v, want healthy", active)
	}
	if label != "healthy" {
		t.Errorf("label = %q, want healthy", label)
	}
}

func TestSelectorNoneReachable(t *testing.T) {
	s := NewSelector(
		&fakeProvider{name: "a", configured: false},
		&fakeProvider{name: "b", configured: true, err: errors.New("timeout")},
	)
	active, label := s.Active(context.Background())

	if active != nil {
		t.Fatalf("active = %v, want nil", active)
	}
	if label != FallbackLabel {
		t.Errorf("label = %q, want %q", label, FallbackLabel)
	}
}

func TestSelectorEmpty(t *testing.T) {
	s := NewSelector()
	active, label := s.Active(context.Background())
	if active != nil || label != FallbackLabel {
		t.Errorf("Active = (%v, %q), want (nil, %q)", active, label, FallbackLabel)
	}
}

func TestSelectorProbesOnlyOnce(t *testing.T) {
	p := &fakeProvider{name: "only", configured: true}
	s := NewSelector(p)

	s.Select(context.Background())
	s.Select(context.Background())
	s.Active(context.Background())

	if got := atomic.LoadInt32(&p.calls); got != 1 {
		t.Errorf("probe calls = %d, want 1", got)
	}
}
