package scheduler

import (
	"sync/atomic"
	"testing"
	"time"
)

type countingSweeper struct {
	calls int32
}

func (c *countingSweeper) Sweep() int {
	atomic.AddInt32(&c.calls, 1)
	return 1
}

func TestSchedulerRunsSweep(t *testing.T) {
	sw := &countingSweeper{}
	s := New(sw, 50*time.Millisecond, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if atomic.LoadInt32(&sw.calls) > 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("expected sweep to run at least once")
}

func TestNewDefaultsInterval(t *testing.T) {
	s := New(&countingSweeper{}, 0, nil)
	if s.interval != 5*time.Minute {
		t.Errorf("expected default interval 5m, got %v", s.interval)
	}
}
