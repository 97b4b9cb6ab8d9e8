package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type fakeResult struct {
	index int
	err   error
}

func (r *fakeResult) Err() error { return r.err }

type fakeJob struct {
	index    int
	duration time.Duration
	fail     bool
	executed *int32
}

func (j *fakeJob) Execute(ctx context.Context) Result {
	if j.executed != nil {
		atomic.AddInt32(j.executed, 1)
	}
	if j.duration > 0 {
		select {
		case <-time.After(j.duration):
		case <-ctx.Done():
			return &fakeResult{index: j.index, err: ctx.Err()}
		}
	}
	if j.fail {
		return &fakeResult{index: j.index, err: errors.New("job failed")}
	}
	return &fakeResult{index: j.index}
}

func TestPool_RunsAllJobs(t *testing.T) {
	var executed int32
	p := NewPool(context.Background(), 3)
	p.Start()

	for i := 0; i < 10; i++ {
		p.Submit(&fakeJob{index: i, executed: &executed})
	}
	results := p.Wait()

	if len(results) != 10 {
		t.Fatalf("expected 10 results, got %d", len(results))
	}
	if n := atomic.LoadInt32(&executed); n != 10 {
		t.Errorf("expected 10 executions, got %d", n)
	}

	// Every index shows up exactly once, whatever the completion order.
	seen := make(map[int]bool)
	for _, r := range results {
		fr := r.(*fakeResult)
		if seen[fr.index] {
			t.Errorf("index %d appeared twice", fr.index)
		}
		seen[fr.index] = true
	}
}

func TestPool_WaitReleasesDerivedContext(t *testing.T) {
	var executed int32
	p := NewPool(context.Background(), 2)
	p.Start()
	p.Submit(&fakeJob{index: 0, executed: &executed})
	p.Wait()

	select {
	case <-p.ctx.Done():
	default:
		t.Error("derived context still live after Wait returned")
	}
}

func TestPool_ZeroWorkersClampedToOne(t *testing.T) {
	p := NewPool(context.Background(), 0)
	if p.workers != 1 {
		t.Errorf("expected worker count clamped to 1, got %d", p.workers)
	}
}

func TestPool_FailuresDoNotBlockOtherJobs(t *testing.T) {
	p := NewPool(context.Background(), 2)
	p.Start()

	p.Submit(&fakeJob{index: 0, fail: true})
	p.Submit(&fakeJob{index: 1})
	p.Submit(&fakeJob{index: 2})
	results := p.Wait()

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	failures := 0
	for _, r := range results {
		if r.Err() != nil {
			failures++
		}
	}
	if failures != 1 {
		t.Errorf("expected exactly 1 failure, got %d", failures)
	}
}

func TestPool_ShutdownCancelsRunningJobs(t *testing.T) {
	p := NewPool(context.Background(), 2)
	p.Start()

	for i := 0; i < 4; i++ {
		p.Submit(&fakeJob{index: i, duration: 5 * time.Second})
	}

	done := make(chan struct{})
	go func() {
		p.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown did not complete in time")
	}
}

func TestPool_ParentContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPool(ctx, 2)
	p.Start()

	p.Submit(&fakeJob{index: 0, duration: 5 * time.Second})
	cancel()

	done := make(chan struct{})
	go func() {
		p.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after parent cancellation")
	}
}
