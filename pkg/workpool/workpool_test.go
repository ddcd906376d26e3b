package workpool

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunExecutesTask(t *testing.T) {
	p := New(2, nil)
	defer p.Close()

	var ran atomic.Bool
	err := p.Run(context.Background(), func() { ran.Store(true) })
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !ran.Load() {
		t.Error("task did not run")
	}
}

func TestRunConcurrent(t *testing.T) {
	p := New(4, nil)
	defer p.Close()

	const n = 50
	var counter atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := p.Run(context.Background(), func() { counter.Add(1) }); err != nil {
				t.Errorf("Run returned error: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := counter.Load(); got != n {
		t.Errorf("expected %d tasks to run, got %d", n, got)
	}
}

func TestRunCancelledBeforeStart(t *testing.T) {
	p := New(1, nil)
	defer p.Close()

	release := make(chan struct{})
	go p.Run(context.Background(), func() { <-release })

	// Give the blocker time to occupy the single worker.
	time.Sleep(20 * time.Millisecond)

	// Fill the queue so the next submit blocks.
	for i := 0; i < cap(p.tasks); i++ {
		go p.Run(context.Background(), func() { <-release })
	}
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Run(ctx, func() {})
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}

	close(release)
}

func TestRunAfterClose(t *testing.T) {
	p := New(1, nil)
	p.Close()

	if err := p.Run(context.Background(), func() {}); err != ErrClosed {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestCloseWaitsForInflight(t *testing.T) {
	p := New(2, nil)

	var done atomic.Bool
	started := make(chan struct{})
	go p.Run(context.Background(), func() {
		close(started)
		time.Sleep(50 * time.Millisecond)
		done.Store(true)
	})

	<-started
	p.Close()

	if !done.Load() {
		t.Error("Close returned before in-flight task finished")
	}
}

func TestDefaultWorkers(t *testing.T) {
	p := New(0, nil)
	defer p.Close()

	if p.Workers() <= 0 {
		t.Errorf("expected positive worker count, got %d", p.Workers())
	}
}
