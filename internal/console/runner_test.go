package console

import (
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

// blockingDaemon runs until stopped, like the real daemon
type blockingDaemon struct {
	stopOnce sync.Once
	stopCh   chan struct{}

	mu    sync.Mutex
	runs  int
	stops int
}

func newBlockingDaemon() *blockingDaemon {
	return &blockingDaemon{stopCh: make(chan struct{})}
}

func (d *blockingDaemon) Run() error {
	d.mu.Lock()
	d.runs++
	d.mu.Unlock()
	<-d.stopCh
	return nil
}

func (d *blockingDaemon) Stop() {
	d.mu.Lock()
	d.stops++
	d.mu.Unlock()
	d.stopOnce.Do(func() { close(d.stopCh) })
}

func newTestRunner(d daemonHandle) *Runner {
	return &Runner{
		logger:    zap.NewNop(),
		newDaemon: func() (daemonHandle, error) { return d, nil },
	}
}

// TestRunnerStopsDaemonFromAnotherGoroutine tests the normal
// signal-driven shutdown path
func TestRunnerStopsDaemonFromAnotherGoroutine(t *testing.T) {
	d := newBlockingDaemon()
	r := newTestRunner(d)

	done := make(chan int, 1)
	go func() { done <- r.Run() }()

	// Let the run loop start, then stop from the "signal" context
	time.Sleep(20 * time.Millisecond)
	r.StopDaemon()

	select {
	case code := <-done:
		if code != 0 {
			t.Errorf("Run() = %d, want 0 unconditionally", code)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after StopDaemon()")
	}

	if d.runs != 1 {
		t.Errorf("daemon run invoked %d times, want 1", d.runs)
	}
}

// TestStopDaemonBeforeRun tests the latched pre-start stop request
func TestStopDaemonBeforeRun(t *testing.T) {
	d := newBlockingDaemon()
	r := newTestRunner(d)

	// Must not panic with no daemon constructed yet
	r.StopDaemon()

	done := make(chan int, 1)
	go func() { done <- r.Run() }()

	select {
	case code := <-done:
		if code != 0 {
			t.Errorf("Run() = %d, want 0", code)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() never observed the pre-start stop request")
	}

	// Startup must not be skipped: the daemon still ran, then stopped
	if d.runs != 1 {
		t.Errorf("daemon run invoked %d times, want 1 (startup must not be skipped)", d.runs)
	}
	if d.stops == 0 {
		t.Error("pre-start stop request was lost")
	}
}

// TestStopDaemonIdempotent tests repeated stop requests
func TestStopDaemonIdempotent(t *testing.T) {
	d := newBlockingDaemon()
	r := newTestRunner(d)

	done := make(chan int, 1)
	go func() { done <- r.Run() }()

	time.Sleep(20 * time.Millisecond)
	r.StopDaemon()
	r.StopDaemon()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return")
	}

	// Stop after the daemon has already stopped is a no-op
	r.StopDaemon()

	if d.stops < 2 {
		t.Errorf("stops forwarded = %d, want every request forwarded", d.stops)
	}
}

// TestRunReturnsZeroOnDaemonCreationFailure tests the interactive-run
// contract: failures are reported through the log, not the exit code
func TestRunReturnsZeroOnDaemonCreationFailure(t *testing.T) {
	r := &Runner{
		logger:    zap.NewNop(),
		newDaemon: func() (daemonHandle, error) { return nil, errTest },
	}

	if code := r.Run(); code != 0 {
		t.Errorf("Run() = %d, want 0", code)
	}
}

var errTest = &testError{}

type testError struct{}

func (*testError) Error() string { return "daemon creation failed" }
