package daemon

import (
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/seawall-io/vpn-service/internal/config"
)

type fakeChecker struct {
	mu      sync.Mutex
	present bool
	err     error
	calls   int
}

func (f *fakeChecker) CalloutInstalled() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.present, f.err
}

func testConfig() *config.Config {
	return &config.Config{
		Product: config.ProductConfig{Name: "Seawall VPN", Brand: "seawall"},
		Daemon:  config.DaemonConfig{RecheckInterval: time.Hour},
	}
}

func newTestDaemon(t *testing.T, checker DriverChecker) *Daemon {
	t.Helper()
	d, err := New(zap.NewNop(), testConfig(), checker)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return d
}

// TestRunBlocksUntilStop tests the blocking run loop
func TestRunBlocksUntilStop(t *testing.T) {
	d := newTestDaemon(t, &fakeChecker{})

	done := make(chan error, 1)
	go func() { done <- d.Run() }()

	select {
	case err := <-done:
		t.Fatalf("Run() returned %v before Stop()", err)
	case <-time.After(50 * time.Millisecond):
	}

	d.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after Stop()")
	}
}

// TestStopBeforeRun tests the no-lost-wakeup ordering guarantee
func TestStopBeforeRun(t *testing.T) {
	d := newTestDaemon(t, &fakeChecker{})

	// Stop delivered before the run loop starts must still stop it,
	// without skipping startup
	d.Stop()

	done := make(chan error, 1)
	go func() { done <- d.Run() }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not observe a pre-start Stop()")
	}
}

// TestStopIdempotent tests repeated and post-exit stop requests
func TestStopIdempotent(t *testing.T) {
	d := newTestDaemon(t, &fakeChecker{})

	done := make(chan error, 1)
	go func() { done <- d.Run() }()

	d.Stop()
	d.Stop()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return")
	}

	// Stop after the daemon already stopped is a no-op, not an error
	d.Stop()
}

// TestRecheckLogsTransitionsOnly tests the state-change tracking
func TestRecheckLogsTransitionsOnly(t *testing.T) {
	checker := &fakeChecker{present: true}
	d := newTestDaemon(t, checker)

	d.recheckDrivers()
	if !d.calloutKnown || !d.calloutPresent {
		t.Fatal("first recheck must record the observed state")
	}

	// Same state again: recorded state unchanged
	d.recheckDrivers()
	if !d.calloutPresent {
		t.Error("repeat recheck must keep the recorded state")
	}

	// Driver removed out-of-band
	checker.mu.Lock()
	checker.present = false
	checker.mu.Unlock()

	d.recheckDrivers()
	if d.calloutPresent {
		t.Error("recheck must track the transition to not-installed")
	}
	if checker.calls != 3 {
		t.Errorf("checker invoked %d times, want 3", checker.calls)
	}
}

// TestRecheckToleratesErrors tests that a failing query keeps prior state
func TestRecheckToleratesErrors(t *testing.T) {
	checker := &fakeChecker{present: true}
	d := newTestDaemon(t, checker)

	d.recheckDrivers()

	checker.mu.Lock()
	checker.err = errors.New("scm unavailable")
	checker.mu.Unlock()

	d.recheckDrivers()
	if !d.calloutKnown || !d.calloutPresent {
		t.Error("a failed recheck must not clobber the last known state")
	}
}
