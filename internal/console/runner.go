package console

import (
	"sync"

	"go.uber.org/zap"

	"github.com/seawall-io/vpn-service/internal/config"
	"github.com/seawall-io/vpn-service/internal/daemon"
	"github.com/seawall-io/vpn-service/internal/driver"
)

// runState tracks the console run lifecycle.
type runState int

const (
	stateIdle runState = iota
	stateRunning
	stateStopping
	stateStopped
)

func (s runState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateRunning:
		return "running"
	case stateStopping:
		return "stopping"
	case stateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// daemonHandle is the running daemon from the runner's point of view:
// a blocking run loop plus one thread-safe stop entry point.
type daemonHandle interface {
	Run() error
	Stop()
}

// Runner runs the daemon interactively under console-signal handling.
// It exclusively owns the daemon handle; the signal-handler context only
// ever reaches the daemon through StopDaemon.
type Runner struct {
	logger    *zap.Logger
	newDaemon func() (daemonHandle, error)

	mu            sync.Mutex
	state         runState
	daemon        daemonHandle
	stopRequested bool
}

// NewRunner creates a runner that constructs the real daemon on Run.
func NewRunner(logger *zap.Logger, cfg *config.Config) *Runner {
	return &Runner{
		logger: logger,
		newDaemon: func() (daemonHandle, error) {
			drivers := driver.NewManager(logger, driver.Options{
				TapDriverDir:     cfg.Paths.TapDriverDir,
				CalloutDriverDir: cfg.Paths.CalloutDriverDir,
				TunAdapterName:   cfg.Adapter.TunName,
				CalloutService:   cfg.Adapter.CalloutService,
			})
			return daemon.New(logger, cfg, drivers)
		},
	}
}

// Run constructs the daemon and blocks until it has fully stopped.
// Always returns 0: interactive start failures are reported through the
// daemon's log, not the exit code.
func (r *Runner) Run() int {
	restore := r.installConsoleHandler()
	defer restore()

	r.setState(stateRunning)

	d, err := r.newDaemon()
	if err != nil {
		r.logger.Error("Failed to create daemon", zap.Error(err))
		r.setState(stateStopped)
		return 0
	}

	r.mu.Lock()
	r.daemon = d
	stopEarly := r.stopRequested
	r.mu.Unlock()

	// A stop that arrived before the daemon existed must not be lost.
	if stopEarly {
		d.Stop()
	}

	if err := d.Run(); err != nil {
		r.logger.Error("Daemon exited with error", zap.Error(err))
	}

	r.setState(stateStopped)
	return 0
}

// StopDaemon requests daemon shutdown. Safe to call from the
// signal-handler context concurrently with Run, before the daemon has
// been constructed, and repeatedly.
func (r *Runner) StopDaemon() {
	r.mu.Lock()
	d := r.daemon
	if d == nil {
		r.stopRequested = true
	}
	if r.state == stateRunning {
		r.state = stateStopping
	}
	r.mu.Unlock()

	if d != nil {
		d.Stop()
	}
}

func (r *Runner) setState(s runState) {
	r.mu.Lock()
	prev := r.state
	r.state = s
	r.mu.Unlock()
	r.logger.Debug("Console state",
		zap.Stringer("from", prev),
		zap.Stringer("to", s))
}
