// Package daemon owns the long-running service process. The run loop
// blocks the caller for the whole daemon lifetime; a stop request may
// arrive from any goroutine, including the console-signal context, and
// is safe to deliver before the loop starts or after it has finished.
package daemon

import (
	"fmt"
	"sync"

	"github.com/go-co-op/gocron/v2"
	"github.com/shirou/gopsutil/v3/host"
	"go.uber.org/zap"

	"github.com/seawall-io/vpn-service/internal/config"
)

// DriverChecker is the slice of the driver manager the daemon needs for
// its periodic state recheck.
type DriverChecker interface {
	CalloutInstalled() (bool, error)
}

// Daemon is the running service instance. Exactly one exists per
// process; it is created on the run command and destroyed at exit.
type Daemon struct {
	cfg     *config.Config
	logger  *zap.Logger
	drivers DriverChecker
	sched   gocron.Scheduler

	stopOnce sync.Once
	stopCh   chan struct{}

	mu             sync.Mutex
	calloutKnown   bool
	calloutPresent bool
}

// New creates a daemon instance. The instance is inert until Run.
func New(logger *zap.Logger, cfg *config.Config, drivers DriverChecker) (*Daemon, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Daemon{
		cfg:     cfg,
		logger:  logger,
		drivers: drivers,
		sched:   sched,
		stopCh:  make(chan struct{}),
	}, nil
}

// Run starts the daemon and blocks until it has fully stopped. A stop
// request delivered before Run is honored after startup completes, so
// startup work always happens and is always drained.
func (d *Daemon) Run() error {
	d.logHostInfo()

	if _, err := d.sched.NewJob(
		gocron.DurationJob(d.cfg.Daemon.RecheckInterval),
		gocron.NewTask(d.recheckDrivers),
	); err != nil {
		d.sched.Shutdown()
		return fmt.Errorf("failed to schedule driver recheck: %w", err)
	}
	d.sched.Start()

	d.logger.Info("Daemon running",
		zap.String("product", d.cfg.Product.Name),
		zap.Duration("recheck_interval", d.cfg.Daemon.RecheckInterval))

	<-d.stopCh

	d.logger.Info("Shutting down daemon")
	if err := d.sched.Shutdown(); err != nil {
		d.logger.Error("Error shutting down scheduler", zap.Error(err))
	}
	d.logger.Sync()
	d.logger.Info("Daemon stopped")
	return nil
}

// Stop requests shutdown. Idempotent and safe from any goroutine; a
// request after the daemon stopped is a no-op.
func (d *Daemon) Stop() {
	d.stopOnce.Do(func() {
		d.logger.Info("Daemon stop requested")
		close(d.stopCh)
	})
}

// recheckDrivers queries the callout driver's install state and logs
// transitions. Setup commands run in a separate process and notify the
// daemon after changing driver state; this is the daemon-side check.
func (d *Daemon) recheckDrivers() {
	present, err := d.drivers.CalloutInstalled()
	if err != nil {
		d.logger.Warn("Driver state recheck failed", zap.Error(err))
		return
	}

	d.mu.Lock()
	changed := !d.calloutKnown || d.calloutPresent != present
	d.calloutKnown = true
	d.calloutPresent = present
	d.mu.Unlock()

	if changed {
		d.logger.Info("Callout driver state", zap.Bool("installed", present))
	}
}

func (d *Daemon) logHostInfo() {
	info, err := host.Info()
	if err != nil {
		d.logger.Warn("Failed to read host info", zap.Error(err))
		return
	}
	d.logger.Info("Host platform",
		zap.String("hostname", info.Hostname),
		zap.String("platform", info.Platform),
		zap.String("platform_version", info.PlatformVersion),
		zap.String("kernel_arch", info.KernelArch))
}
