// Package notify asks an already-running daemon instance to re-check
// driver state after a setup command changes it. The setup process
// cannot reach the daemon directly, so it invokes the installed control
// client, which relays the request over the daemon's control channel.
package notify

import (
	"os/exec"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
)

// DriverRecheck is the control-client argument pair requesting a driver
// state re-check from the running daemon.
var DriverRecheck = []string{"-u", "checkdriver"}

// Notifier invokes the companion control client. All failures are
// advisory: the primary operation already completed, so they are logged
// and dropped.
type Notifier struct {
	logger  *zap.Logger
	ctlPath string

	// run is swapped in tests
	run func(path string, args ...string) error
}

// New creates a Notifier for the control client named brandCode+"ctl"
// inside installDir.
func New(logger *zap.Logger, installDir, brandCode string) *Notifier {
	name := brandCode + "ctl"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return &Notifier{
		logger:  logger,
		ctlPath: filepath.Join(installDir, name),
		run: func(path string, args ...string) error {
			return exec.Command(path, args...).Run()
		},
	}
}

// CheckDriver tells the running daemon to re-check driver state.
// Fire-and-forget: if no daemon is running, or the control client is
// missing, the condition is logged and ignored.
func (n *Notifier) CheckDriver() {
	n.logger.Info("Notifying running daemon to recheck driver state",
		zap.String("ctl", n.ctlPath))

	if err := n.run(n.ctlPath, DriverRecheck...); err != nil {
		n.logger.Warn("Driver recheck notification failed",
			zap.String("ctl", n.ctlPath),
			zap.Error(err))
	}
}
