//go:build windows

package console

import (
	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

// installConsoleHandler registers the process-wide console control
// handler. The handler runs on an OS-injected thread concurrent with
// the daemon's run loop; it must not block and only reaches the daemon
// through StopDaemon.
func (r *Runner) installConsoleHandler() (restore func()) {
	handler := windows.NewCallback(func(ctrlType uintptr) uintptr {
		switch ctrlType {
		case windows.CTRL_C_EVENT, windows.CTRL_BREAK_EVENT:
			r.logger.Info("Console interrupt, terminating")
			r.StopDaemon()
			// Handled: the OS leaves the process alone and the daemon
			// drains normally.
			return 1
		case windows.CTRL_CLOSE_EVENT, windows.CTRL_LOGOFF_EVENT, windows.CTRL_SHUTDOWN_EVENT:
			r.logger.Info("Console closing, terminating")
			r.StopDaemon()
			// Cannot wait for the drain here; the OS may terminate the
			// process before shutdown completes. Best effort only.
			return 0
		default:
			return 0
		}
	})

	if err := windows.SetConsoleCtrlHandler(handler, true); err != nil {
		r.logger.Warn("Failed to install console control handler", zap.Error(err))
		return func() {}
	}
	return func() {
		windows.SetConsoleCtrlHandler(handler, false)
	}
}
