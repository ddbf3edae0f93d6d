//go:build !windows

package console

import (
	"os"
	"os/signal"
	"syscall"
)

// installConsoleHandler forwards SIGINT and SIGTERM into StopDaemon.
func (r *Runner) installConsoleHandler() (restore func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)

	go func() {
		for range ch {
			r.logger.Info("Received shutdown signal, terminating")
			r.StopDaemon()
		}
	}()

	return func() {
		signal.Stop(ch)
		close(ch)
	}
}
