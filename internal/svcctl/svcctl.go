// Package svcctl registers the daemon with the operating system's
// service manager and drives its start/stop lifecycle. On Windows this
// talks to the Service Control Manager directly so that SCM error codes
// survive for exit-code classification; elsewhere it delegates to the
// kardianos/service abstraction (systemd, launchd).
package svcctl

import "go.uber.org/zap"

// Config identifies the service entry to manage.
type Config struct {
	Name        string
	DisplayName string
	Description string

	// Executable is the daemon binary path. Empty means the current
	// executable.
	Executable string

	// Arguments passed to the executable when the service manager
	// launches it.
	Arguments []string
}

// Controller installs, removes, starts and stops the OS service entry.
type Controller interface {
	Install() error
	Uninstall() error
	Start() error
	Stop() error
}

// New returns the platform service controller.
func New(logger *zap.Logger, cfg Config) Controller {
	return newPlatformController(logger, cfg)
}
