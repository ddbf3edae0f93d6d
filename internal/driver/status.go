package driver

import "github.com/seawall-io/vpn-service/internal/winerr"

// Status is the outcome of a driver lifecycle operation. Expected OS
// outcomes (driver busy, reboot pending, not installed) are reported
// through these values, never as errors, so callers can branch without
// error handling.
type Status int

const (
	Installed Status = iota
	InstalledRebootRequired
	InstallFailed
	Uninstalled
	UninstalledRebootRequired
	UninstallFailed
)

func (s Status) String() string {
	switch s {
	case Installed:
		return "installed"
	case InstalledRebootRequired:
		return "installed, reboot required"
	case InstallFailed:
		return "install failed"
	case Uninstalled:
		return "uninstalled"
	case UninstalledRebootRequired:
		return "uninstalled, reboot required"
	case UninstallFailed:
		return "uninstall failed"
	default:
		return "unknown"
	}
}

// RebootRequired reports whether the operation completed but cannot take
// full effect until the machine restarts.
func (s Status) RebootRequired() bool {
	return s == InstalledRebootRequired || s == UninstalledRebootRequired
}

// ExitCode maps a Status onto the process exit-code contract. The
// reboot-required variants are treated as success: the operation itself
// completed, and automation is expected to surface the reboot condition
// from the log rather than from the exit code.
func (s Status) ExitCode() int {
	switch s {
	case InstallFailed, UninstallFailed:
		return winerr.ExitFailure
	default:
		return winerr.ExitSuccess
	}
}
