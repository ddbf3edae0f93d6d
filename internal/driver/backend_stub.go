//go:build !windows

package driver

import (
	"errors"

	"go.uber.org/zap"
)

// Driver packages only exist on Windows. The stub backends let the rest
// of the module build and test on other platforms.

var errUnsupported = errors.New("kernel driver management is only supported on windows")

type unsupportedInstallBackend struct{}

func newPlatformInstallBackend(_ *zap.Logger) InstallBackend {
	return unsupportedInstallBackend{}
}

func (unsupportedInstallBackend) Install(string, bool) (bool, error) {
	return false, errUnsupported
}

func (unsupportedInstallBackend) Uninstall(string) (bool, error) {
	return false, errUnsupported
}

func (unsupportedInstallBackend) InstalledService(string) (bool, error) {
	return false, errUnsupported
}

type unsupportedAdapterBackend struct{}

func newPlatformAdapterBackend(_ *zap.Logger) AdapterBackend {
	return unsupportedAdapterBackend{}
}

func (unsupportedAdapterBackend) OpenSession() (AdapterSession, error) {
	return nil, errUnsupported
}
