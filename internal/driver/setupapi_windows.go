//go:build windows

package driver

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/svc/mgr"
)

// DiInstallDriver / DiUninstallDriver flags (newdev.h).
const diirflagForceInf = 0x00000002

var (
	modnewdev   = windows.NewLazySystemDLL("newdev.dll")
	modsetupapi = windows.NewLazySystemDLL("setupapi.dll")

	procDiInstallDriverW           = modnewdev.NewProc("DiInstallDriverW")
	procDiUninstallDriverW         = modnewdev.NewProc("DiUninstallDriverW")
	procSetupSetNonInteractiveMode = modsetupapi.NewProc("SetupSetNonInteractiveMode")
)

// setupAPIBackend installs and removes INF driver packages through
// newdev.dll. Requires elevation; runs SetupAPI in non-interactive mode
// so a headless setup command never raises UI prompts.
type setupAPIBackend struct {
	logger *zap.Logger
}

func newPlatformInstallBackend(logger *zap.Logger) InstallBackend {
	return &setupAPIBackend{logger: logger}
}

func (b *setupAPIBackend) Install(infPath string, force bool) (bool, error) {
	inf, err := windows.UTF16PtrFromString(infPath)
	if err != nil {
		return false, fmt.Errorf("invalid inf path %q: %w", infPath, err)
	}

	var flags uint32
	if force {
		flags |= diirflagForceInf
	}

	procSetupSetNonInteractiveMode.Call(1)

	b.logger.Debug("Calling DiInstallDriver",
		zap.String("inf", infPath),
		zap.Bool("force", force))

	var needReboot int32
	r1, _, e1 := procDiInstallDriverW.Call(
		0, // no parent window
		uintptr(unsafe.Pointer(inf)),
		uintptr(flags),
		uintptr(unsafe.Pointer(&needReboot)),
	)
	if r1 == 0 {
		return false, fmt.Errorf("DiInstallDriver %q: %w", infPath, e1)
	}
	return needReboot != 0, nil
}

func (b *setupAPIBackend) Uninstall(infPath string) (bool, error) {
	inf, err := windows.UTF16PtrFromString(infPath)
	if err != nil {
		return false, fmt.Errorf("invalid inf path %q: %w", infPath, err)
	}

	procSetupSetNonInteractiveMode.Call(1)

	var needReboot int32
	r1, _, e1 := procDiUninstallDriverW.Call(
		0,
		uintptr(unsafe.Pointer(inf)),
		0,
		uintptr(unsafe.Pointer(&needReboot)),
	)
	if r1 == 0 {
		return false, fmt.Errorf("DiUninstallDriver %q: %w", infPath, e1)
	}
	return needReboot != 0, nil
}

// InstalledService checks the SCM database for the kernel service a
// driver package registers.
func (b *setupAPIBackend) InstalledService(name string) (bool, error) {
	m, err := mgr.Connect()
	if err != nil {
		return false, fmt.Errorf("failed to connect to service manager: %w", err)
	}
	defer m.Disconnect()

	s, err := m.OpenService(name)
	if err != nil {
		if err == windows.ERROR_SERVICE_DOES_NOT_EXIST {
			return false, nil
		}
		return false, fmt.Errorf("failed to open service %s: %w", name, err)
	}
	s.Close()
	return true, nil
}
