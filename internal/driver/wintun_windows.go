//go:build windows

package driver

import (
	"fmt"
	"syscall"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

const (
	wintunDLL        = "wintun.dll"
	wintunTunnelType = "Seawall"
)

// wintunBackend talks to the vendor TUN driver (wintun.dll). The DLL is
// loaded per session and freed on Close so that a setup command never
// pins the driver file while the daemon is running.
type wintunBackend struct {
	logger *zap.Logger
}

func newPlatformAdapterBackend(logger *zap.Logger) AdapterBackend {
	return &wintunBackend{logger: logger}
}

type wintunSession struct {
	logger *zap.Logger
	module windows.Handle

	createAdapter uintptr
	openAdapter   uintptr
	closeAdapter  uintptr
	deleteDriver  uintptr
}

func (b *wintunBackend) OpenSession() (AdapterSession, error) {
	module, err := windows.LoadLibraryEx(wintunDLL, 0, windows.LOAD_LIBRARY_SEARCH_APPLICATION_DIR|windows.LOAD_LIBRARY_SEARCH_SYSTEM32)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", wintunDLL, err)
	}

	s := &wintunSession{logger: b.logger, module: module}
	for _, proc := range []struct {
		name string
		addr *uintptr
	}{
		{"WintunCreateAdapter", &s.createAdapter},
		{"WintunOpenAdapter", &s.openAdapter},
		{"WintunCloseAdapter", &s.closeAdapter},
		{"WintunDeleteDriver", &s.deleteDriver},
	} {
		addr, err := windows.GetProcAddress(module, proc.name)
		if err != nil {
			windows.FreeLibrary(module)
			return nil, fmt.Errorf("%s missing %s: %w", wintunDLL, proc.name, err)
		}
		*proc.addr = addr
	}
	return s, nil
}

// DeleteDriver removes the TUN driver package and all adapter instances.
// Wintun does not report a reboot requirement; the flag stays false.
func (s *wintunSession) DeleteDriver() (bool, error) {
	r1, _, e1 := syscall.SyscallN(s.deleteDriver)
	if r1 == 0 {
		return false, fmt.Errorf("WintunDeleteDriver: %w", e1)
	}
	return false, nil
}

// RecreateAdapter closes any existing adapter with the given name (which
// removes it) and creates a fresh instance.
func (s *wintunSession) RecreateAdapter(name string) (bool, error) {
	name16, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return false, fmt.Errorf("invalid adapter name %q: %w", name, err)
	}

	existing, _, _ := syscall.SyscallN(s.openAdapter, uintptr(unsafe.Pointer(name16)))
	if existing != 0 {
		s.logger.Debug("Removing existing TUN adapter", zap.String("adapter", name))
		syscall.SyscallN(s.closeAdapter, existing)
	}

	tunnelType16, err := windows.UTF16PtrFromString(wintunTunnelType)
	if err != nil {
		return false, err
	}

	adapter, _, e1 := syscall.SyscallN(s.createAdapter,
		uintptr(unsafe.Pointer(name16)),
		uintptr(unsafe.Pointer(tunnelType16)),
		0) // no requested GUID
	if adapter == 0 {
		return false, fmt.Errorf("WintunCreateAdapter %q: %w", name, e1)
	}

	// Close the handle but keep the adapter registered.
	syscall.SyscallN(s.closeAdapter, adapter)
	return false, nil
}

func (s *wintunSession) Close() error {
	return windows.FreeLibrary(s.module)
}
