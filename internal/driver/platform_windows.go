//go:build windows

package driver

import "golang.org/x/sys/windows"

// modernPlatform reports whether the OS takes the modern driver package
// variant. Windows 10 and later use the "win10" builds; everything older
// still on the legacy line takes "win7".
func modernPlatform() bool {
	return windows.RtlGetVersion().MajorVersion >= 10
}
