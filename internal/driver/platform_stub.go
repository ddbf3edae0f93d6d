//go:build !windows

package driver

// modernPlatform always selects the modern package variant off Windows;
// the value only feeds path selection in tests and dry runs.
func modernPlatform() bool {
	return true
}
