package driver

import "path/filepath"

// Driver package file names shipped under the per-class driver
// directories. Each class carries two builds of the package, one for
// modern Windows releases and one for the legacy line.
const (
	tapInfName     = "OemVista.inf"
	calloutInfName = "SeawallCallout.inf"

	modernSubdir = "win10"
	legacySubdir = "win7"
)

// infPath selects the INF descriptor inside baseDir for the platform
// capability indicated by modern. Pure function of its inputs; the
// capability check itself lives in the platform files.
func infPath(baseDir string, modern bool, infName string) string {
	subdir := legacySubdir
	if modern {
		subdir = modernSubdir
	}
	return filepath.Join(baseDir, subdir, infName)
}

// TapInfPath returns the descriptor path for the legacy TAP adapter
// driver package rooted at baseDir.
func TapInfPath(baseDir string, modern bool) string {
	return infPath(baseDir, modern, tapInfName)
}

// CalloutInfPath returns the descriptor path for the WFP callout driver
// package rooted at baseDir.
func CalloutInfPath(baseDir string, modern bool) string {
	return infPath(baseDir, modern, calloutInfName)
}
