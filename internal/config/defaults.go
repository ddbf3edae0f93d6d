package config

import (
	"path/filepath"
	"runtime"
)

// PlatformDefaults returns platform-specific default values
type PlatformDefaults struct {
	InstallDir       string
	TapDriverDir     string
	CalloutDriverDir string
	DaemonLog        string
	SetupLog         string
	ConfigPath       string
}

// GetPlatformDefaults returns platform-specific defaults based on runtime.GOOS
func GetPlatformDefaults() PlatformDefaults {
	switch runtime.GOOS {
	case "windows":
		installDir := `C:\Program Files\Seawall VPN`
		dataDir := `C:\ProgramData\Seawall VPN`
		return PlatformDefaults{
			InstallDir:       installDir,
			TapDriverDir:     filepath.Join(installDir, "tap"),
			CalloutDriverDir: filepath.Join(installDir, "wfp_callout"),
			DaemonLog:        filepath.Join(dataDir, "daemon.log"),
			SetupLog:         filepath.Join(dataDir, "setup.log"),
			ConfigPath:       filepath.Join(dataDir, "config.yaml"),
		}
	case "darwin":
		return PlatformDefaults{
			InstallDir:       "/Applications/Seawall VPN.app/Contents/MacOS",
			TapDriverDir:     "/Library/Application Support/Seawall VPN/tap",
			CalloutDriverDir: "/Library/Application Support/Seawall VPN/wfp_callout",
			DaemonLog:        "/Library/Logs/Seawall VPN/daemon.log",
			SetupLog:         "/Library/Logs/Seawall VPN/setup.log",
			ConfigPath:       "/Library/Application Support/Seawall VPN/config.yaml",
		}
	default:
		// Linux and anything else Unix-like
		return PlatformDefaults{
			InstallDir:       "/opt/seawall-vpn",
			TapDriverDir:     "/opt/seawall-vpn/tap",
			CalloutDriverDir: "/opt/seawall-vpn/wfp_callout",
			DaemonLog:        "/var/log/seawall-vpn/daemon.log",
			SetupLog:         "/var/log/seawall-vpn/setup.log",
			ConfigPath:       "/etc/seawall-vpn/config.yaml",
		}
	}
}

// GetDefaultConfigPath returns the platform-specific default config path
func GetDefaultConfigPath() string {
	return GetPlatformDefaults().ConfigPath
}
