package driver

import (
	"go.uber.org/zap"
)

// Manager drives install/uninstall state transitions for the three
// driver classes: the legacy TAP adapter driver, the modern TUN adapter
// driver, and the WFP callout filtering driver. Every operation returns
// a Status; expected OS outcomes never surface as errors.
type Manager struct {
	logger    *zap.Logger
	installer InstallBackend
	adapters  AdapterBackend

	tapDir         string
	calloutDir     string
	tunAdapterName string
	calloutService string
	modern         bool
}

// Options configures a Manager. Installer and Adapters default to the
// platform backends when nil; tests inject fakes.
type Options struct {
	TapDriverDir     string
	CalloutDriverDir string
	TunAdapterName   string
	CalloutService   string

	Installer InstallBackend
	Adapters  AdapterBackend
}

// NewManager creates a driver lifecycle manager.
func NewManager(logger *zap.Logger, opts Options) *Manager {
	installer := opts.Installer
	if installer == nil {
		installer = newPlatformInstallBackend(logger)
	}
	adapters := opts.Adapters
	if adapters == nil {
		adapters = newPlatformAdapterBackend(logger)
	}

	return &Manager{
		logger:         logger,
		installer:      installer,
		adapters:       adapters,
		tapDir:         opts.TapDriverDir,
		calloutDir:     opts.CalloutDriverDir,
		tunAdapterName: opts.TunAdapterName,
		calloutService: opts.CalloutService,
		modern:         modernPlatform(),
	}
}

// InstallTapDriver installs the legacy TAP adapter driver package.
func (m *Manager) InstallTapDriver(force bool) Status {
	return m.install("TAP", TapInfPath(m.tapDir, m.modern), force)
}

// UninstallTapDriver removes the legacy TAP adapter driver package.
func (m *Manager) UninstallTapDriver() Status {
	return m.uninstall("TAP", TapInfPath(m.tapDir, m.modern))
}

// ReinstallTapDriver uninstalls then installs the TAP driver. The
// uninstall result is deliberately discarded: a dangling prior install
// must not block reinstallation, so the overall result is the install
// phase's result alone.
func (m *Manager) ReinstallTapDriver() Status {
	m.uninstall("TAP", TapInfPath(m.tapDir, m.modern))
	return m.install("TAP", TapInfPath(m.tapDir, m.modern), true)
}

// UninstallTunDriver deletes the modern TUN driver package through a
// scoped vendor session.
func (m *Manager) UninstallTunDriver() Status {
	session, err := m.adapters.OpenSession()
	if err != nil {
		m.logger.Error("Failed to open TUN driver session", zap.Error(err))
		return UninstallFailed
	}
	defer session.Close()

	reboot, err := session.DeleteDriver()
	if err != nil {
		m.logger.Warn("TUN driver deletion failed", zap.Error(err))
		return UninstallFailed
	}
	if reboot {
		m.logger.Info("TUN driver uninstall requested a reboot")
		return UninstalledRebootRequired
	}
	return Uninstalled
}

// CreateTunAdapter recreates the configured TUN adapter instance.
// Deletes any existing instance first, so calling it repeatedly is safe.
func (m *Manager) CreateTunAdapter() Status {
	session, err := m.adapters.OpenSession()
	if err != nil {
		m.logger.Error("Failed to open TUN driver session", zap.Error(err))
		return InstallFailed
	}
	defer session.Close()

	reboot, err := session.RecreateAdapter(m.tunAdapterName)
	if err != nil {
		m.logger.Warn("TUN adapter creation failed",
			zap.String("adapter", m.tunAdapterName),
			zap.Error(err))
		return InstallFailed
	}
	if reboot {
		m.logger.Info("TUN adapter creation requested a reboot")
		return InstalledRebootRequired
	}
	return Installed
}

// InstallCalloutDriver installs the WFP callout driver package.
func (m *Manager) InstallCalloutDriver(force bool) Status {
	return m.install("callout", CalloutInfPath(m.calloutDir, m.modern), force)
}

// UninstallCalloutDriver removes the WFP callout driver package.
func (m *Manager) UninstallCalloutDriver() Status {
	return m.uninstall("callout", CalloutInfPath(m.calloutDir, m.modern))
}

// ReinstallCalloutDriver uninstalls then installs the callout driver.
// If the uninstall leaves the driver file locked until reboot, the
// install phase is skipped: it would deterministically fail in the same
// session, so the reboot-required result is returned as-is.
func (m *Manager) ReinstallCalloutDriver() Status {
	result := m.UninstallCalloutDriver()
	m.logger.Info("Callout uninstall result", zap.Stringer("status", result))
	if result == UninstalledRebootRequired {
		m.logger.Info("Restart the computer to complete uninstallation, then install again")
		return result
	}
	return m.InstallCalloutDriver(false)
}

// CalloutInstalled reports whether the callout kernel service is present
// in the service database. Used by the running daemon to recheck driver
// state after a setup invocation.
func (m *Manager) CalloutInstalled() (bool, error) {
	return m.installer.InstalledService(m.calloutService)
}

func (m *Manager) install(class, inf string, force bool) Status {
	m.logger.Info("Installing driver package",
		zap.String("class", class),
		zap.String("inf", inf),
		zap.Bool("force", force))

	reboot, err := m.installer.Install(inf, force)
	if err != nil {
		m.logger.Warn("Driver install failed",
			zap.String("class", class),
			zap.Error(err))
		return InstallFailed
	}
	if reboot {
		m.logger.Warn("Driver install requires a reboot", zap.String("class", class))
		return InstalledRebootRequired
	}
	return Installed
}

func (m *Manager) uninstall(class, inf string) Status {
	m.logger.Info("Uninstalling driver package",
		zap.String("class", class),
		zap.String("inf", inf))

	reboot, err := m.installer.Uninstall(inf)
	if err != nil {
		m.logger.Warn("Driver uninstall failed",
			zap.String("class", class),
			zap.Error(err))
		return UninstallFailed
	}
	if reboot {
		m.logger.Warn("Driver uninstall requires a reboot", zap.String("class", class))
		return UninstalledRebootRequired
	}
	return Uninstalled
}
