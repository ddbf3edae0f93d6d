package driver

// InstallBackend performs file-level installation of an INF-described
// driver package. Implementations may require elevation. A returned
// error means the package operation failed; the reboot flag is only
// meaningful when the error is nil.
type InstallBackend interface {
	// Install installs the driver package described by infPath
	// non-interactively. force replaces an already-present package of
	// the same or newer version.
	Install(infPath string, force bool) (rebootRequired bool, err error)

	// Uninstall removes the driver package described by infPath
	// non-interactively.
	Uninstall(infPath string) (rebootRequired bool, err error)

	// InstalledService reports whether the kernel service registered by
	// a driver package is currently present in the service database.
	InstalledService(name string) (bool, error)
}

// AdapterBackend creates and destroys virtual adapter instances through
// a vendor driver session.
type AdapterBackend interface {
	// OpenSession acquires a handle to the vendor driver. The session
	// must be closed on every exit path.
	OpenSession() (AdapterSession, error)
}

// AdapterSession is a scoped handle to the vendor adapter driver.
type AdapterSession interface {
	// DeleteDriver removes the driver package and all adapter instances.
	DeleteDriver() (rebootRequired bool, err error)

	// RecreateAdapter deletes any existing adapter with the given name
	// and creates a fresh instance. Idempotent by construction.
	RecreateAdapter(name string) (rebootRequired bool, err error)

	Close() error
}
