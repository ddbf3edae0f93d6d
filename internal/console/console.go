// Package console is the process entry point behind main: it parses the
// command grammar, routes to the service, driver and daemon controllers,
// and owns the single boundary where domain errors become exit codes.
package console

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/seawall-io/vpn-service/internal/config"
	"github.com/seawall-io/vpn-service/internal/driver"
	"github.com/seawall-io/vpn-service/internal/logging"
	"github.com/seawall-io/vpn-service/internal/notify"
	"github.com/seawall-io/vpn-service/internal/svcctl"
	"github.com/seawall-io/vpn-service/internal/winerr"
)

// DriverManager is the slice of driver.Manager the dispatcher uses.
type DriverManager interface {
	InstallTapDriver(force bool) driver.Status
	UninstallTapDriver() driver.Status
	ReinstallTapDriver() driver.Status
	UninstallTunDriver() driver.Status
	CreateTunAdapter() driver.Status
	InstallCalloutDriver(force bool) driver.Status
	UninstallCalloutDriver() driver.Status
	ReinstallCalloutDriver() driver.Status
}

// DaemonNotifier asks a running daemon instance to re-check driver state.
type DaemonNotifier interface {
	CheckDriver()
}

// daemonRunner runs the daemon under console-signal handling.
type daemonRunner interface {
	Run() int
}

// Dispatcher routes a parsed command to the owning controller.
// Collaborators are created after the log target is selected, so they
// are built through factories that receive the command's logger.
type Dispatcher struct {
	cfg     *config.Config
	version string
	stdout  io.Writer

	newLogger   func(logging.Options) (*zap.Logger, error)
	newDrivers  func(*zap.Logger) DriverManager
	newServices func(*zap.Logger) svcctl.Controller
	newNotifier func(*zap.Logger) DaemonNotifier
	newRunner   func(*zap.Logger) daemonRunner
}

// NewDispatcher wires a dispatcher to the real controllers.
func NewDispatcher(cfg *config.Config, version string) *Dispatcher {
	return &Dispatcher{
		cfg:     cfg,
		version: version,
		stdout:  os.Stdout,
		newLogger: func(opts logging.Options) (*zap.Logger, error) {
			return logging.New(opts)
		},
		newDrivers: func(logger *zap.Logger) DriverManager {
			return driver.NewManager(logger, driver.Options{
				TapDriverDir:     cfg.Paths.TapDriverDir,
				CalloutDriverDir: cfg.Paths.CalloutDriverDir,
				TunAdapterName:   cfg.Adapter.TunName,
				CalloutService:   cfg.Adapter.CalloutService,
			})
		},
		newServices: func(logger *zap.Logger) svcctl.Controller {
			return svcctl.New(logger, svcctl.Config{
				Name:        cfg.Service.Name,
				DisplayName: cfg.Service.DisplayName,
				Description: cfg.Service.Description,
				Arguments:   []string{"run"},
			})
		},
		newNotifier: func(logger *zap.Logger) DaemonNotifier {
			return notify.New(logger, cfg.Paths.InstallDir, cfg.Product.Brand)
		},
		newRunner: func(logger *zap.Logger) daemonRunner {
			return NewRunner(logger, cfg)
		},
	}
}

// Run parses args and executes the selected command, returning the
// process exit code.
func (d *Dispatcher) Run(args []string) int {
	// No subcommand: print usage without touching any log file.
	if len(args) < 2 {
		fmt.Fprint(d.stdout, helpText(d.cfg.Product.Name, d.cfg.Product.Brand, d.version))
		return winerr.ExitSuccess
	}

	cmd := ParseCommand(args)

	// The daemon log is reserved for the run command; every other mode
	// may execute concurrently with a running daemon and must not
	// interleave into its log.
	logFile := d.cfg.Paths.SetupLog
	if cmd == CmdRun {
		logFile = d.cfg.Paths.DaemonLog
	}

	logger, err := d.newLogger(logging.Options{
		File:       logFile,
		Level:      d.cfg.Logging.Level,
		MaxSizeMB:  d.cfg.Logging.MaxSizeMB,
		MaxBackups: d.cfg.Logging.MaxBackups,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
		return winerr.ExitFailure
	}
	defer logger.Sync()

	code, err := d.dispatch(cmd, args, logger)
	if err != nil {
		// The single error boundary: domain errors are logged with full
		// context and classified into the exit-code buckets.
		logger.Error("Command failed",
			zap.Strings("args", args[1:]),
			zap.Error(err))
		return winerr.ExitCode(err)
	}
	return code
}

func (d *Dispatcher) dispatch(cmd Command, args []string, logger *zap.Logger) (int, error) {
	switch cmd {
	case CmdHelp:
		fmt.Fprint(d.stdout, helpText(d.cfg.Product.Name, d.cfg.Product.Brand, d.version))
		return winerr.ExitSuccess, nil

	case CmdRun:
		return d.newRunner(logger).Run(), nil

	case CmdInstallService:
		return winerr.ExitSuccess, d.newServices(logger).Install()
	case CmdUninstallService:
		return winerr.ExitSuccess, d.newServices(logger).Uninstall()
	case CmdStartService:
		return winerr.ExitSuccess, d.newServices(logger).Start()
	case CmdStopService:
		return winerr.ExitSuccess, d.newServices(logger).Stop()

	case CmdTapInstall:
		return d.newDrivers(logger).InstallTapDriver(false).ExitCode(), nil
	case CmdTapUninstall:
		return d.newDrivers(logger).UninstallTapDriver().ExitCode(), nil
	case CmdTapReinstall:
		return d.newDrivers(logger).ReinstallTapDriver().ExitCode(), nil

	case CmdTunUninstall:
		return d.newDrivers(logger).UninstallTunDriver().ExitCode(), nil
	case CmdTunCreate:
		return d.newDrivers(logger).CreateTunAdapter().ExitCode(), nil

	case CmdCalloutInstall, CmdCalloutUninstall, CmdCalloutReinstall:
		drivers := d.newDrivers(logger)
		var status driver.Status
		switch cmd {
		case CmdCalloutInstall:
			status = drivers.InstallCalloutDriver(false)
		case CmdCalloutUninstall:
			status = drivers.UninstallCalloutDriver()
		default:
			status = drivers.ReinstallCalloutDriver()
		}
		// A running daemon cannot observe the driver-state change
		// itself; tell it to recheck regardless of the outcome.
		d.newNotifier(logger).CheckDriver()
		return status.ExitCode(), nil

	default:
		logger.Error("Unrecognized command", zap.Strings("args", args[1:]))
		fmt.Fprintf(d.stdout,
			"Unrecognized command; type '%s help' for a list of available commands.\n",
			programName(args[0]))
		return winerr.ExitFailure, nil
	}
}

// programName strips directory and extension from argv[0] for the usage
// hint.
func programName(arg0 string) string {
	base := filepath.Base(arg0)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
