package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Config is the service configuration
type Config struct {
	Product ProductConfig `mapstructure:"product"`
	Service ServiceConfig `mapstructure:"service"`
	Paths   PathsConfig   `mapstructure:"paths"`
	Adapter AdapterConfig `mapstructure:"adapter"`
	Daemon  DaemonConfig  `mapstructure:"daemon"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ProductConfig identifies the product and brand. The brand code also
// names the companion control client binary (<brand>ctl).
type ProductConfig struct {
	Name  string `mapstructure:"name"`
	Brand string `mapstructure:"brand"`
}

// ServiceConfig is the OS service registration entry
type ServiceConfig struct {
	Name        string `mapstructure:"name"`
	DisplayName string `mapstructure:"display_name"`
	Description string `mapstructure:"description"`
}

// PathsConfig locates the installation and the log targets
type PathsConfig struct {
	InstallDir       string `mapstructure:"install_dir"`
	TapDriverDir     string `mapstructure:"tap_driver_dir"`
	CalloutDriverDir string `mapstructure:"callout_driver_dir"`
	DaemonLog        string `mapstructure:"daemon_log"`
	SetupLog         string `mapstructure:"setup_log"`
}

// AdapterConfig names the kernel components the service manages
type AdapterConfig struct {
	TunName        string `mapstructure:"tun_name"`
	CalloutService string `mapstructure:"callout_service"`
}

// DaemonConfig tunes the running daemon
type DaemonConfig struct {
	RecheckInterval time.Duration `mapstructure:"recheck_interval"`
}

// LoggingConfig configures both log targets
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// Load reads the configuration from path, falling back to platform
// defaults for anything unset. An absent file is not an error: the
// service runs from defaults until an installer writes a config.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		path = GetDefaultConfigPath()
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		// viper wraps open errors differently depending on whether the
		// path was explicit; treat any not-exist as run-from-defaults
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := GetPlatformDefaults()

	v.SetDefault("product.name", "Seawall VPN")
	v.SetDefault("product.brand", "seawall")

	v.SetDefault("service.name", "SeawallVPNService")
	v.SetDefault("service.display_name", "Seawall VPN Service")
	v.SetDefault("service.description", "Manages the Seawall VPN tunnel and network drivers")

	v.SetDefault("paths.install_dir", defaults.InstallDir)
	v.SetDefault("paths.tap_driver_dir", defaults.TapDriverDir)
	v.SetDefault("paths.callout_driver_dir", defaults.CalloutDriverDir)
	v.SetDefault("paths.daemon_log", defaults.DaemonLog)
	v.SetDefault("paths.setup_log", defaults.SetupLog)

	v.SetDefault("adapter.tun_name", "Seawall VPN")
	v.SetDefault("adapter.callout_service", "SeawallCallout")

	v.SetDefault("daemon.recheck_interval", 5*time.Minute)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.max_size_mb", 100)
	v.SetDefault("logging.max_backups", 3)
}

func validate(cfg *Config) error {
	if cfg.Product.Brand == "" {
		return fmt.Errorf("product.brand is required")
	}
	if cfg.Service.Name == "" {
		return fmt.Errorf("service.name is required")
	}
	if cfg.Adapter.TunName == "" {
		return fmt.Errorf("adapter.tun_name is required")
	}
	if cfg.Adapter.CalloutService == "" {
		return fmt.Errorf("adapter.callout_service is required")
	}
	if cfg.Daemon.RecheckInterval <= 0 {
		return fmt.Errorf("daemon.recheck_interval must be positive")
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Logging.Level)); err != nil {
		return fmt.Errorf("logging.level %q is invalid: %w", cfg.Logging.Level, err)
	}

	return nil
}
