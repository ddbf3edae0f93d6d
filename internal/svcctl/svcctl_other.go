//go:build !windows

package svcctl

import (
	"fmt"

	"github.com/kardianos/service"
	"go.uber.org/zap"
)

// kardianosController manages the service entry through
// kardianos/service (systemd, launchd). It is only used for
// registration control, never to run the daemon, so the program handler
// is a no-op.
type kardianosController struct {
	logger *zap.Logger
	svc    service.Service
}

type noopProgram struct{}

func (noopProgram) Start(service.Service) error { return nil }
func (noopProgram) Stop(service.Service) error  { return nil }

func newPlatformController(logger *zap.Logger, cfg Config) Controller {
	svcConfig := &service.Config{
		Name:        cfg.Name,
		DisplayName: cfg.DisplayName,
		Description: cfg.Description,
		Executable:  cfg.Executable,
		Arguments:   cfg.Arguments,
	}

	s, err := service.New(noopProgram{}, svcConfig)
	if err != nil {
		logger.Error("Failed to create service handle", zap.Error(err))
	}
	return &kardianosController{logger: logger, svc: s}
}

func (c *kardianosController) Install() error {
	c.logger.Info("Installing service")
	if c.svc == nil {
		return fmt.Errorf("service manager unavailable")
	}
	if err := c.svc.Install(); err != nil {
		return fmt.Errorf("install service: %w", err)
	}
	return nil
}

func (c *kardianosController) Uninstall() error {
	c.logger.Info("Uninstalling service")
	if c.svc == nil {
		return fmt.Errorf("service manager unavailable")
	}
	if err := c.svc.Uninstall(); err != nil {
		return fmt.Errorf("uninstall service: %w", err)
	}
	return nil
}

func (c *kardianosController) Start() error {
	c.logger.Info("Starting service")
	if c.svc == nil {
		return fmt.Errorf("service manager unavailable")
	}
	if err := c.svc.Start(); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	return nil
}

func (c *kardianosController) Stop() error {
	c.logger.Info("Stopping service")
	if c.svc == nil {
		return fmt.Errorf("service manager unavailable")
	}
	if err := c.svc.Stop(); err != nil {
		return fmt.Errorf("stop service: %w", err)
	}
	return nil
}
