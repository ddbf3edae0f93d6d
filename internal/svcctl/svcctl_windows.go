//go:build windows

package svcctl

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/mgr"

	"github.com/seawall-io/vpn-service/internal/winerr"
)

const (
	stopWait     = 30 * time.Second
	stopPollStep = 300 * time.Millisecond
)

type scmController struct {
	logger *zap.Logger
	cfg    Config
}

func newPlatformController(logger *zap.Logger, cfg Config) Controller {
	return &scmController{logger: logger, cfg: cfg}
}

// wrap converts an SCM failure into a winerr.Error carrying the Windows
// system error code, so the dispatch boundary can classify it.
func wrap(op string, err error) error {
	var code uint32
	var errno syscall.Errno
	if errors.As(err, &errno) {
		code = uint32(errno)
	}
	return winerr.New(op, code, err)
}

func (c *scmController) Install() error {
	exe := c.cfg.Executable
	if exe == "" {
		var err error
		exe, err = os.Executable()
		if err != nil {
			return fmt.Errorf("failed to resolve executable path: %w", err)
		}
	}

	c.logger.Info("Installing service",
		zap.String("service", c.cfg.Name),
		zap.String("executable", exe))

	m, err := mgr.Connect()
	if err != nil {
		return wrap("install service", err)
	}
	defer m.Disconnect()

	s, err := m.CreateService(c.cfg.Name, exe, mgr.Config{
		DisplayName:  c.cfg.DisplayName,
		Description:  c.cfg.Description,
		StartType:    mgr.StartAutomatic,
		ErrorControl: mgr.ErrorNormal,
	}, c.cfg.Arguments...)
	if err != nil {
		return wrap("install service", err)
	}
	s.Close()

	c.logger.Info("Service installed", zap.String("service", c.cfg.Name))
	return nil
}

func (c *scmController) Uninstall() error {
	c.logger.Info("Uninstalling service", zap.String("service", c.cfg.Name))

	m, err := mgr.Connect()
	if err != nil {
		return wrap("uninstall service", err)
	}
	defer m.Disconnect()

	s, err := m.OpenService(c.cfg.Name)
	if err != nil {
		return wrap("uninstall service", err)
	}
	defer s.Close()

	if err := s.Delete(); err != nil {
		return wrap("uninstall service", err)
	}

	c.logger.Info("Service uninstalled", zap.String("service", c.cfg.Name))
	return nil
}

func (c *scmController) Start() error {
	c.logger.Info("Starting service", zap.String("service", c.cfg.Name))

	m, err := mgr.Connect()
	if err != nil {
		return wrap("start service", err)
	}
	defer m.Disconnect()

	s, err := m.OpenService(c.cfg.Name)
	if err != nil {
		return wrap("start service", err)
	}
	defer s.Close()

	if err := s.Start(); err != nil {
		return wrap("start service", err)
	}
	return nil
}

func (c *scmController) Stop() error {
	c.logger.Info("Stopping service", zap.String("service", c.cfg.Name))

	m, err := mgr.Connect()
	if err != nil {
		return wrap("stop service", err)
	}
	defer m.Disconnect()

	s, err := m.OpenService(c.cfg.Name)
	if err != nil {
		return wrap("stop service", err)
	}
	defer s.Close()

	status, err := s.Control(svc.Stop)
	if err != nil {
		return wrap("stop service", err)
	}

	// Wait for the service to actually reach Stopped
	deadline := time.Now().Add(stopWait)
	for status.State != svc.Stopped {
		if time.Now().After(deadline) {
			return winerr.New("stop service", 0, fmt.Errorf("timeout waiting for service to stop"))
		}
		time.Sleep(stopPollStep)
		status, err = s.Query()
		if err != nil {
			return wrap("stop service", err)
		}
	}

	c.logger.Info("Service stopped", zap.String("service", c.cfg.Name))
	return nil
}
