package service

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

type Logger interface {
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Info(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

type (
	// Service is a long-running component such as the HTTP server or a chat bot.
	Service interface {
		Name() string
		Init() error
		Run(ctx context.Context) error
		Stop()
	}
	Services interface {
		AddService(service ...Service)
		Run(ctx context.Context) error
	}
	Manager struct {
		log      Logger
		services []Service
		signals  []os.Signal
	}
)

func NewManager(log Logger) *Manager {
	return &Manager{
		log:     log,
		signals: []os.Signal{os.Interrupt, syscall.SIGTERM},
	}
}

func (s *Manager) AddService(service ...Service) {
	s.services = append(s.services, service...)
}

// Run initialises every service in order, starts them and blocks until a
// signal arrives, the context is cancelled or a service fails.
func (s *Manager) Run(ctx context.Context) error {
	s.log.Info("going to start %d services", len(s.services))
	for count, service := range s.services {
		if err := service.Init(); err != nil {
			for i := 0; i < count; i++ {
				s.services[i].Stop()
			}
			return fmt.Errorf("init %s: %w", service.Name(), err)
		}
	}

	errCh := make(chan error, len(s.services))
	for _, service := range s.services {
		go func(svc Service) {
			if err := svc.Run(ctx); err != nil {
				errCh <- fmt.Errorf("%s: %w", svc.Name(), err)
			}
		}(service)
		s.log.Info("service %s started", service.Name())
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, s.signals...)
	defer signal.Stop(c)

	var runErr error
	select {
	case sig := <-c:
		s.log.Info("received %s", sig)
	case <-ctx.Done():
	case runErr = <-errCh:
		s.log.Error("service failed: %v", runErr)
	}

	s.stop()
	return runErr
}

func (s *Manager) stop() {
	s.log.Info("going to stop")
	for i := len(s.services) - 1; i >= 0; i-- {
		s.services[i].Stop()
	}
}
