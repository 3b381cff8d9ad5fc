// Package service validates purchase configurations against the rules the
// lottery site enforces and maps domain failures into the structured error
// taxonomy shared by the CLI.
package service

// LogWriter provides logging capabilities.
type LogWriter interface {
	Debug(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Service validates configurations before persistence. It never writes
// anything itself.
type Service struct {
	logger LogWriter
}

// Config contains dependencies for creating a configuration service.
type Config struct {
	Logger LogWriter
}

// NewService creates a new configuration service instance.
func NewService(cfg *Config) *Service {
	s := &Service{}
	if cfg != nil {
		s.logger = cfg.Logger
	}
	if s.logger == nil {
		s.logger = noopLogger{}
	}
	return s
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Error(string, ...interface{}) {}
