package config

import (
	"fmt"
	"net"
	"time"

	"github.com/lgbarn/position-engine-go/internal/errors"
)

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// ListenAddr is the host:port the API listens on
	ListenAddr string

	// ReadTimeout bounds reading a whole request
	ReadTimeout time.Duration

	// WriteTimeout bounds writing a response
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration

	// MaxBodyBytes limits request body size
	MaxBodyBytes int64
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		ListenAddr:      ":8080",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		MaxBodyBytes:    1 << 16,
	}
}

// Validate checks that the server configuration is valid.
func (s *ServerConfig) Validate() error {
	if _, _, err := net.SplitHostPort(s.ListenAddr); err != nil {
		return invalid("listen address %q: %v", s.ListenAddr, err)
	}
	if s.ReadTimeout < 0 || s.WriteTimeout < 0 || s.ShutdownTimeout < 0 {
		return invalid("server timeouts must not be negative")
	}
	if s.MaxBodyBytes <= 0 {
		return invalid("max body bytes (%d) must be positive", s.MaxBodyBytes)
	}
	return nil
}

// invalid formats a configuration error wrapping ErrInvalidConfig.
func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), errors.ErrInvalidConfig)
}
