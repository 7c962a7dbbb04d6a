package listener

import (
	"log/slog"

	"github.com/scenebridge/scenebridge/domain/ports"
)

// Option configures a Server.
type Option func(*Server)

// WithAddress sets the host:port to bind. Port 0 picks a free port.
func WithAddress(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithMaxRequestBytes bounds the execute request body.
func WithMaxRequestBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// WithPayloadValidator checks execute bodies against the wire schema
// before decoding.
func WithPayloadValidator(v ports.PayloadValidator) Option {
	return func(s *Server) {
		s.validator = v
	}
}

// WithLogger sets the logger for request records.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}
