package httpserver

import (
	"log/slog"
	"time"
)

// Option configures a Server.
type Option func(*settings)

// WithAddr sets the listen address. An empty address is ignored.
func WithAddr(addr string) Option {
	return func(s *settings) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithReadHeaderTimeout limits the time spent reading request headers.
func WithReadHeaderTimeout(d time.Duration) Option {
	return func(s *settings) { positive(&s.readHeaderTimeout, d) }
}

// WithReadTimeout limits the time spent reading a whole request, body included.
func WithReadTimeout(d time.Duration) Option {
	return func(s *settings) { positive(&s.readTimeout, d) }
}

// WithWriteTimeout limits the time spent writing a response.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *settings) { positive(&s.writeTimeout, d) }
}

// WithIdleTimeout limits how long keep-alive connections wait for the next request.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *settings) { positive(&s.idleTimeout, d) }
}

// WithShutdownTimeout bounds the graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *settings) { positive(&s.shutdownTimeout, d) }
}

// WithLogger sets the logger for lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

func positive(dst *time.Duration, d time.Duration) {
	if d > 0 {
		*dst = d
	}
}
