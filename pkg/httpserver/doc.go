// Package httpserver runs an http.Handler with timeouts taken from the
// environment and a graceful shutdown on context cancellation, SIGINT or
// SIGTERM.
//
//	srv := httpserver.NewFromConfig(cfg.Server, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// HealthHandler serves a JSON health report built from named checks.
// Errors are wrapped with ErrStart and ErrShutdown.
package httpserver
