// Package obs provides shared utilities for the stickup input stack.
//
// This package contains common functionality used across backend,
// hidreport, xinputreport, manager and binding, including:
//
//   - Structured logging via Go's standard [log/slog] package
//   - Sentinel and opaque error types for the error kinds named in the
//     error handling design
//   - Component identifiers for log filtering
//
// The package has zero external dependencies, relying only on the Go
// standard library, exactly like the ambient layer it was adapted from.
//
// # Logging
//
// The logging subsystem wraps [log/slog] with component context:
//
//	obs.SetLogLevel(slog.LevelDebug)
//	obs.LogInfo(obs.ComponentManager, "device discovered", "id", id)
//
// # Errors
//
// Host-surfaced error kinds are sentinel values or the opaque
// [BackendError] wrapper:
//
//	if errors.Is(err, obs.ErrBackendUnavailable) {
//	    // no backend built for this platform
//	}
package obs
