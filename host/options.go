package host

import "log/slog"

// Option defines a functional option for configuring the Executor.
type Option func(*Executor)

// WithLogger configures the executor with a structured logger.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithInvokeExport overrides the name of the interpreter's entry-point
// export. Defaults to "invoke".
func WithInvokeExport(name string) Option {
	return func(e *Executor) {
		if name != "" {
			e.invokeName = name
		}
	}
}
