package hexwalk

import (
	"io"
	"os"

	"github.com/hexwalk/hexwalk/pkg/log"
)

// Option configures optional behavior of a Dumper.
type Option func(*options)

// options holds the optional configuration for a Dumper.
type options struct {
	out        io.Writer
	logger     log.Logger
	windowSize int
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() options {
	return options{
		out:    os.Stdout,
		logger: log.NewNoopLogger(),
	}
}

// WithOutput directs rendered lines to w instead of standard output.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// WithLogger sets a custom logger for warnings and diagnostics.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithWindowSize overrides the byte source window capacity.
// Mainly useful in tests to force window refills on small files.
func WithWindowSize(n int) Option {
	return func(o *options) {
		o.windowSize = n
	}
}
