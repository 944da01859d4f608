package automaton

import (
	"io"
	"log/slog"
)

// DefaultDeterminizeWorkLimit is the number of states the subset
// construction may create before giving up.
const DefaultDeterminizeWorkLimit = 10000

type options struct {
	workLimit int
	logger    *slog.Logger
}

// Option configures Determinize and Minimize.
type Option func(*options)

func newOptions(opts ...Option) *options {
	o := &options{
		workLimit: DefaultDeterminizeWorkLimit,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithWorkLimit caps the number of states created by the subset
// construction. Values below one restore the default.
func WithWorkLimit(limit int) Option {
	return func(o *options) {
		if limit < 1 {
			limit = DefaultDeterminizeWorkLimit
		}
		o.workLimit = limit
	}
}

// WithLogger sets the logger that receives debug output of the algorithms.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
