package lang

import "github.com/ardnew/ams/log"

// options holds the settings shared by parsing and execution.
type options struct {
	logger   log.Logger
	imports  []string
	maxDepth int
	noCache  bool
}

// Option configures parsing or execution.
type Option func(*options)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMaxDepth bounds the depth of scopes that execution may open.
// Evaluation that would go deeper yields a Stop with ID [StopDepth].
// Zero, the default, means unlimited.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = max(depth, 0)
	}
}

// WithImports imports namespaces into every execution scope, after the
// default [GrammarNamespace].
func WithImports(names ...string) Option {
	return func(o *options) {
		o.imports = append(o.imports, names...)
	}
}

// WithCache controls whether parsing reuses normalized source from the
// process-wide cache. It is enabled by default.
func WithCache(enable bool) Option {
	return func(o *options) {
		o.noCache = !enable
	}
}

func makeOptions(opts ...Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
