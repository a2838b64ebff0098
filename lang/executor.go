package lang

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/ardnew/ams/log"
)

// Executor evaluates parsed trees against a registry of builtin namespaces
// and renders them with a [Renderer].
//
// The registry is the only state shared between executions. Every call to
// [Executor.Execute] or [Executor.Declare] starts from a fresh root scope.
type Executor[T any] struct {
	render   Renderer[T]
	registry *Registry
	opts     options
}

// NewExecutor returns an Executor that renders with render.
func NewExecutor[T any](render Renderer[T], opts ...Option) *Executor[T] {
	return &Executor[T]{
		render:   render,
		registry: NewRegistry(),
		opts:     makeOptions(opts...),
	}
}

// NewPlainTextExecutor returns an Executor that renders plain text.
func NewPlainTextExecutor(opts ...Option) *Executor[string] {
	return NewExecutor(PlainTextRenderer, opts...)
}

// NewElementExecutor returns an Executor that renders a tagged tree.
func NewElementExecutor(opts ...Option) *Executor[Element] {
	return NewExecutor(ElementRenderer, opts...)
}

// AddNamespace registers the namespace name with a copy of members.
func (e *Executor[T]) AddNamespace(name string, members map[string]*Node) {
	e.registry.AddMap(name, members)
}

// AddNamespaces registers every namespace in spaces.
func (e *Executor[T]) AddNamespaces(spaces map[string]map[string]*Node) {
	for _, name := range slices.Sorted(maps.Keys(spaces)) {
		e.AddNamespace(name, spaces[name])
	}
}

// Registry returns the namespace table of e.
func (e *Executor[T]) Registry() *Registry { return e.registry }

// Namespaces returns a fresh root scope over the registry of e, with the
// configured depth limit and imports applied.
func (e *Executor[T]) Namespaces() *NamespacedVariable {
	root := NewNamespacedVariable(e.registry)
	root.SetMaxDepth(e.opts.maxDepth)

	for _, name := range e.opts.imports {
		root.Import(name)
	}

	return root
}

// Execute renders root in a fresh scope and returns the finished result.
func (e *Executor[T]) Execute(ctx context.Context, root *Node) *Result[T] {
	result := newResult[T](e.opts.logger)
	logger := e.opts.logger.With(slog.String("result", result.ID().String()))

	logger.TraceContext(ctx, "execute", slog.Int("sentences", root.Len()))

	value, stop := e.render(root, e.Namespaces())
	e.stopped(ctx, logger, stop)

	result.Finish(ctx, value, stop)

	logger.TraceContext(ctx, "execute complete", slog.Bool("stopped", stop != nil))

	return result
}

// Declare reduces each top-level sentence of root directly in a fresh root
// scope and returns that scope, so the bindings made at the top level remain
// visible through it.
func (e *Executor[T]) Declare(ctx context.Context, root *Node) *NamespacedVariable {
	scope := e.Namespaces()

	results, stop := Declare(root, scope)
	e.stopped(ctx, e.opts.logger, stop)

	e.opts.logger.TraceContext(
		ctx,
		"declare complete",
		slog.Int("results", len(results)),
		slog.Bool("stopped", stop != nil),
	)

	return scope
}

func (e *Executor[T]) stopped(ctx context.Context, logger log.Logger, stop *Node) {
	if stop == nil {
		return
	}

	if stop.StopID() == StopDepth {
		logger.DebugContext(
			ctx,
			"evaluation stopped",
			slog.Any("error", ErrDepthExceeded.With(
				slog.Int("max_depth", e.opts.maxDepth),
			)),
		)

		return
	}

	logger.DebugContext(
		ctx,
		"evaluation stopped",
		slog.Any("error", ErrStopped.With(
			slog.String("stop", stop.StopID()),
			slog.String("trace", stop.TraceString()),
		)),
	)
}
