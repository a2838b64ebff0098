package lang

import (
	"log/slog"
)

var (
	ErrNoScanner     = NewError("builder has no scanner")
	ErrReadInput     = NewError("read input")
	ErrDepthExceeded = NewError("scope depth limit reached")
	ErrListener      = NewError("result listener")
	ErrMarshal       = NewError("encode tree")
	ErrStopped       = NewError("evaluation stopped")
)

// Error is a sentinel error that can be given a cause and log attributes
// without losing its identity: errors.Is matches any copy made with
// [Error.Wrap] or [Error.With] against the sentinel it came from.
//
// Error implements [slog.LogValuer], logging as a group of the message, the
// cause and the attributes.
type Error struct {
	msg   string
	cause error
	attrs []slog.Attr
}

// NewError returns a sentinel with the given message.
func NewError(msg string) *Error { return &Error{msg: msg} }

func (e *Error) Error() string {
	switch {
	case e.cause == nil:
		return e.msg
	case e.msg == "":
		return e.cause.Error()
	}

	return e.msg + ": " + e.cause.Error()
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Is(target error) bool {
	s, ok := target.(*Error)

	return ok && s.msg != "" && s.msg == e.msg
}

func (e *Error) LogValue() slog.Value {
	group := []slog.Attr{slog.String("msg", e.msg)}
	if e.cause != nil {
		group = append(group, slog.String("cause", e.cause.Error()))
	}

	return slog.GroupValue(append(group, e.attrs...)...)
}

// Wrap returns a copy of e caused by err.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.cause = err

	return &c
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := *e
	c.attrs = append(e.attrs[:len(e.attrs):len(e.attrs)], attrs...)

	return &c
}
