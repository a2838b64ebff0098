package cmd

import (
	"errors"

	"github.com/ardnew/ams/lang"
)

// Error is the sentinel error type of the commands. It is the same type the
// language package reports, so errors from either log alike.
type Error = lang.Error

// NewError returns a sentinel with the given message.
func NewError(msg string) *Error { return lang.NewError(msg) }

// WrapError returns the [Error] in err's chain, or err wrapped in an
// anonymous one so that attributes can be attached to it.
func WrapError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return NewError("").Wrap(err)
}

var (
	ErrReadSource  = NewError("read source")
	ErrWriteOutput = NewError("write output")
	ErrJSONMarshal = NewError("marshal JSON")
	ErrYAMLMarshal = NewError("marshal YAML")
	ErrWriteConfig = NewError("write configuration file")
	ErrFileExists  = NewError("file exists (use --force to overwrite)")
)
