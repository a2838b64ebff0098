package repl

import "github.com/ardnew/ams/cli/cmd"

// Sentinel errors.
var (
	ErrOutOfBounds = cmd.NewError("history index out of range")
	ErrLoadHistory = cmd.NewError("load history")
	ErrSaveHistory = cmd.NewError("save history")
)
