// Package cmd implements the ams subcommands eval, tree, fmt and init.
// The interactive session is in package repl.
package cmd

// Names of the kong variables holding the user directories, usable in
// struct tag interpolation such as default:"${cache}/history.utf8".
var (
	ConfigIdentifier = "config"
	CacheIdentifier  = "cache"
)
