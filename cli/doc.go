// Package cli contains the command line interface for ams.
//
// # Usage
//
// The default command evaluates AMS source and prints the plain text it
// renders to:
//
//	ams page.ams
//	echo '\ams.text.upper:{hi}' | ams
//	ams eval --html --format=yaml page.ams
//
// The other commands are fmt (canonical source), tree (parsed structure),
// repl (interactive session) and init (write the configuration file).
//
// # Configuration
//
// Flag defaults are read from the configuration directory, in order:
//
//   - config.json: flag names as keys
//   - config.toml: tables are flattened with hyphens, so [log] level sets
//     --log-level
//   - config: AMS source, declared with the standard builtins available
//
// In the AMS file each top-level binding sets the flag of the same name, and
// a paragraph provides one item per sentence for repeatable flags. Since a
// binding takes the first sentence of its argument, lists are double braced:
//
//	\log-level:debug;
//	\source{{base.ams;local.ams}}
//
// Flags given on the command line override every file.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o ams .
//
// It adds --pprof-mode to select a profile and --pprof-dir to set where it
// is written (default: the pprof directory under the cache directory).
package cli
