// Package pkg holds the identity of the ams module and the user directories
// it keeps files in.
package pkg

import _ "embed"

// Name identifies the command in help output and names its directories.
const Name = "ams"

// Description is the one-line summary shown in help output.
const Description = "AMS markup and macro language"

// Version is the module version, read from the VERSION file at build time.
//
//go:embed VERSION
var Version string
