package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// Prefix returns the base name used for the configuration and cache
// directories.
//
// By default, Prefix is the base name of the executable file unless it matches
// one of the following substitution rules:
//   - "__debug_bin" (default output of the dlv debugger): replaced with [Name]
//   - "^\.+" (dot-prefixed names): remove the dot prefix
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		if exe, err := os.Executable(); err == nil {
			id = exe
		}

		id = strings.TrimSuffix(filepath.Base(id), filepath.Ext(id))

		for _, sub := range []struct {
			rex *regexp.Regexp
			rep string
		}{
			{regexp.MustCompile(`^__debug_bin\d+$`), Name},
			{regexp.MustCompile(`^\.+`), ""},
		} {
			id = sub.rex.ReplaceAllString(id, sub.rep)
		}

		if id == "" {
			return Name
		}

		return id
	},
)

// ConfigDir returns the configuration directory path.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(
	func() string { return userDir(os.UserConfigDir, ".config") },
)

// CacheDir returns the cache directory path used for transient files such as
// profiles and REPL history.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(
	func() string { return userDir(os.UserCacheDir, ".cache") },
)

// userDir returns the [Prefix] directory under the user directory reported by
// dir. If dir fails, the hidden directory under the home directory is used,
// and failing that, the working directory.
func userDir(dir func() (string, error), hidden string) string {
	base, err := dir()
	if err != nil {
		base, err = os.UserHomeDir()
		if err == nil {
			base = filepath.Join(base, hidden)
		} else if base, err = os.Getwd(); err != nil {
			base = "."
		}
	}

	return filepath.Join(base, Prefix())
}
