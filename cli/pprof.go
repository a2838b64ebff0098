//go:build pprof

package cli

import (
	"context"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ams/log"
	"github.com/ardnew/ams/profile"
)

// pprofConfig holds the --pprof-* flags.
type pprofConfig struct {
	Mode string `default:""            enum:",${pprofModeEnum}" help:"Profile the run (${enum})." placeholder:"MODE" short:"p"`
	Dir  string `default:"${pprofDir}"                          help:"Write profiles to this directory." type:"path"`
}

func (pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModeEnum": strings.Join(profile.Modes(), ","),
		"pprofDir":      cachePath(profile.Tag),
	}
}

func (pprofConfig) group() kong.Group {
	return kong.Group{Key: "pprof", Title: "Profiling (pprof)"}
}

// start starts the selected profile and returns the function that stops it.
func (f pprofConfig) start(ctx context.Context) (stop func()) {
	if f.Mode == "" {
		return func() {}
	}

	logger := log.With(slog.String("mode", f.Mode), slog.String("dir", f.Dir))
	logger.DebugContext(ctx, "profiling")

	p := profile.Make(
		profile.WithMode(f.Mode),
		profile.WithPath(f.Dir),
		profile.WithQuiet(true),
	).Start()

	return func() {
		p.Stop()
		logger.DebugContext(ctx, "profile written")
	}
}
