//go:build pprof

package profile

import (
	"slices"

	"github.com/pkg/profile"

	_ "net/http/pprof"
)

type mode struct {
	name string
	opt  func(*profile.Profile)
}

// modes pairs each mode name with the pkg/profile option selecting it.
var modes = []mode{
	{"allocs", profile.MemProfileAllocs},
	{"block", profile.BlockProfile},
	{"clock", profile.ClockProfile},
	{"cpu", profile.CPUProfile},
	{"goroutine", profile.GoroutineProfile},
	{"heap", profile.MemProfileHeap},
	{"mem", profile.MemProfile},
	{"mutex", profile.MutexProfile},
	{"thread", profile.ThreadcreationProfile},
	{"trace", profile.TraceProfile},
}

// Modes returns the names of the profiling modes, sorted.
func Modes() []string {
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = m.name
	}

	return names
}

func start(c Config) interface{ Stop() } {
	i := slices.IndexFunc(modes, func(m mode) bool { return m.name == c.Mode })
	if i < 0 {
		return ignore{}
	}

	opts := []func(*profile.Profile){modes[i].opt, profile.NoShutdownHook}

	if c.Path != "" {
		opts = append(opts, profile.ProfilePath(c.Path))
	}

	if c.Quiet {
		opts = append(opts, profile.Quiet)
	}

	return profile.Start(opts...)
}
