// Package profile starts and stops runtime profiling of the ams command.
//
// Profiling is compiled in only with the pprof build tag; otherwise [Modes]
// is empty and every profiler returned by [Config.Start] does nothing.
//
//	go build -tags pprof -o ams .
//	ams --pprof-mode cpu page.ams
//	go tool pprof ./ams ~/.cache/ams/pprof/cpu.pprof
//
// A profiler is configured with options and stopped when the command returns:
//
//	p := profile.Make(profile.WithMode("heap"), profile.WithPath(dir)).Start()
//	defer p.Stop()
//
// The modes are the ones [github.com/pkg/profile] provides: allocs, block,
// clock, cpu, goroutine, heap, mem, mutex, thread and trace. Each writes
// <mode>.pprof (trace writes trace.out) in the configured directory.
//
// The pprof build also registers the [net/http/pprof] handlers on
// [net/http.DefaultServeMux], for programs embedding ams that serve it.
package profile
