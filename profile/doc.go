// Package profile wraps [github.com/pkg/profile] so the makec command can
// record a runtime profile of a single invocation.
//
// A [Profiler] with an empty Mode does nothing, so callers can start one
// unconditionally:
//
//	p := profile.Profiler{Mode: "cpu", Path: dir, Quiet: true}
//	defer p.Start().Stop()
//
// The profile is written to Path with a file name matching the mode, for
// example cpu.pprof or mem.pprof, and is read with go tool pprof:
//
//	go tool pprof -http=: $XDG_CACHE_HOME/makec/pprof/cpu.pprof
//
// Profiling a large makefile is mostly useful with the cpu and allocs modes,
// which show where the lexer and resolver spend their time.
package profile
