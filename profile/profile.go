package profile

import (
	"maps"
	"slices"
	"sync"

	"github.com/pkg/profile"
)

// Profiler configures one profiling session.
type Profiler struct {
	Mode  string
	Path  string
	Quiet bool
}

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// Modes returns the supported profiling modes in sorted order.
var Modes = sync.OnceValue(
	func() []string {
		return slices.Sorted(maps.Keys(mode))
	},
)

var mode = map[string]func(*profile.Profile){
	"allocs":    profile.MemProfileAllocs,
	"block":     profile.BlockProfile,
	"clock":     profile.ClockProfile,
	"cpu":       profile.CPUProfile,
	"goroutine": profile.GoroutineProfile,
	"heap":      profile.MemProfileHeap,
	"mem":       profile.MemProfile,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

// Valid reports whether m names a supported mode.
func Valid(m string) bool {
	_, ok := mode[m]

	return ok
}

// Start begins profiling and returns the session. It returns a no-op
// Stopper if p.Mode is empty or unknown. Both Start and Stop are always
// safely callable.
func (p Profiler) Start() Stopper {
	opts := p.options()
	if len(opts) == 0 {
		return ignore{}
	}

	// pkg/profile installs its own SIGINT handler unless told not to, which
	// would race with the command's context cancellation.
	opts = append(opts, profile.NoShutdownHook)

	return profile.Start(opts...)
}

func (p Profiler) options() []func(*profile.Profile) {
	fn, ok := mode[p.Mode]
	if !ok {
		return nil
	}

	opts := []func(*profile.Profile){fn}

	if p.Path != "" {
		opts = append(opts, profile.ProfilePath(p.Path))
	}

	if p.Quiet {
		opts = append(opts, profile.Quiet)
	}

	return opts
}

// WithMode returns a functional option for setting a profiler's mode.
func WithMode(m string) func(Profiler) Profiler {
	return func(p Profiler) Profiler {
		p.Mode = m

		return p
	}
}

// WithPath returns a functional option for setting a profiler's output path.
func WithPath(path string) func(Profiler) Profiler {
	return func(p Profiler) Profiler {
		p.Path = path

		return p
	}
}

// WithQuiet returns a functional option for setting a profiler's quiet flag.
func WithQuiet(quiet bool) func(Profiler) Profiler {
	return func(p Profiler) Profiler {
		p.Quiet = quiet

		return p
	}
}

type ignore struct{}

func (ignore) Stop() {}
