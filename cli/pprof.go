package cli

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/makec/log"
	"github.com/ardnew/makec/profile"
)

type pprofConfig struct {
	Mode string `default:""            enum:",${pprofModes}" help:"Record a runtime profile (${pprofModes})." placeholder:"MODE" short:"p"`
	Dir  string `default:"${pprofDir}"                       help:"Profile output directory."                                       type:"path"`
}

func (pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModes": strings.Join(profile.Modes(), ","),
		"pprofDir":   filepath.Join(cacheDir(), "pprof"),
	}
}

func (pprofConfig) group() kong.Group {
	var group kong.Group

	group.Key = "pprof"
	group.Title = "Profiling (pprof)"

	return group
}

// start starts profiling if a mode was given and returns the function that
// stops it.
func (f pprofConfig) start(ctx context.Context) (stop func()) {
	if f.Mode == "" {
		return func() {}
	}

	log.DebugContext(ctx, "pprof start",
		slog.String("mode", f.Mode),
		slog.String("dir", f.Dir),
	)

	var p profile.Profiler

	p = profile.WithMode(f.Mode)(p)
	p = profile.WithPath(f.Dir)(p)
	p = profile.WithQuiet(true)(p)

	session := p.Start()

	return func() {
		session.Stop()

		log.InfoContext(ctx, "profile written",
			slog.String("mode", f.Mode),
			slog.String("dir", f.Dir),
		)
	}
}
