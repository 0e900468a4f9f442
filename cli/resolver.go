package cli

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/makec/lang"
	"github.com/ardnew/makec/log"
)

// resolve returns a [kong.ConfigurationLoader] for configuration files
// written in makefile syntax.
//
// Each variable sets the global flag of the same name, and variables may
// refer to each other. Underscores may stand in for hyphens. Rules are
// ignored. For example:
//
//	# ~/.config/makec/config
//	LEVEL = debug
//	log-level = $(LEVEL)
//	log_format = json
//	no-log-pretty = true
//
// Flags given on the command line override the file. A file that does not
// compile is reported and otherwise ignored.
func resolve(ctx context.Context) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		res, err := lang.CompileReader(ctx, r)
		if err != nil {
			log.WarnContext(ctx, "ignoring configuration file",
				slog.Any("error", err))

			return config{}, nil
		}

		return config(res.Env.Map()), nil
	}
}

// config implements [kong.Resolver] over resolved variables.
type config map[string]string

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver]. Empty values leave the flag at its
// default.
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	for _, name := range []string{
		flag.Name,
		strings.ReplaceAll(flag.Name, "-", "_"),
	} {
		if value, ok := c[name]; ok && value != "" {
			return value, nil
		}
	}

	if flag.Tag != nil && flag.Tag.Negatable != "" {
		for _, name := range []string{
			"no-" + flag.Name,
			"no_" + strings.ReplaceAll(flag.Name, "-", "_"),
		} {
			if value, ok := c[name]; ok && value != "" {
				return negate(value), nil
			}
		}
	}

	return nil, nil
}

// negate inverts a boolean value given for a "no-" flag. Values that are
// not booleans are passed through for kong to reject.
func negate(value string) string {
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return "false"

	case "false", "0", "no", "off":
		return "true"
	}

	return value
}
