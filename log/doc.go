// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Time formatting, caller information, level and output format are applied
// when a logger is made, using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"))
//
//	logger.Info("compiled", slog.String("file", "Makefile"))
//
// A zero [Logger] discards everything. Libraries accept a Logger by value
// and only produce output when the caller configured one.
//
// # Levels
//
// Five levels are defined: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn] and [LevelError]. Trace sits below slog's debug level and is
// used for per-stage progress of the compiler pipeline.
//
// # Context
//
// Every level has a context-aware variant. The variants that take no
// context use [DefaultContextProvider].
//
// # Output
//
// [FormatJSON] is the default. [FormatText] writes key=value lines and,
// with [WithPretty], leaves values unquoted and colors them when the output
// is a terminal. Grouped and [slog.LogValuer] attributes are flattened into
// dotted keys such as err.line=3.
//
// # Package Logger
//
// The package-level functions write through a default logger on stderr,
// which [Config] reconfigures.
package log
