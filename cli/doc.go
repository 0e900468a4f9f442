// Package cli contains the command line interface for makec.
//
// # Usage
//
//	makec [flags] [-f FILE] [-t N] [target ...]
//	makec [flags] <command> [-f FILE] ...
//
// Without a command, makec plans the named targets: it compiles FILE
// (default "Makefile") and prints the lowered rule of each target, or of
// the first rule when no target is named. The other commands expose each
// stage of the compiler:
//
//	tokens   the token stream, grouped by source line
//	ast      variable definitions and rules as parsed
//	vars     the resolved variables
//	dump     variables and lowered rules as native, json, yaml or hcl
//	watch    recompile whenever FILE changes
//	init     write a configuration file
//
// Lexer and parser errors are printed with the offending source line and a
// caret under the failing column.
//
// # Configuration
//
// Global flags may be set in $XDG_CONFIG_HOME/makec/config, written in
// makefile variable syntax, or in config.json beside it:
//
//	log-level = debug
//	log-format = json
//
// Command-line flags override both files. Run "makec init" to write the
// current values.
//
// # Logging Options
//
//   - --log-level: minimum level (trace, debug, info, warn, error)
//   - --log-format: output format (text, json)
//   - --log-time-layout: timestamp layout, or none
//   - --log-caller: include caller information
//   - --[no-]log-pretty: colorize text output on a terminal
//
// # Profiling Options
//
//   - --pprof-mode: record a profile (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: profile output directory (default
//     $XDG_CACHE_HOME/makec/pprof)
package cli
