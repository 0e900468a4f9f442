// Package cmd implements the makec subcommands.
//
// Every command that reads a makefile embeds [Source], which compiles the
// file with [lang.Compile] and turns lexer and parser failures into a
// [Diagnostic] that can render the offending line with a caret under the
// failing column.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)
