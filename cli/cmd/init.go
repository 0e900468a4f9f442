package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/makec/lang"
	"github.com/ardnew/makec/log"
)

// Init writes a configuration file holding the current global flag values.
//
// The file uses makefile variable syntax, one "flag-name = value" per line,
// and is read back on every run. Values that cannot be written as a single
// word are left commented out.
type Init struct {
	Force bool `help:"Overwrite an existing configuration file."`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(ErrFileExists)
	}

	if err := os.MkdirAll(filepath.Dir(confPath), 0o700); err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}
	defer file.Close()

	if err := writeConfig(file, configEntries(ktx)); err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	log.InfoContext(ctx, "initialized configuration file",
		slog.String("path", confPath))

	return nil
}

type configEntry struct {
	name  string
	value string
	help  string
}

// configEntries collects the global flags worth persisting.
func configEntries(ktx *kong.Context) []configEntry {
	skip := []string{"help", "version"}

	var entries []configEntry

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.Contains(skip, flag.Name) {
			continue
		}

		val := ktx.FlagValue(flag)
		if val == nil {
			continue
		}

		entries = append(entries, configEntry{
			name:  flag.Name,
			value: fmt.Sprint(val),
			help:  flag.Help,
		})
	}

	return entries
}

func writeConfig(w io.Writer, entries []configEntry) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# makec configuration")
	fmt.Fprintln(bw, "#")
	fmt.Fprintln(bw, "# Each line sets a global flag: flag-name = value")

	for _, e := range entries {
		fmt.Fprintln(bw)

		if e.help != "" {
			fmt.Fprintf(bw, "# %s\n", e.help)
		}

		switch {
		case allWords(e.value):
			fmt.Fprintf(bw, "%s = %s\n", e.name, e.value)

		default:
			fmt.Fprintf(bw, "# %s = %s\n", e.name, e.value)
		}
	}

	return bw.Flush()
}

// allWords reports whether value survives a round trip through a variable
// definition.
func allWords(value string) bool {
	fields := strings.Fields(value)
	if len(fields) == 0 || strings.Join(fields, " ") != value {
		return false
	}

	return !slices.ContainsFunc(fields, func(f string) bool { return !lang.IsWord(f) })
}
