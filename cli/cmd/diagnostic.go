package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/makec/lang"
)

// Diagnostic is a compilation failure tied to the makefile it came from.
type Diagnostic struct {
	File   string
	Source string
	Err    error
}

func (d *Diagnostic) Error() string {
	line, col := d.Position()

	switch {
	case line > 0 && col > 0:
		return fmt.Sprintf("%s:%d:%d: %v", d.File, line, col, d.Err)

	case line > 0:
		return fmt.Sprintf("%s:%d: %v", d.File, line, d.Err)

	default:
		return fmt.Sprintf("%s: %v", d.File, d.Err)
	}
}

func (d *Diagnostic) Unwrap() error { return d.Err }

// Is matches [ErrCompile].
func (d *Diagnostic) Is(target error) bool { return target == ErrCompile }

func (d *Diagnostic) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("file", d.File),
		slog.Any("cause", d.Err),
	)
}

// Position returns the source line and column of the failure. Column is 0
// when only the line is known, and both are 0 when neither is.
func (d *Diagnostic) Position() (line, column int) {
	var pos interface{ Position() (int, int) }
	if errors.As(d.Err, &pos) {
		return pos.Position()
	}

	var cycle *lang.CircularReferenceError
	if errors.As(d.Err, &cycle) {
		return cycle.Line, 0
	}

	return 0, 0
}

// Render writes the error followed by the offending source line and a caret
// under the failing column. Styles are only applied when w is a terminal.
func (d *Diagnostic) Render(w io.Writer) error {
	r := lipgloss.NewRenderer(w)

	var (
		bold   = r.NewStyle().Bold(true)
		failed = r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
		gutter = r.NewStyle().Foreground(lipgloss.Color("8"))
		caret  = r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	)

	var sb strings.Builder

	line, col := d.Position()

	loc := d.File
	if line > 0 {
		loc += ":" + strconv.Itoa(line)
	}

	if col > 0 {
		loc += ":" + strconv.Itoa(col)
	}

	sb.WriteString(bold.Render(loc + ":"))
	sb.WriteByte(' ')
	sb.WriteString(failed.Render(d.Err.Error()))
	sb.WriteByte('\n')

	if text, ok := lang.SourceLine(d.Source, line); ok {
		num := strconv.Itoa(line)
		bar := gutter.Render("|")

		sb.WriteString(gutter.Render(num) + " " + bar + " " + text + "\n")

		if col > 0 {
			sb.WriteString(strings.Repeat(" ", len(num)) + " " + bar + " " +
				caretPad(text, col) + caret.Render("^") + "\n")
		}
	}

	_, err := io.WriteString(w, sb.String())

	return err
}

// caretPad returns blanks covering the first col-1 runes of text, keeping
// tabs so the caret lines up however the terminal expands them.
func caretPad(text string, col int) string {
	var sb strings.Builder

	n := 0
	for _, r := range text {
		if n >= col-1 {
			break
		}

		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}

		n++
	}

	// Columns past the end of the line point at the line end.
	for ; n < col-1; n++ {
		sb.WriteByte(' ')
	}

	return sb.String()
}
