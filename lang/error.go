package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrLex               = NewError("lex error")
	ErrParse             = NewError("parse error")
	ErrCircularReference = NewError("circular variable reference")
	ErrReadInput         = NewError("failed to read input")
	ErrUnknownTarget     = NewError("no rule to make target")
	ErrFilterCompile     = NewError("filter compilation failed")
	ErrFilterEvaluate    = NewError("filter evaluation failed")
	ErrInvalidFormat     = NewError("invalid format")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
	base  *Error      // Sentinel this error was derived from
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// "<msg>: <err>", "<msg>", "<err>" or "" depending on which are set.
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether e was derived from target via [Error.Wrap] or
// [Error.With].
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e == t || (e.base != nil && e.base == t)
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.Any("cause", e.err))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
		base:  e.root(),
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
		base:  e.root(),
	}
}

func (e *Error) root() *Error {
	if e.base != nil {
		return e.base
	}

	return e
}

// LexError reports the first position at which no lexical rule matched.
type LexError struct {
	Line   int
	Column int
	Char   rune // offending character, 0 at end of input
	Reason string
}

// Error implements the error interface.
func (e *LexError) Error() string {
	var sb strings.Builder

	sb.WriteString("lex error at line ")
	sb.WriteString(strconv.Itoa(e.Line))
	sb.WriteString(", column ")
	sb.WriteString(strconv.Itoa(e.Column))
	sb.WriteString(": ")
	sb.WriteString(e.Reason)

	if e.Char != 0 {
		sb.WriteString(" ")
		sb.WriteString(strconv.QuoteRune(e.Char))
	}

	return sb.String()
}

// Is matches [ErrLex].
func (e *LexError) Is(target error) bool { return target == ErrLex }

// LogValue implements slog.LogValuer.
func (e *LexError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrLex.msg),
		slog.String("stage", StageLex.String()),
		slog.Int("line", e.Line),
		slog.Int("column", e.Column),
		slog.String("char", string(e.Char)),
		slog.String("reason", e.Reason),
	)
}

// Position returns the line and column of the error.
func (e *LexError) Position() (line, column int) { return e.Line, e.Column }

// ParseError reports a construct the parser could not recognize.
type ParseError struct {
	Token    Token    // token at which the furthest attempt stopped
	Expected []string // descriptions of what would have been accepted
	Line     int
	Column   int
	EOF      bool // input ended where more tokens were expected
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var sb strings.Builder

	sb.WriteString("parse error at line ")
	sb.WriteString(strconv.Itoa(e.Line))

	if e.Column > 0 {
		sb.WriteString(", column ")
		sb.WriteString(strconv.Itoa(e.Column))
	}

	if e.EOF {
		sb.WriteString(": unexpected end of input")
	} else {
		sb.WriteString(": unexpected ")
		sb.WriteString(e.Token.String())
	}

	if len(e.Expected) > 0 {
		sb.WriteString(", expected ")
		sb.WriteString(strings.Join(e.Expected, " or "))
	}

	return sb.String()
}

// Is matches [ErrParse].
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("error", ErrParse.msg),
		slog.String("stage", StageParse.String()),
		slog.Int("line", e.Line),
		slog.Int("column", e.Column),
	}

	if e.EOF {
		attrs = append(attrs, slog.Bool("eof", true))
	} else {
		attrs = append(attrs, slog.String("token", e.Token.String()))
	}

	if len(e.Expected) > 0 {
		attrs = append(attrs, slog.Any("expected", e.Expected))
	}

	return slog.GroupValue(attrs...)
}

// Position returns the line and column of the error.
func (e *ParseError) Position() (line, column int) { return e.Line, e.Column }

// CircularReferenceError reports a variable whose expansion depends on
// itself.
type CircularReferenceError struct {
	Name  string
	Chain []string // reference path from Name back to Name
	Line  int      // line of the surviving definition of Name
}

// Error implements the error interface.
func (e *CircularReferenceError) Error() string {
	msg := "circular variable reference: " + e.Name

	if len(e.Chain) > 1 {
		msg += " (" + strings.Join(e.Chain, " -> ") + ")"
	}

	if e.Line > 0 {
		msg += " defined at line " + strconv.Itoa(e.Line)
	}

	return msg
}

// Is matches [ErrCircularReference].
func (e *CircularReferenceError) Is(target error) bool {
	return target == ErrCircularReference
}

// LogValue implements slog.LogValuer.
func (e *CircularReferenceError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrCircularReference.msg),
		slog.String("stage", StageResolve.String()),
		slog.String("name", e.Name),
		slog.Any("chain", e.Chain),
		slog.Int("line", e.Line),
	)
}
