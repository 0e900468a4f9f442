package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

type position struct{ line, col int }

func (p position) LogValue() slog.Value {
	return slog.GroupValue(slog.Int("line", p.line), slog.Int("column", p.col))
}

func prettyLogger(buf *bytes.Buffer, opts ...Option) Logger {
	base := []Option{
		WithFormat(FormatText),
		WithPretty(true),
		WithTimeLayout("none"),
		WithLevel(LevelTrace),
	}

	return Make(buf, append(base, opts...)...)
}

func TestPretty_Line(t *testing.T) {
	tests := []struct {
		name string
		log  func(Logger)
		want []string
	}{
		{
			name: "level and message",
			log:  func(l Logger) { l.Trace("lex complete", slog.Int("token_count", 12)) },
			want: []string{"level=TRACE", "msg=lex complete", "token_count=12"},
		},
		{
			name: "unquoted string",
			log:  func(l Logger) { l.Info("read", slog.String("file", "my Makefile")) },
			want: []string{"file=my Makefile"},
		},
		{
			name: "bool and duration",
			log: func(l Logger) {
				l.Warn("slow", slog.Bool("cached", false), slog.Duration("took", 1500000))
			},
			want: []string{"level=WARN", "cached=false", "took=1.5ms"},
		},
		{
			name: "log valuer flattened",
			log:  func(l Logger) { l.Error("failed", slog.Any("at", position{3, 7})) },
			want: []string{"at.line=3", "at.column=7"},
		},
		{
			name: "group flattened",
			log: func(l Logger) {
				l.Info("rule", slog.Group("rule", slog.String("target", "all")))
			},
			want: []string{"rule.target=all"},
		},
		{
			name: "error value",
			log:  func(l Logger) { l.Error("failed", slog.Any("err", errors.New("boom"))) },
			want: []string{"err=boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.log(prettyLogger(&buf))

			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("want %q in %q", w, out)
				}
			}

			if strings.Count(out, "\n") != 1 {
				t.Errorf("want one line, got %q", out)
			}
		})
	}
}

func TestPretty_NoColorWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer

	prettyLogger(&buf).Info("plain")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("escape sequences written to a buffer: %q", buf.String())
	}
}

func TestPretty_NoTime(t *testing.T) {
	var buf bytes.Buffer

	prettyLogger(&buf).Info("m")

	if strings.Contains(buf.String(), "time=") {
		t.Errorf("unexpected time: %q", buf.String())
	}

	buf.Reset()
	prettyLogger(&buf, WithTimeLayout("RFC3339")).Info("m")

	if !strings.HasPrefix(buf.String(), "time=") {
		t.Errorf("expected leading time: %q", buf.String())
	}
}

func TestPretty_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer

	logger := prettyLogger(&buf).With(slog.String("file", "Makefile"))
	logger.Info("first")
	logger.Info("second")

	if n := strings.Count(buf.String(), "file=Makefile"); n != 2 {
		t.Errorf("want attribute on both lines, got %d in %q", n, buf.String())
	}

	buf.Reset()

	grouped := slog.New(prettyLogger(&buf).Handler().WithGroup("stage").
		WithAttrs([]slog.Attr{slog.String("name", "lex")}))
	grouped.Info("done", slog.Int("count", 2))

	out := buf.String()
	if !strings.Contains(out, "stage.name=lex") || !strings.Contains(out, "stage.count=2") {
		t.Errorf("group prefix missing: %q", out)
	}
}

func TestPretty_Level(t *testing.T) {
	var buf bytes.Buffer

	prettyLogger(&buf, WithLevel(LevelWarn)).Info("hidden")

	if buf.Len() != 0 {
		t.Errorf("info logged below warn: %q", buf.String())
	}
}
