package lang

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/ardnew/makec/log"
)

const sampleMakefile = `# sample build
CC = gcc
CFLAGS = -O2 -I$(INC)
INC = include
OBJS = main.o util.o

app: main.o util.o
	$(CC) $(CFLAGS) -o $@ $^

main.o: main.c
	$(CC) -c "$<" -o $@

util.o: util.c util.h util.c
	$(CC) -c $< -o $@ # $^ unused

clean:
	rm -f app $(OBJS)
`

func TestCompile(t *testing.T) {
	res, err := Compile(context.Background(), sampleMakefile)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	if len(res.Tokens) == 0 {
		t.Error("expected tokens")
	}

	if len(res.Defs) != 4 || len(res.Rules) != 4 || len(res.Lowered) != 4 {
		t.Fatalf("expected 4 defs and 4 rules, got %d defs, %d rules, %d lowered",
			len(res.Defs), len(res.Rules), len(res.Lowered))
	}

	if got := res.Env.Get("CFLAGS"); got != "-O2 -Iinclude" {
		t.Errorf("CFLAGS: got %q", got)
	}

	want := []LoweredRule{
		{
			Targets: []string{"app"},
			Prereqs: []string{"main.o", "util.o"},
			Recipe:  []string{"gcc -O2 -Iinclude -o app main.o util.o"},
			Line:    7,
		},
		{
			Targets: []string{"main.o"},
			Prereqs: []string{"main.c"},
			Recipe:  []string{"gcc -c main.c -o main.o"},
			Line:    10,
		},
		{
			Targets: []string{"util.o"},
			Prereqs: []string{"util.c", "util.h", "util.c"},
			Recipe:  []string{"gcc -c util.c -o util.o"},
			Line:    13,
		},
		{
			Targets: []string{"clean"},
			Prereqs: []string{},
			Recipe:  []string{"rm -f app main.o util.o"},
			Line:    16,
		},
	}

	for i, rule := range res.Lowered {
		w := want[i]

		if !slices.Equal(rule.Targets, w.Targets) ||
			!slices.Equal(rule.Prereqs, w.Prereqs) ||
			!slices.Equal(rule.Recipe, w.Recipe) ||
			rule.Line != w.Line {
			t.Errorf("rule %d:\nwant: %+v\ngot:  %+v", i, w, rule)
		}
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sentinel error
		stage    Stage
	}{
		{
			name:     "lex",
			input:    "A = 1\nx: \"open\n",
			sentinel: ErrLex,
			stage:    StageLex,
		},
		{
			name:     "parse",
			input:    "A = 1\njust words\n",
			sentinel: ErrParse,
			stage:    StageParse,
		},
		{
			name:     "resolve",
			input:    "A = $(B)\nB = $(A)\nall:\n\techo $(A)\n",
			sentinel: ErrCircularReference,
			stage:    StageResolve,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Compile(context.Background(), tt.input)
			if err == nil {
				t.Fatal("expected error")
			}

			if res != nil {
				t.Error("expected no result with error")
			}

			if !errors.Is(err, tt.sentinel) {
				t.Errorf("expected %v, got %v", tt.sentinel, err)
			}

			lv, ok := err.(slog.LogValuer)
			if !ok {
				t.Fatalf("error %T does not implement slog.LogValuer", err)
			}

			var stage string

			for _, attr := range lv.LogValue().Group() {
				if attr.Key == "stage" {
					stage = attr.Value.String()
				}
			}

			if stage != tt.stage.String() {
				t.Errorf("stage: want %q, got %q", tt.stage, stage)
			}
		})
	}
}

func TestCompileReader(t *testing.T) {
	res, err := CompileReader(context.Background(), strings.NewReader("A = 1\nx: y\n"))
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	if res.Env.Get("A") != "1" || len(res.Lowered) != 1 {
		t.Errorf("unexpected result: %+v", res)
	}

	_, err = CompileReader(context.Background(), iotest.ErrReader(errors.New("boom")))
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("expected ErrReadInput, got %v", err)
	}
}

func TestCompile_Logging(t *testing.T) {
	var buf bytes.Buffer

	logger := log.Make(&buf,
		log.WithLevel(log.LevelTrace),
		log.WithFormat(log.FormatText),
		log.WithPretty(false),
	)

	_, err := Compile(context.Background(), sampleMakefile, WithLogger(logger))
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	output := buf.String()

	for _, msg := range []string{
		"lex complete",
		"parse complete",
		"resolve complete",
		"substitute complete",
		"bind complete",
		"token_count",
		"rule_count=4",
	} {
		if !strings.Contains(output, msg) {
			t.Errorf("log output missing %q:\n%s", msg, output)
		}
	}
}

func TestStage_String(t *testing.T) {
	tests := []struct {
		stage Stage
		want  string
	}{
		{StageLex, "lex"},
		{StageParse, "parse"},
		{StageResolve, "resolve"},
		{StageSubstitute, "substitute"},
		{StageBind, "bind"},
		{Stage(42), "Stage(42)"},
	}

	for _, tt := range tests {
		if got := tt.stage.String(); got != tt.want {
			t.Errorf("Stage(%d): want %q, got %q", int(tt.stage), tt.want, got)
		}
	}
}
