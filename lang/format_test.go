package lang

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func mustCompile(t *testing.T, src string) *Result {
	t.Helper()

	res, err := Compile(context.Background(), src)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	return res
}

func TestDocument_Format(t *testing.T) {
	res := mustCompile(t, "B = 2\nA = 1\nx: y\n\tcmd $@\nz:\n")

	var buf bytes.Buffer
	if err := res.Document().Format(context.Background(), &buf); err != nil {
		t.Fatalf("format error: %v", err)
	}

	want := "A = 1\nB = 2\n\nx: y\n\tcmd x\n\nz:\n"
	if got := buf.String(); got != want {
		t.Errorf("format mismatch:\nwant: %q\ngot:  %q", want, got)
	}
}

func TestDocument_FormatJSON(t *testing.T) {
	res := mustCompile(t, "A = 1\nx: y\n\tcmd $@\n")

	var buf bytes.Buffer
	if err := res.Document().FormatJSON(context.Background(), &buf, 0); err != nil {
		t.Fatalf("format error: %v", err)
	}

	want := `{"vars":{"A":"1"},"rules":[{"targets":["x"],"prereqs":["y"],"recipe":["cmd x"],"line":2}]}` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("format mismatch:\nwant: %s\ngot:  %s", want, got)
	}

	buf.Reset()

	if err := res.Document().FormatJSON(context.Background(), &buf, 2); err != nil {
		t.Fatalf("format error: %v", err)
	}

	if !strings.Contains(buf.String(), "\n  \"vars\": {") {
		t.Errorf("expected indented JSON, got:\n%s", buf.String())
	}
}

func TestDocument_FormatYAML(t *testing.T) {
	res := mustCompile(t, "CC = gcc\nx: y\n\t$(CC) -o $@ $<\n")

	var buf bytes.Buffer
	if err := res.Document().FormatYAML(context.Background(), &buf, 2); err != nil {
		t.Fatalf("format error: %v", err)
	}

	output := buf.String()

	for _, want := range []string{"vars:", "CC: gcc", "rules:", "targets:", "gcc -o x y", "line: 2"} {
		if !strings.Contains(output, want) {
			t.Errorf("YAML output missing %q:\n%s", want, output)
		}
	}
}

func TestDocument_FormatHCL(t *testing.T) {
	res := mustCompile(t, "CC = gcc\nx: y\n\t$(CC) -o $@ $<\nclean:\n")

	var buf bytes.Buffer
	if err := res.Document().FormatHCL(context.Background(), &buf); err != nil {
		t.Fatalf("format error: %v", err)
	}

	output := buf.String()

	for _, want := range []string{
		"vars = {",
		`"gcc"`,
		`rule "x" {`,
		`["y"]`,
		`["gcc -o x y"]`,
		`rule "clean" {`,
		"[]",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("HCL output missing %q:\n%s", want, output)
		}
	}
}

func TestDocument_FormatAs(t *testing.T) {
	doc := mustCompile(t, "x:\n").Document()

	for _, format := range Formats {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := doc.FormatAs(context.Background(), &buf, format, 2); err != nil {
				t.Fatalf("format error: %v", err)
			}

			if !strings.Contains(buf.String(), "x") {
				t.Errorf("output missing target:\n%s", buf.String())
			}
		})
	}

	err := doc.FormatAs(context.Background(), &bytes.Buffer{}, "toml", 0)
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestPrintTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "grouped by line",
			input: "A = 1\nx: y\n\n\tcmd",
			want: "   1: Word(\"A\") Assign Word(\"1\")\n" +
				"   2: Word(\"x\") Colon Word(\"y\")\n" +
				"   4: Indent Word(\"cmd\")\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := PrintTokens(&buf, mustLex(t, tt.input)); err != nil {
				t.Fatalf("print error: %v", err)
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("mismatch:\nwant: %q\ngot:  %q", tt.want, got)
			}
		})
	}
}

func TestPrintAST(t *testing.T) {
	res := mustCompile(t, "A = 1\nx: y\n\tcmd $(A)\n")

	var buf bytes.Buffer
	if err := PrintAST(&buf, res.Defs, res.Rules); err != nil {
		t.Fatalf("print error: %v", err)
	}

	want := "   1: A = 1\n   2: x: y\n\tcmd $(A)\n"
	if got := buf.String(); got != want {
		t.Errorf("mismatch:\nwant: %q\ngot:  %q", want, got)
	}
}

func TestSourceLine(t *testing.T) {
	src := "first\r\nsecond\nthird"

	tests := []struct {
		line int
		want string
		ok   bool
	}{
		{0, "", false},
		{1, "first", true},
		{2, "second", true},
		{3, "third", true},
		{4, "", false},
	}

	for _, tt := range tests {
		got, ok := SourceLine(src, tt.line)
		if got != tt.want || ok != tt.ok {
			t.Errorf("SourceLine(%d): want %q, %v; got %q, %v", tt.line, tt.want, tt.ok, got, ok)
		}
	}
}
