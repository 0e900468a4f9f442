package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/makec/cli/cmd"
	"github.com/ardnew/makec/lang"
)

func TestMain(m *testing.M) {
	home, err := os.MkdirTemp("", "makec-cli-test-*")
	if err != nil {
		panic(err)
	}

	// The config and cache directories are computed once per process.
	os.Setenv("HOME", home)
	os.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	os.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))

	code := m.Run()

	os.RemoveAll(home)
	os.Exit(code)
}

const cliMakefile = `CC = gcc
app: main.o
	$(CC) -o $@ $^
main.o: main.c
	$(CC) -c $<
`

type result struct {
	out, err string
	code     int
	exited   bool
}

func runCLI(t *testing.T, stdin string, args ...string) (result, error) {
	t.Helper()

	var (
		out, errOut bytes.Buffer
		res         result
	)

	exit := func(code int) {
		res.code = code
		res.exited = true
	}

	args = append([]string{"--log-level=error"}, args...)

	err := run(context.Background(), exit,
		streams{strings.NewReader(stdin), &out, &errOut}, args...)

	res.out = out.String()
	res.err = errOut.String()

	return res, err
}

func writeMakefile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "Makefile")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestRun_Plan(t *testing.T) {
	path := writeMakefile(t, cliMakefile)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "default goal",
			args: []string{"-f", path},
			want: "app: main.o\n\tgcc -o app main.o\n",
		},
		{
			name: "named target",
			args: []string{"-f", path, "main.o"},
			want: "main.o: main.c\n\tgcc -c main.c\n",
		},
		{
			name: "explicit command and jobs",
			args: []string{"plan", "-f", path, "-t", "4", "main.o", "app"},
			want: "main.o: main.c\n\tgcc -c main.c\n\napp: main.o\n\tgcc -o app main.o\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := runCLI(t, "", tt.args...)
			if err != nil {
				t.Fatalf("run error: %v", err)
			}

			if res.out != tt.want {
				t.Errorf("want %q, got %q", tt.want, res.out)
			}
		})
	}
}

func TestRun_Stdin(t *testing.T) {
	res, err := runCLI(t, "X = 1\nY = $(X) 2\n", "vars", "-f", "-")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}

	if want := "X = 1\nY = 1 2\n"; res.out != want {
		t.Errorf("want %q, got %q", want, res.out)
	}
}

func TestRun_UnknownTarget(t *testing.T) {
	path := writeMakefile(t, cliMakefile)

	_, err := runCLI(t, "", "-f", path, "man.o")
	if !errors.Is(err, lang.ErrUnknownTarget) || !errors.Is(err, cmd.ErrSelect) {
		t.Fatalf("expected unknown target error, got %v", err)
	}

	if !strings.Contains(err.Error(), "main.o") {
		t.Errorf("expected a suggestion in %q", err.Error())
	}
}

func TestRun_Diagnostic(t *testing.T) {
	path := writeMakefile(t, "all: x\nfoo ; bar\n")

	res, err := runCLI(t, "", "-f", path)
	if !errors.Is(err, lang.ErrLex) || !errors.Is(err, cmd.ErrCompile) {
		t.Fatalf("expected lex error, got %v", err)
	}

	want := path + ":2:5: "
	if !strings.HasPrefix(res.err, want) {
		t.Errorf("want prefix %q, got %q", want, res.err)
	}

	if !strings.Contains(res.err, "2 | foo ; bar\n  |     ^\n") {
		t.Errorf("missing caret snippet in %q", res.err)
	}
}

func TestRun_MissingFile(t *testing.T) {
	_, err := runCLI(t, "", "-f", filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, cmd.ErrReadFile) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestRun_Dump(t *testing.T) {
	path := writeMakefile(t, cliMakefile)

	res, err := runCLI(t, "", "dump", "-f", path, "--format", "json", "--where", `"app" in targets`)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}

	for _, want := range []string{`"CC": "gcc"`, `"app"`} {
		if !strings.Contains(res.out, want) {
			t.Errorf("want %s in %s", want, res.out)
		}
	}

	if strings.Contains(res.out, "main.c") {
		t.Errorf("filtered rule in output: %s", res.out)
	}
}

func TestRun_Version(t *testing.T) {
	res, _ := runCLI(t, "", "--version")

	if !res.exited || res.code != 0 {
		t.Errorf("expected exit 0, got exited=%v code=%d", res.exited, res.code)
	}

	if !strings.HasPrefix(res.out, "makec ") {
		t.Errorf("unexpected version output %q", res.out)
	}
}

func TestRun_InitThenConfig(t *testing.T) {
	if _, err := runCLI(t, "", "init", "--force"); err != nil {
		t.Fatalf("init error: %v", err)
	}

	buf, err := os.ReadFile(configPath(baseConfig))
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}

	conf := string(buf)
	for _, want := range []string{"log-level = error", "log-format = text", "# pprof-mode = "} {
		if !strings.Contains(conf, want) {
			t.Errorf("want %q in config:\n%s", want, conf)
		}
	}

	if _, err := lang.Compile(context.Background(), conf); err != nil {
		t.Errorf("written config does not compile: %v", err)
	}

	_, err = runCLI(t, "", "init")
	if !errors.Is(err, cmd.ErrWriteConfig) || !errors.Is(err, cmd.ErrFileExists) {
		t.Errorf("expected refusal to overwrite, got %v", err)
	}
}
