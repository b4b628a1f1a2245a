package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.lox")
	require.NoError(t, os.WriteFile(path, []byte(source), 0o600))
	return path
}

func newTestApp() (*LoxApp, *bytes.Buffer, *bytes.Buffer) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	app := NewLoxApp(
		WithStdin(io.NopCloser(strings.NewReader(""))),
		WithStdout(stdout),
		WithStderr(stderr),
	)
	return app, stdout, stderr
}

func TestMainRunFile(t *testing.T) {
	testcases := []struct {
		name   string
		source string
		code   int
		stdout string
		stderr string
	}{
		{name: "ok", source: "print 2 + 3 * 4;\nprint \"a\" + \"b\";", code: 0, stdout: "14\nab\n"},
		{name: "runtime error", source: "print 1;\nprint -\"x\";", code: 70, stdout: "1\n", stderr: "ERROR Operand must be a number.\n[line 2] in script\n"},
		{name: "parse error", source: "print 1;\nprint (1;", code: 65, stderr: "ERROR [line 2] parse error at ';': expected ')' after expression.\n"},
		{name: "scan error", source: "print 1 @ 2;", code: 65, stderr: "ERROR [line 1] Error: Unexpected character. '@'\n"},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			app, stdout, stderr := newTestApp()
			code := app.Main([]string{writeScript(t, tc.source)})

			assert.Equal(t, tc.code, code)
			assert.Equal(t, tc.stdout, stdout.String())
			assert.Equal(t, tc.stderr, stderr.String())
		})
	}
}

func TestMainUsage(t *testing.T) {
	app, stdout, stderr := newTestApp()

	code := app.Main([]string{"a.lox", "b.lox"})

	assert.Equal(t, 64, code)
	assert.Empty(t, stdout.String())
	assert.Equal(t, "Usage: treelox [script]\n", stderr.String())
}

func TestMainMissingFile(t *testing.T) {
	app, _, stderr := newTestApp()

	code := app.Main([]string{filepath.Join(t.TempDir(), "missing.lox")})

	assert.Equal(t, 66, code)
	assert.Contains(t, stderr.String(), "missing.lox")
}

func TestMainPrintAst(t *testing.T) {
	script := writeScript(t, "print 2 + 3 * 4;\n-1 * (2);")

	testcases := []struct {
		format string
		want   string
	}{
		{format: "lisp", want: "(print (+ 2 (* 3 4)))\n(; (* (- 1) (group 2)))\n"},
		{format: "rpn", want: "2 3 4 * + print\n1 ~ 2 *\n"},
	}

	for _, tc := range testcases {
		t.Run(tc.format, func(t *testing.T) {
			app, stdout, stderr := newTestApp()
			code := app.Main([]string{"--print-ast", tc.format, script})

			assert.Equal(t, 0, code)
			assert.Equal(t, tc.want, stdout.String())
			assert.Empty(t, stderr.String())
		})
	}
}

func TestMainPrintAstUnknownFormat(t *testing.T) {
	app, _, stderr := newTestApp()

	code := app.Main([]string{"--print-ast", "xml", writeScript(t, "print 1;")})

	assert.Equal(t, 64, code)
	assert.Contains(t, stderr.String(), "xml")
}

func TestMainVersion(t *testing.T) {
	app, stdout, _ := newTestApp()

	code := app.Main([]string{"--version"})

	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stdout.String(), "treelox version "))
}

func TestMainBadConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "treelox.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("run_timeout: [1, 2]\n"), 0o600))

	app, _, stderr := newTestApp()
	code := app.Main([]string{"--config", cfgPath, writeScript(t, "print 1;")})

	assert.Equal(t, 64, code)
	assert.Contains(t, stderr.String(), "parse config")
}

type fakeLines struct {
	lines []string
}

func (f *fakeLines) Readline() (string, error) {
	if len(f.lines) == 0 {
		return "", io.EOF
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

func TestPromptLoop(t *testing.T) {
	app, stdout, stderr := newTestApp()

	lines := &fakeLines{lines: []string{
		`print 1 + 1;`,
		`print -"x";`,
		`print "still " + "alive";`,
		`print -"x";`,
	}}
	err := app.promptLoop(context.Background(), lines)

	require.NoError(t, err)
	assert.Equal(t, "2\nstill alive\n", stdout.String())
	assert.Equal(t, strings.Repeat("ERROR Operand must be a number.\n[line 1] in script\n", 2), stderr.String())
}
