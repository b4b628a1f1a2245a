package lox_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/leonardinius/treelox/internal/lox"
	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(source string) (stdout, stderr string, err error) {
	out := new(strings.Builder)
	errOut := new(strings.Builder)
	runner := lox.NewRunner(lox.WithStdout(out), lox.WithStderr(errOut))
	err = runner.Run(context.Background(), source)
	return out.String(), errOut.String(), err
}

func TestRun(t *testing.T) {
	testcases := []struct {
		name   string
		in     string
		out    string
		stderr string
		code   int
	}{
		{name: "print", in: `print 1 + 2 * 3;`, out: "7\n", code: lox.ExitOK},
		{name: "empty", in: ``, code: lox.ExitOK},
		{name: "scan error", in: `print "abc`, stderr: "ERROR [line 1] Error: Unterminated string.\n", code: lox.ExitDataErr},
		{name: "parse error", in: `print 1`, stderr: "ERROR [line 1] parse error at end: expect ';' after print value.\n", code: lox.ExitDataErr},
		{name: "parse error nothing runs", in: `print 1; print 2 +;`, stderr: "ERROR [line 1] parse error at ';': expected expression.\n", code: lox.ExitDataErr},
		{name: "runtime error", in: `print 1; print "a" + 1;`, out: "1\n", stderr: "ERROR Operands must be two numbers or two strings.\n[line 1] in script\n", code: lox.ExitSoftware},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			stdout, stderr, err := run(tc.in)
			assert.Equal(t, tc.out, stdout)
			assert.Equal(t, tc.stderr, stderr)
			assert.Equal(t, tc.code, lox.ExitCode(err))
		})
	}
}

func TestRunIsIdempotent(t *testing.T) {
	sources := []string{
		`print "a" + "b"; print 1 == "1";`,
		`print "a" + 1;`,
		`print 1`,
		`"abc`,
	}

	for _, source := range sources {
		out1, err1, runErr1 := run(source)
		out2, err2, runErr2 := run(source)

		assert.Equal(t, out1, out2, source)
		assert.Equal(t, err1, err2, source)
		assert.Equal(t, lox.ExitCode(runErr1), lox.ExitCode(runErr2), source)
	}
}

func TestRunSharedRunnerKeepsNoState(t *testing.T) {
	out := new(strings.Builder)
	errOut := new(strings.Builder)
	runner := lox.NewRunner(lox.WithStdout(out), lox.WithStderr(errOut))
	ctx := context.Background()

	// one runner per REPL session, one Run per line
	require.NoError(t, runner.Run(ctx, `print "a";`))
	require.Error(t, runner.Run(ctx, `print -"a";`))
	require.NoError(t, runner.Run(ctx, `print "a";`))

	assert.Equal(t, "a\na\n", out.String())
	assert.Equal(t, "ERROR Operand must be a number.\n[line 1] in script\n", errOut.String())
}

type recordingReporter struct {
	errors []error
	panics []error
}

func (r *recordingReporter) ReportError(err error) { r.errors = append(r.errors, err) }
func (r *recordingReporter) ReportPanic(err error) { r.panics = append(r.panics, err) }

type panickingWriter struct{}

func (panickingWriter) Write([]byte) (int, error) { panic("writer exploded") }

func TestRunRecoversFromPanics(t *testing.T) {
	reporter := &recordingReporter{}
	runner := lox.NewRunner(lox.WithStdout(panickingWriter{}), lox.WithErrorReporter(reporter))

	err := runner.Run(context.Background(), `print 1;`)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "writer exploded")
	assert.Empty(t, reporter.errors)
	require.Len(t, reporter.panics, 1)
	assert.Equal(t, lox.ExitSoftware, lox.ExitCode(err))
}

func TestRunReportsOnce(t *testing.T) {
	reporter := &recordingReporter{}
	runner := lox.NewRunner(lox.WithStdout(new(strings.Builder)), lox.WithErrorReporter(reporter))

	err := runner.Run(context.Background(), "1 +;\n2 +;\n3 +;")

	require.Error(t, err)
	require.Len(t, reporter.errors, 1)
	assert.Equal(t, 3, strings.Count(reporter.errors[0].Error(), "expected expression."))
}

func TestParse(t *testing.T) {
	stmts, err := lox.Parse(`print 1; 2;`)
	require.NoError(t, err)
	require.Len(t, stmts, 2)
	assert.Equal(t, parser.StmtKindPrint, stmts[0].Kind())
	assert.Equal(t, parser.StmtKindExpression, stmts[1].Kind())

	_, err = lox.Parse(`"open`)
	assert.ErrorIs(t, err, loxerrors.ErrScanUnterminatedString)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, lox.ExitOK, lox.ExitCode(nil))
	assert.Equal(t, lox.ExitDataErr, lox.ExitCode(loxerrors.NewScanError(1, loxerrors.ErrScanUnexpectedCharacter, "")))
	assert.Equal(t, lox.ExitSoftware, lox.ExitCode(loxerrors.NewRuntimeError(nil, loxerrors.ErrRuntimeUnimplementedStatement)))
	assert.Equal(t, lox.ExitSoftware, lox.ExitCode(context.Canceled))
	assert.Equal(t, lox.ExitSoftware, lox.ExitCode(errors.New("other")))
}
