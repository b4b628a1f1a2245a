// Package lox wires scanner, parser and interpreter into the single run boundary
// used by the command line and the playground.
package lox

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/leonardinius/treelox/internal/interpreter"
	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/parser"
	"github.com/leonardinius/treelox/internal/scanner"
)

// Exit statuses, sysexits(3) style.
const (
	ExitOK       = 0
	ExitUsage    = 64
	ExitDataErr  = 65
	ExitNoInput  = 66
	ExitSoftware = 70
)

// Runner runs whole scripts. Each Run builds a fresh scanner, parser and
// interpreter, so runs never observe each other's state.
type Runner struct {
	stdout   io.Writer
	reporter loxerrors.ErrReporter
}

type runnerOpts struct {
	stdout   io.Writer
	stderr   io.Writer
	reporter loxerrors.ErrReporter
}

type RunnerOption func(*runnerOpts)

func WithStdout(stdout io.Writer) RunnerOption {
	return func(opts *runnerOpts) {
		opts.stdout = stdout
	}
}

// WithStderr sets where the default reporter writes; ignored with WithErrorReporter.
func WithStderr(stderr io.Writer) RunnerOption {
	return func(opts *runnerOpts) {
		opts.stderr = stderr
	}
}

func WithErrorReporter(r loxerrors.ErrReporter) RunnerOption {
	return func(opts *runnerOpts) {
		opts.reporter = r
	}
}

func NewRunner(options ...RunnerOption) *Runner {
	opts := runnerOpts{stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range options {
		opt(&opts)
	}

	if opts.reporter == nil {
		opts.reporter = loxerrors.NewErrReporter(opts.stderr)
	}

	return &Runner{stdout: opts.stdout, reporter: opts.reporter}
}

// Run scans, parses and interprets source.
// Any failure is reported exactly once through the error reporter and returned
// so the caller can pick an exit status; a scan or parse error means nothing
// is evaluated.
func (r *Runner) Run(ctx context.Context, source string) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("internal error: %v", p)
			r.reporter.ReportPanic(err)
		}
	}()

	if err = r.run(ctx, source); err != nil {
		r.reporter.ReportError(err)
	}

	return err
}

func (r *Runner) run(ctx context.Context, source string) error {
	statements, err := Parse(source)
	if err != nil {
		return err
	}

	eval := interpreter.NewInterpreter(interpreter.WithStdout(r.stdout))
	return eval.Interpret(ctx, statements)
}

// Parse scans and parses source without evaluating it.
func Parse(source string) ([]parser.Stmt, error) {
	tokens, err := scanner.NewScanner(source).Scan()
	if err != nil {
		return nil, err
	}

	return parser.NewParser(tokens).Parse()
}

// ExitCode maps a Run result onto a process exit status.
func ExitCode(err error) int {
	switch loxerrors.Classify(err) {
	case loxerrors.KindNone:
		return ExitOK
	case loxerrors.KindScan, loxerrors.KindParse:
		return ExitDataErr
	}

	return ExitSoftware
}
