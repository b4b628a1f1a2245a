package interpreter

import (
	"io"
	"os"
)

type interpreterOpts struct {
	stdout io.Writer
}

var defaultInterpreterOpts = interpreterOpts{
	stdout: os.Stdout,
}

type InterpreterOption func(*interpreterOpts)

// WithStdout sets the writer print statements write to.
func WithStdout(stdout io.Writer) InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.stdout = stdout
	}
}

func newInterpreterOpts(options ...InterpreterOption) *interpreterOpts {
	opts := defaultInterpreterOpts
	for _, opt := range options {
		opt(&opts)
	}

	if opts.stdout == nil {
		opts.stdout = io.Discard
	}

	return &opts
}
