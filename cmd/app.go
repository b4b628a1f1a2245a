package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leonardinius/treelox/internal/config"
	"github.com/leonardinius/treelox/internal/lox"
	"github.com/leonardinius/treelox/internal/parser"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
)

var errUsage = errors.New("Usage: treelox [script]")

// exitError carries a process exit status out of a cobra RunE.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// lineReader is the part of readline the prompt loop needs.
type lineReader interface {
	Readline() (string, error)
}

type LoxApp struct {
	stdin  io.ReadCloser
	stdout io.Writer
	stderr io.Writer

	configPath string
	printAst   string
}

type AppOption func(*LoxApp)

func WithStdin(stdin io.ReadCloser) AppOption {
	return func(app *LoxApp) {
		app.stdin = stdin
	}
}

func WithStdout(stdout io.Writer) AppOption {
	return func(app *LoxApp) {
		app.stdout = stdout
	}
}

func WithStderr(stderr io.Writer) AppOption {
	return func(app *LoxApp) {
		app.stderr = stderr
	}
}

func NewLoxApp(options ...AppOption) *LoxApp {
	app := &LoxApp{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range options {
		opt(app)
	}
	return app
}

// Main runs the command line and returns the process exit status.
func (app *LoxApp) Main(args []string) int {
	root := app.rootCommand()
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return lox.ExitOK
	}

	var exit *exitError
	if errors.As(err, &exit) {
		if exit.err != nil {
			fmt.Fprintln(app.stderr, exit.err)
		}
		return exit.code
	}

	// flag parsing and other cobra failures
	fmt.Fprintln(app.stderr, err)
	return lox.ExitUsage
}

func (app *LoxApp) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "treelox [script]",
		Short:         "Tree-walking interpreter for a subset of Lox",
		Args:          usageArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          app.runRoot,
	}
	root.SetIn(app.stdin)
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)

	root.Version = version + " (commit=" + commit + ")"
	root.SetVersionTemplate("treelox version {{.Version}}\n")

	root.PersistentFlags().StringVar(&app.configPath, "config", "", "YAML config file")
	root.Flags().StringVar(&app.printAst, "print-ast", "", "print parsed statements instead of running them (lisp|rpn)")

	root.AddCommand(app.serveCommand())
	return root
}

func usageArgs(_ *cobra.Command, args []string) error {
	if len(args) > 1 {
		return &exitError{code: lox.ExitUsage, err: errUsage}
	}
	return nil
}

func (app *LoxApp) loadConfig() (config.Config, error) {
	cfg, err := config.Load(app.configPath)
	if err != nil {
		return cfg, &exitError{code: lox.ExitUsage, err: err}
	}
	return cfg, nil
}

func (app *LoxApp) runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := app.loadConfig()
	if err != nil {
		return err
	}

	if app.printAst != "" {
		if len(args) != 1 {
			return &exitError{code: lox.ExitUsage, err: errors.New("--print-ast needs a script")}
		}
		return app.printFile(args[0], app.printAst)
	}

	if len(args) == 1 {
		return app.runFile(cmd.Context(), args[0])
	}

	return app.runPrompt(cmd.Context(), cfg)
}

func (app *LoxApp) newRunner() *lox.Runner {
	return lox.NewRunner(lox.WithStdout(app.stdout), lox.WithStderr(app.stderr))
}

func (app *LoxApp) readScript(scriptPath string) (string, error) {
	bytes, err := os.ReadFile(scriptPath)
	if err != nil {
		return "", &exitError{code: lox.ExitNoInput, err: err}
	}
	return string(bytes), nil
}

func (app *LoxApp) runFile(ctx context.Context, scriptPath string) error {
	source, err := app.readScript(scriptPath)
	if err != nil {
		return err
	}

	// the runner has already reported err
	if err := app.newRunner().Run(ctx, source); err != nil {
		return &exitError{code: lox.ExitCode(err)}
	}
	return nil
}

func (app *LoxApp) printFile(scriptPath, format string) error {
	var printStmt func(parser.Stmt) string
	switch format {
	case "lisp":
		printStmt = parser.NewAstPrinter().PrintStmt
	case "rpn":
		printStmt = parser.NewRPNPrinter().PrintStmt
	default:
		return &exitError{code: lox.ExitUsage, err: fmt.Errorf("unknown --print-ast format %q (want lisp or rpn)", format)}
	}

	source, err := app.readScript(scriptPath)
	if err != nil {
		return err
	}

	statements, err := lox.Parse(source)
	if err != nil {
		return &exitError{code: lox.ExitCode(err), err: err}
	}

	for _, stmt := range statements {
		fmt.Fprintln(app.stdout, printStmt(stmt))
	}
	return nil
}

func (app *LoxApp) runPrompt(ctx context.Context, cfg config.Config) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      cfg.Prompt,
		HistoryFile: cfg.HistoryFile,
		Stdin:       app.stdin,
		Stdout:      app.stdout,
		Stderr:      app.stderr,
	})
	if err != nil {
		return &exitError{code: lox.ExitSoftware, err: err}
	}
	defer rl.Close()

	return app.promptLoop(ctx, rl)
}

// promptLoop runs every line as its own script. Errors are reported by the
// runner and never end the loop; EOF does.
func (app *LoxApp) promptLoop(ctx context.Context, rl lineReader) error {
	runner := app.newRunner()
	for {
		line, err := rl.Readline()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			return &exitError{code: lox.ExitSoftware, err: err}
		}

		_ = runner.Run(ctx, line)
	}
}
