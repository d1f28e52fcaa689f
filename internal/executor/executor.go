// Package executor runs resolved actions. A task action is materialized as
// an executable temporary script and run under a subordinate shell
// interpreter seeded with the embedded stdlib prelude; a filter action
// dispatches its registered behavior in-process. Execution is strictly
// sequential: Run blocks until the underlying process, if any, exits.
package executor

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/bakelabs/bake/internal/bakefile"
	"github.com/bakelabs/bake/internal/config"
	"github.com/bakelabs/bake/internal/errors"
	"github.com/bakelabs/bake/internal/filter"
	"github.com/bakelabs/bake/internal/logging"
	"github.com/bakelabs/bake/internal/resolve"
)

//go:embed scripts/stdlib.sh
var stdlibScript []byte

// Options configures an Executor.
type Options struct {
	// Shell selects the interpreter; zero value falls back to defaults.
	Shell config.ShellConfig
	// Logger receives structured execution logs; nil means no logging.
	Logger *logging.Logger
	// Stdout and Stderr receive the child's output; default os.Stdout/Stderr.
	Stdout io.Writer
	Stderr io.Writer
	// Stdin is handed to the child and to filter prompts; default os.Stdin.
	Stdin io.Reader
	// Yes auto-confirms confirmation filters.
	Yes bool
	// Silent disables the indentation formatting of child output.
	Silent bool
	// Debug prints each composed shell invocation before running it.
	Debug bool
}

// Executor runs actions for one document.
type Executor struct {
	doc  *bakefile.Bakefile
	opts Options
}

// New returns an Executor over doc.
func New(doc *bakefile.Bakefile, opts Options) *Executor {
	if opts.Shell.Path == "" {
		opts.Shell = config.Default().Shell
	}
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger()
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	return &Executor{doc: doc, opts: opts}
}

// Run executes one resolved action and returns its exit status. A non-zero
// task exit is reported through the status, not through the error; the error
// is reserved for failures to run at all and for intentional run
// termination (errors.ErrRunAborted from a declined confirmation).
func (e *Executor) Run(ctx context.Context, action resolve.Action) (int, error) {
	switch a := action.(type) {
	case *bakefile.Task:
		return e.runTask(ctx, a)
	case *filter.Filter:
		return e.runFilter(a)
	default:
		return 1, fmt.Errorf("unknown action type %T", action)
	}
}

// runTask writes the task's derived script to a fresh executable temp file
// and runs it under the configured interpreter. Both temp files are removed
// on every exit path.
func (e *Executor) runTask(ctx context.Context, t *bakefile.Task) (int, error) {
	logger := e.opts.Logger.WithTask(t.Name())

	scriptPath, err := writeTempScript("bakefile-*.sh", []byte(t.Script()))
	if err != nil {
		return 1, fmt.Errorf("materializing script for %s: %w", t.Name(), err)
	}
	defer os.Remove(scriptPath)

	stdlibPath, err := writeTempScript("bake-stdlib-*.sh", stdlibScript)
	if err != nil {
		return 1, fmt.Errorf("materializing stdlib: %w", err)
	}
	defer os.Remove(stdlibPath)

	words := make([]string, 0, len(e.doc.Args())+1)
	words = append(words, shellQuote(scriptPath))
	for _, arg := range e.doc.Args() {
		words = append(words, shellQuote(arg))
	}
	inner := strings.Join(words, " ")

	// Interactive shells read the prelude through --init-file; otherwise it
	// is sourced explicitly, since --init-file only applies to -i shells.
	var argv []string
	if e.opts.Shell.Interactive {
		argv = []string{"--init-file", stdlibPath, "-i", "-c", inner}
	} else {
		argv = []string{"-c", ". " + shellQuote(stdlibPath) + " && " + inner}
	}

	if e.opts.Debug {
		fmt.Fprintf(e.opts.Stdout, "%s %s\n", e.opts.Shell.Path, strings.Join(argv, " "))
	}
	logger.Debug("spawning task process", "script", scriptPath, "shell", e.opts.Shell.Path)

	cmd := exec.CommandContext(ctx, e.opts.Shell.Path, argv...)
	cmd.Env = e.doc.Overlay().Environ(os.Environ())
	cmd.Stdin = e.opts.Stdin

	if e.opts.Silent {
		cmd.Stdout = e.opts.Stdout
		cmd.Stderr = e.opts.Stderr
	} else {
		// Combined output through one formatter keeps interleaving intact.
		out := newIndentWriter(e.opts.Stdout)
		cmd.Stdout = out
		cmd.Stderr = out
	}

	err = cmd.Run()
	if err == nil {
		logger.Debug("task process exited", "status", 0)
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		status := exitErr.ExitCode()
		logger.Info("task process exited non-zero", "status", status)
		return status, nil
	}

	return 1, fmt.Errorf("running %s: %w", t.Name(), err)
}

// runFilter dispatches the filter's registered behavior in-process.
func (e *Executor) runFilter(f *filter.Filter) (int, error) {
	e.opts.Logger.WithFilter(f.Name()).Debug("executing filter", "source", f.Source())

	err := f.Execute(filter.Options{
		Yes:    e.opts.Yes,
		Stdin:  e.opts.Stdin,
		Stdout: e.opts.Stdout,
	})
	if err != nil {
		return 1, err
	}
	return 0, nil
}

// writeTempScript creates a uniquely named executable file holding content.
func writeTempScript(pattern string, content []byte) (string, error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", err
	}

	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	if err := os.Chmod(f.Name(), 0o700); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
