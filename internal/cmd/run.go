package cmd

import (
	"fmt"
	"os"

	"github.com/bakelabs/bake/internal/bakefile"
	"github.com/bakelabs/bake/internal/config"
	"github.com/bakelabs/bake/internal/environ"
	"github.com/bakelabs/bake/internal/errors"
	"github.com/bakelabs/bake/internal/executor"
	"github.com/bakelabs/bake/internal/logging"
	"github.com/bakelabs/bake/internal/resolve"
	"github.com/spf13/cobra"
)

// ExitError carries the process exit status of a completed run whose final
// status was non-zero. It lets main exit with the child's status while
// ordinary errors keep the conventional status 1.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode maps an Execute error to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	logger := logging.NewLogger(nil, cfg.Logging.Level)

	doc, err := openDocument(cfg)
	if err != nil {
		return err
	}

	// The overlay must be validated before any task can run.
	if flagEnviron != "" {
		overlay, err := environ.Parse(flagEnviron)
		if err != nil {
			return err
		}
		doc.SetOverlay(overlay)
	}

	if len(args) == 0 || flagList {
		printTaskList(cmd.OutOrStdout(), doc)
		return nil
	}

	taskName := args[0]
	doc.AddArgs(args[1:]...)

	task, err := doc.Task(taskName)
	if err != nil {
		return err
	}

	actions, err := resolveActions(cfg, doc, task)
	if err != nil {
		return err
	}
	// The task itself always runs last, after its resolved actions.
	actions = append(actions, task)

	ex := executor.New(doc, executor.Options{
		Shell:  cfg.Shell,
		Logger: logger,
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
		Stdin:  os.Stdin,
		Yes:    flagYes,
		Silent: flagSilent,
		Debug:  flagDebug,
	})

	firstFailure := 0
	for _, action := range actions {
		if !flagSilent {
			printActionHeader(cmd.OutOrStdout(), action)
		}

		status, err := ex.Run(cmd.Context(), action)
		if err != nil {
			if errors.Is(err, errors.ErrRunAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), renderAborted())
				return &ExitError{Code: 1}
			}
			return err
		}

		// A failing action is reported, not raised: queued siblings still
		// run, and the first non-zero status becomes the run's status.
		if status != 0 {
			logger.Warn("action failed", "action", action.Name(), "status", status)
			if firstFailure == 0 {
				firstFailure = status
			}
		}
	}

	if firstFailure != 0 {
		return &ExitError{Code: firstFailure}
	}
	return nil
}

// openDocument loads the document named by --file, or searches the working
// directory and its ancestors for the configured filename.
func openDocument(cfg *config.Config) (*bakefile.Bakefile, error) {
	if flagFile != "" {
		return bakefile.Load(flagFile)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	path, err := bakefile.Find(cwd, cfg.Document.Filename, cfg.Document.MaxDepth)
	if err != nil {
		return nil, err
	}
	return bakefile.Load(path)
}

// resolveActions produces the dependency closure for task per the active
// resolution mode.
func resolveActions(cfg *config.Config, doc *bakefile.Bakefile, task *bakefile.Task) ([]resolve.Action, error) {
	if flagNoDeps {
		return nil, nil
	}

	r := resolve.New(doc)
	if flagLegacyOrder || cfg.Resolution.LegacyOrder {
		return r.ExpandLegacy(task, true), nil
	}
	return r.Expand(task)
}
