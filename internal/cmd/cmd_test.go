package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bakelabs/bake/internal/errors"
	"github.com/spf13/viper"
)

// executeCommand runs the root command with args and returns captured output
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags()
	viper.Reset()
	t.Cleanup(viper.Reset)

	// Tests run without a tty; an interactive shell would warn about job
	// control. Explicit Set outranks defaults and any config file.
	viper.Set("shell.interactive", false)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags clears flag state left over from earlier executions.
func resetFlags() {
	flagList = false
	flagSilent = false
	flagYes = false
	flagNoDeps = false
	flagDebug = false
	flagLegacyOrder = false
	flagEnviron = ""
	flagFile = ""
}

// writeDocument creates a Bashfile in a fresh temp dir and returns its path.
func writeDocument(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "Bashfile")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRoot_ListsTasksWithoutArguments(t *testing.T) {
	path := writeDocument(t, "build: test\n\ttouch out\ntest:\n\techo hi\n")

	out, err := executeCommand(t, "--file", path)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(out, "build") || !strings.Contains(out, "test") {
		t.Errorf("expected task names in listing, got %q", out)
	}
}

func TestRoot_ListFlag(t *testing.T) {
	path := writeDocument(t, "only:\n\techo hi\n")

	out, err := executeCommand(t, "--file", path, "--list", "only")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(out, "only") {
		t.Errorf("expected listing, got %q", out)
	}
	if strings.Contains(out, "hi") {
		t.Errorf("expected no task execution under --list, got %q", out)
	}
}

func TestRoot_RunsTask(t *testing.T) {
	path := writeDocument(t, "greet:\n\techo hello\n")

	out, err := executeCommand(t, "--file", path, "greet")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(out, "    hello") {
		t.Errorf("expected indented task output, got %q", out)
	}
}

func TestRoot_RunsDependenciesFirst(t *testing.T) {
	path := writeDocument(t, "build: test\n\techo building\ntest:\n\techo testing\n")

	out, err := executeCommand(t, "--file", path, "--silent", "build")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	depIdx := strings.Index(out, "testing")
	rootIdx := strings.Index(out, "building")
	if depIdx == -1 || rootIdx == -1 || depIdx > rootIdx {
		t.Errorf("expected dependency output before the task's, got %q", out)
	}
}

func TestRoot_NoDepsSkipsResolution(t *testing.T) {
	path := writeDocument(t, "build: test\n\techo building\ntest:\n\techo testing\n")

	out, err := executeCommand(t, "--file", path, "--silent", "--no-deps", "build")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if strings.Contains(out, "testing") {
		t.Errorf("expected dependency to be skipped, got %q", out)
	}
	if !strings.Contains(out, "building") {
		t.Errorf("expected the named task to run, got %q", out)
	}
}

func TestRoot_UnknownTask(t *testing.T) {
	path := writeDocument(t, "build:\n\techo hi\n")

	_, err := executeCommand(t, "--file", path, "missing")
	if !errors.Is(err, errors.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestRoot_FailingTaskStatusPropagated(t *testing.T) {
	path := writeDocument(t, "fail:\n\texit 9\n")

	_, err := executeCommand(t, "--file", path, "--silent", "fail")
	if err == nil {
		t.Fatal("expected error for failing task")
	}
	if got := ExitCode(err); got != 9 {
		t.Errorf("expected exit status 9 propagated, got %d", got)
	}
}

func TestRoot_SiblingsRunAfterFailure(t *testing.T) {
	path := writeDocument(t, "all: bad good\nbad:\n\texit 3\ngood:\n\techo survived\n")

	out, err := executeCommand(t, "--file", path, "--silent", "all")
	if ExitCode(err) != 3 {
		t.Errorf("expected first failure's status 3, got %d (err %v)", ExitCode(err), err)
	}
	if !strings.Contains(out, "survived") {
		t.Errorf("expected queued sibling to run after a failure, got %q", out)
	}
}

func TestRoot_CycleRejected(t *testing.T) {
	path := writeDocument(t, "a: b\n\techo ran-a\nb: a\n\techo ran-b\n")

	out, err := executeCommand(t, "--file", path, "--silent", "a")
	if !errors.Is(err, errors.ErrDependencyCycle) {
		t.Errorf("expected cycle rejection, got %v", err)
	}
	if strings.Contains(out, "ran-a") || strings.Contains(out, "ran-b") {
		t.Errorf("expected no execution on cycle, got %q", out)
	}
}

func TestRoot_LegacyOrderToleratesCycle(t *testing.T) {
	path := writeDocument(t, "a: b\n\techo ran-a\nb: a\n\techo ran-b\n")

	out, err := executeCommand(t, "--file", path, "--silent", "--legacy-order", "a")
	if err != nil {
		t.Fatalf("expected legacy mode to tolerate the cycle, got %v", err)
	}
	// Legacy expansion is bounded by name presence only; both tasks run.
	if !strings.Contains(out, "ran-b") || !strings.Contains(out, "ran-a") {
		t.Errorf("expected both tasks to run, got %q", out)
	}
}

func TestRoot_InvalidOverlayFailsBeforeTasks(t *testing.T) {
	path := writeDocument(t, "greet:\n\techo hello\n")

	out, err := executeCommand(t, "--file", path, "--environ", "not json at all", "greet")
	if err == nil {
		t.Fatal("expected overlay error")
	}
	var overlayErr *errors.OverlayError
	if !errors.As(err, &overlayErr) {
		t.Errorf("expected *errors.OverlayError, got %T", err)
	}
	if strings.Contains(out, "hello") {
		t.Errorf("expected no task to run before overlay validation, got %q", out)
	}
}

func TestRoot_OverlayReachesTask(t *testing.T) {
	path := writeDocument(t, "show:\n\techo \"$GREETING\"\n")

	out, err := executeCommand(t, "--file", path, "--silent", "--environ", `{"GREETING": "salut"}`, "show")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(out, "salut") {
		t.Errorf("expected overlay variable in task output, got %q", out)
	}
}

func TestRoot_ExtraArgsPassedToScript(t *testing.T) {
	path := writeDocument(t, "show:\n\techo \"$1\"\n")

	out, err := executeCommand(t, "--file", path, "--silent", "show", "payload")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(out, "payload") {
		t.Errorf("expected extra arg in output, got %q", out)
	}
}

func TestRoot_YesAutoConfirms(t *testing.T) {
	path := writeDocument(t, "deploy: @confirm\n\techo shipped\n")

	out, err := executeCommand(t, "--file", path, "--silent", "--yes", "deploy")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(out, "shipped") {
		t.Errorf("expected confirmed run to proceed, got %q", out)
	}
}

func TestRoot_MissingDocumentIsFatal(t *testing.T) {
	_, err := executeCommand(t, "--file", filepath.Join(t.TempDir(), "Bashfile"))
	if err == nil {
		t.Fatal("expected error for missing document")
	}
}

func TestExitCode(t *testing.T) {
	if got := ExitCode(nil); got != 0 {
		t.Errorf("expected 0 for nil, got %d", got)
	}
	if got := ExitCode(&ExitError{Code: 5}); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
	if got := ExitCode(errors.New("boom")); got != 1 {
		t.Errorf("expected 1 for plain error, got %d", got)
	}
}
