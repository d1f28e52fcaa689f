package filter

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/bakelabs/bake/internal/errors"
)

// Options carries the run-level state a filter behavior may consult.
// Prompt I/O is injected so behaviors stay testable.
type Options struct {
	// Yes auto-confirms every confirmation prompt (the --yes flag).
	Yes bool
	// Stdin is the prompt input stream; defaults to os.Stdin.
	Stdin io.Reader
	// Stdout is the prompt output stream; defaults to os.Stdout.
	Stdout io.Writer
	// Rand supplies the secure-challenge factors; defaults to the global
	// math/rand source.
	Rand *rand.Rand
}

func (o Options) stdin() io.Reader {
	if o.Stdin != nil {
		return o.Stdin
	}
	return os.Stdin
}

func (o Options) stdout() io.Writer {
	if o.Stdout != nil {
		return o.Stdout
	}
	return os.Stdout
}

func (o Options) intn(n int) int {
	if o.Rand != nil {
		return o.Rand.Intn(n)
	}
	return rand.Intn(n)
}

// Behavior is a built-in filter implementation.
type Behavior func(f *Filter, opts Options) error

// builtins is the fixed registry of known filter behaviors.
var builtins = map[string]Behavior{
	"confirm": executeConfirm,
}

// Execute dispatches the filter's registered behavior. Unknown filter names
// are silent no-ops. A declined or failed confirmation returns
// errors.ErrRunAborted, which ends the whole run rather than just the
// current task.
func (f *Filter) Execute(opts Options) error {
	behavior, ok := builtins[f.name]
	if !ok {
		return nil
	}
	return behavior(f, opts)
}

// executeConfirm implements the confirm filter. With a truthy yes argument
// (or the global --yes flag) it is a no-op. With a truthy secure argument it
// poses a random multiplication challenge instead of a plain prompt.
func executeConfirm(f *Filter, opts Options) error {
	if opts.Yes || f.args.Truthy("yes") {
		return nil
	}

	if f.args.Truthy("secure") {
		return confirmSecure(opts)
	}
	return confirmPlain(opts)
}

func confirmPlain(opts Options) error {
	fmt.Fprint(opts.stdout(), "   Do you want to continue? [y/N]: ")

	answer, err := readLine(opts.stdin())
	if err != nil {
		return fmt.Errorf("reading confirmation: %w", errors.ErrRunAborted)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return nil
	default:
		return errors.ErrRunAborted
	}
}

func confirmSecure(opts Options) error {
	a := opts.intn(13)
	b := opts.intn(13)

	fmt.Fprintf(opts.stdout(), "   What is %d times %d? ", a, b)

	answer, err := readLine(opts.stdin())
	if err != nil {
		return fmt.Errorf("reading challenge answer: %w", errors.ErrRunAborted)
	}

	value, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil || value != a*b {
		return errors.ErrRunAborted
	}
	return nil
}

// readLine reads one line of input, tolerating a missing trailing newline.
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}
