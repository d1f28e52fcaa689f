package resolve

import (
	"github.com/bakelabs/bake/internal/bakefile"
	"github.com/bakelabs/bake/internal/errors"
)

// walker performs the depth-first traversal behind Expand. It emits actions
// in postorder, so every task follows its own dependencies, and tracks the
// recursion stack to reconstruct cycles by name.
type walker struct {
	resolver *Resolver
	visited  map[string]bool
	onStack  map[string]bool
	stack    []string
	order    []Action
}

func (w *walker) visitDeps(t *bakefile.Task) error {
	for _, action := range w.resolver.Direct(t) {
		if err := w.visit(action); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) visit(a Action) error {
	name := a.Name()

	if w.onStack[name] {
		return &errors.CycleError{Path: w.cyclePath(name)}
	}
	if w.visited[name] {
		return nil
	}
	w.visited[name] = true

	if task, ok := a.(*bakefile.Task); ok {
		w.onStack[name] = true
		w.stack = append(w.stack, name)

		if err := w.visitDeps(task); err != nil {
			return err
		}

		w.stack = w.stack[:len(w.stack)-1]
		w.onStack[name] = false
	}

	w.order = append(w.order, a)
	return nil
}

// cyclePath returns the task names forming the cycle closed by name, with
// name repeated at both ends. When name is the expansion root it does not
// appear on the stack; the whole current path is then part of the cycle.
func (w *walker) cyclePath(name string) []string {
	start := 0
	for i, n := range w.stack {
		if n == name {
			start = i
			break
		}
	}

	path := make([]string, 0, len(w.stack)-start+2)
	if len(w.stack) == 0 || w.stack[start] != name {
		path = append(path, name)
	}
	path = append(path, w.stack[start:]...)
	path = append(path, name)
	return path
}
