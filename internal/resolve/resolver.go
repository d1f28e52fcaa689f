// Package resolve turns a task's dependency tokens into an ordered list of
// actions. An action is either a Task backed by a document chunk or a Filter
// synthesized from its token; the resolver produces the variant explicitly,
// so callers never infer "filter" from a failed lookup at execution time.
//
// Two expansion strategies exist. The default builds an explicit dependency
// graph and orders it topologically, rejecting cycles with a dedicated
// error. The legacy strategy reproduces the historical insertion-driven
// expansion, which is cycle-blind and only approximates topological order;
// it is kept behind an explicit flag for compatibility.
package resolve

import (
	"github.com/bakelabs/bake/internal/bakefile"
	"github.com/bakelabs/bake/internal/filter"
)

// Action is one resolved dependency: a *bakefile.Task or a *filter.Filter.
type Action interface {
	Name() string
}

// IsTask reports whether the action is a document-backed task.
func IsTask(a Action) bool {
	_, ok := a.(*bakefile.Task)
	return ok
}

// Resolver resolves dependency tokens against one document.
type Resolver struct {
	doc *bakefile.Bakefile
}

// New returns a Resolver over doc.
func New(doc *bakefile.Bakefile) *Resolver {
	return &Resolver{doc: doc}
}

// Direct resolves the task's immediate dependency tokens in header order.
// A token naming a registered task yields that Task; every other token
// yields a Filter, whether or not it carries an @ prefix.
func (r *Resolver) Direct(t *bakefile.Task) []Action {
	tokens := t.DependencyTokens()
	actions := make([]Action, 0, len(tokens))

	for _, token := range tokens {
		if i, ok := r.doc.FindChunk(token); ok {
			task, err := bakefile.NewTask(r.doc, i)
			if err != nil {
				// Unreachable: FindChunk returned a valid index.
				continue
			}
			actions = append(actions, task)
			continue
		}
		actions = append(actions, filter.Parse(token))
	}

	return actions
}

// Expand returns the task's transitive dependency closure in execution
// order: every task appears after all of its own dependencies, duplicates
// are suppressed by name, and the root task itself is not included. A
// dependency cycle fails with *errors.CycleError.
func (r *Resolver) Expand(t *bakefile.Task) ([]Action, error) {
	w := &walker{
		resolver: r,
		visited:  map[string]bool{},
		onStack:  map[string]bool{},
	}

	// The root participates in cycle detection but not in the result.
	w.onStack[t.Name()] = true
	if err := w.visitDeps(t); err != nil {
		return nil, err
	}
	return w.order, nil
}
