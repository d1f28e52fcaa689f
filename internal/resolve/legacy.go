package resolve

import (
	"slices"

	"github.com/bakelabs/bake/internal/bakefile"
)

// ExpandLegacy reproduces the historical insertion-driven expansion. It
// walks the accumulating action list positionally; for each task entry it
// computes the direct dependencies and inserts each one immediately after
// the current entry, skipping any name already present anywhere in the
// result. Name-based de-duplication is the only termination guard: the
// expansion never detects cycles and only approximates topological order.
//
// With reverse set, the immediate-dependency sub-list is inverted before
// insertion; since each member is inserted at the same position, inversion
// restores header order in the result, which is the historical behavior.
// The flag does not affect duplicate suppression.
func (r *Resolver) ExpandLegacy(t *bakefile.Task, reverse bool) []Action {
	actions := r.Direct(t)

	for i := 0; i < len(actions); i++ {
		task, ok := actions[i].(*bakefile.Task)
		if !ok {
			// Filters have no dependencies of their own.
			continue
		}

		deps := r.Direct(task)
		if reverse {
			slices.Reverse(deps)
		}
		for _, dep := range deps {
			if containsName(actions, dep.Name()) {
				continue
			}
			actions = slices.Insert(actions, i+1, dep)
		}
	}

	return actions
}

func containsName(actions []Action, name string) bool {
	for _, a := range actions {
		if a.Name() == name {
			return true
		}
	}
	return false
}
