// Package environ provides the environment overlay applied to every task
// subprocess. The overlay is parsed once from inline JSON or a JSON file and
// is immutable afterward; it is merged into each child's environment at spawn
// time and never mutates the parent process environment.
package environ

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bakelabs/bake/internal/errors"
)

// Overlay is an immutable set of environment variables layered over the
// ambient environment of each spawned task.
type Overlay struct {
	vars map[string]string
}

// Empty returns an overlay with no variables.
func Empty() *Overlay {
	return &Overlay{vars: map[string]string{}}
}

// New returns an overlay holding a copy of vars.
func New(vars map[string]string) *Overlay {
	copied := make(map[string]string, len(vars))
	for k, v := range vars {
		copied[k] = v
	}
	return &Overlay{vars: copied}
}

// Parse builds an overlay from input, which is either inline JSON text or a
// path to a file containing JSON. Input that is neither valid JSON nor an
// existing file is rejected with an *errors.OverlayError before any task
// can run.
func Parse(input string) (*Overlay, error) {
	vars, jsonErr := decode([]byte(input))
	if jsonErr == nil {
		return &Overlay{vars: vars}, nil
	}

	// Assume a path was passed instead.
	data, readErr := os.ReadFile(input)
	if readErr != nil {
		return nil, &errors.OverlayError{Input: input, Cause: jsonErr}
	}

	vars, err := decode(data)
	if err != nil {
		return nil, &errors.OverlayError{Input: input, Cause: err}
	}
	return &Overlay{vars: vars}, nil
}

// decode unmarshals a JSON object into string-valued variables. Non-string
// scalar values are rendered with their JSON representation.
func decode(data []byte) (map[string]string, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	vars := make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			vars[k] = val
		case bool, float64:
			vars[k] = fmt.Sprintf("%v", val)
		case nil:
			vars[k] = ""
		default:
			return nil, fmt.Errorf("value for %q is not a scalar", k)
		}
	}
	return vars, nil
}

// Len returns the number of overlaid variables.
func (o *Overlay) Len() int {
	return len(o.vars)
}

// Get returns the overlaid value for key.
func (o *Overlay) Get(key string) (string, bool) {
	v, ok := o.vars[key]
	return v, ok
}

// Environ merges the overlay into base (entries in "KEY=VALUE" form, as
// returned by os.Environ). Overlaid keys replace base entries; remaining
// overlay keys are appended in sorted order so the result is deterministic.
func (o *Overlay) Environ(base []string) []string {
	merged := make([]string, 0, len(base)+len(o.vars))
	seen := make(map[string]bool, len(o.vars))

	for _, entry := range base {
		key, _, ok := strings.Cut(entry, "=")
		if ok {
			if v, overlaid := o.vars[key]; overlaid {
				merged = append(merged, key+"="+v)
				seen[key] = true
				continue
			}
		}
		merged = append(merged, entry)
	}

	rest := make([]string, 0, len(o.vars))
	for k := range o.vars {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		merged = append(merged, k+"="+o.vars[k])
	}

	return merged
}
