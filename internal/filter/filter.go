// Package filter implements pseudo-task filters: named side-effecting
// directives that appear in a task's dependency list but are not backed by
// any document chunk. A filter token has the form
//
//	@name:k1=v1:k2:k3=v3
//
// where a bare key parses as boolean true and key=value parses as the
// literal string value. Built-in behaviors are dispatched by name; unknown
// filter names execute as silent no-ops.
package filter

import (
	"fmt"
	"strings"
)

// Args maps a filter's argument keys to values. A value is either the bool
// true (bare key) or a string (key=value segment).
type Args map[string]any

// Truthy reports whether key is set to a truthy value: boolean true or any
// non-empty string. This mirrors how argument values gate behavior, so
// @confirm:yes and @confirm:yes=1 both count as confirmed.
func (a Args) Truthy(key string) bool {
	switch v := a[key].(type) {
	case bool:
		return v
	case string:
		return v != ""
	default:
		return false
	}
}

// Filter is a parsed pseudo-task. It is never looked up against the task
// registry and never has a backing chunk.
type Filter struct {
	source string
	name   string
	args   Args
}

// Parse builds a Filter from a raw dependency token. The name is the token
// before the first colon, minus its @ prefix; the remaining colon-separated
// segments are arguments. Parse never fails: a token with no arguments
// yields an empty argument map.
func Parse(token string) *Filter {
	head, rest, hasArgs := strings.Cut(token, ":")
	name := strings.TrimPrefix(head, "@")

	args := Args{}
	if hasArgs {
		for _, segment := range strings.Split(rest, ":") {
			if segment == "" {
				continue
			}
			key, value, hasValue := strings.Cut(segment, "=")
			if hasValue {
				args[key] = value
			} else {
				args[key] = true
			}
		}
	}

	return &Filter{source: token, name: name, args: args}
}

// Name returns the filter name.
func (f *Filter) Name() string {
	return f.name
}

// Source returns the raw token the filter was parsed from.
func (f *Filter) Source() string {
	return f.source
}

// Args returns the filter's parsed arguments.
func (f *Filter) Args() Args {
	return f.args
}

func (f *Filter) String() string {
	return fmt.Sprintf("<Filter %s>", f.source)
}
