// Package bakefile loads and models the task document. A Bakefile owns the
// ordered chunk list extracted from the document and exposes the task
// registry built on top of it; tasks hold back-references into the document
// rather than copies of its content.
package bakefile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bakelabs/bake/internal/environ"
	"github.com/bakelabs/bake/internal/errors"
)

// Bakefile is the loaded task document. Chunks are extracted exactly once
// during Load; the raw source is re-read from disk on each Source call.
type Bakefile struct {
	path    string
	chunks  []Chunk
	args    []string
	overlay *environ.Overlay
}

// Load reads the document at path and extracts its chunk list. The chunk
// list is computed here, once, and never recomputed for this instance.
func Load(path string) (*Bakefile, error) {
	b := &Bakefile{
		path:    path,
		overlay: environ.Empty(),
	}

	lines, err := b.SourceLines()
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	b.chunks = extractChunks(lines)

	return b, nil
}

// Path returns the document's location on disk.
func (b *Bakefile) Path() string {
	return b.path
}

// Home returns the absolute directory containing the document.
func (b *Bakefile) Home() string {
	abs, err := filepath.Abs(filepath.Dir(b.path))
	if err != nil {
		return filepath.Dir(b.path)
	}
	return abs
}

// Source re-reads the document from disk. Only the derived chunk list is
// cached; the raw text never is.
func (b *Bakefile) Source() (string, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SourceLines returns the document split into lines.
func (b *Bakefile) SourceLines() ([]string, error) {
	src, err := b.Source()
	if err != nil {
		return nil, err
	}
	return strings.Split(src, "\n"), nil
}

// Chunks returns the chunk list computed at load time.
func (b *Bakefile) Chunks() []Chunk {
	return b.chunks
}

// FindChunk returns the index of the chunk whose header names task name.
// The scan is linear over the chunk list; the last match wins so that a
// repeated name resolves to the same chunk the registry exposes.
func (b *Bakefile) FindChunk(name string) (int, bool) {
	found := -1
	for i, chunk := range b.chunks {
		if chunk.Name() == name {
			found = i
		}
	}
	return found, found >= 0
}

// Tasks builds the name-to-task registry. The map is rebuilt on every call;
// when two chunks declare the same name, the later chunk wins.
func (b *Bakefile) Tasks() map[string]*Task {
	tasks := make(map[string]*Task, len(b.chunks))
	for i := range b.chunks {
		task, err := NewTask(b, i)
		if err != nil {
			// Unreachable: every registry task has a backing chunk.
			continue
		}
		tasks[task.Name()] = task
	}
	return tasks
}

// Task looks up a task by name.
func (b *Bakefile) Task(name string) (*Task, error) {
	i, ok := b.FindChunk(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, errors.ErrTaskNotFound)
	}
	return NewTask(b, i)
}

// TaskNames returns the registered task names in document order, without
// duplicates (the later declaration claims the name but keeps the first
// occurrence's position).
func (b *Bakefile) TaskNames() []string {
	seen := make(map[string]bool, len(b.chunks))
	names := make([]string, 0, len(b.chunks))
	for _, chunk := range b.chunks {
		name := chunk.Name()
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// AddArgs appends extra command-line arguments passed through to every
// executed task script.
func (b *Bakefile) AddArgs(args ...string) {
	b.args = append(b.args, args...)
}

// Args returns the accumulated extra arguments.
func (b *Bakefile) Args() []string {
	return b.args
}

// SetOverlay installs the environment overlay applied to every spawned task.
func (b *Bakefile) SetOverlay(o *environ.Overlay) {
	if o != nil {
		b.overlay = o
	}
}

// Overlay returns the document's environment overlay.
func (b *Bakefile) Overlay() *environ.Overlay {
	return b.overlay
}

func (b *Bakefile) String() string {
	return fmt.Sprintf("<Bakefile %s>", b.path)
}
